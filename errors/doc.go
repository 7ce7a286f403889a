/*
Package errors implements the error kinds shared by all extensions of the
marketplace application.

Reuse as many errors from this package as possible and register a custom
error only when a client must be able to distinguish the failure by its code.
Extensions register their own kinds with Register(code, description), for
example x/market declares ErrMarketplacePaused and ErrCannotBuyOwnNFT. Codes
must be unique within the process, a duplicate registration panics.

Annotate a kind with Wrap(ErrXyz, "...") at the point of failure so that a
stack trace is attached. Only the innermost wrap records the stack, so do not
declare wrapped instances as package globals.

Formatting

	%s is just the error message
	%+v is the message followed by the full stack trace
	%v appends a compressed [filename:line] where the error was created

ABCIInfo translates an error into a (code, log) pair as returned to clients.
Errors that do not wrap a registered kind are reported as internal errors.
*/
package errors
