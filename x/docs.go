/*
Package x contains the extensions of the marketplace application.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in cmd/marketd to construct
the application. This package holds what is shared by all of
them, such as reading the authentication information from the
context.

Note that types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `market.BuyMsg` in place of `market.MarketBuyMsg`.
*/
package x
