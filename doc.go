/*
Package weave defines the interfaces used throughout the marketplace app:
storage, transactions, handlers, conditions and derived addresses. Extensions
under x/ build on them. x/bank moves the native currency, x/asset keeps
custody of unique assets and x/market runs listings, escrow and settlement on
top of both.

Request scoped data travels in a context.Context. For every value the
package offers a setter returning a derived context and a getter. Values that
describe the block, like the height and the chain id, can be set only once so
that no decorator or handler rewrites them for the code it calls.
*/
package weave
