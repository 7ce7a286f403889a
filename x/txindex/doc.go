/*
Package txindex keeps small, bounded lists of transaction identifiers for
off-chain discovery, for example all sales of one collection.

An index is addressed by the marketplace it belongs to, an index type and a
key. It holds at most MaxTransactionIDs entries in insertion order and
refuses further appends once full.
*/
package txindex
