/*
Package bank keeps the native token balance of every address and moves
funds between them.

Every wallet holds a single unsigned amount. All arithmetic is checked:
transfers never create or destroy funds, and a transfer that would
underflow the source or overflow the destination fails without changing
any balance.
*/
package bank
