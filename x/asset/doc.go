/*
Package asset is a registry of unique assets.

Every asset has an identifier, an issuer that created it and a holder that
currently owns the single unit. Only the holder can move an asset. Other
extensions can hold assets on behalf of a condition they control, for
example an escrow vault, and move them with Controller.Transfer.
*/
package asset
