/*
Package market implements an escrowed marketplace for the assets of the
asset extension.

A seller lists an asset by moving it into a vault. The vault address is
derived from the listing condition so that only this extension can release
the asset. While a listing is active its vault holds exactly that one asset.
The listing ends either when the seller delists it, which returns the asset,
or when a buyer purchases it.

A purchase is settled atomically. The buyer pays the seller, the marketplace
treasury receives a fee and, depending on the settlement policy of the
marketplace, the creator of the asset receives a royalty. Either all payments
and the asset transfer happen, or none.

The marketplace itself is a configuration singleton controlled by its
authority. The authority can pause new listings and purchases, change the fee
and close an empty marketplace.
*/
package market
