package bank

import (
	"math/big"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/orm"
	"github.com/shopspring/decimal"
)

// BucketName is where the wallets are stored.
const BucketName = "bank"

// Decimals is the number of fractional digits of the native token. Amounts
// are always stored as integers of the smallest unit.
const Decimals = 9

var _ orm.Model = (*Wallet)(nil)

// Validate always passes. Any unsigned amount is a valid balance.
func (w *Wallet) Validate() error {
	return nil
}

// NewBucket returns a bucket storing wallets under their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// FormatAmount renders an amount of the smallest unit as a decimal value
// of the native token.
func FormatAmount(amount uint64) string {
	return AsDecimal(amount).StringFixed(Decimals)
}

// AsDecimal returns the amount as a decimal value of the native token.
func AsDecimal(amount uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -Decimals)
}

// loadWallet returns the wallet of given address. A missing wallet has a
// zero balance.
func loadWallet(db weave.ReadOnlyKVStore, b orm.ModelBucket, addr weave.Address) (*Wallet, bool, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, true, nil
	case isNotFound(err):
		return &Wallet{}, false, nil
	default:
		return nil, false, err
	}
}
