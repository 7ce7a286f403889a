package market

import (
	"math/bits"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x/bank"
)

// Settlement is the split of a purchase between the parties.
type Settlement struct {
	Policy SettlementPolicy
	Price  uint64
	// Fee goes to the marketplace treasury.
	Fee uint64
	// Royalty goes to the asset creator.
	Royalty uint64
	// TotalDue is what the buyer pays.
	TotalDue uint64
	// SellerAmount is what the seller receives.
	SellerAmount uint64
}

// ComputeSettlement splits a purchase of given price according to the
// policy. All arithmetic is checked and rates are in basis points.
func ComputeSettlement(policy SettlementPolicy, price uint64, feeBps, royaltyBps uint32) (*Settlement, error) {
	if price == 0 {
		return nil, errors.Wrap(ErrInvalidPrice, "zero price")
	}
	if feeBps > MaxBasisPoints {
		return nil, errors.Wrapf(ErrInvalidFeePercentage, "fee %d basis points", feeBps)
	}
	if royaltyBps > MaxBasisPoints {
		return nil, errors.Wrapf(ErrInvalidFeePercentage, "royalty %d basis points", royaltyBps)
	}
	fee, err := BasisPoints(price, feeBps)
	if err != nil {
		return nil, errors.Wrap(err, "fee")
	}

	switch policy {
	case SellerPaysFee:
		if royaltyBps != 0 {
			return nil, errors.Wrap(errors.ErrInput, "royalty is not paid under seller pays fee policy")
		}
		return &Settlement{
			Policy:       policy,
			Price:        price,
			Fee:          fee,
			TotalDue:     price,
			SellerAmount: price - fee,
		}, nil
	case BuyerPaysFeeAndRoyalty:
		royalty, err := BasisPoints(price, royaltyBps)
		if err != nil {
			return nil, errors.Wrap(err, "royalty")
		}
		total, err := add(price, fee)
		if err != nil {
			return nil, err
		}
		if total, err = add(total, royalty); err != nil {
			return nil, err
		}
		return &Settlement{
			Policy:       policy,
			Price:        price,
			Fee:          fee,
			Royalty:      royalty,
			TotalDue:     total,
			SellerAmount: price,
		}, nil
	default:
		return nil, policy.Validate()
	}
}

// BasisPoints returns floor(amount * bps / 10000). The product is computed
// on 128 bits.
func BasisPoints(amount uint64, bps uint32) (uint64, error) {
	hi, lo := bits.Mul64(amount, uint64(bps))
	if hi >= MaxBasisPoints {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d / %d", amount, bps, MaxBasisPoints)
	}
	quo, _ := bits.Div64(hi, lo, MaxBasisPoints)
	return quo, nil
}

func add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

// leg is a single payment of a settlement.
type leg struct {
	to     weave.Address
	amount uint64
}

// legs returns the payments the buyer makes. Empty legs are skipped.
func (s *Settlement) legs(seller, treasury, creator weave.Address) []leg {
	all := []leg{
		{to: seller, amount: s.SellerAmount},
		{to: treasury, amount: s.Fee},
		{to: creator, amount: s.Royalty},
	}
	res := all[:0]
	for _, l := range all {
		if l.amount > 0 {
			res = append(res, l)
		}
	}
	return res
}

// Pay moves all settlement payments from the buyer. The buyer balance is
// checked before any transfer. Callers must run it inside a cache wrap so a
// failing leg leaves no partial payment behind.
func (s *Settlement) Pay(db weave.KVStore, ctrl bank.Controller, buyer, seller, treasury, creator weave.Address) error {
	if err := requireBalance(db, ctrl, buyer, s.TotalDue); err != nil {
		return errors.Wrap(err, "buyer")
	}
	for _, l := range s.legs(seller, treasury, creator) {
		if err := ctrl.MoveCoins(db, buyer, l.to, l.amount); err != nil {
			return errors.Wrapf(err, "pay %s", l.to)
		}
	}
	return nil
}

// requireBalance fails with ErrInsufficientBalance if addr holds less than
// required.
func requireBalance(db weave.ReadOnlyKVStore, ctrl bank.Controller, addr weave.Address, required uint64) error {
	balance, err := ctrl.Balance(db, addr)
	if err != nil {
		return err
	}
	if balance < required {
		return errors.Wrapf(ErrInsufficientBalance, "required %d, available %d", required, balance)
	}
	return nil
}

// Breakdown returns the settlement amounts as decimal token values, in a
// form suitable for logging.
func (s *Settlement) Breakdown() []interface{} {
	return []interface{}{
		"policy", s.Policy.String(),
		"price", bank.FormatAmount(s.Price),
		"fee", bank.FormatAmount(s.Fee),
		"royalty", bank.FormatAmount(s.Royalty),
		"total", bank.FormatAmount(s.TotalDue),
		"seller", bank.FormatAmount(s.SellerAmount),
	}
}
