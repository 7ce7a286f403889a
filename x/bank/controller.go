package bank

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/orm"
)

// Controller is the functionality other extensions use to move funds.
type Controller interface {
	// Balance returns the amount held by given address. An address that
	// never received funds has a zero balance.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dest. It fails if src
	// does not hold enough funds or if dest balance would overflow.
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount uint64) error

	// IssueCoins creates the given amount in the dest wallet.
	IssueCoins(db weave.KVStore, dest weave.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the bank wallets.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	w, _, err := loadWallet(db, c.bucket, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, ok, err := loadWallet(db, c.bucket, src)
	if err != nil {
		return errors.Wrap(err, "load sender")
	}
	if !ok {
		return errors.Wrapf(errors.ErrEmpty, "no wallet for %s", src)
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "required %d, available %d", amount, sender.Amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, _, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return errors.Wrap(err, "load recipient")
	}
	total, err := addAmounts(recipient.Amount, amount)
	if err != nil {
		return err
	}

	sender.Amount -= amount
	recipient.Amount = total
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

func (c BaseController) IssueCoins(db weave.KVStore, dest weave.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, _, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	total, err := addAmounts(w.Amount, amount)
	if err != nil {
		return err
	}
	w.Amount = total
	return c.bucket.Put(db, dest, w)
}

func addAmounts(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

func isNotFound(err error) bool {
	return errors.ErrNotFound.Is(err)
}
