package asset

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/orm"
)

// Controller is the functionality other extensions use to read and move
// assets.
type Controller interface {
	// Issue creates a new asset. It fails with ErrDuplicate if the ID is
	// taken.
	Issue(db weave.KVStore, id []byte, issuer, holder weave.Address, uri string) error

	// Get returns the asset with given ID or ErrNotFound.
	Get(db weave.ReadOnlyKVStore, id []byte) (*Asset, error)

	// Holder returns the current holder of the asset.
	Holder(db weave.ReadOnlyKVStore, id []byte) (weave.Address, error)

	// BalanceOf returns 1 if given address holds the asset, 0 otherwise.
	BalanceOf(db weave.ReadOnlyKVStore, id []byte, owner weave.Address) (uint64, error)

	// Transfer moves the asset to dest. The custodian must be the
	// condition whose address currently holds the asset.
	Transfer(db weave.KVStore, custodian weave.Condition, id []byte, dest weave.Address) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the asset registry.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Issue(db weave.KVStore, id []byte, issuer, holder weave.Address, uri string) error {
	switch err := c.bucket.Has(db, id); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "asset %q", id)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	a := &Asset{ID: id, Issuer: issuer, Holder: holder, URI: uri}
	if err := c.bucket.Put(db, id, a); err != nil {
		return errors.Wrap(err, "save asset")
	}
	return nil
}

func (c BaseController) Get(db weave.ReadOnlyKVStore, id []byte) (*Asset, error) {
	var a Asset
	if err := c.bucket.One(db, id, &a); err != nil {
		return nil, errors.Wrapf(err, "asset %q", id)
	}
	return &a, nil
}

func (c BaseController) Holder(db weave.ReadOnlyKVStore, id []byte) (weave.Address, error) {
	a, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	return a.Holder, nil
}

func (c BaseController) BalanceOf(db weave.ReadOnlyKVStore, id []byte, owner weave.Address) (uint64, error) {
	holder, err := c.Holder(db, id)
	if err != nil {
		return 0, err
	}
	if holder.Equals(owner) {
		return 1, nil
	}
	return 0, nil
}

func (c BaseController) Transfer(db weave.KVStore, custodian weave.Condition, id []byte, dest weave.Address) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	a, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if !a.Holder.Equals(custodian.Address()) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the holder of %q", custodian, id)
	}
	a.Holder = dest
	return c.bucket.Put(db, id, a)
}
