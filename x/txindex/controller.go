package txindex

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/orm"
	"github.com/iov-one/weave-market/x/market"
)

// Controller manages the transaction indexes of the marketplace.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on the index bucket.
func NewController() Controller {
	return Controller{bucket: NewBucket()}
}

// Create allocates an empty index. The marketplace must exist.
func (c Controller) Create(db weave.KVStore, indexType string, key []byte) (*Index, error) {
	if _, err := market.LoadConfig(db); err != nil {
		return nil, err
	}
	ref := market.MarketplaceAddress()
	dbKey := IndexKey(ref, indexType, key)
	switch err := c.bucket.Has(db, dbKey); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "index %s/%X", indexType, key)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	idx := &Index{Marketplace: ref, IndexType: indexType, Key: key}
	if err := c.bucket.Put(db, dbKey, idx); err != nil {
		return nil, errors.Wrap(err, "save index")
	}
	return idx, nil
}

// Get returns the index of given type and key or ErrNotFound.
func (c Controller) Get(db weave.ReadOnlyKVStore, indexType string, key []byte) (*Index, error) {
	var idx Index
	dbKey := IndexKey(market.MarketplaceAddress(), indexType, key)
	if err := c.bucket.One(db, dbKey, &idx); err != nil {
		return nil, errors.Wrapf(err, "index %s/%X", indexType, key)
	}
	return &idx, nil
}

// Add appends a transaction identifier. It fails with ErrIndexFull once
// the index holds MaxTransactionIDs entries.
func (c Controller) Add(db weave.KVStore, indexType string, key []byte, txID []byte) (*Index, error) {
	if err := validateTransactionID(txID); err != nil {
		return nil, err
	}
	idx, err := c.Get(db, indexType, key)
	if err != nil {
		return nil, err
	}
	if len(idx.TransactionIDs) >= MaxTransactionIDs {
		return nil, errors.Wrapf(ErrIndexFull, "index %s/%X", indexType, key)
	}
	idx.TransactionIDs = append(idx.TransactionIDs, txID)
	if err := c.bucket.Put(db, IndexKey(idx.Marketplace, indexType, key), idx); err != nil {
		return nil, errors.Wrap(err, "save index")
	}
	return idx, nil
}
