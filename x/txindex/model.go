package txindex

import (
	"regexp"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/orm"
)

const (
	// BucketName is where the indexes are stored.
	BucketName = "txindex"

	// MaxTransactionIDs is the capacity of a single index.
	MaxTransactionIDs = 100

	maxKeyLength           = 64
	maxTransactionIDLength = 64
)

// IsValidIndexType checks the format of an index type name.
var IsValidIndexType = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`).MatchString

// IndexKey derives the storage key of an index from the marketplace it
// belongs to, the index type and the key.
func IndexKey(marketplace weave.Address, indexType string, key []byte) []byte {
	res := make([]byte, 0, len(marketplace)+1+len(indexType)+len(key))
	res = append(res, marketplace...)
	res = append(res, byte(len(indexType)))
	res = append(res, indexType...)
	return append(res, key...)
}

var _ orm.Model = (*Index)(nil)

func (i *Index) Validate() error {
	if err := i.Marketplace.Validate(); err != nil {
		return errors.Wrap(err, "marketplace")
	}
	if err := validateRef(i.IndexType, i.Key); err != nil {
		return err
	}
	if len(i.TransactionIDs) > MaxTransactionIDs {
		return errors.Wrapf(ErrIndexFull, "%d entries", len(i.TransactionIDs))
	}
	for n, id := range i.TransactionIDs {
		if err := validateTransactionID(id); err != nil {
			return errors.Wrapf(err, "entry %d", n)
		}
	}
	return nil
}

func validateRef(indexType string, key []byte) error {
	if !IsValidIndexType(indexType) {
		return errors.Wrapf(errors.ErrInput, "index type %q", indexType)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if len(key) > maxKeyLength {
		return errors.Wrap(errors.ErrInput, "key too long")
	}
	return nil
}

func validateTransactionID(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "transaction id")
	}
	if len(id) > maxTransactionIDLength {
		return errors.Wrap(errors.ErrInput, "transaction id too long")
	}
	return nil
}

// NewBucket returns a bucket storing indexes under IndexKey.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Index{})
}
