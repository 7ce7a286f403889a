package sigs

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/crypto"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/orm"
)

// BucketName is where the signer accounts are stored.
const BucketName = "sigs"

// maxSequence is the largest integer a JSON number holds without loss,
// 2^53 - 1. Clients must be able to sign the next nonce.
const maxSequence = 1<<53 - 1

var _ orm.Model = (*UserData)(nil)

// Validate requires a public key on every account that already signed.
func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case u.Pubkey == nil && u.Sequence > 0:
		return errors.Wrap(ErrInvalidSequence, "sequence without pubkey")
	case u.Pubkey == nil:
		return nil
	}
	return errors.Wrap(u.Pubkey.Validate(), "pubkey")
}

// CheckAndIncrementSequence consumes the nonce expected. Any other value is
// a replay or a gap and fails with ErrInvalidSequence.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, expected)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// Bucket keys every account by the address of its public key.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate returns a fresh account with sequence zero for a key that
// never signed.
func (b Bucket) GetOrCreate(db weave.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	err := b.One(db, pubkey.Address(), &u)
	if errors.ErrNotFound.Is(err) {
		return &UserData{Pubkey: pubkey}, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (b Bucket) Save(db weave.KVStore, u *UserData) error {
	if u.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "pubkey")
	}
	return b.Put(db, u.Pubkey.Address(), u)
}
