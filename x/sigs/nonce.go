package sigs

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
)

// NextNonce returns the sequence the next signature of addr must carry. An
// address that never signed starts at zero.
func NextNonce(db weave.ReadOnlyKVStore, addr weave.Address) (int64, error) {
	var user UserData
	err := NewBucket().One(db, addr, &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "user data")
	}
	return user.Sequence, nil
}
