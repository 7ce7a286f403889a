package asset

import (
	"testing"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	"github.com/iov-one/weave-market/weavetest"
	"github.com/iov-one/weave-market/weavetest/assert"
)

func TestIssueAndTransfer(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	issuer := weavetest.NewCondition()
	alice := weavetest.NewCondition()
	vault := weave.NewCondition("market", "listing", []byte("nft-1"))
	id := []byte("nft-1")

	assert.Nil(t, ctrl.Issue(db, id, issuer.Address(), alice.Address(), "ipfs://nft-1"))
	assert.IsErr(t, errors.ErrDuplicate, ctrl.Issue(db, id, issuer.Address(), alice.Address(), ""))
	assert.IsErr(t, errors.ErrInput, ctrl.Issue(db, []byte("x"), issuer.Address(), alice.Address(), ""))
	assert.IsErr(t, errors.ErrEmpty, ctrl.Issue(db, []byte("nft-2"), nil, alice.Address(), ""))

	a, err := ctrl.Get(db, id)
	assert.Nil(t, err)
	assert.Equal(t, issuer.Address(), a.Issuer)
	assert.Equal(t, "ipfs://nft-1", a.URI)

	// Only the holder can transfer.
	err = ctrl.Transfer(db, issuer, id, vault.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, ctrl.Transfer(db, alice, id, vault.Address()))
	n, err := ctrl.BalanceOf(db, id, vault.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), n)
	n, err = ctrl.BalanceOf(db, id, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), n)

	// The vault condition can move it out again.
	assert.Nil(t, ctrl.Transfer(db, vault, id, alice.Address()))
	holder, err := ctrl.Holder(db, id)
	assert.Nil(t, err)
	assert.Equal(t, alice.Address(), holder)

	assert.IsErr(t, errors.ErrEmpty, ctrl.Transfer(db, alice, id, nil))

	_, err = ctrl.Holder(db, []byte("missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.IsErr(t, errors.ErrNotFound, ctrl.Transfer(db, alice, []byte("missing"), alice.Address()))
}
