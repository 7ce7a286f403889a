package txindex

import (
	"fmt"
	"testing"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/gconf"
	"github.com/iov-one/weave-market/store"
	"github.com/iov-one/weave-market/weavetest"
	"github.com/iov-one/weave-market/weavetest/assert"
	"github.com/iov-one/weave-market/x/market"
	"github.com/stretchr/testify/require"
)

func withMarketplace(t testing.TB, db weave.KVStore) {
	t.Helper()
	require.NoError(t, gconf.Save(db, market.ConfigPkg, &market.Config{
		Authority: weavetest.NewCondition().Address(),
		Treasury:  weavetest.NewCondition().Address(),
	}))
}

func TestCreateRequiresMarketplace(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	_, err := ctrl.Create(db, "collection", []byte("apes"))
	assert.IsErr(t, errors.ErrNotFound, err)

	withMarketplace(t, db)
	idx, err := ctrl.Create(db, "collection", []byte("apes"))
	require.NoError(t, err)
	assert.Equal(t, market.MarketplaceAddress(), idx.Marketplace)
	assert.Equal(t, 0, len(idx.TransactionIDs))

	_, err = ctrl.Create(db, "collection", []byte("apes"))
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Same key under another type is a different index.
	_, err = ctrl.Create(db, "seller", []byte("apes"))
	require.NoError(t, err)
}

func TestIndexCapacity(t *testing.T) {
	db := store.MemStore()
	withMarketplace(t, db)
	ctrl := NewController()

	_, err := ctrl.Add(db, "collection", []byte("apes"), []byte("tx-0"))
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = ctrl.Create(db, "collection", []byte("apes"))
	require.NoError(t, err)

	for i := 0; i < MaxTransactionIDs; i++ {
		_, err := ctrl.Add(db, "collection", []byte("apes"), []byte(fmt.Sprintf("tx-%d", i)))
		require.NoError(t, err)
	}
	_, err = ctrl.Add(db, "collection", []byte("apes"), []byte("one-too-many"))
	assert.IsErr(t, ErrIndexFull, err)

	idx, err := ctrl.Get(db, "collection", []byte("apes"))
	require.NoError(t, err)
	require.Len(t, idx.TransactionIDs, MaxTransactionIDs)
	for i, id := range idx.TransactionIDs {
		assert.Equal(t, fmt.Sprintf("tx-%d", i), string(id))
	}
}

func TestIndexKeyIsUnambiguous(t *testing.T) {
	ref := market.MarketplaceAddress()
	a := IndexKey(ref, "ab", []byte("c"))
	b := IndexKey(ref, "a", []byte("bc"))
	if string(a) == string(b) {
		t.Fatal("different type and key pairs must not share a storage key")
	}
}

func TestIndexValidate(t *testing.T) {
	idx := Index{
		Marketplace: market.MarketplaceAddress(),
		IndexType:   "collection",
		Key:         []byte("apes"),
	}
	assert.Nil(t, idx.Validate())

	bad := idx
	bad.IndexType = "Not Valid"
	assert.IsErr(t, errors.ErrInput, bad.Validate())

	bad = idx
	bad.Key = nil
	assert.IsErr(t, errors.ErrEmpty, bad.Validate())

	bad = idx
	bad.TransactionIDs = make([][]byte, MaxTransactionIDs+1)
	assert.IsErr(t, ErrIndexFull, bad.Validate())

	idx.TransactionIDs = [][]byte{[]byte("a"), []byte("b")}
	raw, err := idx.Marshal()
	require.NoError(t, err)
	var got Index
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, idx, got)
}

func TestIndexOutlivesMarketplace(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	withMarketplace(t, db)
	_, err := ctrl.Create(db, "collection", []byte("apes"))
	require.NoError(t, err)
	_, err = ctrl.Add(db, "collection", []byte("apes"), []byte("sale-1"))
	require.NoError(t, err)

	// Closing removes the configuration only. A marketplace initialized
	// again uses the same reference and finds the history of the first.
	require.NoError(t, gconf.Delete(db, market.ConfigPkg))
	withMarketplace(t, db)

	idx, err := ctrl.Get(db, "collection", []byte("apes"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("sale-1")}, idx.TransactionIDs)

	_, err = ctrl.Create(db, "collection", []byte("apes"))
	assert.IsErr(t, errors.ErrDuplicate, err)
}
