package store

import (
	"testing"

	"github.com/iov-one/weave-market/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceIterator(t *testing.T) {
	models := []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("3")},
	}

	var keys []string
	it := NewSliceIterator(models)
	for ; it.Valid(); require.NoError(t, it.Next()) {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	err := it.Next()
	assert.True(t, errors.ErrDatabase.Is(err))
	assert.Panics(t, func() { it.Key() })

	it = NewSliceIterator(models)
	require.True(t, it.Valid())
	it.Close()
	assert.False(t, it.Valid())
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	b := db.NewBatch()

	require.NoError(t, b.Set([]byte("foo"), []byte("bar")))
	require.NoError(t, b.Set([]byte("gone"), []byte("soon")))
	require.NoError(t, b.Delete([]byte("gone")))

	// nothing is visible before the write
	val, err := db.Get([]byte("foo"))
	require.NoError(t, err)
	assert.Nil(t, val)
	assert.Len(t, b.(*NonAtomicBatch).ShowOps(), 3)

	require.NoError(t, b.Write())
	val, err = db.Get([]byte("foo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bar"), val)
	has, err := db.Has([]byte("gone"))
	require.NoError(t, err)
	assert.False(t, has)
	assert.Empty(t, b.(*NonAtomicBatch).ShowOps())
}
