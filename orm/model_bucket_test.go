package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	"github.com/iov-one/weave-market/weavetest/assert"
)

// counter is a minimal model used to exercise the bucket.
type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(c.Count))
	return raw, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrap(errors.ErrInput, "counter must be 8 bytes")
	}
	c.Count = int64(binary.BigEndian.Uint64(raw))
	return nil
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type other struct{ counter }

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	empty, err := b.IsEmpty(db)
	assert.Nil(t, err)
	assert.Equal(t, true, empty)

	assert.Nil(t, b.Put(db, []byte("c1"), &counter{Count: 1}))
	assert.Nil(t, b.Has(db, []byte("c1")))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c2")))

	empty, err = b.IsEmpty(db)
	assert.Nil(t, err)
	assert.Equal(t, false, empty)

	var c1 counter
	assert.Nil(t, b.One(db, []byte("c1"), &c1))
	assert.Equal(t, int64(1), c1.Count)

	assert.IsErr(t, errors.ErrType, b.One(db, []byte("c1"), &other{}))
	assert.IsErr(t, errors.ErrType, b.Put(db, []byte("c3"), &other{}))
	assert.IsErr(t, errors.ErrModel, b.Put(db, []byte("c3"), &counter{Count: -1}))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &counter{Count: 3}))

	assert.Nil(t, b.Delete(db, []byte("c1")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("unknown")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("c1"), &c1))

	empty, err = b.IsEmpty(db)
	assert.Nil(t, err)
	assert.Equal(t, true, empty)
}

func TestModelBucketIsolation(t *testing.T) {
	db := store.MemStore()
	a := NewModelBucket("aaa", &counter{})
	b := NewModelBucket("aab", &counter{})

	assert.Nil(t, b.Put(db, []byte("x"), &counter{Count: 7}))
	empty, err := a.IsEmpty(db)
	assert.Nil(t, err)
	assert.Equal(t, true, empty)
	assert.IsErr(t, errors.ErrNotFound, a.Has(db, []byte("x")))
}

func TestNewModelBucketInvalid(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("no", &counter{}) })
	assert.Panics(t, func() { NewModelBucket("Bad:Name", &counter{}) })
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab;"), prefixEnd([]byte("ab:")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	assert.Equal(t, []byte(nil), prefixEnd([]byte{0xff, 0xff}))
}
