package utils

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	"github.com/iov-one/weave-market/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorator
	ok, ov := []byte("demo"), []byte("data")
	// written by the handler
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := errors.ErrState

	cases := map[string]struct {
		save    Savepoint
		handler *weavetest.Handler
		check   bool
		wantErr bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint deactivated, error, both written": {
			save:    NewSavepoint(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: derr},
			check:   true,
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"savepoint on check, error, handler write discarded": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: derr},
			check:   true,
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on deliver, error, handler write discarded": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: derr},
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: derr},
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: derr},
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "missing key %X", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "unexpected key %X", k)
			}
		})
	}
}

// plainStore hides the CacheWrap method of the store.
type plainStore struct {
	weave.KVStore
}

func TestSavepointWithoutCache(t *testing.T) {
	kv := plainStore{store.MemStore()}
	h := &weavetest.Handler{WriteKey: []byte("k"), WriteValue: []byte("v"), DeliverErr: errors.ErrState}

	_, err := NewSavepoint().OnDeliver().Deliver(context.Background(), kv, nil, h)
	assert.Error(t, err)

	// without a cache the write cannot be undone
	has, err := kv.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}
