package orm

import (
	"encoding/binary"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
)

// Sequence is a persistent counter stored under "_s.<bucket>:<name>". Its
// values are encoded big endian so that byte order follows numeric order
// and they can serve as ordered keys.
type Sequence struct {
	key []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns its encoded value.
func (s Sequence) NextVal(db weave.KVStore) ([]byte, error) {
	n, err := s.Latest(db)
	if err != nil {
		return nil, err
	}
	raw := EncodeSequence(n + 1)
	if err := db.Set(s.key, raw); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return raw, nil
}

// Latest returns the last value handed out, zero for a new sequence.
func (s Sequence) Latest(db weave.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw), nil
}

// DecodeSequence treats nil as zero.
func DecodeSequence(raw []byte) int64 {
	if len(raw) == 0 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

func EncodeSequence(n int64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(n))
	return raw[:]
}
