package weave

// ReadOnlyKVStore reads a sorted key value space. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is not set.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil start or
	// end leaves that side open. The range must not be written to while
	// the iterator is open.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks the same range in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Callers must
// not modify key or value after the call.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler works with.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch queues writes until Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range:
//
//	it, err := db.Iterator(start, end)
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for it.Valid() {
//		use(it.Key(), it.Value())
//		if err := it.Next(); err != nil {
//			return err
//		}
//	}
//
// Key and Value panic once Valid returns false. The returned slices must
// not be modified.
type Iterator interface {
	Valid() bool
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can open savepoints.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a savepoint: writes are visible through it right away but
// reach the parent store only on Write. Discard rolls all of them back.
// Savepoints nest.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the state. Changes are made on a
// CacheWrap, written back, and persisted as a new version by Commit.
type CommitKVStore interface {
	// Get reads the working state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	// Commit persists the working state as the next version.
	Commit() (CommitID, error)
	// LoadLatestVersion resets the working state to the last version
	// that was fully persisted.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a persisted version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model is a key value pair read from a store.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
