package iavl

import (
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore keeps the state in a versioned iavl tree. Every Commit saves a
// new version and the hash of its root.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens, or creates, the goleveldb database dir/name.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return newCommitStore(db), nil
}

// NewMemCommitStore keeps the tree in memory only.
func NewMemCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize), db: db}
}

// Get reads the last saved version, ignoring pending writes.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.GetVersioned(key, s.tree.Version())
	return value, nil
}

func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the newest complete version found on disk. A
// version interrupted by a crash is ignored.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

func (s CommitStore) Close() {
	s.db.Close()
}

// CacheWrap buffers writes. Writing the cache updates the working tree, the
// disk is only touched by Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter gives direct access to the working tree.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: workingTree{s.tree}}
}

// workingTree is the unsaved version of the tree seen as a KVStore. A nil
// key makes the tree panic.
type workingTree struct {
	*iavl.MutableTree
}

var _ store.KVStore = workingTree{}

func (w workingTree) Get(key []byte) ([]byte, error) {
	_, value := w.MutableTree.Get(key)
	return value, nil
}

func (w workingTree) Has(key []byte) (bool, error) {
	return w.MutableTree.Has(key), nil
}

func (w workingTree) Set(key, value []byte) error {
	w.MutableTree.Set(key, value)
	return nil
}

func (w workingTree) Delete(key []byte) error {
	w.MutableTree.Remove(key)
	return nil
}

// NewBatch applies its operations one by one. That is enough because
// nothing reaches the disk before Commit.
func (w workingTree) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(w)
}

func (w workingTree) Iterator(start, end []byte) (store.Iterator, error) {
	return w.scan(start, end, true), nil
}

func (w workingTree) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return w.scan(start, end, false), nil
}

func (w workingTree) scan(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	w.IterateRange(start, end, ascending, func(key, value []byte) bool {
		models = append(models, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(models)
}
