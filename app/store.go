package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the state half of an ABCI application. It loads the genesis,
// tracks the current block, commits and answers queries. BaseApp builds the
// transaction half on top of it.
//
// Info, InitChain and Commit panic on failure. The consensus engine has no
// way to receive an error from them and the node must stop.
type StoreApp struct {
	mu sync.Mutex

	name   string
	logger log.Logger
	store  *CommitStore
	init   weave.Initializer

	// chainID is empty until the genesis is loaded.
	chainID string

	// root carries the values shared by every block. block extends it
	// with the height and time of the block being processed.
	root  weave.Context
	block weave.Context
}

// NewStoreApp opens the last committed state of kv. A chain id stored by a
// previous genesis is restored.
func NewStoreApp(name string, kv weave.CommitKVStore, ctx weave.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	s := &StoreApp{name: name, store: cs, root: ctx}
	s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		s.setChainID(chainID)
	}

	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	s.block = weave.WithHeight(s.root, info.Version)
	return s, nil
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.root = weave.WithChainID(s.root, chainID)
}

// GetChainID returns an empty string before the genesis.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit registers the initializer run with the genesis app state.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithLogger replaces the logger. Every transaction context inherits it.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.root = weave.WithLogger(s.root, logger)
	return s
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() weave.Context {
	return s.block
}

func (s *StoreApp) DeliverStore() weave.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() weave.CacheableKVStore {
	return s.store.CheckStore()
}

// Info reports the application name and the last commit.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("state loaded", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          weave.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Code: errors.ErrInput.ABCICode(), Log: "options are not supported"}
}

// InitChain loads the genesis. AppStateBytes is a JSON object of Options
// handed to the initializer. A chain can be initialized only once.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %s already initialized", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis has no app_state")
	}
	var opts weave.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	db := s.store.DeliverStore()
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if s.init == nil {
		return nil
	}
	return s.init.FromGenesis(opts, db)
}

// BeginBlock exposes the height and time of the block to its transactions.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.block = weave.WithBlockTime(weave.WithHeight(s.root, req.Header.Height), req.Header.Time)
	return abci.ResponseBeginBlock{}
}

// EndBlock returns no validator updates.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit writes the delivered state of the block.
func (s *StoreApp) Commit() abci.ResponseCommit {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("block committed", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. The requested height is ignored.
//
// Path "/" looks up the key given as Data. Path "/?prefix" returns every
// entry whose key starts with Data. Key and Value of the response are two
// ResultSets of equal length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.query(req)
	if err != nil {
		code, log := errors.ABCIInfo(err, false)
		return abci.ResponseQuery{Code: code, Log: log}
	}
	return res
}

func (s *StoreApp) query(req abci.RequestQuery) (abci.ResponseQuery, error) {
	var res abci.ResponseQuery

	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	if path != "/" {
		return res, errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return res, err
	}
	db := s.store.CommittedStore()
	defer db.Discard()

	var models []weave.Model
	switch mod {
	case "":
		value, err := db.Get(req.Data)
		if err != nil {
			return res, err
		}
		if value != nil {
			models = []weave.Model{weave.Pair(req.Data, value)}
		}
	case "prefix":
		if models, err = scanPrefix(db, req.Data); err != nil {
			return res, err
		}
	default:
		return res, errors.Wrapf(errors.ErrInput, "query modifier %q", mod)
	}

	res.Height = info.Version
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return res, err
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return res, err
	}
	return res, nil
}

func scanPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	var end []byte
	if len(prefix) != 0 {
		end = prefixEnd(prefix)
	}
	it, err := db.Iterator(prefix, end)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var models []weave.Model
	for it.Valid() {
		models = append(models, weave.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return models, nil
}

// prefixEnd returns the smallest key that does not have prefix, nil when
// prefix is made of 0xff bytes only.
func prefixEnd(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			end := append([]byte(nil), prefix[:i+1]...)
			end[i]++
			return end
		}
	}
	return nil
}
