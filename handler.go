package weave

import (
	"encoding/json"
)

// Handler processes the messages of one kind, like listing an asset or
// buying a listing.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction for the mempool. It may write to store,
// those writes are discarded with the check state at the next commit.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler and decides whether and how next is
// called. Signature checks, savepoints and logging are decorators.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds a message type to its handler. Binding a type, not a
// path, prevents another message from reusing the path of a handler.
type Registry interface {
	Handle(Msg, Handler)
}

// CheckResult is what a successful Check returns. Failures are errors.
type CheckResult struct {
	// Data is for machines, like the id of a created entity.
	Data []byte
	Log  string
	// GasAllocated caps the work the transaction may do.
	GasAllocated int64
	// GasPayment is the price of the work done by decorators.
	GasPayment int64
}

// DeliverResult is what a successful Deliver returns. Failures are errors.
type DeliverResult struct {
	Data    []byte
	Log     string
	GasUsed int64
	// Tags are indexed by the node so that clients can search
	// transactions, for example by action.
	Tags []Tag
}

type Tag struct {
	Key   []byte
	Value []byte
}

// Options is the genesis app_state. Every extension reads its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the JSON stored under key into obj. A missing key
// leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs every initializer in order and stops at the first
// failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (list initializers) FromGenesis(opts Options, db KVStore) error {
	for _, init := range list {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
