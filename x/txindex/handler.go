package txindex

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x"
)

const (
	createIndexCost    int64 = 100
	addTransactionCost int64 = 20
)

// RegisterRoutes will instantiate and register all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	ctrl := NewController()
	r.Handle(&CreateIndexMsg{}, &CreateIndexHandler{auth: auth, ctrl: ctrl})
	r.Handle(&AddTransactionMsg{}, &AddTransactionHandler{auth: auth, ctrl: ctrl})
}

// CreateIndexHandler allocates new indexes. Any signer can create one.
type CreateIndexHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*CreateIndexHandler)(nil)

func (h *CreateIndexHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createIndexCost}, nil
}

func (h *CreateIndexHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	idx, err := h.ctrl.Create(db, msg.IndexType, msg.Key)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: IndexKey(idx.Marketplace, idx.IndexType, idx.Key)}, nil
}

func (h *CreateIndexHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateIndexMsg, error) {
	var msg CreateIndexMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.RequireSigner(ctx, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AddTransactionHandler appends to an existing index. Any signer can append.
type AddTransactionHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*AddTransactionHandler)(nil)

func (h *AddTransactionHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	idx, err := h.ctrl.Get(db, msg.IndexType, msg.Key)
	if err != nil {
		return nil, err
	}
	if len(idx.TransactionIDs) >= MaxTransactionIDs {
		return nil, errors.Wrap(ErrIndexFull, "cannot append")
	}
	return &weave.CheckResult{GasAllocated: addTransactionCost}, nil
}

func (h *AddTransactionHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Add(db, msg.IndexType, msg.Key, msg.TransactionID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *AddTransactionHandler) validate(ctx weave.Context, tx weave.Tx) (*AddTransactionMsg, error) {
	var msg AddTransactionMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.RequireSigner(ctx, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}
