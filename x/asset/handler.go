package asset

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x"
)

const (
	issueCost    = 100
	transferCost = 50
)

// RegisterRoutes will instantiate and register all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&IssueMsg{}, &IssueHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferMsg{}, &TransferHandler{auth: auth, ctrl: ctrl})
}

// IssueHandler creates new assets. The main signer becomes the issuer.
type IssueHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*IssueHandler)(nil)

func (h *IssueHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: issueCost}, nil
}

func (h *IssueHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, issuer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Issue(db, msg.ID, issuer, msg.Holder, msg.URI); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: msg.ID}, nil
}

func (h *IssueHandler) validate(ctx weave.Context, tx weave.Tx) (*IssueMsg, weave.Address, error) {
	var msg IssueMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// TransferHandler moves an asset held by the signer.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*TransferHandler)(nil)

func (h *TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h *TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, holder, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, holder, msg.ID, msg.Destination); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

// validate returns the signer condition matching the current holder.
func (h *TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, weave.Condition, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	holder, err := h.ctrl.Holder(db, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range h.auth.GetConditions(ctx) {
		if c.Address().Equals(holder) {
			return &msg, c, nil
		}
	}
	return nil, nil, errors.Wrap(errors.ErrUnauthorized, "holder signature missing")
}
