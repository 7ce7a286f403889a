package sigs

import (
	weave "github.com/iov-one/weave-market"
)

// signedTx signs a fixed payload.
type signedTx struct {
	weave.Tx
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload string) *signedTx {
	return &signedTx{payload: []byte(payload)}
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// signerRecorder remembers the signers it was called with.
type signerRecorder struct {
	seen []weave.Condition
}

var _ weave.Handler = (*signerRecorder)(nil)

func (r *signerRecorder) Check(ctx weave.Context, _ weave.KVStore, _ weave.Tx) (*weave.CheckResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &weave.CheckResult{}, nil
}

func (r *signerRecorder) Deliver(ctx weave.Context, _ weave.KVStore, _ weave.Tx) (*weave.DeliverResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &weave.DeliverResult{}, nil
}
