package x

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
)

// Authenticator tells which conditions authorized the current transaction.
// Handlers receive one in their constructor instead of reading signatures
// directly.
type Authenticator interface {
	// GetConditions returns all fulfilled conditions, the main signer
	// first.
	GetConditions(weave.Context) []weave.Condition
	// HasAddress returns true if any fulfilled condition has this address.
	HasAddress(weave.Context, weave.Address) bool
}

// ChainAuth returns an Authenticator that accepts the conditions of every
// given implementation, in order.
func ChainAuth(impls ...Authenticator) Authenticator {
	return chainAuth(impls)
}

type chainAuth []Authenticator

func (c chainAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var conds []weave.Condition
	for _, a := range c {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (c chainAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, a := range c {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// RequireSigner returns the address of the main signer, or ErrUnauthorized
// when the transaction is not signed.
func RequireSigner(ctx weave.Context, auth Authenticator) (weave.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return signer.Address(), nil
}
