package weavetest

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/crypto"
)

// NewKey returns a random ed25519 key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}

// NewConditions returns n distinct signature conditions.
func NewConditions(n int) []weave.Condition {
	conds := make([]weave.Condition, n)
	for i := range conds {
		conds[i] = NewCondition()
	}
	return conds
}
