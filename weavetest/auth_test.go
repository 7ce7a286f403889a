package weavetest

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/weavetest/assert"
)

func TestAuth(t *testing.T) {
	conds := NewConditions(3)

	cases := map[string]struct {
		auth Auth
		want []weave.Condition
	}{
		"no signers": {
			auth: Auth{},
			want: nil,
		},
		"single signer": {
			auth: Auth{Signer: conds[0]},
			want: conds[:1],
		},
		"many signers": {
			auth: Auth{Signers: conds},
			want: conds,
		},
		"signer goes last": {
			auth: Auth{Signer: conds[2], Signers: conds[:2]},
			want: conds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.auth.GetConditions(nil))
			for _, c := range tc.want {
				if !tc.auth.HasAddress(nil, c.Address()) {
					t.Errorf("address of %s must be authenticated", c)
				}
			}
			if tc.auth.HasAddress(nil, NewCondition().Address()) {
				t.Fatal("random address must not be authenticated")
			}
		})
	}
}

func TestCtxAuth(t *testing.T) {
	conds := NewConditions(2)
	alice := CtxAuth{Key: "alice"}
	bobby := CtxAuth{Key: "bobby"}

	ctx := alice.SetConditions(context.Background(), conds...)
	assert.Equal(t, conds, alice.GetConditions(ctx))
	for _, c := range conds {
		if !alice.HasAddress(ctx, c.Address()) {
			t.Errorf("address of %s must be authenticated", c)
		}
		if bobby.HasAddress(ctx, c.Address()) {
			t.Errorf("address of %s must not be visible under another key", c)
		}
	}
	assert.Nil(t, bobby.GetConditions(ctx))
	assert.Nil(t, alice.GetConditions(context.Background()))
}
