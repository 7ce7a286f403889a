package bank

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	"github.com/iov-one/weave-market/weavetest"
	"github.com/iov-one/weave-market/weavetest/assert"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		Signer      weave.Condition
		Msg         weave.Msg
		WantCheck   *errors.Error
		WantDeliver *errors.Error
		WantAlice   uint64
		WantBob     uint64
	}{
		"successful transfer": {
			Signer:    alice,
			Msg:       &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 30},
			WantAlice: 70,
			WantBob:   30,
		},
		"source did not sign": {
			Signer:      bob,
			Msg:         &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 30},
			WantCheck:   errors.ErrUnauthorized,
			WantDeliver: errors.ErrUnauthorized,
			WantAlice:   100,
		},
		"insufficient funds are detected on deliver": {
			Signer:      alice,
			Msg:         &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 101},
			WantDeliver: errors.ErrInsufficientAmount,
			WantAlice:   100,
		},
		"invalid message": {
			Signer:      alice,
			Msg:         &SendMsg{Source: alice.Address(), Amount: 1},
			WantCheck:   errors.ErrEmpty,
			WantDeliver: errors.ErrEmpty,
			WantAlice:   100,
		},
		"wrong message type": {
			Signer:      alice,
			Msg:         &weavetest.Msg{RoutePath: pathSendMsg},
			WantCheck:   errors.ErrType,
			WantDeliver: errors.ErrType,
			WantAlice:   100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), 100))

			auth := &weavetest.Auth{Signer: tc.Signer}
			rt := NewSendHandler(auth, ctrl)
			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := rt.Check(context.Background(), cache, tx)
			assert.IsErr(t, tc.WantCheck, err)
			cache.Discard()

			_, err = rt.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.WantDeliver, err)

			got, err := ctrl.Balance(db, alice.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.WantAlice, got)
			got, err = ctrl.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.WantBob, got)
		})
	}
}
