package bank

import (
	"encoding/json"
	"fmt"
	"testing"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store"
	"github.com/iov-one/weave-market/weavetest"
	"github.com/iov-one/weave-market/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	genesis := fmt.Sprintf(`{
		"bank": [
			{"address": "%s", "amount": 1000000},
			{"address": "%s", "amount": 5},
			{"address": "%s", "amount": 7}
		]
	}`, alice, bob, bob)

	var opts weave.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController()
	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000), got)
	got, err = ctrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, uint64(12), got)
}

func TestGenesisInvalidAddress(t *testing.T) {
	var opts weave.Options
	assert.Nil(t, json.Unmarshal([]byte(`{"bank": [{"address": "", "amount": 1}]}`), &opts))
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrEmpty, err)
}
