package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store/iavl"
	"github.com/iov-one/weave-market/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// decodeTestTx returns a transaction whose message path is the raw input.
func decodeTestTx(raw []byte) (weave.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
}

type genesisWriter struct{}

func (genesisWriter) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var data struct {
		Greeting string `json:"greeting"`
	}
	if err := opts.ReadOptions("test", &data); err != nil {
		return err
	}
	return db.Set([]byte("greeting"), []byte(data.Greeting))
}

func newTestApp(t *testing.T, h weave.Handler) BaseApp {
	t.Helper()
	s, err := NewStoreApp("test-app", iavl.NewMemCommitStore(), context.Background())
	require.NoError(t, err)
	s = s.WithInit(genesisWriter{})

	r := NewRouter()
	r.Handle(&weavetest.Msg{RoutePath: "test/write"}, h)
	return NewBaseApp(s, decodeTestTx, r, false)
}

func TestBaseApp(t *testing.T) {
	h := &weavetest.Handler{
		WriteKey:      []byte("written"),
		WriteValue:    []byte("value"),
		DeliverResult: weave.DeliverResult{Log: "ok", Tags: []weave.Tag{{Key: []byte("k"), Value: []byte("v")}}},
	}
	app := newTestApp(t, h)

	appState, err := json.Marshal(map[string]interface{}{
		"test": map[string]string{"greeting": "hello"},
	})
	require.NoError(t, err)
	app.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: appState})
	assert.Equal(t, "test-chain-1", app.GetChainID())

	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	chk := app.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(0), chk.Code, chk.Log)

	res := app.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, "ok", res.Log)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, []byte("k"), res.Tags[0].Key)

	res = app.DeliverTx([]byte("test/unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = app.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	// Nothing is visible before the commit.
	q := app.Query(abci.RequestQuery{Path: "/", Data: []byte("written")})
	require.Equal(t, uint32(0), q.Code, q.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(q.Value))
	assert.Empty(t, values.Results)

	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "test-app", info.Data)

	db := NewABCIStore(app)
	val, err := db.Get([]byte("written"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	val, err = db.Get([]byte("greeting"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), val)

	ok, err := db.Has([]byte("missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	it, err := db.Iterator([]byte("g"), []byte("x"))
	require.NoError(t, err)
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"greeting", "written"}, keys)

	it, err = db.ReverseIterator(nil, nil)
	require.NoError(t, err)
	keys = nil
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	// The chain id is stored with the internal prefix.
	assert.Equal(t, []string{"written", "greeting", string(chainIDKey)}, keys)
}

func TestInitChainTwice(t *testing.T) {
	app := newTestApp(t, &weavetest.Handler{})
	app.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: []byte(`{}`)})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain-2", AppStateBytes: []byte(`{}`)})
	})
}

func TestInitChainWithoutState(t *testing.T) {
	app := newTestApp(t, &weavetest.Handler{})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain-1"})
	})
}

func TestQueryErrors(t *testing.T) {
	app := newTestApp(t, &weavetest.Handler{})
	q := app.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)
	q = app.Query(abci.RequestQuery{Path: "/?range"})
	assert.Equal(t, errors.ErrInput.ABCICode(), q.Code)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab"), prefixEnd([]byte("aa")))
	assert.Equal(t, []byte("b"), prefixEnd([]byte{'a', 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}
