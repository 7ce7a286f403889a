package app

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/crypto"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/weavetest"
	"github.com/iov-one/weave-market/x/asset"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/market"
	"github.com/iov-one/weave-market/x/sigs"
	"github.com/iov-one/weave-market/x/txindex"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const testChainID = "market-test"

func key(seed byte) *crypto.PrivateKey {
	return crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{seed}, 32))
}

func TestTxEncoding(t *testing.T) {
	tx := &Tx{
		Msg: &market.ListMsg{AssetID: []byte("art-1"), Price: 1000, Duration: 60},
	}
	unsigned, err := tx.Marshal()
	require.NoError(t, err)

	sig, err := sigs.SignTx(key(1), tx, testChainID, 0)
	require.NoError(t, err)
	tx.Signatures = append(tx.Signatures, sig)

	signBytes, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signBytes)
	assert.Len(t, tx.Signatures, 1)

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)

	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "market/list", msg.Path())
}

func TestTxEveryMessageIsRoutable(t *testing.T) {
	msgs := []weave.Msg{
		&bank.SendMsg{},
		&asset.IssueMsg{},
		&asset.TransferMsg{},
		&market.InitializeMsg{},
		&market.PauseMsg{},
		&market.UnpauseMsg{},
		&market.CloseMsg{},
		&market.UpdateFeeMsg{},
		&market.ListMsg{},
		&market.UpdateListingMsg{},
		&market.DelistMsg{},
		&market.BuyMsg{},
		&txindex.CreateIndexMsg{},
		&txindex.AddTransactionMsg{},
	}
	for _, m := range msgs {
		raw, err := (&Tx{Msg: m}).Marshal()
		require.NoError(t, err, "%T", m)
		decoded, err := TxDecoder(raw)
		require.NoError(t, err, "%T", m)
		got, err := decoded.GetMsg()
		require.NoError(t, err, "%T", m)
		assert.IsType(t, m, got)
	}
}

func TestTxMatchesSumLayout(t *testing.T) {
	buy := &market.BuyMsg{AssetID: []byte("art-1"), RoyaltyBps: 500}
	payload, err := buy.Marshal()
	require.NoError(t, err)
	// Field 69, length delimited, followed by the message.
	want := append([]byte{0xaa, 0x04, byte(len(payload))}, payload...)

	raw, err := (&Tx{Msg: buy}).Marshal()
	require.NoError(t, err)
	assert.Equal(t, want, raw)
}

func TestTxDecodingErrors(t *testing.T) {
	_, err := (&Tx{}).GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))

	_, err = (&Tx{Msg: &weavetest.Msg{RoutePath: "foo/bar"}}).Marshal()
	assert.True(t, errors.ErrType.Is(err))

	a, err := (&Tx{Msg: &market.PauseMsg{}}).Marshal()
	require.NoError(t, err)
	b, err := (&Tx{Msg: &market.CloseMsg{}}).Marshal()
	require.NoError(t, err)
	_, err = TxDecoder(append(a, b...))
	assert.True(t, errors.ErrMsg.Is(err))

	_, err = TxDecoder([]byte{0x0a, 0x05, 0x01})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestGenInitOptions(t *testing.T) {
	_, err := GenInitOptions(GenesisParams{ChainID: "x"})
	assert.True(t, errors.ErrInput.Is(err))

	_, err = GenInitOptions(GenesisParams{
		ChainID: testChainID,
		Market:  &market.Config{Authority: key(1).PublicKey().Address(), Treasury: key(1).PublicKey().Address(), FeeBps: 10001},
	})
	assert.True(t, market.ErrInvalidFeePercentage.Is(err))

	gen, err := GenInitOptions(GenesisParams{ChainID: testChainID})
	require.NoError(t, err)
	assert.Equal(t, testChainID, gen.ChainID)
	assert.Equal(t, "[]", string(gen.AppState["bank"]))
	assert.Nil(t, gen.AppState["conf"])
}

type chain struct {
	node      *Node
	authority *crypto.PrivateKey
	treasury  *crypto.PrivateKey
	seller    *crypto.PrivateKey
	buyer     *crypto.PrivateKey
	creator   *crypto.PrivateKey
	now       time.Time
}

func newChain(t *testing.T, dbPath string) *chain {
	t.Helper()
	c := &chain{
		authority: key(1),
		treasury:  key(2),
		seller:    key(3),
		buyer:     key(4),
		creator:   key(5),
		now:       time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	node, err := OpenNode(dbPath, log.NewNopLogger(), prometheus.NewRegistry())
	require.NoError(t, err)
	c.node = node

	gen, err := GenInitOptions(GenesisParams{
		ChainID: testChainID,
		Accounts: []bank.GenesisAccount{
			{Address: c.buyer.PublicKey().Address(), Amount: 2000000},
			{Address: c.seller.PublicKey().Address(), Amount: 5000},
		},
		Assets: []asset.GenesisAsset{
			{ID: "art-1", Issuer: c.creator.PublicKey().Address(), Holder: c.seller.PublicKey().Address()},
		},
		Market: &market.Config{
			Authority: c.authority.PublicKey().Address(),
			Treasury:  c.treasury.PublicKey().Address(),
			FeeBps:    250,
			Policy:    market.SellerPaysFee,
		},
	})
	require.NoError(t, err)
	require.NoError(t, node.InitChain(gen))
	return c
}

func (c *chain) exec(t *testing.T, signer *crypto.PrivateKey, msg weave.Msg) ([]byte, error) {
	t.Helper()
	tx := &Tx{Msg: msg}
	require.NoError(t, c.node.Sign(tx, signer))
	c.now = c.now.Add(time.Minute)
	res, err := c.node.Execute(tx, c.now)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *chain) balance(t *testing.T, k *crypto.PrivateKey) uint64 {
	t.Helper()
	b, err := bank.NewController().Balance(c.node.Store(), k.PublicKey().Address())
	require.NoError(t, err)
	return b
}

func TestMarketplaceOverNode(t *testing.T) {
	c := newChain(t, "")
	defer c.node.Close()

	assert.Equal(t, testChainID, c.node.ChainID())
	assert.Equal(t, int64(1), c.node.Height())

	conf, err := market.LoadConfig(c.node.Store())
	require.NoError(t, err)
	assert.Equal(t, uint32(250), conf.FeeBps)

	vault, err := c.exec(t, c.seller, &market.ListMsg{AssetID: []byte("art-1"), Price: 1000000, Duration: 3600})
	require.NoError(t, err)
	assert.Equal(t, []byte(market.VaultAddress([]byte("art-1"))), vault)

	holder, err := asset.NewController().Holder(c.node.Store(), []byte("art-1"))
	require.NoError(t, err)
	assert.Equal(t, market.VaultAddress([]byte("art-1")), holder)

	// The seller cannot buy its own asset. CheckTx rejects it so nothing is
	// committed, not even the nonce.
	_, err = c.exec(t, c.seller, &market.BuyMsg{AssetID: []byte("art-1")})
	assert.Error(t, err)
	assert.Equal(t, int64(2), c.node.Height())
	nonce, err := c.node.NextNonce(c.seller.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(1), nonce)

	saleID, err := c.exec(t, c.buyer, &market.BuyMsg{AssetID: []byte("art-1")})
	require.NoError(t, err)
	assert.NotEmpty(t, saleID)

	assert.Equal(t, uint64(1000000), c.balance(t, c.buyer))
	assert.Equal(t, uint64(5000+975000), c.balance(t, c.seller))
	assert.Equal(t, uint64(25000), c.balance(t, c.treasury))

	holder, err = asset.NewController().Holder(c.node.Store(), []byte("art-1"))
	require.NoError(t, err)
	assert.Equal(t, c.buyer.PublicKey().Address(), holder)

	var listing market.Listing
	err = market.NewListingBucket().One(c.node.Store(), []byte("art-1"), &listing)
	assert.True(t, errors.ErrNotFound.Is(err))

	var sale market.Sale
	require.NoError(t, market.NewSaleBucket().One(c.node.Store(), saleID, &sale))
	assert.Equal(t, uint64(25000), sale.Fee)
	assert.Equal(t, c.creator.PublicKey().Address(), sale.Creator)
}

func TestNodeRejectsReplay(t *testing.T) {
	c := newChain(t, "")
	defer c.node.Close()

	tx := &Tx{Msg: &bank.SendMsg{
		Source:      c.buyer.PublicKey().Address(),
		Destination: c.seller.PublicKey().Address(),
		Amount:      10,
	}}
	require.NoError(t, c.node.Sign(tx, c.buyer))
	_, err := c.node.Execute(tx, c.now.Add(time.Minute))
	require.NoError(t, err)
	height := c.node.Height()

	_, err = c.node.Execute(tx, c.now.Add(2*time.Minute))
	assert.Error(t, err)
	assert.Equal(t, height, c.node.Height())
	assert.Equal(t, uint64(5010), c.balance(t, c.seller))
}

func TestNodeRequiresGenesis(t *testing.T) {
	node, err := OpenNode("", log.NewNopLogger(), nil)
	require.NoError(t, err)
	defer node.Close()

	_, err = node.Execute(&Tx{Msg: &market.PauseMsg{}}, time.Now())
	assert.True(t, errors.ErrState.Is(err))
}

func TestNodePersistsState(t *testing.T) {
	dir, err := ioutil.TempDir("", "marketd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	dbPath := filepath.Join(dir, "market.db")

	c := newChain(t, dbPath)
	_, err = c.exec(t, c.authority, &market.PauseMsg{})
	require.NoError(t, err)
	c.node.Close()

	node, err := OpenNode(dbPath, log.NewNopLogger(), nil)
	require.NoError(t, err)
	defer node.Close()

	assert.Equal(t, testChainID, node.ChainID())
	assert.Equal(t, int64(2), node.Height())
	conf, err := market.LoadConfig(node.Store())
	require.NoError(t, err)
	assert.True(t, conf.Paused)
}
