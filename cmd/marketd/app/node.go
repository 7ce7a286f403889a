package app

import (
	"encoding/json"
	"time"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/app"
	"github.com/iov-one/weave-market/crypto"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store/iavl"
	"github.com/iov-one/weave-market/x/sigs"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Node drives the application the way the consensus engine would, executing
// every transaction in a block of its own. It lets the command line operate
// on a local state without running a network.
type Node struct {
	kv  iavl.CommitStore
	app app.BaseApp
}

// OpenNode loads the application state stored at dbPath. An empty path
// keeps the state in memory.
func OpenNode(dbPath string, logger log.Logger, reg prometheus.Registerer) (*Node, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	base, err := Application(Stack(), TxDecoder, kv, false, reg)
	if err != nil {
		kv.Close()
		return nil, err
	}
	base.WithLogger(logger)
	return &Node{kv: kv, app: base}, nil
}

// Close releases the underlying database.
func (n *Node) Close() {
	n.kv.Close()
}

// App returns the ABCI application run by this node.
func (n *Node) App() abci.Application {
	return n.app
}

// ChainID returns the chain ID stored at genesis, or an empty string if the
// chain was not initialized yet.
func (n *Node) ChainID() string {
	return n.app.GetChainID()
}

// Height returns the height of the last committed block.
func (n *Node) Height() int64 {
	return n.app.Info(abci.RequestInfo{}).LastBlockHeight
}

// Store gives read access to the last committed state.
func (n *Node) Store() weave.ReadOnlyKVStore {
	return app.NewABCIStore(n.app)
}

// InitChain loads the genesis application state and commits it.
func (n *Node) InitChain(gen app.Genesis) (err error) {
	raw, err := json.Marshal(gen.AppState)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer errors.Recover(&err)
	n.app.InitChain(abci.RequestInitChain{
		ChainId:       gen.ChainID,
		AppStateBytes: raw,
	})
	n.app.Commit()
	return nil
}

// NextNonce returns the sequence the next signature of given signer must
// carry.
func (n *Node) NextNonce(signer weave.Address) (int64, error) {
	return sigs.NextNonce(n.Store(), signer)
}

// Sign attaches a signature of given key to the transaction, using the
// current nonce of the signer.
func (n *Node) Sign(tx *Tx, key crypto.Signer) error {
	if err := n.requireChain(); err != nil {
		return err
	}
	seq, err := n.NextNonce(key.PublicKey().Address())
	if err != nil {
		return err
	}
	sig, err := sigs.SignTx(key, tx, n.ChainID(), seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// Execute runs a single transaction in a new block with given time. A
// transaction rejected by CheckTx is not committed. A transaction that
// fails in DeliverTx is still committed, as its nonce was used.
func (n *Node) Execute(tx *Tx, blockTime time.Time) (*abci.ResponseDeliverTx, error) {
	if err := n.requireChain(); err != nil {
		return nil, err
	}
	raw, err := tx.Marshal()
	if err != nil {
		return nil, err
	}
	// The block is opened first so that CheckTx sees the block time.
	height := n.Height() + 1
	n.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: n.ChainID(),
			Height:  height,
			Time:    blockTime.UTC(),
		},
	})
	if res := n.app.CheckTx(raw); res.Code != 0 {
		return nil, errors.Wrapf(errors.ErrState, "check tx failed with code %d: %s", res.Code, res.Log)
	}
	res := n.app.DeliverTx(raw)
	n.app.EndBlock(abci.RequestEndBlock{Height: height})
	n.app.Commit()

	if res.Code != 0 {
		return &res, errors.Wrapf(errors.ErrState, "deliver tx failed with code %d: %s", res.Code, res.Log)
	}
	return &res, nil
}

func (n *Node) requireChain() error {
	if n.ChainID() == "" {
		return errors.Wrap(errors.ErrState, "chain is not initialized")
	}
	return nil
}
