package app

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// BaseApp is a complete abci.Application. Transactions are decoded and
// passed to a single handler, usually a Router behind a decorator chain.
// Everything else is done by the embedded StoreApp.
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler

	// debug puts the full error, stack included, in the response log.
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decoder: decoder, handler: handler, debug: debug}
}

// DeliverTx runs the transaction against the state of the block.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return b.deliverFailed(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err != nil {
		return b.deliverFailed(err)
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		GasUsed: res.GasUsed,
		Tags:    kvPairs(res.Tags),
	}
}

// CheckTx validates the transaction against the mempool state.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return b.checkFailed(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	if err != nil {
		return b.checkFailed(err)
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

func (b BaseApp) txContext(call string, tx weave.Tx) weave.Context {
	return weave.WithLogInfo(b.BlockContext(), "call", call, "path", weave.GetPath(tx))
}

// decode turns a panic of the decoder into an error.
func (b BaseApp) decode(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}

func (b BaseApp) deliverFailed(err error) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, b.debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func (b BaseApp) checkFailed(err error) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, b.debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func kvPairs(tags []weave.Tag) []common.KVPair {
	if len(tags) == 0 {
		return nil
	}
	pairs := make([]common.KVPair, len(tags))
	for i, t := range tags {
		pairs[i] = common.KVPair{Key: t.Key, Value: t.Value}
	}
	return pairs
}
