/*
Package app links together all the various components
to construct the marketplace application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/app"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/store/iavl"
	"github.com/iov-one/weave-market/x"
	"github.com/iov-one/weave-market/x/asset"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/market"
	"github.com/iov-one/weave-market/x/sigs"
	"github.com/iov-one/weave-market/x/txindex"
	"github.com/iov-one/weave-market/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Name is returned by abci Info.
const Name = "marketd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a router dispatching to all extensions of the
// marketplace chain.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	bankCtrl := bank.NewController()
	assets := asset.NewController()
	bank.RegisterRoutes(r, authFn, bankCtrl)
	asset.RegisterRoutes(r, authFn, assets)
	market.RegisterRoutes(r, authFn, bankCtrl, assets)
	txindex.RegisterRoutes(r, authFn)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() weave.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Initializers returns all extensions reading the genesis application state.
func Initializers() weave.Initializer {
	return weave.ChainInitializers(
		bank.Initializer{},
		asset.Initializer{},
		market.Initializer{},
	)
}

// Application constructs a basic ABCI application over given store. If reg
// is not nil, the marketplace metrics are registered with it.
func Application(h weave.Handler, tx weave.TxDecoder, kv weave.CommitKVStore, debug bool, reg prometheus.Registerer) (app.BaseApp, error) {
	store, err := app.NewStoreApp(Name, kv, context.Background())
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "store app")
	}
	store.WithInit(Initializers())
	if reg != nil {
		if err := market.RegisterMetrics(reg); err != nil {
			return app.BaseApp{}, errors.Wrap(err, "metrics")
		}
	}
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path keeps the state in memory.
func CommitKVStore(dbPath string) (iavl.CommitStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return iavl.CommitStore{}, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
