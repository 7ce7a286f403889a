package app

import (
	"encoding/json"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/app"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x/asset"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/market"
)

// GenesisParams describes the initial state of a new chain.
type GenesisParams struct {
	ChainID  string
	Accounts []bank.GenesisAccount
	Assets   []asset.GenesisAsset
	// Market is optional. Without it the marketplace is created later with
	// an InitializeMsg.
	Market *market.Config
}

// GenInitOptions builds the genesis document for given parameters.
func GenInitOptions(p GenesisParams) (app.Genesis, error) {
	if !weave.IsValidChainID(p.ChainID) {
		return app.Genesis{}, errors.Wrapf(errors.ErrInput, "chain id: %q", p.ChainID)
	}
	if p.Market != nil {
		if err := p.Market.Validate(); err != nil {
			return app.Genesis{}, errors.Wrap(err, "market")
		}
	}

	accounts := p.Accounts
	if accounts == nil {
		accounts = []bank.GenesisAccount{}
	}
	assets := p.Assets
	if assets == nil {
		assets = []asset.GenesisAsset{}
	}
	state := weave.Options{}
	if err := setOption(state, "bank", accounts); err != nil {
		return app.Genesis{}, err
	}
	if err := setOption(state, "assets", assets); err != nil {
		return app.Genesis{}, err
	}
	if p.Market != nil {
		conf := map[string]*market.Config{market.ConfigPkg: p.Market}
		if err := setOption(state, "conf", conf); err != nil {
			return app.Genesis{}, err
		}
	}
	return app.Genesis{ChainID: p.ChainID, AppState: state}, nil
}

func setOption(opts weave.Options, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "%s: %s", key, err)
	}
	opts[key] = raw
	return nil
}
