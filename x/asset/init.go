package asset

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
)

const optKey = "assets"

// GenesisAsset is used to parse the json from genesis file.
type GenesisAsset struct {
	ID     string        `json:"id"`
	Issuer weave.Address `json:"issuer"`
	Holder weave.Address `json:"holder"`
	URI    string        `json:"uri"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis issues all assets declared in the genesis file.
func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var assets []GenesisAsset
	if err := opts.ReadOptions(optKey, &assets); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for _, a := range assets {
		if err := ctrl.Issue(kv, []byte(a.ID), a.Issuer, a.Holder, a.URI); err != nil {
			return errors.Wrapf(err, "genesis asset %q", a.ID)
		}
	}
	return nil
}
