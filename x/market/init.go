package market

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the marketplace configuration declared under
// "conf"."market". A genesis without it leaves the marketplace to be created
// by an InitializeMsg.
func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var conf Config
	err := gconf.InitConfig(kv, opts, ConfigPkg, &conf)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
