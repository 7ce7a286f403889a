package gconf

import (
	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
)

// ReadStore is the part of weave.ReadOnlyKVStore needed to load.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of weave.KVStore needed to save and delete.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
	Delete([]byte) error
}

type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is what an extension stores.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and replaces the configuration of pkg with it.
func Save(db Store, pkg string, src ValidMarshaler) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "config %q", k)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal config %q", k)
	}
	return db.Set(k, raw)
}

// Load fails with ErrNotFound when pkg has no configuration.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := load(db, pkg)
	if err != nil {
		return err
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal config %q", key(pkg))
	}
	return nil
}

func load(db ReadStore, pkg string) ([]byte, error) {
	raw, err := db.Get(key(pkg))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "config %q", key(pkg))
	}
	return raw, nil
}

func Exists(db ReadStore, pkg string) (bool, error) {
	raw, err := db.Get(key(pkg))
	return raw != nil, err
}

// Delete fails with ErrNotFound when pkg has no configuration.
func Delete(db Store, pkg string) error {
	if _, err := load(db, pkg); err != nil {
		return err
	}
	return db.Delete(key(pkg))
}

// InitConfig reads opts["conf"][pkg] into conf and saves it. A genesis
// without that entry fails with ErrNotFound.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var section weave.Options
	if err := opts.ReadOptions("conf", &section); err != nil {
		return errors.Wrap(err, "genesis conf")
	}
	if section[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %q configuration", pkg)
	}
	if err := section.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis conf %s", pkg)
	}
	return Save(db, pkg, conf)
}
