package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/crypto"
	"github.com/iov-one/weave-market/errors"
	"github.com/spf13/cobra"
)

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,32}$`).MatchString

// keyFile is the on disk form of a signing key.
type keyFile struct {
	Name    string        `json:"name"`
	Address weave.Address `json:"address"`
	PubKey  []byte        `json:"pub_key"`
	Secret  []byte        `json:"secret"`
}

func (c *cli) keyPath(name string) string {
	return filepath.Join(c.keysDir(), name+".json")
}

// createKey generates and stores a new ed25519 key.
func (c *cli) createKey(name string) (*keyFile, error) {
	if !isKeyName(name) {
		return nil, errors.Wrapf(errors.ErrInput, "key name %q", name)
	}
	path := c.keyPath(name)
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "key %q", name)
	}
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	kf := &keyFile{
		Name:    name,
		Address: pub.Address(),
		PubKey:  pub.Ed25519,
		Secret:  priv.Ed25519,
	}
	raw, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(c.keysDir(), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return kf, nil
}

// loadKey reads a key created with createKey.
func (c *cli) loadKey(name string) (*keyFile, error) {
	if !isKeyName(name) {
		return nil, errors.Wrapf(errors.ErrInput, "key name %q", name)
	}
	raw, err := ioutil.ReadFile(c.keyPath(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key %q: %s", name, err)
	}
	return &kf, nil
}

// signer returns the private key stored under given name.
func (c *cli) signer(name string) (crypto.Signer, error) {
	kf, err := c.loadKey(name)
	if err != nil {
		return nil, err
	}
	priv := &crypto.PrivateKey{Ed25519: kf.Secret}
	if priv.PublicKey() == nil {
		return nil, errors.Wrapf(errors.ErrInput, "key %q has no valid secret", name)
	}
	return priv, nil
}

// address resolves a key name or an encoded address.
func (c *cli) address(nameOrAddr string) (weave.Address, error) {
	if isKeyName(nameOrAddr) {
		switch kf, err := c.loadKey(nameOrAddr); {
		case err == nil:
			return kf.Address, nil
		case !errors.ErrNotFound.Is(err):
			return nil, err
		}
	}
	addr, err := weave.ParseAddress(nameOrAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "address %q", nameOrAddr)
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrapf(err, "address %q", nameOrAddr)
	}
	return addr, nil
}

func (c *cli) keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage signing keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Generate a new ed25519 key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kf, err := c.createKey(args[0])
				if err != nil {
					return err
				}
				return printKey(cmd.OutOrStdout(), kf)
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print the address of a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kf, err := c.loadKey(args[0])
				if err != nil {
					return err
				}
				return printKey(cmd.OutOrStdout(), kf)
			},
		},
	)
	return cmd
}

func printKey(w io.Writer, kf *keyFile) error {
	b32, err := kf.Address.Bech32()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", kf.Name, kf.Address, b32)
	return err
}
