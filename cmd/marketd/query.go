package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	weave "github.com/iov-one/weave-market"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x/asset"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/market"
	"github.com/iov-one/weave-market/x/txindex"
	"github.com/spf13/cobra"
)

// queryFn reads a value from the committed state.
type queryFn func(db weave.ReadOnlyKVStore, args []string) (interface{}, error)

func (c *cli) queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read the last committed state",
	}
	cmd.AddCommand(
		c.querySubCmd("config", "Print the marketplace configuration", cobra.NoArgs,
			func(db weave.ReadOnlyKVStore, _ []string) (interface{}, error) {
				return market.LoadConfig(db)
			}),
		c.querySubCmd("listing <asset-id>", "Print an active listing", cobra.ExactArgs(1),
			func(db weave.ReadOnlyKVStore, args []string) (interface{}, error) {
				var l market.Listing
				if err := market.NewListingBucket().One(db, []byte(args[0]), &l); err != nil {
					return nil, err
				}
				return &l, nil
			}),
		c.querySubCmd("vault <asset-id>", "Print the vault holding a listed asset", cobra.ExactArgs(1),
			func(db weave.ReadOnlyKVStore, args []string) (interface{}, error) {
				var v market.Vault
				if err := market.NewVaultBucket().One(db, []byte(args[0]), &v); err != nil {
					return nil, err
				}
				return &v, nil
			}),
		c.querySubCmd("sale <hex-id>", "Print the receipt of a sale", cobra.ExactArgs(1),
			func(db weave.ReadOnlyKVStore, args []string) (interface{}, error) {
				id, err := hex.DecodeString(args[0])
				if err != nil {
					return nil, errors.Wrapf(errors.ErrInput, "sale id: %s", err)
				}
				var s market.Sale
				if err := market.NewSaleBucket().One(db, id, &s); err != nil {
					return nil, err
				}
				return &s, nil
			}),
		c.querySubCmd("asset <asset-id>", "Print an asset", cobra.ExactArgs(1),
			func(db weave.ReadOnlyKVStore, args []string) (interface{}, error) {
				return asset.NewController().Get(db, []byte(args[0]))
			}),
		c.querySubCmd("balance <key-or-address>", "Print the balance of an account", cobra.ExactArgs(1),
			func(db weave.ReadOnlyKVStore, args []string) (interface{}, error) {
				addr, err := c.address(args[0])
				if err != nil {
					return nil, err
				}
				amount, err := bank.NewController().Balance(db, addr)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"address": addr,
					"amount":  amount,
					"tokens":  bank.FormatAmount(amount),
				}, nil
			}),
		c.querySubCmd("index <type> <key>", "Print the transactions of an index", cobra.ExactArgs(2),
			func(db weave.ReadOnlyKVStore, args []string) (interface{}, error) {
				idx, err := txindex.NewController().Get(db, args[0], []byte(args[1]))
				if err != nil {
					return nil, err
				}
				ids := make([]string, len(idx.TransactionIDs))
				for i, id := range idx.TransactionIDs {
					ids[i] = hex.EncodeToString(id)
				}
				return map[string]interface{}{
					"marketplace":  idx.Marketplace,
					"type":         idx.IndexType,
					"key":          string(idx.Key),
					"transactions": ids,
				}, nil
			}),
	)
	return cmd
}

func (c *cli) querySubCmd(use, short string, args cobra.PositionalArgs, fn queryFn) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := c.openNode(nil)
			if err != nil {
				return err
			}
			defer node.Close()

			res, err := fn(node.Store(), args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
