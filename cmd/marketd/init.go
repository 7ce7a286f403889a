package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/weave-market/app"
	marketapp "github.com/iov-one/weave-market/cmd/marketd/app"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/market"
	"github.com/spf13/cobra"
)

func (c *cli) initCmd() *cobra.Command {
	var (
		authority      string
		treasury       string
		amount         uint64
		feeBps         uint32
		policy         string
		listingDeposit uint64
		noMarket       bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the genesis and the initial state of a local chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.genesisPath()); err == nil {
				return errors.Wrapf(errors.ErrDuplicate, "genesis %s", c.genesisPath())
			}

			kf, err := c.loadKey(authority)
			if errors.ErrNotFound.Is(err) {
				kf, err = c.createKey(authority)
			}
			if err != nil {
				return err
			}

			params := marketapp.GenesisParams{
				ChainID:  c.conf.GetString(flagChainID),
				Accounts: []bank.GenesisAccount{{Address: kf.Address, Amount: amount}},
			}
			if !noMarket {
				conf := &market.Config{
					Authority:      kf.Address,
					Treasury:       kf.Address,
					FeeBps:         feeBps,
					ListingDeposit: listingDeposit,
				}
				if treasury != "" {
					if conf.Treasury, err = c.address(treasury); err != nil {
						return err
					}
				}
				if conf.Policy, err = market.ParsePolicy(policy); err != nil {
					return err
				}
				params.Market = conf
			}
			gen, err := marketapp.GenInitOptions(params)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(c.genesisPath()), 0700); err != nil {
				return errors.Wrap(errors.ErrDatabase, err.Error())
			}
			if err := app.SaveGenesis(c.genesisPath(), gen); err != nil {
				return err
			}

			node, err := c.openNode(nil)
			if err != nil {
				return err
			}
			defer node.Close()
			if err := node.InitChain(gen); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "initialized chain %s, authority %s (key %q)\n", gen.ChainID, kf.Address, kf.Name)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&authority, "authority", "authority", "name of the key funded at genesis and used as the marketplace authority")
	f.StringVar(&treasury, "treasury", "", "key name or address receiving the fees, the authority by default")
	f.Uint64Var(&amount, "amount", 1000000000000, "genesis balance of the authority")
	f.Uint32Var(&feeBps, "fee-bps", 250, "marketplace fee in basis points")
	f.StringVar(&policy, "policy", market.SellerPaysFee.String(), "settlement policy: seller_pays_fee or buyer_pays_fee_and_royalty")
	f.Uint64Var(&listingDeposit, "listing-deposit", 0, "deposit locked by every listing and returned when it closes")
	f.BoolVar(&noMarket, "no-market", false, "do not create the marketplace at genesis")
	return cmd
}
