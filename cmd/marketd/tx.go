package main

import (
	"encoding/hex"
	"fmt"
	"time"

	weave "github.com/iov-one/weave-market"
	marketapp "github.com/iov-one/weave-market/cmd/marketd/app"
	"github.com/iov-one/weave-market/errors"
	"github.com/iov-one/weave-market/x/asset"
	"github.com/iov-one/weave-market/x/bank"
	"github.com/iov-one/weave-market/x/market"
	"github.com/iov-one/weave-market/x/txindex"
	"github.com/spf13/cobra"
)

const (
	flagFrom = "from"
	flagTime = "time"
)

func (c *cli) txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Sign a transaction and execute it in a new block",
	}
	cmd.PersistentFlags().String(flagFrom, "", "name of the signing key")
	cmd.PersistentFlags().String(flagTime, "", "block time in RFC3339, current time by default")

	cmd.AddCommand(
		c.sendCmd(),
		c.issueCmd(),
		c.transferCmd(),
		c.initializeCmd(),
		c.txSubCmd("pause", "Pause the marketplace", func(weave.Address) (weave.Msg, error) {
			return &market.PauseMsg{}, nil
		}),
		c.txSubCmd("unpause", "Resume the marketplace", func(weave.Address) (weave.Msg, error) {
			return &market.UnpauseMsg{}, nil
		}),
		c.txSubCmd("close", "Close a marketplace without listings", func(weave.Address) (weave.Msg, error) {
			return &market.CloseMsg{}, nil
		}),
		c.updateFeeCmd(),
		c.listCmd(),
		c.updateListingCmd(),
		c.delistCmd(),
		c.buyCmd(),
		c.createIndexCmd(),
		c.addTransactionCmd(),
	)
	return cmd
}

func (c *cli) sendCmd() *cobra.Command {
	var (
		to, memo string
		amount   uint64
	)
	cmd := c.txSubCmd("send", "Move tokens to another account", func(from weave.Address) (weave.Msg, error) {
		dest, err := c.address(to)
		if err != nil {
			return nil, err
		}
		return &bank.SendMsg{Source: from, Destination: dest, Amount: amount, Memo: memo}, nil
	})
	cmd.Flags().StringVar(&to, "to", "", "key name or address of the recipient")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "amount to send")
	cmd.Flags().StringVar(&memo, "memo", "", "optional note")
	return cmd
}

func (c *cli) issueCmd() *cobra.Command {
	var id, uri, holder string
	cmd := c.txSubCmd("issue", "Issue a new asset, signer is the creator", func(from weave.Address) (weave.Msg, error) {
		dest := from
		if holder != "" {
			var err error
			if dest, err = c.address(holder); err != nil {
				return nil, err
			}
		}
		return &asset.IssueMsg{ID: []byte(id), Holder: dest, URI: uri}, nil
	})
	cmd.Flags().StringVar(&id, "id", "", "asset id")
	cmd.Flags().StringVar(&uri, "uri", "", "asset uri")
	cmd.Flags().StringVar(&holder, "holder", "", "key name or address of the first holder, the signer by default")
	return cmd
}

func (c *cli) transferCmd() *cobra.Command {
	var id, to string
	cmd := c.txSubCmd("transfer", "Transfer an asset held by the signer", func(weave.Address) (weave.Msg, error) {
		dest, err := c.address(to)
		if err != nil {
			return nil, err
		}
		return &asset.TransferMsg{ID: []byte(id), Destination: dest}, nil
	})
	cmd.Flags().StringVar(&id, "id", "", "asset id")
	cmd.Flags().StringVar(&to, "to", "", "key name or address of the recipient")
	return cmd
}

func (c *cli) initializeCmd() *cobra.Command {
	var (
		treasury, policy string
		feeBps           uint32
		deposit          uint64
	)
	cmd := c.txSubCmd("initialize", "Create the marketplace, signer becomes the authority", func(from weave.Address) (weave.Msg, error) {
		msg := &market.InitializeMsg{Treasury: from, FeeBps: feeBps, ListingDeposit: deposit}
		var err error
		if treasury != "" {
			if msg.Treasury, err = c.address(treasury); err != nil {
				return nil, err
			}
		}
		if msg.Policy, err = market.ParsePolicy(policy); err != nil {
			return nil, err
		}
		return msg, nil
	})
	cmd.Flags().StringVar(&treasury, "treasury", "", "key name or address receiving the fees, the signer by default")
	cmd.Flags().Uint32Var(&feeBps, "fee-bps", 250, "marketplace fee in basis points")
	cmd.Flags().StringVar(&policy, "policy", market.SellerPaysFee.String(), "settlement policy")
	cmd.Flags().Uint64Var(&deposit, "listing-deposit", 0, "deposit locked by every listing")
	return cmd
}

func (c *cli) updateFeeCmd() *cobra.Command {
	var feeBps uint32
	cmd := c.txSubCmd("update-fee", "Change the marketplace fee", func(weave.Address) (weave.Msg, error) {
		return &market.UpdateFeeMsg{FeeBps: feeBps}, nil
	})
	cmd.Flags().Uint32Var(&feeBps, "fee-bps", 0, "marketplace fee in basis points")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var (
		id       string
		price    uint64
		duration int64
	)
	cmd := c.txSubCmd("list", "List an asset held by the signer", func(weave.Address) (weave.Msg, error) {
		return &market.ListMsg{AssetID: []byte(id), Price: price, Duration: duration}, nil
	})
	cmd.Flags().StringVar(&id, "id", "", "asset id")
	cmd.Flags().Uint64Var(&price, "price", 0, "asking price")
	cmd.Flags().Int64Var(&duration, "duration", 86400, "lifetime of the listing in seconds")
	return cmd
}

func (c *cli) updateListingCmd() *cobra.Command {
	var (
		id       string
		price    uint64
		duration int64
	)
	cmd := c.txSubCmd("update-listing", "Change the price and lifetime of a listing", func(weave.Address) (weave.Msg, error) {
		return &market.UpdateListingMsg{AssetID: []byte(id), Price: price, Duration: duration}, nil
	})
	cmd.Flags().StringVar(&id, "id", "", "asset id")
	cmd.Flags().Uint64Var(&price, "price", 0, "asking price")
	cmd.Flags().Int64Var(&duration, "duration", 86400, "lifetime of the listing in seconds, from now")
	return cmd
}

func (c *cli) delistCmd() *cobra.Command {
	var id string
	cmd := c.txSubCmd("delist", "Withdraw a listing", func(weave.Address) (weave.Msg, error) {
		return &market.DelistMsg{AssetID: []byte(id)}, nil
	})
	cmd.Flags().StringVar(&id, "id", "", "asset id")
	return cmd
}

func (c *cli) buyCmd() *cobra.Command {
	var (
		id         string
		royaltyBps uint32
	)
	cmd := c.txSubCmd("buy", "Buy a listed asset", func(weave.Address) (weave.Msg, error) {
		return &market.BuyMsg{AssetID: []byte(id), RoyaltyBps: royaltyBps}, nil
	})
	cmd.Flags().StringVar(&id, "id", "", "asset id")
	cmd.Flags().Uint32Var(&royaltyBps, "royalty-bps", 0, "creator royalty in basis points, buyer pays policy only")
	return cmd
}

func (c *cli) createIndexCmd() *cobra.Command {
	var indexType, key string
	cmd := c.txSubCmd("create-index", "Create a transaction index", func(weave.Address) (weave.Msg, error) {
		return &txindex.CreateIndexMsg{IndexType: indexType, Key: []byte(key)}, nil
	})
	cmd.Flags().StringVar(&indexType, "type", "", "index type")
	cmd.Flags().StringVar(&key, "key", "", "index key")
	return cmd
}

func (c *cli) addTransactionCmd() *cobra.Command {
	var indexType, key, txID string
	cmd := c.txSubCmd("add-tx", "Append a transaction id to an index", func(weave.Address) (weave.Msg, error) {
		raw, err := hex.DecodeString(txID)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "transaction id: %s", err)
		}
		return &txindex.AddTransactionMsg{IndexType: indexType, Key: []byte(key), TransactionID: raw}, nil
	})
	cmd.Flags().StringVar(&indexType, "type", "", "index type")
	cmd.Flags().StringVar(&key, "key", "", "index key")
	cmd.Flags().StringVar(&txID, "tx", "", "hex encoded transaction id")
	return cmd
}

// txSubCmd returns a command executing the message produced by build. build
// is given the address of the signer.
func (c *cli) txSubCmd(use, short string, build func(from weave.Address) (weave.Msg, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cmd.Flags().GetString(flagFrom)
			if err != nil {
				return err
			}
			if from == "" {
				return errors.Wrap(errors.ErrInput, "--from is required")
			}
			blockTime := time.Now()
			if raw, _ := cmd.Flags().GetString(flagTime); raw != "" {
				if blockTime, err = time.Parse(time.RFC3339, raw); err != nil {
					return errors.Wrapf(errors.ErrInput, "block time: %s", err)
				}
			}

			key, err := c.signer(from)
			if err != nil {
				return err
			}
			msg, err := build(key.PublicKey().Address())
			if err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			node, err := c.openNode(nil)
			if err != nil {
				return err
			}
			defer node.Close()

			tx := &marketapp.Tx{Msg: msg}
			if err := node.Sign(tx, key); err != nil {
				return err
			}
			res, err := node.Execute(tx, blockTime)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "height\t%d\n", node.Height())
			fmt.Fprintf(out, "data\t%X\n", res.Data)
			for _, t := range res.Tags {
				fmt.Fprintf(out, "tag\t%s=%s\n", t.Key, t.Value)
			}
			return nil
		},
	}
}
