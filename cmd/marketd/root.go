package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/weave-market/cmd/marketd/app"
	"github.com/iov-one/weave-market/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagChainID  = "chain-id"
	flagLogLevel = "log-level"

	envPrefix = "MARKETD"
)

// cli holds the configuration shared by all commands. Every value can be
// set with a flag or with a MARKETD_ prefixed environment variable.
type cli struct {
	conf *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{conf: viper.New()}
	c.conf.SetEnvPrefix(envPrefix)
	c.conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.conf.AutomaticEnv()

	root := &cobra.Command{
		Use:           "marketd",
		Short:         "Escrowed asset marketplace node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".marketd")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagChainID, "market-local", "chain id written to a new genesis")
	root.PersistentFlags().String(flagLogLevel, "error", "minimal log level: debug, info, error or none")
	for _, name := range []string{flagHome, flagChainID, flagLogLevel} {
		if err := c.conf.BindPFlag(name, root.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		c.initCmd(),
		c.keysCmd(),
		c.txCmd(),
		c.queryCmd(),
		c.startCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) home() string {
	return c.conf.GetString(flagHome)
}

func (c *cli) dbPath() string {
	return filepath.Join(c.home(), "data", "market.db")
}

func (c *cli) genesisPath() string {
	return filepath.Join(c.home(), "config", "genesis.json")
}

func (c *cli) keysDir() string {
	return filepath.Join(c.home(), "keys")
}

func (c *cli) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "marketd")
	level := c.conf.GetString(flagLogLevel)
	if level == "none" {
		return log.NewNopLogger(), nil
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// openNode loads the local chain state. reg may be nil.
func (c *cli) openNode(reg prometheus.Registerer) (*app.Node, error) {
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(c.dbPath()), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return app.OpenNode(c.dbPath(), logger, reg)
}
