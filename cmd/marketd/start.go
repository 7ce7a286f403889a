package main

import (
	"net/http"

	"github.com/iov-one/weave-market/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	cmn "github.com/tendermint/tendermint/libs/common"
)

func (c *cli) startCmd() *cobra.Command {
	var bind, metrics string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the application to a tendermint node over ABCI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.logger()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(prometheus.NewGoCollector())
			node, err := c.openNode(reg)
			if err != nil {
				return err
			}

			if metrics != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
				go func() {
					if err := http.ListenAndServe(metrics, mux); err != nil {
						logger.Error("Metrics server stopped", "err", err)
					}
				}()
				logger.Info("Serving metrics", "bind", metrics)
			}

			logger.Info("Starting ABCI app", "bind", bind, "chain", node.ChainID(), "height", node.Height())
			svr, err := server.NewServer(bind, "socket", node.App())
			if err != nil {
				node.Close()
				return errors.Wrapf(errors.ErrInput, "creating listener: %s", err)
			}
			svr.SetLogger(logger.With("module", "abci-server"))
			if err := svr.Start(); err != nil {
				node.Close()
				return errors.Wrapf(errors.ErrState, "starting server: %s", err)
			}

			cmn.TrapSignal(logger, func() {
				svr.Stop()
				node.Close()
			})
			// Wait forever
			select {}
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "tcp://localhost:26658", "address server listens on")
	cmd.Flags().StringVar(&metrics, "metrics", "", "address serving prometheus metrics, disabled if empty")
	return cmd
}
