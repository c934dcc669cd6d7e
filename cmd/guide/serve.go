package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	guide "github.com/saltaireguide/directory"
	"github.com/saltaireguide/directory/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve listing pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			module, err := guide.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer module.Close()

			logger := logging.HTTPLogger(module.Container().LoggerProvider())
			server := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           module.Handler(),
				ReadTimeout:       cfg.Server.ReadTimeout,
				ReadHeaderTimeout: cfg.Server.ReadTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server.listening", "addr", cfg.Server.Addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("server.shutdown")
			return server.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
