package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/decocereus/magic-agent/internal/engine"
	"github.com/decocereus/magic-agent/internal/server"
	"github.com/decocereus/magic-agent/internal/store"
	"github.com/decocereus/magic-agent/internal/telemetry"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}

			var history *store.Store
			if cfg.Storage.Postgres.Enabled() {
				if err := store.Migrate("", cfg.Storage.Postgres.DSN(), "up", 0); err != nil {
					return err
				}
				history, err = store.New(cmd.Context(), cfg.Storage.Postgres)
				if err != nil {
					return err
				}
				defer history.Close()
			}

			opts := []engine.Option{engine.WithMetrics(telemetry.Default())}
			if history != nil {
				opts = append(opts, engine.WithHistory(history))
			}
			eng, err := engine.New(cfg, opts...)
			if err != nil {
				return err
			}
			defer eng.Close()

			srv := server.New(eng, history)
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(cfg.Server.Address) }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
