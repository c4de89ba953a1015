package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/server"
)

const shutdownTimeout = 15 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var cfgPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP path service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewLoader(cfgPath, a.logger)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg := loader.Config()
			listen := cfg.Server.Addr
			if addr != "" {
				listen = addr
			}

			loader.OnChange(func(c *config.Config) {
				a.logger.Info("config reloaded",
					zap.String("algorithm", c.Search.Algorithm),
					zap.String("frontier", c.Search.Frontier),
					zap.Int("max_cells", c.Search.MaxCells))
			})
			stopWatch, err := loader.Watch()
			if err != nil {
				a.logger.Warn("config watcher unavailable (hot-reload disabled)", zap.Error(err))
			} else {
				defer stopWatch()
			}

			srv := &http.Server{
				Addr:         listen,
				Handler:      server.New(loader, a.logger),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				a.logger.Info("server starting", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				return fmt.Errorf("server: %w", err)
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			a.logger.Info("goodbye")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "YAML config file (defaults when empty)")
	f.StringVar(&addr, "addr", "", "listen address, overrides server.addr and $"+config.EnvAddr)
	return cmd
}
