package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tipjar/internal/api"
	"github.com/matzehuels/tipjar/internal/config"
)

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 30 * time.Second

// serveCommand creates the command that runs the web front-end.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front-end and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&c.noCache, "no-cache", false, "disable the response cache")

	return cmd
}

func (c *CLI) serve(ctx context.Context, cfg *config.Config) error {
	resolver, respCache, err := c.newResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer respCache.Close()
	installHooks(c.Logger)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.NewRouter(&api.RouterConfig{
			Resolver:    resolver,
			Stats:       resolver.Caches().Sizes,
			DonationURL: cfg.GittipURL,
			Logger:      c.Logger,
		}),
		ReadTimeout: 15 * time.Second,
		// Cold resolutions of large packages fan out to many upstream calls.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	c.Logger.Info("cache", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	return runServer(ctx, srv)
}

// runServer serves until ctx ends, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	logger := loggerFromContext(ctx)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
