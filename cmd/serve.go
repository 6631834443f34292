package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikolayk812/vespa-storefront/internal/checkout"
	"github.com/nikolayk812/vespa-storefront/internal/server"
	"github.com/nikolayk812/vespa-storefront/internal/session"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP API",
	Long:  `Starts the JSON API serving the catalog, color matching, carts, wishlists and checkout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Port = servePort
		}

		log := newLogger(cfg)

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, closeStore, err := openStore(ctx, cfg.Store, log)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer closeStore()

		srv := server.New(
			server.Config{Port: cfg.Port, AllowAll: cfg.AllowAll},
			cat,
			session.NewRegistry(store, log, session.WithMaxSessions(cfg.Sessions.MaxCached)),
			checkout.NewService(cfg.Checkout.Delay, log),
			log,
		)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
