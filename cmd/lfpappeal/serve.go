package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	lfpappeal "github.com/civicforms/lfpappeal"
	"github.com/civicforms/lfpappeal/internal/clients"
	"github.com/civicforms/lfpappeal/internal/config"
	"github.com/civicforms/lfpappeal/internal/logging"
	redisadapter "github.com/civicforms/lfpappeal/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the appeal web service",
	Long:  `Starts the HTTP server for the late filing penalty appeal journey. Configuration comes from the environment; see the README for the variable list.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		svc, err := buildService(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing service: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    cfg.BindAddr,
			Handler: svc,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

// buildService assembles the service from configuration: session store and
// locking, encryption and masking, and whichever downstream clients have
// URLs configured.
func buildService(cfg *config.Config, logger *slog.Logger) (*lfpappeal.Service, error) {
	activeKey, err := cfg.ActiveKey()
	if err != nil {
		return nil, err
	}
	fallbackKeys, err := cfg.FallbackKeys()
	if err != nil {
		return nil, err
	}

	opts := []lfpappeal.Option{
		lfpappeal.WithLogger(logger),
		lfpappeal.WithSessionTTL(cfg.SessionExpiry),
		lfpappeal.WithCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure),
		lfpappeal.WithEncryption(activeKey, fallbackKeys...),
		lfpappeal.WithSupportEmail(cfg.SupportEmail),
	}

	if cfg.RedisAddr != "" {
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		opts = append(opts,
			lfpappeal.WithStore(redisadapter.NewFromClient(client, redisadapter.WithTTL(cfg.SessionExpiry))),
			lfpappeal.WithLocker(redisadapter.NewLocker(client, "lfpappeal:lock:")),
		)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory session store (single replica only)")
	}

	if cfg.CompanyLookupURL != "" {
		opts = append(opts, lfpappeal.WithCompanyLookup(clients.NewCompanyClient(cfg.CompanyLookupURL)))
	}
	if cfg.EmailServiceURL != "" {
		opts = append(opts, lfpappeal.WithEmailSender(clients.NewEmailClient(cfg.EmailServiceURL)))
	}
	if cfg.FileTransferURL != "" {
		opts = append(opts, lfpappeal.WithFileTransfer(clients.NewFileTransferClient(cfg.FileTransferURL, cfg.FileTransferKey)))
	}

	return lfpappeal.New(opts...)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
