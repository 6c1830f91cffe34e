package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinoosan/booksapi/internal/credential"
	httpapi "github.com/tinoosan/booksapi/internal/httpapi/v1"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "err", err)
		return err
	}
	defer closeStore(st, cfg.ShutdownTimeout, logger)

	hasher := credential.NewHasher(cfg.BcryptCost)
	issuer, err := newIssuer(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.DevSeed {
		if err := seed(ctx, newServices(st, hasher, issuer), logger); err != nil {
			logger.Error("dev seed failed", "err", err)
		}
	}

	api := httpapi.New(st, hasher, issuer, httpapi.Options{
		EmptyListNotFound: cfg.EmptyListNotFound,
		MaxPageSize:       cfg.MaxPageSize,
		CORSOrigins:       cfg.CORSOrigins,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("library service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
		return nil
	case err := <-errCh:
		logger.Error("server error", "err", err)
		return err
	}
}
