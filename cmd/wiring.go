package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/tinoosan/booksapi/internal/config"
	"github.com/tinoosan/booksapi/internal/credential"
	"github.com/tinoosan/booksapi/internal/devseed"
	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/service/adherent"
	"github.com/tinoosan/booksapi/internal/service/author"
	"github.com/tinoosan/booksapi/internal/service/book"
	"github.com/tinoosan/booksapi/internal/service/loan"
	"github.com/tinoosan/booksapi/internal/storage/memory"
	mongostore "github.com/tinoosan/booksapi/internal/storage/mongo"
	pgstore "github.com/tinoosan/booksapi/internal/storage/postgres"
)

// loadConfig loads and validates settings and builds the process logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := buildLogger(cfg.Log)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openStore opens the backend chosen by configuration.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (docstore.Store, error) {
	backend := cfg.Backend()
	var (
		st  docstore.Store
		err error
	)
	switch backend {
	case config.BackendMongo:
		st, err = mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendPostgres:
		st, err = pgstore.Open(ctx, cfg.DatabaseURL)
	default:
		st = memory.New()
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	logger.Info("storage backend: " + string(backend))
	return st, nil
}

// newIssuer builds the token issuer, generating an ephemeral secret when none
// is configured. Tokens signed with it do not survive a restart.
// closeStore releases st under timeout and logs a failure instead of
// dropping it.
func closeStore(st docstore.Store, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := st.Close(ctx); err != nil {
		logger.Error("store close error", "err", err)
	}
}

func newIssuer(cfg *config.Config, logger *slog.Logger) (*credential.Issuer, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		secret = hex.EncodeToString(b)
		logger.Warn("JWT_SECRET not set; using an ephemeral secret")
	}
	return credential.NewIssuer(secret, cfg.TokenTTL)
}

func newServices(st docstore.Store, hasher credential.Hasher, issuer *credential.Issuer) devseed.Services {
	return devseed.Services{
		Authors:   author.New(st.Authors(), st.Books()),
		Books:     book.New(st.Books(), st.Authors()),
		Adherents: adherent.New(st.Adherents(), st.Loans(), hasher, issuer),
		Loans:     loan.New(st.Loans()),
	}
}
