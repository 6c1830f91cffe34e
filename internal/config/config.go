// Package config loads process settings from the environment, optionally
// primed from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Backend names the document store selected by configuration.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
)

// DefaultCORSOrigins are the local frontend dev servers.
const DefaultCORSOrigins = "http://localhost:5173,http://127.0.0.1:5173"

type (
	Config struct {
		HTTP
		Storage
		Auth
		Log
		API
		Global
	}

	HTTP struct {
		Port        int
		CORSOrigins []string
	}
	Storage struct {
		MongoURI      string
		MongoDatabase string
		DatabaseURL   string
		DevSeed       bool
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	Log struct {
		Level  string
		Format string
	}
	API struct {
		EmptyListNotFound bool
		MaxPageSize       int64
	}
	Global struct {
		ShutdownTimeout time.Duration
	}
)

// Load reads .env when present, then the environment, applying defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromViper(viper.New()), nil
}

// FromViper builds a Config from v after binding the environment and defaults.
func FromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("cors_origins", DefaultCORSOrigins)
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_database", "books_api")
	v.SetDefault("database_url", "")
	v.SetDefault("dev_seed", false)
	v.SetDefault("jwt_secret", "") // generated at startup if empty
	v.SetDefault("token_ttl", "30m")
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("empty_list_not_found", true)
	v.SetDefault("max_page_size", 100)
	v.SetDefault("shutdown_timeout", "10s")

	return &Config{
		HTTP: HTTP{
			Port:        v.GetInt("PORT"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Storage: Storage{
			MongoURI:      strings.TrimSpace(v.GetString("MONGO_URI")),
			MongoDatabase: v.GetString("MONGO_DATABASE"),
			DatabaseURL:   strings.TrimSpace(v.GetString("DATABASE_URL")),
			DevSeed:       v.GetBool("DEV_SEED"),
		},
		Auth: Auth{
			JWTSecret:  v.GetString("JWT_SECRET"),
			TokenTTL:   v.GetDuration("TOKEN_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		},
		API: API{
			EmptyListNotFound: v.GetBool("EMPTY_LIST_NOT_FOUND"),
			MaxPageSize:       v.GetInt64("MAX_PAGE_SIZE"),
		},
		Global: Global{
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
	}
}

// Backend picks mongo when MONGO_URI is set, else postgres when DATABASE_URL
// is set, else the in-memory store.
func (c *Config) Backend() Backend {
	switch {
	case c.MongoURI != "":
		return BackendMongo
	case c.DatabaseURL != "":
		return BackendPostgres
	default:
		return BackendMemory
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d out of range", c.Port))
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.MaxPageSize <= 0 {
		problems = append(problems, "MAX_PAGE_SIZE must be positive")
	}
	if c.Backend() == BackendMongo && c.MongoDatabase == "" {
		problems = append(problems, "MONGO_DATABASE is required with MONGO_URI")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
