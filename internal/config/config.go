// Package config loads client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreRemote   = "remote"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds client settings.
type Config struct {
	APIURL   string     `env:"ORKADIA_API_URL" envDefault:"https://api.orkadia.app"`
	AnonKey  string     `env:"ORKADIA_ANON_KEY"`
	Store    string     `env:"ORKADIA_STORE" envDefault:"remote"`
	DSN      string     `env:"ORKADIA_DSN"`
	Token    string     `env:"ORKADIA_TOKEN"`
	User     string     `env:"ORKADIA_USER"`
	Home     string     `env:"ORKADIA_HOME"`
	LogLevel slog.Level `env:"ORKADIA_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional .env file from the working directory, then the
// environment. The token falls back to the token file under Home.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	switch cfg.Store {
	case StoreRemote, StoreSQLite, StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("config: unknown ORKADIA_STORE %q", cfg.Store)
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		cfg.Home = filepath.Join(home, ".orkadia")
	}
	switch {
	case cfg.Store == StoreSQLite && cfg.DSN == "":
		cfg.DSN = filepath.Join(cfg.Home, "orkadia.db")
	case cfg.Store == StorePostgres && cfg.DSN == "":
		return nil, errors.New("config: ORKADIA_DSN is required for the postgres store")
	}

	if cfg.Token == "" {
		cfg.Token = cfg.readToken()
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("USER")
	}
	return &cfg, nil
}

// Local reports whether the store runs without the hosted backend. Local
// stores sign in as the citizen named by User.
func (c *Config) Local() bool { return c.Store != StoreRemote }

// TokenPath returns the token file, ~/.orkadia/token by default.
func (c *Config) TokenPath() string { return filepath.Join(c.Home, "token") }

// ThemePath returns the persisted theme file.
func (c *Config) ThemePath() string { return filepath.Join(c.Home, "theme") }

// LogPath returns the file the TUI logs to.
func (c *Config) LogPath() string { return filepath.Join(c.Home, "orkadia.log") }

func (c *Config) readToken() string {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveToken writes token to the token file with owner-only permissions.
func (c *Config) SaveToken(token string) error {
	if err := os.MkdirAll(c.Home, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(c.TokenPath(), []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	c.Token = token
	return nil
}

// ClearToken removes the token file. A missing file is not an error.
func (c *Config) ClearToken() error {
	if err := os.Remove(c.TokenPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	c.Token = ""
	return nil
}
