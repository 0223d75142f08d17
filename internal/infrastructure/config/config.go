package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all console configuration.
type Config struct {
	API       APIConfig
	Storage   StorageConfig
	Session   SessionConfig
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// APIConfig describes the outreach backend and the outbound client.
type APIConfig struct {
	BaseURL    string        `envconfig:"CONSOLE_API_URL" default:"http://localhost:8001"`
	Timeout    time.Duration `envconfig:"CONSOLE_API_TIMEOUT" default:"30s"`
	MaxRetries int           `envconfig:"CONSOLE_API_RETRIES" default:"2"`
	RateLimit  float64       `envconfig:"CONSOLE_API_RPS" default:"0"`
}

// StorageConfig controls where the bearer token is persisted.
type StorageConfig struct {
	TokenFile  string `envconfig:"CONSOLE_TOKEN_FILE"`
	Passphrase string `envconfig:"CONSOLE_TOKEN_PASSPHRASE"`
	Ephemeral  bool   `envconfig:"CONSOLE_EPHEMERAL" default:"false"`
}

// SessionConfig holds session manager policy.
type SessionConfig struct {
	LogoutOnUnauthorized bool `envconfig:"CONSOLE_LOGOUT_ON_UNAUTHORIZED" default:"false"`
}

// ServerConfig holds the local console server settings.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds inbound rate limiting for the console server.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig lists origins allowed to call the console server.
type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Storage.TokenFile == "" {
		cfg.Storage.TokenFile = DefaultTokenFile()
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "http://localhost:8001",
			Timeout:    30 * time.Second,
			MaxRetries: 2,
		},
		Storage: StorageConfig{
			TokenFile: DefaultTokenFile(),
		},
		Server: ServerConfig{
			Port: "8080",
			Host: "127.0.0.1",
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
	}
}

// DefaultTokenFile is the per-user token location, falling back to the
// working directory when no config dir can be resolved.
func DefaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".outreach-console", "session.json")
	}
	return filepath.Join(dir, "outreach-console", "session.json")
}

// Addr returns the console server listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
