package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Shell     ShellConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string   `envconfig:"AURORA_PORT" default:"8000"`
	Host        string   `envconfig:"AURORA_HOST" default:"0.0.0.0"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// StorageConfig selects where the filesystem snapshot and settings live.
type StorageConfig struct {
	Backend     string `envconfig:"AURORA_STORAGE_BACKEND" default:"badger"`
	DataDir     string `envconfig:"AURORA_DATA_DIR" default:"/tmp/aurora"`
	Compression string `envconfig:"AURORA_SNAPSHOT_COMPRESSION" default:"zstd"`
}

// BadgerDir is the database directory under DataDir.
func (s StorageConfig) BadgerDir() string {
	return filepath.Join(s.DataDir, "badger")
}

// ShellConfig holds shell identity and lookup settings.
type ShellConfig struct {
	Hostname string `envconfig:"AURORA_HOSTNAME" default:"aurora"`
	User     string `envconfig:"AURORA_USER" default:"user"`
	Path     string `envconfig:"AURORA_PATH" default:"/bin:/usr/bin"`
}

// SearchPath splits Path into directories.
func (s ShellConfig) SearchPath() []string {
	var dirs []string
	for _, d := range strings.Split(s.Path, ":") {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate rejects values the rest of the system cannot act on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case "memory", "badger":
	default:
		return fmt.Errorf("invalid storage backend %q: want memory or badger", c.Storage.Backend)
	}
	switch strings.ToLower(c.Storage.Compression) {
	case "none", "zstd":
	default:
		return fmt.Errorf("invalid snapshot compression %q: want none or zstd", c.Storage.Compression)
	}
	if c.Shell.User == "" {
		return fmt.Errorf("shell user must not be empty")
	}
	if len(c.Shell.SearchPath()) == 0 {
		return fmt.Errorf("shell search path must name at least one directory")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			CORSOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Backend:     "badger",
			DataDir:     "/tmp/aurora",
			Compression: "zstd",
		},
		Shell: ShellConfig{
			Hostname: "aurora",
			User:     "user",
			Path:     "/bin:/usr/bin",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
