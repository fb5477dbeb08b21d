// Package config provides unified configuration loading for the titlex
// extraction engine. Supports YAML files, environment variables, and
// programmatic overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the engine.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	PatternStore  PatternStoreConfig  `yaml:"pattern_store"`
	Cache         CacheConfig         `yaml:"cache"`
	Extraction    ExtractionConfig    `yaml:"extraction"`
	Worker        WorkerConfig        `yaml:"worker"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings for cmd/titlex-api.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// PatternStoreConfig holds pattern-library backend settings.
type PatternStoreConfig struct {
	Driver   string         `yaml:"driver"` // sqlite, postgres, or yaml
	YAMLPath string         `yaml:"yaml_path"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	JournalMode  string `yaml:"journal_mode"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// CacheConfig holds pattern-snapshot cache settings.
type CacheConfig struct {
	Driver string        `yaml:"driver"` // memory or redis
	TTL    time.Duration `yaml:"ttl"`
	Redis  RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ExtractionConfig mirrors extraction.Config in YAML-addressable form; see
// §6 of the specification for the recognized option set.
type ExtractionConfig struct {
	YearMin                int    `yaml:"year_min"`
	YearMax                int    `yaml:"year_max"`
	PreserveOriginalCasing bool   `yaml:"preserve_original_casing"`
	AllowWordSeparators    bool   `yaml:"allow_word_separators"`
	ASCIIOnlySlug          bool   `yaml:"ascii_only_slug"`
	AcronymPolicy          string `yaml:"acronym_policy"` // stop_at_acronym or skip_acronym
}

// WorkerConfig holds batch worker-pool settings.
type WorkerConfig struct {
	PoolSize  int           `yaml:"pool_size"`
	QueueSize int           `yaml:"queue_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	// Load .env if present, trying the working directory and a couple of
	// parents so `go run ./cmd/...` works the same from the repo root or
	// from inside cmd/titlex-cli.
	_ = godotenv.Load()
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../../.env")

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8085,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     30 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		PatternStore: PatternStoreConfig{
			Driver:   "sqlite",
			YAMLPath: "patterns.yaml",
			SQLite: SQLiteConfig{
				Path:         "/tmp/titlex-patterns.db",
				MaxOpenConns: 1,
				JournalMode:  "WAL",
			},
			Postgres: PostgresConfig{
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 5 * time.Minute,
			},
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    5 * time.Minute,
			Redis: RedisConfig{
				Addr:     "localhost:6380",
				DB:       0,
				PoolSize: 10,
			},
		},
		Extraction: ExtractionConfig{
			YearMin:                2020,
			YearMax:                2040,
			PreserveOriginalCasing: true,
			AllowWordSeparators:    true,
			ASCIIOnlySlug:          true,
			AcronymPolicy:          "stop_at_acronym",
		},
		Worker: WorkerConfig{
			PoolSize:  8,
			QueueSize: 256,
			Timeout:   30 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.PatternStore.Driver != "sqlite" && c.PatternStore.Driver != "postgres" && c.PatternStore.Driver != "yaml" {
		return fmt.Errorf("invalid pattern store driver: %s", c.PatternStore.Driver)
	}
	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}
	if c.Extraction.YearMin > c.Extraction.YearMax {
		return fmt.Errorf("extraction.year_min must be <= year_max")
	}
	if c.Extraction.AcronymPolicy != "stop_at_acronym" && c.Extraction.AcronymPolicy != "skip_acronym" {
		return fmt.Errorf("invalid acronym policy: %s", c.Extraction.AcronymPolicy)
	}
	if c.Worker.PoolSize < 1 {
		return fmt.Errorf("worker.pool_size must be >= 1")
	}
	return nil
}

// DatabaseDSN returns the appropriate pattern-store connection string.
func (c *Config) DatabaseDSN() string {
	if c.PatternStore.Driver == "sqlite" {
		return c.PatternStore.SQLite.Path
	}
	return c.PatternStore.Postgres.DSN
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		switch {
		case strings.HasPrefix(v, "sqlite:"):
			cfg.PatternStore.Driver = "sqlite"
			cfg.PatternStore.SQLite.Path = strings.TrimPrefix(v, "sqlite:")
		case strings.HasPrefix(v, "postgres"):
			cfg.PatternStore.Driver = "postgres"
			cfg.PatternStore.Postgres.DSN = v
		}
	}
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.PatternStore.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}
	if v := os.Getenv("PATTERNS_YAML_PATH"); v != "" {
		cfg.PatternStore.Driver = "yaml"
		cfg.PatternStore.YAMLPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("WORKER_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Worker.PoolSize = n
		}
	}
}

// ResolveRelativePath resolves a path relative to the config file location.
func ResolveRelativePath(configPath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	configDir := filepath.Dir(configPath)
	return filepath.Join(configDir, targetPath)
}
