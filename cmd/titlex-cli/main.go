// Package main provides the titlex CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/titlex/engine/internal/cache"
	"github.com/titlex/engine/internal/config"
	"github.com/titlex/engine/internal/observability"
	"github.com/titlex/engine/internal/patterns"
)

var (
	// Global flags
	cfgFile  string
	jsonMode bool
	verbose  bool
	noColor  bool

	// Configuration and logger, populated by rootCmd's PersistentPreRunE.
	cfg    *config.Config
	logger *observability.Logger
	ui     *UI
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "titlex",
	Short: "titlex extracts structured metadata from market-research report titles",
	Long: `titlex parses market-research report titles into structured metadata:
market-term type, publication date, report type, geographic scope, and a
normalized topic.

Use this tool to:
- Extract metadata from a single title
- Batch-process titles from a file, concurrently
- Validate and reload the pattern library

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if jsonMode {
			logFormat = "json"
		}
		logLevel := cfg.Observability.LogLevel
		if verbose {
			logLevel = "debug"
		}
		logger = observability.NewLogger(observability.LogConfig{
			Level:       logLevel,
			Format:      logFormat,
			ServiceName: "titlex-cli",
		})

		ui = NewUI(jsonMode, noColor || !IsTerminal())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&jsonMode, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newPatternsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openPatternSource builds the patterns.Source matching the configured
// backend driver, so every subcommand resolves a library the same way.
func openPatternSource(cfg *config.Config) (patterns.Source, error) {
	switch cfg.PatternStore.Driver {
	case "yaml":
		return patterns.YAMLSource{Path: cfg.PatternStore.YAMLPath}, nil
	case "sqlite":
		return patterns.OpenSQLite(cfg.PatternStore.SQLite.Path)
	case "postgres":
		return patterns.OpenPostgresDSN(cfg.PatternStore.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown pattern store driver: %s", cfg.PatternStore.Driver)
	}
}

// openCache builds the cache.Client matching the configured driver, used to
// back the hot-reloadable pattern loader.
func openCache(cfg *config.Config) (cache.Client, error) {
	switch cfg.Cache.Driver {
	case "redis":
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	default:
		return cache.NewMemoryClient(1024), nil
	}
}

// newPatternLoader opens the configured store and performs the initial load.
func newPatternLoader(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*patterns.Loader, error) {
	source, err := openPatternSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("open pattern source: %w", err)
	}
	cacheClient, err := openCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return patterns.NewLoader(ctx, source, cacheClient, logger)
}
