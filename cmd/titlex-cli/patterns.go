package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/titlex/engine/internal/patterns"
)

func newPatternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect and manage the pattern library",
	}
	cmd.AddCommand(newPatternsValidateCmd())
	cmd.AddCommand(newPatternsReloadCmd())
	return cmd
}

func newPatternsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configured pattern store and report per-kind counts",
		Long: `validate loads every pattern from the configured store (yaml,
sqlite, or postgres, per pattern_store.driver) through the same validation
NewMemoryLibrary applies at startup — duplicate (kind, term) pairs, bad
regexes, and misordered geographic priorities all surface here before they
reach a running server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			source, err := openPatternSource(cfg)
			if err != nil {
				return fmt.Errorf("open pattern source: %w", err)
			}
			lib, err := source.LoadAll(ctx)
			if err != nil {
				ui.Error("validation failed: %v", err)
				return err
			}

			kinds := []patterns.Kind{
				patterns.KindMarketTerm, patterns.KindDatePattern,
				patterns.KindReportKeywordPrimary, patterns.KindReportKeywordSecondary,
				patterns.KindReportSeparator, patterns.KindGeographicEntity, patterns.KindGeographicAlias,
			}
			rows := make([][]string, 0, len(kinds))
			for _, k := range kinds {
				rows = append(rows, []string{string(k), fmt.Sprintf("%d", len(lib.PatternsOf(k)))})
			}
			ui.Section("Pattern Library")
			ui.Table([]string{"kind", "count"}, rows)
			ui.Success("pattern library is valid")
			return nil
		},
	}
}

func newPatternsReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Force a fresh load from the pattern store and refresh the shared cache snapshot",
		Long: `reload re-reads the configured pattern store, re-validates it,
and writes a new versioned snapshot to the configured cache. Running
servers do not read that snapshot; they re-read the pattern store
themselves on their own auto-reload tick (once a minute).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			loader, err := newPatternLoader(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("initial load: %w", err)
			}
			if err := loader.Reload(ctx); err != nil {
				ui.Error("reload failed: %v", err)
				return err
			}
			ui.Success("pattern library reloaded")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the titlex CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(versionString())
			return nil
		},
	}
}

func versionString() string {
	return "titlex-cli (dev build)"
}
