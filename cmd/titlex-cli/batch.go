package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/titlex/engine/internal/extraction"
	"github.com/titlex/engine/internal/pipeline"
)

func newBatchCmd() *cobra.Command {
	var (
		inputPath string
		workers   int
		timeout   string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Extract metadata for every title in a file, concurrently",
		Long: `batch reads one title per line from --input (or stdin) and runs
them through a fixed-size worker pool against the shared pattern library,
printing one Result per line in input order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			titles, err := readTitles(inputPath)
			if err != nil {
				return err
			}
			if len(titles) == 0 {
				ui.Warning("no titles to process")
				return nil
			}

			timeoutDur := cfg.Worker.Timeout
			if timeout != "" {
				d, err := parseDurationFlag(timeout)
				if err != nil {
					return fmt.Errorf("parse --timeout: %w", err)
				}
				timeoutDur = d
			}
			poolSize := cfg.Worker.PoolSize
			if workers > 0 {
				poolSize = workers
			}

			ctx := context.Background()
			loader, err := newPatternLoader(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("load patterns: %w", err)
			}

			extractionCfg := extraction.ConfigFromSettings(
				0, 0, true, cfg.Extraction.AllowWordSeparators,
				cfg.Extraction.ASCIIOnlySlug, cfg.Extraction.AcronymPolicy,
			)

			pool := pipeline.NewPool(poolSize, timeoutDur)
			bar := ui.ProgressBar("extracting", int64(len(titles)))

			batchID := uuid.New().String()
			batchLogger := logger.WithBatch(batchID)

			results, runErr := pool.Run(ctx, titles, loader.Current(), extractionCfg)
			if bar != nil {
				bar.Set64(int64(len(titles)))
			}
			if runErr != nil {
				ui.Warning("%v", runErr)
			}

			for _, r := range results {
				if err := printBatchResult(r); err != nil {
					return err
				}
			}
			batchLogger.Info().Int("total", len(titles)).Msg("batch extraction complete")
			return runErr
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "file of titles, one per line (default: stdin)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "override the configured worker pool size")
	cmd.Flags().StringVar(&timeout, "timeout", "", "override the configured batch timeout (e.g. 45s)")

	return cmd
}

func parseDurationFlag(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func readTitles(path string) ([]string, error) {
	f := os.Stdin
	if path != "" {
		opened, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input file: %w", err)
		}
		defer opened.Close()
		f = opened
	}

	var titles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read titles: %w", err)
	}
	return titles, nil
}

func printBatchResult(r *extraction.Result) error {
	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(r)
	}
	fmt.Printf("%-60s -> %s | %s | %.2f\n", r.OriginalTitle, r.ExtractedReportType, strings.Join(r.ExtractedRegions, ","), r.Confidence)
	return nil
}
