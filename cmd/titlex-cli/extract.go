package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/titlex/engine/internal/extraction"
)

func newExtractCmd() *cobra.Command {
	var (
		title    string
		yearMin  int
		yearMax  int
		acronym  string
		noCasing bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract structured metadata from a single title",
		Long: `extract runs the five-stage extraction pipeline (market-term
classifier, date extractor, report-type extractor, geographic detector,
topic normalizer) against one title and prints the resulting Result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && len(args) > 0 {
				title = args[0]
			}
			if title == "" {
				return fmt.Errorf("a title is required: pass it as an argument or with --title")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			loader, err := newPatternLoader(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("load patterns: %w", err)
			}

			if yearMin == 0 {
				yearMin = cfg.Extraction.YearMin
			}
			if yearMax == 0 {
				yearMax = cfg.Extraction.YearMax
			}
			extractionCfg := extraction.ConfigFromSettings(
				yearMin, yearMax, !noCasing, cfg.Extraction.AllowWordSeparators,
				cfg.Extraction.ASCIIOnlySlug, acronymOrDefault(acronym, cfg.Extraction.AcronymPolicy),
			)

			result := extraction.Extract(title, loader.Current(), extractionCfg)
			return printResult(result)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "the title to extract (or pass as a positional argument)")
	cmd.Flags().IntVar(&yearMin, "year-min", 0, "override the configured minimum valid forecast year")
	cmd.Flags().IntVar(&yearMax, "year-max", 0, "override the configured maximum valid forecast year")
	cmd.Flags().StringVar(&acronym, "acronym-policy", "", "override acronym policy: stop_at_acronym or skip_acronym")
	cmd.Flags().BoolVar(&noCasing, "canonical-keyword-casing", false, "render report-type keywords in the pattern library's casing instead of the title's")

	return cmd
}

func acronymOrDefault(flagVal, configVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return configVal
}

func printResult(r *extraction.Result) error {
	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	ui.Section("Extraction Result")
	ui.Table([]string{"field", "value"}, [][]string{
		{"original_title", r.OriginalTitle},
		{"market_term_type", string(r.MarketTermType)},
		{"date_status", string(r.DateStatus)},
		{"extracted_date_range", r.ExtractedDateRange},
		{"extracted_report_type", r.ExtractedReportType},
		{"extracted_regions", fmt.Sprintf("%v", r.ExtractedRegions)},
		{"topic", r.Topic},
		{"topic_name", r.TopicName},
		{"confidence", fmt.Sprintf("%.2f", r.Confidence)},
		{"notes", r.Notes},
	})
	return nil
}
