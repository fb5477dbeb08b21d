package extraction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titlex/engine/internal/patterns"
)

// testLibrary builds a small but representative pattern library covering
// every kind the pipeline consumes, large enough to exercise the seed
// end-to-end scenarios from the specification's worked examples.
func testLibrary(t *testing.T) *patterns.MemoryLibrary {
	raw := []patterns.Pattern{
		// date_pattern
		{Kind: patterns.KindDatePattern, Term: "year_range", Regex: `\b(20\d{2})\s*(?:-|–|—|\bto\b)\s*(20\d{2})\b`, FormatType: patterns.FormatRange, Priority: 1, Active: true},
		{Kind: patterns.KindDatePattern, Term: "bracket_year", Regex: `\[(20\d{2})\]`, FormatType: patterns.FormatBracket, Priority: 1, Active: true},
		{Kind: patterns.KindDatePattern, Term: "terminal_year", Regex: `,\s*(20\d{2})$`, FormatType: patterns.FormatTerminal, Priority: 2, Active: true},
		{Kind: patterns.KindDatePattern, Term: "embedded_year", Regex: `\b(20\d{2})\b`, FormatType: patterns.FormatEmbedded, Priority: 3, Active: true},

		// market_term
		{Kind: patterns.KindMarketTerm, Term: "Market for", Priority: 1, Active: true},
		{Kind: patterns.KindMarketTerm, Term: "Market in", Priority: 2, Active: true},
		{Kind: patterns.KindMarketTerm, Term: "Market by", Priority: 3, Active: true},

		// report_keyword_primary
		{Kind: patterns.KindReportKeywordPrimary, Term: "Market", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Size", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Share", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Report", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Analysis", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Industry", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Growth", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Trends", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordPrimary, Term: "Outlook", FormatType: patterns.FormatPrimary, Priority: 1, Active: true},

		// report_keyword_secondary (misspellings + long tail)
		{Kind: patterns.KindReportKeywordSecondary, Term: "Industy", FormatType: patterns.FormatSecondary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordSecondary, Term: "Indsutry", FormatType: patterns.FormatSecondary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordSecondary, Term: "Repot", FormatType: patterns.FormatSecondary, Priority: 1, Active: true},
		{Kind: patterns.KindReportKeywordSecondary, Term: "Sze", FormatType: patterns.FormatSecondary, Priority: 1, Active: true},

		// report_separator
		{Kind: patterns.KindReportSeparator, Term: "&", Priority: 1, Active: true},
		{Kind: patterns.KindReportSeparator, Term: ",", Priority: 1, Active: true},
		{Kind: patterns.KindReportSeparator, Term: "/", Priority: 1, Active: true},
		{Kind: patterns.KindReportSeparator, Term: "+", Priority: 1, Active: true},
		{Kind: patterns.KindReportSeparator, Term: "and", Priority: 1, Active: true},
		{Kind: patterns.KindReportSeparator, Term: "or", Priority: 1, Active: true},
		{Kind: patterns.KindReportSeparator, Term: "plus", Priority: 1, Active: true},

		// geographic_entity (compound-first priority)
		{Kind: patterns.KindGeographicEntity, Term: "North America", Priority: 1, Active: true},
		{Kind: patterns.KindGeographicEntity, Term: "Middle East", Priority: 1, Active: true},
		{Kind: patterns.KindGeographicEntity, Term: "APAC", Priority: 2, Active: true},
		{Kind: patterns.KindGeographicEntity, Term: "America", Priority: 5, Active: true},
		{Kind: patterns.KindGeographicEntity, Term: "Europe", Priority: 2, Active: true},
		{Kind: patterns.KindGeographicEntity, Term: "Global", Priority: 2, Active: true},
	}

	lib, err := patterns.NewMemoryLibrary(raw)
	require.NoError(t, err)
	return lib
}
