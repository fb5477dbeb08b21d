package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_SeedScenarios(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	cases := []struct {
		name               string
		title              string
		marketTermType     MarketTermType
		dateRange          string
		dateStatus         DateStatus
		reportType         string
		regions            []string
		topic              string
		topicName          string
	}{
		{
			name:           "apac middle east ppe",
			title:          "APAC & Middle East Personal Protective Equipment Market Size & Share Report, 2024-2030",
			marketTermType: MarketTermStandard,
			dateRange:      "2024-2030",
			dateStatus:     DateStatusSuccess,
			reportType:     "Market Size & Share Report",
			regions:        []string{"APAC", "Middle East"},
			topic:          "Personal Protective Equipment",
			topicName:      "personal-protective-equipment",
		},
		{
			name:           "ai automotive market in",
			title:          "Artificial Intelligence (AI) Market in Automotive Outlook & Trends, 2025-2035",
			marketTermType: MarketTermIn,
			dateRange:      "2025-2035",
			dateStatus:     DateStatusSuccess,
			reportType:     "Market Outlook & Trends",
			regions:        nil,
			topic:          "Artificial Intelligence (AI) in Automotive",
			topicName:      "artificial-intelligence-ai-in-automotive",
		},
		{
			name:           "cloud computing healthcare misspelling",
			title:          "Cloud Computing Market in Healthcare Industy",
			marketTermType: MarketTermIn,
			dateRange:      "",
			dateStatus:     DateStatusNoDatesPresent,
			reportType:     "Market Industy",
			regions:        nil,
			topic:          "Cloud Computing in Healthcare",
			topicName:      "cloud-computing-in-healthcare",
		},
		{
			name:           "oil and gas ampersand preserved",
			title:          "Oil & Gas Market Analysis and Trends, 2025",
			marketTermType: MarketTermStandard,
			dateRange:      "2025",
			dateStatus:     DateStatusSuccess,
			reportType:     "Market Analysis and Trends",
			regions:        nil,
			topic:          "Oil & Gas",
			topicName:      "oil-and-gas",
		},
		{
			name:           "plus-size fashion hyphen not decomposed",
			title:          "Plus-Size Fashion Market Analysis, 2024",
			marketTermType: MarketTermStandard,
			dateRange:      "2024",
			dateStatus:     DateStatusSuccess,
			reportType:     "Market Analysis",
			regions:        nil,
			topic:          "Plus-Size Fashion",
			topicName:      "plus-size-fashion",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Extract(tc.title, lib, cfg)
			require.NotNil(t, result)

			assert.Equal(t, tc.title, result.OriginalTitle)
			assert.Equal(t, tc.marketTermType, result.MarketTermType)
			assert.Equal(t, tc.dateRange, result.ExtractedDateRange)
			assert.Equal(t, tc.dateStatus, result.DateStatus)
			assert.Equal(t, tc.reportType, result.ExtractedReportType)
			if tc.regions == nil {
				assert.Empty(t, result.ExtractedRegions)
			} else {
				assert.Equal(t, tc.regions, result.ExtractedRegions)
			}
			assert.Equal(t, tc.topic, result.Topic)
			assert.Equal(t, tc.topicName, result.TopicName)
		})
	}
}

func TestExtract_AcronymAfterAnchorStopsRun(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig() // default is stop_at_acronym

	result := Extract("Directed Energy Weapons Market Size, DEW Industry Report", lib, cfg)

	assert.Equal(t, "Market Size", result.ExtractedReportType)
	assert.Contains(t, result.Topic, "DEW")
	assert.Contains(t, result.Topic, "Industry Report")
}

func TestExtract_EmptyTitle(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := Extract("", lib, cfg)

	assert.Equal(t, MarketTermStandard, result.MarketTermType)
	assert.Equal(t, DateStatusNoDatesPresent, result.DateStatus)
	assert.Empty(t, result.ExtractedDateRange)
	assert.Empty(t, result.ExtractedReportType)
	assert.Empty(t, result.ExtractedRegions)
	assert.Equal(t, "", result.Topic)
	assert.Equal(t, "", result.TopicName)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestExtract_OnlyMarketToken(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := Extract("Market", lib, cfg)

	assert.Equal(t, "Market", result.ExtractedReportType)
	assert.Equal(t, "", result.Topic)
}

func TestExtract_OnlyYear(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := Extract("2030", lib, cfg)

	assert.Equal(t, DateStatusSuccess, result.DateStatus)
	assert.Equal(t, "2030", result.ExtractedDateRange)
	assert.Equal(t, "", result.Topic)
}

func TestExtract_Deterministic(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()
	title := "APAC & Middle East Personal Protective Equipment Market Size & Share Report, 2024-2030"

	first := Extract(title, lib, cfg)
	second := Extract(title, lib, cfg)

	assert.Equal(t, first, second)
}

func TestExtract_ReportTypeAlwaysBeginsWithMarket(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	titles := []string{
		"APAC & Middle East Personal Protective Equipment Market Size & Share Report, 2024-2030",
		"Cloud Computing Market in Healthcare Industy",
		"Oil & Gas Market Analysis and Trends, 2025",
	}
	for _, title := range titles {
		result := Extract(title, lib, cfg)
		if result.ExtractedReportType != "" {
			assert.True(t, len(result.ExtractedReportType) >= len("Market"))
			assert.Equal(t, "Market", result.ExtractedReportType[:len("Market")])
		}
	}
}

func TestExtract_MarketTermPreservesConnectorForward(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := Extract("Artificial Intelligence (AI) Market in Automotive Outlook & Trends, 2025-2035", lib, cfg)

	assert.NotEqual(t, MarketTermStandard, result.MarketTermType)
	assert.Contains(t, result.Topic, "in")
}
