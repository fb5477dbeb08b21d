package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractReportType_StandardWorkflow(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := extractReportType("APAC & Middle East Personal Protective Equipment Market Size & Share Report", lib, cfg)

	assert.Equal(t, "Market Size & Share Report", result.extractedType)
	assert.Equal(t, "APAC & Middle East Personal Protective Equipment", result.residual)
}

func TestExtractReportType_NoAnchorLeavesTitleUnchanged(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := extractReportType("Completely Unrelated Topic", lib, cfg)

	assert.Equal(t, "", result.extractedType)
	assert.Equal(t, "Completely Unrelated Topic", result.residual)
}

func TestExtractReportType_OnlyMarket(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := extractReportType("Market", lib, cfg)

	assert.Equal(t, "Market", result.extractedType)
	assert.Equal(t, "", result.residual)
}

func TestExtractReportType_AcronymStopsRunByDefault(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := extractReportType("Directed Energy Weapons Market Size, DEW Industry Report", lib, cfg)

	assert.Equal(t, "Market Size", result.extractedType)
	assert.Contains(t, result.residual, "DEW")
	assert.Contains(t, result.residual, "Industry Report")
}

func TestExtractReportType_MisspellingPreservedVerbatim(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result := extractReportType("Cloud Computing in Healthcare Market Industy", lib, cfg)

	assert.Equal(t, "Market Industy", result.extractedType)
}

func TestExtractReportTypeMarketTerm(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result, forward := extractReportTypeMarketTerm(
		"Artificial Intelligence (AI)", "in", "Automotive Outlook & Trends",
		lib, cfg,
	)

	assert.Equal(t, "Market Outlook & Trends", result.extractedType)
	assert.Equal(t, "Artificial Intelligence (AI) in Automotive", forward)
}

func TestExtractReportTypeMarketTerm_EmptyRightYieldsBareMarket(t *testing.T) {
	lib := testLibrary(t)
	cfg := DefaultConfig()

	result, forward := extractReportTypeMarketTerm("Widgets", "in", "", lib, cfg)

	assert.Equal(t, "Market", result.extractedType)
	assert.Equal(t, "Widgets in", forward)
	assert.NotContains(t, forward, "Market")
}

func TestReportTypeConfidence(t *testing.T) {
	assert.Equal(t, 0.6, reportTypeConfidence(nil))

	primaryKeyword := []rtoken{{kind: tokKeyword, primary: true}}
	assert.InDelta(t, 0.75, reportTypeConfidence(primaryKeyword), 0.001)

	secondaryOnly := []rtoken{{kind: tokKeyword, primary: false}}
	assert.InDelta(t, 0.65, reportTypeConfidence(secondaryOnly), 0.001)
}
