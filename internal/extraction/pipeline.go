package extraction

import (
	"regexp"
	"strings"

	"github.com/titlex/engine/internal/patterns"
)

// Extract runs the full five-stage systematic-removal pipeline over a
// single title and returns the populated ExtractionResult. It is a pure
// function of (title, library, cfg): no I/O, no shared mutable state.
func Extract(title string, library patterns.Library, cfg Config) *Result {
	result := newResult(title)

	marketTermType, match := classifyMarketTerm(title, library)
	result.MarketTermType = marketTermType

	dateRange, dateStatus, afterDate := extractDate(title, library, cfg)
	result.ExtractedDateRange = dateRange
	result.DateStatus = dateStatus

	var rt reportTypeResult
	var forwardAfterReportType string

	if marketTermType == MarketTermStandard || match == nil {
		rt = extractReportType(afterDate, library, cfg)
		forwardAfterReportType = rt.residual
	} else {
		left, middle, right, ok := splitOnConnector(afterDate, marketTermType)
		if !ok {
			rt = extractReportType(afterDate, library, cfg)
			forwardAfterReportType = rt.residual
		} else {
			var forward string
			rt, forward = extractReportTypeMarketTerm(left, middle, right, library, cfg)
			forwardAfterReportType = forward
		}
	}
	result.ExtractedReportType = rt.extractedType

	geoEntries := buildGeoEntries(library)
	regions, afterGeo := extractGeography(forwardAfterReportType, geoEntries)
	result.ExtractedRegions = regions

	topic, topicName := normalizeTopic(afterGeo, cfg)
	result.Topic = topic
	result.TopicName = topicName

	result.Confidence = overallConfidence(dateStatus, rt, regions, marketTermType != MarketTermStandard, topic)
	return result
}

// connectorWord maps a market-term classification to its connector word.
func connectorWord(t MarketTermType) string {
	switch t {
	case MarketTermFor:
		return "for"
	case MarketTermIn:
		return "in"
	case MarketTermBy:
		return "by"
	default:
		return ""
	}
}

// splitOnConnector locates "Market <connector>" in residual (the title
// after date removal) and splits it into left/middle/right per §4.3.2
// step 1. The market-term classifier runs against the original title, so
// the span it records cannot be reused directly once the date stage has
// shifted offsets; the connector phrase survives date removal intact, so
// re-locating it here is equivalent and simpler than offset-translation.
// middle is the bare connector word only ("for"/"in"/"by") — the anchor
// word "Market" is consumed by the match but does not flow forward.
func splitOnConnector(residual string, termType MarketTermType) (left, middle, right string, ok bool) {
	word := connectorWord(termType)
	if word == "" {
		return "", "", "", false
	}
	re := regexp.MustCompile(`(?i)\bmarket\s+` + word + `\b`)
	loc := re.FindStringIndex(residual)
	if loc == nil {
		return "", "", "", false
	}
	left = strings.TrimSpace(residual[:loc[0]])
	middle = word
	right = strings.TrimSpace(residual[loc[1]:])
	return left, middle, right, true
}

// overallConfidence combines the per-stage contributions into the
// additive score the library exposes. Weights favor the report-type
// stage, which the spec calls "the hardest part" and assigns the largest
// share of the system's behavior.
func overallConfidence(dateStatus DateStatus, rt reportTypeResult, regions []string, marketTermMatched bool, topic string) float64 {
	var dateConf float64
	switch dateStatus {
	case DateStatusSuccess:
		dateConf = 1.0
	case DateStatusNoDatesPresent:
		dateConf = 0.5
	case DateStatusDatesMissed:
		dateConf = 0.0
	}

	reportConf := 0.3
	if rt.extractedType != "" {
		reportConf = rt.confidence
	}

	geoConf := 0.5
	if len(regions) > 0 {
		geoConf = 1.0
	}

	topicConf := topicConfidence(marketTermMatched, dateStatus, rt.extractedType, regions)

	total := 0.25*dateConf + 0.35*reportConf + 0.15*geoConf + 0.25*topicConf
	if total > 1 {
		total = 1
	}
	if total < 0 {
		total = 0
	}
	if topic == "" && rt.extractedType == "" && len(regions) == 0 && dateStatus != DateStatusSuccess {
		return 0
	}
	return total
}
