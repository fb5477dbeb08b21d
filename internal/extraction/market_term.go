package extraction

import (
	"regexp"
	"strings"

	"github.com/titlex/engine/internal/patterns"
)

// marketTermMatch records the span of a recognized "Market <connector>"
// phrase for the report-type stage to consume.
type marketTermMatch struct {
	termType   MarketTermType
	start, end int // byte offsets into the title, [start, end)
}

var wordRe = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9'-]*`)

// classifyMarketTerm implements §4.1. It never fails: absent a qualifying
// connector, the title is "standard".
func classifyMarketTerm(title string, library patterns.Library) (MarketTermType, *marketTermMatch) {
	candidates := library.PatternsOf(patterns.KindMarketTerm)
	words := wordRe.FindAllStringIndex(title, -1)

	var best *marketTermMatch
	var bestPriority int

	for _, p := range candidates {
		termType := marketTermTypeOf(p.Term)
		if termType == "" {
			continue
		}
		for _, span := range findWholeWordPhrase(title, p.Term) {
			if !hasPrecedingWord(words, span[0]) {
				continue
			}
			if !hasFollowingNonSeparatorWord(title, words, span[1]) {
				continue
			}
			if best == nil || span[0] < best.start || (span[0] == best.start && p.Priority < bestPriority) {
				best = &marketTermMatch{termType: termType, start: span[0], end: span[1]}
				bestPriority = p.Priority
			}
		}
	}

	if best == nil {
		return MarketTermStandard, nil
	}
	return best.termType, best
}

// marketTermTypeOf maps a connector pattern's canonical term (e.g. "Market
// for") to its MarketTermType by its trailing connector word. Patterns
// that don't end in a recognized connector are not market-term patterns
// this stage understands.
func marketTermTypeOf(term string) MarketTermType {
	fields := strings.Fields(term)
	if len(fields) == 0 {
		return ""
	}
	switch strings.ToLower(fields[len(fields)-1]) {
	case "for":
		return MarketTermFor
	case "in":
		return MarketTermIn
	case "by":
		return MarketTermBy
	}
	return ""
}

// findWholeWordPhrase returns the [start, end) byte spans of every
// case-insensitive, whole-word occurrence of phrase in s.
func findWholeWordPhrase(s, phrase string) [][2]int {
	if phrase == "" {
		return nil
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(phrase) + `\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	idx := re.FindAllStringIndex(s, -1)
	spans := make([][2]int, len(idx))
	for i, m := range idx {
		spans[i] = [2]int{m[0], m[1]}
	}
	return spans
}

func hasPrecedingWord(words [][2]int, beforeOffset int) bool {
	for _, w := range words {
		if w[1] <= beforeOffset {
			return true
		}
	}
	return false
}

// hasFollowingNonSeparatorWord reports whether a word token follows
// afterOffset that is not purely a report-separator glyph on its own (a
// bare "&" or "," does not count as the "following word" the spec
// requires).
func hasFollowingNonSeparatorWord(title string, words [][2]int, afterOffset int) bool {
	for _, w := range words {
		if w[0] >= afterOffset {
			return true
		}
	}
	return false
}
