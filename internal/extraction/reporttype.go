package extraction

import (
	"strings"

	"github.com/titlex/engine/internal/patterns"
)

// reportTypeDict bundles the compiled keyword/separator indices the
// dictionary-boundary algorithm needs, built once per extraction run from
// the pattern library.
type reportTypeDict struct {
	keywords   *keywordIndex
	separators *separatorIndex
}

func buildReportTypeDict(library patterns.Library) *reportTypeDict {
	toLite := func(ps []patterns.Pattern) []patternLite {
		out := make([]patternLite, len(ps))
		for i, p := range ps {
			out[i] = patternLite{Term: p.Term, Aliases: p.Aliases}
		}
		return out
	}
	primary := toLite(library.PatternsOf(patterns.KindReportKeywordPrimary))
	secondary := toLite(library.PatternsOf(patterns.KindReportKeywordSecondary))
	separators := toLite(library.PatternsOf(patterns.KindReportSeparator))

	return &reportTypeDict{
		keywords:   buildKeywordIndex(primary, secondary),
		separators: buildSeparatorIndex(separators),
	}
}

// classifyToken determines a token's role in the dictionary-boundary scan.
// text is the full string the token's offsets are relative to.
func classifyToken(text string, tok rtoken, dict *reportTypeDict, cfg Config) rtoken {
	word := text[tok.start:tok.end]

	if entry, ok := dict.keywords.lookupEntry(word); ok {
		tok.kind = tokKeyword
		tok.canonical = entry.canonical
		tok.primary = entry.primary
		return tok
	}
	if dict.separators.isPunctSeparator(word) {
		tok.kind = tokSeparator
		return tok
	}
	if dict.separators.isWordSeparator(word, cfg.AllowWordSeparators) {
		beforeOK := tok.start == 0 || text[tok.start-1] == ' '
		afterOK := tok.end == len(text) || text[tok.end] == ' '
		if beforeOK && afterOK {
			tok.kind = tokSeparator
			return tok
		}
	}
	tok.kind = tokForeign
	return tok
}

func classifyAll(text string, tokens []rtoken, dict *reportTypeDict, cfg Config) []rtoken {
	out := make([]rtoken, len(tokens))
	for i, t := range tokens {
		out[i] = classifyToken(text, t, dict, cfg)
	}
	return out
}

// keywordBeforeForeign reports whether, scanning forward from idx, a
// keyword token is reached before a foreign token (separators are
// transparent to this lookahead).
func keywordBeforeForeign(tokens []rtoken, idx int) bool {
	for idx < len(tokens) {
		switch tokens[idx].kind {
		case tokKeyword:
			return true
		case tokSeparator:
			idx++
		default:
			return false
		}
	}
	return false
}

// keywordAfterForeignBackward is the mirror of keywordBeforeForeign for
// the right-to-left scan.
func keywordAfterForeignBackward(tokens []rtoken, idx int) bool {
	for idx >= 0 {
		switch tokens[idx].kind {
		case tokKeyword:
			return true
		case tokSeparator:
			idx--
		default:
			return false
		}
	}
	return false
}

// scanRunForward implements the §4.3.4 state machine left-to-right,
// starting at tokens[start]. It returns the exclusive end index of the
// consumed run (tokens[start:end)), after trailing-separator trim. An
// empty result (end == start) means no run was collected.
func scanRunForward(text string, tokens []rtoken, start int, cfg Config) int {
	if start >= len(tokens) {
		return start
	}
	i := start

	if cfg.AcronymPolicy == AcronymPolicySkip && tokens[i].kind == tokForeign &&
		isAcronym(text[tokens[i].start:tokens[i].end]) && keywordBeforeForeign(tokens, i+1) {
		i++
	}

	switch {
	case i < len(tokens) && tokens[i].kind == tokKeyword:
		i++
	case i < len(tokens) && tokens[i].kind == tokSeparator && keywordBeforeForeign(tokens, i+1):
		i++
	default:
		return start
	}

	for i < len(tokens) {
		if tokens[i].kind == tokKeyword || tokens[i].kind == tokSeparator {
			i++
			continue
		}
		break
	}

	for i > start && tokens[i-1].kind == tokSeparator {
		i--
	}
	return i
}

// scanRunBackward is the right-to-left mirror used by the market-term
// workflow. end is the inclusive index of the rightmost token to start
// from. It returns the inclusive start index of the consumed run
// (tokens[start:end+1]); start == end+1 means no run was collected.
func scanRunBackward(text string, tokens []rtoken, end int, cfg Config) int {
	if end < 0 {
		return end + 1
	}
	i := end

	if cfg.AcronymPolicy == AcronymPolicySkip && tokens[i].kind == tokForeign &&
		isAcronym(text[tokens[i].start:tokens[i].end]) && keywordAfterForeignBackward(tokens, i-1) {
		i--
	}

	switch {
	case i >= 0 && tokens[i].kind == tokKeyword:
		i--
	case i >= 0 && tokens[i].kind == tokSeparator && keywordAfterForeignBackward(tokens, i-1):
		i--
	default:
		return end + 1
	}

	for i >= 0 {
		if tokens[i].kind == tokKeyword || tokens[i].kind == tokSeparator {
			i--
			continue
		}
		break
	}

	for i+1 <= end && tokens[i+1].kind == tokSeparator {
		i++
	}
	return i + 1
}

// reconstructRun renders the consumed run tokens back to text, preserving
// original inter-token spacing exactly and substituting canonical casing
// for keyword tokens only when PreserveOriginalCasing is disabled.
func reconstructRun(text string, tokens []rtoken, cfg Config) string {
	if len(tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	prevEnd := tokens[0].start
	for _, t := range tokens {
		sb.WriteString(text[prevEnd:t.start])
		if t.kind == tokKeyword && !cfg.PreserveOriginalCasing {
			sb.WriteString(t.canonical)
		} else {
			sb.WriteString(text[t.start:t.end])
		}
		prevEnd = t.end
	}
	return sb.String()
}

// reportTypeResult carries the outcome of the report-type stage back to
// the driver.
type reportTypeResult struct {
	extractedType string
	confidence    float64
	residual      string
}

// extractReportType implements §4.3 for a standard-workflow title: it
// locates the Market anchor, collects the keyword run to its right, and
// removes the whole span.
func extractReportType(title string, library patterns.Library, cfg Config) reportTypeResult {
	dict := buildReportTypeDict(library)
	tokens := classifyAll(title, rawTokenize(title), dict, cfg)

	anchorIdx := findAnchor(title, tokens)
	if anchorIdx < 0 {
		return reportTypeResult{residual: title}
	}

	runEnd := scanRunForward(title, tokens, anchorIdx+1, cfg)
	runTokens := tokens[anchorIdx+1 : runEnd]

	phrase := reconstructPhrase(reconstructRun(title, runTokens, cfg))
	confidence := reportTypeConfidence(runTokens)

	spanEnd := tokens[anchorIdx].end
	if runEnd > anchorIdx+1 {
		spanEnd = tokens[runEnd-1].end
	}
	residual := removeSpan(title, tokens[anchorIdx].start, spanEnd)

	return reportTypeResult{extractedType: phrase, confidence: confidence, residual: residual}
}

// extractReportTypeMarketTerm implements §4.3.2: the market-term workflow.
// left/middle/right are the three segments the classifier's connector
// match splits the title into; middle is the bare connector word only
// ("for"/"in"/"by") — the anchor word "Market" itself is consumed by the
// split and never flows into the forward/topic text.
func extractReportTypeMarketTerm(left, middle, right string, library patterns.Library, cfg Config) (result reportTypeResult, forwardText string) {
	dict := buildReportTypeDict(library)
	rightTokens := classifyAll(right, rawTokenize(right), dict, cfg)

	if len(rightTokens) == 0 {
		phrase := "Market"
		return reportTypeResult{extractedType: phrase, confidence: 0.6}, collapseWhitespace(left + " " + middle + " " + right)
	}

	runStart := scanRunBackward(right, rightTokens, len(rightTokens)-1, cfg)
	runTokens := rightTokens[runStart:]

	phrase := reconstructPhrase(reconstructRun(right, runTokens, cfg))
	confidence := reportTypeConfidence(runTokens)

	var rightMinusRun string
	if len(runTokens) == 0 {
		rightMinusRun = right
	} else {
		rightMinusRun = removeSpan(right, runTokens[0].start, runTokens[len(runTokens)-1].end)
	}

	forward := collapseWhitespace(left + " " + middle + " " + rightMinusRun)
	return reportTypeResult{extractedType: phrase, confidence: confidence}, forward
}

// findAnchor returns the token index of the first whole-word,
// case-insensitive occurrence of "market" in title, or -1 if none.
func findAnchor(title string, tokens []rtoken) int {
	for i, t := range tokens {
		if strings.EqualFold(title[t.start:t.end], "market") {
			return i
		}
	}
	return -1
}

func reconstructPhrase(run string) string {
	if run == "" {
		return "Market"
	}
	return "Market " + run
}

// reportTypeConfidence implements §4.3.3's formula: 0.6 base when only
// "Market" is emitted, +0.05 per additional keyword (capped at 0.95), and
// +0.1 only if the run contains at least one PRIMARY keyword — a run built
// entirely from report_keyword_secondary matches (misspellings, rare
// synonyms) doesn't earn the bonus.
func reportTypeConfidence(runTokens []rtoken) float64 {
	keywordCount := 0
	hasPrimary := false
	for _, t := range runTokens {
		if t.kind == tokKeyword {
			keywordCount++
			if t.primary {
				hasPrimary = true
			}
		}
	}
	if keywordCount == 0 {
		return 0.6
	}
	conf := 0.6 + 0.05*float64(keywordCount)
	if conf > 0.95 {
		conf = 0.95
	}
	if hasPrimary {
		conf += 0.1
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}
