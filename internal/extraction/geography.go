package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/titlex/engine/internal/patterns"
)

// geoMatch is a located geographic_entity/geographic_alias occurrence.
type geoMatch struct {
	start, end int
	canonical  string
	priority   int
}

// geoEntry is a compiled matcher for a single geographic pattern (an alias
// resolves back to its parent term's canonical form).
type geoEntry struct {
	canonical   string
	priority    int
	re          *regexp.Regexp
	contextOnly bool
}

// contextOnlyGeoTerms are canonical geographic terms that §4.4 only
// recognizes as a region when they occupy the leading position of the
// title — i.e. used as a scope-qualifying prefix ("Global Widgets
// Market"). Elsewhere in the title (e.g. embedded in a compound name)
// they're left alone to avoid false positives.
var contextOnlyGeoTerms = map[string]bool{
	"global": true,
}

func isContextOnlyGeoTerm(canonical string) bool {
	return contextOnlyGeoTerms[lower(canonical)]
}

// buildGeoEntries compiles geographic_entity and geographic_alias patterns
// into one priority-sorted matching structure per §4.4's load-time prep.
// Aliases inherit their owning pattern's priority and resolve to its term.
func buildGeoEntries(library patterns.Library) []geoEntry {
	var entries []geoEntry
	for _, kind := range []patterns.Kind{patterns.KindGeographicEntity, patterns.KindGeographicAlias} {
		for _, p := range library.PatternsOf(kind) {
			if !p.Active {
				continue
			}
			contextOnly := isContextOnlyGeoTerm(p.Term)
			if re := p.Compiled(); re != nil {
				entries = append(entries, geoEntry{canonical: p.Term, priority: p.Priority, re: re, contextOnly: contextOnly})
				continue
			}
			entries = append(entries, geoEntry{canonical: p.Term, priority: p.Priority, re: wholeWordLiteral(p.Term), contextOnly: contextOnly})
			for _, alias := range p.Aliases {
				entries = append(entries, geoEntry{canonical: p.Term, priority: p.Priority, re: wholeWordLiteral(alias), contextOnly: contextOnly})
			}
		}
	}
	sortGeoEntries(entries)
	return entries
}

func wholeWordLiteral(term string) *regexp.Regexp {
	flags := "(?i)"
	if hasInternalUpper(term) {
		flags = ""
	}
	pattern := flags + `\b` + regexp.QuoteMeta(term) + `\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

func hasInternalUpper(s string) bool {
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func sortGeoEntries(entries []geoEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].priority < entries[j-1].priority; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// extractGeography implements §4.4: a single left-to-right pass trying
// patterns in priority order at each position, advancing the cursor past
// the winning match and appending its canonical term in source order.
func extractGeography(title string, entries []geoEntry) ([]string, string) {
	var regions []string
	var removedSpans [][2]int

	cursor := 0
	for cursor < len(title) {
		match := bestGeoMatchAt(title, entries, cursor)
		if match == nil {
			cursor++
			continue
		}
		regions = append(regions, match.canonical)
		removedSpans = append(removedSpans, [2]int{match.start, match.end})
		cursor = match.end
	}

	residual := removeGeoSpans(title, removedSpans)
	if regions == nil {
		regions = []string{}
	}
	return regions, residual
}

// bestGeoMatchAt finds, among all entries, the highest-priority match whose
// start is the earliest position at or after from; entries are already
// priority-sorted so the first entry to match at the leftmost position wins.
// A contextOnly entry (§4.4's "Global" rule) is only eligible when its match
// starts at position 0 of the title — elsewhere it's skipped as a candidate
// so it never displaces or masks a genuine region occurring later.
func bestGeoMatchAt(title string, entries []geoEntry, from int) *geoMatch {
	var best *geoMatch
	for _, e := range entries {
		if e.re == nil {
			continue
		}
		loc := e.re.FindStringIndex(title[from:])
		if loc == nil {
			continue
		}
		start, end := loc[0]+from, loc[1]+from
		if e.contextOnly && start != 0 {
			continue
		}
		if best == nil || start < best.start || (start == best.start && e.priority < best.priority) {
			best = &geoMatch{start: start, end: end, canonical: e.canonical, priority: e.priority}
		}
	}
	return best
}

// removeGeoSpans deletes every matched span plus an immediately trailing
// comma-space or ampersand-space, then collapses whitespace.
func removeGeoSpans(title string, spans [][2]int) string {
	if len(spans) == 0 {
		return title
	}
	var sb strings.Builder
	prev := 0
	for _, sp := range spans {
		if sp[0] < prev {
			continue
		}
		sb.WriteString(title[prev:sp[0]])
		end := sp[1]
		end = skipTrailingGeoGlue(title, end)
		prev = end
	}
	sb.WriteString(title[prev:])
	return collapseWhitespace(trimLeadingCommaOrSeparator(trimTrailingCommaOrSeparator(sb.String())))
}

// skipTrailingGeoGlue advances past a comma-space or ampersand-space that
// immediately follows a removed region span.
func skipTrailingGeoGlue(title string, end int) int {
	rest := title[end:]
	switch {
	case strings.HasPrefix(rest, ", "):
		return end + 2
	case strings.HasPrefix(rest, "& "):
		return end + 2
	case strings.HasPrefix(rest, " & "):
		return end + 3
	default:
		return end
	}
}
