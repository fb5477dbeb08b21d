package extraction

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/titlex/engine/internal/patterns"
)

var (
	anyDigitRe   = regexp.MustCompile(`[0-9]`)
	fourDigitRe  = regexp.MustCompile(`[0-9]{4}`)
	rangeSplitRe = regexp.MustCompile(`(?i)\s*(?:-|–|—|\bto\b)\s*`)
)

// dateMatch is a located date_pattern occurrence awaiting interpretation.
type dateMatch struct {
	start, end int
	priority   int
	format     patterns.FormatType
	text       string
}

// extractDate implements §4.2. It returns the extracted date_range (if
// any), its status, and the title with the matched span (plus any
// orphaned leading comma and enclosing brackets) removed.
func extractDate(title string, library patterns.Library, cfg Config) (string, DateStatus, string) {
	if !anyDigitRe.MatchString(title) {
		return "", DateStatusNoDatesPresent, title
	}

	candidates := library.PatternsOf(patterns.KindDatePattern)
	var best *dateMatch

	for _, p := range candidates {
		re := p.Compiled()
		if re == nil {
			continue
		}
		loc := re.FindStringIndex(title)
		if loc == nil {
			continue
		}
		m := &dateMatch{start: loc[0], end: loc[1], priority: p.Priority, format: p.FormatType, text: title[loc[0]:loc[1]]}
		if best == nil || m.start < best.start || (m.start == best.start && m.priority < best.priority) {
			best = m
		}
	}

	if best == nil {
		return "", DateStatusDatesMissed, title
	}

	canonical, ok := interpretDateMatch(best, cfg)
	if !ok {
		return "", DateStatusDatesMissed, title
	}

	residual := removeDateSpan(title, best.start, best.end)
	return canonical, DateStatusSuccess, residual
}

// interpretDateMatch turns a located span into a canonical date string per
// its declared format_type, validating years against cfg's bounds.
func interpretDateMatch(m *dateMatch, cfg Config) (string, bool) {
	years := fourDigitRe.FindAllString(m.text, -1)

	switch m.format {
	case patterns.FormatRange:
		if len(years) < 2 {
			return "", false
		}
		y1, ok1 := validYear(years[0], cfg)
		y2, ok2 := validYear(years[1], cfg)
		if !ok1 || !ok2 || y2 < y1 {
			return "", false
		}
		return fmt.Sprintf("%d-%d", y1, y2), true

	case patterns.FormatTerminal, patterns.FormatBracket, patterns.FormatEmbedded:
		if len(years) < 1 {
			return "", false
		}
		// A bracket/terminal/embedded pattern may still span two years if
		// the library over-matched; prefer treating it as a range when a
		// valid separator sits between two valid years.
		if len(years) >= 2 && rangeSplitRe.MatchString(m.text) {
			y1, ok1 := validYear(years[0], cfg)
			y2, ok2 := validYear(years[1], cfg)
			if ok1 && ok2 && y2 >= y1 {
				return fmt.Sprintf("%d-%d", y1, y2), true
			}
		}
		y, ok := validYear(years[0], cfg)
		if !ok {
			return "", false
		}
		return strconv.Itoa(y), true

	default:
		if len(years) < 1 {
			return "", false
		}
		y, ok := validYear(years[0], cfg)
		if !ok {
			return "", false
		}
		return strconv.Itoa(y), true
	}
}

func validYear(s string, cfg Config) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if y < cfg.YearMin || y > cfg.YearMax {
		return 0, false
	}
	return y, true
}

// removeDateSpan deletes [start,end) from title along with an immediately
// preceding comma and any brackets that directly enclose the span, then
// collapses the resulting whitespace.
func removeDateSpan(title string, start, end int) string {
	// Expand to swallow an enclosing bracket pair, if present.
	if start > 0 && (title[start-1] == '[' || title[start-1] == '(') && end < len(title) &&
		(title[end] == ']' || title[end] == ')') {
		start--
		end++
	}
	return removeSpan(title, start, end)
}
