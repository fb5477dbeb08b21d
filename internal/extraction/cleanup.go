package extraction

import "strings"

// collapseWhitespace folds any run of whitespace into a single space and
// trims the ends. Every stage applies this after removing a span so the
// residual text handed downstream never carries double spaces.
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// trimTrailingCommaOrSeparator strips a trailing comma (and any
// whitespace around it) from s, used when text immediately preceding a
// removed span becomes orphaned punctuation.
func trimTrailingCommaOrSeparator(s string) string {
	t := strings.TrimRight(s, " \t")
	if strings.HasSuffix(t, ",") {
		t = strings.TrimRight(t[:len(t)-1], " \t")
	}
	return t
}

// trimLeadingCommaOrSeparator strips a leading comma (and surrounding
// whitespace) from s, used when text immediately following a removed span
// becomes orphaned punctuation.
func trimLeadingCommaOrSeparator(s string) string {
	t := strings.TrimLeft(s, " \t")
	if strings.HasPrefix(t, ",") {
		t = strings.TrimLeft(t[1:], " \t")
	}
	return t
}

// removeSpan deletes title[start:end), trims any comma left dangling at
// either cut edge, and collapses whitespace. This is the general-purpose
// removal every stage but the date extractor (which also eats enclosing
// brackets) uses.
func removeSpan(title string, start, end int) string {
	before := trimTrailingCommaOrSeparator(title[:start])
	after := trimLeadingCommaOrSeparator(title[end:])
	return collapseWhitespace(before + " " + after)
}
