package patterns

import (
	"regexp"
	"sort"
)

// Validate checks a raw pattern set against the §3 invariants and, on
// success, compiles every Regex field and returns patterns grouped by kind
// and sorted in PatternsOf order. It never mutates the input slice.
//
// Invariants enforced:
//   - every active pattern has a non-empty Term
//   - (Kind, Term) pairs are unique among active patterns
//   - Regex, when present, compiles
//   - geographic_entity priorities obey compound-before-component: this is
//     a data-authoring invariant the loader cannot infer, so it is only
//     spot-checked (a multi-word term must carry a strictly lower priority
//     number than any single-word term that appears as one of its words).
func Validate(raw []Pattern) (map[Kind][]Pattern, error) {
	seen := make(map[string]bool, len(raw))
	grouped := make(map[Kind][]Pattern, 8)

	for _, p := range raw {
		if !p.Active {
			continue
		}
		if p.Term == "" {
			return nil, &InvalidError{Kind: p.Kind, Term: p.Term, Reason: "empty term"}
		}
		key := string(p.Kind) + "\x00" + p.Term
		if seen[key] {
			return nil, &InvalidError{Kind: p.Kind, Term: p.Term, Reason: "duplicate (kind, term) pair"}
		}
		seen[key] = true

		if p.Regex != "" {
			re, err := regexp.Compile(p.Regex)
			if err != nil {
				return nil, &InvalidError{Kind: p.Kind, Term: p.Term, Reason: "regex does not compile: " + err.Error()}
			}
			p.compiled = re
		}

		grouped[p.Kind] = append(grouped[p.Kind], p)
	}

	if err := checkCompoundBeforeComponent(grouped[KindGeographicEntity]); err != nil {
		return nil, err
	}

	for kind, patterns := range grouped {
		sortByPriority(patterns)
		grouped[kind] = patterns
	}

	return grouped, nil
}

func sortByPriority(patterns []Pattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Priority != patterns[j].Priority {
			return patterns[i].Priority < patterns[j].Priority
		}
		return len(patterns[i].Term) > len(patterns[j].Term)
	})
}

// checkCompoundBeforeComponent rejects geographic libraries where a
// multi-word term does not carry a lower priority number than a
// single-word term it contains (e.g. "North America" vs "America").
func checkCompoundBeforeComponent(entities []Pattern) error {
	for _, compound := range entities {
		if !containsSpace(compound.Term) {
			continue
		}
		for _, component := range entities {
			if component.Term == compound.Term || containsSpace(component.Term) {
				continue
			}
			if !hasWord(compound.Term, component.Term) {
				continue
			}
			if compound.Priority >= component.Priority {
				return &InvalidError{
					Kind:   KindGeographicEntity,
					Term:   compound.Term,
					Reason: "compound term must have a lower priority number than component term " + component.Term,
				}
			}
		}
	}
	return nil
}

func containsSpace(s string) bool {
	for _, r := range s {
		if r == ' ' {
			return true
		}
	}
	return false
}

// hasWord reports whether word appears as a whitespace-delimited token of s
// (case-insensitive), used only for the compound/component priority check.
func hasWord(s, word string) bool {
	words := splitWords(s)
	for _, w := range words {
		if equalFold(w, word) {
			return true
		}
	}
	return false
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
