package extraction

// AcronymPolicy controls how the report-type scanner treats an
// all-uppercase acronym token immediately following the anchor, per
// spec.md §9's open question. The spec directs implementations to make
// this configurable and default to "stop at acronym".
type AcronymPolicy string

const (
	AcronymPolicyStop AcronymPolicy = "stop_at_acronym"
	AcronymPolicySkip AcronymPolicy = "skip_acronym"
)

// Config holds the recognized options from spec.md §6. It is an explicit
// struct threaded through the pipeline — there is no global state.
type Config struct {
	// YearMin and YearMax bound the valid forecast-year range. Default
	// 2020 and 2040, matching spec.md's 20YY / YY in [20,40] rule.
	YearMin int
	YearMax int

	// PreserveOriginalCasing, when true (default), reconstructs the
	// report-type keyword run using the casing found in the title rather
	// than each pattern's canonical casing.
	PreserveOriginalCasing bool

	// AllowWordSeparators enables "and"/"or"/"plus" as whole-word run
	// separators inside the report-type keyword run. Default true.
	AllowWordSeparators bool

	// ASCIIOnlySlug, when true (default), folds non-ASCII characters in
	// topic_name to a single "-" instead of keeping them.
	ASCIIOnlySlug bool

	// AcronymPolicy governs the report-type scanner's behavior on an
	// unrecognized all-caps token immediately after the anchor. See
	// AcronymPolicy.
	AcronymPolicy AcronymPolicy
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		YearMin:                2020,
		YearMax:                2040,
		PreserveOriginalCasing: true,
		AllowWordSeparators:    true,
		ASCIIOnlySlug:          true,
		AcronymPolicy:          AcronymPolicyStop,
	}
}

// ConfigFromSettings builds an extraction.Config from loosely typed
// settings (as decoded from YAML/env by internal/config), falling back to
// DefaultConfig's values for a non-positive year bound or an unrecognized
// acronym policy. The three booleans are taken exactly as given.
func ConfigFromSettings(yearMin, yearMax int, preserveOriginalCasing, allowWordSeparators, asciiOnlySlug bool, acronymPolicy string) Config {
	cfg := DefaultConfig()
	if yearMin > 0 {
		cfg.YearMin = yearMin
	}
	if yearMax > 0 {
		cfg.YearMax = yearMax
	}
	cfg.PreserveOriginalCasing = preserveOriginalCasing
	cfg.AllowWordSeparators = allowWordSeparators
	cfg.ASCIIOnlySlug = asciiOnlySlug
	if acronymPolicy == string(AcronymPolicySkip) {
		cfg.AcronymPolicy = AcronymPolicySkip
	} else {
		cfg.AcronymPolicy = AcronymPolicyStop
	}
	return cfg
}
