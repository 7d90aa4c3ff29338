package grading

// Config controls text-answer matching. Callers pass it on every Grade
// call; the grader keeps no state of its own.
type Config struct {
	// EnableFuzzyMatching turns on normalization and edit-distance
	// matching for text answers. When off, text answers compare raw.
	EnableFuzzyMatching bool

	// FuzzyMatchThreshold is the similarity at or above which a non-exact
	// text match is accepted as fully correct.
	FuzzyMatchThreshold float64

	// EnablePartialCredit allows near-miss text answers to earn a
	// fractional score.
	EnablePartialCredit bool

	// PartialCreditThreshold is the similarity at or above which partial
	// credit applies (below the fuzzy threshold).
	PartialCreditThreshold float64

	// PartialCreditValue is the score awarded for a partial match when
	// the matching acceptable answer carries no override.
	PartialCreditValue float64
}

// DefaultConfig returns the standard grading configuration.
func DefaultConfig() Config {
	return Config{
		EnableFuzzyMatching:    true,
		FuzzyMatchThreshold:    0.8,
		EnablePartialCredit:    true,
		PartialCreditThreshold: 0.6,
		PartialCreditValue:     0.5,
	}
}
