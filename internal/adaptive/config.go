package adaptive

// Config carries the adaptive-selection knobs callers pass explicitly;
// the selector holds no global state.
type Config struct {
	// DefaultTargetAccuracy is the fraction-correct selection biases
	// difficulty toward.
	DefaultTargetAccuracy float64

	// AdjustmentSpeed is the Elo K factor used for skill updates driven
	// by adaptive sessions.
	AdjustmentSpeed float64

	// MinQuestionsForAdaptation is the attempt count below which callers
	// should prefer plain shuffled selection.
	MinQuestionsForAdaptation int
}

// DefaultConfig returns the standard adaptive configuration.
func DefaultConfig() Config {
	return Config{
		DefaultTargetAccuracy:     0.7,
		AdjustmentSpeed:           32,
		MinQuestionsForAdaptation: 5,
	}
}
