package bankgen

import "github.com/abhisek/quizkit/internal/bank"

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the model response. Whole banks
	// are large, so this defaults well above single-question budgets.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

// Params describes the bank to generate.
type Params struct {
	// Topic is the subject of the bank, e.g. "european rivers".
	Topic string

	// Description adds optional constraints or focus for the topic.
	Description string

	// NumQuestions is how many questions to request. Zero means
	// DefaultNumQuestions.
	NumQuestions int

	// Types restricts the question variants to generate. Empty means
	// all supported variants.
	Types []bank.QuestionType

	// Category tags every generated question. Empty lets the model
	// pick per-question categories.
	Category string

	// MinDifficulty and MaxDifficulty bound the difficulty spread.
	// Zero values mean the full 1-5 range.
	MinDifficulty int
	MaxDifficulty int
}

// DefaultNumQuestions is requested when Params leaves the count unset.
const DefaultNumQuestions = 10
