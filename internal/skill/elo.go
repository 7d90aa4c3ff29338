package skill

import "math"

// Level bounds and defaults for the 1-5 skill scale.
const (
	MinLevel     = 1.0
	MaxLevel     = 5.0
	DefaultLevel = 2.5

	// DefaultK is the Elo K factor used when the caller does not supply
	// an adjustment speed.
	DefaultK = 32.0

	// eloDivisor calibrates the logistic curve to the 1-5 scale: a
	// 2-level gap yields roughly a 76/24 split.
	eloDivisor = 4.0
)

// ExpectedScore returns the probability in [0,1] that a user at the
// given level answers a question of the given difficulty correctly.
// Equal level and difficulty give 0.5.
func ExpectedScore(level, difficulty float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (difficulty-level)/eloDivisor))
}

// UpdateLevel applies one Elo-style adjustment and returns the new level,
// clamped to [MinLevel, MaxLevel]. score is clamped to [0,1] first;
// binary correctness is the 0/1 special case.
func UpdateLevel(level, difficulty, score, k float64) float64 {
	score = clamp01(score)
	next := level + k*(score-ExpectedScore(level, difficulty))
	return clampLevel(next)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampLevel(v float64) float64 {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}
