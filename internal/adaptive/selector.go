package adaptive

import (
	"math"
	"math/rand"
	"time"

	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/skill"
)

// NeutralTargetAccuracy is the target at which difficulty weighting is
// purely gap-based, with no easy/hard bias.
const NeutralTargetAccuracy = 0.7

// decayRate controls how sharply weight falls off with the gap between
// user level and question difficulty.
const decayRate = 0.7

// Selector performs weighted random selection of questions near a
// user's ability level. The random source is injected so statistical
// behavior is reproducible in tests.
type Selector struct {
	rand *rand.Rand
}

// NewSelector creates a selector seeded from the clock.
func NewSelector() *Selector {
	return NewSelectorWithSeed(time.Now().UnixNano())
}

// NewSelectorWithSeed creates a selector with a fixed seed.
func NewSelectorWithSeed(seed int64) *Selector {
	return NewSelectorWithRand(rand.New(rand.NewSource(seed)))
}

// NewSelectorWithRand creates a selector drawing from an existing source.
func NewSelectorWithRand(r *rand.Rand) *Selector {
	return &Selector{rand: r}
}

// Weight computes the selection weight of a question for a user. The
// base is an exponential decay over the gap between the user's level in
// the question's category and the question's difficulty, so ties go to
// the closest-difficulty question. Target accuracies above the neutral
// 0.7 boost easier questions (up to +60%) and penalize harder ones;
// targets below it boost harder questions (up to +140%). The adjustment
// factor is floored at 0.1 so weights stay positive.
func Weight(q *bank.Question, levels skill.Levels, targetAccuracy float64) float64 {
	level := levels.EstimateFor(q.EffectiveCategory())
	difficulty := float64(q.EffectiveDifficulty())
	gap := math.Abs(level - difficulty)

	base := math.Exp(-decayRate * gap)

	adjust := 1.0
	switch {
	case targetAccuracy > NeutralTargetAccuracy:
		p := (targetAccuracy - NeutralTargetAccuracy) / (1 - NeutralTargetAccuracy)
		if difficulty < level {
			adjust = 1 + p*0.6
		} else if difficulty > level {
			adjust = 1 - p*0.6
		}
	case targetAccuracy < NeutralTargetAccuracy:
		p := (NeutralTargetAccuracy - targetAccuracy) / NeutralTargetAccuracy
		if difficulty > level {
			adjust = 1 + p*1.4
		}
	}
	if adjust < 0.1 {
		adjust = 0.1
	}

	return base * adjust
}

// Select picks up to count questions by weighted sampling without
// replacement: each draw is proportional to remaining weight, with a
// uniform draw when all remaining weights are zero. When randomizeOrder
// is set, the chosen subset is shuffled independently afterward, so the
// weight bias decides which questions appear, not where.
func (s *Selector) Select(candidates []bank.Question, levels skill.Levels, count int, targetAccuracy float64, randomizeOrder bool) []bank.Question {
	if count <= 0 || count > len(candidates) {
		count = len(candidates)
	}
	if count == 0 {
		return nil
	}

	weights := make([]float64, len(candidates))
	for i := range candidates {
		weights[i] = Weight(&candidates[i], levels, targetAccuracy)
	}

	indices := s.SelectIndices(weights, count)
	selected := make([]bank.Question, len(indices))
	for i, idx := range indices {
		selected[i] = candidates[idx]
	}

	if randomizeOrder {
		s.rand.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}
	return selected
}

// SelectIndices samples up to count indices without replacement, each
// draw proportional to the remaining weights. Callers that need to
// carry per-candidate context through selection weight their own slice
// and map the indices back.
func (s *Selector) SelectIndices(weights []float64, count int) []int {
	if count <= 0 || count > len(weights) {
		count = len(weights)
	}

	pool := make([]int, len(weights))
	remaining := make([]float64, len(weights))
	for i := range weights {
		pool[i] = i
		remaining[i] = weights[i]
	}

	selected := make([]int, 0, count)
	for len(selected) < count && len(pool) > 0 {
		idx := s.draw(remaining)
		selected = append(selected, pool[idx])

		pool = append(pool[:idx], pool[idx+1:]...)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return selected
}

// draw picks an index with probability proportional to weight.
func (s *Selector) draw(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return s.rand.Intn(len(weights))
	}

	r := s.rand.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return i
		}
	}
	// Floating-point slack: fall back to the last index.
	return len(weights) - 1
}
