package adaptive

import "github.com/abhisek/quizkit/internal/bank"

// DifficultyHistogram counts candidates per effective difficulty (1-5).
func DifficultyHistogram(candidates []bank.Question) map[int]int {
	hist := make(map[int]int)
	for i := range candidates {
		hist[candidates[i].EffectiveDifficulty()]++
	}
	return hist
}

// MeanDifficulty returns the average effective difficulty of the pool,
// or the default difficulty for an empty pool.
func MeanDifficulty(candidates []bank.Question) float64 {
	if len(candidates) == 0 {
		return float64(bank.DefaultDifficulty)
	}
	sum := 0
	for i := range candidates {
		sum += candidates[i].EffectiveDifficulty()
	}
	return float64(sum) / float64(len(candidates))
}

// PoolReadiness describes how much metadata a candidate pool carries
// for adaptive selection.
type PoolReadiness struct {
	Total          int  `json:"total"`
	WithDifficulty int  `json:"with_difficulty"`
	WithCategory   int  `json:"with_category"`
	Ready          bool `json:"ready"`
}

// CheckReadiness flags whether adaptive selection over the pool is
// meaningful. The pool is unready only when every candidate lacks
// explicit difficulty metadata.
func CheckReadiness(candidates []bank.Question) PoolReadiness {
	r := PoolReadiness{Total: len(candidates)}
	for i := range candidates {
		q := &candidates[i]
		if q.HasDifficulty() {
			r.WithDifficulty++
		}
		if q.Meta != nil && q.Meta.Category != "" {
			r.WithCategory++
		}
	}
	r.Ready = r.WithDifficulty > 0
	return r
}
