package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizkit/internal/adaptive"
	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/skill"
)

// BankRegistry is the read-only bank lookup Create consumes.
// *bank.Registry satisfies it.
type BankRegistry interface {
	Get(id string) (*bank.QuestionBank, bool)
}

// CreateOptions configures session creation.
type CreateOptions struct {
	UserID  string
	BankIDs []string

	// Randomize shuffles the question order on the non-adaptive path.
	Randomize bool

	// Limit caps the question count; zero or negative means all.
	Limit int

	// Adaptive enables skill-weighted selection. It only takes effect
	// when SkillLevels has at least one known category; with no skill
	// data the selection falls back to the plain path.
	Adaptive       bool
	TargetAccuracy float64
	SkillLevels    skill.Levels

	// Rand is the source for shuffling and sampling. Nil means a
	// clock-seeded source.
	Rand *rand.Rand
}

// Create assembles a session from the selected banks. Every bank id
// must resolve or the whole call fails with bank.ErrUnknownBank. Questions are collected in
// bank-selection order then in-bank order, deduplicated by composite
// key with the first occurrence winning, then either adaptively sampled
// or shuffled and truncated, and finally re-indexed from zero in
// presentation order.
func Create(registry BankRegistry, opts CreateOptions) (*Session, error) {
	banks := make([]*bank.QuestionBank, 0, len(opts.BankIDs))
	for _, id := range opts.BankIDs {
		b, ok := registry.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", bank.ErrUnknownBank, id)
		}
		banks = append(banks, b)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	seen := make(map[string]bool)
	var pool []SessionQuestion
	for _, b := range banks {
		for i := range b.Questions {
			key := CompositeKey(b.ID, b.Questions[i].ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			pool = append(pool, SessionQuestion{Key: key, BankID: b.ID, Question: b.Questions[i]})
		}
	}

	var chosen []SessionQuestion
	if opts.Adaptive && len(opts.SkillLevels) > 0 {
		chosen = selectAdaptive(pool, opts, rng)
	} else {
		chosen = pool
		if opts.Randomize {
			rng.Shuffle(len(chosen), func(i, j int) {
				chosen[i], chosen[j] = chosen[j], chosen[i]
			})
		}
		if opts.Limit > 0 && opts.Limit < len(chosen) {
			chosen = chosen[:opts.Limit]
		}
	}

	for i := range chosen {
		chosen[i].Index = i
	}

	return &Session{
		ID:        uuid.New().String(),
		UserID:    opts.UserID,
		Questions: chosen,
		Answers:   make(map[string]*Answer),
		CreatedAt: time.Now(),
	}, nil
}

// selectAdaptive samples the deduplicated pool by skill-weighted draw.
// Sampling runs on indices so each pick keeps its bank binding; bare
// question ids are not unique across banks.
func selectAdaptive(pool []SessionQuestion, opts CreateOptions, rng *rand.Rand) []SessionQuestion {
	targetAccuracy := opts.TargetAccuracy
	if targetAccuracy == 0 {
		targetAccuracy = adaptive.NeutralTargetAccuracy
	}

	weights := make([]float64, len(pool))
	for i := range pool {
		weights[i] = adaptive.Weight(&pool[i].Question, opts.SkillLevels, targetAccuracy)
	}

	selector := adaptive.NewSelectorWithRand(rng)
	indices := selector.SelectIndices(weights, opts.Limit)

	chosen := make([]SessionQuestion, len(indices))
	for i, idx := range indices {
		chosen[i] = pool[idx]
	}

	// The draw emits high-weight picks first, so the subset is always
	// re-shuffled: weights decide which questions appear, never where.
	rng.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})
	return chosen
}
