package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/textmatch"
)

// MatchType classifies how a graded answer matched.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchFuzzy   MatchType = "fuzzy"
	MatchPartial MatchType = "partial"
	MatchNone    MatchType = "none"
)

// ManualGradingRequired marks a short-answer result that cannot be
// auto-graded because the question carries no reference answer.
const ManualGradingRequired = "manual grading required"

// Result is the outcome of grading one submitted answer.
type Result struct {
	IsCorrect bool      `json:"is_correct"`
	Score     float64   `json:"score"`
	MatchType MatchType `json:"match_type"`

	// Similarity is populated for text answers only.
	Similarity float64 `json:"similarity,omitempty"`

	// MatchedAnswer is the acceptable-answer text that matched, or an
	// informational marker for ungradable questions.
	MatchedAnswer string `json:"matched_answer,omitempty"`

	Feedback string `json:"feedback,omitempty"`
}

// Grade scores a submitted value against a question. A value whose type
// does not fit the question's variant is never an error: it grades as
// incorrect with MatchType none. The only error is an unknown question
// variant, which indicates a bug in the caller, not in the submission.
func Grade(q *bank.Question, value any, cfg Config) (Result, error) {
	switch v := q.Variant.(type) {
	case bank.SingleChoice:
		return gradeSingleChoice(v, value), nil
	case bank.MultiChoice:
		return gradeMultiChoice(v, value), nil
	case bank.TrueFalse:
		return gradeTrueFalse(v, value), nil
	case bank.FillInBlank:
		return gradeText(v.AcceptableAnswers, value, cfg), nil
	case bank.ShortAnswer:
		return gradeShortAnswer(v, value, cfg), nil
	default:
		return Result{MatchType: MatchNone}, fmt.Errorf("question %q: unknown variant %T", q.ID, q.Variant)
	}
}

func gradeSingleChoice(v bank.SingleChoice, value any) Result {
	idx, ok := asIndex(value)
	if !ok {
		return Result{MatchType: MatchNone}
	}
	for _, c := range v.CorrectIndices {
		if idx == c {
			return Result{IsCorrect: true, Score: 1.0, MatchType: MatchExact}
		}
	}
	return Result{MatchType: MatchNone}
}

func gradeMultiChoice(v bank.MultiChoice, value any) Result {
	indices, ok := asIndexSlice(value)
	if !ok {
		return Result{MatchType: MatchNone}
	}

	// Set semantics: order and duplicates are irrelevant, and the
	// submission must cover the correct set exactly. No partial credit.
	correct := make(map[int]bool, len(v.CorrectIndices))
	for _, c := range v.CorrectIndices {
		correct[c] = true
	}
	submitted := make(map[int]bool, len(indices))
	for _, i := range indices {
		submitted[i] = true
	}

	if len(submitted) != len(correct) {
		return Result{MatchType: MatchNone}
	}
	for i := range submitted {
		if !correct[i] {
			return Result{MatchType: MatchNone}
		}
	}
	return Result{IsCorrect: true, Score: 1.0, MatchType: MatchExact}
}

func gradeTrueFalse(v bank.TrueFalse, value any) Result {
	b, ok := value.(bool)
	if !ok {
		return Result{MatchType: MatchNone}
	}
	if b == v.Answer {
		return Result{IsCorrect: true, Score: 1.0, MatchType: MatchExact}
	}
	return Result{MatchType: MatchNone}
}

func gradeShortAnswer(v bank.ShortAnswer, value any, cfg Config) Result {
	if v.ReferenceAnswer == "" {
		return Result{
			MatchType:     MatchNone,
			MatchedAnswer: ManualGradingRequired,
			Feedback:      ManualGradingRequired,
		}
	}
	// The single reference answer acts as a one-element acceptable list.
	answers := []bank.AcceptableAnswer{{Text: v.ReferenceAnswer}}
	return gradeText(answers, value, cfg)
}

// gradeText runs the shared best-match algorithm over an acceptable-answer
// list, tracking the highest-similarity candidate.
func gradeText(answers []bank.AcceptableAnswer, value any, cfg Config) Result {
	submitted, ok := value.(string)
	if !ok {
		return Result{MatchType: MatchNone}
	}
	if strings.TrimSpace(submitted) == "" {
		return Result{MatchType: MatchNone}
	}

	best := Result{MatchType: MatchNone}
	bestSim := 0.0

	for i := range answers {
		a := &answers[i]

		// Normalization applies only when fuzzy matching is globally on
		// and this answer's own policy wants it.
		normalized := cfg.EnableFuzzyMatching && a.WantsNormalization()
		sub, cand := submitted, a.Text
		if normalized {
			caseSensitive := a.CaseSensitive != nil && *a.CaseSensitive
			sub = textmatch.Normalize(submitted, caseSensitive)
			cand = textmatch.Normalize(a.Text, caseSensitive)
		}

		if sub == cand {
			score := 1.0
			if a.PartialCredit != nil {
				score = *a.PartialCredit
			}
			return Result{
				IsCorrect:     true,
				Score:         score,
				MatchType:     MatchExact,
				Similarity:    1.0,
				MatchedAnswer: a.Text,
				Feedback:      a.Feedback,
			}
		}

		// No fuzzy attempt for exact-only answers, when fuzzy matching is
		// off, or when this answer opted out of normalization.
		if a.ExactMatch || !normalized {
			continue
		}

		sim := textmatch.Similarity(sub, cand)
		if sim <= bestSim {
			continue
		}
		bestSim = sim

		switch {
		case sim >= cfg.FuzzyMatchThreshold:
			best = Result{
				IsCorrect:     true,
				Score:         1.0,
				MatchType:     MatchFuzzy,
				Similarity:    sim,
				MatchedAnswer: a.Text,
				Feedback:      a.Feedback,
			}
		case cfg.EnablePartialCredit && sim >= cfg.PartialCreditThreshold:
			score := cfg.PartialCreditValue
			if a.PartialCredit != nil {
				score = *a.PartialCredit
			}
			best = Result{
				Score:         score,
				MatchType:     MatchPartial,
				Similarity:    sim,
				MatchedAnswer: a.Text,
				Feedback:      a.Feedback,
			}
		default:
			// Not close enough to count, but still the best similarity
			// seen; later candidates must beat it.
			best = Result{MatchType: MatchNone, Similarity: sim}
		}
	}

	return best
}

// asIndex coerces a submitted choice index. JSON decoding hands numbers
// over as float64, so whole floats are accepted alongside ints.
func asIndex(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// asIndexSlice coerces a submitted index collection.
func asIndexSlice(value any) ([]int, bool) {
	switch v := value.(type) {
	case []int:
		return v, true
	case []float64:
		out := make([]int, 0, len(v))
		for _, f := range v {
			i, ok := asIndex(f)
			if !ok {
				return nil, false
			}
			out = append(out, i)
		}
		return out, true
	case []any:
		out := make([]int, 0, len(v))
		for _, e := range v {
			i, ok := asIndex(e)
			if !ok {
				return nil, false
			}
			out = append(out, i)
		}
		return out, true
	}
	return nil, false
}
