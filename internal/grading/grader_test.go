package grading

import (
	"testing"

	"github.com/abhisek/quizkit/internal/bank"
)

func singleChoiceQ() *bank.Question {
	return &bank.Question{
		ID:   "sc",
		Type: bank.TypeMultipleChoiceSingle,
		Text: "Capital of France?",
		Variant: bank.SingleChoice{
			Choices:        []string{"London", "Paris", "Berlin", "Madrid"},
			CorrectIndices: []int{1},
		},
	}
}

func multiChoiceQ() *bank.Question {
	return &bank.Question{
		ID:   "mc",
		Type: bank.TypeMultipleChoiceMulti,
		Text: "Which are primary colors?",
		Variant: bank.MultiChoice{
			Choices:        []string{"red", "green", "blue", "yellow"},
			CorrectIndices: []int{0, 2, 3},
		},
	}
}

func fillInBlankQ(answers ...bank.AcceptableAnswer) *bank.Question {
	return &bank.Question{
		ID:      "fib",
		Type:    bank.TypeFillInBlank,
		Text:    "The capital of France is ____.",
		Variant: bank.FillInBlank{AcceptableAnswers: answers},
	}
}

func TestGradeSingleChoice(t *testing.T) {
	q := singleChoiceQ()
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		value       any
		wantCorrect bool
		wantMatch   MatchType
	}{
		{"correct index", 1, true, MatchExact},
		{"correct as float", float64(1), true, MatchExact},
		{"wrong index", 0, false, MatchNone},
		{"out of range", 9, false, MatchNone},
		{"wrong type string", "Paris", false, MatchNone},
		{"wrong type bool", true, false, MatchNone},
		{"fractional float", 1.5, false, MatchNone},
		{"nil", nil, false, MatchNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grade(q, tt.value, cfg)
			if err != nil {
				t.Fatalf("Grade error: %v", err)
			}
			if got.IsCorrect != tt.wantCorrect || got.MatchType != tt.wantMatch {
				t.Errorf("Grade(%v) = correct=%v match=%s, want correct=%v match=%s",
					tt.value, got.IsCorrect, got.MatchType, tt.wantCorrect, tt.wantMatch)
			}
			wantScore := 0.0
			if tt.wantCorrect {
				wantScore = 1.0
			}
			if got.Score != wantScore {
				t.Errorf("Score = %v, want %v", got.Score, wantScore)
			}
		})
	}
}

func TestGradeMultiChoice(t *testing.T) {
	q := multiChoiceQ()
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		value       any
		wantCorrect bool
	}{
		{"exact order", []int{0, 2, 3}, true},
		{"permuted order", []int{3, 0, 2}, true},
		{"duplicates ignored", []int{0, 0, 2, 3, 3}, true},
		{"missing one", []int{0, 2}, false},
		{"extra one", []int{0, 1, 2, 3}, false},
		{"disjoint", []int{1}, false},
		{"empty", []int{}, false},
		{"float indices", []float64{0, 2, 3}, true},
		{"json decoded", []any{float64(0), float64(2), float64(3)}, true},
		{"wrong type", "0,2,3", false},
		{"non-integer member", []float64{0, 2.5, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grade(q, tt.value, cfg)
			if err != nil {
				t.Fatalf("Grade error: %v", err)
			}
			if got.IsCorrect != tt.wantCorrect {
				t.Errorf("Grade(%v).IsCorrect = %v, want %v", tt.value, got.IsCorrect, tt.wantCorrect)
			}
			// All-or-nothing: no fractional scores for multi-select.
			if got.Score != 0 && got.Score != 1 {
				t.Errorf("Score = %v, want 0 or 1", got.Score)
			}
		})
	}
}

func TestGradeTrueFalse(t *testing.T) {
	q := &bank.Question{
		ID:      "tf",
		Type:    bank.TypeTrueFalse,
		Text:    "The Nile is in Africa.",
		Variant: bank.TrueFalse{Answer: true},
	}
	cfg := DefaultConfig()

	got, _ := Grade(q, true, cfg)
	if !got.IsCorrect || got.Score != 1.0 || got.MatchType != MatchExact {
		t.Errorf("Grade(true) = %+v, want exact correct", got)
	}

	got, _ = Grade(q, false, cfg)
	if got.IsCorrect || got.Score != 0 || got.MatchType != MatchNone {
		t.Errorf("Grade(false) = %+v, want none incorrect", got)
	}

	// Shape mismatch never errors, just grades incorrect.
	got, err := Grade(q, "true", cfg)
	if err != nil {
		t.Fatalf("Grade error: %v", err)
	}
	if got.IsCorrect || got.MatchType != MatchNone {
		t.Errorf("Grade(%q) = %+v, want none", "true", got)
	}
}

func TestGradeFillInBlankParisScenario(t *testing.T) {
	q := fillInBlankQ(bank.AcceptableAnswer{Text: "Paris"})
	cfg := Config{
		EnableFuzzyMatching:    true,
		FuzzyMatchThreshold:    0.8,
		EnablePartialCredit:    true,
		PartialCreditThreshold: 0.6,
		PartialCreditValue:     0.5,
	}

	tests := []struct {
		submitted string
		wantMatch MatchType
		wantScore float64
	}{
		{"Paris", MatchExact, 1.0},
		{"paris", MatchExact, 1.0},
		{"  The Paris!  ", MatchExact, 1.0},
		{"Pariz", MatchFuzzy, 1.0},
		{"London", MatchNone, 0},
		{"", MatchNone, 0},
		{"   ", MatchNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.submitted, func(t *testing.T) {
			got, err := Grade(q, tt.submitted, cfg)
			if err != nil {
				t.Fatalf("Grade error: %v", err)
			}
			if got.MatchType != tt.wantMatch || got.Score != tt.wantScore {
				t.Errorf("Grade(%q) = match=%s score=%v, want match=%s score=%v",
					tt.submitted, got.MatchType, got.Score, tt.wantMatch, tt.wantScore)
			}
		})
	}
}

func TestGradeFillInBlankExactCarriesMatchedAnswer(t *testing.T) {
	q := fillInBlankQ(
		bank.AcceptableAnswer{Text: "Mount Everest"},
		bank.AcceptableAnswer{Text: "Everest", Feedback: "Commonly shortened."},
	)
	got, _ := Grade(q, "everest", DefaultConfig())
	if got.MatchType != MatchExact || got.MatchedAnswer != "Everest" {
		t.Errorf("Grade = %+v, want exact match on Everest", got)
	}
	if got.Feedback != "Commonly shortened." {
		t.Errorf("Feedback = %q, want answer feedback", got.Feedback)
	}
	if got.Similarity != 1.0 {
		t.Errorf("Similarity = %v, want 1.0", got.Similarity)
	}
}

func TestGradeFillInBlankPartialCredit(t *testing.T) {
	q := fillInBlankQ(bank.AcceptableAnswer{Text: "mississippi"})
	cfg := Config{
		EnableFuzzyMatching:    true,
		FuzzyMatchThreshold:    0.9,
		EnablePartialCredit:    true,
		PartialCreditThreshold: 0.6,
		PartialCreditValue:     0.5,
	}

	// "missisippi" is 1 edit from mississippi: similarity 10/11 ≈ 0.909 → fuzzy.
	got, _ := Grade(q, "missisippi", cfg)
	if got.MatchType != MatchFuzzy || got.Score != 1.0 {
		t.Errorf("near miss = %+v, want fuzzy/1.0", got)
	}

	// "misisipi" is 3 edits: similarity 8/11 ≈ 0.727 → partial.
	got, _ = Grade(q, "misisipi", cfg)
	if got.MatchType != MatchPartial {
		t.Fatalf("partial miss match = %s, want partial", got.MatchType)
	}
	if got.Score != 0.5 {
		t.Errorf("partial score = %v, want 0.5", got.Score)
	}
	if got.IsCorrect {
		t.Errorf("partial match should not be marked correct")
	}

	// With partial credit disabled the same input is a non-match.
	cfg.EnablePartialCredit = false
	got, _ = Grade(q, "misisipi", cfg)
	if got.MatchType != MatchNone || got.Score != 0 {
		t.Errorf("partial disabled = %+v, want none/0", got)
	}
}

func TestGradeFillInBlankPerAnswerOverrides(t *testing.T) {
	half := 0.5
	yes := true

	t.Run("partial credit override on exact match", func(t *testing.T) {
		q := fillInBlankQ(bank.AcceptableAnswer{Text: "Roosevelt", PartialCredit: &half})
		got, _ := Grade(q, "roosevelt", DefaultConfig())
		if got.MatchType != MatchExact || got.Score != 0.5 || !got.IsCorrect {
			t.Errorf("Grade = %+v, want exact with overridden score 0.5", got)
		}
	})

	t.Run("exact-only answer skips fuzzy", func(t *testing.T) {
		q := fillInBlankQ(bank.AcceptableAnswer{Text: "Paris", ExactMatch: true})
		got, _ := Grade(q, "Pariz", DefaultConfig())
		if got.MatchType != MatchNone || got.Score != 0 {
			t.Errorf("Grade = %+v, want none for exact-only near miss", got)
		}
		// The exact string still matches (normalized).
		got, _ = Grade(q, "paris", DefaultConfig())
		if got.MatchType != MatchExact {
			t.Errorf("Grade = %+v, want exact", got)
		}
	})

	t.Run("case sensitive answer compares raw", func(t *testing.T) {
		q := fillInBlankQ(bank.AcceptableAnswer{Text: "pH", CaseSensitive: &yes})
		got, _ := Grade(q, "ph", DefaultConfig())
		if got.MatchType != MatchNone {
			t.Errorf("Grade(ph) = %+v, want none for case mismatch", got)
		}
		got, _ = Grade(q, "pH", DefaultConfig())
		if got.MatchType != MatchExact {
			t.Errorf("Grade(pH) = %+v, want exact", got)
		}
	})

	t.Run("fuzzy disabled compares raw", func(t *testing.T) {
		q := fillInBlankQ(bank.AcceptableAnswer{Text: "Paris"})
		cfg := DefaultConfig()
		cfg.EnableFuzzyMatching = false
		got, _ := Grade(q, "paris", cfg)
		if got.MatchType != MatchNone {
			t.Errorf("Grade = %+v, want none with fuzzy off and raw mismatch", got)
		}
		got, _ = Grade(q, "Paris", cfg)
		if got.MatchType != MatchExact {
			t.Errorf("Grade = %+v, want raw exact", got)
		}
	})
}

func TestGradeFillInBlankTracksBestCandidate(t *testing.T) {
	q := fillInBlankQ(
		bank.AcceptableAnswer{Text: "completely unrelated"},
		bank.AcceptableAnswer{Text: "Pariz"},
	)
	cfg := DefaultConfig()
	got, _ := Grade(q, "Paris", cfg)
	if got.MatchType != MatchFuzzy || got.MatchedAnswer != "Pariz" {
		t.Errorf("Grade = %+v, want fuzzy match against closest candidate", got)
	}
}

func TestGradeShortAnswer(t *testing.T) {
	cfg := DefaultConfig()

	q := &bank.Question{
		ID:      "sa",
		Type:    bank.TypeShortAnswer,
		Text:    "Longest river?",
		Variant: bank.ShortAnswer{ReferenceAnswer: "The Nile"},
	}
	got, _ := Grade(q, "nile", cfg)
	if !got.IsCorrect || got.MatchType != MatchExact {
		t.Errorf("Grade(nile) = %+v, want exact after article stripping", got)
	}

	// No reference answer: ungradable, flagged for manual review.
	manual := &bank.Question{
		ID:      "sa2",
		Type:    bank.TypeShortAnswer,
		Text:    "Explain photosynthesis.",
		Variant: bank.ShortAnswer{},
	}
	got, err := Grade(manual, "chlorophyll something", cfg)
	if err != nil {
		t.Fatalf("Grade error: %v", err)
	}
	if got.IsCorrect || got.Score != 0 || got.MatchType != MatchNone {
		t.Errorf("ungradable = %+v, want incorrect none", got)
	}
	if got.MatchedAnswer != ManualGradingRequired {
		t.Errorf("MatchedAnswer = %q, want manual-grading marker", got.MatchedAnswer)
	}
}

func TestGradeTextWrongType(t *testing.T) {
	q := fillInBlankQ(bank.AcceptableAnswer{Text: "Paris"})
	got, err := Grade(q, 42, DefaultConfig())
	if err != nil {
		t.Fatalf("Grade error: %v", err)
	}
	if got.IsCorrect || got.MatchType != MatchNone {
		t.Errorf("Grade(42) = %+v, want none", got)
	}
}

func TestGradeUnknownVariant(t *testing.T) {
	q := &bank.Question{ID: "bad", Type: "essay", Text: "?"}
	if _, err := Grade(q, "anything", DefaultConfig()); err == nil {
		t.Errorf("Grade accepted unknown variant")
	}
}
