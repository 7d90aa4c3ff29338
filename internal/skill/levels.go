package skill

import (
	"sort"
	"time"
)

// Levels holds one user's per-category skill levels. A plain map with
// lazy defaults; callers own serialization and any concurrency control.
type Levels map[string]*Level

// Get returns the level for a category, creating the lazy default on
// first access.
func (ls Levels) Get(category string) *Level {
	if l, ok := ls[category]; ok {
		return l
	}
	l := NewLevel(category)
	ls[category] = l
	return l
}

// EstimateFor returns the estimated level for a category without
// creating an entry; unknown categories read as the default level.
func (ls Levels) EstimateFor(category string) float64 {
	if l, ok := ls[category]; ok {
		return l.EstimatedLevel
	}
	return DefaultLevel
}

// TotalAttempted sums question attempts across all categories.
func (ls Levels) TotalAttempted() int {
	total := 0
	for _, l := range ls {
		total += l.QuestionsAttempted
	}
	return total
}

// ReadyForAdaptation reports whether enough questions have been
// attempted overall for adaptive selection to be meaningful.
func (ls Levels) ReadyForAdaptation(minQuestions int) bool {
	return len(ls) > 0 && ls.TotalAttempted() >= minQuestions
}

// CategorySummary is the per-category slice of a skill summary.
type CategorySummary struct {
	Category           string    `json:"category"`
	EstimatedLevel     float64   `json:"estimated_level"`
	Confidence         float64   `json:"confidence"`
	QuestionsAttempted int       `json:"questions_attempted"`
	LastUpdated        time.Time `json:"last_updated"`
}

// Summary is the read-only shape handed upward to callers:
// per-category detail plus an attempt-weighted overall level.
type Summary struct {
	OverallLevel       float64           `json:"overall_level"`
	QuestionsAttempted int               `json:"questions_attempted"`
	Categories         []CategorySummary `json:"categories"`
}

// Summarize builds a Summary. The overall level is the attempt-weighted
// mean of category estimates, or the default level with no attempts.
func (ls Levels) Summarize() Summary {
	s := Summary{OverallLevel: DefaultLevel}

	var weightedSum, totalWeight float64
	for _, l := range ls {
		s.Categories = append(s.Categories, CategorySummary{
			Category:           l.Category,
			EstimatedLevel:     l.EstimatedLevel,
			Confidence:         l.Confidence,
			QuestionsAttempted: l.QuestionsAttempted,
			LastUpdated:        l.LastUpdated,
		})
		s.QuestionsAttempted += l.QuestionsAttempted
		weightedSum += l.EstimatedLevel * float64(l.QuestionsAttempted)
		totalWeight += float64(l.QuestionsAttempted)
	}

	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Category < s.Categories[j].Category
	})

	if totalWeight > 0 {
		s.OverallLevel = weightedSum / totalWeight
	}
	return s
}
