package skill

import "time"

// RecentWindow is the number of most recent outcome scores kept per level.
const RecentWindow = 10

// Level tracks a user's estimated ability in one category. Created
// lazily at the scale's center with zero confidence; mutated only by
// Update. Deletion is an external concern.
type Level struct {
	Category           string    `json:"category"`
	EstimatedLevel     float64   `json:"estimated_level"`
	Confidence         float64   `json:"confidence"`
	QuestionsAttempted int       `json:"questions_attempted"`
	RecentPerformance  []float64 `json:"recent_performance"`
	LastUpdated        time.Time `json:"last_updated"`
}

// NewLevel creates a fresh level for a category: center of the 1-5
// range, no confidence, no history.
func NewLevel(category string) *Level {
	return &Level{
		Category:       category,
		EstimatedLevel: DefaultLevel,
	}
}

// Update folds one graded outcome into the level: Elo adjustment of the
// estimate, rolling-window append (keeping the last RecentWindow
// scores), confidence recomputation, and bookkeeping.
func (l *Level) Update(difficulty, score, k float64) {
	score = clamp01(score)
	l.EstimatedLevel = UpdateLevel(l.EstimatedLevel, difficulty, score, k)

	l.RecentPerformance = append(l.RecentPerformance, score)
	if len(l.RecentPerformance) > RecentWindow {
		l.RecentPerformance = l.RecentPerformance[len(l.RecentPerformance)-RecentWindow:]
	}

	l.Confidence = Confidence(l.RecentPerformance)
	l.QuestionsAttempted++
	l.LastUpdated = time.Now()
}

// Confidence derives a consistency measure in [0,1] from a window of
// recent outcome scores. Low variance — consistently right or
// consistently wrong — means high confidence in the estimate; erratic
// outcomes mean low confidence. Not an accuracy measure.
func Confidence(recent []float64) float64 {
	n := len(recent)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return 0.3
	}

	mean := 0.0
	for _, s := range recent {
		mean += s
	}
	mean /= float64(n)

	variance := 0.0
	for _, s := range recent {
		d := s - mean
		variance += d * d
	}
	variance /= float64(n)

	// Variance of values in [0,1] caps at 0.25 (alternating extremes).
	if variance > 0.25 {
		variance = 0.25
	}

	sample := float64(n) / float64(RecentWindow)
	if sample > 1 {
		sample = 1
	}

	c := 0.3 + 0.65*(1-variance/0.25) + sample*0.05
	if c > 0.95 {
		c = 0.95
	}
	return c
}
