package session

import (
	"fmt"

	"github.com/abhisek/quizkit/internal/grading"
)

// Summary aggregates grading results over a session. Partially-scored
// answers split between TotalCorrect and TotalIncorrect, so both may be
// fractional while their sum with TotalUnanswered equals TotalQuestions.
type Summary struct {
	TotalQuestions  int     `json:"total_questions"`
	TotalCorrect    float64 `json:"total_correct"`
	TotalIncorrect  float64 `json:"total_incorrect"`
	TotalUnanswered int     `json:"total_unanswered"`
	TotalScore      float64 `json:"total_score"`
	Score           float64 `json:"score"`
}

// Grade grades every stored answer against its question, writes the
// result onto the stored answer, and returns the aggregate. Score is
// the percentage of points earned over answered questions only; a
// session with no answers scores zero. Grading is re-runnable: a second
// call re-grades current answers and overwrites earlier results. On
// error no result is written and stored answers are left as they were.
func (s *Session) Grade(cfg grading.Config) (*Summary, error) {
	sum := &Summary{TotalQuestions: len(s.Questions)}

	// Grade everything before writing anything back, so an error
	// partway through leaves the session untouched.
	results := make(map[string]*grading.Result, len(s.Answers))
	for i := range s.Questions {
		sq := &s.Questions[i]
		ans, ok := s.Answers[sq.Key]
		if !ok {
			sum.TotalUnanswered++
			continue
		}

		res, err := grading.Grade(&sq.Question, ans.Value, cfg)
		if err != nil {
			return nil, fmt.Errorf("grade %s: %w", sq.Key, err)
		}
		results[sq.Key] = &res

		sum.TotalScore += res.Score
		switch {
		case res.Score >= 1:
			sum.TotalCorrect++
		case res.Score > 0:
			sum.TotalCorrect += res.Score
			sum.TotalIncorrect += 1 - res.Score
		default:
			sum.TotalIncorrect++
		}
	}

	for key, res := range results {
		s.Answers[key].Result = res
	}

	if answered := sum.TotalQuestions - sum.TotalUnanswered; answered > 0 {
		sum.Score = 100 * sum.TotalScore / float64(answered)
	}
	return sum, nil
}
