package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/grading"
)

// ErrUnknownQuestion is returned by UpdateAnswer for a composite key
// that does not belong to the session; the session is left unmodified.
var ErrUnknownQuestion = errors.New("question not in session")

// CompositeKey builds the session-wide identity of a question. The bank
// id prefix keeps bare question ids reused across banks distinct.
func CompositeKey(bankID, questionID string) string {
	return bankID + "::" + questionID
}

// SessionQuestion binds a question to its originating bank and its
// position in the presentation order.
type SessionQuestion struct {
	Key      string        `json:"key"`
	BankID   string        `json:"bank_id"`
	Index    int           `json:"index"`
	Question bank.Question `json:"question"`
}

// Answer is one stored submission. Grading fills Result in place;
// re-grading overwrites it.
type Answer struct {
	Value      any             `json:"value"`
	AnsweredAt time.Time       `json:"answered_at"`
	Result     *grading.Result `json:"result,omitempty"`
}

// Status is the session's derived lifecycle state.
type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in-progress"
	StatusGraded     Status = "graded"
	StatusCompleted  Status = "completed"
)

// Session owns a frozen question sequence and a growing answer map.
// The question selection and order never change after Create; answers
// are last-write-wins per composite key. A session has one logical
// writer at a time; callers serialize access.
type Session struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Questions   []SessionQuestion  `json:"questions"`
	Answers     map[string]*Answer `json:"answers"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`

	byKey map[string]*SessionQuestion
}

// QuestionByKey returns the session question for a composite key.
func (s *Session) QuestionByKey(key string) (*SessionQuestion, bool) {
	if s.byKey == nil {
		s.byKey = make(map[string]*SessionQuestion, len(s.Questions))
		for i := range s.Questions {
			s.byKey[s.Questions[i].Key] = &s.Questions[i]
		}
	}
	sq, ok := s.byKey[key]
	return sq, ok
}

// UpdateAnswer stores a submission for a question in the session,
// replacing any earlier answer for the same key. It does not grade.
func (s *Session) UpdateAnswer(key string, value any) error {
	if _, ok := s.QuestionByKey(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, key)
	}
	s.Answers[key] = &Answer{Value: value, AnsweredAt: time.Now()}
	return nil
}

// Complete stamps the completion time. Calling it again re-stamps;
// once-only side effects such as skill updates belong to the caller.
func (s *Session) Complete() {
	now := time.Now()
	s.CompletedAt = &now
}

// Status derives the lifecycle state from session contents: completed
// once stamped, graded once any stored answer carries a result,
// in-progress once any answer exists, created otherwise.
func (s *Session) Status() Status {
	if s.CompletedAt != nil {
		return StatusCompleted
	}
	for _, a := range s.Answers {
		if a.Result != nil {
			return StatusGraded
		}
	}
	if len(s.Answers) > 0 {
		return StatusInProgress
	}
	return StatusCreated
}

// Progress reports how much of the session has been answered.
type Progress struct {
	Answered        int     `json:"answered"`
	Total           int     `json:"total"`
	PercentComplete float64 `json:"percent_complete"`
}

// GetProgress is a pure read of answer coverage.
func (s *Session) GetProgress() Progress {
	p := Progress{Answered: len(s.Answers), Total: len(s.Questions)}
	if p.Total > 0 {
		p.PercentComplete = 100 * float64(p.Answered) / float64(p.Total)
	}
	return p
}
