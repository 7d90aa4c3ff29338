package bank

import (
	"encoding/json"
	"fmt"
)

// QuestionType identifies a question variant.
type QuestionType string

const (
	TypeMultipleChoiceSingle QuestionType = "multiple_choice_single"
	TypeMultipleChoiceMulti  QuestionType = "multiple_choice_multi"
	TypeTrueFalse            QuestionType = "true_false"
	TypeFillInBlank          QuestionType = "fill_in_blank"
	TypeShortAnswer          QuestionType = "short_answer"
)

// AllQuestionTypes returns the supported variants in display order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		TypeMultipleChoiceSingle,
		TypeMultipleChoiceMulti,
		TypeTrueFalse,
		TypeFillInBlank,
		TypeShortAnswer,
	}
}

// Default values applied when question metadata is absent.
const (
	DefaultDifficulty = 3
	DefaultCategory   = "general"
)

// Meta carries optional difficulty and category metadata.
// A zero Difficulty means "not set".
type Meta struct {
	Difficulty int    `json:"difficulty,omitempty"`
	Category   string `json:"category,omitempty"`
}

// Question is a single quiz question. The Variant field holds the
// type-specific payload; Type always matches the variant's concrete type.
// Questions are immutable once loaded into a session.
type Question struct {
	ID          string
	Type        QuestionType
	Text        string
	Explanation string
	Meta        *Meta
	Variant     Variant
}

// Variant is the sealed union of type-specific question payloads.
// Exactly one concrete type exists per QuestionType; consumers type-switch
// over it and must treat an unknown variant as an error, never a fallthrough.
type Variant interface {
	questionVariant()
}

// SingleChoice is the payload for multiple_choice_single. CorrectIndices
// is expected to hold exactly one element, but graders use membership
// regardless.
type SingleChoice struct {
	Choices        []string
	CorrectIndices []int
}

// MultiChoice is the payload for multiple_choice_multi. A submission is
// correct only when it equals CorrectIndices as a set.
type MultiChoice struct {
	Choices        []string
	CorrectIndices []int
}

// TrueFalse is the payload for true_false.
type TrueFalse struct {
	Answer bool
}

// FillInBlank is the payload for fill_in_blank.
type FillInBlank struct {
	AcceptableAnswers []AcceptableAnswer
}

// ShortAnswer is the payload for short_answer. An empty ReferenceAnswer
// means the question cannot be auto-graded.
type ShortAnswer struct {
	ReferenceAnswer string
}

func (SingleChoice) questionVariant() {}
func (MultiChoice) questionVariant()  {}
func (TrueFalse) questionVariant()    {}
func (FillInBlank) questionVariant()  {}
func (ShortAnswer) questionVariant()  {}

// EffectiveDifficulty returns the question's difficulty, defaulting to
// DefaultDifficulty when metadata is absent or unset. This is the single
// point where the default is applied.
func (q *Question) EffectiveDifficulty() int {
	if q.Meta == nil || q.Meta.Difficulty == 0 {
		return DefaultDifficulty
	}
	return q.Meta.Difficulty
}

// EffectiveCategory returns the question's category, defaulting to
// DefaultCategory when metadata is absent or empty.
func (q *Question) EffectiveCategory() string {
	if q.Meta == nil || q.Meta.Category == "" {
		return DefaultCategory
	}
	return q.Meta.Category
}

// HasDifficulty reports whether the question carries explicit difficulty
// metadata (used by pool readiness checks).
func (q *Question) HasDifficulty() bool {
	return q.Meta != nil && q.Meta.Difficulty != 0
}

// questionJSON is the wire representation of a question. Variant fields
// are flat; which ones apply depends on Type.
type questionJSON struct {
	ID                string             `json:"id"`
	Type              QuestionType       `json:"type"`
	Text              string             `json:"text"`
	Explanation       string             `json:"explanation,omitempty"`
	Meta              *Meta              `json:"meta,omitempty"`
	Choices           []string           `json:"choices,omitempty"`
	CorrectIndices    []int              `json:"correct_indices,omitempty"`
	Answer            *bool              `json:"answer,omitempty"`
	AcceptableAnswers []AcceptableAnswer `json:"acceptable_answers,omitempty"`
	ReferenceAnswer   string             `json:"reference_answer,omitempty"`
}

// UnmarshalJSON decodes the tagged question representation, building the
// variant payload that matches the type tag.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	q.ID = raw.ID
	q.Type = raw.Type
	q.Text = raw.Text
	q.Explanation = raw.Explanation
	q.Meta = raw.Meta

	switch raw.Type {
	case TypeMultipleChoiceSingle:
		q.Variant = SingleChoice{Choices: raw.Choices, CorrectIndices: raw.CorrectIndices}
	case TypeMultipleChoiceMulti:
		q.Variant = MultiChoice{Choices: raw.Choices, CorrectIndices: raw.CorrectIndices}
	case TypeTrueFalse:
		if raw.Answer == nil {
			return fmt.Errorf("question %q: true_false requires an answer", raw.ID)
		}
		q.Variant = TrueFalse{Answer: *raw.Answer}
	case TypeFillInBlank:
		q.Variant = FillInBlank{AcceptableAnswers: raw.AcceptableAnswers}
	case TypeShortAnswer:
		q.Variant = ShortAnswer{ReferenceAnswer: raw.ReferenceAnswer}
	default:
		return fmt.Errorf("question %q: unknown type %q", raw.ID, raw.Type)
	}
	return nil
}

// MarshalJSON encodes the question back into its tagged wire form.
func (q Question) MarshalJSON() ([]byte, error) {
	raw := questionJSON{
		ID:          q.ID,
		Type:        q.Type,
		Text:        q.Text,
		Explanation: q.Explanation,
		Meta:        q.Meta,
	}

	switch v := q.Variant.(type) {
	case SingleChoice:
		raw.Choices = v.Choices
		raw.CorrectIndices = v.CorrectIndices
	case MultiChoice:
		raw.Choices = v.Choices
		raw.CorrectIndices = v.CorrectIndices
	case TrueFalse:
		answer := v.Answer
		raw.Answer = &answer
	case FillInBlank:
		raw.AcceptableAnswers = v.AcceptableAnswers
	case ShortAnswer:
		raw.ReferenceAnswer = v.ReferenceAnswer
	default:
		return nil, fmt.Errorf("question %q: unknown variant %T", q.ID, q.Variant)
	}
	return json.Marshal(raw)
}

// Validate checks structural integrity of the question beyond schema
// validation: index bounds, non-empty answer lists, difficulty range.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has no id")
	}
	if q.Text == "" {
		return fmt.Errorf("question %q: empty text", q.ID)
	}
	if q.Meta != nil && q.Meta.Difficulty != 0 {
		if q.Meta.Difficulty < 1 || q.Meta.Difficulty > 5 {
			return fmt.Errorf("question %q: difficulty %d outside 1-5", q.ID, q.Meta.Difficulty)
		}
	}

	switch v := q.Variant.(type) {
	case SingleChoice:
		return validateChoices(q.ID, v.Choices, v.CorrectIndices)
	case MultiChoice:
		return validateChoices(q.ID, v.Choices, v.CorrectIndices)
	case TrueFalse:
		return nil
	case FillInBlank:
		if len(v.AcceptableAnswers) == 0 {
			return fmt.Errorf("question %q: fill_in_blank requires acceptable answers", q.ID)
		}
		for i, a := range v.AcceptableAnswers {
			if a.Text == "" {
				return fmt.Errorf("question %q: acceptable answer %d has empty text", q.ID, i)
			}
			if a.PartialCredit != nil && (*a.PartialCredit < 0 || *a.PartialCredit > 1) {
				return fmt.Errorf("question %q: acceptable answer %d partial credit outside 0-1", q.ID, i)
			}
		}
		return nil
	case ShortAnswer:
		return nil
	default:
		return fmt.Errorf("question %q: unknown variant %T", q.ID, q.Variant)
	}
}

func validateChoices(id string, choices []string, correct []int) error {
	if len(choices) < 2 {
		return fmt.Errorf("question %q: needs at least 2 choices", id)
	}
	if len(correct) == 0 {
		return fmt.Errorf("question %q: no correct indices", id)
	}
	for _, idx := range correct {
		if idx < 0 || idx >= len(choices) {
			return fmt.Errorf("question %q: correct index %d out of range", id, idx)
		}
	}
	return nil
}
