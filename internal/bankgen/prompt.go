package bankgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizkit/internal/bank"
)

const systemPrompt = `You are a quiz author producing question banks for a self-hosted quiz application.

Rules:
- Generate the requested number of questions about the given topic, nothing else.
- Facts must be accurate and unambiguous; avoid trick questions and opinion.
- Each question is self-contained: no references to other questions or "the above".
- Spread difficulty across the requested range, not all at one level.
- For multiple_choice_single, provide 3-5 choices with exactly one correct index. Distractors should be plausible, not absurd.
- For multiple_choice_multi, provide 4-6 choices with two or more correct indices.
- For fill_in_blank, list every reasonable accepted phrasing in acceptable_answers (common spellings, with and without articles).
- For short_answer, reference_answer is the canonical short answer.
- Fields that do not apply to a question's type stay empty (empty array, empty string, false).
- Every question gets a short lowercase category tag and a one or two sentence explanation.`

// buildUserMessage renders the generation request for the model.
func buildUserMessage(p Params) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", p.Topic)
	if p.Description != "" {
		fmt.Fprintf(&b, "Focus: %s\n", p.Description)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", p.NumQuestions)

	types := p.Types
	if len(types) == 0 {
		types = bank.AllQuestionTypes()
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	fmt.Fprintf(&b, "Allowed question types: %s\n", strings.Join(names, ", "))

	if p.Category != "" {
		fmt.Fprintf(&b, "Category for all questions: %s\n", p.Category)
	}
	fmt.Fprintf(&b, "Difficulty range: %d-%d\n", p.MinDifficulty, p.MaxDifficulty)

	return b.String()
}
