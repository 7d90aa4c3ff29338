package bankgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/llm"
)

// Generator produces question banks with a language model. Output runs
// through the same parser and validation as hand-written bank files, so
// a generated bank that loads is indistinguishable from an authored one.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator on the given provider.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// bankOutput is the model's response shape before assembly.
type bankOutput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Questions   []map[string]any `json:"questions"`
}

// Generate requests a bank for the given parameters and returns it
// fully parsed and validated.
func (g *Generator) Generate(ctx context.Context, p Params) (*bank.QuestionBank, error) {
	if p.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if p.NumQuestions <= 0 {
		p.NumQuestions = DefaultNumQuestions
	}
	if p.MinDifficulty <= 0 {
		p.MinDifficulty = 1
	}
	if p.MaxDifficulty <= 0 || p.MaxDifficulty > 5 {
		p.MaxDifficulty = 5
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(p)},
		},
		Schema:      BankSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out bankOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	doc, err := assemble(p, out)
	if err != nil {
		return nil, err
	}

	b, err := bank.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("generated bank failed validation: %w", err)
	}
	return b, nil
}

// assemble converts the model output into a bank document: assigns the
// bank id and version, gives questions sequential ids, moves difficulty
// and category into metadata, and drops the schema's required-but-empty
// variant fields that do not belong to each question's type.
func assemble(p Params, out bankOutput) ([]byte, error) {
	questions := make([]map[string]any, 0, len(out.Questions))
	for i, q := range out.Questions {
		q["id"] = fmt.Sprintf("q%d", i+1)

		meta := map[string]any{}
		if d, ok := q["difficulty"]; ok {
			meta["difficulty"] = d
		}
		if c, ok := q["category"].(string); ok && c != "" {
			meta["category"] = c
		}
		delete(q, "difficulty")
		delete(q, "category")
		if len(meta) > 0 {
			q["meta"] = meta
		}

		qType, _ := q["type"].(string)
		switch bank.QuestionType(qType) {
		case bank.TypeMultipleChoiceSingle, bank.TypeMultipleChoiceMulti:
			delete(q, "answer")
			delete(q, "acceptable_answers")
			delete(q, "reference_answer")
		case bank.TypeTrueFalse:
			delete(q, "choices")
			delete(q, "correct_indices")
			delete(q, "acceptable_answers")
			delete(q, "reference_answer")
		case bank.TypeFillInBlank:
			delete(q, "choices")
			delete(q, "correct_indices")
			delete(q, "answer")
			delete(q, "reference_answer")
		case bank.TypeShortAnswer:
			delete(q, "choices")
			delete(q, "correct_indices")
			delete(q, "answer")
			delete(q, "acceptable_answers")
		default:
			return nil, fmt.Errorf("question %d: unknown type %q", i+1, qType)
		}

		questions = append(questions, q)
	}

	name := out.Name
	if name == "" {
		name = p.Topic
	}

	doc := map[string]any{
		"id":          slugify(p.Topic),
		"name":        name,
		"version":     "1.0.0",
		"description": out.Description,
		"questions":   questions,
	}
	return json.Marshal(doc)
}

// slugify derives a bank id from the topic: lowercase, runs of
// non-alphanumerics collapsed to single hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
