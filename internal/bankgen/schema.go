package bankgen

import "github.com/abhisek/quizkit/internal/llm"

// BankSchema is the JSON schema for generated question banks. Every
// field is required so strict structured-output modes accept it; fields
// that do not apply to a question's type are emitted empty and the
// assembler drops them before validation.
var BankSchema = &llm.Schema{
	Name:        "question-bank",
	Description: "A quiz question bank with a list of questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Human-readable bank title",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One or two sentences on what the bank covers",
			},
			"questions": map[string]any{
				"type":  "array",
				"items": questionSchema,
			},
		},
		"required":             []any{"name", "description", "questions"},
		"additionalProperties": false,
	},
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": []any{
				"multiple_choice_single",
				"multiple_choice_multi",
				"true_false",
				"fill_in_blank",
				"short_answer",
			},
			"description": "The question variant",
		},
		"text": map[string]any{
			"type":        "string",
			"description": "The question prompt shown to the user",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Why the correct answer is correct",
		},
		"difficulty": map[string]any{
			"type":        "integer",
			"minimum":     1,
			"maximum":     5,
			"description": "Difficulty from 1 (easy) to 5 (hard)",
		},
		"category": map[string]any{
			"type":        "string",
			"description": "Short lowercase topic tag, e.g. \"geography\"",
		},
		"choices": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Answer options for multiple-choice variants; empty otherwise",
		},
		"correct_indices": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "integer"},
			"description": "Zero-based indices of correct choices; exactly one for multiple_choice_single",
		},
		"answer": map[string]any{
			"type":        "boolean",
			"description": "The correct value for true_false; false otherwise",
		},
		"acceptable_answers": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Accepted texts for fill_in_blank; empty otherwise",
		},
		"reference_answer": map[string]any{
			"type":        "string",
			"description": "The model answer for short_answer; empty otherwise",
		},
	},
	"required": []any{
		"type", "text", "explanation", "difficulty", "category",
		"choices", "correct_indices", "answer", "acceptable_answers",
		"reference_answer",
	},
	"additionalProperties": false,
}
