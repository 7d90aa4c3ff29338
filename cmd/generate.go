package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/bankgen"
	"github.com/abhisek/quizkit/internal/llm"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question bank with an LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		description, _ := cmd.Flags().GetString("description")
		count, _ := cmd.Flags().GetInt("count")
		category, _ := cmd.Flags().GetString("category")
		typeNames, _ := cmd.Flags().GetStringSlice("types")
		out, _ := cmd.Flags().GetString("out")

		if topic == "" {
			return fmt.Errorf("--topic is required")
		}

		types, err := parseTypes(typeNames)
		if err != nil {
			return err
		}

		provider, err := llm.NewProviderFromEnv(cmd.Context())
		if err != nil {
			return fmt.Errorf("no LLM provider configured: %w", err)
		}

		gen := bankgen.New(provider, bankgen.DefaultConfig())
		b, err := gen.Generate(cmd.Context(), bankgen.Params{
			Topic:        topic,
			Description:  description,
			NumQuestions: count,
			Types:        types,
			Category:     category,
		})
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if out == "" || out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s: %s v%s (%d questions)\n", out, b.ID, b.Version, len(b.Questions))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "Subject of the bank (required)")
	generateCmd.Flags().String("description", "", "Extra focus or constraints for the topic")
	generateCmd.Flags().Int("count", 0, "Number of questions (0 = default)")
	generateCmd.Flags().String("category", "", "Category tag for every question")
	generateCmd.Flags().StringSlice("types", nil, "Allowed question types (default: all)")
	generateCmd.Flags().String("out", "", "Output file (default: stdout)")
}

func parseTypes(names []string) ([]bank.QuestionType, error) {
	known := make(map[bank.QuestionType]bool)
	for _, t := range bank.AllQuestionTypes() {
		known[t] = true
	}

	var types []bank.QuestionType
	for _, name := range names {
		t := bank.QuestionType(strings.TrimSpace(name))
		if !known[t] {
			return nil, fmt.Errorf("unknown question type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}
