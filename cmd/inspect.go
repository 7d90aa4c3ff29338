package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizkit/internal/adaptive"
	"github.com/abhisek/quizkit/internal/bank"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <bank.json>...",
	Short: "Summarize question banks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, ids, err := loadBanks(args)
		if err != nil {
			return err
		}

		for _, id := range ids {
			b, _ := reg.Get(id)
			fmt.Printf("%s (%s v%s)\n", b.Name, b.ID, b.Version)
			if b.Description != "" {
				fmt.Printf("  %s\n", b.Description)
			}
			fmt.Printf("  questions: %d\n", len(b.Questions))

			byType := make(map[bank.QuestionType]int)
			for i := range b.Questions {
				byType[b.Questions[i].Type]++
			}
			for _, t := range bank.AllQuestionTypes() {
				if n := byType[t]; n > 0 {
					fmt.Printf("    %-22s %d\n", t, n)
				}
			}

			hist := adaptive.DifficultyHistogram(b.Questions)
			fmt.Printf("  mean difficulty: %.1f\n", adaptive.MeanDifficulty(b.Questions))
			for d := 1; d <= 5; d++ {
				if n := hist[d]; n > 0 {
					fmt.Printf("    difficulty %d: %d\n", d, n)
				}
			}

			readiness := adaptive.CheckReadiness(b.Questions)
			if readiness.Ready {
				fmt.Printf("  adaptive-ready: yes (%d/%d with difficulty, %d with category)\n",
					readiness.WithDifficulty, readiness.Total, readiness.WithCategory)
			} else {
				fmt.Println("  adaptive-ready: no (no difficulty metadata)")
			}
			fmt.Println()
		}
		return nil
	},
}
