package cmd

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	adapt "github.com/abhisek/quizkit/internal/adaptive"
	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/grading"
	"github.com/abhisek/quizkit/internal/session"
	"github.com/abhisek/quizkit/internal/skill"
)

var playCmd = &cobra.Command{
	Use:   "play <bank.json>...",
	Short: "Run a quiz session in the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		randomize, _ := cmd.Flags().GetBool("randomize")
		adaptive, _ := cmd.Flags().GetBool("adaptive")
		target, _ := cmd.Flags().GetFloat64("target-accuracy")
		level, _ := cmd.Flags().GetFloat64("level")
		seed, _ := cmd.Flags().GetInt64("seed")

		reg, ids, err := loadBanks(args)
		if err != nil {
			return err
		}

		// Nothing persists between runs, so adaptive selection starts
		// from the --level estimate for every category in the pool.
		levels := skill.Levels{}
		if adaptive {
			for _, id := range ids {
				b, _ := reg.Get(id)
				for i := range b.Questions {
					levels.Get(b.Questions[i].EffectiveCategory()).EstimatedLevel = level
				}
			}
		}

		opts := session.CreateOptions{
			UserID:         "local",
			BankIDs:        ids,
			Randomize:      randomize,
			Limit:          limit,
			Adaptive:       adaptive,
			TargetAccuracy: target,
			SkillLevels:    levels,
		}
		if seed != 0 {
			opts.Rand = rand.New(rand.NewSource(seed))
		}

		s, err := session.Create(reg, opts)
		if err != nil {
			return err
		}
		if len(s.Questions) == 0 {
			return fmt.Errorf("no questions in the selected banks")
		}

		reader := bufio.NewScanner(os.Stdin)
		for i := range s.Questions {
			sq := &s.Questions[i]
			fmt.Printf("\n[%d/%d] %s\n", i+1, len(s.Questions), sq.Question.Text)

			value, skipped := promptAnswer(reader, &sq.Question)
			if skipped {
				continue
			}
			if err := s.UpdateAnswer(sq.Key, value); err != nil {
				return err
			}
		}

		sum, err := s.Grade(grading.DefaultConfig())
		if err != nil {
			return err
		}
		s.Complete()

		printResults(s)
		fmt.Printf("\nScore: %.0f%% (%.1f correct, %.1f incorrect, %d unanswered)\n",
			sum.Score, sum.TotalCorrect, sum.TotalIncorrect, sum.TotalUnanswered)

		printSkillSummary(s, opts.SkillLevels, adapt.DefaultConfig())
		return nil
	},
}

func init() {
	playCmd.Flags().Int("limit", 0, "Maximum number of questions (0 = all)")
	playCmd.Flags().Bool("randomize", true, "Shuffle question order")
	playCmd.Flags().Bool("adaptive", false, "Weight selection toward your skill level")
	playCmd.Flags().Float64("target-accuracy", 0, "Adaptive target accuracy (0 = default 0.7)")
	playCmd.Flags().Float64("level", skill.DefaultLevel, "Starting skill estimate for adaptive selection (1-5)")
	playCmd.Flags().Int64("seed", 0, "Random seed (0 = clock)")
}

// promptAnswer shows the variant-specific input hint and parses one
// line of input. An empty line skips the question.
func promptAnswer(reader *bufio.Scanner, q *bank.Question) (any, bool) {
	switch v := q.Variant.(type) {
	case bank.SingleChoice:
		printChoices(v.Choices)
		fmt.Print("answer (number): ")
		line, ok := readLine(reader)
		if !ok {
			return nil, true
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > len(v.Choices) {
			return line, false // graded as incorrect
		}
		return idx - 1, false
	case bank.MultiChoice:
		printChoices(v.Choices)
		fmt.Print("answers (numbers, comma-separated): ")
		line, ok := readLine(reader)
		if !ok {
			return nil, true
		}
		var indices []int
		for _, part := range strings.Split(line, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return line, false
			}
			indices = append(indices, idx-1)
		}
		return indices, false
	case bank.TrueFalse:
		fmt.Print("answer (t/f): ")
		line, ok := readLine(reader)
		if !ok {
			return nil, true
		}
		switch strings.ToLower(line) {
		case "t", "true", "y", "yes":
			return true, false
		case "f", "false", "n", "no":
			return false, false
		}
		return line, false
	default:
		fmt.Print("answer: ")
		line, ok := readLine(reader)
		if !ok {
			return nil, true
		}
		return line, false
	}
}

func printChoices(choices []string) {
	for i, c := range choices {
		fmt.Printf("  %d. %s\n", i+1, c)
	}
}

// readLine returns the trimmed next line; ok is false on EOF or an
// empty line, which both mean "skip".
func readLine(reader *bufio.Scanner) (string, bool) {
	if !reader.Scan() {
		return "", false
	}
	line := strings.TrimSpace(reader.Text())
	return line, line != ""
}

func printResults(s *session.Session) {
	fmt.Println("\nResults:")
	for i := range s.Questions {
		sq := &s.Questions[i]
		ans, ok := s.Answers[sq.Key]
		if !ok || ans.Result == nil {
			fmt.Printf("  - %s (skipped)\n", sq.Question.Text)
			continue
		}

		mark := "✗"
		if ans.Result.IsCorrect {
			mark = "✓"
		} else if ans.Result.Score > 0 {
			mark = "~"
		}
		fmt.Printf("  %s %s\n", mark, sq.Question.Text)
		if !ans.Result.IsCorrect && sq.Question.Explanation != "" {
			fmt.Printf("      %s\n", sq.Question.Explanation)
		}
	}
}

// printSkillSummary feeds graded answers into the skill tracker and
// shows the per-category estimates for this run.
func printSkillSummary(s *session.Session, levels skill.Levels, cfg adapt.Config) {
	for i := range s.Questions {
		sq := &s.Questions[i]
		ans, ok := s.Answers[sq.Key]
		if !ok || ans.Result == nil {
			continue
		}
		lv := levels.Get(sq.Question.EffectiveCategory())
		lv.Update(float64(sq.Question.EffectiveDifficulty()), ans.Result.Score, cfg.AdjustmentSpeed)
	}

	summary := levels.Summarize()
	if summary.QuestionsAttempted == 0 {
		return
	}
	fmt.Printf("\nEstimated level: %.1f/5 over %d questions\n",
		summary.OverallLevel, summary.QuestionsAttempted)
	for _, c := range summary.Categories {
		fmt.Printf("  %-15s %.1f (confidence %.0f%%)\n",
			c.Category, c.EstimatedLevel, c.Confidence*100)
	}
	if levels.ReadyForAdaptation(cfg.MinQuestionsForAdaptation) {
		fmt.Printf("\nPass --adaptive --level %.1f next time to match question difficulty to this estimate.\n",
			summary.OverallLevel)
	}
}
