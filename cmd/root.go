package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizkit/internal/bank"
)

var rootCmd = &cobra.Command{
	Use:   "quizkit",
	Short: "Self-hosted quiz toolkit",
	Long:  "Quizkit — load, validate, generate and play JSON question banks from the terminal.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadBanks parses each file and registers it, returning the registry
// and the bank ids in argument order.
func loadBanks(paths []string) (*bank.Registry, []string, error) {
	reg := bank.NewRegistry()
	var ids []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		b, err := bank.Parse(data)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := reg.Add(b); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		ids = append(ids, b.ID)
	}
	return reg, ids, nil
}
