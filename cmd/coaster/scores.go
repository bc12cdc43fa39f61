package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <scenario>",
	Short: "Show the best runs of a scenario",
	Long: `Display the best runs recorded for the specified scenario.

Examples:
  coaster scores boss
  coaster scores generated --limit 25
  coaster scores boss --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the scenario")
}

func runScores(_ *cobra.Command, args []string) error {
	id := args[0]

	sc, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("%w, run 'coaster list' to see available scenarios", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(id); err != nil {
			return err
		}
		fmt.Printf("Cleared the runs of %s.\n", sc.Title())
		return nil
	}

	runs, err := store.TopRuns(id, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n", sc.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'coaster run %s' to record the first one!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-20s  %-16s  %s\n", "Rank", "Score", "Combo", "Seed", "Date", "Capture")
	fmt.Printf("  %-4s  %-8s  %-5s  %-20s  %-16s  %s\n", "----", "-----", "-----", "----", "----", "-------")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  x%-4d  %-20d  %-16s  %s\n",
			i+1, r.Score, r.BestCombo, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"), r.Capture)
	}

	stats, err := store.ScenarioStats(id)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.0f  Runs: %d\n", stats.HighScore, stats.AvgScore, stats.Runs)
	}
	return nil
}
