package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coaster/internal/capture"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

var (
	flagFrameW int
	flagFrameH int

	flagRecentLimit int
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run and its best action",
	Long: `Print the details of a run. When the run exported its best action
the scene is drawn as a text frame.

Examples:
  coaster recent
  coaster show 12
  coaster show 12 --width 120 --height 30`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the latest runs of every scenario",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	showCmd.Flags().IntVar(&flagFrameW, "width", 80, "Frame width in characters")
	showCmd.Flags().IntVar(&flagFrameH, "height", 24, "Frame height in characters")
	recentCmd.Flags().IntVar(&flagRecentLimit, "limit", 20, "Number of runs to show")
}

func runShow(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found", id)
	}

	fmt.Printf("Run %d - %s\n", run.ID, run.Scenario)
	fmt.Printf("  Score:      %d\n", run.Score)
	fmt.Printf("  Best combo: x%d\n", run.BestCombo)
	fmt.Printf("  Time:       %.1fs (%d ticks)\n", run.Duration, run.Ticks)
	fmt.Printf("  Seed:       %d\n", run.Seed)
	fmt.Printf("  Date:       %s\n", run.CreatedAt.Format("2006-01-02 15:04"))

	if run.Capture == "" {
		return nil
	}
	scene, err := capture.Load(run.Capture)
	if err != nil {
		return fmt.Errorf("load capture: %w", err)
	}
	fmt.Printf("  Capture:    %s (value %d)\n\n", run.Capture, scene.Value)
	fmt.Println(capture.Frame(scene, flagFrameW, flagFrameH))
	return nil
}

func runRecent(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRecentLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-6s  %-16s  %-8s  %-5s  %s\n", "ID", "Scenario", "Score", "Combo", "Date")
	fmt.Printf("  %-6s  %-16s  %-8s  %-5s  %s\n", "--", "--------", "-----", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-6d  %-16s  %-8d  x%-4d  %s\n",
			r.ID, r.Scenario, r.Score, r.BestCombo, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
