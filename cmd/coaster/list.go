package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenarios",
	Long:  `Shows the built-in level layouts and the generated track, with the best recorded score of each.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	all := registry.List()

	if len(all) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	// Scores are optional here
	var stats map[string]*storage.Stats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.AllStats()
		store.Close()
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, sc := range all {
		maxIDLen = max(maxIDLen, len(sc.ID))
		maxTitleLen = max(maxTitleLen, len(sc.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----")
	for _, sc := range all {
		best := "-"
		if st, ok := stats[sc.ID]; ok {
			best = fmt.Sprintf("%d (%d runs)", st.HighScore, st.Runs)
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, sc.ID, maxTitleLen, sc.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'coaster view <id>' to watch a scenario.")
}
