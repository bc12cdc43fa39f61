package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coaster/internal/platform/tui"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the best runs of every scenario",
	Long: `Open the interactive scoreboard. Tab and the arrow keys switch
scenarios, Esc or Q leaves.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := terminalSize()
	_, err = tui.RunScoreboard(store, width, height)
	return err
}
