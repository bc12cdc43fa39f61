package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/platform/tui"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

var (
	flagViewLevel string
	flagAutopilot bool
	flagLogFile   string
)

var viewCmd = &cobra.Command{
	Use:   "view [scenario]",
	Short: "Watch or play a scenario in the terminal",
	Long: `Open the terminal viewer. Without a scenario a picker lists every
registered one; after a run you return to the picker.

Edits to the tuning file are picked up while the viewer runs and restart
the current run with the new values.

Controls:
  Up/Down, W/S - Aim the cannon
  Space        - Fire
  X/Enter      - Launch the plunger
  A            - Toggle the autopilot
  +/-          - Speed up / slow down
  P/Esc        - Pause, . steps while paused
  R            - Restart
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Examples:
  coaster view
  coaster view boss --autopilot
  coaster view --level ./my-level.yaml --log ./coaster.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagViewLevel, "level", "", "Path to a layout YAML to view")
	viewCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Start with the autopilot flying")
	viewCmd.Flags().StringVar(&flagLogFile, "log", "", "Write logs to this file (the viewer owns the terminal)")
}

func runView(_ *cobra.Command, args []string) error {
	id, err := resolveScenario(args, flagViewLevel)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := viewLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	opts := tui.Options{
		Store:      store,
		Config:     cfg,
		ConfigPath: watchPath(),
		Runtime:    runtimeConfig(terminalSize()),
		Logger:     logger,
		Autopilot:  flagAutopilot,
	}

	if id != "" {
		opts.Scenario = id
		return tui.Run(opts)
	}

	for {
		opts.Runtime = runtimeConfig(terminalSize())

		choice, err := tui.RunPicker(store, opts.Runtime)
		if err != nil {
			return err
		}

		switch {
		case choice.Quit:
			return nil

		case choice.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, opts.Runtime.ScreenW, opts.Runtime.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			opts.Scenario = choice.ScenarioID
			if err := tui.Run(opts); err != nil {
				return err
			}
		}
	}
}

// watchPath returns the tuning file to watch, if one exists on disk.
func watchPath() string {
	p := config.Resolve(flagConfig)
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// viewLogger logs to --log when given and discards otherwise.
func viewLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "coaster",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}
