// coaster runs and watches roller-coaster shooting scenarios in the terminal.
//
// Usage:
//
//	coaster list                 - List available scenarios
//	coaster run <scenario>       - Run a scenario headless with the autopilot
//	coaster view [scenario]      - Watch or play a scenario in the terminal
//	coaster scores <scenario>    - Show the best runs of a scenario
//	coaster board                - Browse every scenario's best runs
//	coaster recent               - List the latest runs
//	coaster show <run-id>        - Show a run and draw its best action
//	coaster serve                - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--db <path>      - Set database path (default: ~/.coaster/runs.db)
//	--config <path>  - Set tuning file (default: ~/.coaster/configs/coaster.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/scenarios"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coaster",
	Short: "TUI Coaster - ride, shoot and grab through scripted levels",
	Long: `TUI Coaster simulates a cart riding through a level while its cannon
and plunger knock down props, pop balloons and bring down the boss.

Available commands:
  list     - Show all available scenarios
  run      - Run a scenario headless with the autopilot
  view     - Watch or play a scenario in the terminal
  scores   - View the best runs of a scenario
  board    - Browse the scoreboard
  recent   - List the latest runs
  show     - Show a run and its best action
  serve    - Start SSH server for remote viewing

Examples:
  coaster list
  coaster run boss --seed 7
  coaster view crate-chain
  coaster view --level ./my-level.yaml
  coaster serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.coaster/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(serveCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "coaster",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig reads the tuning selected by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runtimeConfig(width, height int) core.RuntimeConfig {
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	return rt
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// resolveScenario picks the scenario named by args, or the layout file
// given with --level.
func resolveScenario(args []string, level string) (string, error) {
	if level != "" {
		id, err := scenarios.RegisterFile(level)
		if err != nil {
			return "", err
		}
		return id, nil
	}
	if len(args) == 0 {
		return "", nil
	}
	if !registry.Exists(args[0]) {
		return "", fmt.Errorf("unknown scenario %q, run 'coaster list' to see available scenarios", args[0])
	}
	return args[0], nil
}
