package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/sim"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

var (
	flagLevel    string
	flagDuration float64
	flagCapture  bool
	flagNoSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a scenario headless",
	Long: `Run a scenario without a terminal UI. The autopilot aims and fires
until the level ends or the duration runs out, then the run is saved.

With --capture the best action of the run is written as a YAML scene
next to a text frame under the capture directory.

Examples:
  coaster run boss
  coaster run generated --seed 42 --duration 120
  coaster run --level ./my-level.yaml --capture`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagLevel, "level", "", "Path to a layout YAML to run instead of a built-in scenario")
	runCmd.Flags().Float64Var(&flagDuration, "duration", 0, "Seconds of simulated time (0 = sim.duration from the config)")
	runCmd.Flags().BoolVar(&flagCapture, "capture", false, "Export the best action of the run")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runRun(_ *cobra.Command, args []string) error {
	logger := newLogger()

	id, err := resolveScenario(args, flagLevel)
	if err != nil {
		return err
	}
	if id == "" {
		return errors.New("no scenario given, pass an id or --level")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagCapture {
		cfg.Capture.Enabled = true
	}

	rt := runtimeConfig(80, 24)
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	s, sc, err := registry.Build(id, sim.Options{
		Config:  cfg,
		Runtime: rt,
		Logger:  logger.With("scenario", id),
	})
	if err != nil {
		return err
	}

	duration := flagDuration
	if duration <= 0 {
		duration = cfg.Sim.Duration
	}
	steps := int(duration * float64(rt.TickRate))

	pilot := sim.NewAutopilot(s)
	for i := 0; i < steps && !s.Over(); i++ {
		s.Tick(pilot.Decide())
	}
	s.End()
	state := s.State()

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
		} else {
			defer store.Close()
		}
	}

	var runID int64
	if store != nil {
		runID, err = store.SaveRun(storage.Run{
			Scenario:  sc.ID(),
			Score:     state.Score,
			BestCombo: state.Combo,
			Ticks:     s.Ticks(),
			Duration:  s.Context().Time,
			Seed:      rt.Seed,
		})
		if err != nil {
			logger.Warn("could not save run", "error", err)
		}
	}

	s.Export()
	var captures []string
	for _, r := range s.Close() {
		if r.Err != nil {
			continue
		}
		captures = append(captures, r.Path)
		if runID == 0 {
			continue
		}
		if err := store.SetCapture(runID, r.Path); err != nil {
			logger.Warn("could not attach capture", "run", runID, "error", err)
		}
	}

	fmt.Printf("%s (seed %d)\n", sc.Title(), rt.Seed)
	fmt.Printf("  Score:      %d\n", state.Score)
	fmt.Printf("  Best combo: x%d\n", state.Combo)
	fmt.Printf("  Time:       %.1fs\n", s.Context().Time)
	for _, p := range captures {
		fmt.Printf("  Capture:    %s\n", p)
	}
	return nil
}
