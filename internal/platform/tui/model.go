package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/sim"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

// maxStatusEvents is how many recent sim events the status row keeps.
const maxStatusEvents = 4

// Options configures a viewer.
type Options struct {
	Scenario   string
	Store      *storage.Store // nil disables run history
	Config     config.Config
	ConfigPath string // reloaded on change when non-empty
	Runtime    core.RuntimeConfig
	Logger     *log.Logger
	Autopilot  bool
}

// reloadMsg carries the watched config file after a change.
type reloadMsg config.Reload

// Model is the Bubble Tea model that drives and draws one scenario.
type Model struct {
	opts       Options
	scenario   registry.Scenario
	sim        *sim.Sim
	pilot      *sim.Autopilot
	screen     *core.Screen
	watcher    *config.Watcher
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	events     []string
	notice     string
	runID      int64
	autopilot  bool
	quitting   bool
	runSaved   bool
}

// NewModel builds the scenario and returns a viewer for it.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		// The alternate screen owns the terminal
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}

	m := Model{
		opts:       opts,
		screen:     core.NewScreen(opts.Runtime.ScreenW, viewHeight(opts.Runtime.ScreenH)),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		autopilot:  opts.Autopilot,
	}
	if err := m.build(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// viewHeight leaves the last terminal row for the status line.
func viewHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

func (m *Model) build() error {
	rt := m.opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	s, scenario, err := registry.Build(m.opts.Scenario, sim.Options{
		Config:  m.opts.Config,
		Runtime: rt,
		Logger:  m.opts.Logger.With("scenario", m.opts.Scenario),
	})
	if err != nil {
		return err
	}

	m.sim = s
	m.scenario = scenario
	m.pilot = sim.NewAutopilot(s)
	m.gameState = s.State()
	m.events = nil
	m.runID = 0
	m.runSaved = false
	m.opts.Runtime.Seed = rt.Seed
	return nil
}

// Init starts the tick loop and, when watching, the reload listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.Runtime.TickRate), waitForReload(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case reloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "a":
		m.autopilot = !m.autopilot
		m.notice = fmt.Sprintf("autopilot %s", onOff(m.autopilot))
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
// The camera is in world units, so the run keeps going at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, viewHeight(msg.Height))
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	in := m.inputFrame
	if m.autopilot && !m.gameState.GameOver {
		in = m.pilot.Decide()
		for _, a := range []core.Action{core.ActionPause, core.ActionStep, core.ActionFaster, core.ActionSlower} {
			if m.inputFrame.Has(a) {
				in.Set(a)
			}
		}
	}

	result := m.sim.Tick(in)
	m.gameState = result.State
	m.pushEvents(result.Events)

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// handleReload applies edited tuning by restarting the run.
func (m Model) handleReload(msg reloadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.opts.Logger.Warn("config reload failed", "path", m.opts.ConfigPath, "error", msg.Err)
		m.notice = "config error, keeping previous tuning"
		return m, waitForReload(m.watcher)
	}

	m.opts.Config = msg.Config
	m.restart()
	m.notice = "config reloaded"
	m.opts.Logger.Info("config reloaded", "path", m.opts.ConfigPath)
	return m, waitForReload(m.watcher)
}

func (m *Model) restart() {
	m.finishRun()
	if m.opts.Runtime.Seed != 0 {
		m.opts.Runtime.Seed++
	}
	if err := m.build(); err != nil {
		m.opts.Logger.Error("cannot restart scenario", "scenario", m.opts.Scenario, "error", err)
	}
	m.inputFrame.Clear()
}

// saveRun records the finished run once and starts exporting its best action.
func (m *Model) saveRun() {
	m.runSaved = true
	if m.opts.Store != nil {
		id, err := m.opts.Store.SaveRun(storage.Run{
			Scenario:  m.scenario.ID(),
			Score:     m.gameState.Score,
			BestCombo: m.gameState.Combo,
			Ticks:     m.sim.Ticks(),
			Duration:  m.sim.Context().Time,
			Seed:      m.opts.Runtime.Seed,
		})
		if err != nil {
			m.opts.Logger.Warn("cannot save run", "error", err)
		}
		m.runID = id
	}
	if m.sim.Export() {
		m.notice = "exporting best action"
	}
}

// finishRun waits for pending exports and links them to the saved run.
func (m *Model) finishRun() {
	if m.sim == nil {
		return
	}
	for _, r := range m.sim.Close() {
		if r.Err != nil || m.runID == 0 || m.opts.Store == nil {
			continue
		}
		if err := m.opts.Store.SetCapture(m.runID, r.Path); err != nil {
			m.opts.Logger.Warn("cannot attach capture", "run", m.runID, "error", err)
		}
	}
}

func (m *Model) pushEvents(events []string) {
	m.events = append(m.events, events...)
	if n := len(m.events); n > maxStatusEvents {
		m.events = m.events[n-maxStatusEvents:]
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.sim.Render(m.screen)

	dir, err := config.ExpandHome(filepath.Join("~", ".coaster", "screenshots"))
	if err != nil {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scenario.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.notice = "screenshot failed"
		return
	}
	m.notice = "saved " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.sim.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + renderStatusLine(m.statusText(), m.screen.Width())
}

func (m Model) statusText() string {
	pilot := ""
	if m.autopilot {
		pilot = " [auto]"
	}
	text := fmt.Sprintf(" %s%s  seed %d", m.scenario.Title(), pilot, m.opts.Runtime.Seed)
	if m.notice != "" {
		text += "  | " + m.notice
	}
	for _, ev := range m.events {
		text += "  " + ev
	}
	return text
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// State returns the state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// waitForReload blocks on the watcher and reports the next reload.
func waitForReload(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-w.Reloads()
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

// Run starts the viewer for one scenario.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	if opts.ConfigPath != "" {
		w, err := config.Watch(opts.ConfigPath)
		if err != nil {
			model.opts.Logger.Warn("config changes will not be picked up", "error", err)
		} else {
			defer w.Close()
			model.watcher = w
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
