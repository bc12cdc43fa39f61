package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.coaster/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Config is the tuning every session runs with.
	Config config.Config

	// TickRate is the simulation rate of each session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.coaster/runs.db",
		IdleTimeout: 30 * time.Minute,
		Config:      config.Default(),
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that serves the viewer.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "coaster-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath, err = config.ExpandHome(filepath.Join("~", ".coaster", "host_key"))
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
// A scenario ID passed as the SSH command skips the picker.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(SessionOptions{
		Store:   s.store,
		Config:  s.config.Config,
		Runtime: rt,
		Logger:  s.logger.With("user", sshSession.User()),
	})

	if args := sshSession.Command(); len(args) > 0 {
		if !registry.Exists(args[0]) {
			wish.Fatalln(sshSession, fmt.Sprintf("unknown scenario %q", args[0]))
			return nil, nil
		}
		model = model.start(args[0])
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store   *storage.Store
	Config  config.Config
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

type sessionScreen int

const (
	screenPicker sessionScreen = iota
	screenScoreboard
	screenRun
)

// SessionModel manages the flow picker -> run -> picker, with the
// scoreboard one key away. It is the top-level model of SSH sessions.
type SessionModel struct {
	opts       SessionOptions
	screen     sessionScreen
	picker     PickerModel
	scoreboard ScoreboardModel
	run        *Model
	quitting   bool
}

// NewSessionModel creates a session that starts at the picker.
func NewSessionModel(opts SessionOptions) SessionModel {
	return SessionModel{
		opts:   opts,
		picker: NewPickerModel(opts.Store, opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenRun && m.run != nil {
		return m.run.Init()
	}
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenRun:
		return m.updateRun(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(PickerModel); ok {
		m.picker = picker
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsScoreboard():
		m.screen = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		return m, m.scoreboard.Init()

	case m.picker.Selected() != nil:
		m = m.start(m.picker.Selected().ScenarioID)
		if m.run == nil {
			return m, nil
		}
		return m, m.run.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToPicker()
	}
	return m, cmd
}

func (m SessionModel) updateRun(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.run.Update(msg)
	if run, ok := next.(Model); ok {
		m.run = &run
	}

	if m.run.IsQuitting() {
		m.run = nil
		return m.backToPicker()
	}
	return m, cmd
}

func (m SessionModel) backToPicker() (tea.Model, tea.Cmd) {
	m.screen = screenPicker
	m.picker = NewPickerModel(m.opts.Store, m.opts.Runtime)
	return m, m.picker.Init()
}

// start switches the session to a run of the given scenario.
func (m SessionModel) start(id string) SessionModel {
	run, err := NewModel(Options{
		Scenario: id,
		Store:    m.opts.Store,
		Config:   m.opts.Config,
		Runtime:  m.opts.Runtime,
		Logger:   m.opts.Logger,
	})
	if err != nil {
		m.opts.Logger.Error("cannot start scenario", "scenario", id, "error", err)
		m.picker = NewPickerModel(m.opts.Store, m.opts.Runtime)
		return m
	}
	m.run = &run
	m.screen = screenRun
	return m
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenRun:
		if m.run != nil {
			return m.run.View()
		}
	case screenScoreboard:
		return m.scoreboard.View()
	}
	return m.picker.View()
}
