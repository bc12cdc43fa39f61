package core

// RuntimeConfig contains configuration passed to scenarios at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Viewer width in characters
	ScreenH  int   // Viewer height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Dt returns the fixed tick duration in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// SimContext carries level-wide flags into entity updates.
// Entities read it; only the orchestrator writes it.
type SimContext struct {
	Time           float64 // Seconds since the level started
	Camera         Rect    // Visible world area
	BossTransition bool    // The boss enters through its cut-scene
	LevelEnding    bool    // The cart reached the end of the level
	ModuleSerial   int     // Index of the boss module being fought
	BossLevel      bool    // The level hosts a boss encounter
}

// GameState is the summary the viewer shows after each tick.
type GameState struct {
	Score    int  // Current score
	Combo    uint // Highest combo reached so far
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the run is paused
}

// StepResult is returned by Scenario.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []string // Sounds and animations requested during the tick
}
