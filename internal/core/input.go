package core

// Action represents a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionAimUp          // Up arrow - raise the cannon
	ActionAimDown        // Down arrow - lower the cannon
	ActionFire           // Space - fire a cannonball
	ActionPlunger        // X - launch the plunger
	ActionFaster         // + - speed up playback
	ActionSlower         // - - slow down playback
	ActionStep           // . - advance one tick while paused
	ActionRestart        // R - restart the scenario
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P, Escape - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAimUp:
		return "AimUp"
	case ActionAimDown:
		return "AimDown"
	case ActionFire:
		return "Fire"
	case ActionPlunger:
		return "Plunger"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionStep:
		return "Step"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
