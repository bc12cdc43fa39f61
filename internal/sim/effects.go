package sim

import (
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// effects records the sounds and animations requested during a tick.
// Viewers show them; there is no audio.
type effects struct {
	events []string
}

func (f *effects) Sound(name string, _ core.Vec) {
	f.events = append(f.events, "sound:"+name)
}

func (f *effects) Animation(_ world.Handle, name string) {
	f.events = append(f.events, "anim:"+name)
}

func (f *effects) drain() []string {
	out := f.events
	f.events = nil
	return out
}
