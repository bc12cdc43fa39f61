package world

import "github.com/vovakirdan/tui-coaster/internal/core"

// Part is a named sub-box of an entity, relative to its center.
// The broad-phase reports which part of an entity was touched. A part with
// a zero Size is a mark: a named point with no collision shape.
type Part struct {
	Name   string
	Offset core.Vec
	Size   core.Vec
}

// Entity is one simulation object. Kind-specific state lives in Data and
// belongs to the behavior registered for Kind.
type Entity struct {
	handle Handle
	gone   bool

	Kind Kind
	Name string

	Pos   core.Vec
	Size  core.Vec
	Vel   core.Vec
	Angle float64
	Mass  float64

	// Static entities never move; Weightless ones ignore gravity.
	Static     bool
	Weightless bool

	Combo         uint
	Attracted     bool
	Taken         bool
	Transportable bool
	State         State
	Owner         Handle

	Parts []Part
	Age   float64
	Data  any
}

// Handle returns the handle addressing this entity.
func (e *Entity) Handle() Handle {
	return e.handle
}

// Gone reports whether the entity left the simulation.
func (e *Entity) Gone() bool {
	return e.gone
}

// Zoned reports whether the entity has sized parts. Zoned entities collide
// through their parts only.
func (e *Entity) Zoned() bool {
	for _, p := range e.Parts {
		if p.Size.X > 0 && p.Size.Y > 0 {
			return true
		}
	}
	return false
}

// Bounds returns the entity box in world coordinates.
func (e *Entity) Bounds() core.Rect {
	return core.RectAround(e.Pos, e.Size)
}

// PartBounds returns the world box of a named part.
func (e *Entity) PartBounds(name string) (core.Rect, bool) {
	for _, p := range e.Parts {
		if p.Name == name {
			return core.RectAround(e.Pos.Add(p.Offset), p.Size), true
		}
	}
	return core.Rect{}, false
}

// Mark returns the world position of a named part, or the center.
func (e *Entity) Mark(name string) core.Vec {
	for _, p := range e.Parts {
		if p.Name == name {
			return e.Pos.Add(p.Offset)
		}
	}
	return e.Pos
}

// Spec describes an entity to spawn.
type Spec struct {
	Kind          Kind
	Name          string
	Pos           core.Vec
	Size          core.Vec
	Vel           core.Vec
	Angle         float64
	Mass          float64
	Static        bool
	Weightless    bool
	Combo         uint
	Transportable bool
	State         State
	Owner         Handle
	Parts         []Part
	Data          any
}
