// Package world stores simulation entities in an arena addressed by
// generation-checked handles.
//
// A handle stays valid only while the entity it was issued for is alive.
// Once the entity is destroyed the handle reads as empty, even after its
// slot is reused by a newer entity.
package world

import "fmt"

// Handle addresses an entity. The zero value is empty.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the handle was never set.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// String returns a compact debug representation.
func (h Handle) String() string {
	if h.IsZero() {
		return "#-"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

// Lookup resolves handles to live entities.
type Lookup interface {
	Get(h Handle) (*Entity, bool)
}

// Factory creates and removes entities.
type Factory interface {
	Lookup
	Spawn(spec Spec) Handle
	Destroy(h Handle) bool
}

type slot struct {
	gen uint32
	ent *Entity
}

// World owns every entity of a running level.
type World struct {
	slots []slot
	free  []uint32
	dying []uint32
	live  int
}

// New creates an empty world.
func New() *World {
	return &World{}
}

// Spawn creates an entity and returns its handle.
func (w *World) Spawn(spec Spec) Handle {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, slot{gen: 1})
	}

	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}

	h := Handle{index: idx, gen: w.slots[idx].gen}
	w.slots[idx].ent = &Entity{
		handle:        h,
		Kind:          spec.Kind,
		Name:          spec.Name,
		Pos:           spec.Pos,
		Size:          spec.Size,
		Vel:           spec.Vel,
		Angle:         spec.Angle,
		Mass:          mass,
		Static:        spec.Static,
		Weightless:    spec.Weightless,
		Combo:         spec.Combo,
		Transportable: spec.Transportable,
		State:         spec.State,
		Owner:         spec.Owner,
		Parts:         spec.Parts,
		Data:          spec.Data,
	}
	w.live++
	return h
}

// Get returns the entity addressed by h if it is still in the simulation.
func (w *World) Get(h Handle) (*Entity, bool) {
	if h.IsZero() || int(h.index) >= len(w.slots) {
		return nil, false
	}
	s := w.slots[h.index]
	if s.gen != h.gen || s.ent == nil || s.ent.gone {
		return nil, false
	}
	return s.ent, true
}

// Alive reports whether h still addresses an entity.
func (w *World) Alive(h Handle) bool {
	_, ok := w.Get(h)
	return ok
}

// Destroy removes the entity from the simulation. Handles to it read as
// empty immediately; the slot is recycled by the next Sweep.
// Destroying an absent entity is a no-op.
func (w *World) Destroy(h Handle) bool {
	e, ok := w.Get(h)
	if !ok {
		return false
	}
	e.gone = true
	w.dying = append(w.dying, h.index)
	w.live--
	return true
}

// Sweep recycles the slots of destroyed entities and returns them.
func (w *World) Sweep() []*Entity {
	if len(w.dying) == 0 {
		return nil
	}
	removed := make([]*Entity, 0, len(w.dying))
	for _, idx := range w.dying {
		s := &w.slots[idx]
		removed = append(removed, s.ent)
		s.ent = nil
		s.gen++
		w.free = append(w.free, idx)
	}
	w.dying = w.dying[:0]
	return removed
}

// Handles returns the live handles in slot order.
// The slice is a snapshot and stays valid while entities come and go.
func (w *World) Handles() []Handle {
	out := make([]Handle, 0, w.live)
	for i, s := range w.slots {
		if s.ent != nil && !s.ent.gone {
			out = append(out, Handle{index: uint32(i), gen: s.gen})
		}
	}
	return out
}

// Each calls fn for every entity alive when Each started, skipping those
// destroyed along the way.
func (w *World) Each(fn func(e *Entity)) {
	for _, h := range w.Handles() {
		if e, ok := w.Get(h); ok {
			fn(e)
		}
	}
}

// Find returns the first live entity of the given kind.
func (w *World) Find(k Kind) (*Entity, bool) {
	for _, s := range w.slots {
		if s.ent != nil && !s.ent.gone && s.ent.Kind == k {
			return s.ent, true
		}
	}
	return nil, false
}

// Count returns the number of live entities of the given kind.
func (w *World) Count(k Kind) int {
	n := 0
	for _, s := range w.slots {
		if s.ent != nil && !s.ent.gone && s.ent.Kind == k {
			n++
		}
	}
	return n
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}
