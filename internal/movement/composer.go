package movement

import (
	"errors"

	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Movement is a trajectory attached to one entity.
type Movement struct {
	Root Step

	// AutoRemove detaches the movement when Root completes. Without it
	// the entity stays frozen at the final position until superseded.
	AutoRemove bool

	// OnFinished runs once when Root completes, after any auto-removal,
	// so it may attach a follow-up movement.
	OnFinished func()
}

type binding struct {
	h        world.Handle
	m        Movement
	finished bool
	removed  bool
}

// Composer owns the scripted movements of a world.
type Composer struct {
	bindings []*binding
	index    map[world.Handle]*binding
}

// NewComposer creates an empty composer.
func NewComposer() *Composer {
	return &Composer{index: make(map[world.Handle]*binding)}
}

// Attach binds h to m, replacing any movement it had.
func (c *Composer) Attach(h world.Handle, m Movement) {
	if old, ok := c.index[h]; ok {
		old.removed = true
	}
	b := &binding{h: h, m: m}
	c.index[h] = b
	c.bindings = append(c.bindings, b)
}

// Detach returns h to free movement. It reports whether h was attached.
func (c *Composer) Detach(h world.Handle) bool {
	b, ok := c.index[h]
	if !ok {
		return false
	}
	b.removed = true
	delete(c.index, h)
	return true
}

// Attached reports whether h is driven by a movement.
func (c *Composer) Attached(h world.Handle) bool {
	_, ok := c.index[h]
	return ok
}

// Len returns the number of attached entities.
func (c *Composer) Len() int {
	return len(c.index)
}

// Update advances every movement by dt. Movements of entities that left
// the world, or whose reference did, are detached.
func (c *Composer) Update(l world.Lookup, dt float64) {
	n := len(c.bindings)
	for i := 0; i < n; i++ {
		b := c.bindings[i]
		if b.removed || b.finished {
			continue
		}

		e, ok := l.Get(b.h)
		if !ok {
			c.Detach(b.h)
			continue
		}

		prev := e.Pos
		done, err := b.m.Root.Advance(l, e, dt)
		if err != nil {
			if errors.Is(err, ErrReferenceLost) {
				c.Detach(b.h)
			}
			continue
		}
		if dt > 0 {
			e.Vel = e.Pos.Sub(prev).Scale(1 / dt)
		}
		if !done {
			continue
		}

		b.finished = true
		if b.m.AutoRemove {
			c.Detach(b.h)
		}
		if b.m.OnFinished != nil {
			b.m.OnFinished()
		}
	}

	c.compact()
}

func (c *Composer) compact() {
	kept := c.bindings[:0]
	for _, b := range c.bindings {
		if !b.removed {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(c.bindings); i++ {
		c.bindings[i] = nil
	}
	c.bindings = kept
}
