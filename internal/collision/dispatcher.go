// Package collision resolves reported overlaps through ordered rule lists.
//
// Each entity kind owns a Dispatcher. When the broad-phase reports that an
// entity touches another one, its rules are tried from the top and the
// first rule whose predicate accepts the other entity handles the event.
// Later rules are never evaluated for the same event. When no rule
// matches, the fallback applies plain physical resolution.
package collision

import (
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Contact describes an overlap from the point of view of one entity.
type Contact struct {
	Side      core.Side // Zone of self touched by the other entity
	Normal    core.Vec  // Unit vector pointing from self toward other
	Point     core.Vec  // Center of the overlap
	Part      string    // Part of self that was touched, if any
	OtherPart string    // Part of other that was touched, if any
}

// Between builds the contact seen by self when touching other.
func Between(self, other *world.Entity, part, otherPart string) Contact {
	sb := self.Bounds()
	if part != "" {
		if r, ok := self.PartBounds(part); ok {
			sb = r
		}
	}
	ob := other.Bounds()
	if otherPart != "" {
		if r, ok := other.PartBounds(otherPart); ok {
			ob = r
		}
	}

	point := ob.Center()
	if in := sb.Intersection(ob); in.W > 0 && in.H > 0 {
		point = in.Center()
	}

	return Contact{
		Side:      core.ClassifySide(sb, ob),
		Normal:    ob.Center().Sub(sb.Center()).Normalize(),
		Point:     point,
		Part:      part,
		OtherPart: otherPart,
	}
}

// Predicate selects the other entity of a rule.
type Predicate func(other *world.Entity) bool

// HandlerFunc applies the effect of a matched rule.
type HandlerFunc func(self, other *world.Entity, c Contact)

// Rule pairs a predicate with its handler.
type Rule struct {
	Name   string
	Match  Predicate
	Handle HandlerFunc
}

// On builds a rule matching the given kinds.
func On(name string, h HandlerFunc, kinds ...world.Kind) Rule {
	return Rule{Name: name, Match: Is(kinds...), Handle: h}
}

// Dispatcher runs the rules of one entity kind.
type Dispatcher struct {
	rules    []Rule
	fallback HandlerFunc
}

// New creates a dispatcher with Bounce as fallback.
func New(rules ...Rule) *Dispatcher {
	return &Dispatcher{rules: rules, fallback: Bounce}
}

// WithFallback replaces the fallback. A nil fallback ignores unmatched events.
func (d *Dispatcher) WithFallback(fn HandlerFunc) *Dispatcher {
	d.fallback = fn
	return d
}

// Rules returns the rule names in evaluation order.
func (d *Dispatcher) Rules() []string {
	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.Name
	}
	return names
}

// Dispatch resolves one event. It returns the matched rule name, or false
// when the fallback handled it.
func (d *Dispatcher) Dispatch(self, other *world.Entity, c Contact) (string, bool) {
	for _, r := range d.rules {
		if r.Match != nil && r.Match(other) {
			r.Handle(self, other, c)
			return r.Name, true
		}
	}
	if d.fallback != nil {
		d.fallback(self, other, c)
	}
	return "", false
}

// Is matches entities of any of the given kinds.
func Is(kinds ...world.Kind) Predicate {
	return func(other *world.Entity) bool {
		for _, k := range kinds {
			if other.Kind == k {
				return true
			}
		}
		return false
	}
}

// All matches when every predicate does.
func All(preds ...Predicate) Predicate {
	return func(other *world.Entity) bool {
		for _, p := range preds {
			if !p(other) {
				return false
			}
		}
		return true
	}
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(other *world.Entity) bool {
		return !p(other)
	}
}

// Bounce reflects a free entity's velocity away from the other entity.
// Static entities and entities already moving away are left alone.
func Bounce(self, other *world.Entity, c Contact) {
	if self.Static {
		return
	}
	n := c.Normal
	if n == (core.Vec{}) {
		return
	}
	approach := self.Vel.Dot(n)
	if approach <= 0 {
		return
	}
	self.Vel = self.Vel.Sub(n.Scale(2 * approach))
}

// Deflect sends self away along dir at its current speed.
func Deflect(self *world.Entity, dir core.Vec) {
	speed := self.Vel.Len()
	self.Vel = dir.Normalize().Scale(speed)
}
