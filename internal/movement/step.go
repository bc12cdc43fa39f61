// Package movement binds entity positions to scripted trajectories.
//
// An attached entity is moved by its trajectory instead of the physics
// integration. Trajectories are built from steps: tracking a reference,
// going to a point, orbiting, and joining several steps in sequence.
package movement

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/tween"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// ErrReferenceLost is returned by a step whose reference entity left the world.
var ErrReferenceLost = errors.New("movement: reference entity left the world")

// Anchor is a point in the world, either fixed or relative to an entity.
type Anchor struct {
	Ref   world.Handle // Zero for a fixed point
	Mark  string       // Optional part name on Ref
	Point core.Vec     // Absolute point, or offset from Ref
}

// At anchors to a fixed world point.
func At(p core.Vec) Anchor {
	return Anchor{Point: p}
}

// On anchors to an entity center plus an offset.
func On(ref world.Handle, offset core.Vec) Anchor {
	return Anchor{Ref: ref, Point: offset}
}

// OnMark anchors to a named part of an entity.
func OnMark(ref world.Handle, mark string) Anchor {
	return Anchor{Ref: ref, Mark: mark}
}

// Resolve returns the anchor position.
func (a Anchor) Resolve(l world.Lookup) (core.Vec, error) {
	if a.Ref.IsZero() {
		return a.Point, nil
	}
	ref, ok := l.Get(a.Ref)
	if !ok {
		return core.Vec{}, ErrReferenceLost
	}
	return ref.Mark(a.Mark).Add(a.Point), nil
}

// Step is one stage of a trajectory.
type Step interface {
	// Advance moves e by dt and reports whether the step is complete.
	Advance(l world.Lookup, e *world.Entity, dt float64) (done bool, err error)
	// Reset rewinds the step so it can be played again.
	Reset()
}

// Track keeps the entity at a fixed distance from a reference.
// A zero Duration tracks until the movement is detached.
type Track struct {
	Ref      world.Handle
	Offset   core.Vec
	Duration float64

	elapsed float64
}

// Follow tracks ref at the distance e has from it now.
func Follow(e, ref *world.Entity) *Track {
	return &Track{Ref: ref.Handle(), Offset: e.Pos.Sub(ref.Pos)}
}

// Advance implements Step.
func (t *Track) Advance(l world.Lookup, e *world.Entity, dt float64) (bool, error) {
	ref, ok := l.Get(t.Ref)
	if !ok {
		return false, ErrReferenceLost
	}

	e.Pos = ref.Pos.Add(t.Offset)
	t.elapsed += dt
	return t.Duration > 0 && t.elapsed >= t.Duration, nil
}

// Reset implements Step.
func (t *Track) Reset() {
	t.elapsed = 0
}

// Goto moves the entity from its position at the first tick to a target.
type Goto struct {
	To       Anchor
	Duration float64
	Ease     tween.Ease

	from    core.Vec
	elapsed float64
	started bool
}

// Advance implements Step.
func (g *Goto) Advance(l world.Lookup, e *world.Entity, dt float64) (bool, error) {
	to, err := g.To.Resolve(l)
	if err != nil {
		return false, err
	}
	if !g.started {
		g.started = true
		g.from = e.Pos
	}

	g.elapsed += dt
	ratio := 1.0
	if g.Duration > 0 {
		ratio = core.ClampF(g.elapsed/g.Duration, 0, 1)
	}
	ease := g.Ease
	if ease == nil {
		ease = tween.Linear
	}

	e.Pos = core.Lerp(g.from, to, ease(ratio))
	return ratio >= 1, nil
}

// Reset implements Step.
func (g *Goto) Reset() {
	g.elapsed = 0
	g.started = false
}

// Orbit turns the entity around a center.
// A zero Duration orbits until the movement is detached.
type Orbit struct {
	Center   Anchor
	Radius   float64
	Period   float64 // Seconds per turn
	Phase    float64 // Starting angle in radians
	Duration float64

	elapsed float64
}

// Advance implements Step.
func (o *Orbit) Advance(l world.Lookup, e *world.Entity, dt float64) (bool, error) {
	c, err := o.Center.Resolve(l)
	if err != nil {
		return false, err
	}

	o.elapsed += dt
	theta := o.Phase
	if o.Period > 0 {
		theta += 2 * math.Pi * o.elapsed / o.Period
	}
	e.Pos = c.Add(core.FromAngle(theta).Scale(o.Radius))
	return o.Duration > 0 && o.elapsed >= o.Duration, nil
}

// Reset implements Step.
func (o *Orbit) Reset() {
	o.elapsed = 0
}

// Join plays its steps strictly in order.
type Join struct {
	Steps []Step

	current int
}

// Sequence builds a Join.
func Sequence(steps ...Step) *Join {
	return &Join{Steps: steps}
}

// Advance implements Step.
func (j *Join) Advance(l world.Lookup, e *world.Entity, dt float64) (bool, error) {
	if j.current >= len(j.Steps) {
		return true, nil
	}

	done, err := j.Steps[j.current].Advance(l, e, dt)
	if err != nil {
		return false, err
	}
	if done {
		j.current++
	}
	return j.current >= len(j.Steps), nil
}

// Reset implements Step.
func (j *Join) Reset() {
	j.current = 0
	for _, s := range j.Steps {
		s.Reset()
	}
}

// Current returns the index of the running step.
func (j *Join) Current() int {
	return j.current
}
