package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// propData is the state shared by destructible props: a one-shot latch and
// the countdown to removal once it fired.
type propData struct {
	fired bool
	timer float64
	stage int
}

// fire trips the latch. Only the first call reports true.
func (p *propData) fire(delay float64) bool {
	if p.fired {
		return false
	}
	p.fired = true
	p.timer = delay
	return true
}

// expired consumes dt and reports whether the countdown ran out.
func (p *propData) expired(dt float64) bool {
	if !p.fired {
		return false
	}
	p.timer -= dt
	return p.timer <= 0
}

func prop(e *world.Entity) *propData {
	p, ok := e.Data.(*propData)
	if !ok {
		p = &propData{}
		e.Data = p
	}
	return p
}

// Exploded reports whether a destructible entity already went off.
func Exploded(e *world.Entity) bool {
	switch d := e.Data.(type) {
	case *propData:
		return d.fired
	case *balloonData:
		return d.popped
	case *zeppelinData:
		return d.exploded
	case *wallData:
		return d.exploded
	}
	return false
}

type detonator interface {
	detonate(e *world.Entity)
}

// Detonate explodes e at its current combo if its kind can explode.
// Repeated calls are absorbed by the entity's latch.
func (env *Env) Detonate(e *world.Entity) bool {
	if e.Gone() {
		return false
	}
	b, ok := env.behaviors[e.Kind]
	if !ok {
		return false
	}
	d, ok := b.(detonator)
	if !ok {
		return false
	}
	d.detonate(e)
	return true
}

// releaseFromPlunger lets go of an attracted item. The plunger keeps
// returning empty-handed.
func (env *Env) releaseFromPlunger(item *world.Entity) {
	if !item.Attracted {
		return
	}
	item.Attracted = false
	env.Moves.Detach(item.Handle())
	if p, ok := env.World.Get(item.Owner); ok && p.Kind == world.KindPlunger {
		if pd, ok := p.Data.(*plungerData); ok && pd.attracted.Handle() == item.Handle() {
			pd.attracted.Clear()
		}
	}
}

// chained takes the combo of a destruction caused by other: one more than
// other's running combo. A source without a combo leaves self's combo alone.
func chained(self, other *world.Entity) {
	if other.Combo > 0 {
		self.Combo = combo.Next(other.Combo, false)
	}
}

// detonateBy returns a handler that chains the combo from the other entity
// and detonates self. Props that already went off ignore the event.
func (env *Env) detonateBy() collision.HandlerFunc {
	return func(self, other *world.Entity, _ collision.Contact) {
		if Exploded(self) {
			return
		}
		chained(self, other)
		env.Detonate(self)
	}
}

// shotBy returns a handler for an idle cannonball: self takes the next
// combo, seeding a chain if needed, the ball is spent and self explodes.
func (env *Env) shotBy() collision.HandlerFunc {
	return func(self, ball *world.Entity, _ collision.Contact) {
		if Exploded(self) {
			return
		}
		self.Combo = combo.Next(ball.Combo, true)
		env.Kill(ball)
		env.Detonate(self)
	}
}

// mergeWith returns a handler for two props destroying each other.
func (env *Env) mergeWith() collision.HandlerFunc {
	return func(self, other *world.Entity, _ collision.Contact) {
		if Exploded(self) {
			return
		}
		combo.Merge(&self.Combo, &other.Combo)
		env.Detonate(self)
		env.Detonate(other)
	}
}

func inBlast(e *world.Entity) bool {
	return InExplosion(e)
}
