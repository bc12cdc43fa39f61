package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type crateBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newCrate(env *Env) *crateBehavior {
	b := &crateBehavior{env: env}
	b.rules = collision.New(
		collision.On("cart", b.hitCart, world.KindCart),
		collision.Rule{
			Name:   "cannonball",
			Match:  collision.All(collision.Is(world.KindCannonball), idle),
			Handle: env.shotBy(),
		},
		collision.Rule{
			Name:   "explosion",
			Match:  collision.All(collision.Is(world.KindExplosion), inBlast),
			Handle: env.detonateBy(),
		},
		collision.On("pass", ignore, world.KindPlunger, world.KindExplosion, world.KindDecoration),
	)
	return b
}

func (b *crateBehavior) Progress(e *world.Entity, dt float64) {
	if prop(e).expired(dt) {
		b.env.Kill(e)
	}
}

func (b *crateBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}

// Running into a crate breaks it without reward.
func (b *crateBehavior) hitCart(crate, cart *world.Entity, _ collision.Contact) {
	if crate.Attracted || prop(crate).fired {
		return
	}
	crate.Combo = combo.Reset()
	b.env.HitCart(cart)
	b.detonate(crate)
}

func (b *crateBehavior) detonate(e *world.Entity) {
	if !prop(e).fire(explodeDuration) {
		return
	}
	env := b.env

	e.State = world.StateExplode
	env.Snapshot()
	e.Transportable = false
	env.releaseFromPlunger(e)
	env.Moves.Detach(e.Handle())

	env.Score(e, env.Cfg.Scoring.Crate)
	env.Planks(e.Pos, env.Cfg.Explosion.Planks, e.Combo)
	env.Sound("crate", e.Pos)
	env.Animate(e, "explode")
}
