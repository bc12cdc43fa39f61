package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type tarBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newTar(env *Env) *tarBehavior {
	b := &tarBehavior{env: env}
	b.rules = collision.New(
		collision.On("plank", env.detonateBy(), world.KindPlank),
		collision.On("cart", b.spatter, world.KindCart),
	).WithFallback(nil)
	return b
}

func (b *tarBehavior) Progress(e *world.Entity, dt float64) {
	if prop(e).expired(dt) {
		b.env.Kill(e)
	}
}

func (b *tarBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}

func (b *tarBehavior) spatter(tar, cart *world.Entity, _ collision.Contact) {
	if tar.State != world.StateIdle {
		return
	}
	tar.State = world.StateSpatter
	b.env.Sound("spatter", cart.Pos)
	b.env.Animate(tar, "spatter")
}

func (b *tarBehavior) detonate(e *world.Entity) {
	if !prop(e).fire(explodeDuration) {
		return
	}
	e.State = world.StateExplode
	b.env.Score(e, b.env.Cfg.Scoring.Tar)
	b.env.Sound("tar", e.Pos)
	b.env.Animate(e, "explode")
}
