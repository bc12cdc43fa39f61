package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type bombBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newBomb(env *Env) *bombBehavior {
	b := &bombBehavior{env: env}
	b.rules = collision.New(
		collision.On("cart", b.hitCart, world.KindCart),
		collision.Rule{
			Name:   "cannonball",
			Match:  collision.All(collision.Is(world.KindCannonball), idle),
			Handle: env.shotBy(),
		},
		collision.On("wall", b.hitWall, world.KindWall),
		collision.On("tar", b.hitTar, world.KindTar),
		collision.On("tnt", env.mergeWith(), world.KindTNT),
		collision.On("plank", env.detonateBy(), world.KindPlank),
		collision.Rule{
			Name:   "explosion",
			Match:  collision.All(collision.Is(world.KindExplosion), inBlast),
			Handle: env.detonateBy(),
		},
		collision.On("pass", ignore, world.KindPlunger, world.KindExplosion, world.KindDecoration),
	)
	return b
}

func (b *bombBehavior) Progress(e *world.Entity, dt float64) {
	if prop(e).expired(dt) {
		b.env.Kill(e)
	}
}

func (b *bombBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}

func (b *bombBehavior) hitCart(bomb, cart *world.Entity, _ collision.Contact) {
	if bomb.Attracted || prop(bomb).fired {
		return
	}
	bomb.Combo = combo.Reset()
	b.env.HitCart(cart)
	b.detonate(bomb)
}

func (b *bombBehavior) hitWall(bomb, wall *world.Entity, _ collision.Contact) {
	if prop(bomb).fired {
		return
	}
	chained(wall, bomb)
	r := bomb.Bounds()
	b.env.hitWall(wall, r.Bottom(), r.Top())
	b.detonate(bomb)
}

func (b *bombBehavior) hitTar(bomb, tar *world.Entity, _ collision.Contact) {
	if prop(bomb).fired {
		return
	}
	chained(tar, bomb)
	b.env.Detonate(tar)
	b.detonate(bomb)
}

func (b *bombBehavior) detonate(e *world.Entity) {
	if !prop(e).fire(0) {
		return
	}
	env := b.env

	e.State = world.StateExplode
	env.Snapshot()
	env.releaseFromPlunger(e)
	env.Moves.Detach(e.Handle())

	env.Score(e, env.Cfg.Scoring.Bomb)
	env.Explode(e.Pos, Blast{Level: 1, Duration: defaultBlast, Combo: e.Combo})
	env.Animate(e, "explode")
}
