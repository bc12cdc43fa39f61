package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Delays between the three blasts of a TNT box.
const tntStage = 0.1

type tntBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newTNT(env *Env) *tntBehavior {
	b := &tntBehavior{env: env}
	b.rules = collision.New(
		collision.On("cart", b.hitCart, world.KindCart),
		collision.Rule{
			Name:   "cannonball",
			Match:  collision.All(collision.Is(world.KindCannonball), idle),
			Handle: env.shotBy(),
		},
		collision.On("bomb", env.mergeWith(), world.KindBomb),
		collision.Rule{
			Name:   "obstacle",
			Match:  collision.All(collision.Is(world.KindObstacle), b.fastEnough),
			Handle: env.mergeWith(),
		},
		collision.On("plank", env.detonateBy(), world.KindPlank),
		collision.Rule{
			Name:   "explosion",
			Match:  collision.All(collision.Is(world.KindExplosion), inBlast),
			Handle: env.detonateBy(),
		},
		collision.On("zeppelin", env.mergeWith(), world.KindZeppelin),
		collision.On("pass", ignore, world.KindPlunger, world.KindExplosion, world.KindDecoration),
	)
	return b
}

func (b *tntBehavior) fastEnough(other *world.Entity) bool {
	return other.Vel.Len() > b.env.Cfg.Explosion.ObstacleKill
}

func (b *tntBehavior) Progress(e *world.Entity, dt float64) {
	p := prop(e)
	if !p.expired(dt) {
		return
	}

	env := b.env
	switch p.stage {
	case 0:
		env.Explode(e.Pos, Blast{Level: 5, Planks: env.Cfg.Explosion.Planks, Combo: e.Combo})
		p.stage, p.timer = 1, tntStage
	case 1:
		env.Explode(e.Pos, Blast{Level: 6, Combo: e.Combo})
		p.stage = 2
		env.Kill(e)
	}
}

func (b *tntBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}

func (b *tntBehavior) hitCart(tnt, _ *world.Entity, _ collision.Contact) {
	if tnt.Attracted || prop(tnt).fired {
		return
	}
	tnt.Combo = combo.Reset()
	b.detonate(tnt)
}

// A TNT box goes off in three growing blasts.
func (b *tntBehavior) detonate(e *world.Entity) {
	if !prop(e).fire(tntStage) {
		return
	}
	env := b.env

	e.State = world.StateExplode
	env.Snapshot()
	e.Transportable = false
	env.releaseFromPlunger(e)
	env.Moves.Detach(e.Handle())

	env.Score(e, env.Cfg.Scoring.TNT)
	env.Explode(e.Pos, Blast{Level: 3, Combo: e.Combo})
	env.Animate(e, "explode")
}
