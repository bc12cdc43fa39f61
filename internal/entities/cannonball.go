package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type cannonballData struct {
	lifetime float64
}

type cannonballBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newCannonball(env *Env) *cannonballBehavior {
	b := &cannonballBehavior{env: env}
	b.rules = collision.New(
		collision.Rule{
			Name:   "tar",
			Match:  collision.All(collision.Is(world.KindTar), idle),
			Handle: b.hitTar,
		},
		collision.On("pass", ignore,
			world.KindCart, world.KindPlunger, world.KindCannonball, world.KindPlank,
			world.KindExplosion, world.KindDecoration, world.KindBonus, world.KindBoss),
	)
	return b
}

func (b *cannonballBehavior) Progress(e *world.Entity, dt float64) {
	d, ok := e.Data.(*cannonballData)
	if ok && d.lifetime > 0 && e.Age > d.lifetime {
		b.env.Kill(e)
	}
}

func (b *cannonballBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}

// A cannonball landing in tar chains into it: the tar scores one above the
// ball and the ball carries on one above the tar, slowed down.
func (b *cannonballBehavior) hitTar(ball, tar *world.Entity, _ collision.Contact) {
	tar.Combo = combo.Next(ball.Combo, true)
	b.env.Score(tar, b.env.Cfg.Scoring.Tar)
	b.env.Kill(tar)

	ball.Combo = combo.Next(tar.Combo, false)
	ball.Vel = ball.Vel.Scale(1.0 / 3)
}

func idle(e *world.Entity) bool {
	return e.State == world.StateIdle
}

func ignore(*world.Entity, *world.Entity, collision.Contact) {}
