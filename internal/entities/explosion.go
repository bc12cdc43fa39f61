package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type explosionBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newExplosion(env *Env) *explosionBehavior {
	b := &explosionBehavior{env: env}
	b.rules = collision.New(
		collision.On("zeppelin", b.hitZeppelin, world.KindZeppelin),
	).WithFallback(nil)
	return b
}

// Explosions stay visible for a while after their blast window closed.
func (b *explosionBehavior) Progress(e *world.Entity, dt float64) {
	d, ok := e.Data.(*explosionData)
	if !ok || e.Age > d.duration+b.env.Cfg.Explosion.Linger {
		b.env.Kill(e)
	}
}

func (b *explosionBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	if !InExplosion(e) {
		return
	}
	b.rules.Dispatch(e, other, c)
}

func (b *explosionBehavior) hitZeppelin(ex, zep *world.Entity, _ collision.Contact) {
	if Exploded(zep) {
		return
	}
	chained(zep, ex)
	b.env.Detonate(zep)
}
