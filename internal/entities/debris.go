package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// debrisBehavior drives planks and decorations. Both expire after their
// lifetime; decorations touch nothing.
type debrisBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newDebris(env *Env) *debrisBehavior {
	b := &debrisBehavior{env: env}
	b.rules = collision.New(
		collision.On("pass", ignore,
			world.KindCart, world.KindCannonball, world.KindPlunger, world.KindPlank,
			world.KindExplosion, world.KindDecoration, world.KindBalloon,
			world.KindZeppelin, world.KindBonus, world.KindBoss, world.KindTar),
	)
	return b
}

func (b *debrisBehavior) Progress(e *world.Entity, dt float64) {
	d, ok := e.Data.(*debrisData)
	if ok && d.lifetime > 0 && e.Age > d.lifetime {
		b.env.Kill(e)
	}
}

func (b *debrisBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	if e.Kind == world.KindDecoration {
		return
	}
	b.rules.Dispatch(e, other, c)
}

type obstacleBehavior struct {
	rules *collision.Dispatcher
}

func newObstacle(*Env) *obstacleBehavior {
	return &obstacleBehavior{rules: collision.New()}
}

func (b *obstacleBehavior) Progress(*world.Entity, float64) {}

func (b *obstacleBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}
