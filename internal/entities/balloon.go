package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/tween"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

const (
	balloonFlyHeight = 2000.0
	balloonFlyTime   = 13.0
)

type balloonData struct {
	popped bool
	flight tween.Slot
}

func balloonOf(e *world.Entity) *balloonData {
	d, ok := e.Data.(*balloonData)
	if !ok {
		d = &balloonData{}
		e.Data = d
	}
	return d
}

type balloonBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newBalloon(env *Env) *balloonBehavior {
	b := &balloonBehavior{env: env}
	b.rules = collision.New(
		collision.On("cannonball", b.shot, world.KindCannonball),
		collision.On("plank", env.detonateBy(), world.KindPlank),
		collision.Rule{
			Name:   "explosion",
			Match:  collision.All(collision.Is(world.KindExplosion), inBlast),
			Handle: env.detonateBy(),
		},
	).WithFallback(nil)
	return b
}

func (b *balloonBehavior) Progress(e *world.Entity, dt float64) {
	balloonOf(e).flight.Update(dt)
}

func (b *balloonBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	if e.Taken {
		return
	}
	b.rules.Dispatch(e, other, c)
}

// A balloon hanging on the plunger close to it is shielded from the cart's
// own fire.
func (b *balloonBehavior) shot(balloon, ball *world.Entity, _ collision.Contact) {
	if balloon.Attracted {
		if p, ok := b.env.World.Get(balloon.Owner); ok && p.Pos.Dist(balloon.Pos) <= b.env.Cfg.Plunger.BalloonRange {
			return
		}
	}
	if Exploded(balloon) {
		return
	}
	balloon.Combo = combo.Next(ball.Combo, true)
	b.detonate(balloon)
}

func (b *balloonBehavior) detonate(e *world.Entity) {
	d := balloonOf(e)
	if d.popped {
		return
	}
	d.popped = true
	env := b.env

	e.State = world.StateExplode
	env.Snapshot()
	env.releaseFromPlunger(e)
	env.Score(e, env.Cfg.Scoring.Balloon)
	env.Sound("balloon", e.Pos)
	env.Animate(e, "pop")
	env.Kill(e)
}

// balloonTaken lets a balloon brought back by the plunger float away.
func (env *Env) balloonTaken(e *world.Entity) {
	d := balloonOf(e)
	if d.popped {
		return
	}
	e.State = world.StateFly
	e.Weightless = true
	e.Vel.X, e.Vel.Y = 0, 0
	env.Score(e, env.Cfg.Scoring.Balloon)

	base := e.Pos.Y
	seq := tween.NewSequence(func(v float64) { e.Pos.Y = base + v }).
		Add(0, balloonFlyHeight, balloonFlyTime, tween.Linear).
		OnFinished(func() { env.Kill(e) })
	d.flight.Set(seq)
}
