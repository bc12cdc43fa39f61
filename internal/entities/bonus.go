package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/tween"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type bonusData struct {
	given bool
	lift  tween.Slot
	pull  tween.Slot
}

func bonusOf(e *world.Entity) *bonusData {
	d, ok := e.Data.(*bonusData)
	if !ok {
		d = &bonusData{}
		e.Data = d
	}
	return d
}

type bonusBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newBonus(env *Env) *bonusBehavior {
	b := &bonusBehavior{env: env}
	b.rules = collision.New(
		collision.On("cart", b.pickUp, world.KindCart),
	).WithFallback(nil)
	return b
}

func (b *bonusBehavior) Progress(e *world.Entity, dt float64) {
	d := bonusOf(e)
	d.pull.Update(dt)
	d.lift.Update(dt)
}

func (b *bonusBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}

// A bonus pays once, then rises and is pulled into the cart.
func (b *bonusBehavior) pickUp(bonus, cart *world.Entity, _ collision.Contact) {
	d := bonusOf(bonus)
	if d.given {
		return
	}
	if cd, ok := Cart(cart); ok && cd.Dead {
		return
	}
	d.given = true

	env := b.env
	combo.Floating(env.Ledger, 0, env.Cfg.Scoring.Bonus, false)
	env.Sound("bonus", bonus.Pos)

	bonus.Weightless = true
	bonus.Vel.X, bonus.Vel.Y = 0, 0
	baseY := bonus.Pos.Y
	ref := cart.Handle()
	d.lift.Set(tween.NewSequence(func(v float64) { bonus.Pos.Y = baseY + v }).
		Add(0, 300, 0.5, tween.QuadOut).
		Add(300, 50, 0.5, tween.QuadIn).
		OnFinished(func() { env.Kill(bonus) }))

	d.pull.Set(tween.NewSequence(func(v float64) {
		if c, ok := env.World.Get(ref); ok {
			bonus.Pos.X = c.Pos.X + v
		}
	}).Add(bonus.Pos.X-cart.Pos.X, 0, 1, tween.QuadOut))
}
