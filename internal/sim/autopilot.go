package sim

import (
	"math"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Autopilot plays headless runs. It aims the cannon at the closest target
// ahead of the cart and fires once on target. Attractable props in plunger
// range are grabbed instead, and a lit emergency button is pressed.
type Autopilot struct {
	s *Sim
}

// NewAutopilot creates an autopilot for s.
func NewAutopilot(s *Sim) *Autopilot {
	return &Autopilot{s: s}
}

var targets = map[world.Kind]bool{
	world.KindCrate:    true,
	world.KindTNT:      true,
	world.KindBomb:     true,
	world.KindBalloon:  true,
	world.KindZeppelin: true,
	world.KindWall:     true,
	world.KindTar:      true,
}

// Decide returns the actions for the next tick.
func (p *Autopilot) Decide() core.InputFrame {
	in := core.NewInputFrame()
	cart, ok := p.s.Cart()
	if !ok || p.s.Over() {
		return in
	}
	d, ok := entities.Cart(cart)
	if !ok {
		return in
	}
	from := cart.Mark("cannon")

	if b, ok := p.s.Boss(); ok {
		if at, ok := p.bossTarget(); ok {
			if b.Emergency() {
				from = cart.Mark("plunger")
			}
			switch on := p.aim(&in, d.Aim, from, at); {
			case on && b.Emergency():
				in.Set(core.ActionPlunger)
			case on:
				in.Set(core.ActionFire)
			}
			return in
		}
	}

	target, ok := p.nearest(cart)
	if !ok {
		return in
	}
	if target.Kind.Attractable() && !target.Attracted &&
		target.Pos.Dist(cart.Pos) < p.s.cfg.Plunger.MaxDistance/2 {
		if p.aim(&in, d.Aim, cart.Mark("plunger"), target.Pos) {
			in.Set(core.ActionPlunger)
		}
		return in
	}
	if p.aim(&in, d.Aim, from, target.Pos) {
		in.Set(core.ActionFire)
	}
	return in
}

// aim turns the cannon toward at and reports whether it already points
// there.
func (p *Autopilot) aim(in *core.InputFrame, current float64, from, at core.Vec) bool {
	dir := at.Sub(from)
	want := core.ClampF(math.Atan2(dir.Y, dir.X), 0, math.Pi/2)
	step := p.s.cfg.Cart.AimStep
	switch {
	case want > current+step/2:
		in.Set(core.ActionAimUp)
	case want < current-step/2:
		in.Set(core.ActionAimDown)
	default:
		return true
	}
	return false
}

// bossTarget is the button while it is lit, the trapdoor while it is open
// and the cabin otherwise.
func (p *Autopilot) bossTarget() (core.Vec, bool) {
	b, _ := p.s.Boss()
	e, ok := p.s.world.Get(b.Handle())
	if !ok || b.Transition() {
		return core.Vec{}, false
	}
	switch {
	case b.Emergency():
		return e.Mark("button"), true
	case b.Trapdoor().Open:
		return e.Mark("trap"), true
	default:
		return e.Mark("cabin"), true
	}
}

func (p *Autopilot) nearest(cart *world.Entity) (*world.Entity, bool) {
	var best *world.Entity
	bestDist := math.Inf(1)
	cam := p.s.ctx.Camera
	p.s.world.Each(func(e *world.Entity) {
		if !targets[e.Kind] || e.Pos.X <= cart.Pos.X || !cam.Intersects(e.Bounds()) {
			return
		}
		if dist := e.Pos.Dist(cart.Pos); dist < bestDist {
			best, bestDist = e, dist
		}
	})
	return best, best != nil
}
