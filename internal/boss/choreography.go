package boss

import (
	"math"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/tween"
)

// Anchor X is either relative to the left edge of the cart or absolute.
// Anchor Y is either relative to the ground reference or absolute.

func (b *Boss) cartX(v float64) {
	b.anchor.X = b.view.left + v
	b.updateAngle()
}

func (b *Boss) worldX(v float64) { b.anchor.X = v }

func (b *Boss) steerX(v float64) {
	b.anchor.X = v
	b.updateAngle()
}

func (b *Boss) groundY(v float64) { b.anchor.Y = b.yRef + v }

func (b *Boss) worldY(v float64) { b.anchor.Y = v }

func (b *Boss) setBob(v float64) { b.bob = v }

func (b *Boss) setAngle(v float64) {
	b.angle = v
	if item, ok := b.item.Get(b.env.World); ok {
		item.Angle = v
	}
}

// initialAnchor brings the boss next to the cart, then out to its far
// position before the regular back-and-forth.
func (b *Boss) initialAnchor() {
	x := b.anchor.X - b.view.left
	near, far := b.cfg.MinCartDistance, b.cfg.MaxX
	b.anchorX.Set(tween.NewSequence(b.cartX).
		Add(x, near, 6, tween.SineInOut).
		Add(near, far, 3, tween.SineInOut).
		OnFinished(b.flyAnchor))
}

// flyAnchor swings between the near and far distances from the cart.
// The way back is faster than the way out.
func (b *Boss) flyAnchor() {
	x := b.anchor.X - b.view.left
	near, far := b.cfg.MinCartDistance, b.cfg.MaxX

	back := 0.0
	if span := math.Abs(far - near); span > 0 {
		back = 2 * math.Abs(near-x) / span
	}
	b.anchorX.Set(tween.NewSequence(b.cartX).
		Add(x, near, back, tween.SineInOut).
		Add(near, far, 4, tween.SineInOut).
		OnFinished(b.flyAnchor))
}

// initialAnchorY reaches the flight height, then keeps it above the ground
// reference.
func (b *Boss) initialAnchorY(from float64) {
	fly := b.cfg.FlyY
	b.anchorY.Set(tween.NewSequence(b.groundY).
		Add(from, fly, 4, tween.SineInOut).
		OnFinished(func() {
			b.anchorY.Set(tween.NewSequence(b.groundY).Add(fly, fly, 4, tween.Linear).Loop())
		}))
}

func (b *Boss) flyMotion() {
	a := b.cfg.FlyBobAmplitude
	b.motion.Set(tween.NewSequence(b.setBob).
		Add(0, a, 0.75, tween.SineOut).
		Add(a, -a, 1.5, tween.SineInOut).
		Add(-a, 0, 0.75, tween.SineIn).
		Loop())
}

func (b *Boss) deadMotion() {
	b.motion.Set(tween.NewSequence(b.setBob).
		Add(0, 40, 0.25, tween.SineOut).
		Add(40, -20, 0.5, tween.SineInOut).
		Add(-20, 0, 0.25, tween.SineIn).
		Loop())
}

func (b *Boss) tiltTo(a float64) {
	b.tilt.Set(tween.NewSequence(b.setAngle).Add(b.angle, a, 1, tween.SineInOut))
}

// updateAngle leans the boss toward its direction of travel relative to
// the cart, while the trapdoor is closed.
func (b *Boss) updateAngle() {
	if b.trap.Open || b.transition {
		return
	}
	gap := b.anchor.X - b.view.centerX
	if gap > b.lastGap {
		if b.moveOnCart {
			b.tiltTo(-b.cfg.SafeAngle)
		}
		b.moveOnCart = false
		return
	}
	if !b.moveOnCart {
		b.tiltTo(b.cfg.SafeAngle)
	}
	b.moveOnCart = true
}

func (b *Boss) safeAngle() {
	if b.moveOnCart {
		b.tiltTo(b.cfg.SafeAngle)
	} else {
		b.tiltTo(-b.cfg.SafeAngle)
	}
}

// startWobble rocks the boss while it is hurt. Rounds repeat as long as the
// trapdoor stays open.
func (b *Boss) startWobble() {
	a := b.cfg.InjuredAngle
	b.wobble = tween.NewSequence(b.setAngle).
		Add(b.angle, -a, 0.3, tween.SineInOut).
		Add(-a, a, 0.3, tween.SineInOut).
		OnFinished(b.wobbleRound)
	b.tilt.Set(b.wobble)
}

func (b *Boss) wobbleRound() {
	if b.phase == PhaseInjure {
		b.setPhase(PhaseFly)
	}
	if b.trap.Open && b.phase != PhaseDead && b.phase != PhaseEnd {
		b.startWobble()
		return
	}
	b.safeAngle()
}

// dropAnchor flies the carried item to dropAt. The item falls when the
// bob settles.
func (b *Boss) dropAnchor() {
	off, _ := markOffset("item")
	toX := b.dropAt.X - off.X
	toY := b.dropAt.Y - off.Y + 10

	d := 0.0
	if b.cfg.DropSpeed > 0 {
		d = math.Abs(toX-b.anchor.X) / b.cfg.DropSpeed
	}
	b.anchorX.Set(tween.NewSequence(b.steerX).Add(b.anchor.X, toX, d, tween.SineOut))
	b.anchorY.Set(tween.NewSequence(b.worldY).Add(b.anchor.Y, toY, d, tween.QuartOut))
	b.motion.Set(tween.NewSequence(b.setBob).Add(b.bob, 0, d, tween.Linear).OnFinished(b.Drop))
}

// resumeFly restarts the regular flight after a drop.
func (b *Boss) resumeFly() {
	if b.phase == PhaseDead || b.phase == PhaseEnd {
		return
	}
	if b.transition {
		b.transitionThird()
	} else {
		b.flyAnchor()
		b.flyMotion()
		b.initialAnchorY(b.anchor.Y - b.yRef)
	}
	if b.phase == PhaseDrop {
		b.setPhase(PhaseFly)
	}
}

// deadAnchor sinks the wreck to the far low corner, then ends the fight.
func (b *Boss) deadAnchor() {
	d := b.cfg.DeadDuration
	b.anchorX.Set(tween.NewSequence(b.cartX).
		Add(b.anchor.X-b.view.left, b.cfg.MaxX, d, tween.SineInOut).
		OnFinished(func() { b.setPhase(PhaseEnd) }))
	b.anchorY.Set(tween.NewSequence(b.groundY).
		Add(b.anchor.Y-b.yRef, b.cfg.MinY, d, tween.SineInOut))
}

// The entrance cut-scene has three stages. The boss crosses the screen,
// reappears above it and swoops down, then backs off behind the cart
// before its regular flight.

func (b *Boss) transitionFirst() {
	b.setAngle(-b.cfg.SafeAngle)
	serial := b.env.Ctx.ModuleSerial
	slow := serial == b.cfg.TransitionSlow

	d := 6.0
	next := b.transitionSecond
	if slow {
		d = 12
		next = b.transitionThird
	}
	x, y := b.anchor.X, b.anchor.Y
	to := x
	if serial != 1 {
		to = x + 2.2*b.env.Ctx.Camera.W
	}
	b.anchorX.Set(tween.NewSequence(b.worldX).Add(x, to, d, tween.Linear).OnFinished(next))
	b.anchorY.Set(tween.NewSequence(b.worldY).Add(y, y, d, tween.Linear))
}

func (b *Boss) transitionSecond() {
	cam := b.env.Ctx.Camera
	b.tilt.Clear()
	b.setAngle(0)
	b.bob = 0
	b.anchor = core.V(cam.Left()+cam.W/2, cam.Top()+Size.Y/2)

	x, y := b.anchor.X, b.anchor.Y
	dist := core.V(cam.W/4, -cam.H/2)
	b.anchorX.Set(tween.NewSequence(b.worldX).
		Add(x, x+dist.X*3/4, 4, tween.QuartIn).
		Add(x+dist.X*3/4, x+dist.X, 1.5, tween.SineOut).
		OnFinished(b.transitionThird))
	b.anchorY.Set(tween.NewSequence(b.worldY).
		Add(y, y+dist.Y, 4, tween.SineOut).
		Add(y+dist.Y, y+dist.Y, 1.5, tween.Linear))
	b.motion.Set(tween.NewSequence(b.setBob).Add(0, 0, 3, tween.Linear).Loop())
}

func (b *Boss) transitionThird() {
	cam := b.env.Ctx.Camera
	b.tiltTo(b.cfg.SafeAngle)
	b.env.Sound("trap-door-closing", b.anchor)
	b.flyMotion()

	x, y := b.anchor.X, b.anchor.Y
	b.anchorX.Set(tween.NewSequence(b.worldX).
		Add(x, x-2*cam.W, 8, tween.SineInOut).
		OnFinished(b.endTransition))
	b.anchorY.Set(tween.NewSequence(b.worldY).Add(y, y+cam.H/2, 8, tween.SineInOut))
}

func (b *Boss) endTransition() {
	b.transition = false
	b.flyAnchor()
	b.initialAnchorY(b.anchor.Y - b.yRef)
}

func markOffset(name string) (core.Vec, bool) {
	for _, p := range parts {
		if p.Name == name {
			return p.Offset, true
		}
	}
	return core.Vec{}, false
}
