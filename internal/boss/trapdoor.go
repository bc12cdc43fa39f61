package boss

import (
	"fmt"

	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Pieces thrown off the boss at each hit.
var hitPieces = [][]string{
	1: {"pipe 1", "pipe 2"},
	2: {"pipe 3", "pipe 4"},
	3: {"module"},
}

// OpenTrapdoor opens the trapdoor, or keeps it open for a full duration if
// it already is.
func (b *Boss) OpenTrapdoor() {
	e, ok := b.env.World.Get(b.self)
	if !ok {
		return
	}
	if !b.trap.Open {
		b.trap.Open = true
		b.env.Animate(e, "trap-door-opening")
		b.env.Sound("trap-door-opening", e.Pos)
		b.startWobble()
	}
	b.trap.Timer = b.cfg.TrapDuration
}

// CloseTrapdoor closes the trapdoor and straightens the boss.
func (b *Boss) CloseTrapdoor() {
	if !b.trap.Open {
		return
	}
	b.trap.Open = false
	b.trap.Timer = 0
	if e, ok := b.env.World.Get(b.self); ok {
		b.env.Animate(e, "trap-door-closing")
		b.env.Sound("trap-door-closing", e.Pos)
	}
	b.safeAngle()
}

func (b *Boss) updateTrapdoor(dt float64) {
	if !b.trap.Open {
		return
	}
	b.trap.Timer -= dt
	if b.trap.Timer <= 0 {
		b.CloseTrapdoor()
	}
}

// Hit counts a hit by a cannonball, or by the level itself when by is nil.
// The third hit kills the boss; later hits are ignored.
func (b *Boss) Hit(by *world.Entity) {
	if b.phase == PhaseDead || b.phase == PhaseEnd {
		return
	}
	e, ok := b.env.World.Get(b.self)
	if !ok {
		return
	}
	b.hits++

	if by != nil {
		combo.Floating(b.env.Ledger, by.Combo, b.env.Cfg.Scoring.BossHit, true)
	} else {
		combo.Floating(b.env.Ledger, 0, b.env.Cfg.Scoring.BossHit, false)
	}
	b.env.Snapshot()
	b.env.Animate(e, "hit-star")
	b.env.Sound("boss-hit", e.Pos)

	if b.hits < len(hitPieces) {
		for _, name := range hitPieces[b.hits] {
			b.throw(e, name)
		}
	}
	if b.hits >= len(hitPieces)-1 {
		if _, carrying := b.item.Get(b.env.World); carrying {
			b.Drop()
		}
		b.die()
		return
	}
	b.setPhase(PhaseInjure)
	b.startWobble()
}

func (b *Boss) throw(e *world.Entity, name string) {
	vel := core.V(300+300*b.env.Rand.Float64(), 300+300*b.env.Rand.Float64())
	b.env.Throw(e.Mark(name), name, vel)
}

func (b *Boss) die() {
	b.setPhase(PhaseDead)
	b.deadAnchor()
	b.deadMotion()
	if e, ok := b.env.World.Get(b.self); ok {
		b.env.Sound("boss-dead", e.Pos)
	}
}

// RequestEnd moves a dead boss to its final phase right away.
func (b *Boss) RequestEnd() {
	if b.phase == PhaseDead {
		b.setPhase(PhaseEnd)
	}
}

// Carry loads a drop item of kind k under the boss and flies it to dropAt.
// It reports false when the boss already carries something, is beaten, or
// the cart is already under the hang point.
func (b *Boss) Carry(k world.Kind, dropAt core.Vec) (*world.Entity, bool) {
	e, ok := b.env.World.Get(b.self)
	if !ok || !b.item.Empty(b.env.World) {
		return nil, false
	}
	if b.phase == PhaseDead || b.phase == PhaseEnd {
		return nil, false
	}
	mark := e.Mark("item")
	if b.view.right >= mark.X && !b.transition {
		return nil, false
	}

	spec := entities.PropSpec(k, mark)
	spec.Pos = mark.Sub(core.V(0, spec.Size.Y/2))
	spec.Transportable = true
	spec.Weightless = true
	spec.Angle = b.angle
	item := b.env.Spawn(spec)
	b.item.Set(item.Handle())
	b.env.Moves.Attach(item.Handle(), movement.Movement{
		Root: movement.Follow(item, e),
	})
	b.env.Sound("dropping", mark)

	b.dropAt = dropAt
	b.setPhase(PhaseDrop)
	b.dropAnchor()
	return item, true
}

// Drop releases the carried item, which falls with the boss momentum, and
// resumes the regular flight.
func (b *Boss) Drop() {
	item, ok := b.item.Get(b.env.World)
	b.item.Clear()
	if ok {
		var vel core.Vec
		if e, ok := b.env.World.Get(b.self); ok {
			vel = e.Vel
		}
		b.env.Moves.Detach(item.Handle())
		item.Angle = 0
		item.Vel = vel.Sub(core.V(0, b.cfg.DropFall))
		item.Weightless = false
		item.State = world.StateFall
		b.dropped = append(b.dropped, item.Handle())
	}
	b.resumeFly()
}

// progressDropItem releases the carried item once the cart passed under
// it. An item that can no longer be carried is destroyed.
func (b *Boss) progressDropItem() {
	if b.item.Handle().IsZero() {
		return
	}
	item, ok := b.item.Get(b.env.World)
	if !ok || !item.Transportable {
		if ok {
			b.env.Kill(item)
		}
		b.item.Clear()
		b.resumeFly()
		return
	}
	if item.Bounds().Left() < b.view.right && !b.transition {
		b.Drop()
	}
}

// removeDropped destroys released items left behind the camera.
func (b *Boss) removeDropped() {
	if b.env.Ctx == nil {
		return
	}
	cam := b.env.Ctx.Camera
	kept := b.dropped[:0]
	for _, h := range b.dropped {
		item, ok := b.env.World.Get(h)
		if !ok {
			continue
		}
		r := item.Bounds()
		if r.Right() < cam.Left() && !cam.Intersects(r) {
			b.env.Kill(item)
			continue
		}
		kept = append(kept, h)
	}
	b.dropped = kept
}

func explosionSound(n int) string {
	return fmt.Sprintf("explosion-%d", n)
}
