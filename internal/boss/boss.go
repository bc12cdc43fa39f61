// Package boss implements the scripted boss encounter: a flying machine
// choreographed around the cart, whose trapdoor must be opened with the
// plunger before cannonballs can hurt it.
//
// Every motion of the boss is a tween played in one of five slots, updated
// in a fixed order each tick: the ground reference, the anchor X and Y, the
// vertical bob around the anchor and the tilt angle.
package boss

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/tween"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// ErrMissingCart is returned when a boss is created without the cart it
// chases.
var ErrMissingCart = errors.New("boss: cart reference is required")

// Phase is the combat state of the boss.
type Phase uint8

const (
	PhaseFly Phase = iota
	PhaseInjure
	PhaseDrop
	PhaseDead
	PhaseEnd
)

var phaseNames = [...]string{
	PhaseFly:    "fly",
	PhaseInjure: "injure",
	PhaseDrop:   "drop",
	PhaseDead:   "dead",
	PhaseEnd:    "end",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Trapdoor is the gate under the cabin. Cannonballs only hurt the boss
// through an open trapdoor.
type Trapdoor struct {
	Open  bool
	Timer float64 // Seconds before it closes by itself
}

// Size is the extent of the boss body.
var Size = core.V(300, 200)

// Collision zones and marks of the boss, relative to its center.
var parts = []world.Part{
	{Name: "propeller", Offset: core.V(0, 90), Size: core.V(200, 20)},
	{Name: "cabin", Offset: core.V(0, 20), Size: core.V(200, 100)},
	{Name: "left_cabin", Offset: core.V(-110, 0), Size: core.V(20, 80)},
	{Name: "bottom_cabin", Offset: core.V(-20, -40), Size: core.V(140, 20)},
	{Name: "trap", Offset: core.V(40, -55), Size: core.V(60, 10)},
	{Name: "button", Offset: core.V(-70, -60), Size: core.V(30, 20)},
	{Name: "item", Offset: core.V(40, -75)},
	{Name: "pipe 1", Offset: core.V(-120, 60)},
	{Name: "pipe 2", Offset: core.V(-100, 70)},
	{Name: "pipe 3", Offset: core.V(100, 70)},
	{Name: "pipe 4", Offset: core.V(120, 60)},
	{Name: "module", Offset: core.V(0, 60)},
}

// Boss is the state of one boss encounter. It lives in the Data of a
// world.KindBoss entity.
type Boss struct {
	env  *entities.Env
	cfg  config.BossConfig
	self world.Handle
	cart world.Handle

	phase      Phase
	transition bool
	hits       int
	trap       Trapdoor
	emergency  bool

	anchor     core.Vec
	yRef       float64
	bob        float64
	angle      float64
	lastGap    float64
	moveOnCart bool
	view       cartView

	refY    tween.Slot
	anchorX tween.Slot
	anchorY tween.Slot
	motion  tween.Slot
	tilt    tween.Slot
	wobble  *tween.Sequence

	item      world.Link
	dropAt    core.Vec
	dropped   []world.Handle
	dropTimer float64

	// OnPhase is called after every phase change.
	OnPhase func(from, to Phase)
}

// cartView is the last known geometry of the cart. The boss keeps using it
// if the cart leaves the world.
type cartView struct {
	left, right, centerX, bottom float64
	plunger                      core.Vec
}

// New spawns a boss centered on pos, chasing cart. The boss behavior is
// installed in env if needed. When the context flags a boss transition,
// the boss plays its entrance cut-scene before fighting.
func New(env *entities.Env, pos core.Vec, cart *world.Entity) (*Boss, error) {
	if cart == nil || cart.Gone() || cart.Kind != world.KindCart {
		return nil, ErrMissingCart
	}
	if _, ok := env.Behavior(world.KindBoss); !ok {
		Install(env)
	}

	b := &Boss{
		env:        env,
		cfg:        env.Cfg.Boss,
		cart:       cart.Handle(),
		anchor:     pos,
		moveOnCart: true,
		transition: env.Transition(),
	}
	b.observe(cart)
	b.yRef = b.view.bottom
	b.lastGap = pos.X - b.view.centerX

	e := env.Spawn(world.Spec{
		Kind:       world.KindBoss,
		Pos:        pos,
		Size:       Size,
		Mass:       100,
		Weightless: true,
		Parts:      parts,
		Data:       b,
	})
	b.self = e.Handle()

	if b.transition {
		b.transitionFirst()
	} else {
		b.initialAnchor()
		b.initialAnchorY(b.anchor.Y - b.yRef)
	}
	b.flyMotion()
	return b, nil
}

// Of returns the boss state of e.
func Of(e *world.Entity) (*Boss, bool) {
	b, ok := e.Data.(*Boss)
	return b, ok
}

// Handle returns the handle of the boss entity.
func (b *Boss) Handle() world.Handle { return b.self }

// Phase returns the current phase.
func (b *Boss) Phase() Phase { return b.phase }

// Transition reports whether the entrance cut-scene is still running.
func (b *Boss) Transition() bool { return b.transition }

// Hits returns the number of hits taken.
func (b *Boss) Hits() int { return b.hits }

// Trapdoor returns the trapdoor state.
func (b *Boss) Trapdoor() Trapdoor { return b.trap }

// Emergency reports whether the button is in reach of the plunger.
func (b *Boss) Emergency() bool { return b.emergency }

// Angle returns the tilt of the boss.
func (b *Boss) Angle() float64 { return b.angle }

// Anchor returns the point the boss hovers around.
func (b *Boss) Anchor() core.Vec { return b.anchor }

// Carrying returns the drop item held by the boss.
func (b *Boss) Carrying() (*world.Entity, bool) {
	return b.item.Get(b.env.World)
}

// Dropped returns the items released so far that are still tracked.
func (b *Boss) Dropped() []world.Handle {
	out := make([]world.Handle, len(b.dropped))
	copy(out, b.dropped)
	return out
}

func (b *Boss) setPhase(p Phase) {
	if b.phase == p {
		return
	}
	from := b.phase
	b.phase = p
	if e, ok := b.env.World.Get(b.self); ok {
		b.env.Animate(e, p.String())
	}
	if b.OnPhase != nil {
		b.OnPhase(from, p)
	}
}

func (b *Boss) observe(cart *world.Entity) {
	r := cart.Bounds()
	b.view = cartView{
		left:    r.Left(),
		right:   r.Right(),
		centerX: cart.Pos.X,
		bottom:  r.Bottom(),
		plunger: cart.Mark("plunger"),
	}
}

// Progress advances the boss by dt. Drop-item cleanup and the trapdoor
// timer run before the tweens, and the phase update runs last so the
// position written at the end reflects this tick's anchors.
func (b *Boss) Progress(dt float64) {
	e, ok := b.env.World.Get(b.self)
	if !ok {
		return
	}
	cart, hasCart := b.env.World.Get(b.cart)
	if hasCart {
		b.observe(cart)
	}

	b.removeDropped()
	b.updateTrapdoor(dt)
	b.progressTweens(dt)
	b.progressInjured()
	if !b.transition {
		b.updateEmergency(e)
	}
	b.progressDropItem()

	switch b.phase {
	case PhaseFly:
		b.progressFly(dt)
	case PhaseEnd:
		b.progressEnd(e, cart, hasCart)
	}

	prev := e.Pos
	e.Pos = b.anchor.Add(core.V(0, b.bob))
	e.Angle = b.angle
	if dt > 0 {
		e.Vel = e.Pos.Sub(prev).Scale(1 / dt)
	}
	b.lastGap = b.anchor.X - b.view.centerX
}

func (b *Boss) progressTweens(dt float64) {
	if b.view.bottom < b.yRef && !b.transition {
		b.refY.Set(tween.NewSequence(func(v float64) { b.yRef = v }).
			Add(b.yRef, b.view.bottom, 0.5, tween.Linear))
	}

	b.refY.Update(dt)
	b.anchorX.Update(dt)
	b.anchorY.Update(dt)
	b.motion.Update(dt)
	b.tilt.Update(dt)
}

// The injure beat lasts until the wobble completes a round or is replaced.
func (b *Boss) progressInjured() {
	if b.phase == PhaseInjure && (b.wobble == nil || b.wobble.Done()) {
		b.setPhase(PhaseFly)
	}
}

// The emergency button lights up when the plunger can reach it.
func (b *Boss) updateEmergency(e *world.Entity) {
	on := false
	if !b.trap.Open {
		button := e.Mark("button")
		dir := button.Sub(b.view.plunger)
		on = math.Atan2(dir.Y, dir.X) <= b.cfg.ButtonAngle
	}
	if on == b.emergency {
		return
	}
	b.emergency = on
	if on {
		b.env.Animate(e, "emergency-on")
	} else {
		b.env.Animate(e, "emergency-off")
	}
}

// progressFly loads a new drop item at regular intervals.
func (b *Boss) progressFly(dt float64) {
	if b.transition || b.cfg.DropInterval <= 0 {
		return
	}
	if _, ok := b.item.Get(b.env.World); ok {
		return
	}
	b.dropTimer += dt
	if b.dropTimer < b.cfg.DropInterval {
		return
	}
	b.dropTimer = 0

	kind := world.KindCrate
	if b.env.Rand.Intn(3) == 0 {
		kind = world.KindTNT
	}
	b.Carry(kind, core.V(b.view.right+b.cfg.MinCartDistance, b.yRef+b.cfg.FlyY/2))
}

// progressEnd keeps the wreck burning while the cart is still on screen.
func (b *Boss) progressEnd(e, cart *world.Entity, hasCart bool) {
	if !hasCart || b.env.CanFinish(cart) {
		return
	}
	d := b.env.Rand.Float64()
	if d >= b.cfg.EndExplosion {
		return
	}

	r := e.Bounds()
	at := core.V(r.Left()+b.env.Rand.Float64()*r.W/2, r.Bottom()+b.env.Rand.Float64()*r.H)
	b.env.Explode(at, entities.Blast{Level: 2, Duration: 0.2, Track: b.self, Decorative: true})
	if d < b.cfg.EndSound {
		b.env.Sound(explosionSound(b.env.Rand.Intn(5)+1), at)
	}
}
