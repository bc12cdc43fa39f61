package boss

import (
	"math"

	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Install registers the boss behavior in env.
func Install(env *entities.Env) {
	env.Register(world.KindBoss, newBehavior(env))
}

// behavior routes contacts to the rules of the touched part. Contacts on
// the body as a whole are ignored.
type behavior struct {
	env   *entities.Env
	zones map[string]*collision.Dispatcher
}

func newBehavior(env *entities.Env) *behavior {
	b := &behavior{env: env}
	plunger := collision.On("plunger", b.stopPlunger, world.KindPlunger)
	cart := collision.On("cart", b.hitCart, world.KindCart)

	b.zones = map[string]*collision.Dispatcher{
		"cabin": collision.New(plunger, cart,
			collision.On("cannonball", b.cabinBall, world.KindCannonball),
		).WithFallback(nil),
		"bottom_cabin": collision.New(plunger, cart,
			collision.On("cannonball", b.bottomCabinBall, world.KindCannonball),
		).WithFallback(nil),
		"left_cabin": collision.New(plunger, cart,
			collision.On("cannonball", b.leftCabinBall, world.KindCannonball),
		).WithFallback(nil),
		"trap": collision.New(
			collision.On("plunger", b.trapPlunger, world.KindPlunger),
			collision.On("cannonball", b.trapBall, world.KindCannonball),
		).WithFallback(nil),
		"button": collision.New(
			collision.On("plunger", b.pressButton, world.KindPlunger),
			collision.On("cannonball", b.buttonBall, world.KindCannonball),
		).WithFallback(nil),
		"propeller": collision.New(plunger,
			collision.On("cannonball", b.cutBall, world.KindCannonball),
		).WithFallback(nil),
	}
	return b
}

func (b *behavior) Progress(e *world.Entity, dt float64) {
	if s, ok := Of(e); ok {
		s.Progress(dt)
	}
}

func (b *behavior) Collide(e, other *world.Entity, c collision.Contact) {
	if d, ok := b.zones[c.Part]; ok {
		d.Dispatch(e, other, c)
	}
}

// Removed destroys the item still hanging under the boss.
func (b *behavior) Removed(e *world.Entity) {
	s, ok := Of(e)
	if !ok {
		return
	}
	if item, ok := s.item.Get(b.env.World); ok {
		b.env.Kill(item)
	}
}

func (b *behavior) stopPlunger(_, p *world.Entity, _ collision.Contact) {
	if !entities.Returning(p) {
		b.env.ReturnPlunger(p)
	}
}

func (b *behavior) hitCart(_, cart *world.Entity, _ collision.Contact) {
	b.env.HitCart(cart)
}

// orient sends a cannonball away from the boss. A zero component keeps
// the velocity on that axis.
func (b *behavior) orient(ball *world.Entity, ox, oy float64) {
	b.env.Moves.Detach(ball.Handle())
	if ox != 0 {
		ball.Vel.X = ox * math.Abs(ball.Vel.X)
	}
	if oy != 0 {
		ball.Vel.Y = oy * math.Abs(ball.Vel.Y)
	}
	b.env.Sound("hit-2", ball.Pos)
}

func (b *behavior) cabinBall(_, ball *world.Entity, c collision.Contact) {
	switch c.Side {
	case core.SideMiddleLeft:
		b.orient(ball, -1, 0)
	case core.SideMiddleRight:
		b.orient(ball, 1, 0)
	case core.SideTop:
		b.orient(ball, 0, 1)
	case core.SideBottom:
		b.orient(ball, 0, -1)
	default:
		b.orient(ball, -1, -1)
	}
}

// The bottom and left cabin walls let balls slip toward an open trapdoor.

func (b *behavior) bottomCabinBall(self, ball *world.Entity, c collision.Contact) {
	s, ok := Of(self)
	if !ok {
		return
	}
	if !s.trap.Open || c.Side != core.SideMiddleLeft {
		b.orient(ball, 0, -1)
	}
}

func (b *behavior) leftCabinBall(self, ball *world.Entity, c collision.Contact) {
	s, ok := Of(self)
	if !ok {
		return
	}
	if !s.trap.Open || c.Side != core.SideBottom {
		b.orient(ball, -1, 0)
	}
}

func (b *behavior) trapPlunger(self, p *world.Entity, c collision.Contact) {
	if s, ok := Of(self); ok && s.trap.Open {
		return
	}
	b.stopPlunger(self, p, c)
}

// A ball through the open trapdoor hurts the boss and shuts the door.
func (b *behavior) trapBall(self, ball *world.Entity, c collision.Contact) {
	s, ok := Of(self)
	if !ok {
		return
	}
	if s.trap.Open {
		b.env.Kill(ball)
		s.CloseTrapdoor()
		s.Hit(ball)
		return
	}

	ox, oy := -1.0, -1.0
	switch c.Side {
	case core.SideMiddleLeft:
		oy = 0
	case core.SideBottom:
		ox = 0
	}
	b.orient(ball, ox, oy)
}

// pressButton opens the trapdoor when the plunger comes in low enough.
func (b *behavior) pressButton(self, p *world.Entity, c collision.Contact) {
	if entities.Returning(p) {
		return
	}
	b.stopPlunger(self, p, c)
	s, ok := Of(self)
	if ok && p.Angle <= s.cfg.ButtonAngle {
		s.OpenTrapdoor()
	}
}

func (b *behavior) buttonBall(_, ball *world.Entity, _ collision.Contact) {
	b.orient(ball, -1, 0)
}

func (b *behavior) cutBall(_, ball *world.Entity, _ collision.Contact) {
	b.env.Kill(ball)
}
