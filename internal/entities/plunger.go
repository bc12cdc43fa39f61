package entities

import (
	"fmt"

	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type plungerData struct {
	cart        world.Handle
	origin      core.Vec
	maxDistance float64
	returning   bool
	attracted   world.Link
}

// Returning reports whether a plunger is on its way back to the cart.
func Returning(e *world.Entity) bool {
	d, ok := e.Data.(*plungerData)
	return ok && d.returning
}

// Attracted returns the item a plunger holds.
func (env *Env) Attracted(plunger *world.Entity) (*world.Entity, bool) {
	d, ok := plunger.Data.(*plungerData)
	if !ok {
		return nil, false
	}
	return d.attracted.Get(env.World)
}

type plungerBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newPlunger(env *Env) *plungerBehavior {
	b := &plungerBehavior{env: env}
	b.rules = collision.New(
		collision.Rule{
			Name:   "attract",
			Match:  b.canAttract,
			Handle: b.attract,
		},
		collision.On("zeppelin", b.hitZeppelin, world.KindZeppelin),
		collision.On("wall", b.bounceBack, world.KindWall, world.KindObstacle),
	).WithFallback(nil)
	return b
}

func (b *plungerBehavior) Progress(e *world.Entity, dt float64) {
	d, ok := e.Data.(*plungerData)
	if !ok || !b.env.World.Alive(d.cart) {
		b.env.Kill(e)
		return
	}
	if !d.returning && e.Pos.Dist(d.origin) >= d.maxDistance {
		b.env.ReturnPlunger(e)
	}
}

func (b *plungerBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	if Returning(e) {
		return
	}
	b.rules.Dispatch(e, other, c)
}

// Removed lets go of the attracted item when the plunger disappears
// without bringing it back.
func (b *plungerBehavior) Removed(e *world.Entity) {
	d, ok := e.Data.(*plungerData)
	if !ok {
		return
	}
	if item, ok := d.attracted.Get(b.env.World); ok && !item.Taken {
		item.Attracted = false
		b.env.Moves.Detach(item.Handle())
	}
}

func (b *plungerBehavior) canAttract(other *world.Entity) bool {
	return other.Kind.Attractable() && other.State == world.StateIdle &&
		!other.Attracted && !other.Taken && !Exploded(other)
}

func (b *plungerBehavior) attract(p, item *world.Entity, _ collision.Contact) {
	if b.env.grab(p, item) {
		b.env.Sound("plunger-stick", p.Pos)
		b.env.ReturnPlunger(p)
	}
}

// Grabbing an item seeds its combo chain.
func (env *Env) grab(p, item *world.Entity) bool {
	d, ok := p.Data.(*plungerData)
	if !ok || !d.attracted.Empty(env.World) {
		return false
	}
	d.attracted.Set(item.Handle())

	item.Attracted = true
	item.Combo = combo.Next(0, true)
	item.Owner = p.Handle()
	env.Moves.Attach(item.Handle(), movement.Movement{
		Root: movement.Follow(item, p),
	})
	return true
}

// Hang puts item on a flying plunger as if the plunger had grabbed it.
func (env *Env) Hang(item *world.Entity, plunger world.Handle) error {
	p, ok := env.World.Get(plunger)
	if !ok || p.Kind != world.KindPlunger {
		return ErrMissingPlunger
	}
	if !env.grab(p, item) {
		return fmt.Errorf("entities: plunger %v already holds an item", plunger)
	}
	return nil
}

func (b *plungerBehavior) hitZeppelin(p, zep *world.Entity, _ collision.Contact) {
	zep.Combo = combo.Next(0, true)
	b.env.DropCarried(zep)
	b.env.ReturnPlunger(p)
}

func (b *plungerBehavior) bounceBack(p, _ *world.Entity, _ collision.Contact) {
	b.env.ReturnPlunger(p)
}

// ReturnPlunger sends the plunger back to the cart. When it arrives the
// cart takes whatever the plunger holds.
func (env *Env) ReturnPlunger(p *world.Entity) {
	d, ok := p.Data.(*plungerData)
	if !ok || d.returning {
		return
	}
	d.returning = true
	p.Vel = core.Vec{}

	cart := d.cart
	env.Moves.Attach(p.Handle(), movement.Movement{
		Root: &movement.Goto{
			To:       movement.OnMark(cart, "plunger"),
			Duration: env.Cfg.Plunger.ReturnDuration,
		},
		AutoRemove: true,
		OnFinished: func() {
			c, ok := env.World.Get(cart)
			if !ok {
				env.Kill(p)
				return
			}
			env.finishPlunger(c, p)
		},
	})
}
