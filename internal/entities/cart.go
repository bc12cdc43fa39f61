package entities

import (
	"math"

	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// CartSize is the extent of the player cart.
var CartSize = core.V(80, 50)

// CartData is the state of the player cart.
type CartData struct {
	Aim      float64 // Cannon angle in radians
	Speed    float64
	Hits     int
	Taken    int
	Dead     bool
	Plunger  world.Link
	cooldown float64
}

// CartSpec describes a cart standing on the rail at x.
func CartSpec(x, speed float64) world.Spec {
	return world.Spec{
		Kind:       world.KindCart,
		Pos:        core.V(x, CartSize.Y/2),
		Size:       CartSize,
		Vel:        core.V(speed, 0),
		Mass:       10,
		Weightless: true,
		Parts: []world.Part{
			{Name: "cannon", Offset: core.V(20, 30)},
			{Name: "plunger", Offset: core.V(-10, 30)},
		},
		Data: &CartData{Aim: 0.6, Speed: speed},
	}
}

// Cart returns the cart state of e.
func Cart(e *world.Entity) (*CartData, bool) {
	d, ok := e.Data.(*CartData)
	return d, ok
}

type cartBehavior struct {
	env *Env
}

func newCart(env *Env) *cartBehavior {
	return &cartBehavior{env: env}
}

func (b *cartBehavior) Progress(e *world.Entity, dt float64) {
	d, ok := Cart(e)
	if !ok {
		return
	}
	if d.cooldown > 0 {
		d.cooldown -= dt
	}
	if d.Dead {
		e.Vel = core.Vec{}
		return
	}
	e.Vel = core.V(d.Speed, 0)
}

// The cart is passive: everything it touches resolves the contact on its side.
func (b *cartBehavior) Collide(*world.Entity, *world.Entity, collision.Contact) {}

// Aim turns the cannon by delta radians within [0, π/2].
func Aim(cart *world.Entity, delta float64) {
	if d, ok := Cart(cart); ok {
		d.Aim = core.ClampF(d.Aim+delta, 0, math.Pi/2)
	}
}

// Fire shoots a cannonball from the cart. Cannonballs start a combo chain
// at 1. It reports false while the cannon cools down.
func (env *Env) Fire(cart *world.Entity) (*world.Entity, bool) {
	d, ok := Cart(cart)
	if !ok || d.Dead || d.cooldown > 0 {
		return nil, false
	}
	d.cooldown = env.Cfg.Cart.FireCooldown

	dir := core.FromAngle(d.Aim)
	at := cart.Mark("cannon")
	ball := env.Spawn(world.Spec{
		Kind:  world.KindCannonball,
		Pos:   at,
		Size:  core.V(16, 16),
		Vel:   dir.Scale(env.Cfg.Cart.CannonSpeed).Add(cart.Vel),
		Combo: 1,
		Owner: cart.Handle(),
		Data:  &cannonballData{lifetime: env.Cfg.Cart.CannonLifetime},
	})
	env.Sound("cannon", at)
	return ball, true
}

// LaunchPlunger throws the plunger if none is out.
func (env *Env) LaunchPlunger(cart *world.Entity) (*world.Entity, bool) {
	d, ok := Cart(cart)
	if !ok || d.Dead || !d.Plunger.Empty(env.World) {
		return nil, false
	}

	maxDist := env.Cfg.Plunger.MaxDistance
	if env.Ctx != nil && env.Ctx.BossLevel {
		maxDist = env.Cfg.Plunger.BossMaxDistance
	}

	at := cart.Mark("plunger")
	p := env.Spawn(world.Spec{
		Kind:       world.KindPlunger,
		Pos:        at,
		Size:       core.V(14, 14),
		Vel:        core.FromAngle(d.Aim).Scale(env.Cfg.Plunger.Speed).Add(cart.Vel),
		Angle:      d.Aim,
		Weightless: true,
		Owner:      cart.Handle(),
		Data:       &plungerData{cart: cart.Handle(), origin: at, maxDistance: maxDist},
	})
	d.Plunger.Set(p.Handle())
	env.Sound("plunger", at)
	return p, true
}

// HitCart damages the cart.
func (env *Env) HitCart(cart *world.Entity) {
	d, ok := Cart(cart)
	if !ok || d.Dead {
		return
	}
	d.Hits++
	cart.State = world.StateHit
	env.Sound("cart-hit", cart.Pos)
	env.Animate(cart, "hit")
}

// CanFinish reports whether the cart left the visible area, which lets the
// level end.
func (env *Env) CanFinish(cart *world.Entity) bool {
	if env.Ctx == nil {
		return true
	}
	return !env.Ctx.Camera.Intersects(cart.Bounds())
}

// finishPlunger is called when the plunger is back on the cart: whatever it
// brought is taken.
func (env *Env) finishPlunger(cart, plunger *world.Entity) {
	pd, ok := plunger.Data.(*plungerData)
	if ok {
		if item, ok := pd.attracted.Get(env.World); ok {
			env.take(cart, item)
		}
	}
	if d, ok := Cart(cart); ok {
		d.Plunger.Clear()
	}
	env.Kill(plunger)
}

func (env *Env) take(cart, item *world.Entity) {
	item.Taken = true
	item.Attracted = false
	env.Moves.Detach(item.Handle())
	if d, ok := Cart(cart); ok {
		d.Taken++
	}

	if item.Kind == world.KindBalloon {
		env.balloonTaken(item)
		return
	}
	env.Kill(item)
}
