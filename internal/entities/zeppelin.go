package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

const (
	zeppelinFall   = 0.6
	hoverRadius    = 5.0
	hoverPeriod    = 5.0
	zeppelinBlasts = 3
)

var zeppelinSize = core.V(160, 60)

type zeppelinData struct {
	exploded bool
	timer    float64
	item     world.Link
}

func zeppelinOf(e *world.Entity) *zeppelinData {
	d, ok := e.Data.(*zeppelinData)
	if !ok {
		d = &zeppelinData{}
		e.Data = d
	}
	return d
}

// Carried returns the item a zeppelin still holds.
func (env *Env) Carried(zep *world.Entity) (*world.Entity, bool) {
	return zeppelinOf(zep).item.Get(env.World)
}

// Carries reports whether a zeppelin still holds an item. Other kinds never
// carry anything.
func Carries(l world.Lookup, zep *world.Entity) bool {
	d, ok := zep.Data.(*zeppelinData)
	if !ok {
		return false
	}
	_, ok = d.item.Get(l)
	return ok
}

// SpawnZeppelin creates a hovering zeppelin at pos carrying an item of the
// given kind under its gondola. KindNone spawns an empty zeppelin.
func (env *Env) SpawnZeppelin(pos core.Vec, carry world.Kind) *world.Entity {
	zep := env.Spawn(world.Spec{
		Kind:       world.KindZeppelin,
		Pos:        pos,
		Size:       zeppelinSize,
		Weightless: true,
		Mass:       20,
		Parts: []world.Part{
			{Name: "item", Offset: core.V(0, -zeppelinSize.Y/2-25)},
		},
		Data: &zeppelinData{},
	})
	env.Moves.Attach(zep.Handle(), movement.Movement{
		Root: &movement.Orbit{Center: movement.At(pos), Radius: hoverRadius, Period: hoverPeriod},
	})

	if carry == world.KindNone {
		return zep
	}
	spec := PropSpec(carry, zep.Mark("item"))
	spec.Transportable = true
	item := env.Spawn(spec)
	env.carry(zep, item)
	return zep
}

func (env *Env) carry(zep, item *world.Entity) {
	zeppelinOf(zep).item.Set(item.Handle())
	env.Moves.Attach(item.Handle(), movement.Movement{
		Root:       movement.Follow(item, zep),
		AutoRemove: true,
	})
}

// DropCarried releases the carried item, which inherits the zeppelin combo.
func (env *Env) DropCarried(zep *world.Entity) (*world.Entity, bool) {
	d := zeppelinOf(zep)
	item, ok := d.item.Get(env.World)
	d.item.Clear()
	if !ok {
		return nil, false
	}
	env.Moves.Detach(item.Handle())
	item.Combo = zep.Combo
	item.Transportable = false
	item.State = world.StateFall
	return item, true
}

type zeppelinBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newZeppelin(env *Env) *zeppelinBehavior {
	b := &zeppelinBehavior{env: env}
	b.rules = collision.New(
		collision.Rule{
			Name:   "cannonball",
			Match:  collision.All(collision.Is(world.KindCannonball), idle),
			Handle: env.shotBy(),
		},
		collision.On("plank", env.detonateBy(), world.KindPlank),
		collision.On("cart", b.hitCart, world.KindCart),
		collision.On("tar", b.hitTar, world.KindTar),
	).WithFallback(nil)
	return b
}

func (b *zeppelinBehavior) Progress(e *world.Entity, dt float64) {
	d := zeppelinOf(e)
	if !d.exploded {
		return
	}
	d.timer -= dt
	if d.timer <= 0 {
		b.env.Kill(e)
	}
}

func (b *zeppelinBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	b.rules.Dispatch(e, other, c)
}

// Removed destroys an item still hanging under the zeppelin.
func (b *zeppelinBehavior) Removed(e *world.Entity) {
	if item, ok := zeppelinOf(e).item.Get(b.env.World); ok {
		b.env.Kill(item)
	}
}

func (b *zeppelinBehavior) hitCart(zep, _ *world.Entity, _ collision.Contact) {
	if zeppelinOf(zep).exploded {
		return
	}
	zep.Combo = combo.Reset()
	b.detonate(zep)
}

// Tar only brings a zeppelin down when it lands on top of it.
func (b *zeppelinBehavior) hitTar(zep, tar *world.Entity, c collision.Contact) {
	if !c.Side.IsTop() || zeppelinOf(zep).exploded {
		return
	}
	chained(zep, tar)
	b.detonate(zep)
}

func (b *zeppelinBehavior) detonate(e *world.Entity) {
	d := zeppelinOf(e)
	if d.exploded {
		return
	}
	d.exploded = true
	d.timer = zeppelinFall
	env := b.env

	e.State = world.StateExplode
	env.Snapshot()
	env.DropCarried(e)
	env.Moves.Detach(e.Handle())
	e.Weightless = false

	env.Score(e, env.Cfg.Scoring.Zeppelin)
	for i := 0; i < zeppelinBlasts; i++ {
		off := core.V((env.Rand.Float64()-0.5)*e.Size.X, (env.Rand.Float64()-0.5)*e.Size.Y)
		env.Explode(e.Pos.Add(off), Blast{
			Level:    4,
			Duration: zeppelinFall,
			Combo:    e.Combo,
			Track:    e.Handle(),
		})
	}
	env.Animate(e, "explode")
}
