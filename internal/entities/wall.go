package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

const (
	wallZones     = 3
	wallBreakHits = 3
	wallSplinters = 5
	wallRubble    = 30
)

type wallData struct {
	impacts  [wallZones]int
	exploded bool
	blasts   map[world.Handle]bool // Explosions already counted
}

func wallOf(e *world.Entity) *wallData {
	d, ok := e.Data.(*wallData)
	if !ok {
		d = &wallData{}
		e.Data = d
	}
	return d
}

// Impacts returns the hits taken by each zone of a wall, bottom first.
func Impacts(wall *world.Entity) [3]int {
	return wallOf(wall).impacts
}

type wallBehavior struct {
	env   *Env
	rules *collision.Dispatcher
}

func newWall(env *Env) *wallBehavior {
	b := &wallBehavior{env: env}
	b.rules = collision.New(
		collision.On("cart", b.hitCart, world.KindCart),
		collision.On("cannonball", b.shot, world.KindCannonball),
		collision.Rule{
			Name:   "explosion",
			Match:  collision.All(collision.Is(world.KindExplosion), inBlast),
			Handle: b.blast,
		},
		collision.On("tnt", b.hitTNT, world.KindTNT),
		collision.On("tar", b.hitTar, world.KindTar),
	).WithFallback(nil)
	return b
}

func (b *wallBehavior) Progress(*world.Entity, float64) {}

func (b *wallBehavior) Collide(e, other *world.Entity, c collision.Contact) {
	if wallOf(e).exploded {
		return
	}
	b.rules.Dispatch(e, other, c)
}

func (b *wallBehavior) hitCart(_, cart *world.Entity, _ collision.Contact) {
	b.env.HitCart(cart)
}

func (b *wallBehavior) shot(wall, ball *world.Entity, _ collision.Contact) {
	wall.Combo = combo.Next(ball.Combo, true)
	b.env.hitWall(wall, ball.Pos.Y, ball.Pos.Y)
	b.env.Kill(ball)
}

// Blasts centered on the wall itself do not count; an explosion is counted
// once however long it overlaps.
func (b *wallBehavior) blast(wall, ex *world.Entity, c collision.Contact) {
	if c.Side == core.SideMiddle {
		return
	}
	d := wallOf(wall)
	if d.blasts[ex.Handle()] {
		return
	}
	if d.blasts == nil {
		d.blasts = make(map[world.Handle]bool)
	}
	d.blasts[ex.Handle()] = true

	chained(wall, ex)
	r := ex.Bounds()
	b.env.hitWall(wall, r.Bottom(), r.Top())
}

func (b *wallBehavior) hitTNT(wall, tnt *world.Entity, _ collision.Contact) {
	if Exploded(tnt) {
		return
	}
	chained(tnt, wall)
	b.env.Detonate(tnt)
}

func (b *wallBehavior) hitTar(_, tar *world.Entity, _ collision.Contact) {
	b.env.Detonate(tar)
}

// hitWall damages every zone of the wall overlapped by [bottom, top].
// A zone hit three times brings the whole wall down.
func (env *Env) hitWall(wall *world.Entity, bottom, top float64) {
	d := wallOf(wall)
	if d.exploded {
		return
	}

	r := wall.Bounds()
	step1 := r.Bottom() + r.H/3
	step2 := r.Bottom() + 2*r.H/3
	lo, hi := wallZone(bottom, step1, step2), wallZone(top, step1, step2)

	broken := false
	for z := lo; z <= hi; z++ {
		d.impacts[z]++
		if d.impacts[z] >= wallBreakHits {
			broken = true
		}
	}

	at := core.V(r.Left(), core.ClampF((bottom+top)/2, r.Bottom(), r.Top()))
	if !broken {
		env.Splinters(at, wallSplinters, false)
		env.Sound("wall-hit", at)
		env.Animate(wall, "hit")
		return
	}

	d.exploded = true
	wall.State = world.StateExplode
	env.Snapshot()
	env.Score(wall, env.Cfg.Scoring.Wall)
	env.Splinters(r.Center(), wallRubble, true)
	env.Sound("wall-break", r.Center())
	env.Kill(wall)
}

func wallZone(y, step1, step2 float64) int {
	switch {
	case y < step1:
		return 0
	case y < step2:
		return 1
	default:
		return 2
	}
}
