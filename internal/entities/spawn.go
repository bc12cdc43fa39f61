package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

const (
	blastStep       = 40.0 // Explosion radius per level
	defaultBlast    = 0.4
	plankLifetime   = 3.0
	splinterLife    = 2.0
	explodeDuration = 0.3 // Time an exploding prop stays before it is removed
)

// Blast describes an explosion to spawn.
type Blast struct {
	Level      int     // Radius is Level * 40 units
	Planks     int     // Planks thrown with the blast
	Duration   float64 // Seconds during which the blast hurts; 0.4 by default
	Combo      uint
	Track      world.Handle // Entity the blast follows, if any
	Decorative bool         // Purely visual, touches nothing
}

type explosionData struct {
	duration float64
}

type debrisData struct {
	lifetime float64
}

// Explode spawns an explosion centered on at.
func (env *Env) Explode(at core.Vec, b Blast) *world.Entity {
	if b.Level < 1 {
		b.Level = 1
	}
	if b.Duration <= 0 {
		b.Duration = defaultBlast
	}
	r := blastStep * float64(b.Level)

	spec := world.Spec{
		Kind:       world.KindExplosion,
		Pos:        at,
		Size:       core.V(2*r, 2*r),
		Weightless: true,
		Combo:      b.Combo,
		Data:       &explosionData{duration: b.Duration},
	}
	if b.Decorative {
		spec.Kind = world.KindDecoration
		spec.Name = "explosion"
		spec.Data = &debrisData{lifetime: b.Duration + env.Cfg.Explosion.Linger}
	}

	e := env.Spawn(spec)
	if ref, ok := env.World.Get(b.Track); ok {
		env.Moves.Attach(e.Handle(), movement.Movement{
			Root: movement.Follow(e, ref),
		})
	}
	if b.Planks > 0 {
		env.Planks(at, b.Planks, b.Combo)
	}
	if !b.Decorative {
		env.Sound("explosion", at)
	}
	return e
}

// InExplosion reports whether an explosion is still inside its blast window.
func InExplosion(e *world.Entity) bool {
	d, ok := e.Data.(*explosionData)
	if !ok || e.Kind != world.KindExplosion {
		return false
	}
	return e.Age <= d.duration
}

// Planks throws a batch of planks carrying combo c.
func (env *Env) Planks(at core.Vec, n int, c uint) {
	for i := 0; i < n; i++ {
		env.Spawn(world.Spec{
			Kind:  world.KindPlank,
			Pos:   at,
			Size:  core.V(30, 8),
			Vel:   core.V(-300+600*env.Rand.Float64(), 200+500*env.Rand.Float64()),
			Angle: 6.28 * env.Rand.Float64(),
			Combo: c,
			Data:  &debrisData{lifetime: plankLifetime},
		})
	}
}

// Splinters throws n decorative fragments. Rightward ones fly both ways,
// others only backward.
func (env *Env) Splinters(at core.Vec, n int, rightward bool) {
	for i := 0; i < n; i++ {
		vx := -500 * env.Rand.Float64()
		if rightward {
			vx = -250 + 500*env.Rand.Float64()
		}
		env.Spawn(world.Spec{
			Kind: world.KindDecoration,
			Name: "splinter",
			Pos:  at,
			Size: core.V(6, 6),
			Vel:  core.V(vx, 200+500*env.Rand.Float64()),
			Data: &debrisData{lifetime: splinterLife},
		})
	}
}

// Throw spawns a named decorative element flying away from at.
func (env *Env) Throw(at core.Vec, name string, vel core.Vec) *world.Entity {
	return env.Spawn(world.Spec{
		Kind: world.KindDecoration,
		Name: name,
		Pos:  at,
		Size: core.V(20, 20),
		Vel:  vel,
		Data: &debrisData{lifetime: plankLifetime},
	})
}
