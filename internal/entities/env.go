// Package entities implements the gameplay behavior of every entity kind:
// how it advances each tick and how it reacts when it touches another
// entity.
//
// Behaviors never hold pointers to other entities across ticks. They keep
// handles or world.Links and resolve them on use, so an entity leaving the
// world only ever shows up as an absent reference.
package entities

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// ErrMissingPlunger is returned when an attracted item is created without
// the plunger holding it.
var ErrMissingPlunger = errors.New("entities: attracted item needs a plunger")

// Behavior drives one entity kind.
type Behavior interface {
	// Progress advances e by dt seconds.
	Progress(e *world.Entity, dt float64)
	// Collide resolves a contact between e and other, seen from e.
	Collide(e, other *world.Entity, c collision.Contact)
}

// Remover is implemented by behaviors that clean up when their entity
// leaves the world.
type Remover interface {
	Removed(e *world.Entity)
}

// Effects plays sounds and animations requested by handlers.
type Effects interface {
	Sound(name string, at core.Vec)
	Animation(h world.Handle, name string)
}

// Observer is told when a noteworthy action happens on screen.
type Observer interface {
	ActionSnapshot(w *world.World, camera core.Rect)
}

type nopEffects struct{}

func (nopEffects) Sound(string, core.Vec) {}

func (nopEffects) Animation(world.Handle, string) {}

// Env is everything behaviors share during a run.
type Env struct {
	World    *world.World
	Moves    *movement.Composer
	Ledger   combo.Ledger
	Effects  Effects
	Observer Observer
	Ctx      *core.SimContext
	Rand     *rand.Rand
	Cfg      config.Config

	behaviors map[world.Kind]Behavior
}

// NewEnv creates an environment with the built-in behaviors registered.
// Effects and Observer may be set afterward; nil values are ignored.
func NewEnv(w *world.World, moves *movement.Composer, ledger combo.Ledger, ctx *core.SimContext, cfg config.Config, seed int64) *Env {
	env := &Env{
		World:     w,
		Moves:     moves,
		Ledger:    ledger,
		Effects:   nopEffects{},
		Ctx:       ctx,
		Rand:      rand.New(rand.NewSource(seed)),
		Cfg:       cfg,
		behaviors: make(map[world.Kind]Behavior),
	}

	env.Register(world.KindCart, newCart(env))
	env.Register(world.KindCannonball, newCannonball(env))
	env.Register(world.KindPlunger, newPlunger(env))
	env.Register(world.KindCrate, newCrate(env))
	env.Register(world.KindTNT, newTNT(env))
	env.Register(world.KindBomb, newBomb(env))
	env.Register(world.KindBalloon, newBalloon(env))
	env.Register(world.KindZeppelin, newZeppelin(env))
	env.Register(world.KindPlank, newDebris(env))
	env.Register(world.KindDecoration, newDebris(env))
	env.Register(world.KindExplosion, newExplosion(env))
	env.Register(world.KindTar, newTar(env))
	env.Register(world.KindWall, newWall(env))
	env.Register(world.KindBonus, newBonus(env))
	env.Register(world.KindObstacle, newObstacle(env))
	return env
}

// Register installs the behavior of a kind, replacing any previous one.
func (env *Env) Register(k world.Kind, b Behavior) {
	env.behaviors[k] = b
}

// Behavior returns the behavior registered for a kind.
func (env *Env) Behavior(k world.Kind) (Behavior, bool) {
	b, ok := env.behaviors[k]
	return b, ok
}

// Progress advances one entity.
func (env *Env) Progress(e *world.Entity, dt float64) {
	e.Age += dt
	if b, ok := env.behaviors[e.Kind]; ok {
		b.Progress(e, dt)
	}
}

// Collide resolves one side of a contact. Entities that already left the
// world are skipped.
func (env *Env) Collide(self, other *world.Entity, c collision.Contact) {
	if self.Gone() || other.Gone() {
		return
	}
	if b, ok := env.behaviors[self.Kind]; ok {
		b.Collide(self, other, c)
	}
}

// Removed notifies the behavior of an entity swept from the world.
func (env *Env) Removed(e *world.Entity) {
	if b, ok := env.behaviors[e.Kind]; ok {
		if r, ok := b.(Remover); ok {
			r.Removed(e)
		}
	}
}

// Spawn creates an entity and returns it.
func (env *Env) Spawn(spec world.Spec) *world.Entity {
	e, _ := env.World.Get(env.World.Spawn(spec))
	return e
}

// Kill removes e from the world and releases its movement.
func (env *Env) Kill(e *world.Entity) {
	env.Moves.Detach(e.Handle())
	env.World.Destroy(e.Handle())
}

// Score reports a floating score awarded by e at its current combo.
func (env *Env) Score(e *world.Entity, points int) {
	combo.Floating(env.Ledger, e.Combo, points, true)
}

// Sound requests a sound effect.
func (env *Env) Sound(name string, at core.Vec) {
	if env.Effects != nil {
		env.Effects.Sound(name, at)
	}
}

// Animate requests an animation on e.
func (env *Env) Animate(e *world.Entity, name string) {
	if env.Effects != nil {
		env.Effects.Animation(e.Handle(), name)
	}
}

// Snapshot tells the observer that something worth capturing happened.
func (env *Env) Snapshot() {
	if env.Observer != nil {
		env.Observer.ActionSnapshot(env.World, env.Ctx.Camera)
	}
}

// Cart returns the player cart, if any.
func (env *Env) Cart() (*world.Entity, bool) {
	return env.World.Find(world.KindCart)
}

// Transition reports whether the boss cut-scene is running.
func (env *Env) Transition() bool {
	return env.Ctx != nil && env.Ctx.BossTransition
}
