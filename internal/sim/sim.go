// Package sim drives a run: it owns the world and every collaborator the
// gameplay packages consume, and advances them one tick at a time.
//
// A tick runs behaviors, then scripted movements, then integrates free
// entities and resolves the overlaps found at their new positions. The
// camera follows the cart, entities left far behind are dropped and removed
// entities are swept last so handlers always see a consistent world.
package sim

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-coaster/internal/boss"
	"github.com/vovakirdan/tui-coaster/internal/broadphase"
	"github.com/vovakirdan/tui-coaster/internal/capture"
	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Awards kept by the tally for the HUD.
const keptAwards = 8

// Speed bounds of the time scale changed by Faster and Slower.
const (
	minScale = 0.25
	maxScale = 4
)

// Options configures a run.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Logger  *log.Logger // nil discards
}

// Sim is one run of a scenario.
type Sim struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	logger  *log.Logger

	world   *world.World
	moves   *movement.Composer
	tally   *combo.Tally
	env     *entities.Env
	ctx     core.SimContext
	space   *broadphase.Space
	capture *capture.Observer
	fx      *effects

	cart   world.Handle
	boss   *boss.Boss
	length float64

	exports []capture.Result

	ticks  int
	scale  float64
	paused bool
	over   bool
}

// New creates an empty run. Scenarios populate it through SpawnCart,
// SpawnBoss and Env.
func New(opts Options) *Sim {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	s := &Sim{
		cfg:     opts.Config,
		runtime: rt,
		logger:  logger,
		world:   world.New(),
		moves:   movement.NewComposer(),
		tally:   combo.NewTally(keptAwards),
		space:   broadphase.New(),
		capture: capture.New(logger),
		fx:      &effects{},
		length:  opts.Config.Sim.LevelLength,
		scale:   1,
	}
	s.ctx.Camera = core.NewRect(0, 0, s.cfg.Sim.CameraW, s.cfg.Sim.CameraH)
	s.env = entities.NewEnv(s.world, s.moves, s.tally, &s.ctx, s.cfg, rt.Seed)
	s.env.Effects = s.fx
	s.env.Observer = s.capture
	boss.Install(s.env)
	return s
}

// Env returns the environment shared by behaviors.
func (s *Sim) Env() *entities.Env { return s.env }

// World returns the simulated world.
func (s *Sim) World() *world.World { return s.world }

// Context returns the level flags. Scenarios set them before spawning.
func (s *Sim) Context() *core.SimContext { return &s.ctx }

// Tally returns the score ledger.
func (s *Sim) Tally() *combo.Tally { return s.tally }

// Capture returns the best-action observer.
func (s *Sim) Capture() *capture.Observer { return s.capture }

// Logger returns the run logger.
func (s *Sim) Logger() *log.Logger { return s.logger }

// Ticks returns the number of ticks simulated.
func (s *Sim) Ticks() int { return s.ticks }

// Scale returns the time scale applied by Tick.
func (s *Sim) Scale() float64 { return s.scale }

// SetLength sets the distance the cart travels before the level ends.
// Zero or less means the level never ends by distance.
func (s *Sim) SetLength(x float64) { s.length = x }

// SpawnCart puts the player cart on the rail at x, moving at the configured
// speed, and centers the camera on it.
func (s *Sim) SpawnCart(x float64) *world.Entity {
	cart := s.env.Spawn(entities.CartSpec(x, s.cfg.Sim.CartSpeed))
	s.cart = cart.Handle()
	s.follow()
	return cart
}

// Cart returns the player cart.
func (s *Sim) Cart() (*world.Entity, bool) {
	return s.world.Get(s.cart)
}

// SpawnBoss starts the boss encounter with the boss centered on pos.
func (s *Sim) SpawnBoss(pos core.Vec) (*boss.Boss, error) {
	cart, _ := s.Cart()
	s.ctx.BossLevel = true
	b, err := boss.New(s.env, pos, cart)
	if err != nil {
		s.logger.Warn("boss skipped", "error", err)
		return nil, fmt.Errorf("sim: spawn boss: %w", err)
	}
	b.OnPhase = func(from, to boss.Phase) {
		s.logger.Info("boss phase", "from", from, "to", to, "hits", b.Hits())
		if to == boss.PhaseEnd {
			s.ctx.LevelEnding = true
		}
	}
	s.boss = b
	s.logger.Debug("boss spawned", "pos", pos, "transition", b.Transition(), "module", s.ctx.ModuleSerial)
	return b, nil
}

// Boss returns the boss of the level, if any.
func (s *Sim) Boss() (*boss.Boss, bool) {
	return s.boss, s.boss != nil
}

// Apply handles the player actions of one frame.
func (s *Sim) Apply(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionFaster) {
		s.scale = core.ClampF(s.scale*2, minScale, maxScale)
	}
	if in.Has(core.ActionSlower) {
		s.scale = core.ClampF(s.scale/2, minScale, maxScale)
	}
	if s.over {
		return
	}

	cart, ok := s.Cart()
	if !ok {
		return
	}
	if in.Has(core.ActionAimUp) {
		entities.Aim(cart, s.cfg.Cart.AimStep)
	}
	if in.Has(core.ActionAimDown) {
		entities.Aim(cart, -s.cfg.Cart.AimStep)
	}
	if in.Has(core.ActionFire) {
		s.env.Fire(cart)
	}
	if in.Has(core.ActionPlunger) {
		s.env.LaunchPlunger(cart)
	}
}

// Tick applies in and advances the run by one tick of the configured rate,
// scaled by the current time scale. While paused only the Step action
// advances the run.
func (s *Sim) Tick(in core.InputFrame) core.StepResult {
	s.Apply(in)
	if s.paused && !in.Has(core.ActionStep) {
		return core.StepResult{State: s.State()}
	}
	return s.Step(s.runtime.Dt() * s.scale)
}

// Step advances the run by dt seconds.
func (s *Sim) Step(dt float64) core.StepResult {
	if s.over {
		return core.StepResult{State: s.State()}
	}
	s.ticks++
	s.ctx.Time += dt

	for _, h := range s.world.Handles() {
		if e, ok := s.world.Get(h); ok {
			s.env.Progress(e, dt)
		}
	}
	s.moves.Update(s.world, dt)

	g := s.cfg.Sim.Gravity
	s.world.Each(func(e *world.Entity) {
		if s.free(e) && !e.Weightless {
			e.Vel.Y -= g * dt
		}
	})
	for _, o := range s.space.Step(s.world, dt, s.free) {
		s.resolve(o)
	}

	s.syncTransition()
	s.follow()
	s.cull()
	s.ground()
	s.sweep()
	s.capture.Drain(s.exported)
	s.checkOver()

	return core.StepResult{State: s.State(), Events: s.fx.drain()}
}

// free reports whether the physics space integrates e. The boss and
// scripted entities place themselves.
func (s *Sim) free(e *world.Entity) bool {
	return !e.Static && e.Kind != world.KindBoss && !s.moves.Attached(e.Handle())
}

// resolve runs both sides of an overlap, older entity first.
func (s *Sim) resolve(o broadphase.Overlap) {
	a, okA := s.world.Get(o.A)
	b, okB := s.world.Get(o.B)
	if !okA || !okB {
		return
	}
	s.env.Collide(a, b, collision.Between(a, b, o.PartA, o.PartB))
	s.env.Collide(b, a, collision.Between(b, a, o.PartB, o.PartA))
}

func (s *Sim) syncTransition() {
	if s.boss == nil || !s.ctx.BossTransition || s.boss.Transition() {
		return
	}
	s.ctx.BossTransition = false
	s.logger.Info("boss transition over", "module", s.ctx.ModuleSerial)
}

// follow keeps the cart in the left quarter of the view. The camera stops
// once the level ends so the cart can drive out of it.
func (s *Sim) follow() {
	if s.ctx.LevelEnding {
		return
	}
	cart, ok := s.Cart()
	if !ok {
		return
	}
	w, h := s.cfg.Sim.CameraW, s.cfg.Sim.CameraH
	s.ctx.Camera = core.NewRect(cart.Pos.X-w/4, 0, w, h)
}

// cull drops entities left more than half a screen behind the camera.
func (s *Sim) cull() {
	limit := s.ctx.Camera.Left() - s.ctx.Camera.W/2
	s.world.Each(func(e *world.Entity) {
		if e.Kind == world.KindCart || e.Kind == world.KindBoss {
			return
		}
		if e.Bounds().Right() < limit {
			s.env.Kill(e)
		}
	})
}

// ground keeps falling entities above y = 0.
func (s *Sim) ground() {
	s.world.Each(func(e *world.Entity) {
		if !s.free(e) || e.Weightless {
			return
		}
		if bottom := e.Pos.Y - e.Size.Y/2; bottom < 0 {
			e.Pos.Y = e.Size.Y / 2
			if e.Vel.Y < 0 {
				e.Vel.Y = 0
			}
		}
	})
}

// sweep recycles removed entities. Cleanup handlers may remove more, so
// it runs until nothing is left.
func (s *Sim) sweep() {
	for {
		gone := s.world.Sweep()
		if len(gone) == 0 {
			return
		}
		for _, e := range gone {
			s.env.Removed(e)
			s.space.Remove(e.Handle())
		}
	}
}

func (s *Sim) checkOver() {
	cart, ok := s.Cart()
	if !ok {
		s.finish("cart lost")
		return
	}
	if !s.ctx.LevelEnding && !s.ctx.BossLevel && s.length > 0 && cart.Pos.X >= s.length {
		s.ctx.LevelEnding = true
		s.logger.Debug("level ending", "x", cart.Pos.X)
	}
	if s.ctx.LevelEnding && s.env.CanFinish(cart) {
		s.finish("level finished")
	}
}

func (s *Sim) finish(reason string) {
	s.over = true
	s.logger.Info("run over", "reason", reason, "ticks", s.ticks, "score", s.tally.Total(), "combo", s.tally.BestCombo())
}

// End stops the run, as when its time runs out.
func (s *Sim) End() {
	if !s.over {
		s.finish("stopped")
	}
}

// Over reports whether the run ended.
func (s *Sim) Over() bool { return s.over }

// State returns the score summary of the run.
func (s *Sim) State() core.GameState {
	return core.GameState{
		Score:    s.tally.Total(),
		Combo:    s.tally.BestCombo(),
		GameOver: s.over,
		Paused:   s.paused,
	}
}

// Export writes the best action of the run in the background when capture
// is enabled. Results are logged on a later tick or by Close.
func (s *Sim) Export() bool {
	if !s.cfg.Capture.Enabled {
		return false
	}
	dir, err := config.ExpandHome(s.cfg.Capture.Dir)
	if err != nil {
		s.logger.Warn("capture dir", "error", err)
		return false
	}
	return s.capture.Export(dir, func(sc capture.Scene) string {
		return capture.Frame(sc, s.runtime.ScreenW, s.runtime.ScreenH)
	})
}

// Close waits for pending exports and returns every export of the run.
func (s *Sim) Close() []capture.Result {
	s.capture.Wait()
	s.capture.Drain(s.exported)
	return s.exports
}

func (s *Sim) exported(r capture.Result) {
	s.exports = append(s.exports, r)
	if r.Err != nil {
		s.logger.Error("capture export failed", "error", r.Err)
		return
	}
	s.logger.Info("best action saved", "path", r.Path, "value", r.Value)
}
