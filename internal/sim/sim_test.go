package sim

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-coaster/internal/boss"
	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

const dt = 1.0 / 60

func newSim(t *testing.T) *Sim {
	t.Helper()
	return New(Options{Config: config.Default(), Runtime: core.RuntimeConfig{TickRate: 60, Seed: 1}})
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func (s *Sim) runFor(seconds float64) {
	for t := 0.0; t < seconds && !s.Over(); t += dt {
		s.Step(dt)
	}
}

func TestStepMovesCartAndCamera(t *testing.T) {
	s := newSim(t)
	cart := s.SpawnCart(100)

	s.Step(0.5)

	if math.Abs(cart.Pos.X-200) > 1e-6 {
		t.Errorf("cart X = %v, expected 200", cart.Pos.X)
	}
	if got := s.Context().Camera.Left(); math.Abs(got-(200-1600.0/4)) > 1e-6 {
		t.Errorf("camera left = %v, expected %v", got, 200-1600.0/4)
	}
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", s.Ticks())
	}
}

func TestPropsFallToTheGround(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)
	crate := s.Env().Spawn(entities.PropSpec(world.KindCrate, core.V(1500, 200)))

	s.runFor(2)

	if crate.Gone() {
		t.Fatal("crate was removed")
	}
	if crate.Pos.Y != 20 {
		t.Errorf("crate Y = %v, expected 20", crate.Pos.Y)
	}
	if crate.Vel.Y != 0 {
		t.Errorf("crate Vel.Y = %v, expected 0", crate.Vel.Y)
	}
}

func TestApplyFiresCannon(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)

	res := s.Tick(frame(core.ActionFire))
	if n := s.World().Count(world.KindCannonball); n != 1 {
		t.Fatalf("cannonballs = %d, expected 1", n)
	}
	found := false
	for _, ev := range res.Events {
		if ev == "sound:cannon" {
			found = true
		}
	}
	if !found {
		t.Errorf("Events = %v, expected the cannon sound", res.Events)
	}

	s.Tick(frame(core.ActionFire))
	if n := s.World().Count(world.KindCannonball); n != 1 {
		t.Errorf("cannonballs during cooldown = %d, expected 1", n)
	}
}

func TestAimStaysInRange(t *testing.T) {
	s := newSim(t)
	cart := s.SpawnCart(100)
	d, _ := entities.Cart(cart)

	for i := 0; i < 100; i++ {
		s.Apply(frame(core.ActionAimUp))
	}
	if d.Aim != math.Pi/2 {
		t.Errorf("Aim = %v, expected %v", d.Aim, math.Pi/2)
	}
	for i := 0; i < 100; i++ {
		s.Apply(frame(core.ActionAimDown))
	}
	if d.Aim != 0 {
		t.Errorf("Aim = %v, expected 0", d.Aim)
	}
}

func TestPauseAndStep(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)

	if res := s.Tick(frame(core.ActionPause)); !res.State.Paused {
		t.Fatal("Tick(Pause) did not pause")
	}
	if s.Ticks() != 0 {
		t.Errorf("Ticks() = %d while paused, expected 0", s.Ticks())
	}
	s.Tick(frame(core.ActionStep))
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d after a step, expected 1", s.Ticks())
	}
	s.Tick(core.NewInputFrame())
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", s.Ticks())
	}
	if res := s.Tick(frame(core.ActionPause)); res.State.Paused {
		t.Error("second Tick(Pause) did not resume")
	}
}

func TestTimeScale(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		want    float64
	}{
		{"default", nil, 1},
		{"faster", []core.Action{core.ActionFaster}, 2},
		{"fastest", []core.Action{core.ActionFaster, core.ActionFaster, core.ActionFaster}, maxScale},
		{"slowest", []core.Action{core.ActionSlower, core.ActionSlower, core.ActionSlower}, minScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSim(t)
			for _, a := range tt.actions {
				s.Apply(frame(a))
			}
			if s.Scale() != tt.want {
				t.Errorf("Scale() = %v, expected %v", s.Scale(), tt.want)
			}
		})
	}
}

func TestLevelEndsWhenCartLeavesView(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)
	s.SetLength(200)

	s.runFor(30)

	if !s.Context().LevelEnding {
		t.Error("LevelEnding not set")
	}
	if !s.Over() {
		t.Fatal("run not over after the cart left the view")
	}
	ticks := s.Ticks()
	s.Step(dt)
	if s.Ticks() != ticks {
		t.Error("Step() advanced a finished run")
	}
}

func TestSpawnBossWithoutCart(t *testing.T) {
	s := newSim(t)
	_, err := s.SpawnBoss(core.V(700, 335))
	if !errors.Is(err, boss.ErrMissingCart) {
		t.Errorf("SpawnBoss() error = %v, expected ErrMissingCart", err)
	}
	if _, ok := s.Boss(); ok {
		t.Error("Boss() found a boss")
	}
}

func TestBeatenBossEndsLevel(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)
	b, err := s.SpawnBoss(core.V(700, 335))
	if err != nil {
		t.Fatalf("SpawnBoss() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		b.Hit(nil)
	}
	if b.Phase() != boss.PhaseDead {
		t.Fatalf("Phase() = %v, expected dead", b.Phase())
	}

	s.runFor(40)

	if b.Phase() != boss.PhaseEnd {
		t.Errorf("Phase() = %v, expected end", b.Phase())
	}
	if !s.Over() {
		t.Error("run not over after the boss ended")
	}
	if want := 3 * config.Default().Scoring.BossHit; s.State().Score < want {
		t.Errorf("Score = %d, expected at least %d", s.State().Score, want)
	}
}

func TestTransitionFlagClears(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)
	s.Context().BossTransition = true
	s.Context().ModuleSerial = 2
	b, err := s.SpawnBoss(core.V(700, 335))
	if err != nil {
		t.Fatalf("SpawnBoss() error = %v", err)
	}
	if !b.Transition() {
		t.Fatal("boss did not start in transition")
	}

	s.runFor(25)

	if b.Transition() {
		t.Error("boss still in transition")
	}
	if s.Context().BossTransition {
		t.Error("BossTransition still set")
	}
}

func TestAutopilotShoots(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)
	s.Env().Spawn(entities.OnGround(world.KindCrate, 1000))
	pilot := NewAutopilot(s)

	shot := false
	for i := 0; i < 180 && !shot; i++ {
		s.Tick(pilot.Decide())
		shot = s.World().Count(world.KindCannonball)+s.World().Count(world.KindPlunger) > 0
	}
	if !shot {
		t.Error("autopilot never shot")
	}
}

func TestRenderShowsHUD(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)
	screen := core.NewScreen(80, 24)

	s.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Errorf("Render() has no score:\n%s", out)
	}
	if !strings.Contains(out, "=") {
		t.Errorf("Render() does not show the cart:\n%s", out)
	}
}

func TestExportDisabledByDefault(t *testing.T) {
	s := newSim(t)
	s.SpawnCart(100)
	s.Env().Snapshot()
	if s.Export() {
		t.Error("Export() ran with capture disabled")
	}
}

func TestExportWritesBestAction(t *testing.T) {
	cfg := config.Default()
	cfg.Capture.Enabled = true
	cfg.Capture.Dir = t.TempDir()
	s := New(Options{Config: cfg, Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 12}})
	s.SpawnCart(100)
	s.Env().Spawn(entities.OnGround(world.KindCrate, 400))
	s.Env().Snapshot()

	if !s.Export() {
		t.Fatal("Export() refused")
	}
	res := s.Close()
	if len(res) != 1 || res[0].Err != nil || res[0].Path == "" {
		t.Fatalf("Close() = %+v, expected one written scene", res)
	}

	best, ok := s.Capture().Best()
	if !ok || best.Value != 10 {
		t.Errorf("Best() = %+v, %v, expected value 10", best, ok)
	}
}
