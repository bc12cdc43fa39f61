package collision

import (
	"testing"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

func spawn(w *world.World, k world.Kind, pos core.Vec) *world.Entity {
	e, _ := w.Get(w.Spawn(world.Spec{Kind: k, Pos: pos, Size: core.V(10, 10)}))
	return e
}

func TestFirstMatchWins(t *testing.T) {
	w := world.New()
	self := spawn(w, world.KindCrate, core.V(0, 0))
	other := spawn(w, world.KindCannonball, core.V(5, 0))

	var calls []string
	d := New(
		On("cart", func(_, _ *world.Entity, _ Contact) { calls = append(calls, "cart") }, world.KindCart),
		On("cannonball", func(_, _ *world.Entity, _ Contact) { calls = append(calls, "cannonball") }, world.KindCannonball),
		Rule{
			Name:   "anything",
			Match:  func(*world.Entity) bool { return true },
			Handle: func(_, _ *world.Entity, _ Contact) { calls = append(calls, "anything") },
		},
	)

	name, ok := d.Dispatch(self, other, Between(self, other, "", ""))
	if !ok || name != "cannonball" {
		t.Errorf("Dispatch() = %q, %v, expected cannonball, true", name, ok)
	}
	if len(calls) != 1 || calls[0] != "cannonball" {
		t.Errorf("handlers called = %v, expected only cannonball", calls)
	}
}

func TestFallbackOnUnmatched(t *testing.T) {
	w := world.New()
	self := spawn(w, world.KindCrate, core.V(0, 0))
	other := spawn(w, world.KindWall, core.V(5, 0))

	fell := false
	d := New(On("cart", func(_, _ *world.Entity, _ Contact) {}, world.KindCart)).
		WithFallback(func(_, _ *world.Entity, _ Contact) { fell = true })

	if _, ok := d.Dispatch(self, other, Contact{}); ok {
		t.Error("Dispatch() matched, expected fallback")
	}
	if !fell {
		t.Error("fallback should run when no rule matches")
	}
}

func TestNilFallbackIgnores(t *testing.T) {
	w := world.New()
	self := spawn(w, world.KindCrate, core.V(0, 0))
	other := spawn(w, world.KindWall, core.V(5, 0))
	self.Vel = core.V(10, 0)

	New().WithFallback(nil).Dispatch(self, other, Between(self, other, "", ""))
	if self.Vel != core.V(10, 0) {
		t.Errorf("velocity changed to %v without fallback", self.Vel)
	}
}

func TestBounceReflectsApproachingVelocity(t *testing.T) {
	w := world.New()
	self := spawn(w, world.KindCannonball, core.V(0, 0))
	other := spawn(w, world.KindWall, core.V(8, 0))

	self.Vel = core.V(10, 3)
	Bounce(self, other, Between(self, other, "", ""))
	if self.Vel != core.V(-10, 3) {
		t.Errorf("Bounce() velocity = %v, expected (-10, 3)", self.Vel)
	}

	// Moving away already: untouched.
	Bounce(self, other, Between(self, other, "", ""))
	if self.Vel != core.V(-10, 3) {
		t.Errorf("second Bounce() velocity = %v, expected unchanged", self.Vel)
	}
}

func TestBounceIgnoresStatic(t *testing.T) {
	w := world.New()
	self := spawn(w, world.KindWall, core.V(0, 0))
	other := spawn(w, world.KindCannonball, core.V(8, 0))
	self.Static = true
	self.Vel = core.V(1, 0)

	Bounce(self, other, Between(self, other, "", ""))
	if self.Vel != core.V(1, 0) {
		t.Errorf("static entity velocity changed to %v", self.Vel)
	}
}

func TestBetweenUsesParts(t *testing.T) {
	w := world.New()
	h := w.Spawn(world.Spec{
		Kind: world.KindBoss,
		Pos:  core.V(0, 0),
		Size: core.V(90, 90),
		Parts: []world.Part{
			{Name: "trap", Offset: core.V(0, -40), Size: core.V(30, 10)},
		},
	})
	boss, _ := w.Get(h)
	ball := spawn(w, world.KindCannonball, core.V(0, -45))

	c := Between(boss, ball, "trap", "")
	if c.Part != "trap" {
		t.Errorf("Part = %q, expected trap", c.Part)
	}
	if !c.Side.IsBottom() {
		t.Errorf("Side = %v, expected a bottom side of the trap", c.Side)
	}
	if c.Normal.Y >= 0 {
		t.Errorf("Normal = %v, expected pointing down", c.Normal)
	}
}

func TestPredicates(t *testing.T) {
	w := world.New()
	crate := spawn(w, world.KindCrate, core.V(0, 0))
	crate.Attracted = true

	attracted := func(e *world.Entity) bool { return e.Attracted }

	tests := []struct {
		name     string
		pred     Predicate
		expected bool
	}{
		{"is crate", Is(world.KindCrate), true},
		{"is bomb or tnt", Is(world.KindBomb, world.KindTNT), false},
		{"crate and attracted", All(Is(world.KindCrate), attracted), true},
		{"crate and not attracted", All(Is(world.KindCrate), Not(attracted)), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred(crate); got != tc.expected {
				t.Errorf("predicate = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestDeflectKeepsSpeed(t *testing.T) {
	w := world.New()
	ball := spawn(w, world.KindCannonball, core.V(0, 0))
	ball.Vel = core.V(3, 4)

	Deflect(ball, core.V(0, -1))
	if ball.Vel != core.V(0, -5) {
		t.Errorf("Deflect() velocity = %v, expected (0, -5)", ball.Vel)
	}
}
