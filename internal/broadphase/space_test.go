package broadphase

import (
	"testing"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

func always(*world.Entity) bool { return true }

func never(*world.Entity) bool { return false }

func box(w *world.World, k world.Kind, pos, size core.Vec) *world.Entity {
	e, _ := w.Get(w.Spawn(world.Spec{Kind: k, Pos: pos, Size: size}))
	return e
}

func TestStepReportsOverlaps(t *testing.T) {
	tests := []struct {
		name string
		at   core.Vec
		want int
	}{
		{"overlapping", core.V(110, 100), 1},
		{"apart", core.V(300, 100), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.New()
			a := box(w, world.KindCrate, core.V(100, 100), core.V(40, 40))
			b := box(w, world.KindCannonball, tt.at, core.V(16, 16))

			got := New().Step(w, 1.0/60, never)
			if len(got) != tt.want {
				t.Fatalf("Step() = %v, expected %d overlaps", got, tt.want)
			}
			if tt.want == 0 {
				return
			}
			if got[0].A != a.Handle() || got[0].B != b.Handle() {
				t.Errorf("overlap = %v, expected older entity first", got[0])
			}
		})
	}
}

func TestStepReportsTouchedPart(t *testing.T) {
	w := world.New()
	boss, _ := w.Get(w.Spawn(world.Spec{
		Kind: world.KindBoss,
		Pos:  core.V(0, 0),
		Size: core.V(300, 200),
		Parts: []world.Part{
			{Name: "cabin", Offset: core.V(0, 20), Size: core.V(200, 100)},
			{Name: "trap", Offset: core.V(40, -55), Size: core.V(60, 10)},
			{Name: "item", Offset: core.V(40, -75)},
		},
	}))
	box(w, world.KindCannonball, core.V(40, -60), core.V(16, 8))

	got := New().Step(w, 1.0/60, never)
	if len(got) != 1 {
		t.Fatalf("Step() = %v, expected 1 overlap", got)
	}
	if got[0].A != boss.Handle() || got[0].PartA != "trap" || got[0].PartB != "" {
		t.Errorf("overlap = %+v, expected the trap part", got[0])
	}
}

func TestStepMovesFreeEntities(t *testing.T) {
	w := world.New()
	free := box(w, world.KindCannonball, core.V(0, 0), core.V(16, 16))
	free.Vel = core.V(10, -4)
	held := box(w, world.KindCrate, core.V(500, 0), core.V(40, 40))
	held.Vel = core.V(10, 0)

	s := New()
	s.Step(w, 1, func(e *world.Entity) bool { return e == free })

	if free.Pos != core.V(10, -4) {
		t.Errorf("free Pos = %v, expected (10, -4)", free.Pos)
	}
	if held.Pos != core.V(500, 0) {
		t.Errorf("held Pos = %v, expected (500, 0)", held.Pos)
	}
}

func TestRemovedEntitiesStopOverlapping(t *testing.T) {
	w := world.New()
	a := box(w, world.KindCrate, core.V(0, 0), core.V(40, 40))
	box(w, world.KindCannonball, core.V(5, 0), core.V(16, 16))

	s := New()
	if got := s.Step(w, 1.0/60, never); len(got) != 1 {
		t.Fatalf("Step() = %v, expected 1 overlap", got)
	}

	w.Destroy(a.Handle())
	if got := s.Step(w, 1.0/60, never); len(got) != 0 {
		t.Errorf("Step() = %v, expected no overlap", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestDecorationsHaveNoBody(t *testing.T) {
	w := world.New()
	box(w, world.KindDecoration, core.V(0, 0), core.V(40, 40))
	box(w, world.KindCannonball, core.V(0, 0), core.V(16, 16))

	s := New()
	if got := s.Step(w, 1.0/60, always); len(got) != 0 {
		t.Errorf("Step() = %v, expected no overlap", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}
