package world

import (
	"testing"

	"github.com/vovakirdan/tui-coaster/internal/core"
)

func TestSpawnGet(t *testing.T) {
	w := New()
	h := w.Spawn(Spec{Kind: KindCrate, Pos: core.V(10, 20), Size: core.V(4, 4)})

	e, ok := w.Get(h)
	if !ok {
		t.Fatal("Get() should find a freshly spawned entity")
	}
	if e.Kind != KindCrate || e.Pos != core.V(10, 20) {
		t.Errorf("Get() = %v at %v, expected crate at (10, 20)", e.Kind, e.Pos)
	}
	if e.Handle() != h {
		t.Errorf("Handle() = %v, expected %v", e.Handle(), h)
	}
	if e.Mass != 1 {
		t.Errorf("Mass = %v, expected default 1", e.Mass)
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}
}

func TestZeroHandleIsEmpty(t *testing.T) {
	w := New()
	w.Spawn(Spec{Kind: KindCart})

	var h Handle
	if !h.IsZero() {
		t.Error("zero handle should report IsZero")
	}
	if _, ok := w.Get(h); ok {
		t.Error("zero handle should never resolve")
	}
}

func TestDestroyIsImmediate(t *testing.T) {
	w := New()
	h := w.Spawn(Spec{Kind: KindBomb})
	e, _ := w.Get(h)

	if !w.Destroy(h) {
		t.Fatal("Destroy() = false, expected true")
	}
	if w.Alive(h) {
		t.Error("destroyed entity should not be alive")
	}
	if !e.Gone() {
		t.Error("Gone() = false after Destroy")
	}
	if w.Destroy(h) {
		t.Error("second Destroy() should be a no-op")
	}
	if w.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", w.Len())
	}
}

func TestGenerationCheckAfterReuse(t *testing.T) {
	w := New()
	old := w.Spawn(Spec{Kind: KindCrate})
	w.Destroy(old)

	removed := w.Sweep()
	if len(removed) != 1 || removed[0].Kind != KindCrate {
		t.Fatalf("Sweep() = %v, expected the crate", removed)
	}

	fresh := w.Spawn(Spec{Kind: KindTNT})
	if fresh.index != old.index {
		t.Fatalf("slot not reused: %v vs %v", fresh, old)
	}
	if _, ok := w.Get(old); ok {
		t.Error("stale handle resolved to the entity reusing its slot")
	}
	if e, ok := w.Get(fresh); !ok || e.Kind != KindTNT {
		t.Error("fresh handle should resolve to the TNT")
	}
}

func TestEachSkipsEntitiesDestroyedDuringIteration(t *testing.T) {
	w := New()
	a := w.Spawn(Spec{Kind: KindCrate})
	b := w.Spawn(Spec{Kind: KindCrate})
	w.Spawn(Spec{Kind: KindCrate})

	var visited []Handle
	w.Each(func(e *Entity) {
		visited = append(visited, e.Handle())
		if e.Handle() == a {
			w.Destroy(b)
			w.Spawn(Spec{Kind: KindPlank})
		}
	})

	if len(visited) != 2 {
		t.Errorf("visited %d entities, expected 2", len(visited))
	}
	if w.Count(KindPlank) != 1 {
		t.Errorf("Count(plank) = %d, expected 1", w.Count(KindPlank))
	}
}

func TestLinkClearsWhenTargetLeaves(t *testing.T) {
	w := New()
	h := w.Spawn(Spec{Kind: KindCrate})

	var l Link
	if !l.Empty(w) {
		t.Error("unset link should be empty")
	}

	l.Set(h)
	if e, ok := l.Get(w); !ok || e.Handle() != h {
		t.Fatal("link should resolve to its target")
	}

	w.Destroy(h)
	if !l.Empty(w) {
		t.Error("link should read empty once the target left")
	}
	if !l.Handle().IsZero() {
		t.Error("stale link should be cleared on access")
	}
}

func TestKindNames(t *testing.T) {
	for k := KindCart; k <= KindDecoration; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v, expected %v", k.String(), got, ok, k)
		}
	}
	if _, ok := ParseKind("none"); ok {
		t.Error("ParseKind(none) should fail")
	}
}

func TestPartBounds(t *testing.T) {
	w := New()
	h := w.Spawn(Spec{
		Kind: KindBoss,
		Pos:  core.V(100, 100),
		Size: core.V(40, 40),
		Parts: []Part{
			{Name: "trap", Offset: core.V(0, -15), Size: core.V(10, 4)},
		},
	})
	e, _ := w.Get(h)

	r, ok := e.PartBounds("trap")
	if !ok {
		t.Fatal("PartBounds(trap) not found")
	}
	if r.Center() != core.V(100, 85) {
		t.Errorf("trap center = %v, expected (100, 85)", r.Center())
	}
	if _, ok := e.PartBounds("missing"); ok {
		t.Error("PartBounds(missing) should fail")
	}
	if m := e.Mark("missing"); m != e.Pos {
		t.Errorf("Mark(missing) = %v, expected center", m)
	}
}
