package capture

import (
	"os"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

var camera = core.NewRect(0, 0, 1600, 900)

func TestRate(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  int
	}{
		{"empty", nil, 0},
		{"crate", []Item{{Kind: "crate"}}, 10},
		{"attracted balloon", []Item{{Kind: "balloon", Attracted: true}}, 20},
		{"cannonball and plunger", []Item{{Kind: "cannonball"}, {Kind: "plunger"}}, 40},
		{"explosions count once", []Item{{Kind: "explosion"}, {Kind: "explosion"}}, 30},
		{"damaged wall", []Item{{Kind: "wall", Impacts: 6}}, 30},
		{"loaded zeppelin", []Item{{Kind: "zeppelin", Carrying: true}}, 20},
		{"decoration", []Item{{Kind: "decoration"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.items); got != tt.want {
				t.Errorf("Rate() = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestTakeCopiesVisibleEntities(t *testing.T) {
	env := entities.NewEnv(world.New(), movement.NewComposer(), combo.NewTally(0), &core.SimContext{Camera: camera}, config.Default(), 1)
	env.Spawn(entities.PropSpec(world.KindCrate, core.V(100, 20)))
	env.Spawn(entities.PropSpec(world.KindCrate, core.V(5000, 20)))
	env.SpawnZeppelin(core.V(800, 600), world.KindBomb)

	s := Take(env.World, camera)

	if len(s.Items) != 3 {
		t.Fatalf("Take() has %d items, expected 3", len(s.Items))
	}
	// crate 10, zeppelin 10 + 10 carrying, bomb 10
	if s.Value != 40 {
		t.Errorf("Value = %d, expected 40", s.Value)
	}
}

func TestObserverKeepsBestScene(t *testing.T) {
	w := world.New()
	o := New(nil)

	w.Spawn(world.Spec{Kind: world.KindCrate, Pos: core.V(100, 20), Size: core.V(40, 40)})
	o.ActionSnapshot(w, camera)
	ball := w.Spawn(world.Spec{Kind: world.KindCannonball, Pos: core.V(200, 20), Size: core.V(16, 16)})
	o.ActionSnapshot(w, camera)
	w.Destroy(ball)
	o.ActionSnapshot(w, camera)

	best, ok := o.Best()
	if !ok {
		t.Fatal("Best() found nothing")
	}
	if best.Value != 30 {
		t.Errorf("Best().Value = %d, expected 30", best.Value)
	}
	if len(best.Items) != 2 {
		t.Errorf("Best() has %d items, expected 2", len(best.Items))
	}
}

func TestExportDeliveredThroughDrain(t *testing.T) {
	dir := t.TempDir()
	w := world.New()
	o := New(nil)

	if o.Export(dir, nil) {
		t.Fatal("Export() accepted without any snapshot")
	}

	w.Spawn(world.Spec{Kind: world.KindCrate, Pos: core.V(100, 20), Size: core.V(40, 40)})
	o.ActionSnapshot(w, camera)
	if !o.Export(dir, func(s Scene) string { return Frame(s, 80, 24) }) {
		t.Fatal("Export() refused")
	}
	o.Wait()

	var got []Result
	if n := o.Drain(func(r Result) { got = append(got, r) }); n != 1 {
		t.Fatalf("Drain() = %d, expected 1", n)
	}
	if got[0].Err != nil {
		t.Fatalf("export error = %v", got[0].Err)
	}

	scene, err := Load(got[0].Path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if scene.Value != 10 || len(scene.Items) != 1 || scene.Items[0].Kind != "crate" {
		t.Errorf("Load() = %+v, expected the crate scene", scene)
	}

	frame, err := os.ReadFile(got[0].Frame)
	if err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	if !strings.Contains(string(frame), "#") {
		t.Errorf("frame does not show the crate:\n%s", frame)
	}

	if n := o.Drain(func(Result) {}); n != 0 {
		t.Errorf("second Drain() = %d, expected 0", n)
	}
}

func TestFrameDrawsGround(t *testing.T) {
	scene := Scene{
		Camera: Box{X: 0, Y: -10, W: 100, H: 50},
		Items:  []Item{{Kind: "tnt", Box: Box{X: 50, Y: 0, W: 10, H: 10}}},
	}
	lines := strings.Split(Frame(scene, 10, 5), "\n")
	if len(lines) != 5 {
		t.Fatalf("Frame() has %d lines, expected 5", len(lines))
	}
	if !strings.Contains(lines[3], "_") {
		t.Errorf("line 3 = %q, expected ground", lines[3])
	}
	if strings.TrimSpace(lines[4]) != "" {
		t.Errorf("line 4 = %q, expected empty space below ground", lines[4])
	}
	if !strings.Contains(strings.Join(lines, ""), "T") {
		t.Error("Frame() does not show the tnt")
	}
}
