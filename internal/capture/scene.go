// Package capture keeps the most spectacular moment of a run and exports it
// in the background.
//
// Handlers report noteworthy actions through entities.Observer. Each report
// copies the visible entities into a Scene value and rates it; the best one
// is kept until exported. Scenes hold no pointers into the world so they can
// cross goroutines freely.
package capture

import (
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Box is a rectangle in world coordinates.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func boxOf(r core.Rect) Box {
	return Box{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Rect converts the box back to a core.Rect.
func (b Box) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Item is one entity as seen when the scene was taken.
type Item struct {
	Kind      string  `yaml:"kind"`
	Name      string  `yaml:"name,omitempty"`
	Box       Box     `yaml:"box"`
	Angle     float64 `yaml:"angle,omitempty"`
	Combo     uint    `yaml:"combo,omitempty"`
	State     string  `yaml:"state"`
	Attracted bool    `yaml:"attracted,omitempty"`
	Impacts   int     `yaml:"impacts,omitempty"`
	Carrying  bool    `yaml:"carrying,omitempty"`
}

// Scene is a rated copy of the visible world.
type Scene struct {
	Value  int    `yaml:"value"`
	Camera Box    `yaml:"camera"`
	Items  []Item `yaml:"items"`
}

// Take copies the entities intersecting camera and rates the result.
func Take(w *world.World, camera core.Rect) Scene {
	s := Scene{Camera: boxOf(camera)}
	w.Each(func(e *world.Entity) {
		if !camera.Intersects(e.Bounds()) {
			return
		}
		it := Item{
			Kind:      e.Kind.String(),
			Name:      e.Name,
			Box:       boxOf(e.Bounds()),
			Angle:     e.Angle,
			Combo:     e.Combo,
			State:     e.State.String(),
			Attracted: e.Attracted,
		}
		switch e.Kind {
		case world.KindWall:
			for _, n := range entities.Impacts(e) {
				it.Impacts += n
			}
		case world.KindZeppelin:
			it.Carrying = entities.Carries(w, e)
		}
		s.Items = append(s.Items, it)
	})
	s.Value = Rate(s.Items)
	return s
}

// Rate scores a set of items. Explosions add a flat bonus once, however
// many are visible.
func Rate(items []Item) int {
	total := 0
	blast := false
	for _, it := range items {
		switch it.Kind {
		case "balloon":
			total += 10
			if it.Attracted {
				total += 10
			}
		case "bomb", "crate", "tar", "tnt":
			total += 10
		case "cannonball", "plunger":
			total += 20
		case "wall":
			total += 10 + 10*it.Impacts/3
		case "zeppelin":
			total += 10
			if it.Carrying {
				total += 10
			}
		case "explosion":
			blast = true
		}
	}
	if blast {
		total += 30
	}
	return total
}
