package scenarios

import (
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/sim"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Generated lays out a random track of targets from the run random
// source, so the same seed gives the same track.
type Generated struct {
	Segments int
}

const (
	defaultSegments = 100
	segmentMin      = 150
	segmentSpread   = 150
	bonusChance     = 0.1
	bonusGap        = 50 // Segments between two bonuses
)

var generatedKinds = []world.Kind{
	world.KindCrate, world.KindCrate, world.KindTNT, world.KindBomb, world.KindBalloon,
}

// ID implements registry.Scenario.
func (g *Generated) ID() string { return "generated" }

// Title implements registry.Scenario.
func (g *Generated) Title() string { return "Random Track" }

// Setup implements registry.Scenario.
func (g *Generated) Setup(s *sim.Sim) error {
	n := g.Segments
	if n <= 0 {
		n = defaultSegments
	}
	env := s.Env()
	rng := env.Rand
	s.SpawnCart(0)

	x := 800.0
	lastBonus := -bonusGap
	for i := 0; i < n; i++ {
		x += segmentMin + rng.Float64()*segmentSpread

		k := generatedKinds[rng.Intn(len(generatedKinds))]
		tx := x + float64(rng.Intn(600)-200)
		if k == world.KindBalloon {
			env.Spawn(entities.PropSpec(k, core.V(tx, 200+float64(rng.Intn(400)))))
		} else {
			env.Spawn(entities.OnGround(k, tx))
		}

		if rng.Float64() < bonusChance && i-lastBonus > bonusGap {
			lastBonus = i
			env.Spawn(entities.PropSpec(world.KindBonus, core.V(x, 60)))
		}
	}
	s.SetLength(x + 600)
	return nil
}

func init() {
	registry.Register("generated", func() registry.Scenario {
		return &Generated{}
	})
}
