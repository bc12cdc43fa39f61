// Package scenarios holds the levels a run can be built from. Hand-made
// levels are YAML layouts embedded from levels/; the generated level is
// laid out from the run seed.
package scenarios

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/sim"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

//go:embed levels/*.yaml
var levelsFS embed.FS

// Default extents of items that leave them out.
const (
	defaultWallHeight = 200
	defaultTarWidth   = 120
)

// Item places one entity. Props with no Y stand on the ground.
type Item struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
	Carry  string  `yaml:"carry"`
}

// BossSpec places the boss and sets the encounter flags.
type BossSpec struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Module     int     `yaml:"module"`
	Transition bool    `yaml:"transition"`
}

// Layout is a hand-made level.
type Layout struct {
	Name   string    `yaml:"id"`
	Label  string    `yaml:"title"`
	Length float64   `yaml:"length"`
	Cart   float64   `yaml:"cart"`
	Items  []Item    `yaml:"items"`
	Boss   *BossSpec `yaml:"boss"`
}

// ID implements registry.Scenario.
func (l *Layout) ID() string { return l.Name }

// Title implements registry.Scenario.
func (l *Layout) Title() string { return l.Label }

// Setup implements registry.Scenario.
func (l *Layout) Setup(s *sim.Sim) error {
	ctx := s.Context()
	if l.Boss != nil {
		ctx.BossTransition = l.Boss.Transition
		ctx.ModuleSerial = l.Boss.Module
	}
	if l.Length > 0 {
		s.SetLength(l.Length)
	}
	s.SpawnCart(l.Cart)

	env := s.Env()
	for i, it := range l.Items {
		if err := place(env, it); err != nil {
			return fmt.Errorf("scenarios: %s item %d: %w", l.Name, i, err)
		}
	}

	if l.Boss != nil {
		if _, err := s.SpawnBoss(core.V(l.Boss.X, l.Boss.Y)); err != nil {
			return fmt.Errorf("scenarios: %s: %w", l.Name, err)
		}
	}
	s.Logger().Debug("level ready", "id", l.Name, "entities", s.World().Len())
	return nil
}

func place(env *entities.Env, it Item) error {
	k, ok := world.ParseKind(it.Kind)
	if !ok {
		return fmt.Errorf("unknown kind %q", it.Kind)
	}

	switch k {
	case world.KindCrate, world.KindTNT, world.KindBomb, world.KindBalloon, world.KindBonus:
		spec := entities.OnGround(k, it.X)
		if it.Y != 0 {
			spec = entities.PropSpec(k, core.V(it.X, it.Y))
		}
		env.Spawn(spec)
	case world.KindZeppelin:
		carry := world.KindNone
		if it.Carry != "" {
			if carry, ok = world.ParseKind(it.Carry); !ok || !carry.Attractable() {
				return fmt.Errorf("zeppelin cannot carry %q", it.Carry)
			}
		}
		env.SpawnZeppelin(core.V(it.X, it.Y), carry)
	case world.KindWall:
		h := it.Height
		if h <= 0 {
			h = defaultWallHeight
		}
		env.Spawn(entities.WallSpec(it.X, h))
	case world.KindTar:
		w := it.Width
		if w <= 0 {
			w = defaultTarWidth
		}
		env.Spawn(entities.TarSpec(it.X, w))
	case world.KindObstacle:
		if it.W <= 0 || it.H <= 0 {
			return fmt.Errorf("obstacle needs w and h")
		}
		env.Spawn(entities.ObstacleSpec(core.V(it.X, it.Y), core.V(it.W, it.H)))
	default:
		return fmt.Errorf("kind %q cannot be placed", it.Kind)
	}
	return nil
}

// Parse decodes a layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("scenarios: decode layout: %w", err)
	}
	if l.Name == "" {
		return nil, fmt.Errorf("scenarios: layout has no id")
	}
	if l.Label == "" {
		l.Label = l.Name
	}
	return &l, nil
}

// LoadFile reads a layout from disk.
func LoadFile(p string) (*Layout, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("scenarios: read layout: %w", err)
	}
	return Parse(data)
}

// Embedded returns the built-in layouts.
func Embedded() ([]*Layout, error) {
	names, err := fs.Glob(levelsFS, "levels/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("scenarios: list levels: %w", err)
	}
	out := make([]*Layout, 0, len(names))
	for _, name := range names {
		data, err := levelsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("scenarios: read %s: %w", path.Base(name), err)
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, path.Base(name))
		}
		out = append(out, l)
	}
	return out, nil
}

// RegisterFile loads a layout from disk and registers it under its id.
// Built-in ids cannot be replaced.
func RegisterFile(p string) (string, error) {
	l, err := LoadFile(p)
	if err != nil {
		return "", err
	}
	if registry.Exists(l.Name) {
		return "", fmt.Errorf("scenarios: %q is already registered", l.Name)
	}
	register(l)
	return l.Name, nil
}

func register(l *Layout) {
	registry.Register(l.Name, func() registry.Scenario {
		c := *l
		return &c
	})
}

func init() {
	layouts, err := Embedded()
	if err != nil {
		panic(err)
	}
	for _, l := range layouts {
		register(l)
	}
}
