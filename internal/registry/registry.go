// Package registry provides a global registry for scenario factories.
// Scenarios register themselves in init() functions, allowing the CLI and
// the viewer to discover and build runs without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-coaster/internal/sim"
)

// Scenario populates a run with a level layout.
type Scenario interface {
	// ID returns a unique identifier (e.g., "crate-chain", "boss").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Setup spawns the cart and the level into an empty run and sets the
	// level flags. It is called once per run.
	Setup(s *sim.Sim) error
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ScenarioInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scenario by its ID.
// Returns an error if the scenario ID is not registered.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Build creates the scenario id and sets it up in a new run.
func Build(id string, opts sim.Options) (*sim.Sim, Scenario, error) {
	sc, err := Create(id)
	if err != nil {
		return nil, nil, err
	}
	s := sim.New(opts)
	if err := sc.Setup(s); err != nil {
		return nil, nil, fmt.Errorf("registry: setup %q: %w", id, err)
	}
	return s, sc, nil
}
