package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

// Result reports one finished export.
type Result struct {
	Path  string // Scene file
	Frame string // Text frame, empty without a renderer
	Value int
	Err   error
}

// Observer keeps the best scene of a run. ActionSnapshot runs on the tick;
// exports run on their own goroutine and report through Drain.
type Observer struct {
	logger *log.Logger

	mu      sync.Mutex
	best    Scene
	hasBest bool
	exports int
	results []Result

	wg sync.WaitGroup
}

// New creates an observer. A nil logger discards messages.
func New(logger *log.Logger) *Observer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Observer{logger: logger}
}

// ActionSnapshot rates the visible scene and keeps it if it beats the best
// one so far.
func (o *Observer) ActionSnapshot(w *world.World, camera core.Rect) {
	s := Take(w, camera)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.hasBest && s.Value <= o.best.Value {
		return
	}
	o.best = s
	o.hasBest = true
	o.logger.Debug("new best action", "value", s.Value, "items", len(s.Items))
}

// Best returns the best scene so far.
func (o *Observer) Best() (Scene, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.best, o.hasBest
}

// Export writes the best scene to dir in the background. The scene goes to
// best-action-<n>.yaml and, when render is set, its frame to
// best-action-<n>.txt. It reports false when nothing was captured yet.
func (o *Observer) Export(dir string, render func(Scene) string) bool {
	o.mu.Lock()
	if !o.hasBest {
		o.mu.Unlock()
		return false
	}
	scene := o.best
	o.exports++
	n := o.exports
	o.mu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		res := write(dir, n, scene, render)

		o.mu.Lock()
		o.results = append(o.results, res)
		o.mu.Unlock()
	}()
	return true
}

// Drain hands finished exports to fn and returns how many there were.
func (o *Observer) Drain(fn func(Result)) int {
	o.mu.Lock()
	results := o.results
	o.results = nil
	o.mu.Unlock()

	for _, r := range results {
		fn(r)
	}
	return len(results)
}

// Wait blocks until every export started so far has finished.
func (o *Observer) Wait() {
	o.wg.Wait()
}

func write(dir string, n int, scene Scene, render func(Scene) string) Result {
	res := Result{Value: scene.Value}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		res.Err = fmt.Errorf("capture: create dir: %w", err)
		return res
	}

	data, err := yaml.Marshal(scene)
	if err != nil {
		res.Err = fmt.Errorf("capture: encode scene: %w", err)
		return res
	}
	res.Path = filepath.Join(dir, fmt.Sprintf("best-action-%d.yaml", n))
	if err := os.WriteFile(res.Path, data, 0o644); err != nil {
		res.Err = fmt.Errorf("capture: write scene: %w", err)
		return res
	}

	if render == nil {
		return res
	}
	res.Frame = filepath.Join(dir, fmt.Sprintf("best-action-%d.txt", n))
	if err := os.WriteFile(res.Frame, []byte(render(scene)+"\n"), 0o644); err != nil {
		res.Err = fmt.Errorf("capture: write frame: %w", err)
	}
	return res
}

// Load reads a scene written by Export.
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("capture: read scene: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("capture: decode scene: %w", err)
	}
	return s, nil
}
