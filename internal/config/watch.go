package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors often save in several writes; a reload waits this long after
// the last one.
const reloadDebounce = 150 * time.Millisecond

// Reload is the outcome of re-reading a watched config file.
type Reload struct {
	Config Config
	Err    error
}

// Watcher re-reads one config file whenever it changes on disk.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	reloads chan Reload
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched, so the
// file survives editors that save by replacing it.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		fs:      fw,
		reloads: make(chan Reload, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Reloads delivers the config after each change. It is closed by Close.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.reloads)

	var settle <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) == w.path && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				settle = time.After(reloadDebounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.send(Reload{Err: err}) {
				return
			}
		case <-settle:
			settle = nil
			cfg, err := Load(w.path)
			if !w.send(Reload{Config: cfg, Err: err}) {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) send(r Reload) bool {
	select {
	case w.reloads <- r:
		return true
	case <-w.done:
		return false
	}
}
