package ephemeris

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is emitted after the watched file changes. Exactly one of Table
// and Err is set; a failed reload leaves the caller's current table in use.
type Reload struct {
	Table *Table
	Err   error
	At    time.Time
}

// Watcher monitors a segment file and reloads it after edits settle. The
// containing directory is watched so editors that replace the file on save
// are still observed.
type Watcher struct {
	Path    string
	Reloads <-chan Reload // Read-only external channel

	reloads  chan Reload
	quit     chan struct{}
	done     chan struct{}
	watcher  *fsnotify.Watcher
	started  atomic.Bool
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the segment file at path.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:    filepath.Clean(path),
		Reloads: ch,
		reloads: ch,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. Later calls add no second loop. A failed Start
// still requires Stop to release the watcher.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return fmt.Errorf("ephemeris: watch %s: %w", w.Path, err)
	}
	if w.started.CompareAndSwap(false, true) {
		go w.loop()
	}
	return nil
}

// Stop closes the watcher and the Reloads channel. It is safe to call
// before Start and more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.quit)
		w.watcher.Close()
		if w.started.Load() {
			<-w.done
		}
		close(w.reloads)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.quit:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if !pending.IsZero() && now.Sub(pending) >= debounce {
				pending = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event retries.
		}
	}
}

func (w *Watcher) emit() {
	t, err := Load(w.Path)
	r := Reload{Table: t, Err: err, At: time.Now()}
	select {
	case w.reloads <- r:
	case <-w.quit:
	}
}
