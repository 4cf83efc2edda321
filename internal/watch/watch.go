// Package watch reloads a Lua script when its file changes on disk.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default debounce interval for file change events.
const DefaultDebounce = 500 * time.Millisecond

// ScriptWatcher monitors one script file and invokes a reload callback
// after changes settle. The parent directory is watched rather than the
// file itself, so editors that save atomically (write to a temp file, then
// rename) are still observed.
type ScriptWatcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload func() error
	onError  func(error)
	done     chan struct{}
	stopped  chan struct{}
}

// New creates a ScriptWatcher for path. onReload runs after each debounced
// change; onError receives watch and reload failures. Neither callback may
// be nil.
func New(path string, debounce time.Duration, onReload func() error, onError func(error)) (*ScriptWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &ScriptWatcher{
		fsw:      fsw,
		path:     path,
		debounce: debounce,
		onReload: onReload,
		onError:  onError,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Stop shuts the watcher down and waits for its goroutine to exit.
func (w *ScriptWatcher) Stop() {
	close(w.done)
	<-w.stopped
}

func (w *ScriptWatcher) loop() {
	defer close(w.stopped)
	defer w.fsw.Close()

	base := filepath.Base(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			if err := w.onReload(); err != nil {
				w.onError(err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}
