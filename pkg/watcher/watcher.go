package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a single parameter file and triggers a callback
// when it changes, debouncing editor write bursts.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for the given file. The callback runs on the
// watcher's goroutine after writes settle for the debounce interval.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors typically save by replacing the file; watching the parent
	// directory survives the rename
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	return &Watcher{
		fsw:      fsw,
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Start begins delivering change notifications until Close is called
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					w.scheduleCallback()
				}

			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}()
}

// scheduleCallback arms the debounce timer, resetting any pending one
func (w *Watcher) scheduleCallback() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

// Close stops the watcher
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
