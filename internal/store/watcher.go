package store

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 100 * time.Millisecond

// Watcher signals when scheme files change on disk, coalescing editor
// write bursts into a single notification.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan struct{}
	debounce  *time.Timer
	mu        sync.Mutex
	closed    bool
}

// Watch starts a watcher over the store directory. It shuts down when the
// context is cancelled.
func (st *Store) Watch(ctx context.Context) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(st.dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		events:    make(chan struct{}, 1),
	}
	go w.run(ctx)
	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		w.fsWatcher.Close()
		close(w.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounce = time.AfterFunc(debounceWindow, func() {
				w.mu.Lock()
				defer w.mu.Unlock()
				if w.closed {
					return
				}
				select {
				case w.events <- struct{}{}:
				default: // Channel full, skip
				}
			})
			w.mu.Unlock()
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Ignore errors, continue watching
		}
	}
}

// Events returns a channel that signals when scheme files change.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}
