package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/fsnotify/fsnotify"
)

// Event conveys a reloaded candidate list or an error from the watcher.
type Event struct {
	Path       string
	Candidates candidate.Static
	Err        error
}

// Loader reads a candidate file.
type Loader func(path string) (candidate.Static, error)

// Watcher reloads a candidate file whenever it changes on disk and publishes
// the result.
type Watcher struct {
	path     string
	load     Loader
	debounce time.Duration
	pacer    *reloadPacer

	fs *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events   chan Event
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWatcher starts watching path. Bursts of writes within debounce are
// collapsed into a single reload.
func NewWatcher(path string, load Loader, debounce time.Duration) (*Watcher, error) {
	if load == nil {
		load = candidate.LoadFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	// editors often replace the file, so watch the directory
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		load:     load,
		debounce: debounce,
		pacer:    newReloadPacer(debounce),
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher and releases the underlying file watch.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.cancel()
		_ = w.fs.Close()
	})
}

// Wait blocks until the watch goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(evt) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		case <-fire:
			fire = nil
			if !w.pacer.ready(w.ctx) {
				return
			}
			items, err := w.load(w.path)
			if !w.emit(Event{Path: w.path, Candidates: items, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != w.path {
		return false
	}
	return evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
