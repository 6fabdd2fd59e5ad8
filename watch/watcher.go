package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/dasdy/gridfit/layout"
	"github.com/dasdy/gridfit/logging"
	"github.com/dasdy/gridfit/model"
	"github.com/fsnotify/fsnotify"
)

var logCtx = logging.PackageCtx("watch")

// Snapshot is the outcome of one analysis of the layout file.
type Snapshot struct {
	Generation int
	Layout     *layout.Layout
	Reports    []model.UtilizationReport
	Skipped    int
	Err        error
	At         time.Time
}

type Stats struct {
	Events   int
	Analyses int
	Errors   int
}

// Watcher re-analyses a layout file every time it is written or created.
// Events are not debounced: each one triggers a full analysis.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	path    string
	load    func(path string) (*layout.Layout, error)
	reports chan Snapshot
	ready   chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	stopped bool
	stats   Stats
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}

	return &Watcher{
		watcher: watcher,
		path:    filepath.Clean(abs),
		load:    layout.Load,
		reports: make(chan Snapshot, 1),
		ready:   make(chan struct{}),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Reports delivers a snapshot after the initial analysis and after every
// change. The channel is closed once the watcher stops.
func (w *Watcher) Reports() <-chan Snapshot {
	return w.reports
}

// Ready is closed once the initial analysis has been delivered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.stats
}

// Start watches the directory holding the layout file, so that editors which
// replace the file on save are still picked up. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.stopped {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("could not watch %s: %w", w.path, err)
	}

	w.running = true

	slog.InfoContext(logCtx, "Watching layout", "path", w.path)

	go w.run(ctx)

	return nil
}

// Stop ends the event loop and waits for it to exit. It is safe to call more
// than once, and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()

		return
	}

	wasRunning := w.running
	w.stopped = true
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)

	if wasRunning {
		<-w.doneCh
	} else {
		close(w.reports)
	}

	if err := w.watcher.Close(); err != nil {
		slog.ErrorContext(logCtx, "Could not close watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.reports)

	if !w.analyze(ctx) {
		return
	}

	close(w.ready)

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.relevant(event) {
				continue
			}

			w.mu.Lock()
			w.stats.Events++
			w.mu.Unlock()

			slog.DebugContext(logCtx, "Layout changed", "op", event.Op.String())

			if !w.analyze(ctx) {
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			slog.ErrorContext(logCtx, "Watcher error", "error", err)

			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// analyze loads the layout and delivers a snapshot. It returns false when the
// watcher was stopped while waiting for the consumer.
func (w *Watcher) analyze(ctx context.Context) bool {
	w.mu.Lock()
	w.stats.Analyses++
	snapshot := Snapshot{Generation: w.stats.Analyses, At: time.Now()}
	w.mu.Unlock()

	l, err := w.load(w.path)
	if err != nil {
		slog.WarnContext(logCtx, "Could not analyze layout", "path", w.path, "error", err)

		snapshot.Err = err

		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
	} else {
		snapshot.Layout = l
		snapshot.Reports = l.Reports()
		snapshot.Skipped = l.Skipped
	}

	select {
	case w.reports <- snapshot:
		return true
	case <-w.stopCh:
		return false
	case <-ctx.Done():
		return false
	}
}
