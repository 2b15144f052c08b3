package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docxbuilder/internal/logfields"
	"git.home.luguber.info/inful/docxbuilder/internal/manifest"
)

// Watcher re-runs a manifest whenever its file changes. Changes are
// debounced and runs never overlap.
type Watcher struct {
	manifestPath string
	orch         *Orchestrator
	onReport     func(report string)
	watcher      *fsnotify.Watcher
	runMu        sync.Mutex
	lastHash     string
	stopOnce     sync.Once
	stopChan     chan struct{}
	rebuildChan  chan struct{}
	debounceTime time.Duration
}

// NewWatcher creates a watcher for the manifest at path. onReport receives
// the output of every run.
func NewWatcher(path string, o *Orchestrator, onReport func(report string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	return &Watcher{
		manifestPath: absPath,
		orch:         o,
		onReport:     onReport,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		rebuildChan:  make(chan struct{}, 1),
		debounceTime: 500 * time.Millisecond,
	}, nil
}

// WithDebounce sets how long the watcher waits for changes to settle.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounceTime = d
	return w
}

// Start begins watching. The directory is watched rather than the file
// so editors that replace the file on save are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.manifestPath)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch manifest directory %s: %w", dir, err)
	}

	slog.Info("Watching manifest", logfields.Manifest(w.manifestPath))

	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	name := filepath.Base(w.manifestPath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Manifest change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Has(fsnotify.Remove):
				slog.Warn("Manifest removed", logfields.Path(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Manifest watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.rebuildChan:
			stop()
			timer = time.AfterFunc(w.debounceTime, func() {
				if ctx.Err() != nil {
					return
				}
				w.Rebuild(ctx)
			})
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.rebuildChan <- struct{}{}:
	default:
	}
}

// Rebuild runs the manifest now unless its steps are unchanged since the
// previous run. It reports whether a run happened.
func (w *Watcher) Rebuild(ctx context.Context) bool {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if m, err := manifest.Load(w.manifestPath); err == nil {
		hash, herr := m.Hash()
		if herr == nil && hash == w.lastHash {
			slog.Debug("Manifest unchanged, skipping run", logfields.Manifest(w.manifestPath))
			return false
		}
		w.lastHash = hash
	} else {
		w.lastHash = ""
	}

	w.onReport(w.orch.Run(ctx, w.manifestPath))
	return true
}
