// Package configwatch reloads the run configuration when its file changes.
// Machines are single threaded, so reloads are handed over on a channel and
// the frame loop applies them between two frames.
package configwatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/anggasct/xsm"
	"github.com/anggasct/xsm/internal/cliconfig"
	"github.com/anggasct/xsm/pkg/log"
)

// Config holds configuration options for the watcher.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// Update is one reload of the config file
type Update struct {
	File cliconfig.FileConfig
	Err  error
}

// Watcher monitors one config file via fsnotify.
type Watcher struct {
	path          string
	debounceDelay time.Duration
	logger        log.Logger
	updates       chan Update

	mu       sync.Mutex
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a watcher for the config file at path.
func New(path string, cfg Config, logger log.Logger) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:          path,
		debounceDelay: cfg.DebounceDelay,
		logger:        logger,
		updates:       make(chan Update, 1),
	}
}

// Updates delivers reloads. Only the latest pending reload is kept.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Start watches the directory of the config file until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.watchLoop(watchCtx, watcher)

	w.logger.Info("config watcher started", log.String("path", w.path))
	return nil
}

// Stop ends the watch loop and waits for it to return.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *Watcher) reload() {
	fc, err := cliconfig.LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", log.String("path", w.path), log.Err(err))
	} else {
		w.logger.Info("config reloaded", log.String("path", w.path))
	}
	update := Update{File: fc, Err: err}

	// keep only the newest reload
	for {
		select {
		case w.updates <- update:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}

// Apply hands the settings that can change while running to m: debug tracing
// and the history size. It returns the names of the settings it applied.
func Apply[E any](m *xsm.Machine[E], fc cliconfig.FileConfig) []string {
	var applied []string
	if fc.Debug != nil {
		m.SetDebug(*fc.Debug)
		applied = append(applied, "debug")
	}
	if fc.HistorySize > 0 {
		m.SetHistorySize(fc.HistorySize)
		applied = append(applied, "history_size")
	}
	return applied
}
