package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce coalesces the burst of events an editor save makes.
const DefaultReloadDebounce = 100 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk. Only
// configurations that pass validation are delivered.
type Watcher struct {
	path     string
	load     func() (*Config, error)
	onChange func(*Config)
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher for path. load is called after each change;
// a nil load reads path with a fresh Loader.
func NewWatcher(path string, load func() (*Config, error), onChange func(*Config), logger *slog.Logger) *Watcher {
	if load == nil {
		load = func() (*Config, error) {
			return NewLoader().WithConfigFile(path).LoadAndValidate()
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		load:     load,
		onChange: onChange,
		debounce: DefaultReloadDebounce,
		logger:   logger,
	}
}

// WithDebounce overrides the reload debounce.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run watches until ctx is done. The parent directory is watched rather
// than the file so atomic replaces are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.load()
	if err != nil {
		w.logger.Warn("config reload rejected", "path", w.path, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
