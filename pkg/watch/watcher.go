package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"cbml-lang/cbml/pkg/telemetry/logging"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyRunning is returned by Watch when the watcher is already active.
var ErrAlreadyRunning = errors.New("watcher already running")

// ChangeFunc receives the files that changed during one debounce window,
// sorted and without duplicates.
type ChangeFunc func(ctx context.Context, changed []string) error

// Config contains configuration for the watcher.
type Config struct {
	// Paths are the files or directories to watch. Directories are watched
	// recursively, including directories created later.
	Paths []string

	// Debounce is the quiet period after the last event before OnChange runs.
	// Default: 100ms
	Debounce time.Duration

	// Extensions are the file suffixes that count as changes. A suffix may
	// span more than one dot, e.g. ".def.cbml".
	// Default: [".cbml"]
	Extensions []string

	// SkipHidden ignores files and directories whose name starts with a dot.
	SkipHidden bool

	// OnEvent, when set, is called for every accepted event with the
	// operation name. It runs on the watch goroutine.
	OnEvent func(op string)
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   100 * time.Millisecond,
		Extensions: []string{".cbml"},
		SkipHidden: true,
	}
}

// Watcher watches CBML files and reports debounced batches of changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	config   *Config
	debounce *Debouncer

	mu      sync.Mutex
	runMu   sync.Mutex
	running bool
	pending map[string]struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	closed  sync.Once
}

// New creates a watcher. A nil config uses DefaultConfig; a nil logger
// discards logs.
func New(config *Config, logger *logging.Logger) (*Watcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultConfig().Debounce
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultConfig().Extensions
	}
	if logger == nil {
		logger = logging.Discard()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.Debounce),
		pending:  make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch adds the configured paths and blocks, calling onChange after each
// burst of events, until ctx is cancelled or Stop is called. Errors from
// onChange are logged and do not stop the watcher.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	if len(w.config.Paths) == 0 {
		return errors.New("no paths to watch")
	}
	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to watch path: %w", err)
		}
	}

	w.logger.Info("file watcher started",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped", "reason", "context cancelled")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}

			if event.Has(fsnotify.Create) {
				w.watchNewDirectory(event.Name)
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)
			if w.config.OnEvent != nil {
				w.config.OnEvent(event.Op.String())
			}

			w.mu.Lock()
			w.pending[event.Name] = struct{}{}
			w.mu.Unlock()

			w.debounce.Trigger(func() {
				w.runMu.Lock()
				defer w.runMu.Unlock()

				changed := w.drain()
				if len(changed) == 0 {
					return
				}
				if err := onChange(ctx, changed); err != nil {
					w.logger.Error("re-check failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops the watcher, cancels pending callbacks and releases the
// underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	var err error
	w.closed.Do(func() {
		close(w.stopCh)
		if running {
			<-w.doneCh
		}
		w.debounce.Stop()
		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

// WatchList returns the paths currently registered with fsnotify.
func (w *Watcher) WatchList() []string {
	list := w.watcher.WatchList()
	sort.Strings(list)
	return list
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	clear(w.pending)
	sort.Strings(changed)
	return changed
}

func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.addDirectory(path)
	}
	return w.watcher.Add(path)
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.config.SkipHidden && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// watchNewDirectory picks up directories created after Watch started.
func (w *Watcher) watchNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if w.config.SkipHidden && isHidden(path) {
		return
	}
	if err := w.addDirectory(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
}

// shouldProcessEvent determines if an event should trigger a re-check.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.config.SkipHidden && isHidden(event.Name) {
		return false
	}
	return w.hasValidExtension(event.Name)
}

func (w *Watcher) hasValidExtension(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range w.config.Extensions {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
