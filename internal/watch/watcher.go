// Package watch reports debounced filesystem changes under a project's
// source directories.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the tree must stay quiet before a change is reported
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc receives the sorted set of paths changed during one quiet period
type ChangeFunc func(changed []string)

// Watcher watches directories recursively and individual files
type Watcher struct {
	dirs     []string
	files    []string
	debounce time.Duration
	onChange ChangeFunc
	logger   *logrus.Logger
	ready    chan struct{}
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors
func WithLogger(logger *logrus.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher over targets, each a directory (watched recursively)
// or a file. Targets that do not exist are skipped; at least one must exist.
func New(targets []string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	w := &Watcher{
		debounce: DefaultDebounce,
		onChange: onChange,
		logger:   silent,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			continue
		}
		if info.IsDir() {
			w.dirs = append(w.dirs, filepath.Clean(target))
		} else {
			w.files = append(w.files, filepath.Clean(target))
		}
	}

	if len(w.dirs) == 0 && len(w.files) == 0 {
		return nil, fmt.Errorf("nothing to watch: none of %s exist", strings.Join(targets, ", "))
	}
	return w, nil
}

// Ready is closed once every target is being watched
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is done. onChange is called from this goroutine, so
// calls never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := addRecursive(fsw, dir); err != nil {
			return err
		}
	}
	for _, file := range w.files {
		if err := fsw.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}
	close(w.ready)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
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

			if event.Has(fsnotify.Create) && w.inDir(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fsw, event.Name); err != nil {
						w.logger.WithError(err).Warn("failed to watch new directory")
					}
				}
			}

			if !w.relevant(event) {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("file watcher error")

		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			clear(pending)

			w.onChange(changed)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	return w.inDir(name) || slices.Contains(w.files, name)
}

func (w *Watcher) inDir(name string) bool {
	for _, dir := range w.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
