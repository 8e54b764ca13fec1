// Package filesystem watches a local directory for character card files.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/logger"
)

// DefaultSettle is how long a file must stay unchanged before it is read.
const DefaultSettle = 250 * time.Millisecond

// DefaultExtensions are the card formats picked up when none are configured.
var DefaultExtensions = []string{".json", ".png"}

// ErrClosed is returned when using a watcher after Close.
var ErrClosed = errors.New("watcher closed")

// Ensure Watcher implements the interface.
var _ driven.CardWatcher = (*Watcher)(nil)

var log = logger.Named("watch")

// Watcher finds card files under a root directory, including subdirectories.
// Hidden files and directories (dot-prefixed below the root) are ignored.
type Watcher struct {
	root   string
	exts   []string
	settle time.Duration

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions limits the watcher to the given lower-case extensions.
func WithExtensions(exts []string) Option {
	return func(w *Watcher) {
		if len(exts) > 0 {
			w.exts = slices.Clone(exts)
		}
	}
}

// WithSettle sets how long a file must be quiet before it is read.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.settle = d
		}
	}
}

// New creates a watcher for root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:   root,
		exts:   slices.Clone(DefaultExtensions),
		settle: DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Validate checks the root exists and is a readable directory.
func (w *Watcher) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(w.root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("root path does not exist: %s", w.root)
		}
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", w.root)
	}
	if _, err := os.ReadDir(w.root); err != nil {
		return fmt.Errorf("root path is not readable: %w", err)
	}
	return nil
}

// Scan returns every card file currently under the root, sorted by path.
// Files that cannot be read are logged and skipped.
func (w *Watcher) Scan(ctx context.Context) ([]domain.RawCard, error) {
	if err := w.Validate(ctx); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if w.isHidden(path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && w.accepts(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	cards := make([]domain.RawCard, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping %s: %v", path, err)
			continue
		}
		cards = append(cards, domain.RawCard{Filename: path, Content: data})
	}
	return cards, nil
}

// Watch reports card files that are created or rewritten under the root.
// A file is read once it has been quiet for the settle interval, so a
// burst of writes yields one card. The channel closes when ctx is done.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.RawCard, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}
	if _, err := os.Stat(w.root); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.addTree(fsw, w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.watcher = fsw

	out := make(chan domain.RawCard)
	go w.run(ctx, fsw, out)
	return out, nil
}

// Close stops any active watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, out chan<- domain.RawCard) {
	defer close(out)
	defer fsw.Close()

	done := make(chan struct{})
	defer close(done)

	ready := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path := w.handleFsEvent(fsw, event)
			if path == "" {
				continue
			}
			if t, ok := pending[path]; ok {
				t.Reset(w.settle)
				continue
			}
			pending[path] = time.AfterFunc(w.settle, func() {
				select {
				case ready <- path:
				case <-done:
				}
			})

		case path := <-ready:
			if _, ok := pending[path]; !ok {
				continue
			}
			delete(pending, path)
			data, err := os.ReadFile(path)
			if err != nil {
				// Removed or renamed before it settled.
				log.Debug("skipping %s: %v", path, err)
				continue
			}
			select {
			case out <- domain.RawCard{Filename: path, Content: data}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// handleFsEvent returns the card path an event refers to, or "" when the
// event should be ignored. New directories are added to the watch.
func (w *Watcher) handleFsEvent(fsw *fsnotify.Watcher, event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if w.isHidden(event.Name) {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addTree(fsw, event.Name); err != nil {
				log.Warn("cannot watch %s: %v", event.Name, err)
			}
		}
		return ""
	}
	if !info.Mode().IsRegular() || !w.accepts(event.Name) {
		return ""
	}
	return event.Name
}

// addTree watches dir and every non-hidden directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("root path error: %w", err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.isHidden(path) {
			return fs.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) accepts(path string) bool {
	return slices.Contains(w.exts, strings.ToLower(filepath.Ext(path)))
}

// isHidden reports whether path lies in or is a dot-prefixed entry below the root.
func (w *Watcher) isHidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	return isHidden(rel)
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
