// Package inbox watches a directory and ingests instruments dropped into it.
// Files are ingested one at a time, in the order they settle.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tarika/internal/core/ports/driving"
	"github.com/custodia-labs/tarika/internal/logger"
)

// DefaultSettle is how long a file must go unmodified before it is ingested.
const DefaultSettle = 750 * time.Millisecond

// ErrClosed is returned when Run is called on a closed watcher.
var ErrClosed = errors.New("inbox watcher closed")

// partialSuffixes mark files that are still being written by another program.
var partialSuffixes = []string{".tmp", ".part", ".partial", ".crdownload", ".download", "~"}

// Watcher ingests files that appear in a directory.
type Watcher struct {
	dir      string
	ingest   driving.IngestService
	settle   time.Duration
	existing bool
	progress func(driving.IngestProgress)

	mu     sync.Mutex
	closed bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets how long a file must be quiet before ingestion.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithExisting also ingests files already in the directory when Run starts.
func WithExisting(enabled bool) Option {
	return func(w *Watcher) {
		w.existing = enabled
	}
}

// WithProgress receives the progress of every ingestion.
func WithProgress(fn func(driving.IngestProgress)) Option {
	return func(w *Watcher) {
		w.progress = fn
	}
}

// New creates a watcher for dir.
func New(dir string, ingest driving.IngestService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:    dir,
		ingest: ingest,
		settle: DefaultSettle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Close stops future Run calls. A running Run stops with its context.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if w.ingest == nil {
		return errors.New("inbox watcher: ingest service not configured")
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("inbox path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("inbox path error: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logger.Debug("Watching %s (settle %s)", w.dir, w.settle)

	queue := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx, queue)
	}()
	defer func() {
		close(queue)
		wg.Wait()
	}()

	pending := make(map[string]time.Time)
	if w.existing {
		for _, path := range w.existingFiles() {
			pending[path] = time.Now()
		}
	}

	tick := w.settle / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleEvent(event); ok {
				pending[path] = time.Now().Add(w.settle)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("inbox watcher: %v", err)

		case now := <-ticker.C:
			for _, path := range due(pending, now) {
				delete(pending, path)
				select {
				case queue <- path:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// handleEvent returns the file an event refers to when it should be ingested.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !candidate(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// existingFiles lists candidate files already in the directory, by name.
func (w *Watcher) existingFiles() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("inbox watcher: %v", err)
		return nil
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		if candidate(path) {
			paths = append(paths, path)
		}
	}
	return paths
}

// worker ingests queued paths one at a time. A file is ingested again only
// when its size or modification time changed since the last time.
func (w *Watcher) worker(ctx context.Context, queue <-chan string) {
	type stamp struct {
		size    int64
		modTime time.Time
	}
	seen := make(map[string]stamp)

	for path := range queue {
		if ctx.Err() != nil {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		s := stamp{size: info.Size(), modTime: info.ModTime()}
		if prev, ok := seen[path]; ok && prev == s {
			logger.Debug("Skipping unchanged %s", path)
			continue
		}
		seen[path] = s

		report, err := w.ingest.Ingest(ctx, []string{path}, w.progress)
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("inbox watcher: ingest %s: %v", path, err)
			}
			continue
		}
		for _, f := range report.Failures {
			logger.Warn("inbox watcher: %s: %v", f.Path, f.Err)
		}
	}
}

// due returns the pending paths whose settle time has passed, sorted.
func due(pending map[string]time.Time, now time.Time) []string {
	var paths []string
	for path, at := range pending {
		if !now.Before(at) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// candidate reports whether a file name looks like a finished, visible file.
func candidate(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	lower := strings.ToLower(name)
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	return true
}
