// Package fswatch calls a function whenever one of a set of files is
// written.  Bursts of events on a file are coalesced so editors that save
// in several steps trigger a single call.
package fswatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 100 * time.Millisecond

type Watcher struct {
	Debounce time.Duration
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	files    map[string]bool
}

func New(logger *zap.Logger, paths []string) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			w.Close()
			return nil, err
		}
		files[abs] = true
		// Watch the directory so files replaced by rename are still seen.
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return &Watcher{
		Debounce: DefaultDebounce,
		logger:   logger,
		watcher:  w,
		files:    files,
	}, nil
}

// Run calls fn with the path of each changed file until ctx is canceled.
// Calls for different files may run concurrently; calls for one file do
// not overlap.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	defer w.watcher.Close()
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	locks := make(map[string]*sync.Mutex)
	for path := range w.files {
		locks[path] = new(sync.Mutex)
	}
	var wg sync.WaitGroup
	defer func() {
		mu.Lock()
		for _, t := range timers {
			if t.Stop() {
				wg.Done()
			}
		}
		mu.Unlock()
		wg.Wait()
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.files[event.Name] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			path := event.Name
			mu.Lock()
			if t, ok := timers[path]; ok && t.Stop() {
				wg.Done()
			}
			wg.Add(1)
			timers[path] = time.AfterFunc(w.Debounce, func() {
				defer wg.Done()
				lock := locks[path]
				lock.Lock()
				defer lock.Unlock()
				fn(path)
			})
			mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}
