// Package fsnotify implements the ports.Watcher interface using
// github.com/fsnotify/fsnotify. It watches the corpus directory for extracted
// text files, filters out editor noise, and debounces rapid events (the
// upstream pipeline writes each translation in several bursts).
package fsnotify

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// File suffixes that never correspond to corpus documents.
var ignoreSuffixes = []string{
	".swp",
	".tmp",
	"~",
	".DS_Store",
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new corpus directory watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring dir (non-recursive: the corpus is a flat directory
// of text files). onChange fires for written or created .txt files, onRemove
// for removed or renamed-away ones. Callbacks run on the watcher goroutine.
func (w *Watcher) Watch(dir string, onChange, onRemove func(path string)) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := w.fw.Add(absDir); err != nil {
		return err
	}

	// Trailing-edge debounce: a burst of Create/Write events for one file
	// (editors and the upstream pipeline both write in several chunks)
	// collapses into a single onChange once the file goes quiet.
	pending := make(map[string]*time.Timer)
	var pmu sync.Mutex
	const debounceInterval = 100 * time.Millisecond

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name
				if shouldIgnorePath(path) {
					continue
				}

				if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					pmu.Lock()
					if timer, exists := pending[path]; exists {
						timer.Stop()
						delete(pending, path)
					}
					pmu.Unlock()
					onRemove(path)
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				pmu.Lock()
				if timer, exists := pending[path]; exists {
					timer.Reset(debounceInterval)
				} else {
					pending[path] = time.AfterFunc(debounceInterval, func() {
						pmu.Lock()
						delete(pending, path)
						pmu.Unlock()
						select {
						case <-w.done:
						default:
							onChange(path)
						}
					})
				}
				pmu.Unlock()

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed; fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// shouldIgnorePath reports whether a path is not a corpus text file.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return !strings.HasSuffix(base, ".txt")
}
