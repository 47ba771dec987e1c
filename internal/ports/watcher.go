package ports

// Watcher monitors the corpus directory for document changes and triggers
// incremental re-matching. The adapter (fsnotify) must filter out non-text
// files and editor noise before invoking onChange. Only one Watch call should
// be active at a time.
type Watcher interface {
	// Watch starts monitoring dir. onChange is called with the absolute path
	// of each changed or created text file; onRemove with the absolute path
	// of each removed one. Callbacks may be invoked from any goroutine.
	Watch(dir string, onChange, onRemove func(path string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further callbacks fire. Safe to call multiple times.
	Stop() error
}

// PatternHit is one exact-substring occurrence reported by an ExactScanner.
type PatternHit struct {
	Pattern int // index into the pattern list the scanner was built with
	Start   int // byte offset of the occurrence (first occurrence per pattern)
}

// ExactScanner finds every registered pattern occurring in a text in a single
// pass. It is an optional fast path for the detector's exact-substring
// strategy; matching results must be identical with or without it.
type ExactScanner interface {
	Scan(text string) []PatternHit
	PatternCount() int
}
