package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/corey/vesselmatch/internal/adapters/bbolt"
	"github.com/corey/vesselmatch/internal/adapters/csvfile"
	fsw "github.com/corey/vesselmatch/internal/adapters/fsnotify"
	"github.com/corey/vesselmatch/internal/adapters/textdir"
	"github.com/corey/vesselmatch/internal/domain/match"
	"github.com/corey/vesselmatch/internal/ports"
)

// Watch runs the full pipeline once, then keeps the output and run store in
// sync with the corpus directory until the context is canceled. A changed or
// added text file is re-matched and its entry in the run record replaced; a
// removed file's entry is dropped. The association table is refolded from
// the record after every update, so partial state is never written.
func (r *Runner) Watch(ctx context.Context) error {
	result, err := r.Run(ctx)
	if err != nil {
		return err
	}

	reg, err := csvfile.Open(r.cfg.RegistryPath, r.cfg.Columns)
	if err != nil {
		return err
	}
	vessels, err := reg.Vessels()
	if err != nil {
		return err
	}
	matcher, err := newMatcher(vessels, r.cfg.Threshold, r.logger)
	if err != nil {
		return err
	}

	var store *bbolt.Store
	if r.cfg.DBPath != "" {
		store, err = bbolt.NewStore(r.cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	session := &watchSession{
		cfg:     r.cfg,
		logger:  slog.Default().With("component", "watch"),
		reader:  textdir.NewReader(r.cfg.CorpusDir),
		matcher: matcher,
		reg:     reg,
		store:   store,
		corpus:  r.corpusID(),
		rec:     result.Record,
	}

	watcher, err := fsw.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Watch(r.cfg.CorpusDir, session.onChange, session.onRemove); err != nil {
		return fmt.Errorf("watch %s: %w", r.cfg.CorpusDir, err)
	}
	session.logger.Info("watching corpus", "dir", r.cfg.CorpusDir)

	<-ctx.Done()
	return nil
}

// watchSession holds the mutable state of one watch loop. Callbacks arrive
// on the watcher goroutine; mu serializes them against nothing else, but
// keeps the record/flush pair atomic if the adapter ever grows concurrent
// delivery.
type watchSession struct {
	cfg     Config
	logger  *slog.Logger
	reader  *textdir.Reader
	matcher *match.Matcher
	reg     *csvfile.File
	store   *bbolt.Store
	corpus  string

	mu  sync.Mutex
	rec *ports.RunRecord
}

func (s *watchSession) onChange(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.reader.Load(path)
	if err != nil {
		s.logger.Error("re-match failed", "file", filepath.Base(path), "error", err)
		return
	}
	docID := s.reader.DocID(filepath.Base(path))
	if doc == nil {
		// File emptied out: treat like a removal of its matches.
		delete(s.rec.Documents, docID)
		s.logger.Warn("document now empty, matches dropped", "doc", docID)
		s.flush()
		return
	}

	matches := s.matcher.MatchPages(doc.Pages)
	displays := make([]string, 0, len(matches))
	for _, vm := range matches {
		displays = append(displays, vm.Display)
	}
	s.rec.Documents[docID] = displays
	s.logger.Info("document re-matched", "doc", docID, "vessels", len(displays))
	s.flush()
}

func (s *watchSession) onRemove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docID := s.reader.DocID(filepath.Base(path))
	if _, ok := s.rec.Documents[docID]; !ok {
		return
	}
	delete(s.rec.Documents, docID)
	s.logger.Info("document removed", "doc", docID)
	s.flush()
}

// flush refolds the table from the record and rewrites both sinks.
func (s *watchSession) flush() {
	table := tableFromRecord(s.rec)
	s.rec.Stats.DocsScanned = len(s.rec.Documents)
	s.rec.Stats.VesselsMatched = len(table)
	s.rec.Stats.FinishedAt = time.Now().Unix()

	if err := s.reg.WriteMatches(s.cfg.OutputPath, table); err != nil {
		s.logger.Error("output write failed", "error", err)
	}
	if s.store != nil {
		if err := s.store.SaveRun(s.corpus, s.rec); err != nil {
			s.logger.Error("run store save failed", "error", err)
		}
	}
}
