package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corey/vesselmatch/internal/adapters/ahocorasick"
	"github.com/corey/vesselmatch/internal/adapters/bbolt"
	"github.com/corey/vesselmatch/internal/adapters/csvfile"
	"github.com/corey/vesselmatch/internal/adapters/textdir"
	"github.com/corey/vesselmatch/internal/domain/match"
	"github.com/corey/vesselmatch/internal/ports"
)

// RunResult summarizes one completed matching run.
type RunResult struct {
	Table  ports.AssociationTable
	Record *ports.RunRecord
	Failed []ports.DocumentError
}

// Runner executes the batch pipeline: load registry, match every corpus
// document against it in parallel, aggregate, persist, write the output CSV.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

// NewRunner validates the configuration and builds a runner.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Runner{
		cfg:    cfg,
		logger: slog.Default().With("component", "runner"),
	}, nil
}

// Run executes one full pass over the corpus. Per-document failures are
// recorded in the result, not returned as errors; only configuration and
// I/O-boundary problems abort the run.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	started := time.Now()

	reg, err := csvfile.Open(r.cfg.RegistryPath, r.cfg.Columns)
	if err != nil {
		return nil, err
	}
	vessels, err := reg.Vessels()
	if err != nil {
		return nil, err
	}
	r.logger.Info("registry loaded", "path", r.cfg.RegistryPath, "rows", len(vessels))

	matcher, err := newMatcher(vessels, r.cfg.Threshold, r.logger)
	if err != nil {
		return nil, err
	}

	reader := textdir.NewReader(r.cfg.CorpusDir)
	docs, failed, err := reader.Documents()
	if err != nil {
		return nil, err
	}
	r.logger.Info("corpus loaded", "dir", r.cfg.CorpusDir, "documents", len(docs), "failed", len(failed))

	perDoc, err := matchAll(ctx, matcher, docs, r.cfg.Workers)
	if err != nil {
		return nil, err
	}

	rec := &ports.RunRecord{Documents: perDoc}
	table := tableFromRecord(rec)
	rec.Stats = ports.RunStats{
		DocsScanned:    len(docs),
		DocsFailed:     len(failed),
		VesselsMatched: len(table),
		Threshold:      r.cfg.Threshold,
		StartedAt:      started.Unix(),
		FinishedAt:     time.Now().Unix(),
	}

	if err := r.persist(rec); err != nil {
		return nil, err
	}
	if err := reg.WriteMatches(r.cfg.OutputPath, table); err != nil {
		return nil, err
	}

	r.logger.Info("run complete",
		"documents", rec.Stats.DocsScanned,
		"failed", rec.Stats.DocsFailed,
		"vessels_matched", rec.Stats.VesselsMatched,
		"output", r.cfg.OutputPath,
	)
	for _, f := range failed {
		r.logger.Error("document excluded from aggregation", "doc", f.DocID, "error", f.Err)
	}

	return &RunResult{Table: table, Record: rec, Failed: failed}, nil
}

// newMatcher builds the run's matcher with aho-corasick exact prescans
// attached for both pattern sets.
func newMatcher(vessels []ports.VesselName, threshold int, logger *slog.Logger) (*match.Matcher, error) {
	matcher, err := match.NewMatcher(vessels, threshold)
	if err != nil {
		return nil, err
	}
	if n := matcher.SkippedEntries(); n > 0 {
		logger.Warn("registry rows with no usable name skipped", "rows", n)
	}

	primPats, _ := matcher.PrimaryPatterns()
	secPats, _ := matcher.SecondaryPatterns()
	matcher.UseScanners(ahocorasick.NewScanner(primPats), ahocorasick.NewScanner(secPats))
	return matcher, nil
}

// matchAll matches every document against the registry with a bounded worker
// pool. The aggregation map is written only by the single collect goroutine;
// workers communicate results over a channel. A canceled context aborts
// scheduling; results already collected stay consistent.
func matchAll(ctx context.Context, matcher *match.Matcher, docs []ports.Document, workers int) (map[string][]string, error) {
	results := make(chan ports.DocumentMatches, workers)

	perDoc := make(map[string][]string, len(docs))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for dm := range results {
			displays := make([]string, 0, len(dm.Vessels))
			for _, vm := range dm.Vessels {
				displays = append(displays, vm.Display)
			}
			perDoc[dm.DocID] = displays
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches := matcher.MatchPages(doc.Pages)
			select {
			case results <- ports.DocumentMatches{DocID: doc.ID, Vessels: matches}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err := g.Wait()
	close(results)
	<-done
	if err != nil {
		return nil, err
	}
	return perDoc, nil
}

// tableFromRecord folds a run record's per-document matches into the
// association table. The record is the source of truth; the table is always
// reconstructible from it.
func tableFromRecord(rec *ports.RunRecord) ports.AssociationTable {
	agg := match.NewAggregator()
	for docID, displays := range rec.Documents {
		agg.AddDisplays(docID, displays)
	}
	return agg.Table()
}

// persist saves the run record under the corpus identity. An empty DBPath
// disables persistence.
func (r *Runner) persist(rec *ports.RunRecord) error {
	if r.cfg.DBPath == "" {
		return nil
	}
	if dir := filepath.Dir(r.cfg.DBPath); dir != "." {
		if err := ensureDir(dir); err != nil {
			return err
		}
	}
	store, err := bbolt.NewStore(r.cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(r.corpusID(), rec)
}

// corpusID identifies the corpus in the run store.
func (r *Runner) corpusID() string {
	abs, err := filepath.Abs(r.cfg.CorpusDir)
	if err != nil {
		return r.cfg.CorpusDir
	}
	return abs
}
