package ports

// RunStats summarizes one matching run for the run store.
type RunStats struct {
	DocsScanned    int   `json:"docs_scanned"`
	DocsFailed     int   `json:"docs_failed"`
	VesselsMatched int   `json:"vessels_matched"`
	Threshold      int   `json:"threshold"`
	StartedAt      int64 `json:"started_at"`
	FinishedAt     int64 `json:"finished_at"`
}

// RunRecord is the persisted state of a matching run. Documents maps each
// document ID to the display names matched in it. The association table is
// always derivable from it by a pure fold, so watch mode can replace one
// document's entry and rebuild the table without touching the others.
type RunRecord struct {
	Documents map[string][]string `json:"documents"`
	Stats     RunStats            `json:"stats"`
}

// RunStore persists run state to durable storage, keyed by corpus identity.
/// Writes must be transactional: a crash mid-write must not corrupt previously
// committed data.
type RunStore interface {
	// SaveRun persists the full run record for a corpus. Overwrites any
	// prior record for this corpusID.
	SaveRun(corpusID string, rec *RunRecord) error

	// LoadRun retrieves the run record for a corpus.
	// Returns nil, nil if no record exists (fresh corpus).
	LoadRun(corpusID string) (*RunRecord, error)

	// DeleteRun removes all data for a corpus. Idempotent.
	DeleteRun(corpusID string) error

	Close() error
}
