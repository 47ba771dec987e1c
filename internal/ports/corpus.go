package ports

// Document is one already-extracted, UTF-8 plain-text document. Pages holds
// the per-page text when the source file carried page markers; an unpaginated
// file yields a single page. ID is the stable external identifier (the
// original report filename) the association table records.
type Document struct {
	ID    string
	Pages []string
}

// DocumentError records a per-document load or decode failure. Failed
// documents are excluded from aggregation; the rest of the corpus is
// unaffected.
type DocumentError struct {
	DocID string
	Err   error
}

// CorpusSource loads the document corpus the engine matches against.
type CorpusSource interface {
	// Documents returns every readable document plus a record of the ones
	// that failed to load. The returned error is reserved for corpus-level
	// failures (directory missing, unreadable); individual file failures go
	// into the second return value.
	Documents() ([]Document, []DocumentError, error)
}

// RegistrySource loads the vessel registry. Blank cells are returned as empty
// strings, never as errors; row order is preserved.
type RegistrySource interface {
	Vessels() ([]VesselName, error)
}

// AssociationSink persists the final association table, typically back into
// the tabular structure the registry was read from.
type AssociationSink interface {
	WriteAssociations(table AssociationTable) error
}
