// Package textdir implements the ports.CorpusSource interface over a
// directory of extracted report text. Files are the output of the upstream
// extraction/translation step: one UTF-8 .txt per source report, optionally
// carrying per-page markers, with the source filename recoverable from the
// text filename.
package textdir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/corey/vesselmatch/internal/ports"
)

// pageMarker separates pages inside one extracted text file.
var pageMarker = regexp.MustCompile(`(?m)^--- Page \d+ ---\s*$`)

// Reader loads a corpus directory. TranslatedPrefix and RestoredExt recover
// the original report filename from the text filename: "translated_x.pdf.txt"
// becomes "x.pdf".
type Reader struct {
	Dir              string
	TranslatedPrefix string
	RestoredExt      string

	logger *slog.Logger
}

// NewReader returns a reader with the upstream pipeline's naming convention.
func NewReader(dir string) *Reader {
	return &Reader{
		Dir:              dir,
		TranslatedPrefix: "translated_",
		RestoredExt:      ".pdf",
		logger:           slog.Default().With("component", "textdir"),
	}
}

// Documents loads every .txt file in the corpus directory. Files that fail
// to read or decode are reported as per-document failures and excluded;
// files that decode to empty text are skipped with a warning. A missing or
// unreadable directory is a corpus-level error.
func (r *Reader) Documents() ([]ports.Document, []ports.DocumentError, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var docs []ports.Document
	var failed []ports.DocumentError
	for _, name := range names {
		doc, err := r.Load(filepath.Join(r.Dir, name))
		if err != nil {
			r.logger.Error("document load failed", "file", name, "error", err)
			failed = append(failed, ports.DocumentError{DocID: r.DocID(name), Err: err})
			continue
		}
		if doc == nil {
			r.logger.Warn("document is empty, skipping", "file", name)
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, failed, nil
}

// Load reads one text file into a document. Returns nil, nil for a file
// whose text is empty after trimming (data-quality skip, not a failure).
func (r *Reader) Load(path string) (*ports.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: not valid UTF-8", filepath.Base(path))
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return &ports.Document{
		ID:    r.DocID(filepath.Base(path)),
		Pages: splitPages(text),
	}, nil
}

// DocID recovers the original report filename from a corpus filename.
// "translated_report7.pdf.txt" -> "report7.pdf"; a file named outside the
// convention keeps its own name as the ID.
func (r *Reader) DocID(filename string) string {
	if !strings.HasPrefix(filename, r.TranslatedPrefix) {
		return filename
	}
	id := strings.TrimPrefix(filename, r.TranslatedPrefix)
	id = strings.TrimSuffix(id, ".txt")
	if r.RestoredExt != "" && !strings.HasSuffix(id, r.RestoredExt) {
		id += r.RestoredExt
	}
	return id
}

// splitPages cuts the text at page markers. A file without markers is a
// single page. Empty segments (text before the first marker, blank pages)
// are dropped.
func splitPages(text string) []string {
	parts := pageMarker.Split(text, -1)
	var pages []string
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		pages = append(pages, p)
	}
	return pages
}
