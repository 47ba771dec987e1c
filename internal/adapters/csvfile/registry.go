// Package csvfile implements the registry source and association sink over a
// vessel CSV file. The registry holds one row per vessel with a Latin-script
// and a Thai-script name column; the output file is the same table with a
// report-links column carrying the matched document IDs.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corey/vesselmatch/internal/ports"
)

// LinkSeparator joins multiple document IDs within one cell.
const LinkSeparator = "; "

// Columns names the CSV columns the adapter reads and writes.
type Columns struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Matches   string `yaml:"matches"`
}

// DefaultColumns are the header names of the fleet spreadsheet export.
func DefaultColumns() Columns {
	return Columns{
		Primary:   "Vessel Name",
		Secondary: "Thai name",
		Matches:   "Link to report which mentions",
	}
}

// File is a loaded registry CSV: header plus all data rows, with the name
// columns resolved. Rows are never dropped, so writing the output preserves
// the input's row identity.
type File struct {
	path   string
	cols   Columns
	header []string
	rows   [][]string

	primIdx  int
	secIdx   int
	matchIdx int // -1 when the matches column doesn't exist yet
}

// Open reads and parses the registry CSV. Both name columns must exist;
// blank cells are permitted and read as empty strings.
func Open(path string, cols Columns) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1 // ragged rows tolerated; cells beyond header ignored
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("registry %s is empty", filepath.Base(path))
	}

	f := &File{
		path:     path,
		cols:     cols,
		header:   records[0],
		rows:     records[1:],
		primIdx:  -1,
		secIdx:   -1,
		matchIdx: -1,
	}
	for i, name := range f.header {
		switch strings.TrimSpace(name) {
		case cols.Primary:
			f.primIdx = i
		case cols.Secondary:
			f.secIdx = i
		case cols.Matches:
			f.matchIdx = i
		}
	}
	if f.primIdx < 0 {
		return nil, fmt.Errorf("registry %s: column %q not found", filepath.Base(path), cols.Primary)
	}
	if f.secIdx < 0 {
		return nil, fmt.Errorf("registry %s: column %q not found", filepath.Base(path), cols.Secondary)
	}
	return f, nil
}

// Vessels returns every data row as a name pair, blanks included, in row
// order. Entries with both cells blank are returned as-is; skipping them is
// the matcher's decision, not the reader's.
func (f *File) Vessels() ([]ports.VesselName, error) {
	out := make([]ports.VesselName, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, ports.VesselName{
			Primary:   strings.TrimSpace(cell(row, f.primIdx)),
			Secondary: strings.TrimSpace(cell(row, f.secIdx)),
		})
	}
	return out, nil
}

// WriteMatches writes the registry back to outPath with the matches column
// filled from the association table. Rows whose vessel matched get the
// joined, sorted document list; other rows keep whatever the cell held.
// The column is appended to the header when the input didn't carry it.
func (f *File) WriteMatches(outPath string, table ports.AssociationTable) error {
	header := f.header
	matchIdx := f.matchIdx
	if matchIdx < 0 {
		header = append(append([]string{}, f.header...), f.cols.Matches)
		matchIdx = len(header) - 1
	}

	links := make(map[string]string, len(table))
	for _, row := range table.Rows() {
		links[row.Display] = strings.Join(row.DocIDs, LinkSeparator)
	}

	records := make([][]string, 0, len(f.rows)+1)
	records = append(records, header)
	for _, row := range f.rows {
		out := make([]string, len(header))
		copy(out, row)
		name := ports.VesselName{
			Primary:   strings.TrimSpace(cell(row, f.primIdx)),
			Secondary: strings.TrimSpace(cell(row, f.secIdx)),
		}
		if joined, ok := links[name.Display()]; ok {
			out[matchIdx] = joined
		}
		records = append(records, out)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	fh, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := csv.NewWriter(fh)
	if err := w.WriteAll(records); err != nil {
		fh.Close()
		return fmt.Errorf("write output: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fh.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return fh.Close()
}

// Sink adapts a File plus an output path to the ports.AssociationSink
// interface.
type Sink struct {
	File    *File
	OutPath string
}

func (s Sink) WriteAssociations(table ports.AssociationTable) error {
	return s.File.WriteMatches(s.OutPath, table)
}

// RowCount returns the number of data rows.
func (f *File) RowCount() int { return len(f.rows) }

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
