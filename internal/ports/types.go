// Package ports defines the interfaces (contracts) that adapters must implement
// and the value types shared between the matching engine and its adapters.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "sort"

// VesselName is one registry entry: two script variants of the same vessel.
// Primary is the case-folding (Latin-script) spelling; Secondary is the
// non-case-folding (Thai-script) spelling. Either may be blank. An entry with
// both blank is invalid and is skipped during matching, never erased from the
// registry.
type VesselName struct {
	Primary   string
	Secondary string
}

// Empty reports whether both name variants are blank.
func (v VesselName) Empty() bool {
	return v.Primary == "" && v.Secondary == ""
}

// Display returns the name a vessel is keyed by in the association table:
// the primary spelling, or the secondary one when no primary exists.
func (v VesselName) Display() string {
	if v.Primary != "" {
		return v.Primary
	}
	return v.Secondary
}

// Strategy identifies which detection strategy produced a candidate.
type Strategy int

const (
	StrategyExact  Strategy = iota // normalized substring hit
	StrategyPhrase                 // word-boundary phrase hit
	StrategyFuzzy                  // edit-distance window hit
)

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyPhrase:
		return "phrase"
	case StrategyFuzzy:
		return "fuzzy"
	}
	return "unknown"
}

// Candidate is a provisional match of one vessel name at one location in one
// document's text. Position is a byte offset into the normalized text and has
// no meaning outside the document it was found in; it exists for tie-breaking.
type Candidate struct {
	Name     VesselName
	Score    int // 0–100
	Position int
	Strategy Strategy
}

// VesselMatch is the representative (highest-scoring, earliest) candidate for
// one vessel in one document.
type VesselMatch struct {
	Display string
	Best    Candidate
}

// DocumentMatches holds the deduplicated match set for a single document.
// Each vessel appears at most once regardless of how many times or via which
// strategy it matched.
type DocumentMatches struct {
	DocID   string
	Vessels []VesselMatch
}

// AssociationTable maps a vessel display name to the document IDs it was
// matched in. Document IDs within one vessel's list are unique and sorted.
type AssociationTable map[string][]string

// AssociationRow is one entry of the deterministic table ordering.
type AssociationRow struct {
	Display string
	DocIDs  []string
}

// Rows returns the table as rows sorted by display name, each with its
// document list sorted. Output is deterministic for a given table.
func (t AssociationTable) Rows() []AssociationRow {
	rows := make([]AssociationRow, 0, len(t))
	for display, docs := range t {
		sorted := make([]string, len(docs))
		copy(sorted, docs)
		sort.Strings(sorted)
		rows = append(rows, AssociationRow{Display: display, DocIDs: sorted})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Display < rows[j].Display })
	return rows
}
