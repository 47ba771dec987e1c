package match

import "github.com/corey/vesselmatch/internal/ports"

// Aggregator folds per-document match results into the association table.
// It is the single synchronization point of a run and must be driven from
// one goroutine (the runner's merge loop); merging is idempotent and
// commutative over the order and repetition of per-document inputs.
type Aggregator struct {
	// display name -> set of document IDs
	assoc map[string]map[string]bool
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{assoc: make(map[string]map[string]bool)}
}

// Add merges one document's match set. A vessel matched under either of its
// spellings lands under the same display name, so a primary-variant hit in
// one document and a secondary-variant hit in another produce one row, not
// two. Re-adding the same document is a no-op.
func (a *Aggregator) Add(docID string, matches []ports.VesselMatch) {
	for _, vm := range matches {
		a.addDisplay(docID, vm.Display)
	}
}

// AddDisplays merges a document's match set given only display names, as
// replayed from a persisted run record.
func (a *Aggregator) AddDisplays(docID string, displays []string) {
	for _, d := range displays {
		a.addDisplay(docID, d)
	}
}

func (a *Aggregator) addDisplay(docID, display string) {
	if display == "" {
		return
	}
	set := a.assoc[display]
	if set == nil {
		set = make(map[string]bool)
		a.assoc[display] = set
	}
	set[docID] = true
}

// Table materializes the association table. The table's Rows accessor gives
// the deterministic (sorted) ordering; the map itself carries unsorted sets.
func (a *Aggregator) Table() ports.AssociationTable {
	t := make(ports.AssociationTable, len(a.assoc))
	for display, docs := range a.assoc {
		list := make([]string, 0, len(docs))
		for id := range docs {
			list = append(list, id)
		}
		t[display] = list
	}
	return t
}

// Aggregate is the standalone fold over a complete per-document result map.
func Aggregate(perDocument map[string][]ports.VesselMatch) ports.AssociationTable {
	a := NewAggregator()
	for docID, matches := range perDocument {
		a.Add(docID, matches)
	}
	return a.Table()
}
