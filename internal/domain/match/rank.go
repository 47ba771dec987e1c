package match

import (
	"sort"

	"github.com/corey/vesselmatch/internal/ports"
)

// Rank orders candidates by score descending, then position ascending. The
// stable sort preserves detection order for candidates tied on both keys, so
// the first-ranked candidate is the representative one recorded for a vessel.
func Rank(cands []ports.Candidate) []ports.Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Position < cands[j].Position
	})
	return cands
}
