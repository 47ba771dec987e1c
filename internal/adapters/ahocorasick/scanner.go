// Package ahocorasick implements the ports.ExactScanner interface using an
// Aho-Corasick automaton. One pass over a document finds every registry
// spelling that occurs in it, replacing a substring probe per vessel with
// O(text + patterns + hits) work.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/vesselmatch/internal/ports"
)

// Scanner holds a compiled automaton over one pattern set. Build once per
// run; Scan is safe for concurrent use.
type Scanner struct {
	automaton aho.AhoCorasick
	count     int
}

// NewScanner compiles the automaton. Pattern indices in Scan results refer
// to positions in this slice.
func NewScanner(patterns []string) *Scanner {
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		MatchKind: aho.StandardMatch, // required for IterOverlapping
		DFA:       true,
	})
	p := make([]string, len(patterns))
	copy(p, patterns)
	return &Scanner{
		automaton: builder.Build(p),
		count:     len(p),
	}
}

// Scan returns the first occurrence of each pattern present in text.
func (s *Scanner) Scan(text string) []ports.PatternHit {
	if s.count == 0 || text == "" {
		return nil
	}

	first := make(map[int]int)
	iter := s.automaton.IterOverlapping(text)
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		if pos, ok := first[m.Pattern()]; !ok || m.Start() < pos {
			first[m.Pattern()] = m.Start()
		}
	}
	if len(first) == 0 {
		return nil
	}

	hits := make([]ports.PatternHit, 0, len(first))
	for pat, pos := range first {
		hits = append(hits, ports.PatternHit{Pattern: pat, Start: pos})
	}
	return hits
}

// PatternCount returns the number of patterns the automaton was built with.
func (s *Scanner) PatternCount() int {
	return s.count
}
