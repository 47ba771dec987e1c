package match

import (
	"errors"
	"fmt"

	"github.com/corey/vesselmatch/internal/ports"
)

// ErrEmptyRegistry is returned when the registry holds no usable entry.
// An all-blank registry is a configuration error, not a data-quality warning.
var ErrEmptyRegistry = errors.New("vessel registry has no non-empty entries")

// Matcher drives the detector over every registry entry against one
// document's text. It holds no per-document state: one Matcher is built per
// run and is safe to invoke from concurrent per-document goroutines.
type Matcher struct {
	reg     []ports.VesselName
	det     Detector
	skipped int

	primScanner ports.ExactScanner
	primTargets []int // scanner pattern index -> registry index
	secScanner  ports.ExactScanner
	secTargets  []int
}

// NewMatcher validates the threshold and registry and builds a matcher.
// Entries with both variants blank are counted as skipped, not erased.
func NewMatcher(reg []ports.VesselName, threshold int) (*Matcher, error) {
	if threshold < 0 || threshold > 100 {
		return nil, fmt.Errorf("match threshold %d outside [0,100]", threshold)
	}
	m := &Matcher{reg: reg, det: Detector{Threshold: threshold}}
	usable := 0
	for _, name := range reg {
		if name.Empty() {
			m.skipped++
			continue
		}
		usable++
	}
	if usable == 0 {
		return nil, ErrEmptyRegistry
	}
	return m, nil
}

// SkippedEntries reports how many registry rows had both variants blank.
// Surfaced by the caller as a data-quality warning.
func (m *Matcher) SkippedEntries() int { return m.skipped }

// Threshold returns the configured fuzzy threshold.
func (m *Matcher) Threshold() int { return m.det.Threshold }

// PrimaryPatterns returns the normalized primary spellings and, parallel to
// them, the registry index each belongs to. Used to build an exact prescan.
func (m *Matcher) PrimaryPatterns() ([]string, []int) {
	var pats []string
	var targets []int
	for i, name := range m.reg {
		if p := Normalize(name.Primary); p != "" {
			pats = append(pats, p)
			targets = append(targets, i)
		}
	}
	return pats, targets
}

// SecondaryPatterns returns the case-preserved secondary spellings and their
// registry indices.
func (m *Matcher) SecondaryPatterns() ([]string, []int) {
	var pats []string
	var targets []int
	for i, name := range m.reg {
		if p := NormalizeKeepCase(name.Secondary); p != "" {
			pats = append(pats, p)
			targets = append(targets, i)
		}
	}
	return pats, targets
}

// UseScanners attaches exact-substring prescans for the primary and secondary
// pattern sets. Either may be nil. Match results are identical with or
// without scanners; they replace per-name substring probes with one pass per
// document.
func (m *Matcher) UseScanners(prim, sec ports.ExactScanner) {
	if primPats, primTargets := m.PrimaryPatterns(); prim != nil && prim.PatternCount() == len(primPats) {
		m.primScanner = prim
		m.primTargets = primTargets
	}
	if secPats, secTargets := m.SecondaryPatterns(); sec != nil && sec.PatternCount() == len(secPats) {
		m.secScanner = sec
		m.secTargets = secTargets
	}
}

// MatchDocument matches every registry entry against one document's text and
// returns the deduplicated per-vessel representatives, in registry order.
func (m *Matcher) MatchDocument(text string) []ports.VesselMatch {
	normText := Normalize(text)
	rawText := NormalizeKeepCase(text)

	// Exact prescan: one automaton pass instead of a substring probe per name.
	primExact := m.prescan(m.primScanner, m.primTargets, normText)
	secExact := m.prescan(m.secScanner, m.secTargets, rawText)

	var out []ports.VesselMatch
	seen := make(map[string]bool)
	for i, name := range m.reg {
		if name.Empty() {
			continue
		}

		var cands []ports.Candidate
		if m.primScanner != nil && Normalize(name.Primary) != "" {
			if pos, ok := primExact[i]; ok {
				cands = append(cands, ports.Candidate{Name: name, Score: 100, Position: pos, Strategy: ports.StrategyExact})
			} else if c := m.det.DetectPrimary(normText, name, true); c != nil {
				cands = append(cands, *c)
			}
		} else if c := m.det.DetectPrimary(normText, name, false); c != nil {
			cands = append(cands, *c)
		}

		if m.secScanner != nil && NormalizeKeepCase(name.Secondary) != "" {
			if pos, ok := secExact[i]; ok {
				cands = append(cands, ports.Candidate{Name: name, Score: 100, Position: pos, Strategy: ports.StrategyExact})
			}
		} else if c := m.det.DetectSecondary(rawText, name); c != nil {
			cands = append(cands, *c)
		}

		if len(cands) == 0 {
			continue
		}
		best := Rank(cands)[0]
		display := name.Display()
		if seen[display] {
			continue
		}
		seen[display] = true
		out = append(out, ports.VesselMatch{Display: display, Best: best})
	}
	return out
}

// MatchPages matches each page independently and merges the results under
// one document. A vessel matched on several pages keeps its highest-scoring
// representative; ties keep the earliest page's.
func (m *Matcher) MatchPages(pages []string) []ports.VesselMatch {
	var out []ports.VesselMatch
	index := make(map[string]int)
	for _, page := range pages {
		for _, vm := range m.MatchDocument(page) {
			at, ok := index[vm.Display]
			if !ok {
				index[vm.Display] = len(out)
				out = append(out, vm)
				continue
			}
			if vm.Best.Score > out[at].Best.Score {
				out[at] = vm
			}
		}
	}
	return out
}

// prescan runs a scanner over text and maps each hit back to its registry
// index, keeping the first (lowest) offset per entry.
func (m *Matcher) prescan(sc ports.ExactScanner, targets []int, text string) map[int]int {
	if sc == nil {
		return nil
	}
	hits := make(map[int]int)
	for _, h := range sc.Scan(text) {
		if h.Pattern < 0 || h.Pattern >= len(targets) {
			continue
		}
		reg := targets[h.Pattern]
		if pos, ok := hits[reg]; !ok || h.Start < pos {
			hits[reg] = h.Start
		}
	}
	return hits
}

// MatchDocument is the standalone form: build a matcher, match one text.
func MatchDocument(text string, reg []ports.VesselName, threshold int) ([]ports.VesselMatch, error) {
	m, err := NewMatcher(reg, threshold)
	if err != nil {
		return nil, err
	}
	return m.MatchDocument(text), nil
}
