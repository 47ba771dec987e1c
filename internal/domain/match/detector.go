package match

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/corey/vesselmatch/internal/ports"
)

const (
	// minFuzzyLen suppresses fuzzy scoring for short names: a 3-character
	// token is close (in edit distance) to too much of any text.
	minFuzzyLen = 4

	// maxWindowTokens bounds the fuzzy scan window. Vessel names are rarely
	// longer than four words.
	maxWindowTokens = 4
)

// Detector finds match candidates for one vessel name in one document's text.
// Strategies run in priority order per name variant and short-circuit: an
// exact hit is never also reported as a phrase or fuzzy hit.
type Detector struct {
	// Threshold is the minimum similarity score (0–100) for a fuzzy
	// candidate to qualify. Exact and phrase hits always score 100.
	Threshold int
}

// Detect runs all strategies for both name variants. normText is the
// case-folded normalized text; rawText is the case-preserving normalized
// text the Thai variant is searched in. At most one candidate is emitted per
// variant, so the result holds zero, one, or two candidates.
func (d Detector) Detect(normText, rawText string, name ports.VesselName) []ports.Candidate {
	var cands []ports.Candidate
	if c := d.DetectPrimary(normText, name, false); c != nil {
		cands = append(cands, *c)
	}
	if c := d.DetectSecondary(rawText, name); c != nil {
		cands = append(cands, *c)
	}
	return cands
}

// DetectPrimary matches the case-folding variant against the normalized
// text: exact substring, then word-boundary phrase, then fuzzy windows.
// skipExact is set when an exact prescan already ran over the whole registry;
// the exact strategy is then known to have missed and is not repeated.
// Returns nil when the variant is blank or nothing qualifies.
func (d Detector) DetectPrimary(normText string, name ports.VesselName, skipExact bool) *ports.Candidate {
	prim := Normalize(name.Primary)
	if prim == "" {
		return nil
	}

	if !skipExact {
		if idx := strings.Index(normText, prim); idx >= 0 {
			return &ports.Candidate{Name: name, Score: 100, Position: idx, Strategy: ports.StrategyExact}
		}
	}

	// Phrase match: the name delimited by non-word transitions. Catches
	// cases the plain substring check would, so only reachable when that
	// missed; kept as its own strategy for names containing regex-relevant
	// punctuation after normalization.
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(prim) + `\b`)
	if err == nil {
		if loc := re.FindStringIndex(normText); loc != nil {
			return &ports.Candidate{Name: name, Score: 100, Position: loc[0], Strategy: ports.StrategyPhrase}
		}
	}

	if len([]rune(prim)) < minFuzzyLen {
		return nil
	}
	return d.bestFuzzyWindow(normText, prim, name)
}

// DetectSecondary matches the Thai variant by exact substring only. Edit
// distance over a script without space-delimited words produces unreliable
// ratios, so no fuzzy scoring is attempted for it.
func (d Detector) DetectSecondary(rawText string, name ports.VesselName) *ports.Candidate {
	sec := NormalizeKeepCase(name.Secondary)
	if sec == "" {
		return nil
	}
	if idx := strings.Index(rawText, sec); idx >= 0 {
		return &ports.Candidate{Name: name, Score: 100, Position: idx, Strategy: ports.StrategyExact}
	}
	return nil
}

// bestFuzzyWindow scans contiguous windows of 1–4 space-delimited tokens and
// scores each against the name with a levenshtein ratio. The best-scoring
// window at or above the threshold wins; ties go to the earliest position.
func (d Detector) bestFuzzyWindow(normText, prim string, name ports.VesselName) *ports.Candidate {
	tokens := strings.Split(normText, " ")
	if normText == "" {
		return nil
	}

	// Byte offset of each token within normText (tokens are single-space
	// joined after normalization).
	offsets := make([]int, len(tokens))
	for i := 1; i < len(tokens); i++ {
		offsets[i] = offsets[i-1] + len(tokens[i-1]) + 1
	}

	var best *ports.Candidate
	for i := range tokens {
		window := ""
		for w := 0; w < maxWindowTokens && i+w < len(tokens); w++ {
			if w == 0 {
				window = tokens[i]
			} else {
				window += " " + tokens[i+w]
			}
			if len([]rune(window)) < minFuzzyLen {
				continue
			}
			score := Similarity(prim, window)
			if score < d.Threshold {
				continue
			}
			if best == nil || score > best.Score {
				best = &ports.Candidate{Name: name, Score: score, Position: offsets[i], Strategy: ports.StrategyFuzzy}
			}
		}
	}
	return best
}

// Similarity scores two strings on a 0–100 scale from their levenshtein
// distance: 100*(1 - dist/maxLen), truncated. Identical strings score 100;
// strings sharing no character score 0.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist > maxLen {
		dist = maxLen
	}
	return 100 * (maxLen - dist) / maxLen
}
