// Package match implements the vessel matching engine: name normalization,
// multi-strategy candidate detection (exact substring, phrase-boundary exact,
// fuzzy edit-distance windows), ranking, per-document matching, and
// cross-document aggregation into the association table.
package match

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a Latin-script name or text body for comparison:
// NFC composition, case folding, whitespace collapse, and period stripping
// (so "M.V. Blue Marlin" and "MV Blue Marlin" compare equal).
// Idempotent and total; empty input yields empty output.
func Normalize(s string) string {
	return collapseSpace(strings.ToLower(stripPeriods(norm.NFC.String(s))))
}

// NormalizeKeepCase canonicalizes without case folding, for the Thai-script
// variant and for the raw text it is searched in. Thai has no case to fold
// and its combining marks are significant, so only NFC composition, period
// stripping, and whitespace collapse are applied.
func NormalizeKeepCase(s string) string {
	return collapseSpace(stripPeriods(norm.NFC.String(s)))
}

func stripPeriods(s string) string {
	return strings.ReplaceAll(s, ".", "")
}

// collapseSpace collapses runs of whitespace to single spaces and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
