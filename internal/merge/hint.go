package merge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"roguedex/internal/normalize"
)

// Hint is the structured form of a chronological placement annotation:
// "between <series descriptor> #X and #Y".
type Hint struct {
	Series string
	IssueA int
	IssueB int
}

// HintParseError marks a hint that does not match the expected shape. The
// caller falls back to appending the entry at the end of the timeline.
type HintParseError struct {
	Input string
}

func (e *HintParseError) Error() string {
	return fmt.Sprintf("unparsable placement hint %q", e.Input)
}

// the second series descriptor, when present, is redundant and ignored
var hintRE = regexp.MustCompile(`(?i)^\s*between\s+(.+?)\s*#(\d+)\s+and\s+(?:(?:.+?)\s*)?#(\d+)\s*$`)

// ParseHint parses a free-text placement hint into its structured form.
func ParseHint(s string) (Hint, error) {
	m := hintRE.FindStringSubmatch(s)
	if m == nil {
		return Hint{}, &HintParseError{Input: s}
	}
	a, err := strconv.Atoi(m[2])
	if err != nil {
		return Hint{}, &HintParseError{Input: s}
	}
	b, err := strconv.Atoi(m[3])
	if err != nil {
		return Hint{}, &HintParseError{Input: s}
	}
	return Hint{Series: strings.TrimSpace(m[1]), IssueA: a, IssueB: b}, nil
}

var volumeRE = regexp.MustCompile(`(?i)\s*\bvol(?:ume)?\.?\s*\d+`)

// normalizeSeriesName strips volume-number tokens and parenthetical
// annotations so "Amazing Spider-Man Vol. 2 (1999)" and "Amazing
// Spider-Man" compare equal.
func normalizeSeriesName(s string) string {
	s = normalize.Name(s)
	s = volumeRE.ReplaceAllString(s, "")
	return normalize.Key(s)
}

// seriesMatches reports whether a hint's series descriptor refers to a
// timeline entry's series, by exact or prefix match on the normalized
// names. A flagship descriptor never prefix-claims an Annual series: the
// annuals have their own descriptors.
func seriesMatches(descriptor, series string) bool {
	d := normalizeSeriesName(descriptor)
	s := normalizeSeriesName(series)
	if d == "" || s == "" {
		return false
	}
	if d == s {
		return true
	}
	if strings.HasPrefix(s, d) {
		if strings.Contains(s, "annual") && !strings.Contains(d, "annual") {
			return false
		}
		return true
	}
	return false
}
