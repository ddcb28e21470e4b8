// Package normalize holds the pure string cleanup applied to every raw
// antagonist name before classification and identity resolution.
package normalize

import (
	"regexp"
	"strings"
)

var (
	parenRE = regexp.MustCompile(`\s*\([^)]*\)`)
	spaceRE = regexp.MustCompile(`\s+`)
)

// trailing punctuation stripped after the parenthetical pass
const trailingPunct = ".,;:!?*"

// Name cleans a raw antagonist name: trims, removes parenthetical alias
// spans entirely ("Green Goblin (Norman Osborn)" -> "Green Goblin"),
// strips trailing punctuation and collapses whitespace runs to one space.
//
// An empty result means the name is invalid and the mention must be
// skipped by the caller. Name is idempotent: Name(Name(x)) == Name(x).
func Name(raw string) string {
	s := strings.TrimSpace(raw)
	s = parenRE.ReplaceAllString(s, "")
	s = strings.TrimRight(s, trailingPunct)
	s = spaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// placeholder prefixes rejected case-insensitively. Names merely
// containing one of these (e.g. "The Unnamed One") are accepted.
var placeholderPrefixes = []string{"unknown", "unnamed", "unidentified"}

// IsPlaceholder reports whether a name stands for "we don't know who":
// exactly "?", or starting with one of the placeholder prefixes.
func IsPlaceholder(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "?" {
		return true
	}
	for _, p := range placeholderPrefixes {
		if strings.HasPrefix(n, p) {
			return true
		}
	}
	return false
}

// Key converts a name to the lookup form shared by the taxonomy registry
// and alias tables: lowercase with whitespace collapsed.
func Key(name string) string {
	return strings.ToLower(spaceRE.ReplaceAllString(strings.TrimSpace(name), " "))
}
