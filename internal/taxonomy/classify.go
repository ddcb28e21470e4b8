package taxonomy

import (
	"regexp"

	"roguedex/internal/normalize"
)

// Kind is the taxonomy outcome for one name.
type Kind int

const (
	Individual Kind = iota
	Group
)

func (k Kind) String() string {
	if k == Group {
		return "group"
	}
	return "individual"
}

// groupPatterns catch team-shaped names the registry does not know.
// Tested only after the registry misses.
var groupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhenchmen\b`),
	regexp.MustCompile(`(?i)\bgang\b`),
	regexp.MustCompile(`(?i)\bsquad\b`),
	regexp.MustCompile(`(?i)\bsix\b`),
	regexp.MustCompile(`(?i)\bforce\b`),
	regexp.MustCompile(`(?i)\bthugs\b`),
	regexp.MustCompile(`(?i)\bsyndicate\b`),
	regexp.MustCompile(`(?i)\bbrotherhood\b`),
	regexp.MustCompile(`(?i)\bcrew\b`),
	regexp.MustCompile(`(?i)\bpack\b`),
	regexp.MustCompile(`(?i)\barmy\b`),
	regexp.MustCompile(`(?i)\blegion\b`),
	regexp.MustCompile(`(?i)\bcartel\b`),
	regexp.MustCompile(`(?i)\bsoldiers\b`),
}

// Classify decides whether a normalized name is an individual or a group.
// It is a pure function of (name, registry contents): the same inputs
// always give the same answer, regardless of call order or count.
//
// Placeholder names classify as individual; they are filtered out before
// resolution and must never create a group.
func Classify(name string, reg *Registry) Kind {
	if normalize.IsPlaceholder(name) {
		return Individual
	}
	if _, ok := reg.Lookup(name); ok {
		return Group
	}
	for _, re := range groupPatterns {
		if re.MatchString(name) {
			return Group
		}
	}
	return Individual
}
