package merge

import (
	"strings"
	"time"
)

// release date layouts seen across scraped sources, most specific first
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"2006-01",
	"2006",
}

// parseReleaseDate attempts the known layouts in order. The second return
// is false for empty or unrecognized dates; such entries sort after all
// dated ones.
func parseReleaseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
