// Package fetch produces raw per-series issue lists from external
// sources. Each source maps its own format into models.SeriesInput; the
// resolver never sees source-specific shapes.
package fetch

import (
	"context"
	"log"

	"roguedex/pkg/models"
)

// Source is implemented by each external data source (wiki HTML / local
// mirror JSON).
type Source interface {
	Name() string
	FetchSeries(ctx context.Context) (*models.SeriesInput, error)
}

// IssueRange is the inclusive span of issue numbers to fetch.
type IssueRange struct {
	Start int
	End   int
}

// known series spans, used when the caller does not pass a range
var knownRanges = map[string]IssueRange{
	"Amazing Spider-Man":        {1, 441},
	"Amazing Spider-Man Annual": {1, 28},
	"Spectacular Spider-Man":    {1, 263},
	"Web of Spider-Man":         {1, 129},
}

// DefaultIssueRange returns the known issue span for a series. An
// unrecognized series logs a warning and gets a default numeric range
// rather than failing the run.
func DefaultIssueRange(series string) IssueRange {
	if r, ok := knownRanges[series]; ok {
		return r
	}
	log.Printf("[fetch] unrecognized series %q: defaulting to issues 1-100", series)
	return IssueRange{1, 100}
}
