package models

import "time"

// IdentitySource says which key space an identity was created in.
// It is fixed at creation and never changes: a name-keyed identity and a
// URL-keyed identity stay separate even when they share a display name.
type IdentitySource string

const (
	SourceURL  IdentitySource = "url"
	SourceName IdentitySource = "name"
)

// Villain is a resolved individual identity: every mention sharing the
// identity's key, aggregated over one series (or over all merged series).
type Villain struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Aliases               []string       `json:"aliases"`
	URL                   string         `json:"url,omitempty"`
	ImageURL              string         `json:"imageUrl,omitempty"`
	IdentitySource        IdentitySource `json:"identitySource"`
	FirstAppearance       int            `json:"firstAppearance"`
	FirstAppearanceSeries string         `json:"firstAppearanceSeries,omitempty"`
	Appearances           []int          `json:"appearances"`
	Frequency             int            `json:"frequency"`
}

// Group is a resolved team/organization identity. Per-issue membership is
// deliberately not stored here; it lives on each TimelineEntry, re-derived
// from the individuals co-occurring in that one issue.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Appearances []int  `json:"appearances"`
	Frequency   int    `json:"frequency"`
}

// GroupAppearance is one group showing up in one timeline entry, with the
// members present in that specific issue only.
type GroupAppearance struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// TimelineEntry is one issue slot in a series (or merged) timeline.
//
// Villains, VillainURLs and VillainIDs are positionally parallel arrays;
// downstream consumers zip them by index, so an entry must never reorder
// one without the others. VillainURLs carries nil for name-keyed identities.
type TimelineEntry struct {
	Issue                      int               `json:"issue"`
	ReleaseDate                string            `json:"releaseDate,omitempty"`
	ChronologicalPlacementHint string            `json:"chronologicalPlacementHint,omitempty"`
	VillainCount               int               `json:"villainCount"`
	Villains                   []string          `json:"villains"`
	VillainURLs                []*string         `json:"villainUrls"`
	VillainIDs                 []string          `json:"villainIds"`
	Series                     string            `json:"series,omitempty"`
	ChronologicalPosition      int               `json:"chronologicalPosition,omitempty"`
	Groups                     []GroupAppearance `json:"groups,omitempty"`
}

// Stats are the aggregate numbers recomputed after every processing stage.
type Stats struct {
	TotalVillains     int     `json:"totalVillains"`
	MostFrequent      string  `json:"mostFrequent"`
	MostFrequentCount int     `json:"mostFrequentCount"`
	AverageFrequency  float64 `json:"averageFrequency"`
}

// SeriesDataset is the processed output for one series, or for a merged
// run covering several. A merge treats its input datasets as immutable and
// produces a fresh one.
type SeriesDataset struct {
	Series      string          `json:"series"`
	ProcessedAt time.Time       `json:"processedAt"`
	Stats       Stats           `json:"stats"`
	Villains    []Villain       `json:"villains"`
	Timeline    []TimelineEntry `json:"timeline"`
	Groups      []Group         `json:"groups,omitempty"`
}
