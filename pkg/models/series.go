package models

// SeriesInput is the raw per-series payload produced by a fetch source.
//
// Every external source (wiki HTML, local mirror JSON) is mapped into this
// structure first; the resolver only ever sees this shape.
type SeriesInput struct {
	Series  string  `json:"series"`
	BaseURL string  `json:"baseUrl"`
	Issues  []Issue `json:"issues"`
}

// Issue is one installment of a series with the antagonist mentions
// scraped from its page.
type Issue struct {
	IssueNumber                int       `json:"issueNumber"`
	Title                      string    `json:"title"`
	ReleaseDate                string    `json:"releaseDate,omitempty"`
	ChronologicalPlacementHint string    `json:"chronologicalPlacementHint,omitempty"`
	Antagonists                []Mention `json:"antagonists"`
}

// Mention is one raw antagonist reference within one issue, before
// normalization and classification. Never persisted standalone.
type Mention struct {
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}
