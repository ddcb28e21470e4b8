package merge

import (
	"errors"
	"testing"

	"roguedex/pkg/models"
)

func strptr(s string) *string { return &s }

func entry(series string, issue int, date string) models.TimelineEntry {
	return models.TimelineEntry{
		Issue:       issue,
		ReleaseDate: date,
		Series:      series,
		Villains:    []string{},
		VillainURLs: []*string{},
		VillainIDs:  []string{},
	}
}

func dataset(series string, villains []models.Villain, timeline []models.TimelineEntry) *models.SeriesDataset {
	return &models.SeriesDataset{Series: series, Villains: villains, Timeline: timeline}
}

func TestMergeRequiresInput(t *testing.T) {
	if _, err := Merge(nil); !errors.Is(err, ErrNoDatasets) {
		t.Fatalf("expected ErrNoDatasets, got %v", err)
	}
}

func TestMergeUnionsByURL(t *testing.T) {
	url := "https://wiki.example/Green_Goblin"
	a := dataset("Series A", []models.Villain{{
		ID: "green-goblin", Name: "Green Goblin", Aliases: []string{}, URL: url,
		IdentitySource: models.SourceURL, Appearances: []int{1, 2, 3}, Frequency: 3,
	}}, nil)
	b := dataset("Series B", []models.Villain{{
		ID: "green-goblin", Name: "Goblin", Aliases: []string{"Green Goblin"}, URL: url,
		IdentitySource: models.SourceURL, Appearances: []int{5, 6}, Frequency: 2,
	}}, nil)

	merged, err := Merge([]*models.SeriesDataset{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged.Villains) != 1 {
		t.Fatalf("expected 1 merged villain, got %d", len(merged.Villains))
	}
	v := merged.Villains[0]
	want := []int{1, 2, 3, 5, 6}
	if len(v.Appearances) != len(want) {
		t.Fatalf("expected appearances %v, got %v", want, v.Appearances)
	}
	for i, n := range want {
		if v.Appearances[i] != n {
			t.Fatalf("expected appearances %v, got %v", want, v.Appearances)
		}
	}
	if v.Frequency != 5 {
		t.Fatalf("expected frequency 5, got %d", v.Frequency)
	}
	if v.Name != "Green Goblin" {
		t.Fatalf("first dataset's primary name must win, got %q", v.Name)
	}
	if len(v.Aliases) != 1 || v.Aliases[0] != "Goblin" {
		t.Fatalf("expected aliases [Goblin], got %v", v.Aliases)
	}
}

func TestMergeKeepsDifferentKeysSeparate(t *testing.T) {
	a := dataset("Series A", []models.Villain{{
		ID: "hobgoblin", Name: "Hobgoblin", Aliases: []string{},
		IdentitySource: models.SourceName, Appearances: []int{1}, Frequency: 1,
	}}, nil)
	b := dataset("Series B", []models.Villain{{
		ID: "hobgoblin-2", Name: "Hobgoblin", Aliases: []string{}, URL: "https://wiki.example/Hobgoblin",
		IdentitySource: models.SourceURL, Appearances: []int{4}, Frequency: 1,
	}}, nil)

	merged, err := Merge([]*models.SeriesDataset{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged.Villains) != 2 {
		t.Fatalf("same display name with different keys must stay separate, got %d", len(merged.Villains))
	}
}

func TestMergeChronologicalOrder(t *testing.T) {
	a := dataset("Series A", nil, []models.TimelineEntry{
		entry("Series A", 1, "1999-05-01"),
		entry("Series A", 2, "1999-08-01"),
	})
	b := dataset("Series B", nil, []models.TimelineEntry{
		entry("Series B", 1, "1999-06-15"),
		entry("Series B", 2, ""),
	})

	merged, err := Merge([]*models.SeriesDataset{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, 0, len(merged.Timeline))
	for i, e := range merged.Timeline {
		if e.ChronologicalPosition != i+1 {
			t.Fatalf("expected position %d, got %d", i+1, e.ChronologicalPosition)
		}
		got = append(got, e.Series)
	}
	// dated entries by date, the undated one last
	if merged.Timeline[0].Issue != 1 || merged.Timeline[0].Series != "Series A" {
		t.Fatalf("unexpected order: %v", got)
	}
	if merged.Timeline[1].Series != "Series B" || merged.Timeline[1].Issue != 1 {
		t.Fatalf("unexpected order: %v", got)
	}
	if merged.Timeline[2].Series != "Series A" || merged.Timeline[2].Issue != 2 {
		t.Fatalf("unexpected order: %v", got)
	}
	if merged.Timeline[3].ReleaseDate != "" {
		t.Fatalf("undated entry must sort last, got %v", got)
	}
}

func TestMergeUndatedStableOrder(t *testing.T) {
	a := dataset("Series A", nil, []models.TimelineEntry{
		entry("Series A", 1, ""),
		entry("Series A", 2, ""),
	})
	merged, err := Merge([]*models.SeriesDataset{a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Timeline[0].Issue != 1 || merged.Timeline[1].Issue != 2 {
		t.Fatal("undated entries must keep their relative input order")
	}
}

func TestMergePlacementHint(t *testing.T) {
	a := dataset("Series X", nil, []models.TimelineEntry{
		entry("Series X", 6, "1999-01-01"),
		entry("Series X", 7, "1999-02-01"),
		entry("Series X", 8, "1999-03-01"),
	})
	hinted := entry("Series X Annual", 1, "")
	hinted.ChronologicalPlacementHint = "between Series X #6 and #7"
	b := dataset("Series X Annual", nil, []models.TimelineEntry{hinted})

	merged, err := Merge([]*models.SeriesDataset{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pos6, pos7, posHinted int
	for _, e := range merged.Timeline {
		switch {
		case e.Series == "Series X" && e.Issue == 6:
			pos6 = e.ChronologicalPosition
		case e.Series == "Series X" && e.Issue == 7:
			pos7 = e.ChronologicalPosition
		case e.Series == "Series X Annual":
			posHinted = e.ChronologicalPosition
		}
	}
	if !(pos6 < posHinted && posHinted < pos7) {
		t.Fatalf("expected annual strictly between #6 (%d) and #7 (%d), got %d", pos6, pos7, posHinted)
	}
}

func TestMergeHintFallbacks(t *testing.T) {
	a := dataset("Series X", nil, []models.TimelineEntry{
		entry("Series X", 6, "1999-01-01"),
	})

	unparsable := entry("Series Y", 1, "")
	unparsable.ChronologicalPlacementHint = "somewhere around the middle"
	unmatched := entry("Series Y", 2, "")
	unmatched.ChronologicalPlacementHint = "between Series Z #1 and #2"
	onlyFirst := entry("Series Y", 3, "")
	onlyFirst.ChronologicalPlacementHint = "between Series X #6 and #7"
	b := dataset("Series Y", nil, []models.TimelineEntry{unparsable, unmatched, onlyFirst})

	merged, err := Merge([]*models.SeriesDataset{a, b})
	if err != nil {
		t.Fatalf("hint failures must not abort the merge: %v", err)
	}
	if len(merged.Timeline) != 4 {
		t.Fatalf("no entry may be dropped, got %d of 4", len(merged.Timeline))
	}

	byIssue := make(map[int]int) // Series Y issue -> position
	var pos6 int
	for _, e := range merged.Timeline {
		if e.Series == "Series Y" {
			byIssue[e.Issue] = e.ChronologicalPosition
		} else {
			pos6 = e.ChronologicalPosition
		}
	}
	// only #6 found: insert immediately after it
	if byIssue[3] != pos6+1 {
		t.Fatalf("expected adjacent insertion after #6 (%d), got %d", pos6, byIssue[3])
	}
	// unparsable and unmatched hints append at the end
	if byIssue[1] >= byIssue[2] || byIssue[2] != len(merged.Timeline) {
		t.Fatalf("expected fallback entries appended in order, got %v", byIssue)
	}
}

func TestMergeFirstAppearanceCorrection(t *testing.T) {
	url := "https://wiki.example/Scorcher"
	vol1 := dataset("Vol 1", []models.Villain{{
		ID: "scorcher", Name: "Scorcher", Aliases: []string{}, URL: url,
		IdentitySource: models.SourceURL, Appearances: []int{3}, Frequency: 1,
	}}, []models.TimelineEntry{{
		Issue: 3, ReleaseDate: "1998-01-01", VillainCount: 1,
		Villains: []string{"Scorcher"}, VillainURLs: []*string{strptr(url)}, VillainIDs: []string{"scorcher"},
	}})
	annual := dataset("Annual", []models.Villain{{
		ID: "scorcher", Name: "Scorcher", Aliases: []string{}, URL: url,
		IdentitySource: models.SourceURL, Appearances: []int{1}, Frequency: 1,
	}}, []models.TimelineEntry{{
		Issue: 1, ReleaseDate: "1999-06-01", VillainCount: 1,
		Villains: []string{"Scorcher"}, VillainURLs: []*string{strptr(url)}, VillainIDs: []string{"scorcher"},
	}})

	merged, err := Merge([]*models.SeriesDataset{vol1, annual})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := merged.Villains[0]
	if v.FirstAppearance != 3 || v.FirstAppearanceSeries != "Vol 1" {
		t.Fatalf("chronology must beat raw issue number: got first appearance #%d in %q",
			v.FirstAppearance, v.FirstAppearanceSeries)
	}
}

func TestMergeFirstAppearanceFallback(t *testing.T) {
	a := dataset("Series A", []models.Villain{{
		ID: "tinkerer", Name: "Tinkerer", Aliases: []string{},
		IdentitySource: models.SourceName, Appearances: []int{2, 9}, Frequency: 2,
	}}, nil)
	merged, err := Merge([]*models.SeriesDataset{a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Villains[0].FirstAppearance != 2 {
		t.Fatalf("expected fallback to minimum appearance, got %d", merged.Villains[0].FirstAppearance)
	}
}

func TestMergeGroupUnion(t *testing.T) {
	a := dataset("Series A", nil, nil)
	a.Groups = []models.Group{{ID: "sinister-six", Name: "Sinister Six", Appearances: []int{5}, Frequency: 1}}
	b := dataset("Series B", nil, nil)
	b.Groups = []models.Group{{ID: "sinister-six", Name: "Sinister Six", Appearances: []int{5, 12}, Frequency: 2}}

	merged, err := Merge([]*models.SeriesDataset{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged.Groups) != 1 {
		t.Fatalf("expected 1 merged group, got %d", len(merged.Groups))
	}
	g := merged.Groups[0]
	if g.Frequency != 2 || len(g.Appearances) != 2 {
		t.Fatalf("expected union {5,12}, got %+v", g)
	}
}

func TestMergeStats(t *testing.T) {
	a := dataset("Series A", []models.Villain{
		{ID: "a", Name: "Alpha", Aliases: []string{}, IdentitySource: models.SourceName, Appearances: []int{1}, Frequency: 1},
		{ID: "b", Name: "Beta", Aliases: []string{}, IdentitySource: models.SourceName, Appearances: []int{1, 2}, Frequency: 2},
	}, nil)
	merged, err := Merge([]*models.SeriesDataset{a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := merged.Stats
	if s.TotalVillains != 2 || s.MostFrequent != "Beta" || s.MostFrequentCount != 2 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.AverageFrequency != 1.5 {
		t.Fatalf("expected average 1.5, got %v", s.AverageFrequency)
	}
}
