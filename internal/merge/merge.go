// Package merge combines several processed series datasets into one
// chronologically ordered dataset with unified identities.
package merge

import (
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"roguedex/internal/resolve"
	"roguedex/pkg/models"
)

// ErrNoDatasets is returned when a merge is invoked with nothing to merge.
// This is fatal: there is no sensible empty result to write.
var ErrNoDatasets = errors.New("merge: no input datasets")

// Merge unions identities across the given datasets, re-sorts the combined
// timeline chronologically, applies placement-hint corrections and
// recomputes first appearances and statistics. The inputs are treated as
// immutable; the result is a fresh dataset.
func Merge(datasets []*models.SeriesDataset) (*models.SeriesDataset, error) {
	if len(datasets) == 0 {
		return nil, ErrNoDatasets
	}

	villains := unionVillains(datasets)
	groups := unionGroups(datasets)

	timeline := mergeTimeline(datasets)
	for i := range timeline {
		timeline[i].ChronologicalPosition = i + 1
	}

	recomputeFirstAppearances(villains, timeline)

	names := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		names = append(names, ds.Series)
	}

	return &models.SeriesDataset{
		Series:      strings.Join(names, " + "),
		ProcessedAt: time.Now().UTC(),
		Stats:       resolve.ComputeStats(villains),
		Villains:    villains,
		Timeline:    timeline,
		Groups:      groups,
	}, nil
}

type villainAcc struct {
	out        models.Villain
	variants   []string
	variantSet map[string]bool
	issues     map[int]bool
}

// unionVillains unions identities keyed by canonical URL when present,
// else by id. Two villains with the same display name but different keys
// stay separate; the merge never undoes the url/name separation.
func unionVillains(datasets []*models.SeriesDataset) []models.Villain {
	byKey := make(map[string]*villainAcc)
	var order []string

	for _, ds := range datasets {
		for _, v := range ds.Villains {
			key := "id:" + v.ID
			if v.URL != "" {
				key = "url:" + v.URL
			}

			a, ok := byKey[key]
			if !ok {
				a = &villainAcc{
					out:        v,
					variantSet: make(map[string]bool),
					issues:     make(map[int]bool),
				}
				a.out.Appearances = nil
				a.out.Aliases = nil
				byKey[key] = a
				order = append(order, key)
			}

			for _, name := range append([]string{v.Name}, v.Aliases...) {
				if !a.variantSet[name] {
					a.variantSet[name] = true
					a.variants = append(a.variants, name)
				}
			}
			for _, n := range v.Appearances {
				a.issues[n] = true
			}
			if a.out.ImageURL == "" && v.ImageURL != "" {
				a.out.ImageURL = v.ImageURL
			}
		}
	}

	out := make([]models.Villain, 0, len(order))
	for _, key := range order {
		a := byKey[key]
		for _, variant := range a.variants {
			if variant != a.out.Name {
				a.out.Aliases = append(a.out.Aliases, variant)
			}
		}
		if a.out.Aliases == nil {
			a.out.Aliases = []string{}
		}
		a.out.Appearances = sortedKeys(a.issues)
		a.out.Frequency = len(a.out.Appearances)
		out = append(out, a.out)
	}
	return out
}

// unionGroups unions group identities by canonical name, falling back to
// id for the unnamed.
func unionGroups(datasets []*models.SeriesDataset) []models.Group {
	type groupAcc struct {
		out    models.Group
		issues map[int]bool
	}
	byKey := make(map[string]*groupAcc)
	var order []string

	for _, ds := range datasets {
		for _, g := range ds.Groups {
			key := "name:" + g.Name
			if g.Name == "" {
				key = "id:" + g.ID
			}
			a, ok := byKey[key]
			if !ok {
				a = &groupAcc{out: g, issues: make(map[int]bool)}
				a.out.Appearances = nil
				byKey[key] = a
				order = append(order, key)
			}
			for _, n := range g.Appearances {
				a.issues[n] = true
			}
			if a.out.URL == "" && g.URL != "" {
				a.out.URL = g.URL
			}
		}
	}

	out := make([]models.Group, 0, len(order))
	for _, key := range order {
		a := byKey[key]
		a.out.Appearances = sortedKeys(a.issues)
		a.out.Frequency = len(a.out.Appearances)
		out = append(out, a.out)
	}
	return out
}

// mergeTimeline concatenates all series timelines tagged with their series
// name, sorts the un-hinted entries by release date (undated after dated,
// stable among themselves) and reinserts hinted entries at the slot their
// hint names.
func mergeTimeline(datasets []*models.SeriesDataset) []models.TimelineEntry {
	var sortable, hinted []models.TimelineEntry
	for _, ds := range datasets {
		for _, e := range ds.Timeline {
			e.ChronologicalPosition = 0
			if e.Series == "" {
				e.Series = ds.Series
			}
			if e.ChronologicalPlacementHint != "" {
				hinted = append(hinted, e)
			} else {
				sortable = append(sortable, e)
			}
		}
	}

	sort.SliceStable(sortable, func(i, j int) bool {
		di, oki := parseReleaseDate(sortable[i].ReleaseDate)
		dj, okj := parseReleaseDate(sortable[j].ReleaseDate)
		switch {
		case oki && okj:
			return di.Before(dj)
		case oki:
			return true // dated before undated
		default:
			return false
		}
	})

	result := sortable
	for _, e := range hinted {
		result = insertHinted(result, e)
	}
	return result
}

// insertHinted places one hint-carrying entry. If both referenced issues
// are found the entry lands strictly between them; with one found it goes
// adjacent to it; otherwise it is appended at the end with a warning.
// Hint failures are never fatal and never drop the entry.
func insertHinted(result []models.TimelineEntry, e models.TimelineEntry) []models.TimelineEntry {
	h, err := ParseHint(e.ChronologicalPlacementHint)
	if err != nil {
		log.Printf("[merge] %v: appending %s #%d at end", err, e.Series, e.Issue)
		return append(result, e)
	}

	ix := findIssue(result, h.Series, h.IssueA)
	iy := findIssue(result, h.Series, h.IssueB)

	switch {
	case ix >= 0 && iy >= 0:
		at := ix
		if iy > at {
			at = iy
		}
		return insertAt(result, at, e)
	case ix >= 0:
		return insertAt(result, ix+1, e)
	case iy >= 0:
		return insertAt(result, iy, e)
	default:
		log.Printf("[merge] hint target %q #%d/#%d not found: appending %s #%d at end",
			h.Series, h.IssueA, h.IssueB, e.Series, e.Issue)
		return append(result, e)
	}
}

func findIssue(entries []models.TimelineEntry, descriptor string, issue int) int {
	for i, e := range entries {
		if e.Issue == issue && seriesMatches(descriptor, e.Series) {
			return i
		}
	}
	return -1
}

func insertAt(entries []models.TimelineEntry, at int, e models.TimelineEntry) []models.TimelineEntry {
	if at < 0 {
		at = 0
	}
	if at > len(entries) {
		at = len(entries)
	}
	entries = append(entries, models.TimelineEntry{})
	copy(entries[at+1:], entries[at:])
	entries[at] = e
	return entries
}

// recomputeFirstAppearances corrects the numeric issue-number bias: a
// URL-keyed villain's first appearance is the first timeline entry (in
// final chronological order) listing its URL, not the smallest raw issue
// number across differently-numbered series. Villains without a URL, or
// with no timeline match, fall back to their smallest appearance number.
func recomputeFirstAppearances(villains []models.Villain, timeline []models.TimelineEntry) {
	for i := range villains {
		v := &villains[i]
		if v.URL != "" {
			if entry, ok := firstEntryWithURL(timeline, v.URL); ok {
				v.FirstAppearance = entry.Issue
				v.FirstAppearanceSeries = entry.Series
				continue
			}
		}
		if len(v.Appearances) > 0 {
			v.FirstAppearance = v.Appearances[0]
		}
	}
}

func firstEntryWithURL(timeline []models.TimelineEntry, url string) (models.TimelineEntry, bool) {
	for _, e := range timeline {
		for _, u := range e.VillainURLs {
			if u != nil && *u == url {
				return e, true
			}
		}
	}
	return models.TimelineEntry{}, false
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
