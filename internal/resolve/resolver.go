// Package resolve turns one series' raw issue list into resolved villain
// and group identities plus a per-issue timeline.
package resolve

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"roguedex/internal/normalize"
	"roguedex/internal/taxonomy"
	"roguedex/pkg/models"
)

// identityKey is the tagged key an individual identity lives under. The
// Source tag is part of the key, so a URL-keyed identity and a name-keyed
// identity can never collide even when they share a display name. That is
// the whole point: identities are keyed by the evidence available when
// they were first observed, and are never reconciled after the fact.
type identityKey struct {
	Source models.IdentitySource
	Value  string
}

type villainState struct {
	key          identityKey
	imageURL     string
	variants     []string // insertion order
	variantCount map[string]int
	appearances  []int
	inIssue      map[int]bool
}

func (st *villainState) observe(name string, issue int, imageURL string) {
	if _, seen := st.variantCount[name]; !seen {
		st.variants = append(st.variants, name)
	}
	st.variantCount[name]++
	if !st.inIssue[issue] {
		st.inIssue[issue] = true
		st.appearances = append(st.appearances, issue)
	}
	if st.imageURL == "" && imageURL != "" {
		st.imageURL = imageURL
	}
}

// primary returns the most frequent name variant; ties go to the variant
// encountered first.
func (st *villainState) primary() string {
	best, bestN := "", 0
	for _, v := range st.variants {
		if st.variantCount[v] > bestN {
			best, bestN = v, st.variantCount[v]
		}
	}
	return best
}

type groupState struct {
	id          string
	name        string
	url         string
	appearances []int
	inIssue     map[int]bool
}

// Resolver processes series inputs against one taxonomy registry. It keeps
// no state between Process calls.
type Resolver struct {
	registry *taxonomy.Registry
}

func New(reg *taxonomy.Registry) *Resolver {
	return &Resolver{registry: reg}
}

// Process resolves every mention of the input into identities, builds the
// per-issue timeline and computes series statistics. The input is not
// modified. Malformed input returns a *models.ValidationError.
func (r *Resolver) Process(input *models.SeriesInput) (*models.SeriesDataset, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("process %q: %w", seriesLabel(input), err)
	}

	villains := make(map[identityKey]*villainState)
	var order []identityKey
	groups := make(map[string]*groupState)
	var groupOrder []string

	for _, issue := range input.Issues {
		for _, m := range issue.Antagonists {
			name := normalize.Name(m.Name)
			if name == "" || normalize.IsPlaceholder(name) {
				continue
			}

			if taxonomy.Classify(name, r.registry) == taxonomy.Group {
				r.observeGroup(groups, &groupOrder, name, m.URL, issue.IssueNumber)
				continue
			}

			key := identityKey{Source: models.SourceName, Value: name}
			if m.URL != "" {
				key = identityKey{Source: models.SourceURL, Value: m.URL}
			}
			st, ok := villains[key]
			if !ok {
				st = &villainState{
					key:          key,
					variantCount: make(map[string]int),
					inIssue:      make(map[int]bool),
				}
				villains[key] = st
				order = append(order, key)
			}
			st.observe(name, issue.IssueNumber, m.ImageURL)
		}
	}

	result := finalize(input, villains, order, groups, groupOrder)
	result.ProcessedAt = time.Now().UTC()
	return result, nil
}

func (r *Resolver) observeGroup(groups map[string]*groupState, groupOrder *[]string, name, url string, issue int) {
	id := normalize.Slug(name)
	canonical := name
	recURL := url
	if rec, ok := r.registry.Lookup(name); ok {
		id = rec.ID
		canonical = rec.Name
		if rec.URL != "" {
			recURL = rec.URL
		}
	}

	key := canonical
	if url != "" {
		key = url
	}
	st, ok := groups[key]
	if !ok {
		st = &groupState{id: id, name: canonical, url: url, inIssue: make(map[int]bool)}
		if url == "" {
			st.url = recURL
		}
		groups[key] = st
		*groupOrder = append(*groupOrder, key)
	}
	if !st.inIssue[issue] {
		st.inIssue[issue] = true
		st.appearances = append(st.appearances, issue)
	}
}

// finalize selects primary names, assigns ids, sorts appearance lists and
// assembles the output dataset in encounter order.
func finalize(input *models.SeriesInput, villains map[identityKey]*villainState, order []identityKey, groups map[string]*groupState, groupOrder []string) *models.SeriesDataset {
	usedIDs := make(map[string]int)

	outVillains := make([]models.Villain, 0, len(order))
	for _, key := range order {
		st := villains[key]
		primary := st.primary()
		sort.Ints(st.appearances)

		aliases := make([]string, 0, len(st.variants)-1)
		for _, v := range st.variants {
			if v != primary {
				aliases = append(aliases, v)
			}
		}

		v := models.Villain{
			ID:             uniqueID(usedIDs, villainID(key, primary)),
			Name:           primary,
			Aliases:        aliases,
			ImageURL:       st.imageURL,
			IdentitySource: key.Source,
			Appearances:    st.appearances,
			Frequency:      len(st.appearances),
		}
		if key.Source == models.SourceURL {
			v.URL = key.Value
		}
		if len(st.appearances) > 0 {
			v.FirstAppearance = st.appearances[0]
		}
		outVillains = append(outVillains, v)
	}

	outGroups := make([]models.Group, 0, len(groupOrder))
	for _, key := range groupOrder {
		st := groups[key]
		sort.Ints(st.appearances)
		outGroups = append(outGroups, models.Group{
			ID:          uniqueID(usedIDs, st.id),
			Name:        st.name,
			URL:         st.url,
			Appearances: st.appearances,
			Frequency:   len(st.appearances),
		})
	}

	timeline := buildTimeline(input, outVillains, villains, order, groups, groupOrder)

	return &models.SeriesDataset{
		Series:   input.Series,
		Stats:    ComputeStats(outVillains),
		Villains: outVillains,
		Timeline: timeline,
		Groups:   outGroups,
	}
}

// villainID derives a stable id for an identity. Name-keyed identities
// slug their normalized name so the same villain resolves to the same id
// across series; URL-keyed identities slug the last URL path segment.
func villainID(key identityKey, primary string) string {
	if key.Source == models.SourceURL {
		if seg := lastPathSegment(key.Value); seg != "" {
			return normalize.Slug(seg)
		}
	}
	return normalize.Slug(primary)
}

func lastPathSegment(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// uniqueID disambiguates id collisions within one dataset by suffixing a
// counter, deterministically by encounter order.
func uniqueID(used map[string]int, id string) string {
	if id == "" {
		id = "unnamed"
	}
	used[id]++
	if n := used[id]; n > 1 {
		return fmt.Sprintf("%s-%d", id, n)
	}
	return id
}

func seriesLabel(input *models.SeriesInput) string {
	if input == nil {
		return ""
	}
	return input.Series
}
