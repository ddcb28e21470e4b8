package resolve

import (
	"roguedex/pkg/models"
)

// buildTimeline emits one entry per input issue, in the series' original
// issue order. Group member lists are re-derived per entry from the
// individuals co-occurring in that one issue; membership is never carried
// over from other issues.
func buildTimeline(input *models.SeriesInput, outVillains []models.Villain, villains map[identityKey]*villainState, order []identityKey, groups map[string]*groupState, groupOrder []string) []models.TimelineEntry {
	timeline := make([]models.TimelineEntry, 0, len(input.Issues))

	for i, issue := range input.Issues {
		entry := models.TimelineEntry{
			Issue:                      issue.IssueNumber,
			ReleaseDate:                issue.ReleaseDate,
			ChronologicalPlacementHint: issue.ChronologicalPlacementHint,
			ChronologicalPosition:      i + 1,
			Villains:                   []string{},
			VillainURLs:                []*string{},
			VillainIDs:                 []string{},
		}

		for idx, key := range order {
			st := villains[key]
			if !st.inIssue[issue.IssueNumber] {
				continue
			}
			v := outVillains[idx]
			entry.Villains = append(entry.Villains, v.Name)
			entry.VillainIDs = append(entry.VillainIDs, v.ID)
			if v.URL != "" {
				u := v.URL
				entry.VillainURLs = append(entry.VillainURLs, &u)
			} else {
				entry.VillainURLs = append(entry.VillainURLs, nil)
			}
		}
		entry.VillainCount = len(entry.Villains)

		for _, gkey := range groupOrder {
			gst := groups[gkey]
			if !gst.inIssue[issue.IssueNumber] {
				continue
			}
			entry.Groups = append(entry.Groups, models.GroupAppearance{
				Name:    gst.name,
				Members: membersInIssue(issue.IssueNumber, villains, order),
			})
		}

		timeline = append(timeline, entry)
	}
	return timeline
}

// membersInIssue flattens the name-variant lists of every individual
// present in the issue. Groups are excluded by construction, so group
// membership can never nest.
func membersInIssue(issue int, villains map[identityKey]*villainState, order []identityKey) []string {
	members := []string{}
	for _, key := range order {
		st := villains[key]
		if st.inIssue[issue] {
			members = append(members, st.variants...)
		}
	}
	return members
}
