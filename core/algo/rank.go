// Package algo has ranking and prioritization helpers.
package algo

import (
	"sort"

	"github.com/huangsam/triage/schema"
)

// severityStep separates priority bands per severity rank. The hotspot
// contribution stays strictly below one step, so a higher severity always
// outranks a lower one numerically as well as positionally.
const severityStep = 10.0

// RankHotspots returns the top 'limit' hotspot scores. The input is assumed
// already sorted descending by score.
func RankHotspots(scores []schema.HotspotScore, limit int) []schema.HotspotScore {
	if len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

// PrioritizeIssues re-ranks analyzer issues by severity and hotspot score.
// Severity dominates: the hotspot score only breaks ties within the same
// severity, then file path lexical order, then line number — the ordering is
// fully deterministic. Issues on files with no computed hotspot score default
// to hotspot 0 and are never excluded.
func PrioritizeIssues(issues []schema.Issue, hotspots map[string]float64) []schema.PrioritizedIssue {
	prioritized := make([]schema.PrioritizedIssue, 0, len(issues))
	for _, issue := range issues {
		hs := hotspots[issue.File] // zero default for unscored files
		prioritized = append(prioritized, schema.PrioritizedIssue{
			Issue:    issue,
			Hotspot:  hs,
			Priority: float64(issue.Severity.Rank())*severityStep + hs*(severityStep-1),
		})
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		a, b := prioritized[i], prioritized[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Hotspot != b.Hotspot {
			return a.Hotspot > b.Hotspot
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return prioritized
}
