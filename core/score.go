package core

import (
	"sort"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
)

// clamp01 clamps a value to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ScoreHotspots blends complexity, centrality, and churn into one composite
// hotspot score per file. Complexity is min-max normalized across the pass
// with the same convention as the other two inputs. The weights come from
// validated configuration, so they already sum to 1; the result is clamped to
// [0,1] regardless. Iteration is over the sorted record slice, so identical
// inputs always produce identical scores.
func ScoreHotspots(weights contract.ScoreWeights, records []schema.FileRecord, centrality, churn map[string]float64) []schema.HotspotScore {
	rawComplexity := make([]float64, len(records))
	for i, rec := range records {
		rawComplexity[i] = rec.Complexity
	}
	nComplexity := minMaxNormalize(rawComplexity)

	scores := make([]schema.HotspotScore, 0, len(records))
	for i, rec := range records {
		cpx := nComplexity[i]
		cen := clamp01(centrality[rec.Path])
		chn := clamp01(churn[rec.Path])

		breakdown := map[schema.BreakdownKey]float64{
			schema.BreakdownComplexity: weights.Complexity * cpx,
			schema.BreakdownCentrality: weights.Centrality * cen,
			schema.BreakdownChurn:      weights.Churn * chn,
		}
		score := breakdown[schema.BreakdownComplexity] +
			breakdown[schema.BreakdownCentrality] +
			breakdown[schema.BreakdownChurn]

		scores = append(scores, schema.HotspotScore{
			Path:       rec.Path,
			Score:      clamp01(score),
			Complexity: cpx,
			Centrality: cen,
			Churn:      chn,
			Breakdown:  breakdown,
		})
	}

	// Rank descending; ties resolve by path so the ordering is total.
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Path < scores[j].Path
	})
	return scores
}
