package core

import (
	"testing"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultWeights() contract.ScoreWeights {
	return contract.ScoreWeights{Complexity: 0.40, Centrality: 0.35, Churn: 0.25}
}

func TestScoreHotspots(t *testing.T) {
	records := []schema.FileRecord{
		{Path: "hot.go", Complexity: 30},
		{Path: "mid.go", Complexity: 15},
		{Path: "cold.go", Complexity: 1},
	}
	centrality := map[string]float64{"hot.go": 1, "mid.go": 0.5, "cold.go": 0}
	churn := map[string]float64{"hot.go": 1, "mid.go": 0.2, "cold.go": 0}

	scores := ScoreHotspots(defaultWeights(), records, centrality, churn)
	require.Len(t, scores, 3)

	t.Run("descending order", func(t *testing.T) {
		assert.Equal(t, "hot.go", scores[0].Path)
		assert.Equal(t, "cold.go", scores[2].Path)
		for i := 1; i < len(scores); i++ {
			assert.LessOrEqual(t, scores[i].Score, scores[i-1].Score)
		}
	})

	t.Run("extremes of the pass", func(t *testing.T) {
		// All three inputs are maxed for hot.go and zeroed for cold.go.
		assert.InDelta(t, 1.0, scores[0].Score, 1e-9)
		assert.InDelta(t, 0.0, scores[2].Score, 1e-9)
	})

	t.Run("breakdown sums to score", func(t *testing.T) {
		for _, s := range scores {
			sum := 0.0
			for _, v := range s.Breakdown {
				sum += v
			}
			assert.InDelta(t, s.Score, sum, 1e-9)
		}
	})

	t.Run("scores stay in unit interval", func(t *testing.T) {
		for _, s := range scores {
			assert.GreaterOrEqual(t, s.Score, 0.0)
			assert.LessOrEqual(t, s.Score, 1.0)
		}
	})
}

func TestScoreHotspotsWeightShift(t *testing.T) {
	records := []schema.FileRecord{
		{Path: "complex.go", Complexity: 100},
		{Path: "central.go", Complexity: 1},
	}
	centrality := map[string]float64{"complex.go": 0, "central.go": 1}
	churn := map[string]float64{}

	t.Run("complexity-only weights rank complex file first", func(t *testing.T) {
		weights := contract.ScoreWeights{Complexity: 1}
		scores := ScoreHotspots(weights, records, centrality, churn)
		assert.Equal(t, "complex.go", scores[0].Path)
	})

	t.Run("centrality-only weights rank central file first", func(t *testing.T) {
		weights := contract.ScoreWeights{Centrality: 1}
		scores := ScoreHotspots(weights, records, centrality, churn)
		assert.Equal(t, "central.go", scores[0].Path)
	})
}

func TestScoreHotspotsDeterminism(t *testing.T) {
	records := []schema.FileRecord{
		{Path: "a.go", Complexity: 3},
		{Path: "b.go", Complexity: 7},
		{Path: "c.go", Complexity: 5},
	}
	centrality := map[string]float64{"a.go": 0.2, "b.go": 0.9, "c.go": 0.4}
	churn := map[string]float64{"a.go": 0.1, "b.go": 0.3, "c.go": 0.8}

	first := ScoreHotspots(defaultWeights(), records, centrality, churn)
	for range 5 {
		again := ScoreHotspots(defaultWeights(), records, centrality, churn)
		assert.Equal(t, first, again)
	}
}

func TestScoreHotspotsTiesBreakByPath(t *testing.T) {
	records := []schema.FileRecord{
		{Path: "b.go", Complexity: 1},
		{Path: "a.go", Complexity: 1},
	}
	scores := ScoreHotspots(defaultWeights(), records, map[string]float64{}, map[string]float64{})
	require.Len(t, scores, 2)
	assert.Equal(t, "a.go", scores[0].Path)
	assert.Equal(t, "b.go", scores[1].Path)
}
