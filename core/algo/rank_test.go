package algo

import (
	"testing"

	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankHotspots(t *testing.T) {
	scores := []schema.HotspotScore{
		{Path: "a.go", Score: 0.9},
		{Path: "b.go", Score: 0.5},
		{Path: "c.go", Score: 0.1},
	}

	t.Run("limit truncates", func(t *testing.T) {
		ranked := RankHotspots(scores, 2)
		require.Len(t, ranked, 2)
		assert.Equal(t, "a.go", ranked[0].Path)
	})

	t.Run("limit exceeds length", func(t *testing.T) {
		assert.Len(t, RankHotspots(scores, 10), 3)
	})
}

func TestPrioritizeIssuesSeverityDominates(t *testing.T) {
	issues := []schema.Issue{
		{Severity: schema.LowSeverity, File: "hot.go", Line: 1, Message: "nit"},
		{Severity: schema.CriticalSeverity, File: "cold.go", Line: 2, Message: "panic"},
		{Severity: schema.HighSeverity, File: "hot.go", Line: 3, Message: "bug"},
	}
	// hot.go has the maximum hotspot score; cold.go is unscored.
	hotspots := map[string]float64{"hot.go": 1.0}

	prioritized := PrioritizeIssues(issues, hotspots)
	require.Len(t, prioritized, 3)

	t.Run("critical on cold file still outranks everything", func(t *testing.T) {
		assert.Equal(t, schema.CriticalSeverity, prioritized[0].Severity)
		assert.Equal(t, "cold.go", prioritized[0].File)
	})

	t.Run("priority values honor the ordering", func(t *testing.T) {
		for i := 1; i < len(prioritized); i++ {
			assert.Greater(t, prioritized[i-1].Priority, prioritized[i].Priority)
		}
	})

	t.Run("unscored file defaults to zero hotspot", func(t *testing.T) {
		assert.Equal(t, 0.0, prioritized[0].Hotspot)
	})
}

func TestPrioritizeIssuesHotspotBreaksTies(t *testing.T) {
	issues := []schema.Issue{
		{Severity: schema.MediumSeverity, File: "cold.go", Line: 10},
		{Severity: schema.MediumSeverity, File: "warm.go", Line: 20},
		{Severity: schema.MediumSeverity, File: "hot.go", Line: 30},
	}
	hotspots := map[string]float64{"hot.go": 0.9, "warm.go": 0.4, "cold.go": 0.1}

	prioritized := PrioritizeIssues(issues, hotspots)
	require.Len(t, prioritized, 3)
	assert.Equal(t, "hot.go", prioritized[0].File)
	assert.Equal(t, "warm.go", prioritized[1].File)
	assert.Equal(t, "cold.go", prioritized[2].File)
}

func TestPrioritizeIssuesDeterministicOrder(t *testing.T) {
	issues := []schema.Issue{
		{Severity: schema.MediumSeverity, File: "same.go", Line: 40},
		{Severity: schema.MediumSeverity, File: "same.go", Line: 10},
		{Severity: schema.MediumSeverity, File: "aaa.go", Line: 99},
	}
	prioritized := PrioritizeIssues(issues, nil)
	require.Len(t, prioritized, 3)

	// Equal severity and hotspot: path order, then line order.
	assert.Equal(t, "aaa.go", prioritized[0].File)
	assert.Equal(t, 10, prioritized[1].Line)
	assert.Equal(t, 40, prioritized[2].Line)
}

func TestPrioritizeIssuesEmpty(t *testing.T) {
	assert.Empty(t, PrioritizeIssues(nil, map[string]float64{"a.go": 1}))
}
