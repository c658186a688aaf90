package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSeverityRank verifies the severity ordering used for prioritization.
func TestSeverityRank(t *testing.T) {
	t.Run("strictly ascending", func(t *testing.T) {
		for i := 1; i < len(AllSeverities); i++ {
			assert.Greater(t, AllSeverities[i].Rank(), AllSeverities[i-1].Rank())
		}
	})

	t.Run("unknown ranks lowest", func(t *testing.T) {
		assert.Equal(t, LowSeverity.Rank(), Severity("bogus").Rank())
	})
}

// TestParseSeverity covers analyzer-native severity aliases.
func TestParseSeverity(t *testing.T) {
	cases := []struct {
		raw  string
		want Severity
	}{
		{"critical", CriticalSeverity},
		{"HIGH", HighSeverity},
		{" Medium ", MediumSeverity},
		{"low", LowSeverity},
		{"error", HighSeverity},
		{"blocker", HighSeverity},
		{"warning", MediumSeverity},
		{"info", LowSeverity},
		{"style", LowSeverity},
		{"", MediumSeverity},
		{"mystery", MediumSeverity},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseSeverity(tc.raw), "raw=%q", tc.raw)
	}
}

func TestChurnRecordLinesChanged(t *testing.T) {
	rec := ChurnRecord{Path: "a.go", Commits: 2, LinesAdded: 10, LinesRemoved: 4}
	assert.Equal(t, 14, rec.LinesChanged())
	assert.Equal(t, 0, ChurnRecord{}.LinesChanged())
}

func TestPassResultHotspotMap(t *testing.T) {
	result := PassResult{
		Hotspots: []HotspotScore{
			{Path: "a.go", Score: 0.9},
			{Path: "b.go", Score: 0.2},
		},
	}
	m := result.HotspotMap()
	assert.Equal(t, 0.9, m["a.go"])
	assert.Equal(t, 0.2, m["b.go"])
	assert.Len(t, m, 2)
	assert.Zero(t, m["missing.go"])
}
