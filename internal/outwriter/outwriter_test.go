package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHotspots() []schema.HotspotScore {
	return []schema.HotspotScore{
		{
			Path: "core/score.go", Score: 0.91, Complexity: 0.8, Centrality: 1.0, Churn: 0.9,
			Breakdown: map[schema.BreakdownKey]float64{
				schema.BreakdownComplexity: 0.32,
				schema.BreakdownCentrality: 0.35,
				schema.BreakdownChurn:      0.24,
			},
		},
		{Path: "cmd/root.go", Score: 0.35, Complexity: 0.4, Centrality: 0.2, Churn: 0.3},
	}
}

func TestWriteHotspotCSV(t *testing.T) {
	fmtFloat := floatFormatter(2)
	var buf bytes.Buffer
	require.NoError(t, writeHotspotCSV(&buf, sampleHotspots(), fmtFloat))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"rank", "file", "score", "label", "complexity", "centrality", "churn"}, rows[0])
	assert.Equal(t, []string{"1", "core/score.go", "0.91", "Critical", "0.80", "1.00", "0.90"}, rows[1])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "Low", rows[2][3])
}

func TestWriteHotspotJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHotspotJSON(&buf, sampleHotspots()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "Critical", decoded[0]["label"])
	assert.Equal(t, "core/score.go", decoded[0]["path"])
	assert.Equal(t, 0.91, decoded[0]["score"])
}

func TestWriteHotspotTable(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Workers: 4, Width: 120, CacheBackend: schema.SQLiteBackend, Detail: true, Explain: true}
	fmtFloat := floatFormatter(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeHotspotTable(sampleHotspots(), cfg, fmtFloat, 42*time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "core/score.go")
	assert.Contains(t, out, "Showing top 2 files")
	assert.Contains(t, out, "4 workers")
	assert.Contains(t, out, "sqlite")
	// Explain column renders largest contribution first.
	assert.Contains(t, out, "centrality=0.35 complexity=0.32 churn=0.24")
}

func TestFormatBreakdown(t *testing.T) {
	fmtFloat := floatFormatter(2)
	breakdown := map[schema.BreakdownKey]float64{
		schema.BreakdownComplexity: 0.10,
		schema.BreakdownCentrality: 0.30,
		schema.BreakdownChurn:      0.10,
	}
	// Ties order by key name for stability.
	assert.Equal(t, "centrality=0.30 churn=0.10 complexity=0.10", formatBreakdown(breakdown, fmtFloat))
}

func TestWriteIssueOutputs(t *testing.T) {
	issues := []schema.PrioritizedIssue{
		{
			Issue:    schema.Issue{Severity: schema.CriticalSeverity, Category: "security", File: "auth.py", Line: 12, Message: "hardcoded secret", Source: "report"},
			Hotspot:  0.9,
			Priority: 38.1,
		},
		{
			Issue:    schema.Issue{Severity: schema.LowSeverity, Category: "style", File: "util.py", Line: 3, Message: "unused import", Source: "report"},
			Hotspot:  0.1,
			Priority: 0.9,
		},
	}
	fmtFloat := floatFormatter(2)

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIssueCSV(&buf, issues, fmtFloat))
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "critical", rows[1][1])
		assert.Equal(t, "auth.py", rows[1][2])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIssueJSON(&buf, issues))
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "hardcoded secret", decoded[0]["message"])
		assert.Equal(t, float64(1), decoded[0]["rank"])
	})
}

func TestWriteQueryOutputs(t *testing.T) {
	hits := []schema.QueryHit{
		{Path: "json_parser.py", StartLine: 1, EndLine: 120, Score: 0.8, Snippet: "def parse_json(path):"},
	}
	fmtFloat := floatFormatter(2)

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeQueryCSV(&buf, hits, fmtFloat))
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"rank", "file", "start_line", "end_line", "score", "snippet"}, rows[0])
		assert.Equal(t, "json_parser.py", rows[1][1])
	})

	t.Run("empty table prints notice", func(t *testing.T) {
		cfg := &contract.Config{Precision: 2, Width: 100}
		var buf bytes.Buffer
		require.NoError(t, writeQueryTable(nil, cfg, fmtFloat, time.Millisecond, &buf))
		assert.Contains(t, buf.String(), "No matches found")
	})
}

func TestGetMaxTablePathWidth(t *testing.T) {
	t.Run("explicit width override", func(t *testing.T) {
		cfg := &contract.Config{Width: 200}
		w := getMaxTablePathWidth(cfg)
		assert.LessOrEqual(t, w, 70)
		assert.GreaterOrEqual(t, w, 15)
	})

	t.Run("narrow terminal clamps to minimum", func(t *testing.T) {
		cfg := &contract.Config{Width: 20}
		assert.Equal(t, 15, getMaxTablePathWidth(cfg))
	})
}

func TestPrintMetricsText(t *testing.T) {
	cfg := &contract.Config{
		Precision: 2,
		Weights:   contract.ScoreWeights{Complexity: 0.4, Centrality: 0.35, Churn: 0.25},
	}
	defs := buildMetricDefinitions(cfg.Weights)
	require.Len(t, defs, 3)

	var buf bytes.Buffer
	require.NoError(t, printMetricsText(&buf, defs))
	out := buf.String()
	assert.Contains(t, out, "Hotspot Score")
	assert.True(t, strings.Contains(out, "0.40*complexity") || strings.Contains(out, "0.40 * complexity"))
	assert.Contains(t, out, "centrality")
	assert.Contains(t, out, "churn")
}
