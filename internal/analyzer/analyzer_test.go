package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/triage/schema"
)

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNoopSource(t *testing.T) {
	source := &NoopSource{}
	assert.Equal(t, "none", source.Name())

	issues, err := source.Issues(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, issues)
}

func TestReportSourceArrayLayout(t *testing.T) {
	path := writeReport(t, `[
		{"file": "core/score.go", "line": 42, "severity": "error", "category": "correctness", "message": "possible nil deref", "source": "vet"},
		{"file": "cmd/root.go", "start_line": 7, "severity": "warning", "category": "style", "title": "long function"}
	]`)

	source := NewReportSource(path)
	issues, err := source.Issues(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, schema.Issue{
		Severity: schema.HighSeverity,
		Category: "correctness",
		File:     "core/score.go",
		Line:     42,
		Message:  "possible nil deref",
		Source:   "vet",
	}, issues[0])

	// start_line and title are fallbacks; source defaults to the adapter name
	assert.Equal(t, 7, issues[1].Line)
	assert.Equal(t, "long function", issues[1].Message)
	assert.Equal(t, schema.MediumSeverity, issues[1].Severity)
	assert.Equal(t, "report", issues[1].Source)
}

func TestReportSourceEnvelopeLayout(t *testing.T) {
	path := writeReport(t, `{"issues": [
		{"file": "a.py", "line": 1, "severity": "critical", "category": "security", "message": "hardcoded secret"}
	]}`)

	issues, err := NewReportSource(path).Issues(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, schema.CriticalSeverity, issues[0].Severity)
}

func TestReportSourceNumericSeverity(t *testing.T) {
	path := writeReport(t, `[
		{"file": "a.py", "line": 1, "severity": 9.8, "message": "rce"},
		{"file": "b.py", "line": 2, "severity": 7, "message": "injection"},
		{"file": "c.py", "line": 3, "severity": 5, "message": "weak hash"},
		{"file": "d.py", "line": 4, "severity": 1, "message": "nit"}
	]`)

	issues, err := NewReportSource(path).Issues(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, issues, 4)
	assert.Equal(t, schema.CriticalSeverity, issues[0].Severity)
	assert.Equal(t, schema.HighSeverity, issues[1].Severity)
	assert.Equal(t, schema.MediumSeverity, issues[2].Severity)
	assert.Equal(t, schema.LowSeverity, issues[3].Severity)
}

func TestReportSourceSkipsFileless(t *testing.T) {
	path := writeReport(t, `[
		{"line": 3, "severity": "high", "message": "orphan"},
		{"file": "kept.py", "severity": "low", "message": "kept"}
	]`)

	issues, err := NewReportSource(path).Issues(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "kept.py", issues[0].File)
}

func TestReportSourceMissingSeverityDefaultsMedium(t *testing.T) {
	path := writeReport(t, `[{"file": "a.py", "line": 1, "message": "no severity"}]`)

	issues, err := NewReportSource(path).Issues(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, schema.MediumSeverity, issues[0].Severity)
}

func TestReportSourceErrors(t *testing.T) {
	_, err := NewReportSource(filepath.Join(t.TempDir(), "missing.json")).Issues(context.Background(), nil)
	assert.Error(t, err)

	path := writeReport(t, `{broken`)
	_, err = NewReportSource(path).Issues(context.Background(), nil)
	assert.Error(t, err)
}
