package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/iocache"
	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// passConfig returns a config pointing at a freshly written fixture repo.
func passConfig(t *testing.T, files map[string]string) *contract.Config {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return &contract.Config{
		RepoPath:     root,
		Workers:      2,
		ResultLimit:  25,
		MaxFiles:     100,
		MaxFileBytes: 1 << 20,
		Weights:      contract.ScoreWeights{Complexity: 0.4, Centrality: 0.35, Churn: 0.25},
		Boosts:       contract.IndexBoosts{Filename: 2.0, Identifier: 1.5},
	}
}

func fixtureFiles() map[string]string {
	return map[string]string{
		"app/main.py":   "import models\nimport helpers\n\nif True:\n    run()\n",
		"app/models.py": "import helpers\n\nclass User:\n    pass\n",
		"app/helpers.py": "def fmt(x):\n    return x\n",
	}
}

func TestRunPassSuccess(t *testing.T) {
	cfg := passConfig(t, fixtureFiles())
	ctx := context.Background()

	history := &contract.MockHistoryProvider{}
	history.On("ChurnRecords", ctx, cfg.RepoPath).Return([]schema.ChurnRecord{
		{Path: "app/main.py", Commits: 5, LinesAdded: 100, LinesRemoved: 20},
	}, nil)

	source := &contract.MockIssueSource{}
	source.On("Issues", ctx, mock.Anything).Return([]schema.Issue{
		{Severity: schema.HighSeverity, File: "app/main.py", Line: 4, Message: "broad condition"},
		{Severity: schema.LowSeverity, File: "app/helpers.py", Line: 1, Message: "missing docstring"},
	}, nil)

	result, err := runPass(ctx, cfg, history, []contract.IssueSource{source}, nil)
	require.NoError(t, err)

	t.Run("structurally complete", func(t *testing.T) {
		assert.Equal(t, 3, result.Files)
		assert.Len(t, result.Hotspots, 3)
		assert.Equal(t, 3, result.Edges) // main->models, main->helpers, models->helpers
	})

	t.Run("hotspots ranked descending", func(t *testing.T) {
		for i := 1; i < len(result.Hotspots); i++ {
			assert.LessOrEqual(t, result.Hotspots[i].Score, result.Hotspots[i-1].Score)
		}
	})

	t.Run("issues prioritized by severity", func(t *testing.T) {
		require.Len(t, result.Issues, 2)
		assert.Equal(t, schema.HighSeverity, result.Issues[0].Severity)
		assert.Greater(t, result.Issues[0].Priority, result.Issues[1].Priority)
	})

	history.AssertExpectations(t)
	source.AssertExpectations(t)
}

func TestRunPassEmptyRepo(t *testing.T) {
	cfg := passConfig(t, map[string]string{"README.md": "# nothing to analyze\n"})

	result, err := runPass(context.Background(), cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Files)
	assert.Empty(t, result.Hotspots)
	assert.Empty(t, result.Issues)
}

func TestRunPassDegradation(t *testing.T) {
	cfg := passConfig(t, fixtureFiles())
	ctx := context.Background()

	t.Run("history failure degrades to zero churn", func(t *testing.T) {
		history := &contract.MockHistoryProvider{}
		history.On("ChurnRecords", ctx, cfg.RepoPath).Return(nil, assert.AnError)

		result, err := runPass(ctx, cfg, history, nil, nil)
		require.NoError(t, err)
		for _, h := range result.Hotspots {
			assert.Equal(t, 0.0, h.Churn)
		}
		history.AssertExpectations(t)
	})

	t.Run("failing issue source contributes nothing", func(t *testing.T) {
		source := &contract.MockIssueSource{}
		source.On("Issues", ctx, mock.Anything).Return(nil, assert.AnError)
		source.On("Name").Return("flaky")

		result, err := runPass(ctx, cfg, nil, []contract.IssueSource{source}, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Issues)
		source.AssertExpectations(t)
	})
}

func TestRunPassTracking(t *testing.T) {
	cfg := passConfig(t, fixtureFiles())
	ctx := context.Background()

	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.AnythingOfType("int64"), mock.Anything).Return(int64(7), nil)
	store.On("RecordFileScore", int64(7), mock.AnythingOfType("schema.FileScoreRecord")).Return(nil).Times(3)
	store.On("EndAnalysis", int64(7), mock.AnythingOfType("int64"), 3).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetAnalysisStore").Return(store)

	_, err := runPass(ctx, cfg, nil, nil, mgr)
	require.NoError(t, err)

	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRunPassTrackingFailureDoesNotAbort(t *testing.T) {
	cfg := passConfig(t, fixtureFiles())

	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.AnythingOfType("int64"), mock.Anything).Return(int64(0), assert.AnError)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetAnalysisStore").Return(store)

	result, err := runPass(context.Background(), cfg, nil, nil, mgr)
	require.NoError(t, err)
	assert.Len(t, result.Hotspots, 3)
}
