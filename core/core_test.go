package core

import (
	"context"
	"testing"

	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunQuery(t *testing.T) {
	cfg := passConfig(t, map[string]string{
		"json_parser.py": "def parse_json(path):\n\n    data = json.load(open(path))\n    return data\n",
		"csv_reader.py":  "def read_csv(path):\n    return open(path).readlines()\n",
	})
	ctx := context.Background()

	t.Run("ranked hits with citations and snippets", func(t *testing.T) {
		hits, err := RunQuery(ctx, cfg, "json data")
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "json_parser.py", hits[0].Path)
		assert.Equal(t, 1, hits[0].StartLine)
		assert.Equal(t, "def parse_json(path):", hits[0].Snippet)
	})

	t.Run("stopword-only query yields no hits", func(t *testing.T) {
		hits, err := RunQuery(ctx, cfg, "the of and")
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("limit caps hits", func(t *testing.T) {
		cfg := cfg.Clone()
		cfg.ResultLimit = 1
		hits, err := RunQuery(ctx, cfg, "path open")
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})
}

func TestRunPassExported(t *testing.T) {
	cfg := passConfig(t, fixtureFiles())
	result, err := RunPass(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, result.Hotspots, 3)
	assert.Empty(t, result.Issues) // no report configured
}

func TestAttachSnippets(t *testing.T) {
	files := []schema.FileRecord{
		{Path: "a.py", Content: "\n\n  first = 1\nsecond = 2\n"},
		{Path: "b.py", Content: ""},
	}

	t.Run("first non-blank line of the chunk", func(t *testing.T) {
		hits := []schema.QueryHit{{Path: "a.py", StartLine: 1, EndLine: 4}}
		attachSnippets(hits, files)
		assert.Equal(t, "first = 1", hits[0].Snippet)
	})

	t.Run("unknown path leaves snippet empty", func(t *testing.T) {
		hits := []schema.QueryHit{{Path: "missing.py", StartLine: 1, EndLine: 2}}
		attachSnippets(hits, files)
		assert.Empty(t, hits[0].Snippet)
	})

	t.Run("blank chunk leaves snippet empty", func(t *testing.T) {
		hits := []schema.QueryHit{{Path: "a.py", StartLine: 1, EndLine: 2}}
		attachSnippets(hits, files)
		assert.Empty(t, hits[0].Snippet)
	})
}
