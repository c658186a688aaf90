package index

import (
	"testing"

	"github.com/huangsam/triage/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCorpus indexes a small fixture tree for query tests.
func buildCorpus(stemming bool) []schema.IndexedDocument {
	b := NewBuilder(testBoosts(), stemming)
	files := map[string]string{
		"json_parser.py": "def parse_json(path):\n    with open(path) as f:\n        data = json.load(f)\n    return data\n",
		"csv_reader.py":  "def read_csv(path):\n    rows = []\n    with open(path) as f:\n        rows = f.readlines()\n    return rows\n",
		"server.py":      "def start_server(port):\n    listen(port)\n    accept_connections()\n",
	}
	docs := make([]schema.IndexedDocument, 0, len(files))
	for path, content := range files {
		docs = append(docs, b.BuildDocument(path, content))
	}
	return docs
}

func TestSearchRanking(t *testing.T) {
	engine := NewEngine(buildCorpus(false), false)

	t.Run("best file first with citation", func(t *testing.T) {
		hits := engine.Search("parse json file", 10)
		require.NotEmpty(t, hits)
		assert.Equal(t, "json_parser.py", hits[0].Path)
		assert.Equal(t, 1, hits[0].StartLine)
		assert.GreaterOrEqual(t, hits[0].EndLine, hits[0].StartLine)
	})

	t.Run("scores descend", func(t *testing.T) {
		hits := engine.Search("path open data", 10)
		for i := 1; i < len(hits); i++ {
			assert.LessOrEqual(t, hits[i].Score, hits[i-1].Score)
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		hits := engine.Search("path", 1)
		assert.Len(t, hits, 1)
	})
}

func TestSearchEmptyResults(t *testing.T) {
	engine := NewEngine(buildCorpus(false), false)

	t.Run("stopword-only query", func(t *testing.T) {
		assert.Empty(t, engine.Search("the of and to", 10))
	})

	t.Run("unknown terms only", func(t *testing.T) {
		assert.Empty(t, engine.Search("xylophone quarantine", 10))
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, engine.Search("", 10))
	})

	t.Run("zero limit", func(t *testing.T) {
		assert.Empty(t, engine.Search("path", 0))
	})
}

func TestSearchDeterminism(t *testing.T) {
	docs := buildCorpus(false)
	a := NewEngine(docs, false).Search("open path", 10)
	b := NewEngine(docs, false).Search("open path", 10)
	assert.Equal(t, a, b)
}

func TestSearchEmptyCorpus(t *testing.T) {
	engine := NewEngine(nil, false)
	assert.Empty(t, engine.Search("anything", 5))
}

func TestSearchStemmingMatchesWordForms(t *testing.T) {
	b := NewBuilder(testBoosts(), true)
	docs := []schema.IndexedDocument{
		b.BuildDocument("auth.py", "def authenticate(user):\n    check(user)\n"),
	}
	engine := NewEngine(docs, true)

	hits := engine.Search("authentication", 5)
	require.Len(t, hits, 1)
	assert.Equal(t, "auth.py", hits[0].Path)
}
