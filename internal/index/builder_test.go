package index

import (
	"strings"
	"testing"

	"github.com/huangsam/triage/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoosts() contract.IndexBoosts {
	return contract.IndexBoosts{Filename: 2.0, Identifier: 1.5}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("hello")
	b := Fingerprint("hello")
	c := Fingerprint("hello!")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestBuildDocument(t *testing.T) {
	b := NewBuilder(testBoosts(), false)

	t.Run("empty file yields valid empty document", func(t *testing.T) {
		doc := b.BuildDocument("empty.py", "   \n\t\n")
		assert.Equal(t, "empty.py", doc.Path)
		assert.NotEmpty(t, doc.Fingerprint)
		assert.Empty(t, doc.Chunks)
	})

	t.Run("single chunk with line range", func(t *testing.T) {
		doc := b.BuildDocument("parser.py", "def parse_json(data):\n    return data\n")
		require.Len(t, doc.Chunks, 1)
		assert.Equal(t, 1, doc.Chunks[0].StartLine)
		assert.Equal(t, 3, doc.Chunks[0].EndLine)
		assert.NotEmpty(t, doc.Chunks[0].Terms)
	})

	t.Run("long file splits into chunks", func(t *testing.T) {
		content := strings.Repeat("value = compute()\n", 300)
		doc := b.BuildDocument("big.py", content)
		require.Len(t, doc.Chunks, 3)
		assert.Equal(t, 1, doc.Chunks[0].StartLine)
		assert.Equal(t, 120, doc.Chunks[0].EndLine)
		assert.Equal(t, 121, doc.Chunks[1].StartLine)
		assert.Equal(t, 241, doc.Chunks[2].StartLine)
	})

	t.Run("terms sorted for stable serialization", func(t *testing.T) {
		doc := b.BuildDocument("a.py", "zebra apple mango zebra\n")
		require.Len(t, doc.Chunks, 1)
		terms := doc.Chunks[0].Terms
		for i := 1; i < len(terms); i++ {
			assert.Less(t, terms[i-1].Term, terms[i].Term)
		}
	})
}

func TestBuildDocumentBoosts(t *testing.T) {
	b := NewBuilder(testBoosts(), false)

	t.Run("filename terms are boosted", func(t *testing.T) {
		doc := b.BuildDocument("parser.py", "parser helper\n")
		require.Len(t, doc.Chunks, 1)
		weights := map[string]float64{}
		for _, tw := range doc.Chunks[0].Terms {
			weights[tw.Term] = tw.Weight
		}
		// Both terms appear once; only "parser" matches the filename stem.
		assert.InDelta(t, weights["helper"]*2.0, weights["parser"], 1e-12)
	})

	t.Run("identifier terms are boosted", func(t *testing.T) {
		doc := b.BuildDocument("m.py", "def handle(x):\n    return finish\n")
		require.Len(t, doc.Chunks, 1)
		weights := map[string]float64{}
		for _, tw := range doc.Chunks[0].Terms {
			weights[tw.Term] = tw.Weight
		}
		assert.InDelta(t, weights["finish"]*1.5, weights["handle"], 1e-12)
	})

	t.Run("identifier and filename boosts compound", func(t *testing.T) {
		doc := b.BuildDocument("handle.py", "def handle(x):\n    return finish\n")
		require.Len(t, doc.Chunks, 1)
		weights := map[string]float64{}
		for _, tw := range doc.Chunks[0].Terms {
			weights[tw.Term] = tw.Weight
		}
		assert.InDelta(t, weights["finish"]*3.0, weights["handle"], 1e-12)
	})
}
