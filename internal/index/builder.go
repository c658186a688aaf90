// Package index builds and queries the weighted lexical retrieval index.
package index

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
)

// chunkLines is the number of source lines per indexed chunk. Chunks give
// query results a line-range citation instead of a whole-file one.
const chunkLines = 120

// Builder turns raw file content into IndexedDocuments.
//
// Stored chunk weights are boosted, length-normalized term frequencies.
// They depend only on the file's own content, which is what makes the
// per-file fingerprint cache sound: the corpus-wide IDF factor is applied
// later by the query engine, where the whole pass is in view.
type Builder struct {
	tok    *Tokenizer
	boosts contract.IndexBoosts
}

// NewBuilder creates a document builder with the given boost configuration.
func NewBuilder(boosts contract.IndexBoosts, stemming bool) *Builder {
	return &Builder{tok: NewTokenizer(stemming), boosts: boosts}
}

// Fingerprint returns the cache-validity fingerprint for file content.
func Fingerprint(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// BuildDocument indexes one file. Empty files produce an empty but valid
// document with zero terms, never an error.
func (b *Builder) BuildDocument(filePath, content string) schema.IndexedDocument {
	doc := schema.IndexedDocument{
		Path:        filePath,
		Fingerprint: Fingerprint(content),
	}
	if strings.TrimSpace(content) == "" {
		return doc
	}

	base := path.Base(filePath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	filenameTerms := make(map[string]struct{})
	for _, term := range b.tok.Tokenize(stem) {
		filenameTerms[term] = struct{}{}
	}

	lines := strings.Split(content, "\n")
	for start := 0; start < len(lines); start += chunkLines {
		end := min(start+chunkLines, len(lines))
		text := strings.Join(lines[start:end], "\n")
		chunk := b.buildChunk(text, filenameTerms)
		chunk.StartLine = start + 1
		chunk.EndLine = end
		doc.Chunks = append(doc.Chunks, chunk)
	}
	return doc
}

// buildChunk computes the boosted term-frequency vector for one chunk.
func (b *Builder) buildChunk(text string, filenameTerms map[string]struct{}) schema.DocumentChunk {
	terms := b.tok.Tokenize(text)
	if len(terms) == 0 {
		return schema.DocumentChunk{}
	}

	counts := make(map[string]float64, len(terms))
	for _, term := range terms {
		counts[term]++
	}

	identifierTerms := make(map[string]struct{})
	for _, name := range b.tok.ExtractIdentifiers(text) {
		identifierTerms[name] = struct{}{}
	}

	// Post-hoc boosts: multiply, so a term that is both an identifier and a
	// filename word compounds.
	total := float64(len(terms))
	weighted := make([]schema.TermWeight, 0, len(counts))
	for term, count := range counts {
		weight := count / total
		if _, ok := identifierTerms[term]; ok {
			weight *= b.boosts.Identifier
		}
		if _, ok := filenameTerms[term]; ok {
			weight *= b.boosts.Filename
		}
		weighted = append(weighted, schema.TermWeight{Term: term, Weight: weight})
	}
	sort.Slice(weighted, func(i, j int) bool { return weighted[i].Term < weighted[j].Term })

	return schema.DocumentChunk{Terms: weighted}
}
