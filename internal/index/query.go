package index

import (
	"math"
	"sort"

	"github.com/huangsam/triage/schema"
)

// Engine scores indexed documents against free-text queries.
//
// The engine owns the corpus-wide statistics: it computes smoothed IDF over
// all chunks, turns the stored TF weights into normalized TF-IDF vectors, and
// ranks by cosine similarity. Query vectors use the same tokenization and
// weighting as documents, without the identifier and filename boosts.
type Engine struct {
	tok    *Tokenizer
	docs   []schema.IndexedDocument
	idf    map[string]float64
	chunks int
}

// NewEngine builds a query engine over the full pass corpus.
func NewEngine(docs []schema.IndexedDocument, stemming bool) *Engine {
	e := &Engine{
		tok:  NewTokenizer(stemming),
		docs: docs,
		idf:  make(map[string]float64),
	}

	df := make(map[string]int)
	for _, doc := range docs {
		for _, chunk := range doc.Chunks {
			e.chunks++
			for _, tw := range chunk.Terms {
				df[tw.Term]++
			}
		}
	}
	for term, count := range df {
		// Smoothed IDF; the +1 floor keeps ubiquitous terms from vanishing.
		e.idf[term] = math.Log(float64(1+e.chunks)/float64(1+count)) + 1.0
	}
	return e
}

// Search returns the topK ranked hits for a query. Queries whose term vector
// has zero norm (all terms unknown to the corpus, or only stop words) return
// an empty result, not an error. Ties break by shorter file path, then by
// first line number of the match.
func (e *Engine) Search(query string, topK int) []schema.QueryHit {
	qvec := e.vectorizeQuery(query)
	if len(qvec) == 0 || topK <= 0 {
		return nil
	}

	// Best chunk per file: the citation points at the highest-density match
	// region, not merely the whole file.
	best := make(map[string]schema.QueryHit)
	for _, doc := range e.docs {
		for _, chunk := range doc.Chunks {
			score := e.cosine(qvec, chunk.Terms)
			if score <= 0 {
				continue
			}
			hit, seen := best[doc.Path]
			if !seen || score > hit.Score || (score == hit.Score && chunk.StartLine < hit.StartLine) {
				best[doc.Path] = schema.QueryHit{
					Path:      doc.Path,
					StartLine: chunk.StartLine,
					EndLine:   chunk.EndLine,
					Score:     score,
				}
			}
		}
	}

	hits := make([]schema.QueryHit, 0, len(best))
	for _, hit := range best {
		hits = append(hits, hit)
	}
	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Path) != len(b.Path) {
			return len(a.Path) < len(b.Path)
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.StartLine < b.StartLine
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}

// vectorizeQuery builds the normalized TF-IDF vector for a query string.
// Terms absent from the corpus get no IDF entry and thus zero weight.
func (e *Engine) vectorizeQuery(query string) map[string]float64 {
	terms := e.tok.Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	counts := make(map[string]float64, len(terms))
	for _, term := range terms {
		counts[term]++
	}

	vec := make(map[string]float64, len(counts))
	norm := 0.0
	total := float64(len(terms))
	for term, count := range counts {
		idf, known := e.idf[term]
		if !known {
			continue
		}
		w := (count / total) * idf
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// cosine computes the cosine similarity between the query vector and one
// chunk's stored TF weights after applying IDF and normalization.
func (e *Engine) cosine(qvec map[string]float64, terms []schema.TermWeight) float64 {
	if len(terms) == 0 {
		return 0
	}

	dot := 0.0
	norm := 0.0
	for _, tw := range terms {
		w := tw.Weight * e.idf[tw.Term]
		norm += w * w
		if qw, ok := qvec[tw.Term]; ok {
			dot += qw * w
		}
	}
	if norm == 0 || dot == 0 {
		return 0
	}
	return dot / math.Sqrt(norm)
}
