package index

import (
	"regexp"
	"strings"

	"github.com/surgebase/porter2"
)

// tokenRe matches identifier-like words of length >= 2.
var tokenRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]+`)

// identifierRe captures declared function/class/type names across the
// supported languages. Matches feed the identifier boost, so false negatives
// only cost a little ranking signal.
var identifierRe = regexp.MustCompile(
	`(?m)(?:^|\s)(?:def|class|func|function)\s+\(?[\w\[\]\*\. ]*?([A-Za-z_][A-Za-z0-9_]+)\s*[({:]|(?:^|\s)(?:type|interface)\s+([A-Za-z_][A-Za-z0-9_]+)|const\s+([A-Za-z_][A-Za-z0-9_]+)\s*=`)

// stopwords are dropped during tokenization. The list covers English filler
// plus keywords so common they carry no discriminative value in code.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "not": {}, "of": {},
	"to": {}, "in": {}, "on": {}, "at": {}, "is": {}, "are": {}, "was": {},
	"be": {}, "this": {}, "that": {}, "it": {}, "as": {}, "by": {}, "for": {},
	"with": {}, "from": {}, "do": {}, "does": {}, "how": {}, "what": {},
	"where": {}, "when": {}, "which": {}, "can": {}, "will": {}, "if": {},
	"else": {}, "return": {}, "import": {}, "package": {}, "var": {},
	"self": {}, "none": {}, "true": {}, "false": {}, "nil": {}, "null": {},
}

// Tokenizer normalizes text into index terms: lower-cased word-boundary
// splitting, stop words removed, minimum token length 2, with optional
// porter2 stemming.
type Tokenizer struct {
	stemming bool
}

// NewTokenizer creates a tokenizer. Stemming folds word forms together
// (authenticate / authentication) at the cost of exact-term fidelity.
func NewTokenizer(stemming bool) *Tokenizer {
	return &Tokenizer{stemming: stemming}
}

// Tokenize returns the normalized terms of a text, in order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	raw := tokenRe.FindAllString(text, -1)
	terms := make([]string, 0, len(raw))
	for _, tok := range raw {
		term := t.Normalize(tok)
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// Normalize maps one token to its index term, or "" when it is dropped.
func (t *Tokenizer) Normalize(tok string) string {
	term := strings.ToLower(tok)
	if len(term) < 2 {
		return ""
	}
	if _, stop := stopwords[term]; stop {
		return ""
	}
	if t.stemming {
		if stemmed := porter2.Stem(term); len(stemmed) >= 2 {
			term = stemmed
		}
	}
	return term
}

// ExtractIdentifiers returns the normalized declared names found in a text.
func (t *Tokenizer) ExtractIdentifiers(text string) []string {
	var names []string
	for _, m := range identifierRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		for _, group := range m[2:] {
			if name != "" {
				break
			}
			name = group
		}
		if term := t.Normalize(name); term != "" {
			names = append(names, term)
		}
	}
	return names
}
