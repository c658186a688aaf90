package ingest

import (
	"regexp"
	"strings"
)

// branchKeywords approximates cyclomatic complexity per language by counting
// branching constructs. The estimate only needs to be comparable across files
// within one pass; the hotspot scorer min-max normalizes it.
var branchKeywords = map[string][]string{
	"python":     {"if ", "elif ", "for ", "while ", "except", " and ", " or ", "case "},
	"javascript": {"if ", "if(", "for ", "for(", "while ", "while(", "case ", "catch", "&&", "||", "?."},
	"typescript": {"if ", "if(", "for ", "for(", "while ", "while(", "case ", "catch", "&&", "||", "?."},
	"go":         {"if ", "for ", "case ", "select ", "&&", "||"},
}

var commentPrefixRe = regexp.MustCompile(`^\s*(#|//|/\*|\*)`)

// EstimateComplexity returns a branch-count complexity estimate for a file.
// Comment-only lines are skipped so heavily documented files are not
// penalized. The result is always >= 0.
func EstimateComplexity(text, language string) float64 {
	keywords, ok := branchKeywords[language]
	if !ok {
		return 0
	}

	total := 1.0 // one linear path exists regardless of branches
	for line := range strings.SplitSeq(text, "\n") {
		if commentPrefixRe.MatchString(line) {
			continue
		}
		for _, kw := range keywords {
			total += float64(strings.Count(line, kw))
		}
	}
	return total
}
