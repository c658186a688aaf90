package ingest

import (
	"path/filepath"
	"strings"
)

// extToLang maps file extensions to language tags.
var extToLang = map[string]string{
	".py":  "python",
	".pyw": "python",
	".js":  "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".go":  "go",
}

// ignoredDirNames are directory names pruned during the walk.
var ignoredDirNames = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	"vendor":       {},
}

// DetectLanguage returns the language tag for a path, falling back to the
// shebang line for extensionless scripts. An empty string means the file is
// not a supported source file.
func DetectLanguage(path string, firstLine string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extToLang[ext]; ok {
		return lang
	}
	if strings.HasPrefix(firstLine, "#!/") {
		line := strings.ToLower(firstLine)
		if strings.Contains(line, "python") {
			return "python"
		}
		if strings.Contains(line, "node") || strings.Contains(line, "deno") {
			return "javascript"
		}
	}
	return ""
}

// looksBinary reports whether a content sample is likely binary data.
// Presence of a NUL byte or a high ratio of non-text bytes disqualifies a file.
func looksBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	nontext := 0
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			nontext++
		}
	}
	return float64(nontext)/float64(len(sample)) > 0.30
}

// countSLOC counts non-blank source lines.
func countSLOC(text string) int {
	count := 0
	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
