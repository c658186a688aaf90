package ingest

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// Import extraction patterns per language. Resolution is best-effort: the
// dependency graph tolerates unresolved references, so precision matters more
// than recall here.
var (
	pyImportRe   = regexp.MustCompile(`(?m)^\s*(?:import\s+([\w\.]+)|from\s+([\w\.]+)\s+import)`)
	jsImportRe   = regexp.MustCompile(`(?m)import\s+.*?from\s+['"]([^'"]+)['"]|require\(\s*['"]([^'"]+)['"]\s*\)`)
	goImportRe   = regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:[\w\.]+\s+)?"([^"]+)"`)
	goImportDecl = regexp.MustCompile(`(?ms)^import\s*(?:\(\s*(.*?)\s*\)|"[^"]+")`)
)

// ExtractImportRefs pulls raw import references out of file content.
// The returned strings are language-native (module names, quoted paths) and
// still need resolution against the known file set.
func ExtractImportRefs(text, language string) []string {
	seen := make(map[string]struct{})
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref != "" {
			seen[ref] = struct{}{}
		}
	}

	switch language {
	case "python":
		for _, m := range pyImportRe.FindAllStringSubmatch(text, -1) {
			ref := m[1]
			if ref == "" {
				ref = m[2]
			}
			// Only the top-level module matters for file resolution.
			add(strings.SplitN(ref, ".", 2)[0])
		}
	case "javascript", "typescript":
		for _, m := range jsImportRe.FindAllStringSubmatch(text, -1) {
			ref := m[1]
			if ref == "" {
				ref = m[2]
			}
			add(ref)
		}
	case "go":
		for _, decl := range goImportDecl.FindAllString(text, -1) {
			for _, m := range goImportRe.FindAllStringSubmatch(decl, -1) {
				add(m[1])
			}
		}
	}

	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// resolver maps raw import references to known file paths.
type resolver struct {
	known   map[string]struct{} // all ingested paths
	byStem  map[string][]string // base name without extension -> paths
	byDir   map[string][]string // directory base name -> paths inside it
	sorted  []string            // all paths, sorted
}

func newResolver(paths []string) *resolver {
	r := &resolver{
		known:  make(map[string]struct{}, len(paths)),
		byStem: make(map[string][]string),
		byDir:  make(map[string][]string),
	}
	r.sorted = append(r.sorted, paths...)
	sort.Strings(r.sorted)
	for _, p := range r.sorted {
		r.known[p] = struct{}{}
		base := path.Base(p)
		stem := strings.TrimSuffix(base, path.Ext(base))
		r.byStem[stem] = append(r.byStem[stem], p)
		dir := path.Base(path.Dir(p))
		if dir != "." {
			r.byDir[dir] = append(r.byDir[dir], p)
		}
	}
	return r
}

// Resolve maps one raw reference from the importing file to repository paths.
// Unresolvable references (stdlib, third-party packages, missing files)
// return nil; the caller drops them silently.
func (r *resolver) Resolve(fromPath, ref, language string) []string {
	switch language {
	case "python":
		return r.matchesExcluding(r.byStem[ref], fromPath)
	case "javascript", "typescript":
		if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") {
			candidate := path.Clean(path.Join(path.Dir(fromPath), ref))
			var matches []string
			for _, p := range r.sorted {
				if p != fromPath && (p == candidate || strings.HasPrefix(p, candidate+".") || strings.HasPrefix(p, candidate+"/")) {
					matches = append(matches, p)
				}
			}
			return matches
		}
		return nil // bare package import
	case "go":
		// Match repository files that live in a directory named after the
		// import path's final segment.
		return r.matchesExcluding(r.byDir[path.Base(ref)], fromPath)
	}
	return nil
}

func (r *resolver) matchesExcluding(candidates []string, exclude string) []string {
	var matches []string
	for _, p := range candidates {
		if p != exclude {
			matches = append(matches, p)
		}
	}
	return matches
}
