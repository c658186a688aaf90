// Package ingest reads a repository snapshot into FileRecords: language
// detection, size and complexity metrics, and resolved import lists.
package ingest

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
)

// LoadRepo walks the repository and produces one FileRecord per supported
// source file, up to cfg.MaxFiles. Unreadable or binary files are skipped
// with a warning; they never abort the pass. The returned slice is sorted by
// path so every downstream aggregation is deterministic.
func LoadRepo(ctx context.Context, cfg *contract.Config) ([]schema.FileRecord, error) {
	candidates, err := collectCandidates(cfg)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	records := make([]schema.FileRecord, 0, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, rel := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, ok := readFile(cfg, rel)
			if !ok {
				return nil
			}
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	resolveImports(records)
	return records, nil
}

// collectCandidates walks the tree and returns candidate relative paths,
// sorted, with ignored directories pruned and excludes applied.
func collectCandidates(cfg *contract.Config) ([]string, error) {
	var candidates []string
	root := cfg.RepoPath

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// A disappearing or unreadable entry is not fatal to the pass.
			return nil
		}
		if d.IsDir() {
			if _, ignored := ignoredDirNames[d.Name()]; ignored && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if cfg.PathFilter != "" && !strings.HasPrefix(rel, cfg.PathFilter) {
			return nil
		}
		if contract.ShouldIgnore(rel, cfg.Excludes) {
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(candidates)
	if len(candidates) > cfg.MaxFiles {
		candidates = candidates[:cfg.MaxFiles]
	}
	return candidates, nil
}

// readFile loads one file and computes its metrics. The boolean result is
// false when the file is binary, unsupported, or unreadable.
func readFile(cfg *contract.Config, rel string) (schema.FileRecord, bool) {
	full := filepath.Join(cfg.RepoPath, rel)

	f, err := os.Open(full)
	if err != nil {
		contract.LogWarn("skipping unreadable file "+rel, err)
		return schema.FileRecord{}, false
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, cfg.MaxFileBytes))
	if err != nil {
		contract.LogWarn("skipping unreadable file "+rel, err)
		return schema.FileRecord{}, false
	}

	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	if looksBinary(sample) {
		return schema.FileRecord{}, false
	}

	text := string(data)
	firstLine, _, _ := strings.Cut(text, "\n")
	language := DetectLanguage(rel, firstLine)
	if language == "" {
		return schema.FileRecord{}, false
	}

	return schema.FileRecord{
		Path:       rel,
		Language:   language,
		Lines:      countSLOC(text),
		Complexity: EstimateComplexity(text, language),
		Imports:    ExtractImportRefs(text, language),
		Content:    text,
	}, true
}

// resolveImports replaces each record's raw import references with resolved
// repository paths. Unresolved references are dropped, matching the
// dangling-reference policy of the dependency graph.
func resolveImports(records []schema.FileRecord) {
	paths := make([]string, len(records))
	for i, rec := range records {
		paths[i] = rec.Path
	}
	res := newResolver(paths)

	for i := range records {
		rec := &records[i]
		resolved := make(map[string]struct{})
		for _, ref := range rec.Imports {
			for _, target := range res.Resolve(rec.Path, ref, rec.Language) {
				resolved[target] = struct{}{}
			}
		}
		rec.Imports = rec.Imports[:0]
		for target := range resolved {
			rec.Imports = append(rec.Imports, target)
		}
		sort.Strings(rec.Imports)
	}
}
