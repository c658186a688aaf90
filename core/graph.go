package core

import (
	"sort"

	"github.com/huangsam/triage/schema"
)

// BuildDependencyGraph assembles the file-to-file import graph for one pass.
// Nodes are an arena of file indices with an adjacency list; no pointer-based
// graph structures. Edges whose target is not a known FileRecord are dropped
// (dangling-reference policy), self-edges are never retained, and duplicate
// edges collapse to one. An empty file list yields an empty graph, not an
// error. Cycles are valid and preserved.
func BuildDependencyGraph(records []schema.FileRecord) *schema.DependencyGraph {
	g := &schema.DependencyGraph{
		Index: make(map[string]int, len(records)),
	}
	for _, rec := range records {
		if _, dup := g.Index[rec.Path]; dup {
			continue
		}
		g.Index[rec.Path] = len(g.Files)
		g.Files = append(g.Files, rec.Path)
	}

	n := len(g.Files)
	g.Out = make([][]int, n)
	g.In = make([]int, n)

	for _, rec := range records {
		src := g.Index[rec.Path]
		seen := make(map[int]struct{}, len(rec.Imports))
		for _, target := range rec.Imports {
			dst, known := g.Index[target]
			if !known || dst == src {
				continue
			}
			if _, dup := seen[dst]; dup {
				continue
			}
			seen[dst] = struct{}{}
			g.Out[src] = append(g.Out[src], dst)
			g.In[dst]++
			g.Edges = append(g.Edges, schema.DependencyEdge{Source: rec.Path, Target: target})
		}
		sort.Ints(g.Out[src])
	}

	return g
}
