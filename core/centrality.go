package core

import (
	"math"

	"github.com/huangsam/triage/schema"
)

// PageRank constants. A fixed iteration bound keeps the computation finite on
// arbitrarily deep cycles; convergence usually stops it much earlier.
const (
	pagerankDamping   = 0.85
	pagerankMaxIter   = 100
	pagerankTolerance = 1e-9
)

// ComputeCentrality scores each file's structural importance in [0,1].
// The raw score blends the normalized in-degree (fraction of all files that
// depend on this file) with an iterative PageRank-style score, then min-max
// normalizes across the whole pass. Graphs with a single file or no edges
// yield centrality 0 for every file. Disconnected components share the same
// global normalization.
func ComputeCentrality(g *schema.DependencyGraph) map[string]float64 {
	n := g.NodeCount()
	result := make(map[string]float64, n)
	for _, p := range g.Files {
		result[p] = 0
	}
	if n <= 1 || g.EdgeCount() == 0 {
		return result
	}

	rank := pagerank(g)

	// Blend in-degree fraction with the iterative score. Other files is n-1,
	// never zero here because n > 1.
	raw := make([]float64, n)
	for i := range raw {
		inFraction := float64(g.In[i]) / float64(n-1)
		raw[i] = 0.5*inFraction + 0.5*rank[i]
	}

	for i, v := range minMaxNormalize(raw) {
		result[g.Files[i]] = v
	}
	return result
}

// pagerank runs bounded power iteration over the adjacency list. Dangling
// nodes distribute their rank uniformly, keeping the total mass at 1.
func pagerank(g *schema.DependencyGraph) []float64 {
	n := g.NodeCount()
	rank := make([]float64, n)
	next := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	for iter := 0; iter < pagerankMaxIter; iter++ {
		base := (1.0 - pagerankDamping) / float64(n)

		// Collect dangling mass first so the teleport term stays uniform.
		dangling := 0.0
		for i := range rank {
			if len(g.Out[i]) == 0 {
				dangling += rank[i]
			}
		}
		for i := range next {
			next[i] = base + pagerankDamping*dangling/float64(n)
		}
		for i := range rank {
			outs := g.Out[i]
			if len(outs) == 0 {
				continue
			}
			share := rank[i] / float64(len(outs))
			for _, j := range outs {
				next[j] += pagerankDamping * share
			}
		}

		diff := 0.0
		for i := range rank {
			diff += math.Abs(next[i] - rank[i])
		}
		copy(rank, next)
		if diff < pagerankTolerance {
			break
		}
	}
	return rank
}

// minMaxNormalize rescales values to [0,1]. A constant slice maps to all
// zeros rather than dividing by zero.
func minMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}
