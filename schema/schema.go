// Package schema has configs, models and shared constants for all parts of triage.
package schema

// FileRecord captures what the ingestor learned about a single source file.
// It is created once per analysis pass and is read-only to every downstream
// component; derived data (graph, scores, index) is always computed fresh.
type FileRecord struct {
	Path       string   // Relative path, unique key within a pass
	Language   string   // Detected language tag (e.g. "go", "python")
	Lines      int      // Source lines of code, blank lines excluded
	Complexity float64  // Raw complexity estimate, >= 0
	Imports    []string // Resolved import targets as relative paths
	Content    string   // Full text content, owned by the ingestor
}

// DependencyEdge is a directed file-to-file relation derived from static
// import resolution. Self-edges and edges to unknown files are never stored.
type DependencyEdge struct {
	Source string // Importing file
	Target string // Imported file
}

// DependencyGraph holds the file nodes and import edges for one pass.
// Cycles between files are valid and expected.
type DependencyGraph struct {
	Files []string         // Sorted node paths
	Index map[string]int   // Path to position in Files
	Out   [][]int          // Adjacency list, Out[i] = indices imported by Files[i]
	In    []int            // In-degree per node
	Edges []DependencyEdge // Retained edges after dangling-reference filtering
}

// NodeCount returns the number of files in the graph.
func (g *DependencyGraph) NodeCount() int {
	return len(g.Files)
}

// EdgeCount returns the number of retained edges in the graph.
func (g *DependencyGraph) EdgeCount() int {
	return len(g.Edges)
}

// ChurnRecord aggregates version-history activity for a single file over the
// observed window. A file with no history has the zero value.
type ChurnRecord struct {
	Path         string // Relative path to the file
	Commits      int    // Commits touching the file
	LinesAdded   int    // Total lines added across those commits
	LinesRemoved int    // Total lines removed across those commits
}

// LinesChanged returns the total change volume for the record.
func (c ChurnRecord) LinesChanged() int {
	return c.LinesAdded + c.LinesRemoved
}

// HotspotScore is the per-file composite result of one analysis pass.
type HotspotScore struct {
	Path       string                   `json:"path"`
	Score      float64                  `json:"score"`      // Blended score in [0,1]
	Complexity float64                  `json:"complexity"` // Normalized complexity input
	Centrality float64                  `json:"centrality"` // Normalized centrality input
	Churn      float64                  `json:"churn"`      // Normalized churn input
	Breakdown  map[BreakdownKey]float64 `json:"breakdown,omitempty"` // Weighted contribution per input
}

// Issue is a single finding reported by an analyzer collaborator. The core
// only reads issues; re-scoring happens on PrioritizedIssue copies.
type Issue struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	File     string   `json:"file"`
	Line     int      `json:"line"` // 1-based
	Message  string   `json:"message"`
	Source   string   `json:"source,omitempty"` // Analyzer that produced it
}

// PrioritizedIssue annotates an Issue with its computed priority. Ordering is
// fully deterministic: severity rank first, then hotspot score, then file
// path, then line number.
type PrioritizedIssue struct {
	Issue
	Hotspot  float64 `json:"hotspot"`  // Hotspot score of the issue's file, 0 if unscored
	Priority float64 `json:"priority"` // Severity-dominant composite for display
}

// TermWeight is one weighted term of an indexed chunk. Term slices are kept
// sorted by term so serialization and scoring are order-independent.
type TermWeight struct {
	Term   string  `json:"t"`
	Weight float64 `json:"w"`
}

// DocumentChunk is a contiguous line range of a file with its own weight
// vector. Query citations point at chunks, not whole files.
type DocumentChunk struct {
	StartLine int          `json:"start"`
	EndLine   int          `json:"end"`
	Terms     []TermWeight `json:"terms"`
}

// IndexedDocument is the retrieval-index entry for one file.
type IndexedDocument struct {
	Path        string          `json:"path"`
	Fingerprint string          `json:"fingerprint"` // Content hash for cache validity
	Chunks      []DocumentChunk `json:"chunks"`
}

// Empty reports whether the document carries no indexable terms.
func (d *IndexedDocument) Empty() bool {
	for _, ch := range d.Chunks {
		if len(ch.Terms) > 0 {
			return false
		}
	}
	return true
}

// QueryHit is one ranked answer to a free-text query.
type QueryHit struct {
	Path      string  `json:"path"`
	StartLine int     `json:"start_line"`
	EndLine   int     `json:"end_line"`
	Score     float64 `json:"score"`
	Snippet   string  `json:"snippet,omitempty"`
}

// PassResult bundles everything one analysis pass produces.
type PassResult struct {
	Hotspots []HotspotScore     `json:"hotspots"` // Ranked descending
	Issues   []PrioritizedIssue `json:"issues"`   // Ranked descending
	Files    int                `json:"files"`    // Files ingested
	Edges    int                `json:"edges"`    // Dependency edges retained
}

// HotspotMap returns hotspot scores keyed by path for boundary consumers.
func (r *PassResult) HotspotMap() map[string]float64 {
	m := make(map[string]float64, len(r.Hotspots))
	for _, h := range r.Hotspots {
		m[h.Path] = h.Score
	}
	return m
}
