package core

import "github.com/huangsam/triage/schema"

// ComputeChurn turns version-history aggregates into per-file [0,1] scores
// using the same min-max convention as centrality. The score is computed over
// lines-changed totals (added+removed), not commit count alone, to avoid bias
// toward many tiny commits. Files with no history record, or an entirely
// absent history, score 0 — missing data degrades, it never fails.
func ComputeChurn(files []string, history []schema.ChurnRecord) map[string]float64 {
	result := make(map[string]float64, len(files))
	for _, p := range files {
		result[p] = 0
	}
	if len(history) == 0 {
		return result
	}

	changed := make(map[string]int, len(history))
	for _, rec := range history {
		changed[rec.Path] += rec.LinesChanged()
	}

	raw := make([]float64, len(files))
	for i, p := range files {
		raw[i] = float64(changed[p])
	}
	for i, v := range minMaxNormalize(raw) {
		result[files[i]] = v
	}
	return result
}
