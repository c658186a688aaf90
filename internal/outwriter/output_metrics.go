package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
)

// metricDefinition describes one scoring input for display.
type metricDefinition struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// buildMetricDefinitions assembles the display model from the active weights.
func buildMetricDefinitions(weights contract.ScoreWeights) []metricDefinition {
	return []metricDefinition{
		{
			Name:        string(schema.BreakdownComplexity),
			Weight:      weights.Complexity,
			Description: "branch-keyword density, min-max normalized across the pass",
		},
		{
			Name:        string(schema.BreakdownCentrality),
			Weight:      weights.Centrality,
			Description: "blend of in-degree fraction and PageRank over the import graph",
		},
		{
			Name:        string(schema.BreakdownChurn),
			Weight:      weights.Churn,
			Description: "lines added plus removed from git history, min-max normalized",
		},
	}
}

// PrintMetricsDefinitions displays the formal definition of the composite
// hotspot score. This is a static display that does not require analysis.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	defs := buildMetricDefinitions(cfg.Weights)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"name", "weight", "description"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, def := range defs {
					rec := []string{def.Name, fmt.Sprintf("%.2f", def.Weight), def.Description}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, defs)
		}, "Wrote text")
	}
}

// printMetricsText displays the score definition in human-readable form.
func printMetricsText(w io.Writer, defs []metricDefinition) error {
	if _, err := fmt.Fprintf(w, "🔥 Hotspot Score\n================\n"); err != nil {
		return err
	}

	formula := "score = "
	for i, def := range defs {
		if i > 0 {
			formula += " + "
		}
		formula += fmt.Sprintf("%.2f*%s", def.Weight, def.Name)
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", formula); err != nil {
		return err
	}

	for _, def := range defs {
		if _, err := fmt.Fprintf(w, "  %-10s (%.2f): %s\n", def.Name, def.Weight, def.Description); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nAll inputs are normalized to [0,1]; the blended score is clamped to [0,1].\n")
	return err
}
