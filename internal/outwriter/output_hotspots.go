package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/parquet"
	"github.com/huangsam/triage/schema"
)

// PrintHotspotResults outputs ranked hotspot files, dispatching based on the
// output format configured.
func PrintHotspotResults(scores []schema.HotspotScore, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotJSON(w, scores)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotCSV(w, scores, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		return parquet.WriteHotspotsParquet(parquet.ConvertHotspotScores(scores), cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotTable(scores, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeHotspotTable generates and writes the human-readable table.
func writeHotspotTable(scores []schema.HotspotScore, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Path", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Complexity", "Centrality", "Churn")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range scores {
		label := contract.GetPlainLabel(s.Score)
		if cfg.UseColors {
			label = contract.GetColorLabel(s.Score)
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(s.Path, getMaxTablePathWidth(cfg)),
			fmtFloat(s.Score),
			label,
		}
		if cfg.Detail {
			row = append(row,
				fmtFloat(s.Complexity),
				fmtFloat(s.Centrality),
				fmtFloat(s.Churn),
			)
		}
		if cfg.Explain {
			row = append(row, formatBreakdown(s.Breakdown, fmtFloat))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d files\n", len(scores)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// formatBreakdown renders the weighted contribution map as a stable,
// largest-first summary string.
func formatBreakdown(breakdown map[schema.BreakdownKey]float64, fmtFloat func(float64) string) string {
	keys := make([]schema.BreakdownKey, 0, len(breakdown))
	for key := range breakdown {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if breakdown[keys[i]] != breakdown[keys[j]] {
			return breakdown[keys[i]] > breakdown[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s=%s", key, fmtFloat(breakdown[key]))
	}
	return strings.Join(parts, " ")
}

// writeHotspotCSV writes the ranked hotspots in CSV format.
func writeHotspotCSV(w io.Writer, scores []schema.HotspotScore, fmtFloat func(float64) string) error {
	header := []string{"rank", "file", "score", "label", "complexity", "centrality", "churn"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, s := range scores {
			rec := []string{
				strconv.Itoa(i + 1),
				s.Path,
				fmtFloat(s.Score),
				contract.GetPlainLabel(s.Score),
				fmtFloat(s.Complexity),
				fmtFloat(s.Centrality),
				fmtFloat(s.Churn),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHotspotJSON writes the ranked hotspots in JSON format.
func writeHotspotJSON(w io.Writer, scores []schema.HotspotScore) error {
	type JSONHotspot struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.HotspotScore
	}

	output := make([]JSONHotspot, len(scores))
	for i, s := range scores {
		output[i] = JSONHotspot{
			Rank:         i + 1,
			Label:        contract.GetPlainLabel(s.Score),
			HotspotScore: s,
		}
	}
	return writeJSON(w, output)
}
