package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/parquet"
	"github.com/huangsam/triage/schema"
)

// PrintQueryResults outputs ranked retrieval hits, dispatching based on the
// output format configured.
func PrintQueryResults(hits []schema.QueryHit, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQueryJSON(w, hits)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQueryCSV(w, hits, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		return parquet.WriteQueryHitsParquet(parquet.ConvertQueryHits(hits), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQueryTable(hits, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeQueryTable generates and writes the human-readable table.
func writeQueryTable(hits []schema.QueryHit, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if len(hits) == 0 {
		_, err := fmt.Fprintln(writer, "No matches found")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Path", "Lines", "Score", "Snippet"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, hit := range hits {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(hit.Path, getMaxTablePathWidth(cfg)),
			fmt.Sprintf("%d-%d", hit.StartLine, hit.EndLine),
			fmtFloat(hit.Score),
			hit.Snippet,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Found %d matches in %v\n", len(hits), duration)
	return err
}

// writeQueryCSV writes the retrieval hits in CSV format.
func writeQueryCSV(w io.Writer, hits []schema.QueryHit, fmtFloat func(float64) string) error {
	header := []string{"rank", "file", "start_line", "end_line", "score", "snippet"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, hit := range hits {
			rec := []string{
				strconv.Itoa(i + 1),
				hit.Path,
				strconv.Itoa(hit.StartLine),
				strconv.Itoa(hit.EndLine),
				fmtFloat(hit.Score),
				hit.Snippet,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeQueryJSON writes the retrieval hits in JSON format.
func writeQueryJSON(w io.Writer, hits []schema.QueryHit) error {
	type JSONHit struct {
		Rank int `json:"rank"`
		schema.QueryHit
	}

	output := make([]JSONHit, len(hits))
	for i, hit := range hits {
		output[i] = JSONHit{Rank: i + 1, QueryHit: hit}
	}
	return writeJSON(w, output)
}
