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

// PrintIssueResults outputs prioritized issues, dispatching based on the
// output format configured.
func PrintIssueResults(issues []schema.PrioritizedIssue, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueJSON(w, issues)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueCSV(w, issues, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		return parquet.WriteIssuesParquet(parquet.ConvertPrioritizedIssues(issues), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueTable(issues, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeIssueTable generates and writes the human-readable table.
func writeIssueTable(issues []schema.PrioritizedIssue, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Severity", "File", "Line", "Priority", "Hotspot", "Message"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, issue := range issues {
		severity := string(issue.Severity)
		if cfg.UseColors {
			severity = contract.SeverityColorLabel(severity)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			severity,
			contract.TruncatePath(issue.File, getMaxTablePathWidth(cfg)),
			strconv.Itoa(issue.Line),
			fmtFloat(issue.Priority),
			fmtFloat(issue.Hotspot),
			issue.Message,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d issues\n", len(issues)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeIssueCSV writes the prioritized issues in CSV format.
func writeIssueCSV(w io.Writer, issues []schema.PrioritizedIssue, fmtFloat func(float64) string) error {
	header := []string{"rank", "severity", "file", "line", "priority", "hotspot", "category", "message", "source"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, issue := range issues {
			rec := []string{
				strconv.Itoa(i + 1),
				string(issue.Severity),
				issue.File,
				strconv.Itoa(issue.Line),
				fmtFloat(issue.Priority),
				fmtFloat(issue.Hotspot),
				issue.Category,
				issue.Message,
				issue.Source,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeIssueJSON writes the prioritized issues in JSON format.
func writeIssueJSON(w io.Writer, issues []schema.PrioritizedIssue) error {
	type JSONIssue struct {
		Rank int `json:"rank"`
		schema.PrioritizedIssue
	}

	output := make([]JSONIssue, len(issues))
	for i, issue := range issues {
		output[i] = JSONIssue{Rank: i + 1, PrioritizedIssue: issue}
	}
	return writeJSON(w, output)
}
