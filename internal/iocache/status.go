package iocache

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/huangsam/triage/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// WriteCacheStatus writes a human-readable summary of the index cache store.
func WriteCacheStatus(w io.Writer, status schema.CacheStatus) {
	fmt.Fprintf(w, "Index cache backend: %s\n", status.Backend)
	fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}

	fmt.Fprintf(w, "Cached documents: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Fprintf(w, "Newest document: %s\n", formatStatusTime(status.LastEntryTime))
		fmt.Fprintf(w, "Oldest document: %s\n", formatStatusTime(status.OldestEntryTime))
	}
	fmt.Fprintf(w, "Table size: %d bytes\n", status.TableSizeBytes)
}

// WriteAnalysisStatus writes a human-readable summary of the analysis-run store.
func WriteAnalysisStatus(w io.Writer, status schema.AnalysisStatus) {
	fmt.Fprintf(w, "Analysis backend: %s\n", status.Backend)
	fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}

	fmt.Fprintf(w, "Recorded runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Fprintf(w, "Last run ID: %d\n", status.LastRunID)
		fmt.Fprintf(w, "Last run: %s\n", formatStatusTime(status.LastRunTime))
		fmt.Fprintf(w, "Oldest run: %s\n", formatStatusTime(status.OldestRunTime))
		fmt.Fprintf(w, "Files scored across runs: %d\n", status.TotalFilesAnalyzed)
	}

	if len(status.TableSizes) == 0 {
		return
	}
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Fprintln(w, "Table sizes:")
	for _, table := range tables {
		fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}

func formatStatusTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(statusTimeLayout)
}
