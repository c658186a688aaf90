package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/triage/internal/contract"
)

// writeWithFile routes output to the configured file, or stdout when no file
// is set, and reports the destination on stderr so piped stdout stays clean.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	sink, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}

	if sink == os.Stdout {
		return writer(sink)
	}
	defer func() { _ = sink.Close() }()

	if err := writer(sink); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	return nil
}

// writeJSON encodes data as indented JSON.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes the header row, then delegates data rows to the
// caller against a shared csv.Writer.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// floatFormatter returns a closure that renders floats at the configured
// precision, shared by every tabular and CSV surface.
func floatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}
