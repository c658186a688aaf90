// Package analyzer adapts external analyzer findings into issue records.
//
// The engine never runs analyzers itself. It consumes their reports through
// the IssueSource interface, so any tool that can emit a JSON findings file
// can feed the prioritizer.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
)

// NoopSource is an IssueSource that reports nothing. Used when no findings
// report is configured, so the pass always has a source to consult.
type NoopSource struct{}

var _ contract.IssueSource = &NoopSource{} // Compile-time check

// Name identifies the source in logs and issue records.
func (s *NoopSource) Name() string { return "none" }

// Issues implements the IssueSource interface.
func (s *NoopSource) Issues(_ context.Context, _ []schema.FileRecord) ([]schema.Issue, error) {
	return nil, nil
}

// ReportSource reads findings from an analyzer-produced JSON report file.
//
// Two layouts are accepted: a bare array of findings, or an object with an
// "issues" key holding that array. Field names follow the common analyzer
// vocabulary (file/line/severity/category/message), with start_line and
// title as fallbacks.
type ReportSource struct {
	path string
}

var _ contract.IssueSource = &ReportSource{} // Compile-time check

// NewReportSource creates an IssueSource backed by the given report file.
func NewReportSource(path string) *ReportSource {
	return &ReportSource{path: path}
}

// Name identifies the source in logs and issue records.
func (s *ReportSource) Name() string { return "report" }

// reportFinding is the wire shape of one finding in a JSON report.
type reportFinding struct {
	File      string          `json:"file"`
	Line      int             `json:"line"`
	StartLine int             `json:"start_line"`
	Severity  json.RawMessage `json:"severity"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	Title     string          `json:"title"`
	Source    string          `json:"source"`
}

// reportEnvelope is the object layout wrapping a findings array.
type reportEnvelope struct {
	Issues []reportFinding `json:"issues"`
}

// Issues implements the IssueSource interface.
func (s *ReportSource) Issues(ctx context.Context, _ []schema.FileRecord) ([]schema.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read issue report %s: %w", s.path, err)
	}

	findings, err := decodeFindings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse issue report %s: %w", s.path, err)
	}

	issues := make([]schema.Issue, 0, len(findings))
	for _, finding := range findings {
		if finding.File == "" {
			continue
		}

		line := finding.Line
		if line == 0 {
			line = finding.StartLine
		}

		message := finding.Message
		if message == "" {
			message = finding.Title
		}

		source := finding.Source
		if source == "" {
			source = s.Name()
		}

		issues = append(issues, schema.Issue{
			Severity: normalizeSeverity(finding.Severity),
			Category: finding.Category,
			File:     finding.File,
			Line:     line,
			Message:  message,
			Source:   source,
		})
	}
	return issues, nil
}

// decodeFindings handles both accepted report layouts.
func decodeFindings(data []byte) ([]reportFinding, error) {
	var findings []reportFinding
	if err := json.Unmarshal(data, &findings); err == nil {
		return findings, nil
	}

	var envelope reportEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Issues, nil
}

// normalizeSeverity maps analyzer-native severity values onto the shared
// scale. Numeric severities follow the CVSS-style 0-10 convention.
func normalizeSeverity(raw json.RawMessage) schema.Severity {
	if len(raw) == 0 {
		return schema.MediumSeverity
	}

	text := strings.TrimSpace(string(raw))
	if score, err := strconv.ParseFloat(text, 64); err == nil {
		switch {
		case score >= 9:
			return schema.CriticalSeverity
		case score >= 7:
			return schema.HighSeverity
		case score >= 4:
			return schema.MediumSeverity
		default:
			return schema.LowSeverity
		}
	}

	var label string
	if err := json.Unmarshal(raw, &label); err != nil {
		return schema.MediumSeverity
	}
	return schema.ParseSeverity(label)
}
