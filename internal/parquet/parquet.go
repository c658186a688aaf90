// Package parquet provides data structures and functions for exporting
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/triage/schema"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the triage_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalFilesAnalyzed is the number of files analyzed in this run
	TotalFilesAnalyzed int32 `parquet:"total_files_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileScore represents the composite score breakdown for a single file.
// This struct maps to the triage_file_scores database table.
type FileScore struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// FilePath is the relative path to the file in the repository
	FilePath string `parquet:"file_path,snappy"`

	// RecordedAt is when this file was scored
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// ScoreComplexity is the normalized complexity component
	ScoreComplexity float64 `parquet:"score_complexity,snappy"`

	// ScoreCentrality is the normalized centrality component
	ScoreCentrality float64 `parquet:"score_centrality,snappy"`

	// ScoreChurn is the normalized churn component
	ScoreChurn float64 `parquet:"score_churn,snappy"`

	// ScoreTotal is the blended composite score
	ScoreTotal float64 `parquet:"score_total,snappy"`
}

// HotspotRow represents one ranked hotspot file for export.
type HotspotRow struct {
	Rank       int32   `parquet:"rank,snappy"`
	FilePath   string  `parquet:"file_path,snappy"`
	Score      float64 `parquet:"score,snappy"`
	Complexity float64 `parquet:"complexity,snappy"`
	Centrality float64 `parquet:"centrality,snappy"`
	Churn      float64 `parquet:"churn,snappy"`
}

// QueryRow represents one retrieval hit for export.
type QueryRow struct {
	Rank      int32   `parquet:"rank,snappy"`
	FilePath  string  `parquet:"file_path,snappy"`
	StartLine int32   `parquet:"start_line,snappy"`
	EndLine   int32   `parquet:"end_line,snappy"`
	Score     float64 `parquet:"score,snappy"`
	Snippet   string  `parquet:"snippet,snappy"`
}

// IssueRow represents one prioritized issue for export.
type IssueRow struct {
	FilePath string  `parquet:"file_path,snappy"`
	Line     int32   `parquet:"line,snappy"`
	Severity string  `parquet:"severity,snappy"`
	Category string  `parquet:"category,snappy"`
	Message  string  `parquet:"message,snappy"`
	Source   string  `parquet:"source,snappy"`
	Hotspot  float64 `parquet:"hotspot,snappy"`
	Priority float64 `parquet:"priority,snappy"`
}

// writeParquet writes records of any schema-tagged type to a Parquet file.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived automatically from the struct tags
	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFileScoresParquet writes a slice of FileScore structs to a Parquet file.
func WriteFileScoresParquet(data []FileScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteIssuesParquet writes a slice of IssueRow structs to a Parquet file.
func WriteIssuesParquet(data []IssueRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteHotspotsParquet writes a slice of HotspotRow structs to a Parquet file.
func WriteHotspotsParquet(data []HotspotRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteQueryHitsParquet writes a slice of QueryRow structs to a Parquet file.
func WriteQueryHitsParquet(data []QueryRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:         record.AnalysisID,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalFilesAnalyzed: int32(record.TotalFilesAnalyzed),
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertFileScoreRecords converts schema.FileScoreRecord to FileScore for Parquet export.
func ConvertFileScoreRecords(records []schema.FileScoreRecord) []FileScore {
	result := make([]FileScore, len(records))
	for i, record := range records {
		result[i] = FileScore{
			AnalysisID:      record.AnalysisID,
			FilePath:        record.FilePath,
			RecordedAt:      record.Recorded,
			ScoreComplexity: record.Complexity,
			ScoreCentrality: record.Centrality,
			ScoreChurn:      record.Churn,
			ScoreTotal:      record.Score,
		}
	}
	return result
}

// ConvertHotspotScores converts ranked schema.HotspotScore to HotspotRow for Parquet export.
func ConvertHotspotScores(scores []schema.HotspotScore) []HotspotRow {
	result := make([]HotspotRow, len(scores))
	for i, score := range scores {
		result[i] = HotspotRow{
			Rank:       int32(i + 1),
			FilePath:   score.Path,
			Score:      score.Score,
			Complexity: score.Complexity,
			Centrality: score.Centrality,
			Churn:      score.Churn,
		}
	}
	return result
}

// ConvertQueryHits converts ranked schema.QueryHit to QueryRow for Parquet export.
func ConvertQueryHits(hits []schema.QueryHit) []QueryRow {
	result := make([]QueryRow, len(hits))
	for i, hit := range hits {
		result[i] = QueryRow{
			Rank:      int32(i + 1),
			FilePath:  hit.Path,
			StartLine: int32(hit.StartLine),
			EndLine:   int32(hit.EndLine),
			Score:     hit.Score,
			Snippet:   hit.Snippet,
		}
	}
	return result
}

// ConvertPrioritizedIssues converts schema.PrioritizedIssue to IssueRow for Parquet export.
func ConvertPrioritizedIssues(issues []schema.PrioritizedIssue) []IssueRow {
	result := make([]IssueRow, len(issues))
	for i, issue := range issues {
		result[i] = IssueRow{
			FilePath: issue.File,
			Line:     int32(issue.Line),
			Severity: string(issue.Severity),
			Category: issue.Category,
			Message:  issue.Message,
			Source:   issue.Source,
			Hotspot:  issue.Hotspot,
			Priority: issue.Priority,
		}
	}
	return result
}
