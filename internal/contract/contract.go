// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/triage/schema"
)

// HistoryProvider defines the operations needed from the revision-control
// collaborator. This allows churn computation to be tested without a real
// git executable, and its absence degrades to zero churn rather than failure.
type HistoryProvider interface {
	// ChurnRecords returns per-file change aggregates for the repository.
	// An empty slice with a nil error means no observable history.
	ChurnRecords(ctx context.Context, repoPath string) ([]schema.ChurnRecord, error)

	// RepoFingerprint returns a stable identifier for the current repository
	// state (e.g. HEAD hash), or "" when unavailable.
	RepoFingerprint(ctx context.Context, repoPath string) string
}

// IssueSource is the capability interface for anything that produces issues
// for the analyzed file set. The scoring core only ever consumes the abstract
// Issue shape, never a specific backend type.
type IssueSource interface {
	// Name identifies the source in logs and issue records.
	Name() string

	// Issues reports findings for the given file records.
	Issues(ctx context.Context, files []schema.FileRecord) ([]schema.Issue, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetIndexStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for fingerprint-keyed index storage.
// Keys are file paths; values are serialized index documents.
type CacheStore interface {
	// Get returns the stored blob and its fingerprint for a path.
	// A missing entry returns sql.ErrNoRows.
	Get(path string) ([]byte, string, error)

	// Set inserts or replaces the blob for a path under the given fingerprint.
	Set(path string, value []byte, fingerprint string, timestamp int64) error

	// Keys returns all cached paths, for pruning entries of deleted files.
	Keys() ([]string, error)

	// Delete removes the entry for a path.
	Delete(path string) error

	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis passes and
// recording per-file scores.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID.
	BeginAnalysis(startUnix int64, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data.
	EndAnalysis(analysisID int64, endUnix int64, totalFiles int) error

	// RecordFileScore stores the per-file composite score breakdown.
	RecordFileScore(analysisID int64, record schema.FileScoreRecord) error

	// GetAllAnalysisRuns returns every recorded run, newest first.
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllFileScores returns every recorded per-file score row.
	GetAllFileScores() ([]schema.FileScoreRecord, error)

	GetStatus() (schema.AnalysisStatus, error)
	Close() error
}
