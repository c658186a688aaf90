package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable = "triage_analysis_runs"
	fileScoresTable   = "triage_file_scores"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
//
// Timestamps are stored as epoch seconds in BIGINT columns, which keeps the
// row format identical across all three SQL backends.
type AnalysisStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	// NoneBackend produces a no-op store for disabled tracking.
	if backend == schema.NoneBackend {
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, driverName, err := openBackendDB(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createAnalysisTables creates the analysis tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{analysisRunsTable, getCreateAnalysisRunsQuery(backend)},
		{fileScoresTable, getCreateFileScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateAnalysisRunsQuery returns the CREATE TABLE query for triage_analysis_runs.
func getCreateAnalysisRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(analysisRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time BIGINT NOT NULL,
				end_time BIGINT,
				run_duration_ms BIGINT,
				total_files_analyzed INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGSERIAL PRIMARY KEY,
				start_time BIGINT NOT NULL,
				end_time BIGINT,
				run_duration_ms BIGINT,
				total_files_analyzed INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time INTEGER NOT NULL,
				end_time INTEGER,
				run_duration_ms INTEGER,
				total_files_analyzed INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateFileScoresQuery returns the CREATE TABLE query for triage_file_scores.
func getCreateFileScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(fileScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				file_path VARCHAR(512) NOT NULL,
				recorded_at BIGINT NOT NULL,
				score_complexity DOUBLE NOT NULL,
				score_centrality DOUBLE NOT NULL,
				score_churn DOUBLE NOT NULL,
				score_total DOUBLE NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				file_path TEXT NOT NULL,
				recorded_at BIGINT NOT NULL,
				score_complexity DOUBLE PRECISION NOT NULL,
				score_centrality DOUBLE PRECISION NOT NULL,
				score_churn DOUBLE PRECISION NOT NULL,
				score_total DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				recorded_at INTEGER NOT NULL,
				score_complexity REAL NOT NULL,
				score_centrality REAL NOT NULL,
				score_churn REAL NOT NULL,
				score_total REAL NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)
	}
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startUnix int64, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, startUnix, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, startUnix, string(configJSON))
		if err != nil {
			return 0, err
		}
		analysisID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endUnix int64, totalFiles int) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	// Get the start_time to calculate duration
	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = ?`, quotedTableName)
	}

	var startUnix int64
	if err := as.db.QueryRow(query, analysisID).Scan(&startUnix); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := (endUnix - startUnix) * 1000

	var updateQuery string
	switch as.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_files_analyzed = $3 WHERE analysis_id = $4`, quotedTableName)
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files_analyzed = ? WHERE analysis_id = ?`, quotedTableName)
	}

	if _, err := as.db.Exec(updateQuery, endUnix, durationMs, totalFiles, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordFileScore stores the composite score breakdown for one file.
func (as *AnalysisStoreImpl) RecordFileScore(analysisID int64, record schema.FileScoreRecord) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(fileScoresTable, as.backend)

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (analysis_id, file_path, recorded_at, score_complexity, score_centrality, score_churn, score_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (analysis_id, file_path, recorded_at, score_complexity, score_centrality, score_churn, score_total)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	_, err := as.db.Exec(query,
		analysisID, record.FilePath, record.Recorded.Unix(),
		record.Complexity, record.Centrality, record.Churn, record.Score)
	if err != nil {
		return fmt.Errorf("failed to insert file score: %w", err)
	}

	return nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT analysis_id, start_time, end_time, run_duration_ms, total_files_analyzed, config_params FROM %s ORDER BY analysis_id`, quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var startUnix int64
		var endUnix, durationMs sql.NullInt64
		var totalFiles sql.NullInt64
		var configParams sql.NullString

		if err := rows.Scan(&record.AnalysisID, &startUnix, &endUnix, &durationMs, &totalFiles, &configParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}

		record.StartTime = time.Unix(startUnix, 0)
		if endUnix.Valid {
			endTime := time.Unix(endUnix.Int64, 0)
			record.EndTime = &endTime
		}
		if durationMs.Valid {
			record.RunDurationMs = &durationMs.Int64
		}
		record.TotalFilesAnalyzed = int(totalFiles.Int64)
		if configParams.Valid {
			record.ConfigParams = &configParams.String
		}

		results = append(results, record)
	}
	return results, rows.Err()
}

// GetAllFileScores retrieves all per-file score rows from the store.
func (as *AnalysisStoreImpl) GetAllFileScores() ([]schema.FileScoreRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(fileScoresTable, as.backend)
	query := fmt.Sprintf(`SELECT analysis_id, file_path, recorded_at, score_complexity, score_centrality, score_churn, score_total FROM %s ORDER BY analysis_id, file_path`, quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query file scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileScoreRecord
	for rows.Next() {
		var record schema.FileScoreRecord
		var recordedUnix int64
		if err := rows.Scan(&record.AnalysisID, &record.FilePath, &recordedUnix,
			&record.Complexity, &record.Centrality, &record.Churn, &record.Score); err != nil {
			return nil, fmt.Errorf("failed to scan file score: %w", err)
		}
		record.Recorded = time.Unix(recordedUnix, 0)
		results = append(results, record)
	}
	return results, rows.Err()
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	quotedRunsTable := quoteTableName(analysisRunsTable, as.backend)

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRunsTable)
	if err := as.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", quotedRunsTable)
		var lastRunUnix int64
		if err := as.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunUnix); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = time.Unix(lastRunUnix, 0)

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", quotedRunsTable)
		var oldestRunUnix int64
		if err := as.db.QueryRow(oldestRunQuery).Scan(&oldestRunUnix); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = time.Unix(oldestRunUnix, 0)

		// Get total files analyzed
		filesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_files_analyzed), 0) FROM %s", quotedRunsTable)
		if err := as.db.QueryRow(filesQuery).Scan(&status.TotalFilesAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total files analyzed: %w", err)
		}
	}

	// Get table sizes
	tables := []string{analysisRunsTable, fileScoresTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, as.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		var count int64
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}
