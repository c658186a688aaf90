package schema

import "strings"

// Custom string types for type safety.
type (
	// Severity represents the declared severity of an issue.
	Severity string

	// BreakdownKey represents keys used in hotspot score breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All severities supported, lowest to highest.
const (
	LowSeverity      Severity = "low"
	MediumSeverity   Severity = "medium"
	HighSeverity     Severity = "high"
	CriticalSeverity Severity = "critical"
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownComplexity BreakdownKey = "complexity" // nComplexity
	BreakdownCentrality BreakdownKey = "centrality" // nCentrality
	BreakdownChurn      BreakdownKey = "churn"      // nChurn
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllSeverities returns the supported severities in ascending order.
var AllSeverities = []Severity{LowSeverity, MediumSeverity, HighSeverity, CriticalSeverity}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// severityRanks orders severities for sorting. Higher means more severe.
var severityRanks = map[Severity]int{
	LowSeverity:      0,
	MediumSeverity:   1,
	HighSeverity:     2,
	CriticalSeverity: 3,
}

// Rank returns the ordinal rank of a severity. Unknown severities rank lowest.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// ParseSeverity normalizes an analyzer-native severity string into one of the
// four supported severities. Analyzer conventions vary, so common aliases
// such as "error" and "warning" are mapped to sensible defaults.
func ParseSeverity(raw string) Severity {
	text := strings.ToLower(strings.TrimSpace(raw))
	for _, sev := range AllSeverities {
		if strings.Contains(text, string(sev)) {
			return sev
		}
	}
	switch text {
	case "error", "err", "blocker":
		return HighSeverity
	case "warn", "warning", "major":
		return MediumSeverity
	case "info", "note", "minor", "style":
		return LowSeverity
	}
	return MediumSeverity
}
