package contract

import (
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/triage/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 2
	DefaultMaxFiles     = 2000
	DefaultMaxFileBytes = 1 << 20 // 1 MB safety cap per file
	DefaultGitTimeout   = 30 * time.Second
)

// Default blend weights for the hotspot score. They must sum to 1.
const (
	DefaultComplexityWeight = 0.40
	DefaultCentralityWeight = 0.35
	DefaultChurnWeight      = 0.25
)

// Default boost multipliers for the lexical index. Both must be >= 1.
const (
	DefaultFilenameBoost   = 2.0
	DefaultIdentifierBoost = 1.5
)

// weightSumTolerance bounds floating-point drift when checking that the
// three blend weights sum to exactly 1.
const weightSumTolerance = 1e-9

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ScoreWeights holds the blend weights for the composite hotspot score.
type ScoreWeights struct {
	Complexity float64
	Centrality float64
	Churn      float64
}

// IndexBoosts holds the post-hoc boost multipliers for the lexical index.
type IndexBoosts struct {
	Filename   float64
	Identifier float64
}

// Config holds the runtime configuration for an analysis pass.
// This struct is the final, validated config.
type Config struct {
	RepoPath    string
	PathFilter  string
	ResultLimit int
	Workers     int
	Excludes    []string
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Explain     bool
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)

	Weights  ScoreWeights
	Boosts   IndexBoosts
	Stemming bool

	MaxFiles     int
	MaxFileBytes int64

	IssueReport string // Path to an analyzer findings file ("" = no issues)
	GitTimeout  time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool
	UseColors bool
}

// WeightsRawInput holds the recognized scoring weight options from the
// config file. Pointers distinguish "absent" from an explicit zero.
type WeightsRawInput struct {
	Complexity *float64 `mapstructure:"complexity_weight"`
	Centrality *float64 `mapstructure:"centrality_weight"`
	Churn      *float64 `mapstructure:"churn_weight"`
}

// BoostsRawInput holds the recognized index boost options from the config file.
type BoostsRawInput struct {
	Filename   *float64 `mapstructure:"filename_boost"`
	Identifier *float64 `mapstructure:"identifier_boost"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Filter       string `mapstructure:"filter"`
	OutputFile   string `mapstructure:"output-file"`
	Limit        int    `mapstructure:"limit"`
	Workers      int    `mapstructure:"workers"`
	Exclude      string `mapstructure:"exclude"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	Explain      bool   `mapstructure:"explain"`
	Detail       bool   `mapstructure:"detail"`
	Width        int    `mapstructure:"width"`
	Stemming     bool   `mapstructure:"stemming"`
	MaxFiles     int    `mapstructure:"max-files"`
	MaxFileBytes int64  `mapstructure:"max-file-bytes"`
	IssueReport  string `mapstructure:"report"`
	GitTimeout   string `mapstructure:"git-timeout"`

	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`

	Emoji string `mapstructure:"emoji"`
	Color string `mapstructure:"color"`

	Weights WeightsRawInput `mapstructure:"weights"`
	Boosts  BoostsRawInput  `mapstructure:"boosts"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Weight and boost violations are
// returned as *ConfigError and must abort the run before any work starts.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	if err := processBoosts(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// validateSimpleInputs processes and validates all non-scoring fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.PathFilter = input.Filter
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.Stemming = input.Stemming
	cfg.IssueReport = input.IssueReport

	cfg.RepoPath = input.RepoPathStr
	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	if abs, err := filepath.Abs(cfg.RepoPath); err == nil {
		cfg.RepoPath = abs
	}

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return NewConfigError("emoji", "%v", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return NewConfigError("color", "%v", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return NewConfigError("limit", "must be between 1 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return NewConfigError("workers", "must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 4 {
		return NewConfigError("precision", "must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return NewConfigError("output", "invalid format %q. must be text, csv, json, parquet", input.Output)
	}

	cfg.MaxFiles = input.MaxFiles
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = DefaultMaxFiles
	}
	cfg.MaxFileBytes = input.MaxFileBytes
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = DefaultMaxFileBytes
	}

	cfg.GitTimeout = DefaultGitTimeout
	if input.GitTimeout != "" {
		d, err := time.ParseDuration(input.GitTimeout)
		if err != nil || d <= 0 {
			return NewConfigError("git-timeout", "invalid duration %q", input.GitTimeout)
		}
		cfg.GitTimeout = d
	}

	// Default excludes: lockfiles, generated assets, build output.
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico", ".pdf",
		"dist/", "build/", "out/", "target/", "bin/", "vendor/", "node_modules/",
	}
	cfg.Excludes = defaults
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// processWeights resolves the blend weights and enforces the sum-to-one
// invariant. A partial override still has to satisfy the invariant.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	cfg.Weights = ScoreWeights{
		Complexity: DefaultComplexityWeight,
		Centrality: DefaultCentralityWeight,
		Churn:      DefaultChurnWeight,
	}
	if input.Weights.Complexity != nil {
		cfg.Weights.Complexity = *input.Weights.Complexity
	}
	if input.Weights.Centrality != nil {
		cfg.Weights.Centrality = *input.Weights.Centrality
	}
	if input.Weights.Churn != nil {
		cfg.Weights.Churn = *input.Weights.Churn
	}

	for _, w := range []struct {
		name  string
		value float64
	}{
		{"complexity_weight", cfg.Weights.Complexity},
		{"centrality_weight", cfg.Weights.Centrality},
		{"churn_weight", cfg.Weights.Churn},
	} {
		if w.value < 0 || w.value > 1 {
			return NewConfigError("weights", "%s must be in [0,1] (received %g)", w.name, w.value)
		}
	}

	sum := cfg.Weights.Complexity + cfg.Weights.Centrality + cfg.Weights.Churn
	if math.Abs(sum-1.0) > weightSumTolerance {
		return NewConfigError("weights", "complexity_weight + centrality_weight + churn_weight must sum to 1 (received %g)", sum)
	}
	return nil
}

// processBoosts resolves the index boost multipliers.
func processBoosts(cfg *Config, input *ConfigRawInput) error {
	cfg.Boosts = IndexBoosts{
		Filename:   DefaultFilenameBoost,
		Identifier: DefaultIdentifierBoost,
	}
	if input.Boosts.Filename != nil {
		cfg.Boosts.Filename = *input.Boosts.Filename
	}
	if input.Boosts.Identifier != nil {
		cfg.Boosts.Identifier = *input.Boosts.Identifier
	}

	if cfg.Boosts.Filename < 1 {
		return NewConfigError("boosts", "filename_boost must be >= 1 (received %g)", cfg.Boosts.Filename)
	}
	if cfg.Boosts.Identifier < 1 {
		return NewConfigError("boosts", "identifier_boost must be >= 1 (received %g)", cfg.Boosts.Identifier)
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return NewConfigError("cache-backend", "invalid backend %q. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		cfg.AnalysisBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidCacheBackends[cfg.AnalysisBackend]; !ok {
		return NewConfigError("analysis-backend", "invalid backend %q. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// SQLite backends must not share one database file.
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		analysisPath := cfg.AnalysisDBConnect
		if analysisPath == "" {
			analysisPath = GetAnalysisDBFilePath()
		}
		if cachePath == analysisPath {
			return NewConfigError("analysis-db-connect", "cache and analysis storage must use different SQLite files; both resolve to %q", cachePath)
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return NewConfigError("cache-db-connect", "required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return NewConfigError("cache-db-connect", "MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return NewConfigError("cache-db-connect", "MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return NewConfigError("cache-db-connect", "required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return NewConfigError("cache-db-connect", "PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return NewConfigError("cache-db-connect", "PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
