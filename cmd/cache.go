package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/iocache"
	"github.com/huangsam/triage/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetupWrapper is the PreRunE for cache subcommands. It brings up only
// the index cache store; repository ingestion and analysis tracking are not
// needed here.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheCmd groups the index-cache maintenance subcommands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lexical index cache (improves performance)",
	Long: `Manage the index cache that speeds up repeated queries.

Triage caches tokenized index documents keyed by file fingerprint, so
unchanged files never need re-reading or re-tokenizing on later runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  triage cache status

  # Clear cache after switching tokenizer settings
  triage cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached index documents",
	Long: `Delete all cached index documents from the configured backend.

Use this when:
- Boost or stemming settings changed and every entry is stale
- Cache may be corrupted
- Testing performance without cache

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  triage cache clear

  # Clear MySQL cache (set connection string via env variable)
  TRIAGE_CACHE_BACKEND=mysql TRIAGE_CACHE_DB_CONNECT="..." triage cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the index cache.

Displays:
- Backend type and connection status
- Total number of cached documents
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  triage cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetIndexStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.WriteCacheStatus(os.Stdout, status)
	},
}
