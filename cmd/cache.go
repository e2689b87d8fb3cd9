package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/iocache"
	"github.com/huangsam/gitlocalstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheConfigSetup loads the cache settings without touching the store.
// Opening the store migrates it to the latest version, which clear and
// migrate must not do on their own.
func cacheConfigSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetup loads the cache settings and opens the store.
func cacheSetup() error {
	if err := cacheConfigSetup(); err != nil {
		return err
	}
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheConfigSetupWrapper wraps cacheConfigSetup to provide PreRunE for cache commands.
func cacheConfigSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheConfigSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization instead of the full
// sharedSetup used by stats. No author or repository list is needed.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the commit record cache (improves performance)",
	Long: `Manage the cache of raw commit records that speeds up repeated stats runs.

A repository is only read again when one of its refs moves, so repeated runs
over an unchanged workspace need no git calls at all.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no cache)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Move the cache schema to a given version

Examples:
  # Check cache status
  gitlocalstats cache status

  # Clear cache after rewriting history
  gitlocalstats cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached commit records",
	Long: `Delete all cached commit records from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Rolls the cache schema back to its initial state

Examples:
  # Clear SQLite cache (default)
  gitlocalstats cache clear

  # Clear MySQL cache (set connection string via env variable)
  GITLOCALSTATS_CACHE_BACKEND=mysql GITLOCALSTATS_CACHE_DB_CONNECT="..." gitlocalstats cache clear`,
	PreRunE: cacheConfigSetupWrapper,
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
	Long: `Show the backend, whether it is reachable, how many records it holds,
the newest and oldest entries and the approximate size.

Examples:
  gitlocalstats cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRecordStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// cacheMigrateCmd moves the cache schema between versions.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the cache schema",
	Long: `Apply or roll back cache schema migrations.

By default the schema is moved to the latest version. Pass --target-version 0
to roll everything back.

Examples:
  gitlocalstats cache migrate
  gitlocalstats cache migrate --target-version 0`,
	PreRunE: cacheConfigSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return iocache.MigrateCache(cfg.CacheBackend, cfg.CacheDBConnect, viper.GetInt("target-version"))
	},
}
