package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/gitlocalstats/schema"
)

// ReposFileName is the name of the repository list kept in the home directory.
const ReposFileName = ".gogitlocalstats"

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DefaultSkipDirs lists directory names never descended into during discovery.
var DefaultSkipDirs = []string{"vendor", "node_modules"}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a run.
// This struct is the "final, validated" config.
type Config struct {
	Author     string
	ReposFile  string
	Now        time.Time
	WindowDays int
	Workers    int

	Output     schema.OutputMode
	OutputFile string
	Detail     bool
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	ScanRoot string
	SkipDirs []string
	Prune    bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	MetricsFile string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	EmailArg  string
	FolderArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Email          string `mapstructure:"email"`
	ReposFile      string `mapstructure:"repos-file"`
	Workers        int    `mapstructure:"workers"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`
	Detail         bool   `mapstructure:"detail"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	MetricsFile    string `mapstructure:"metrics-file"`

	// --- Fields from addCmd.Flags() ---
	Skip string `mapstructure:"skip"`

	// --- Fields from reposCmd.Flags() ---
	Prune bool `mapstructure:"prune"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.SkipDirs != nil {
		clone.SkipDirs = make([]string, len(c.SkipDirs))
		copy(clone.SkipDirs, c.SkipDirs)
	}
	return &clone
}

// RequireAuthor returns ErrMissingAuthor when no author identity is configured.
func (c *Config) RequireAuthor() error {
	if c.Author == "" {
		return fmt.Errorf("%w: pass it as an argument, with --email or with GITLOCALSTATS_EMAIL", ErrMissingAuthor)
	}
	return nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. The clock reading is taken once here.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.Now = now
	cfg.WindowDays = schema.DefaultWindowDays
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolvePaths(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := input.CacheBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Prune = input.Prune
	cfg.MetricsFile = input.MetricsFile

	// Positional argument wins over flag, env and config file
	cfg.Author = strings.TrimSpace(input.Email)
	if arg := strings.TrimSpace(input.EmailArg); arg != "" {
		cfg.Author = arg
	}

	colors := true
	if input.Color != "" {
		parsed, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		colors = parsed
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	output := input.Output
	if output == "" {
		output = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.SkipDirs = append([]string{}, DefaultSkipDirs...)
	if input.Skip != "" {
		for p := range strings.SplitSeq(input.Skip, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.SkipDirs = append(cfg.SkipDirs, trimmed)
			}
		}
	}
	return nil
}

// resolvePaths resolves the repository list file and the discovery root.
func resolvePaths(cfg *Config, input *ConfigRawInput) error {
	reposFile := input.ReposFile
	if reposFile == "" {
		reposFile = GetReposFilePath()
	}
	absReposFile, err := filepath.Abs(ExpandHome(reposFile))
	if err != nil {
		return err
	}
	cfg.ReposFile = absReposFile

	if input.FolderArg == "" {
		return nil
	}
	absRoot, err := filepath.Abs(ExpandHome(input.FolderArg))
	if err != nil {
		return err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("cannot scan %q: %w", input.FolderArg, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot scan %q: not a directory", input.FolderArg)
	}
	cfg.ScanRoot = absRoot
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
