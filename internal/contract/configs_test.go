package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitlocalstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC)

func baseInput() *ConfigRawInput {
	return &ConfigRawInput{
		Email:     "me@example.com",
		Workers:   4,
		Output:    "text",
		Color:     "yes",
		ReposFile: "/tmp/repos",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name: "valid minimal config",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "me@example.com", cfg.Author)
				assert.Equal(t, testNow, cfg.Now)
				assert.Equal(t, schema.DefaultWindowDays, cfg.WindowDays)
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
				assert.True(t, cfg.UseColors)
				assert.Equal(t, DefaultSkipDirs, cfg.SkipDirs)
			},
		},
		{
			name:   "positional email wins",
			mutate: func(in *ConfigRawInput) { in.EmailArg = "  arg@example.com " },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "arg@example.com", cfg.Author)
			},
		},
		{
			name:   "empty color defaults to colored",
			mutate: func(in *ConfigRawInput) { in.Color = "" },
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.UseColors)
			},
		},
		{
			name:   "plain output",
			mutate: func(in *ConfigRawInput) { in.Color = "no" },
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.UseColors)
			},
		},
		{
			name:   "extra skip dirs",
			mutate: func(in *ConfigRawInput) { in.Skip = "dist, , third_party" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"vendor", "node_modules", "dist", "third_party"}, cfg.SkipDirs)
			},
		},
		{
			name:   "uppercase output mode",
			mutate: func(in *ConfigRawInput) { in.Output = "JSON" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.JSONOut, cfg.Output)
			},
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "sometimes" },
			expectError: true,
		},
		{
			name:        "zero workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "negative width",
			mutate:      func(in *ConfigRawInput) { in.Width = -1 },
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name:        "invalid backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			expectError: true,
		},
		{
			name:        "mysql without connection",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "mysql" },
			expectError: true,
		},
		{
			name: "postgres with connection",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "postgresql"
				in.CacheDBConnect = "host=localhost dbname=cache user=me"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.PostgreSQLBackend, cfg.CacheBackend)
			},
		},
		{
			name:        "scan root missing",
			mutate:      func(in *ConfigRawInput) { in.FolderArg = "/definitely/not/here" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			if tt.mutate != nil {
				tt.mutate(input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input, testNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestProcessAndValidate_Paths(t *testing.T) {
	root := t.TempDir()
	input := baseInput()
	input.ReposFile = filepath.Join(root, "list")
	input.FolderArg = root

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, testNow))
	assert.Equal(t, filepath.Join(root, "list"), cfg.ReposFile)
	assert.Equal(t, root, cfg.ScanRoot)

	input.ReposFile = ""
	input.FolderArg = ""
	cfg = &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, testNow))
	assert.Equal(t, ReposFileName, filepath.Base(cfg.ReposFile))
	assert.Empty(t, cfg.ScanRoot)
}

func TestRequireAuthor(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.RequireAuthor(), ErrMissingAuthor)
	cfg.Author = "me@example.com"
	assert.NoError(t, cfg.RequireAuthor())
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Author: "a", SkipDirs: []string{"vendor"}}
	clone := cfg.Clone()
	clone.SkipDirs[0] = "changed"
	assert.Equal(t, "vendor", cfg.SkipDirs[0])
	assert.Equal(t, "a", clone.Author)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "u:p@tcp(localhost:3306)/db"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "localhost"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=x"))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)
	require.NoError(t, ProcessProfilingConfig(profile, "run"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run", profile.Prefix)
}
