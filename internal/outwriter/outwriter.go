// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/gitlocalstats/core/calendar"
	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteStats prints a contribution calendar using the configured output format.
func (ow *OutWriter) WriteStats(result schema.StatsResult, grid *calendar.Grid, cfg *contract.Config, duration time.Duration) error {
	return PrintStatsResults(result, grid, cfg, duration)
}

// WriteRepos prints the known repositories using the configured output format.
func (ow *OutWriter) WriteRepos(repos []string, cfg *contract.Config) error {
	return PrintRepos(repos, cfg)
}

// GetTerminalWidth returns the width override when set, otherwise the width of
// the terminal attached to stdout.
func GetTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// getMaxTablePathWidth calculates the maximum width for repository paths in
// table output based on terminal width and table configuration.
func getMaxTablePathWidth(cfg *contract.Config, fixedColumns int) int {
	// Reserve generous space for table borders, separators, and padding
	available := GetTerminalWidth(cfg) - fixedColumns - 10
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
