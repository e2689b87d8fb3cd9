// Package core has the command executors that tie discovery, aggregation,
// binning and output together.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gitlocalstats/core/calendar"
	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/outwriter"
	"github.com/huangsam/gitlocalstats/internal/repolist"
)

// ExecuteStats aggregates the configured author's commits across every known
// repository and prints the contribution calendar.
// It serves as the main entry point for the 'stats' command.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	output, duration, err := GetStatsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStats(output.Result, output.Grid, cfg, duration)
}

// ExecuteAdd discovers repositories below the scan root and merges them into
// the repository list. It serves as the main entry point for the 'add' command.
func ExecuteAdd(ctx context.Context, cfg *contract.Config) error {
	if !shouldSuppressHeader(ctx) {
		logScanHeader(cfg)
	}

	found, err := repolist.Scan(cfg.ScanRoot, cfg.SkipDirs)
	if err != nil {
		return err
	}
	for _, repo := range found {
		fmt.Println(repo)
	}

	_, added, err := repolist.Add(cfg.ReposFile, found)
	if err != nil {
		return err
	}
	fmt.Printf("\nSuccessfully added %d new repositories to %s\n", added, cfg.ReposFile)
	return nil
}

// ExecuteRepos prints the repository list, dropping entries that no longer
// exist on disk when pruning is enabled.
func ExecuteRepos(_ context.Context, cfg *contract.Config) error {
	repos, err := ListRepositories(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRepos(repos, cfg)
}

// ListRepositories reads the repository list and applies pruning if configured.
func ListRepositories(cfg *contract.Config) ([]string, error) {
	repos, err := repolist.Read(cfg.ReposFile)
	if err != nil {
		return nil, err
	}
	if !cfg.Prune {
		return repos, nil
	}

	kept, removed := repolist.Prune(repos)
	if len(removed) == 0 {
		return kept, nil
	}
	if err := repolist.Write(cfg.ReposFile, kept); err != nil {
		return nil, err
	}
	for _, repo := range removed {
		fmt.Fprintf(os.Stderr, "🧹 Pruned %s\n", repo)
	}
	return kept, nil
}

// logScanHeader prints the discovery header.
func logScanHeader(cfg *contract.Config) {
	fmt.Printf("🔎 Scanning %s\n", cfg.ScanRoot)
}

// logStatsHeader prints a concise, 2-line header for a stats run.
func logStatsHeader(cfg *contract.Config, repos int) {
	start := calendar.DateOf(cfg.Now, cfg.WindowDays)
	fmt.Printf("🔎 Author: %s (%d repositories)\n", cfg.Author, repos)
	fmt.Printf("📅 Range: %s → %s\n\n", start.Format(time.DateOnly), cfg.Now.Format(time.DateOnly))
}
