package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/gitlocalstats/core/agg"
	"github.com/huangsam/gitlocalstats/core/calendar"
	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/metrics"
	"github.com/huangsam/gitlocalstats/internal/repolist"
	"github.com/huangsam/gitlocalstats/schema"
)

// StatsOutput is a finished stats run: the export-friendly result and the
// calendar grid the heatmap is drawn from.
type StatsOutput struct {
	Result schema.StatsResult
	Grid   *calendar.Grid
}

// GetStatsResults runs a stats pass against the local git binary and returns
// the result with the time it took.
func GetStatsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*StatsOutput, time.Duration, error) {
	start := time.Now()
	output, err := runStats(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return nil, 0, err
	}
	return output, time.Since(start), nil
}

// runStats performs the Aggregation, Binning and Result building steps.
func runStats(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*StatsOutput, error) {
	if err := cfg.RequireAuthor(); err != nil {
		return nil, err
	}

	repos, err := repolist.Read(cfg.ReposFile)
	if err != nil {
		return nil, err
	}
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		logStatsHeader(cfg, len(repos))
	}

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetRecordStore()
	}
	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}

	// --- 1. Aggregation Phase (with caching) ---
	opts := agg.Options{
		Author:     cfg.Author,
		Now:        cfg.Now,
		WindowDays: cfg.WindowDays,
		Workers:    cfg.Workers,
		Metrics:    recorder,
	}
	output, err := agg.Aggregate(ctx, opts, client, store, repos)
	if err != nil {
		return nil, err
	}

	// --- 2. Binning Phase ---
	todayOffset := calendar.TodayOffset(cfg.Now)
	grid, err := calendar.Bin(output.Table, todayOffset)
	if err != nil {
		return nil, fmt.Errorf("binning day counts: %w", err)
	}

	// --- 3. Metrics flush ---
	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			contract.LogWarn("Failed to write metrics file", err)
		}
	}

	return &StatsOutput{
		Result: schema.StatsResult{
			Author:       cfg.Author,
			Now:          cfg.Now,
			WindowDays:   cfg.WindowDays,
			TodayOffset:  todayOffset,
			Total:        output.Table.Total(),
			Days:         buildDays(output.Table, cfg.Now),
			Repositories: output.Repositories,
		},
		Grid: grid,
	}, nil
}

// buildDays lists every day of the window, oldest first.
func buildDays(table *calendar.DayCounts, now time.Time) []schema.DayCount {
	days := make([]schema.DayCount, 0, table.Window()+1)
	for d := table.Window(); d >= 0; d-- {
		date := calendar.DateOf(now, d)
		days = append(days, schema.DayCount{
			Date:    date,
			DaysAgo: d,
			Weekday: date.Weekday().String(),
			Count:   table.Count(d),
		})
	}
	return days
}
