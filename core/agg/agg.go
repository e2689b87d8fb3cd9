// Package agg aggregates commit records from many repositories into one day-count table.
package agg

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/huangsam/gitlocalstats/core/calendar"
	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/metrics"
	"github.com/huangsam/gitlocalstats/schema"
)

// Options controls a single aggregation run.
type Options struct {
	Author     string
	Now        time.Time
	WindowDays int
	Workers    int
	Metrics    *metrics.Recorder // Optional
}

// Output is the settled result of an aggregation run.
type Output struct {
	Table        *calendar.DayCounts
	Repositories []schema.RepoSummary // Sorted by path
}

// repoResult is what a worker hands to the reducer for one repository.
type repoResult struct {
	counts  *calendar.DayCounts
	summary schema.RepoSummary
}

// Aggregate reads every repository in parallel and sums the classified
// records into a single table. Workers never touch the shared table: each
// repository is counted privately and merged by the calling goroutine once
// the worker pool has drained. A repository that cannot be read contributes
// nothing and is reported in the summaries. The store may be nil.
func Aggregate(ctx context.Context, opts Options, client contract.GitClient, store contract.CacheStore, repos []string) (*Output, error) {
	if opts.Author == "" {
		return nil, contract.ErrMissingAuthor
	}
	workers := max(opts.Workers, 1)
	unique := dedupe(repos)

	repoCh := make(chan string, len(unique))
	resultCh := make(chan repoResult, len(unique))
	var wg sync.WaitGroup

	// Start worker pool
	for range workers {
		wg.Go(func() {
			for repo := range repoCh {
				resultCh <- collectRepo(ctx, opts, client, store, repo)
			}
		})
	}

	for _, repo := range unique {
		repoCh <- repo
	}
	close(repoCh)

	wg.Wait()
	close(resultCh)

	// Single reducer
	table := calendar.NewDayCounts(opts.WindowDays)
	summaries := make([]schema.RepoSummary, 0, len(unique))
	for r := range resultCh {
		if err := table.Merge(r.counts); err != nil {
			return nil, fmt.Errorf("merging %s: %w", r.summary.Path, err)
		}
		summaries = append(summaries, r.summary)
	}
	slices.SortFunc(summaries, func(a, b schema.RepoSummary) int {
		return strings.Compare(a.Path, b.Path)
	})

	return &Output{Table: table, Repositories: summaries}, nil
}

// collectRepo classifies every record of one repository into a private table.
func collectRepo(ctx context.Context, opts Options, client contract.GitClient, store contract.CacheStore, repo string) repoResult {
	start := time.Now()
	counts := calendar.NewDayCounts(opts.WindowDays)
	summary := schema.RepoSummary{Path: repo}

	records, hit := recordSource(ctx, opts, client, store, repo)
	summary.CacheHit = hit
	for raw, err := range records {
		if err != nil {
			contract.LogWarn(fmt.Sprintf("skipping repository %s", repo), err)
			summary = schema.RepoSummary{Path: repo, Err: err, Error: err.Error()}
			counts = calendar.NewDayCounts(opts.WindowDays)
			break
		}
		d, ok := calendar.Classify(raw, opts.Now, opts.WindowDays).Value()
		if !ok {
			summary.OutOfRange++
			continue
		}
		_ = counts.Add(d, 1) // Classify only yields keys inside the window
		summary.Commits++
	}

	opts.Metrics.ObserveRepository(summary.Failed(), time.Since(start))
	opts.Metrics.ObserveRecords(summary.Commits, summary.OutOfRange)
	return repoResult{counts: counts, summary: summary}
}

// recordSource returns the record sequence of a repository, served from the
// cache when possible, and whether it was a cache hit.
func recordSource(ctx context.Context, opts Options, client contract.GitClient, store contract.CacheStore, repo string) (iter.Seq2[string, error], bool) {
	if store == nil {
		return client.AuthorDates(ctx, repo, opts.Author), false
	}
	return cachedAuthorDates(ctx, opts, client, store, repo)
}

// dedupe drops repeated paths, treating "x" and "x/.git" as the same repository.
func dedupe(repos []string) []string {
	seen := make(map[string]struct{}, len(repos))
	unique := make([]string, 0, len(repos))
	for _, repo := range repos {
		key := contract.WorkTree(repo)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, repo)
	}
	return unique
}
