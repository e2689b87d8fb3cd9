package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/iocache"
	"github.com/huangsam/gitlocalstats/internal/repolist"
	"github.com/huangsam/gitlocalstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Wednesday
var testNow = time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC)

const testAuthor = "me@example.com"

func testConfig(t *testing.T, repos ...string) *contract.Config {
	t.Helper()
	reposFile := filepath.Join(t.TempDir(), contract.ReposFileName)
	require.NoError(t, repolist.Write(reposFile, repos))
	return &contract.Config{
		Author:       testAuthor,
		ReposFile:    reposFile,
		Now:          testNow,
		WindowDays:   schema.DefaultWindowDays,
		Workers:      2,
		Output:       schema.JSONOut,
		CacheBackend: schema.NoneBackend,
	}
}

func TestRunStats(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := testConfig(t, "/repos/a/.git", "/repos/b/.git")

	client := &contract.MockGitClient{}
	client.On("AuthorDates", mock.Anything, "/repos/a/.git", testAuthor).Return([]string{
		"2024-06-12 09:00:00 +0000",
		"2024-06-12 10:00:00 +0000",
		"2024-06-06 10:00:00 +0000",
	}, nil)
	client.On("AuthorDates", mock.Anything, "/repos/b/.git", testAuthor).
		Return(nil, errors.New("exit status 128"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetRecordStore").Return(nil)

	out, err := runStats(ctx, cfg, client, mgr)
	require.NoError(t, err)

	result := out.Result
	assert.Equal(t, testAuthor, result.Author)
	assert.Equal(t, 4, result.TodayOffset)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.FailedRepositories())
	require.Len(t, result.Days, schema.DefaultWindowDays+1)

	oldest := result.Days[0]
	assert.Equal(t, schema.DefaultWindowDays, oldest.DaysAgo)
	assert.Equal(t, time.Date(2023, time.December, 12, 0, 0, 0, 0, time.UTC), oldest.Date)

	today := result.Days[len(result.Days)-1]
	assert.Equal(t, 0, today.DaysAgo)
	assert.Equal(t, "Wednesday", today.Weekday)
	assert.Equal(t, 2, today.Count)
	assert.Equal(t, 1, result.Days[len(result.Days)-7].Count)

	// Today sits in the current week at row TodayOffset-1; six days ago was
	// the Thursday of the previous week.
	count, err := out.Grid.Cell(0, result.TodayOffset-1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	count, err = out.Grid.Cell(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	client.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRunStats_MissingAuthor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Author = ""

	_, err := runStats(context.Background(), cfg, &contract.MockGitClient{}, nil)
	assert.ErrorIs(t, err, contract.ErrMissingAuthor)
}

func TestRunStats_NoRepositories(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReposFile = filepath.Join(t.TempDir(), "missing")

	out, err := runStats(WithSuppressHeader(context.Background()), cfg, &contract.MockGitClient{}, nil)
	require.NoError(t, err)
	assert.Zero(t, out.Result.Total)
	assert.Empty(t, out.Result.Repositories)
	assert.Equal(t, 27, out.Grid.Weeks())
}

func TestRunStats_MetricsFile(t *testing.T) {
	cfg := testConfig(t, "/repos/a")
	cfg.MetricsFile = filepath.Join(t.TempDir(), "stats.prom")

	client := &contract.MockGitClient{}
	client.On("AuthorDates", mock.Anything, "/repos/a", testAuthor).
		Return([]string{"2024-06-12 09:00:00 +0000", "garbage"}, nil)

	_, err := runStats(WithSuppressHeader(context.Background()), cfg, client, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `gitlocalstats_records_total{result="counted"} 1`)
	assert.Contains(t, string(content), `gitlocalstats_records_total{result="out_of_range"} 1`)
}

func TestRunStats_UsesRecordStore(t *testing.T) {
	cfg := testConfig(t, "/repos/a")

	client := &contract.MockGitClient{}
	client.On("GetRefsDigest", mock.Anything, "/repos/a").Return("", errors.New("no refs"))
	client.On("AuthorDates", mock.Anything, "/repos/a", testAuthor).
		Return([]string{"2024-06-11 09:00:00 +0000"}, nil)

	store := &iocache.MockCacheStore{}
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetRecordStore").Return(store)

	out, err := runStats(WithSuppressHeader(context.Background()), cfg, client, mgr)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Result.Total)
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestBuildDays(t *testing.T) {
	cfg := testConfig(t)
	cfg.WindowDays = 2
	out, err := runStats(WithSuppressHeader(context.Background()), cfg, &contract.MockGitClient{}, nil)
	require.NoError(t, err)

	days := out.Result.Days
	require.Len(t, days, 3)
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday"}, []string{days[0].Weekday, days[1].Weekday, days[2].Weekday})
	assert.Equal(t, []int{2, 1, 0}, []int{days[0].DaysAgo, days[1].DaysAgo, days[2].DaysAgo})
}
