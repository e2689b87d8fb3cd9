//go:build basic

package integration

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddStatsRepos walks through discovery, listing and stats on real repositories.
func TestAddStatsRepos(t *testing.T) {
	home := t.TempDir()
	work := filepath.Join(home, "code")
	initRepo(t, work, "alpha", testAuthor, 0, 1, 1, 400)
	initRepo(t, work, "beta", testAuthor, 10)
	initRepo(t, work, "other", "someone@example.com", 2)
	initRepo(t, filepath.Join(work, "beta"), "vendor/dep", testAuthor, 3)

	noCache := []string{"GITLOCALSTATS_CACHE_BACKEND=none"}

	out, err := runCLI(t, home, noCache, "add", work)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully added 3 new repositories")

	// Adding again finds nothing new
	out, err = runCLI(t, home, noCache, "add", work)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully added 0 new repositories")

	out, err = runCLI(t, home, noCache, "repos", "--output", "json")
	require.NoError(t, err)
	var repos []struct {
		Path   string `json:"path"`
		Exists bool   `json:"exists"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &repos))
	require.Len(t, repos, 3)
	for _, r := range repos {
		assert.True(t, r.Exists, r.Path)
		assert.NotContains(t, r.Path, "vendor")
	}

	out, err = runCLI(t, home, noCache, "stats", testAuthor, "--output", "json")
	require.NoError(t, err)
	var result statsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, testAuthor, result.Author)
	assert.Equal(t, 183, result.WindowDays)
	assert.Equal(t, 4, result.Total) // the commit 400 days ago is out of range
	assert.Len(t, result.Repositories, 3)

	byDay := make(map[int]int)
	for _, d := range result.Days {
		byDay[d.DaysAgo] = d.Count
	}
	assert.Equal(t, 1, byDay[0])
	assert.Equal(t, 2, byDay[1])
	assert.Equal(t, 1, byDay[10])
}

// TestStatsHeatmapText checks the text heatmap with colors off.
func TestStatsHeatmapText(t *testing.T) {
	home := t.TempDir()
	work := filepath.Join(home, "code")
	initRepo(t, work, "alpha", testAuthor, 0, 0, 0)

	env := []string{"GITLOCALSTATS_CACHE_BACKEND=none", "GITLOCALSTATS_EMAIL=" + testAuthor}
	_, err := runCLI(t, home, env, "add", work)
	require.NoError(t, err)

	out, err := runCLI(t, home, env, "stats", "--color", "no", "--width", "200")
	require.NoError(t, err)

	assert.Contains(t, out, "🔎 Author: "+testAuthor+" (1 repositories)")
	var labels []string
	for line := range strings.Lines(out) {
		if strings.HasPrefix(line, " Mon ") || strings.HasPrefix(line, " Wed ") || strings.HasPrefix(line, " Fri ") {
			labels = append(labels, line[:5])
		}
	}
	assert.Equal(t, []string{" Mon ", " Wed ", " Fri "}, labels)
	assert.Contains(t, out, "  3*")
	assert.Contains(t, out, "Total: 3 commits by "+testAuthor+" across 1 repositories (0 failed)")
}

// TestStatsRequiresAuthor checks that stats refuses to run without an author.
func TestStatsRequiresAuthor(t *testing.T) {
	home := t.TempDir()
	_, err := runCLI(t, home, []string{"GITLOCALSTATS_CACHE_BACKEND=none"}, "stats")
	assert.Error(t, err)
}

// TestStatsWithSQLiteCache runs stats twice so the second run reads from the cache.
func TestStatsWithSQLiteCache(t *testing.T) {
	home := t.TempDir()
	work := filepath.Join(home, "code")
	initRepo(t, work, "alpha", testAuthor, 0, 5)

	_, err := runCLI(t, home, nil, "add", work)
	require.NoError(t, err)

	for range 2 {
		out, err := runCLI(t, home, nil, "stats", testAuthor, "--output", "json")
		require.NoError(t, err)
		var result statsJSON
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, 2, result.Total)
	}

	out, err := runCLI(t, home, nil, "cache", "status")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = runCLI(t, home, nil, "cache", "clear")
	require.NoError(t, err)
}
