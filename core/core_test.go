package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/repolist"
	"github.com/huangsam/gitlocalstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAdd(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"alpha/.git", "beta/.git", "vendor/dep/.git"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	cfg := &contract.Config{
		ReposFile: filepath.Join(t.TempDir(), contract.ReposFileName),
		ScanRoot:  root,
		SkipDirs:  contract.DefaultSkipDirs,
	}
	ctx := WithSuppressHeader(context.Background())

	require.NoError(t, ExecuteAdd(ctx, cfg))
	repos, err := repolist.Read(cfg.ReposFile)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "alpha/.git"),
		filepath.Join(root, "beta/.git"),
	}, repos)

	// Adding the same tree again changes nothing.
	require.NoError(t, ExecuteAdd(ctx, cfg))
	again, err := repolist.Read(cfg.ReposFile)
	require.NoError(t, err)
	assert.Equal(t, repos, again)
}

func TestExecuteAdd_MissingRoot(t *testing.T) {
	cfg := &contract.Config{
		ReposFile: filepath.Join(t.TempDir(), contract.ReposFileName),
		ScanRoot:  filepath.Join(t.TempDir(), "nope"),
	}
	assert.Error(t, ExecuteAdd(WithSuppressHeader(context.Background()), cfg))
}

func TestListRepositories(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present", ".git")
	require.NoError(t, os.MkdirAll(present, 0o755))
	gone := filepath.Join(dir, "gone", ".git")

	reposFile := filepath.Join(dir, contract.ReposFileName)
	require.NoError(t, repolist.Write(reposFile, []string{present, gone}))

	t.Run("without prune", func(t *testing.T) {
		repos, err := ListRepositories(&contract.Config{ReposFile: reposFile})
		require.NoError(t, err)
		assert.Equal(t, []string{present, gone}, repos)
	})

	t.Run("with prune", func(t *testing.T) {
		repos, err := ListRepositories(&contract.Config{ReposFile: reposFile, Prune: true})
		require.NoError(t, err)
		assert.Equal(t, []string{present}, repos)

		persisted, err := repolist.Read(reposFile)
		require.NoError(t, err)
		assert.Equal(t, []string{present}, persisted)
	})
}

func TestExecuteRepos(t *testing.T) {
	dir := t.TempDir()
	reposFile := filepath.Join(dir, contract.ReposFileName)
	require.NoError(t, repolist.Write(reposFile, []string{dir}))

	out := filepath.Join(dir, "repos.csv")
	cfg := &contract.Config{ReposFile: reposFile, Output: schema.CSVOut, OutputFile: out}
	require.NoError(t, ExecuteRepos(context.Background(), cfg))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "path,exists\n"+dir+",true\n", string(content))
}
