// Package repolist discovers local repositories and maintains the line-oriented
// list of repository paths that the stats command reads.
package repolist

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/gitlocalstats/internal/contract"
)

// GitDirName is the directory whose presence marks a repository.
const GitDirName = ".git"

// Scan walks root and returns the path of every ".git" directory below it.
// It never descends into a ".git" directory or into a directory whose name
// matches one of the skip patterns. Unreadable subdirectories are logged and skipped.
func Scan(root string, skip []string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			contract.LogWarn(fmt.Sprintf("skipping unreadable %s", path), err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == GitDirName {
			found = append(found, path)
			return filepath.SkipDir
		}
		if path != root && contract.ShouldSkipDir(name, skip) {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return found, nil
}

// Read returns the non-blank lines of the list file.
// A missing file is an empty list.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	repos := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			repos = append(repos, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return repos, nil
}

// Merge returns existing followed by every entry of found not seen before.
// Duplicates inside either input are collapsed.
func Merge(existing, found []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(found))
	merged := make([]string, 0, len(existing)+len(found))
	for _, list := range [][]string{existing, found} {
		for _, p := range list {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}

// Write replaces the list file with one path per line.
// The content is written to a temporary file first and renamed into place.
func Write(path string, repos []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := bufio.NewWriter(tmp)
	for _, p := range repos {
		if _, err := w.WriteString(p + "\n"); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Add merges found into the list file and returns the merged list along
// with the number of entries that were not already present.
func Add(path string, found []string) ([]string, int, error) {
	existing, err := Read(path)
	if err != nil {
		return nil, 0, err
	}
	merged := Merge(existing, found)
	if err := Write(path, merged); err != nil {
		return nil, 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return merged, len(merged) - len(Merge(existing, nil)), nil
}

// Prune splits repos into the entries that still exist on disk and those that do not.
func Prune(repos []string) (kept, removed []string) {
	kept = []string{}
	removed = []string{}
	for _, p := range repos {
		if _, err := os.Stat(p); err != nil {
			removed = append(removed, p)
			continue
		}
		kept = append(kept, p)
	}
	return kept, removed
}
