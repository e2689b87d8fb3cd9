package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// RepoEntry is a known repository and whether it is still on disk.
type RepoEntry struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// buildRepoEntries checks every repository path on disk.
func buildRepoEntries(repos []string) []RepoEntry {
	entries := make([]RepoEntry, len(repos))
	for i, repo := range repos {
		_, err := os.Stat(repo)
		entries[i] = RepoEntry{Path: repo, Exists: err == nil}
	}
	return entries
}

// PrintRepos outputs the repository list, dispatching based on the output format configured.
func PrintRepos(repos []string, cfg *contract.Config) error {
	entries := buildRepoEntries(repos)
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON repositories"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRepos(w, entries)
		}, "Wrote CSV repositories"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReposTable(w, entries, cfg)
		}, "Wrote repositories"); err != nil {
			return fmt.Errorf("error writing repositories table: %w", err)
		}
	}
	return nil
}

// writeReposTable prints the repository list as a numbered table.
func writeReposTable(w io.Writer, entries []RepoEntry, cfg *contract.Config) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No repositories in %s\n", cfg.ReposFile)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Repository", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	pathWidth := getMaxTablePathWidth(cfg, 20)
	var data [][]string
	for i, e := range entries {
		status := "ok"
		if !e.Exists {
			status = "missing"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(e.Path, pathWidth),
			status,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForRepos writes one row per known repository.
func writeCSVResultsForRepos(w io.Writer, entries []RepoEntry) error {
	return writeCSVWithHeader(w, []string{"path", "exists"}, func(csvWriter *csv.Writer) error {
		for _, e := range entries {
			if err := csvWriter.Write([]string{e.Path, strconv.FormatBool(e.Exists)}); err != nil {
				return err
			}
		}
		return nil
	})
}
