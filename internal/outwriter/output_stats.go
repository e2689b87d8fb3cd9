package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/gitlocalstats/core/calendar"
	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/parquet"
	"github.com/huangsam/gitlocalstats/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// dateFormat is how days are written to CSV.
const dateFormat = "2006-01-02"

// PrintStatsResults outputs a stats run, dispatching based on the output format configured.
func PrintStatsResults(result schema.StatsResult, grid *calendar.Grid, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON contribution calendar"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForStats(w, result)
		}, "Wrote CSV contribution calendar"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertDayCounts(result))
		}, "Wrote Parquet contribution calendar"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		if cfg.Detail {
			if err := writeWithFile(parquet.RepoSummariesPath(cfg.OutputFile), func(w io.Writer) error {
				return parquet.WriteRows(w, parquet.ConvertRepoSummaries(result.Repositories))
			}, "Wrote Parquet repository summaries"); err != nil {
				return fmt.Errorf("error writing Parquet repository summaries: %w", err)
			}
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsText(w, result, grid, cfg, duration)
		}, "Wrote contribution calendar"); err != nil {
			return fmt.Errorf("error writing heatmap output: %w", err)
		}
	}
	return nil
}

// writeStatsText writes the heatmap, the optional per-repository table and the footer.
func writeStatsText(w io.Writer, result schema.StatsResult, grid *calendar.Grid, cfg *contract.Config, duration time.Duration) error {
	opts := HeatmapOptions{UseColors: cfg.UseColors, Width: GetTerminalWidth(cfg)}
	if err := RenderHeatmap(w, grid, result.Now, opts); err != nil {
		return err
	}
	if cfg.Detail {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := writeRepoDetailTable(w, result.Repositories, cfg); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", formatStatsFooter(result)); err != nil {
		return err
	}
	if cfg.Detail {
		_, err := fmt.Fprintf(w, "Stats completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
		return err
	}
	return nil
}

// formatStatsFooter summarizes the totals of a run in one line.
func formatStatsFooter(result schema.StatsResult) string {
	return fmt.Sprintf("Total: %s commits by %s across %s repositories (%d failed)",
		humanize.Comma(int64(result.Total)),
		result.Author,
		humanize.Comma(int64(len(result.Repositories))),
		result.FailedRepositories(),
	)
}

// repoStatus describes the outcome of one repository for the detail table.
func repoStatus(r schema.RepoSummary) string {
	switch {
	case r.Failed():
		return "failed: " + r.Error
	case r.CacheHit:
		return "cached"
	default:
		return "ok"
	}
}

// writeRepoDetailTable prints what every repository contributed.
func writeRepoDetailTable(w io.Writer, repos []schema.RepoSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Repository", "Commits", "Out of range", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	pathWidth := getMaxTablePathWidth(cfg, 40)
	data := make([][]string, 0, len(repos))
	for _, r := range repos {
		data = append(data, []string{
			contract.TruncatePath(r.Path, pathWidth),
			humanize.Comma(int64(r.Commits)),
			humanize.Comma(int64(r.OutOfRange)),
			repoStatus(r),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForStats writes one row per day of the window, oldest first.
func writeCSVResultsForStats(w io.Writer, result schema.StatsResult) error {
	header := []string{"date", "days_ago", "weekday", "count"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, d := range result.Days {
			row := []string{
				d.Date.Format(dateFormat),
				strconv.Itoa(d.DaysAgo),
				d.Weekday,
				strconv.Itoa(d.Count),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
