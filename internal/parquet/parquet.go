// Package parquet provides data structures and functions for exporting
// contribution calendars to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/gitlocalstats/schema"
	"github.com/parquet-go/parquet-go"
)

// DayCountRow is one day of the contribution window.
type DayCountRow struct {
	// Author is the identity the commits were filtered by
	Author string `parquet:"author,snappy,dict"`

	// Date is the calendar day at local midnight (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// DaysAgo is the distance from today in whole calendar days
	DaysAgo int32 `parquet:"days_ago,snappy"`

	// Weekday is the English weekday name
	Weekday string `parquet:"weekday,snappy,dict"`

	// Count is the number of commits on that day
	Count int32 `parquet:"count,snappy"`
}

// RepoSummaryRow is what a single repository contributed to a run.
type RepoSummaryRow struct {
	Path       string  `parquet:"path,snappy"`
	Commits    int32   `parquet:"commits,snappy"`
	OutOfRange int32   `parquet:"out_of_range,snappy"`
	CacheHit   bool    `parquet:"cache_hit"`
	Error      *string `parquet:"error,optional,snappy"`
}

// ConvertDayCounts converts the days of a stats result into Parquet rows.
func ConvertDayCounts(result schema.StatsResult) []DayCountRow {
	rows := make([]DayCountRow, len(result.Days))
	for i, d := range result.Days {
		rows[i] = DayCountRow{
			Author:  result.Author,
			Date:    d.Date,
			DaysAgo: int32(d.DaysAgo),
			Weekday: d.Weekday,
			Count:   int32(d.Count),
		}
	}
	return rows
}

// ConvertRepoSummaries converts repository summaries into Parquet rows.
func ConvertRepoSummaries(summaries []schema.RepoSummary) []RepoSummaryRow {
	rows := make([]RepoSummaryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = RepoSummaryRow{
			Path:       s.Path,
			Commits:    int32(s.Commits),
			OutOfRange: int32(s.OutOfRange),
			CacheHit:   s.CacheHit,
		}
		if s.Error != "" {
			msg := s.Error
			rows[i].Error = &msg
		}
	}
	return rows
}

// WriteRows writes rows to w using the schema inferred from the row type.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// RepoSummariesPath derives the repository summary file that sits next to a day export.
func RepoSummariesPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".repos.parquet"
}

// ReadRows reads every row of a Parquet file.
func ReadRows[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}
