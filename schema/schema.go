// Package schema has the models and constants shared by all parts of gitlocalstats.
package schema

import "time"

// DayCount is one day of the trailing window in export-friendly form.
type DayCount struct {
	Date    time.Time `json:"date"`
	DaysAgo int       `json:"days_ago"`
	Weekday string    `json:"weekday"`
	Count   int       `json:"count"`
}

// RepoSummary describes what a single repository contributed to a stats run.
type RepoSummary struct {
	Path       string `json:"path"`
	Commits    int    `json:"commits"`     // Records that landed inside the window
	OutOfRange int    `json:"out_of_range"` // Records dropped as unparsable or outside the window
	CacheHit   bool   `json:"cache_hit"`
	Err        error  `json:"-"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the repository could not be read.
func (r RepoSummary) Failed() bool {
	return r.Err != nil
}

// StatsResult is the complete, render-independent outcome of a stats run.
type StatsResult struct {
	Author       string        `json:"author"`
	Now          time.Time     `json:"now"`
	WindowDays   int           `json:"window_days"`
	TodayOffset  int           `json:"today_offset"`
	Total        int           `json:"total"`
	Days         []DayCount    `json:"days"`
	Repositories []RepoSummary `json:"repositories"`
}

// FailedRepositories counts the repositories that contributed nothing because of an error.
func (s StatsResult) FailedRepositories() int {
	n := 0
	for _, r := range s.Repositories {
		if r.Failed() {
			n++
		}
	}
	return n
}
