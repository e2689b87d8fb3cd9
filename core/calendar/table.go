// Package calendar turns commit timestamps into a dense day-count table and
// reshapes that table into week columns for rendering.
package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfWindow is returned when a days-ago key outside [0, window] reaches the table.
	ErrOutOfWindow = errors.New("days ago outside the window")

	// ErrMissingColumn is returned when a week column is absent from a grid.
	ErrMissingColumn = errors.New("calendar column missing")
)

// DayCounts is a dense table of commit counts keyed by days ago.
// Every key in [0, Window()] exists from construction.
type DayCounts struct {
	counts []int
}

// NewDayCounts returns a zeroed table for the trailing window.
// A negative window is treated as zero (today only).
func NewDayCounts(window int) *DayCounts {
	window = max(window, 0)
	return &DayCounts{counts: make([]int, window+1)}
}

// Window returns the oldest key of the table.
func (t *DayCounts) Window() int {
	return len(t.counts) - 1
}

// Count returns the count for a key, or zero for keys outside the window.
func (t *DayCounts) Count(daysAgo int) int {
	if daysAgo < 0 || daysAgo >= len(t.counts) {
		return 0
	}
	return t.counts[daysAgo]
}

// Add increments the count at daysAgo by n.
func (t *DayCounts) Add(daysAgo, n int) error {
	if daysAgo < 0 || daysAgo >= len(t.counts) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfWindow, daysAgo, t.Window())
	}
	if n < 0 {
		return fmt.Errorf("negative increment %d at days ago %d", n, daysAgo)
	}
	t.counts[daysAgo] += n
	return nil
}

// Merge adds every count of other into t. Both tables must cover the same window.
func (t *DayCounts) Merge(other *DayCounts) error {
	if other.Window() != t.Window() {
		return fmt.Errorf("%w: merging window %d into %d", ErrOutOfWindow, other.Window(), t.Window())
	}
	for d, n := range other.counts {
		t.counts[d] += n
	}
	return nil
}

// Total returns the sum of all counts.
func (t *DayCounts) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Values returns a copy of the counts, index i holding days ago i.
func (t *DayCounts) Values() []int {
	return append([]int(nil), t.counts...)
}

// Equal reports whether both tables cover the same window with the same counts.
func (t *DayCounts) Equal(other *DayCounts) bool {
	if other == nil || len(t.counts) != len(other.counts) {
		return false
	}
	for i := range t.counts {
		if t.counts[i] != other.counts[i] {
			return false
		}
	}
	return true
}
