package calendar

import (
	"fmt"
	"time"

	"github.com/huangsam/gitlocalstats/schema"
)

// Weekday rows of a column.
const (
	SundayRow   = 0
	SaturdayRow = schema.DaysInWeek - 1
)

// TodayOffset returns how many days of the current week have elapsed,
// today included: 1 on Sunday through 7 on Saturday.
func TodayOffset(now time.Time) int {
	return int(now.Weekday()) + 1
}

// WeekColumn holds the counts of consecutive weekdays of one calendar week,
// starting at weekday row Start. Only the oldest and the current week of a
// grid can hold fewer than seven entries.
type WeekColumn struct {
	Start  int
	Counts []int
}

// At returns the count at a weekday row and whether the column holds that row.
func (c WeekColumn) At(weekday int) (int, bool) {
	i := weekday - c.Start
	if i < 0 || i >= len(c.Counts) {
		return 0, false
	}
	return c.Counts[i], true
}

// End returns the row after the last filled row.
func (c WeekColumn) End() int {
	return c.Start + len(c.Counts)
}

// Sealed reports whether the Saturday slot has been filled.
func (c WeekColumn) Sealed() bool {
	return c.End() == schema.DaysInWeek
}

// Grid is a day-count table arranged in calendar weeks. Week 0 contains today,
// higher weeks lie further in the past.
type Grid struct {
	window      int
	todayOffset int
	columns     map[int]WeekColumn
}

// Bin reshapes the table into week columns aligned to Sunday..Saturday.
// Keys are consumed from the oldest day down to today; a column is started on
// every Sunday and sealed on every Saturday. A column still open when the table
// runs out is kept as the partial current week.
func Bin(table *DayCounts, todayOffset int) (*Grid, error) {
	if todayOffset < 1 || todayOffset > schema.DaysInWeek {
		return nil, fmt.Errorf("today offset %d not in [1, %d]", todayOffset, schema.DaysInWeek)
	}
	g := &Grid{
		window:      table.Window(),
		todayOffset: todayOffset,
		columns:     make(map[int]WeekColumn),
	}

	var (
		open     *WeekColumn
		openWeek int
	)
	for d := g.window; d >= 0; d-- {
		week, weekday := g.position(d)
		if open == nil || weekday == SundayRow {
			open = &WeekColumn{Start: weekday, Counts: make([]int, 0, schema.DaysInWeek-weekday)}
			openWeek = week
		}
		open.Counts = append(open.Counts, table.Count(d))
		if weekday == SaturdayRow {
			g.columns[week] = *open
			open = nil
		}
	}
	if open != nil {
		g.columns[openWeek] = *open
	}

	for week := range g.Weeks() {
		if _, ok := g.columns[week]; !ok {
			return nil, fmt.Errorf("%w: week %d", ErrMissingColumn, week)
		}
	}
	return g, nil
}

// shift is the number of days of the current week that lie after today.
func (g *Grid) shift() int {
	return schema.DaysInWeek - g.todayOffset
}

// position maps days ago onto a week index and a weekday row.
func (g *Grid) position(daysAgo int) (week, weekday int) {
	p := daysAgo + g.shift()
	return p / schema.DaysInWeek, SaturdayRow - p%schema.DaysInWeek
}

// Window returns the oldest days-ago key covered by the grid.
func (g *Grid) Window() int {
	return g.window
}

// TodayOffset returns the offset the grid was binned with.
func (g *Grid) TodayOffset() int {
	return g.todayOffset
}

// Weeks returns the number of week columns.
func (g *Grid) Weeks() int {
	week, _ := g.position(g.window)
	return week + 1
}

// Column returns the column for a week index.
func (g *Grid) Column(week int) (WeekColumn, bool) {
	c, ok := g.columns[week]
	return c, ok
}

// Cell returns the count at a week and weekday row. Rows the column does not
// hold (days after today, days before the window) read as zero.
func (g *Grid) Cell(week, weekday int) (int, error) {
	if weekday < SundayRow || weekday > SaturdayRow {
		return 0, fmt.Errorf("weekday row %d not in [0, 6]", weekday)
	}
	c, ok := g.columns[week]
	if !ok {
		return 0, fmt.Errorf("%w: week %d", ErrMissingColumn, week)
	}
	n, _ := c.At(weekday)
	return n, nil
}

// RelativeDay returns days ago for any week and weekday row, including rows
// outside the window. Negative values lie after today.
func (g *Grid) RelativeDay(week, weekday int) int {
	return week*schema.DaysInWeek + (SaturdayRow - weekday) - g.shift()
}

// DaysAgo returns days ago for a cell and whether it lies inside the window.
func (g *Grid) DaysAgo(week, weekday int) (int, bool) {
	d := g.RelativeDay(week, weekday)
	return d, d >= 0 && d <= g.window
}

// IsToday reports whether the cell holds today.
func (g *Grid) IsToday(week, weekday int) bool {
	return week == 0 && weekday == g.todayOffset-1
}

// Flatten rebuilds the day-count table from the grid.
func (g *Grid) Flatten() (*DayCounts, error) {
	table := NewDayCounts(g.window)
	for week, c := range g.columns {
		for i, n := range c.Counts {
			if err := table.Add(g.RelativeDay(week, c.Start+i), n); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}
