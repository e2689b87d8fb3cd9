package calendar

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the author date layout produced by "git log --date=iso".
const TimestampLayout = "2006-01-02 15:04:05 -0700"

// DaysAgo is the result of classifying a timestamp: either a day offset
// inside the window or out of range. The zero value is out of range.
type DaysAgo struct {
	n  int
	ok bool
}

// Classified returns a result holding n days ago.
func Classified(n int) DaysAgo {
	return DaysAgo{n: n, ok: true}
}

// OutOfRange returns the result for a timestamp that cannot be placed in the window.
func OutOfRange() DaysAgo {
	return DaysAgo{}
}

// Value returns the day offset and whether the result is classified.
func (d DaysAgo) Value() (int, bool) {
	return d.n, d.ok
}

// IsOutOfRange reports whether the timestamp was dropped.
func (d DaysAgo) IsOutOfRange() bool {
	return !d.ok
}

func (d DaysAgo) String() string {
	if !d.ok {
		return "out-of-range"
	}
	return fmt.Sprintf("%d days ago", d.n)
}

// Classify parses raw and returns how many calendar days before now it lies.
// Unparsable timestamps, future timestamps and timestamps older than window
// days are OutOfRange.
func Classify(raw string, now time.Time, window int) DaysAgo {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(raw))
	if err != nil {
		return OutOfRange()
	}
	n := CalendarDaysBetween(t, now)
	if n < 0 || n > window {
		return OutOfRange()
	}
	return Classified(n)
}

// CalendarDaysBetween counts midnight crossings from t to now, both seen in
// now's location. A result is negative when t falls on a later day than now.
func CalendarDaysBetween(t, now time.Time) int {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	from := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	to := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DateOf returns midnight of the day that lies daysAgo days before now, in now's location.
func DateOf(now time.Time, daysAgo int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-daysAgo, 0, 0, 0, 0, now.Location())
}
