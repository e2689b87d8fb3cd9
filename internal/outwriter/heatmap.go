package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/gitlocalstats/core/calendar"
	"github.com/huangsam/gitlocalstats/schema"
)

// Heatmap layout, in terminal cells.
const (
	gutterWidth = 5
	cellWidth   = 4
	maxCellText = 999
)

// Weekday gutter labels. Rows without an entry get a blank gutter.
var gutterLabels = map[int]string{
	1: " Mon ",
	3: " Wed ",
	5: " Fri ",
}

// HeatmapOptions controls how a calendar grid is drawn.
type HeatmapOptions struct {
	UseColors bool
	Width     int // Columns available; 0 draws every week
}

// heatmapStyles maps every cell kind to its terminal style.
type heatmapStyles struct {
	intensity map[schema.Intensity]*color.Color
	today     *color.Color
}

// newHeatmapStyles builds the cell styles. Styles are forced on so the output
// does not depend on whether stdout is a terminal.
func newHeatmapStyles() heatmapStyles {
	s := heatmapStyles{
		intensity: map[schema.Intensity]*color.Color{
			schema.EmptyIntensity:  color.New(color.Reset, color.FgWhite, color.FgBlack),
			schema.LightIntensity:  color.New(color.Bold, color.FgBlack, color.BgWhite),
			schema.MediumIntensity: color.New(color.Bold, color.FgBlack, color.BgYellow),
			schema.HighIntensity:   color.New(color.Bold, color.FgBlack, color.BgGreen),
		},
		today: color.New(color.Bold, color.FgWhite, color.BgMagenta),
	}
	for _, c := range s.intensity {
		c.EnableColor()
	}
	s.today.EnableColor()
	return s
}

// VisibleWeeks returns how many week columns fit in width, keeping at least
// the current week.
func VisibleWeeks(grid *calendar.Grid, width int) int {
	weeks := grid.Weeks()
	if width <= 0 {
		return weeks
	}
	return max(1, min(weeks, (width-gutterWidth)/cellWidth))
}

// RenderHeatmap draws the grid as a month header followed by one line per
// weekday, Sunday first. Columns run from the oldest visible week on the left
// to the current week on the right. Days after today and days before the
// window are drawn as zero-count cells.
func RenderHeatmap(w io.Writer, grid *calendar.Grid, now time.Time, opts HeatmapOptions) error {
	weeks := VisibleWeeks(grid, opts.Width)
	var styles heatmapStyles
	if opts.UseColors {
		styles = newHeatmapStyles()
	}

	var b strings.Builder
	writeMonthHeader(&b, grid, now, weeks)

	for weekday := calendar.SundayRow; weekday <= calendar.SaturdayRow; weekday++ {
		if label, ok := gutterLabels[weekday]; ok {
			b.WriteString(label)
		} else {
			b.WriteString(strings.Repeat(" ", gutterWidth))
		}
		for week := weeks - 1; week >= 0; week-- {
			if _, inWindow := grid.DaysAgo(week, weekday); !inWindow {
				b.WriteString(formatCell(0, false, opts.UseColors, styles))
				continue
			}
			count, err := grid.Cell(week, weekday)
			if err != nil {
				return fmt.Errorf("rendering week %d: %w", week, err)
			}
			b.WriteString(formatCell(count, grid.IsToday(week, weekday), opts.UseColors, styles))
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeMonthHeader labels a column with its month when the month of its
// first in-window day differs from the column before it.
func writeMonthHeader(b *strings.Builder, grid *calendar.Grid, now time.Time, weeks int) {
	b.WriteString(strings.Repeat(" ", gutterWidth))
	month := calendar.DateOf(now, grid.Window()).Month()
	if weeks < grid.Weeks() {
		month = calendar.DateOf(now, grid.RelativeDay(weeks, calendar.SaturdayRow)).Month()
	}
	for week := weeks - 1; week >= 0; week-- {
		first := calendar.DateOf(now, min(grid.RelativeDay(week, calendar.SundayRow), grid.Window()))
		if first.Month() != month {
			month = first.Month()
			b.WriteString(month.String()[:3] + " ")
			continue
		}
		b.WriteString(strings.Repeat(" ", cellWidth))
	}
	b.WriteByte('\n')
}

// cellText pads a count to the cell width.
func cellText(count int) string {
	switch {
	case count <= 0:
		return "  - "
	case count < 10:
		return fmt.Sprintf("  %d ", count)
	case count < 100:
		return fmt.Sprintf(" %d ", count)
	case count <= maxCellText:
		return fmt.Sprintf("%d ", count)
	default:
		return "999+"
	}
}

// formatCell renders one cell. Without colors, today is marked with a
// trailing asterisk instead.
func formatCell(count int, today, useColors bool, styles heatmapStyles) string {
	text := cellText(count)
	if !useColors {
		if today {
			return text[:cellWidth-1] + "*"
		}
		return text
	}
	if today {
		return styles.today.Sprint(text)
	}
	return styles.intensity[calendar.Intensity(count)].Sprint(text)
}
