// Package calendar builds the month grids the planner spread renders: pure
// date math over the day-summary projection, with no storage or transport
// concerns.
package calendar

import (
	"time"

	"github.com/goliatone/go-planner/journal"
)

// Day is one cell of a month grid. Cells outside the target month carry the
// neighbouring month's date with InMonth false. The indicator fields are
// projected from the day summaries: a dot for an entry, a paperclip for
// attached images.
type Day struct {
	Date               string `json:"date"`
	Day                int    `json:"day"`
	InMonth            bool   `json:"inMonth"`
	Weekend            bool   `json:"weekend"`
	HasEntry           bool   `json:"hasEntry"`
	AttachedImageCount int    `json:"attachedImageCount"`
	HasAnyMedia        bool   `json:"hasAnyMedia"`
}

// Grid is a month laid out in full weeks.
type Grid struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Weeks [][]Day `json:"weeks"`
}

const dateLayout = "2006-01-02"

// IndexSummaries keys a month's day summaries by date for grid projection.
func IndexSummaries(summaries []journal.DaySummary) map[string]journal.DaySummary {
	if len(summaries) == 0 {
		return nil
	}
	out := make(map[string]journal.DaySummary, len(summaries))
	for _, s := range summaries {
		out[s.Date] = s
	}
	return out
}

// BuildMonth lays the month out in full weeks starting on weekStart. Leading
// and trailing cells are filled from the adjacent months. Cells whose date has
// a summary carry its indicator flags; a nil or partial map leaves the flags
// zero.
func BuildMonth(year int, month time.Month, weekStart time.Weekday, summaries map[string]journal.DaySummary) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	lead := int(first.Weekday()) - int(weekStart)
	if lead < 0 {
		lead += 7
	}
	cursor := first.AddDate(0, 0, -lead)
	end := first.AddDate(0, 1, 0)

	grid := Grid{Year: year, Month: int(month)}
	for cursor.Before(end) {
		week := make([]Day, 0, 7)
		for i := 0; i < 7; i++ {
			weekday := cursor.Weekday()
			date := cursor.Format(dateLayout)
			cell := Day{
				Date:    date,
				Day:     cursor.Day(),
				InMonth: cursor.Month() == month && cursor.Year() == year,
				Weekend: weekday == time.Saturday || weekday == time.Sunday,
			}
			if summary, ok := summaries[date]; ok {
				cell.HasEntry = summary.HasEntry
				cell.AttachedImageCount = summary.AttachedImageCount
				cell.HasAnyMedia = summary.HasAnyMedia
			}
			week = append(week, cell)
			cursor = cursor.AddDate(0, 0, 1)
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
