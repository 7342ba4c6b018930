package calendar_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-planner/internal/calendar"
	"github.com/goliatone/go-planner/journal"
)

func TestBuildMonthFebruary2026(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days: exactly 4 weeks
	// when the week starts on Sunday.
	grid := calendar.BuildMonth(2026, time.February, time.Sunday, nil)

	if len(grid.Weeks) != 4 {
		t.Fatalf("expected 4 weeks, got %d", len(grid.Weeks))
	}
	for i, week := range grid.Weeks {
		if len(week) != 7 {
			t.Fatalf("week %d: expected 7 days, got %d", i, len(week))
		}
	}
	if grid.Weeks[0][0].Date != "2026-02-01" || !grid.Weeks[0][0].InMonth {
		t.Fatalf("unexpected first cell %+v", grid.Weeks[0][0])
	}
	if grid.Weeks[3][6].Date != "2026-02-28" {
		t.Fatalf("unexpected last cell %+v", grid.Weeks[3][6])
	}
}

func TestBuildMonthPadsAdjacentMonths(t *testing.T) {
	// May 2026 starts on a Friday.
	grid := calendar.BuildMonth(2026, time.May, time.Monday, nil)

	first := grid.Weeks[0][0]
	if first.InMonth {
		t.Fatalf("expected a leading april cell, got %+v", first)
	}
	if first.Date != "2026-04-27" {
		t.Fatalf("expected week to open on 2026-04-27, got %s", first.Date)
	}

	lastWeek := grid.Weeks[len(grid.Weeks)-1]
	last := lastWeek[len(lastWeek)-1]
	if last.InMonth {
		t.Fatalf("expected a trailing june cell, got %+v", last)
	}

	seen := 0
	for _, week := range grid.Weeks {
		for _, day := range week {
			if day.InMonth {
				seen++
			}
		}
	}
	if seen != 31 {
		t.Fatalf("expected 31 may days, got %d", seen)
	}
}

func TestBuildMonthMarksWeekends(t *testing.T) {
	grid := calendar.BuildMonth(2026, time.March, time.Monday, nil)

	for _, week := range grid.Weeks {
		for _, day := range week {
			parsed, err := time.Parse("2006-01-02", day.Date)
			if err != nil {
				t.Fatalf("bad date %q: %v", day.Date, err)
			}
			weekend := parsed.Weekday() == time.Saturday || parsed.Weekday() == time.Sunday
			if day.Weekend != weekend {
				t.Fatalf("weekend flag mismatch for %s", day.Date)
			}
		}
	}
}

func TestBuildMonthProjectsSummaryIndicators(t *testing.T) {
	summaries := calendar.IndexSummaries([]journal.DaySummary{
		{Date: "2026-03-14", HasEntry: true, AttachedImageCount: 2, HasAnyMedia: true},
		{Date: "2026-03-15", HasEntry: true},
	})

	grid := calendar.BuildMonth(2026, time.March, time.Monday, summaries)

	var piDay, idesEve, first *calendar.Day
	for wi := range grid.Weeks {
		for di := range grid.Weeks[wi] {
			switch grid.Weeks[wi][di].Date {
			case "2026-03-14":
				piDay = &grid.Weeks[wi][di]
			case "2026-03-15":
				idesEve = &grid.Weeks[wi][di]
			case "2026-03-01":
				first = &grid.Weeks[wi][di]
			}
		}
	}

	if piDay == nil || !piDay.HasEntry || piDay.AttachedImageCount != 2 || !piDay.HasAnyMedia {
		t.Fatalf("indicators missing for 2026-03-14: %+v", piDay)
	}
	if idesEve == nil || !idesEve.HasEntry || idesEve.HasAnyMedia {
		t.Fatalf("unexpected indicators for 2026-03-15: %+v", idesEve)
	}
	if first == nil || first.HasEntry || first.AttachedImageCount != 0 {
		t.Fatalf("empty day should carry zero indicators: %+v", first)
	}
}
