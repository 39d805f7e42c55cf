package service

import (
	"testing"
	"time"

	"go-activity-planner/modules/availability/entity"
)

func TestBuildReportScoreFullyFree(t *testing.T) {
	report, err := BuildReport(at(t, 9, 0), at(t, 17, 0), nil, nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.AvailabilityScore != 100 {
		t.Fatalf("expected score 100 for no busy time, got %d", report.AvailabilityScore)
	}
	if report.TotalBusyHours != 0 {
		t.Fatalf("expected 0 busy hours, got %v", report.TotalBusyHours)
	}
	if report.BusiestDay != nil {
		t.Fatalf("expected nil busiest day, got %q", *report.BusiestDay)
	}
}

func TestBuildReportScoreFullyBusy(t *testing.T) {
	report, err := BuildReport(at(t, 9, 0), at(t, 17, 0), []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 17, 0)},
	}, nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.AvailabilityScore != 0 {
		t.Fatalf("expected score 0 for fully busy range, got %d", report.AvailabilityScore)
	}
}

func TestBuildReportScoreHalfBusy(t *testing.T) {
	report, err := BuildReport(at(t, 9, 0), at(t, 17, 0), []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 13, 0)},
	}, nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.AvailabilityScore != 50 {
		t.Fatalf("expected score 50, got %d", report.AvailabilityScore)
	}
	if report.TotalBusyHours != 4 {
		t.Fatalf("expected 4 busy hours, got %v", report.TotalBusyHours)
	}
}

func TestBuildReportOverlappingBusyNotDoubleCounted(t *testing.T) {
	report, err := BuildReport(at(t, 9, 0), at(t, 17, 0), []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 12, 0)},
		{Interval: iv(t, 11, 0, 13, 0)},
	}, nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.TotalBusyHours != 4 {
		t.Fatalf("overlap was double counted: got %v busy hours, want 4", report.TotalBusyHours)
	}
	if report.AvailabilityScore != 50 {
		t.Fatalf("expected score 50, got %d", report.AvailabilityScore)
	}
}

func TestBuildReportBusiestDay(t *testing.T) {
	rangeStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC) // a Monday
	rangeEnd := rangeStart.Add(72 * time.Hour)

	busy := []entity.BusyEvent{
		{Interval: entity.Interval{Start: rangeStart.Add(10 * time.Hour), End: rangeStart.Add(11 * time.Hour)}},
		{Interval: entity.Interval{Start: rangeStart.Add(33 * time.Hour), End: rangeStart.Add(38 * time.Hour)}}, // Tuesday, 5h
	}

	report, err := BuildReport(rangeStart, rangeEnd, busy, nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.BusiestDay == nil {
		t.Fatal("expected a busiest day")
	}
	if *report.BusiestDay != "Tuesday 2026-03-10" {
		t.Fatalf("busiest day = %q, want %q", *report.BusiestDay, "Tuesday 2026-03-10")
	}
}

func TestBuildReportRecommendedTimes(t *testing.T) {
	free := []entity.FreeSlot{
		{Interval: iv(t, 13, 0, 14, 0), DurationHours: 1},
		{Interval: iv(t, 9, 0, 12, 0), DurationHours: 3},
		{Interval: iv(t, 15, 0, 17, 0), DurationHours: 2},
	}

	report, err := BuildReport(at(t, 9, 0), at(t, 17, 0), nil, free)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	// March 9 2026 is a Monday
	want := []string{"Mon 09:00-12:00", "Mon 15:00-17:00"}
	if len(report.RecommendedTimes) != len(want) {
		t.Fatalf("expected %d recommendations, got %v", len(want), report.RecommendedTimes)
	}
	for i := range want {
		if report.RecommendedTimes[i] != want[i] {
			t.Fatalf("recommendation[%d] = %q, want %q", i, report.RecommendedTimes[i], want[i])
		}
	}
}

func TestBuildReportRecommendedTimesTieBreaksByStart(t *testing.T) {
	free := []entity.FreeSlot{
		{Interval: iv(t, 15, 0, 16, 0), DurationHours: 1},
		{Interval: iv(t, 9, 0, 10, 0), DurationHours: 1},
	}

	report, err := BuildReport(at(t, 9, 0), at(t, 17, 0), nil, free)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.RecommendedTimes[0] != "Mon 09:00-10:00" {
		t.Fatalf("equal durations must prefer the earlier start, got %v", report.RecommendedTimes)
	}
}
