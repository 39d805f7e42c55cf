package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go-activity-planner/core/constants"
	"go-activity-planner/modules/availability/entity"
)

// BuildReport computes the availability summary for one participant set and
// date range. The report is ephemeral; nothing here is persisted.
func BuildReport(rangeStart, rangeEnd time.Time, busyEvents []entity.BusyEvent, freeSlots []entity.FreeSlot) (*entity.AvailabilityReport, error) {
	queryRange, err := entity.NewInterval(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]entity.Interval, 0, len(busyEvents))
	for _, e := range busyEvents {
		busy = append(busy, e.Interval)
	}
	merged := MergeIntervals(busy)

	totalHours := queryRange.Hours()
	busyHours := 0.0
	for _, b := range merged {
		busyHours += overlapHours(b, queryRange)
	}

	freeHours := totalHours - busyHours
	score := 0
	if totalHours > 0 {
		score = int(math.Round(100 * freeHours / totalHours))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	report := &entity.AvailabilityReport{
		BusySlots:         busyEvents,
		FreeSlots:         freeSlots,
		AvailabilityScore: score,
		TotalBusyHours:    busyHours,
		BusiestDay:        busiestDay(queryRange, merged),
		RecommendedTimes:  recommendedTimes(freeSlots),
	}

	return report, nil
}

func overlapHours(a, b entity.Interval) float64 {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !start.Before(end) {
		return 0
	}
	return end.Sub(start).Hours()
}

// busiestDay finds the calendar day within the range carrying the largest
// sum of busy overlap, nil when no busy events fall in range
func busiestDay(queryRange entity.Interval, mergedBusy []entity.Interval) *string {
	if len(mergedBusy) == 0 {
		return nil
	}

	var (
		bestDay   time.Time
		bestHours float64
	)

	// Clip busy intervals to the query range before bucketing by day
	clipped := make([]entity.Interval, 0, len(mergedBusy))
	for _, b := range mergedBusy {
		start, end := b.Start, b.End
		if start.Before(queryRange.Start) {
			start = queryRange.Start
		}
		if end.After(queryRange.End) {
			end = queryRange.End
		}
		if start.Before(end) {
			clipped = append(clipped, entity.Interval{Start: start, End: end})
		}
	}

	day := time.Date(queryRange.Start.Year(), queryRange.Start.Month(), queryRange.Start.Day(), 0, 0, 0, 0, queryRange.Start.Location())
	for day.Before(queryRange.End) {
		dayInterval := entity.Interval{Start: day, End: day.Add(24 * time.Hour)}

		hours := 0.0
		for _, b := range clipped {
			hours += overlapHours(b, dayInterval)
		}

		if hours > bestHours {
			bestHours = hours
			bestDay = day
		}

		day = day.Add(24 * time.Hour)
	}

	if bestHours <= 0 {
		return nil
	}

	formatted := fmt.Sprintf("%s %s", bestDay.Weekday().String(), bestDay.Format(constants.DateLayout))
	return &formatted
}

// recommendedTimes renders up to 2 longest free slots, longest-first, ties
// broken by earlier start
func recommendedTimes(freeSlots []entity.FreeSlot) []string {
	if len(freeSlots) == 0 {
		return []string{}
	}

	sorted := make([]entity.FreeSlot, len(freeSlots))
	copy(sorted, freeSlots)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DurationHours != sorted[j].DurationHours {
			return sorted[i].DurationHours > sorted[j].DurationHours
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	limit := 2
	if len(sorted) < limit {
		limit = len(sorted)
	}

	result := make([]string, 0, limit)
	for _, slot := range sorted[:limit] {
		result = append(result, fmt.Sprintf("%s %s-%s",
			slot.Start.Weekday().String()[:3],
			slot.Start.Format("15:04"),
			slot.End.Format("15:04"),
		))
	}
	return result
}
