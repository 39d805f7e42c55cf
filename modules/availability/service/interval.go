package service

import (
	"sort"

	"go-activity-planner/modules/availability/entity"
)

// MergeIntervals coalesces overlapping or adjacent intervals into a sorted,
// disjoint list. The input slice is not modified.
func MergeIntervals(intervals []entity.Interval) []entity.Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]entity.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []entity.Interval{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		last := &merged[len(merged)-1]
		current := sorted[i]

		// Overlapping or adjacent, extend
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
		} else {
			merged = append(merged, current)
		}
	}

	return merged
}

// SubtractIntervals returns the parts of r not covered by busy, clipped to
// r's bounds. Zero-length results are dropped. An empty busy list yields r
// itself; a busy list fully covering r yields an empty list.
func SubtractIntervals(r entity.Interval, busy []entity.Interval) []entity.Interval {
	merged := MergeIntervals(busy)

	var free []entity.Interval
	cursor := r.Start

	for _, b := range merged {
		if !b.End.After(r.Start) || !b.Start.Before(r.End) {
			continue
		}

		// Clip busy interval to the range
		start, end := b.Start, b.End
		if start.Before(r.Start) {
			start = r.Start
		}
		if end.After(r.End) {
			end = r.End
		}

		if cursor.Before(start) {
			free = append(free, entity.Interval{Start: cursor, End: start})
		}
		if end.After(cursor) {
			cursor = end
		}
	}

	if cursor.Before(r.End) {
		free = append(free, entity.Interval{Start: cursor, End: r.End})
	}

	return free
}

// IntersectFreeSlots returns the pairwise intersection of two free-slot
// lists. A group slot is only valid where every participant is free, so
// multi-participant free time is the fold of this over all participants.
func IntersectFreeSlots(a, b []entity.FreeSlot) []entity.FreeSlot {
	var result []entity.FreeSlot

	for _, sa := range a {
		for _, sb := range b {
			if !sa.Overlaps(sb.Interval) {
				continue
			}

			start := sa.Start
			if sb.Start.After(start) {
				start = sb.Start
			}
			end := sa.End
			if sb.End.Before(end) {
				end = sb.End
			}

			iv := entity.Interval{Start: start, End: end}
			result = append(result, entity.FreeSlot{
				Interval:      iv,
				DurationHours: iv.Hours(),
				Type:          entity.SlotBetweenEvents,
			})
		}
	}

	return result
}
