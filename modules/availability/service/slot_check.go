package service

import (
	"fmt"

	"go-activity-planner/modules/availability/entity"
)

// IsFree reports whether some free slot fully contains the candidate window
// and is itself long enough. The duration guard protects against slots that
// are contiguous-but-fragmented in the source busy list.
func IsFree(candidate entity.Candidate, freeSlots []entity.FreeSlot) (bool, error) {
	if candidate.DurationHours <= 0 {
		return false, fmt.Errorf("invalid candidate: duration %.2fh is not positive", candidate.DurationHours)
	}

	window := entity.Interval{Start: candidate.Start, End: candidate.End()}

	for _, slot := range freeSlots {
		if slot.Contains(window) && slot.DurationHours >= candidate.DurationHours {
			return true, nil
		}
	}
	return false, nil
}

// Conflicts returns the busy events overlapping the candidate window, in
// input order. Used to explain why a slot is unavailable, not merely that
// it is.
func Conflicts(candidate entity.Candidate, busyEvents []entity.BusyEvent) ([]entity.BusyEvent, error) {
	if candidate.DurationHours <= 0 {
		return nil, fmt.Errorf("invalid candidate: duration %.2fh is not positive", candidate.DurationHours)
	}

	window := entity.Interval{Start: candidate.Start, End: candidate.End()}

	var conflicts []entity.BusyEvent
	for _, event := range busyEvents {
		if window.Overlaps(event.Interval) {
			conflicts = append(conflicts, event)
		}
	}
	return conflicts, nil
}
