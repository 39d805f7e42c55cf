package service

import (
	"time"

	"go-activity-planner/modules/availability/entity"
)

// Day-window boundaries used for slot classification (local time)
const (
	morningStartHour = 6
	morningEndHour   = 12
	eveningStartHour = 17
	eveningEndHour   = 23
)

// FreeSlotComputer derives free slots from a query range minus busy events
type FreeSlotComputer struct {
	// MinSlotHours - slots shorter than this are not actionable
	MinSlotHours float64
}

// NewFreeSlotComputer creates a computer with the default minimum duration
func NewFreeSlotComputer() *FreeSlotComputer {
	return &FreeSlotComputer{MinSlotHours: 0.5}
}

// Compute subtracts merged busy events from [rangeStart, rangeEnd) and
// classifies the resulting free intervals. The computation is range-based,
// not day-locked: a free interval may cross midnight.
func (fc *FreeSlotComputer) Compute(rangeStart, rangeEnd time.Time, busyEvents []entity.BusyEvent) ([]entity.FreeSlot, error) {
	queryRange, err := entity.NewInterval(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]entity.Interval, 0, len(busyEvents))
	for _, e := range busyEvents {
		busy = append(busy, e.Interval)
	}
	merged := MergeIntervals(busy)

	freeIntervals := SubtractIntervals(queryRange, merged)

	slots := make([]entity.FreeSlot, 0, len(freeIntervals))
	for _, iv := range freeIntervals {
		hours := iv.Hours()
		if hours < fc.MinSlotHours {
			continue
		}

		slots = append(slots, entity.FreeSlot{
			Interval:      iv,
			DurationHours: hours,
			Type:          classify(iv, merged),
		})
	}

	return slots, nil
}

// classify assigns a slot type per the display taxonomy: FULL_DAY when the
// interval spans an entire local day (or the whole waking-hours window of a
// day with no busy events), MORNING/EVENING when contained in those windows,
// BETWEEN_EVENTS otherwise.
func classify(iv entity.Interval, mergedBusy []entity.Interval) entity.SlotType {
	dayStart := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, iv.Start.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	if !iv.Start.After(dayStart) && !iv.End.Before(dayEnd) {
		return entity.SlotFullDay
	}

	// A slot covering the whole waking window of a day with no busy events
	// that day also counts as a full free day
	wakeStart := dayStart.Add(morningStartHour * time.Hour)
	wakeEnd := dayStart.Add(eveningEndHour * time.Hour)
	if !iv.Start.After(wakeStart) && !iv.End.Before(wakeEnd) {
		day := entity.Interval{Start: dayStart, End: dayEnd}
		busyThatDay := false
		for _, b := range mergedBusy {
			if b.Overlaps(day) {
				busyThatDay = true
				break
			}
		}
		if !busyThatDay {
			return entity.SlotFullDay
		}
	}

	if containedInWindow(iv, morningStartHour, morningEndHour) {
		return entity.SlotMorning
	}
	if containedInWindow(iv, eveningStartHour, eveningEndHour) {
		return entity.SlotEvening
	}

	return entity.SlotBetweenEvents
}

// containedInWindow reports whether the interval lies inside [startHour,
// endHour) of a single local day
func containedInWindow(iv entity.Interval, startHour, endHour int) bool {
	dayStart := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, iv.Start.Location())
	windowStart := dayStart.Add(time.Duration(startHour) * time.Hour)
	windowEnd := dayStart.Add(time.Duration(endHour) * time.Hour)

	return !iv.Start.Before(windowStart) && !iv.End.After(windowEnd)
}
