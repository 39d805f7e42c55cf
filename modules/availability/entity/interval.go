package entity

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End). Start must be before End.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval validates and constructs an interval
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("invalid interval: start %s is not before end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals overlap.
// Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies entirely within i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Hours() float64 {
	return i.End.Sub(i.Start).Hours()
}

// BusyEvent is a calendar-reported interval during which a participant is
// unavailable. Produced externally, read-only input.
type BusyEvent struct {
	Interval
	Title string `json:"title"`
}

// SlotType classifies a free slot for display
type SlotType string

const (
	SlotFullDay       SlotType = "FULL_DAY"
	SlotMorning       SlotType = "MORNING"
	SlotEvening       SlotType = "EVENING"
	SlotBetweenEvents SlotType = "BETWEEN_EVENTS"
)

// FreeSlot is a derived free time range within a query window. Never
// persisted; recomputed on every query.
type FreeSlot struct {
	Interval
	DurationHours float64  `json:"duration_hours"`
	Type          SlotType `json:"type"`
}

// Candidate is a proposed window to check against free/busy data
type Candidate struct {
	Start         time.Time `json:"start"`
	DurationHours float64   `json:"duration_hours"`
}

func (c Candidate) End() time.Time {
	return c.Start.Add(time.Duration(c.DurationHours * float64(time.Hour)))
}

// AvailabilityReport summarizes one (participant, date-range) query
type AvailabilityReport struct {
	BusySlots         []BusyEvent `json:"busy_slots"`
	FreeSlots         []FreeSlot  `json:"free_slots"`
	AvailabilityScore int         `json:"availability_score"`
	TotalBusyHours    float64     `json:"total_busy_hours"`
	BusiestDay        *string     `json:"busiest_day"`
	RecommendedTimes  []string    `json:"recommended_times"`
}
