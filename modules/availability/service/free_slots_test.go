package service

import (
	"testing"
	"time"

	"go-activity-planner/modules/availability/entity"
)

func TestComputeSubtractsBusyFromRange(t *testing.T) {
	fc := NewFreeSlotComputer()

	slots, err := fc.Compute(at(t, 9, 0), at(t, 17, 0), []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 10, 0), Title: "Standup"},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(at(t, 10, 0)) || !slots[0].End.Equal(at(t, 17, 0)) {
		t.Fatalf("slot bounds wrong: %v", slots[0].Interval)
	}
	if slots[0].DurationHours != 7 {
		t.Fatalf("expected 7h, got %v", slots[0].DurationHours)
	}
}

func TestComputeRejectsInvalidRange(t *testing.T) {
	fc := NewFreeSlotComputer()
	if _, err := fc.Compute(at(t, 17, 0), at(t, 9, 0), nil); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestComputeFiltersSlotsBelowMinimum(t *testing.T) {
	fc := NewFreeSlotComputer()

	// 20-minute gap between meetings is below the 0.5h floor
	slots, err := fc.Compute(at(t, 9, 0), at(t, 12, 0), []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 10, 0)},
		{Interval: iv(t, 10, 20, 12, 0)},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected sub-minimum gap to be dropped, got %v", slots)
	}
}

func TestComputeClassifiesFullDay(t *testing.T) {
	fc := NewFreeSlotComputer()

	dayStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	slots, err := fc.Compute(dayStart, dayStart.Add(24*time.Hour), nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(slots) != 1 || slots[0].Type != entity.SlotFullDay {
		t.Fatalf("expected one FULL_DAY slot, got %v", slots)
	}
}

func TestComputeClassifiesMorningAndEvening(t *testing.T) {
	fc := NewFreeSlotComputer()

	slots, err := fc.Compute(at(t, 7, 0), at(t, 22, 0), []entity.BusyEvent{
		{Interval: iv(t, 11, 0, 18, 0)},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d: %v", len(slots), slots)
	}
	if slots[0].Type != entity.SlotMorning {
		t.Fatalf("expected MORNING for 07:00-11:00, got %s", slots[0].Type)
	}
	if slots[1].Type != entity.SlotEvening {
		t.Fatalf("expected EVENING for 18:00-22:00, got %s", slots[1].Type)
	}
}

func TestComputeClassifiesBetweenEvents(t *testing.T) {
	fc := NewFreeSlotComputer()

	slots, err := fc.Compute(at(t, 9, 0), at(t, 17, 0), []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 12, 0)},
		{Interval: iv(t, 14, 0, 17, 0)},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(slots) != 1 || slots[0].Type != entity.SlotBetweenEvents {
		t.Fatalf("expected one BETWEEN_EVENTS slot, got %v", slots)
	}
}

func TestComputeWakingWindowCountsAsFullDay(t *testing.T) {
	fc := NewFreeSlotComputer()

	dayStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	// Range covers the whole waking window of a day with no busy events
	slots, err := fc.Compute(dayStart.Add(6*time.Hour), dayStart.Add(23*time.Hour), nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(slots) != 1 || slots[0].Type != entity.SlotFullDay {
		t.Fatalf("expected waking-hours span to classify as FULL_DAY, got %v", slots)
	}
}
