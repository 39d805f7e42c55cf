package service

import (
	"testing"

	"go-activity-planner/modules/availability/entity"
)

func TestIsFreeContainedCandidate(t *testing.T) {
	free := []entity.FreeSlot{
		{Interval: iv(t, 10, 0, 17, 0), DurationHours: 7},
	}
	candidate := entity.Candidate{Start: at(t, 14, 0), DurationHours: 2}

	ok, err := IsFree(candidate, free)
	if err != nil {
		t.Fatalf("IsFree: %v", err)
	}
	if !ok {
		t.Fatal("candidate fully inside a long slot must be free")
	}
}

func TestIsFreeRejectsSlotTooShort(t *testing.T) {
	free := []entity.FreeSlot{
		{Interval: iv(t, 14, 0, 15, 30), DurationHours: 1.5},
	}
	candidate := entity.Candidate{Start: at(t, 14, 0), DurationHours: 2}

	ok, err := IsFree(candidate, free)
	if err != nil {
		t.Fatalf("IsFree: %v", err)
	}
	if ok {
		t.Fatal("a 2h candidate must not fit a 1.5h slot")
	}
}

func TestIsFreeRejectsPartialOverlap(t *testing.T) {
	free := []entity.FreeSlot{
		{Interval: iv(t, 10, 0, 15, 0), DurationHours: 5},
	}
	candidate := entity.Candidate{Start: at(t, 14, 0), DurationHours: 2}

	ok, err := IsFree(candidate, free)
	if err != nil {
		t.Fatalf("IsFree: %v", err)
	}
	if ok {
		t.Fatal("candidate extending past the slot end must not be free")
	}
}

func TestIsFreeRejectsNonPositiveDuration(t *testing.T) {
	if _, err := IsFree(entity.Candidate{Start: at(t, 14, 0)}, nil); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestConflictsReturnsOverlappingEventsInOrder(t *testing.T) {
	busy := []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 10, 0), Title: "Standup"},
		{Interval: iv(t, 13, 30, 14, 30), Title: "1:1"},
		{Interval: iv(t, 15, 0, 16, 0), Title: "Review"},
		{Interval: iv(t, 18, 0, 19, 0), Title: "Dinner"},
	}
	candidate := entity.Candidate{Start: at(t, 14, 0), DurationHours: 2}

	conflicts, err := Conflicts(candidate, busy)
	if err != nil {
		t.Fatalf("Conflicts: %v", err)
	}
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %v", len(conflicts), conflicts)
	}
	if conflicts[0].Title != "1:1" || conflicts[1].Title != "Review" {
		t.Fatalf("conflicts out of order: %v", conflicts)
	}
}

func TestConflictsEmptyWhenFree(t *testing.T) {
	busy := []entity.BusyEvent{
		{Interval: iv(t, 9, 0, 10, 0), Title: "Standup"},
	}
	candidate := entity.Candidate{Start: at(t, 10, 0), DurationHours: 1}

	conflicts, err := Conflicts(candidate, busy)
	if err != nil {
		t.Fatalf("Conflicts: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("touching candidate must not conflict, got %v", conflicts)
	}
}
