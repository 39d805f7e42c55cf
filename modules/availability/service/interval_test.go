package service

import (
	"testing"
	"time"

	"go-activity-planner/modules/availability/entity"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 9, hour, min, 0, 0, time.UTC)
}

func iv(t *testing.T, startHour, startMin, endHour, endMin int) entity.Interval {
	t.Helper()
	return entity.Interval{Start: at(t, startHour, startMin), End: at(t, endHour, endMin)}
}

func TestNewIntervalRejectsInvertedRange(t *testing.T) {
	if _, err := entity.NewInterval(at(t, 12, 0), at(t, 10, 0)); err == nil {
		t.Fatal("expected error for start after end")
	}
	if _, err := entity.NewInterval(at(t, 12, 0), at(t, 12, 0)); err == nil {
		t.Fatal("expected error for zero-length interval")
	}
}

func TestOverlapsIsSymmetricAndHalfOpen(t *testing.T) {
	a := iv(t, 9, 0, 11, 0)
	b := iv(t, 10, 0, 12, 0)
	touching := iv(t, 11, 0, 13, 0)

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("overlapping intervals must overlap symmetrically")
	}
	if a.Overlaps(touching) || touching.Overlaps(a) {
		t.Fatal("touching endpoints must not count as overlap")
	}
}

func TestMergeIntervalsCoalescesOverlappingAndAdjacent(t *testing.T) {
	input := []entity.Interval{
		iv(t, 13, 0, 14, 0),
		iv(t, 9, 0, 10, 30),
		iv(t, 10, 0, 11, 0),  // overlaps the first morning block
		iv(t, 11, 0, 12, 0),  // adjacent, should coalesce
	}

	merged := MergeIntervals(input)

	if len(merged) != 2 {
		t.Fatalf("expected 2 merged intervals, got %d: %v", len(merged), merged)
	}
	if !merged[0].Start.Equal(at(t, 9, 0)) || !merged[0].End.Equal(at(t, 12, 0)) {
		t.Fatalf("first merged interval wrong: %v", merged[0])
	}
	if !merged[1].Start.Equal(at(t, 13, 0)) || !merged[1].End.Equal(at(t, 14, 0)) {
		t.Fatalf("second merged interval wrong: %v", merged[1])
	}
}

func TestMergeIntervalsIsIdempotent(t *testing.T) {
	input := []entity.Interval{
		iv(t, 9, 0, 10, 0),
		iv(t, 9, 30, 11, 0),
	}

	once := MergeIntervals(input)
	twice := MergeIntervals(once)

	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if !once[i].Start.Equal(twice[i].Start) || !once[i].End.Equal(twice[i].End) {
			t.Fatalf("merge not idempotent at %d: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestMergeIntervalsDoesNotModifyInput(t *testing.T) {
	input := []entity.Interval{
		iv(t, 10, 0, 11, 0),
		iv(t, 9, 0, 12, 0),
	}
	MergeIntervals(input)

	if !input[0].Start.Equal(at(t, 10, 0)) {
		t.Fatal("input slice was reordered")
	}
}

func TestSubtractIntervalsEmptyBusyYieldsWholeRange(t *testing.T) {
	r := iv(t, 9, 0, 17, 0)
	free := SubtractIntervals(r, nil)

	if len(free) != 1 {
		t.Fatalf("expected 1 free interval, got %d", len(free))
	}
	if !free[0].Start.Equal(r.Start) || !free[0].End.Equal(r.End) {
		t.Fatalf("expected whole range free, got %v", free[0])
	}
}

func TestSubtractIntervalsFullyCoveredYieldsNothing(t *testing.T) {
	r := iv(t, 9, 0, 17, 0)
	free := SubtractIntervals(r, []entity.Interval{iv(t, 8, 0, 18, 0)})

	if len(free) != 0 {
		t.Fatalf("expected no free time, got %v", free)
	}
}

func TestSubtractIntervalsClipsToBounds(t *testing.T) {
	r := iv(t, 9, 0, 17, 0)
	busy := []entity.Interval{
		iv(t, 8, 0, 10, 0),  // hangs over the start
		iv(t, 12, 0, 13, 0), // interior
		iv(t, 16, 0, 18, 0), // hangs over the end
	}

	free := SubtractIntervals(r, busy)

	want := []entity.Interval{
		iv(t, 10, 0, 12, 0),
		iv(t, 13, 0, 16, 0),
	}
	if len(free) != len(want) {
		t.Fatalf("expected %d free intervals, got %d: %v", len(want), len(free), free)
	}
	for i := range want {
		if !free[i].Start.Equal(want[i].Start) || !free[i].End.Equal(want[i].End) {
			t.Fatalf("free[%d] = %v, want %v", i, free[i], want[i])
		}
	}
}

func TestSubtractIntervalsDropsZeroLengthGaps(t *testing.T) {
	r := iv(t, 9, 0, 17, 0)
	busy := []entity.Interval{
		iv(t, 9, 0, 12, 0),
		iv(t, 12, 0, 17, 0),
	}

	free := SubtractIntervals(r, busy)
	if len(free) != 0 {
		t.Fatalf("expected no free intervals around a seam, got %v", free)
	}
}

func TestIntersectFreeSlots(t *testing.T) {
	a := []entity.FreeSlot{
		{Interval: iv(t, 9, 0, 12, 0), DurationHours: 3, Type: entity.SlotMorning},
	}
	b := []entity.FreeSlot{
		{Interval: iv(t, 10, 0, 11, 0), DurationHours: 1, Type: entity.SlotBetweenEvents},
	}

	result := IntersectFreeSlots(a, b)

	if len(result) != 1 {
		t.Fatalf("expected 1 intersected slot, got %d", len(result))
	}
	if !result[0].Start.Equal(at(t, 10, 0)) || !result[0].End.Equal(at(t, 11, 0)) {
		t.Fatalf("intersection bounds wrong: %v", result[0].Interval)
	}
	if result[0].DurationHours != 1 {
		t.Fatalf("expected 1h duration, got %v", result[0].DurationHours)
	}
}

func TestIntersectFreeSlotsDisjointYieldsNothing(t *testing.T) {
	a := []entity.FreeSlot{{Interval: iv(t, 9, 0, 10, 0)}}
	b := []entity.FreeSlot{{Interval: iv(t, 10, 0, 11, 0)}}

	if result := IntersectFreeSlots(a, b); len(result) != 0 {
		t.Fatalf("touching slots must not intersect, got %v", result)
	}
}
