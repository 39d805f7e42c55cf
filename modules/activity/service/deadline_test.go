package service

import (
	"testing"
	"time"

	"go-activity-planner/modules/activity/entity"
)

var deadlineNow = time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

func TestComputeFlexibleDeadline(t *testing.T) {
	policy := &DeadlinePolicy{ResponseBufferHours: 24, FlexibleHours: 48}

	d := policy.Compute(nil, deadlineNow)

	if !d.Value.Equal(deadlineNow.Add(48 * time.Hour)) {
		t.Fatalf("flexible deadline = %v, want now+48h", d.Value)
	}
	if d.SourceActivityDate != nil {
		t.Fatal("flexible deadline must not carry a source date")
	}
}

func TestComputeDeadlineBeforeTarget(t *testing.T) {
	policy := &DeadlinePolicy{ResponseBufferHours: 24, FlexibleHours: 48}
	target := deadlineNow.Add(7 * 24 * time.Hour)

	d := policy.Compute(&target, deadlineNow)

	if !d.Value.Equal(target.Add(-24 * time.Hour)) {
		t.Fatalf("deadline = %v, want target-24h", d.Value)
	}
	if d.SourceActivityDate == nil || !d.SourceActivityDate.Equal(target) {
		t.Fatal("deadline must record its source date")
	}
}

func TestComputeImminentTargetClampsToNow(t *testing.T) {
	policy := &DeadlinePolicy{ResponseBufferHours: 24, FlexibleHours: 48}

	// Event in 6 hours: target-24h is in the past, so responses are due now
	target := deadlineNow.Add(6 * time.Hour)
	d := policy.Compute(&target, deadlineNow)

	if !d.Value.Equal(deadlineNow) {
		t.Fatalf("imminent deadline = %v, want now", d.Value)
	}
	if !IsPassed(d, deadlineNow) {
		t.Fatal("a deadline clamped to now counts as passed")
	}
}

func TestOverrideMustBeFuture(t *testing.T) {
	policy := &DeadlinePolicy{ResponseBufferHours: 24, FlexibleHours: 48}

	if _, err := policy.Override(deadlineNow.Add(-time.Hour), nil, deadlineNow); err == nil {
		t.Fatal("expected error for past override")
	}
	if _, err := policy.Override(deadlineNow, nil, deadlineNow); err == nil {
		t.Fatal("expected error for override equal to now")
	}

	target := deadlineNow.Add(48 * time.Hour)
	d, err := policy.Override(deadlineNow.Add(time.Hour), &target, deadlineNow)
	if err != nil {
		t.Fatalf("Override: %v", err)
	}
	if !d.Value.Equal(deadlineNow.Add(time.Hour)) {
		t.Fatalf("override value = %v", d.Value)
	}
}

func TestIsPassedBoundary(t *testing.T) {
	d := entity.Deadline{Value: deadlineNow}

	if IsPassed(d, deadlineNow.Add(-time.Second)) {
		t.Fatal("deadline must not be passed one second before")
	}
	if !IsPassed(d, deadlineNow) {
		t.Fatal("deadline is passed exactly at its value")
	}
	if !IsPassed(d, deadlineNow.Add(time.Second)) {
		t.Fatal("deadline is passed after its value")
	}
}

func TestRemainingText(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{"passed", 0, "Deadline passed"},
		{"negative", -2 * time.Hour, "Deadline passed"},
		{"under one hour rounds up", 30 * time.Minute, "1 hour left"},
		{"one hour exactly", time.Hour, "1 hour left"},
		{"partial hours ceil", 90 * time.Minute, "2 hours left"},
		{"just under a day", 23*time.Hour + 30*time.Minute, "24 hours left"},
		{"one day exactly", 24 * time.Hour, "1 day left"},
		{"partial days ceil", 25 * time.Hour, "2 days left"},
		{"many days", 6*24*time.Hour + time.Hour, "7 days left"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := entity.Deadline{Value: deadlineNow.Add(tc.remaining)}
			got := RemainingText(d, deadlineNow)
			if got != tc.want {
				t.Fatalf("RemainingText(%v) = %q, want %q", tc.remaining, got, tc.want)
			}
		})
	}
}
