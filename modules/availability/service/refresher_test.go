package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-activity-planner/modules/availability/dto"
	"go-activity-planner/modules/availability/entity"
)

func resultWithScore(score int) *dto.AvailabilityResult {
	return &dto.AvailabilityResult{
		Kind:   dto.ResultOK,
		Report: &entity.AvailabilityReport{AvailabilityScore: score},
	}
}

func TestRefresherCommitsResult(t *testing.T) {
	r := NewRefresher(func(ctx context.Context) (*dto.AvailabilityResult, error) {
		return resultWithScore(80), nil
	})

	if r.Latest() != nil {
		t.Fatal("Latest must be nil before the first refresh")
	}
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got := r.Latest()
	if got == nil || got.Report.AvailabilityScore != 80 {
		t.Fatalf("expected committed result with score 80, got %+v", got)
	}
}

func TestRefresherStaleResultDropped(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	r := NewRefresher(func(ctx context.Context) (*dto.AvailabilityResult, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstStarted)
			<-release // resolve only after the second refresh committed
			return resultWithScore(10), nil
		}
		return resultWithScore(90), nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.Refresh(context.Background())
	}()

	<-firstStarted
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}

	close(release)
	wg.Wait()

	got := r.Latest()
	if got == nil || got.Report.AvailabilityScore != 90 {
		t.Fatalf("stale first result clobbered the newer one: %+v", got)
	}
}

func TestRefresherFetchFailure(t *testing.T) {
	r := NewRefresher(func(ctx context.Context) (*dto.AvailabilityResult, error) {
		return nil, context.DeadlineExceeded
	})

	if err := r.Refresh(context.Background()); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
	got := r.Latest()
	if got == nil || got.Kind != dto.ResultFetchFailed {
		t.Fatalf("expected fetch_failed result, got %+v", got)
	}
}

func TestRefresherPollingSkipsTickWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	r := NewRefresher(func(ctx context.Context) (*dto.AvailabilityResult, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return resultWithScore(50), nil
	})

	r.StartPolling(20 * time.Millisecond)
	time.Sleep(150 * time.Millisecond) // several ticks fire while the first fetch hangs
	close(release)
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	mu.Lock()
	defer mu.Unlock()
	if calls > 5 {
		t.Fatalf("ticks queued behind an in-flight refresh: %d calls", calls)
	}
	if calls < 1 {
		t.Fatal("polling never fired")
	}
}

func TestRefresherStopIsIdempotentAndFinal(t *testing.T) {
	r := NewRefresher(func(ctx context.Context) (*dto.AvailabilityResult, error) {
		return resultWithScore(70), nil
	})

	r.Stop()
	r.Stop()

	if err := r.Refresh(context.Background()); err != context.Canceled {
		t.Fatalf("Refresh after Stop must return context.Canceled, got %v", err)
	}
	if r.Latest() != nil {
		t.Fatal("no result may commit after Stop")
	}
}
