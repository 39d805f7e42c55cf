package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-activity-planner/core/logger"
	"go-activity-planner/modules/availability/dto"
)

// RefreshFunc fetches and computes a fresh availability result. It must
// honor ctx cancellation.
type RefreshFunc func(ctx context.Context) (*dto.AvailabilityResult, error)

// Refresher serializes availability refreshes for one consumer. Only the
// most recent request may commit its result: when a new refresh is issued
// before a prior one resolves, the prior result is discarded on arrival so
// a slow, stale response never clobbers fresher state.
type Refresher struct {
	load RefreshFunc

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
	latest *dto.AvailabilityResult

	inFlight atomic.Bool

	pollStop chan struct{}
	stopped  bool
}

func NewRefresher(load RefreshFunc) *Refresher {
	return &Refresher{load: load}
}

// Refresh runs one fetch-and-commit cycle. It blocks until the fetch
// resolves; callers wanting asynchrony run it in a goroutine. A result is
// committed only if no newer refresh started in the meantime.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return context.Canceled
	}

	// Supersede any in-flight request
	if r.cancel != nil {
		r.cancel()
	}
	r.token++
	token := r.token

	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	result, err := r.load(fetchCtx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.token || r.stopped {
		// Superseded; drop silently
		return nil
	}

	if err != nil {
		if fetchCtx.Err() != nil {
			return nil
		}
		logger.Error("Refresher:Refresh:FetchFailed", "error", err)
		r.latest = &dto.AvailabilityResult{Kind: dto.ResultFetchFailed}
		return err
	}

	r.latest = result
	return nil
}

// Latest returns the most recently committed result, nil before the first
// successful refresh
func (r *Refresher) Latest() *dto.AvailabilityResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// StartPolling refreshes on a fixed interval. A tick that fires while a
// prior refresh is still in flight is skipped, never queued.
func (r *Refresher) StartPolling(interval time.Duration) {
	r.mu.Lock()
	if r.stopped || r.pollStop != nil {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.pollStop = stop
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !r.inFlight.CompareAndSwap(false, true) {
					logger.Debug("Refresher:Poll:SkipTick")
					continue
				}
				go func() {
					defer r.inFlight.Store(false)
					_ = r.Refresh(context.Background())
				}()
			}
		}
	}()
}

// Stop cancels any in-flight request and stops polling. Idempotent; after
// Stop no late result can mutate state.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	r.stopped = true

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.pollStop != nil {
		close(r.pollStop)
		r.pollStop = nil
	}
}
