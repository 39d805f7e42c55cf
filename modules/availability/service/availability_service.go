package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-activity-planner/core/config"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/logger"
	"go-activity-planner/modules/availability/dto"
	"go-activity-planner/modules/availability/entity"
	calsvc "go-activity-planner/modules/calendar/service"

	"github.com/google/uuid"
)

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	GetReport(ctx context.Context, userID uuid.UUID, start, end time.Time) (*dto.AvailabilityResult, *errors.AppError)
	WatchReport(ctx context.Context, userID uuid.UUID, start, end time.Time) (*dto.AvailabilityResult, *errors.AppError)
	BuildReportFromBusy(start, end time.Time, busy []entity.BusyEvent) (*dto.AvailabilityResult, *errors.AppError)
	GetGroupFreeSlots(ctx context.Context, userIDs []uuid.UUID, start, end time.Time) (*dto.GroupFreeSlotsResponse, *errors.AppError)
	CheckSlot(ctx context.Context, userID uuid.UUID, candidate entity.Candidate, start, end time.Time) (*dto.CheckSlotResponse, *errors.AppError)
	NewReportRefresher(userID uuid.UUID, start, end time.Time) *Refresher
}

// AvailabilityService turns calendar busy data into reports, free slots and
// slot-fit answers. All computation is synchronous and pure; the only
// asynchrony lives in the Refresher.
type AvailabilityService struct {
	calendarService calsvc.CalendarService
	computer        *FreeSlotComputer

	mu       sync.Mutex
	watchers map[string]*Refresher
}

func NewAvailabilityService(calendarService calsvc.CalendarService) AvailabilityServiceInterface {
	computer := NewFreeSlotComputer()
	if cfg, ok := config.GetSafe(); ok && cfg.Engine.MinSlotDurationHours > 0 {
		computer.MinSlotHours = cfg.Engine.MinSlotDurationHours
	}

	return &AvailabilityService{
		calendarService: calendarService,
		computer:        computer,
		watchers:        make(map[string]*Refresher),
	}
}

// GetReport fetches busy data for one user and computes the availability
// report. A user without calendar integration yields the not_integrated
// variant; a fetch failure yields fetch_failed so the caller can retry.
func (s *AvailabilityService) GetReport(ctx context.Context, userID uuid.UUID, start, end time.Time) (*dto.AvailabilityResult, *errors.AppError) {
	busy, appErr := s.calendarService.GetBusyEvents(ctx, userID, start, end)
	if appErr != nil {
		switch appErr.Code {
		case errors.ErrNotIntegrated:
			return &dto.AvailabilityResult{Kind: dto.ResultNotIntegrated}, nil
		case errors.ErrFetchFailed:
			logger.Warn("AvailabilityService:GetReport:FetchFailed", "user_id", userID, "error", appErr)
			return &dto.AvailabilityResult{Kind: dto.ResultFetchFailed}, nil
		default:
			return nil, appErr
		}
	}

	return s.BuildReportFromBusy(start, end, busy)
}

// BuildReportFromBusy computes a report from already-fetched busy data
func (s *AvailabilityService) BuildReportFromBusy(start, end time.Time, busy []entity.BusyEvent) (*dto.AvailabilityResult, *errors.AppError) {
	freeSlots, err := s.computer.Compute(start, end, busy)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date range", err)
	}

	report, err := BuildReport(start, end, busy, freeSlots)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date range", err)
	}

	return &dto.AvailabilityResult{Kind: dto.ResultOK, Report: report}, nil
}

// GetGroupFreeSlots computes the strict intersection of participants' free
// slots. Participants without calendar integration contribute no data and
// are reported separately; they do not silently count as fully free.
func (s *AvailabilityService) GetGroupFreeSlots(ctx context.Context, userIDs []uuid.UUID, start, end time.Time) (*dto.GroupFreeSlotsResponse, *errors.AppError) {
	busyData, notIntegrated, appErr := s.calendarService.GetBusyForUsers(ctx, userIDs, start, end)
	if appErr != nil {
		return nil, appErr
	}

	notIntegratedIDs := make([]string, 0, len(notIntegrated))
	for _, id := range notIntegrated {
		notIntegratedIDs = append(notIntegratedIDs, id.String())
	}

	response := &dto.GroupFreeSlotsResponse{
		FreeSlots:         []entity.FreeSlot{},
		ConnectedCount:    len(busyData),
		NotIntegratedIDs:  notIntegratedIDs,
		TotalParticipants: len(userIDs),
	}

	if len(busyData) == 0 {
		return response, nil
	}

	var group []entity.FreeSlot
	for i, userBusy := range busyData {
		slots, err := s.computer.Compute(start, end, userBusy.Busy)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date range", err)
		}

		if i == 0 {
			group = slots
		} else {
			group = IntersectFreeSlots(group, slots)
		}
	}

	// Re-filter: intersection can produce fragments below the minimum
	filtered := make([]entity.FreeSlot, 0, len(group))
	for _, slot := range group {
		if slot.DurationHours >= s.computer.MinSlotHours {
			filtered = append(filtered, slot)
		}
	}

	response.FreeSlots = filtered

	logger.Info("AvailabilityService:GetGroupFreeSlots:Complete",
		"participants", len(userIDs),
		"connected", len(busyData),
		"group_slots", len(filtered),
	)
	return response, nil
}

// CheckSlot answers whether the candidate window is free for the user and,
// when it is not, which busy events conflict with it
func (s *AvailabilityService) CheckSlot(ctx context.Context, userID uuid.UUID, candidate entity.Candidate, start, end time.Time) (*dto.CheckSlotResponse, *errors.AppError) {
	busy, appErr := s.calendarService.GetBusyEvents(ctx, userID, start, end)
	if appErr != nil {
		return nil, appErr
	}

	freeSlots, err := s.computer.Compute(start, end, busy)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date range", err)
	}

	free, err := IsFree(candidate, freeSlots)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid candidate window", err)
	}

	conflicts, err := Conflicts(candidate, busy)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid candidate window", err)
	}
	if conflicts == nil {
		conflicts = []entity.BusyEvent{}
	}

	return &dto.CheckSlotResponse{Free: free, Conflicts: conflicts}, nil
}

// WatchReport serves the report for one (user, range) from an
// auto-refreshing cache. The first call creates a refresher, fetches
// synchronously and starts its polling loop at the configured interval;
// later calls return the most recently committed result.
func (s *AvailabilityService) WatchReport(ctx context.Context, userID uuid.UUID, start, end time.Time) (*dto.AvailabilityResult, *errors.AppError) {
	key := fmt.Sprintf("%s:%d:%d", userID, start.Unix(), end.Unix())

	s.mu.Lock()
	watcher, ok := s.watchers[key]
	if !ok {
		watcher = s.NewReportRefresher(userID, start, end)
		s.watchers[key] = watcher
	}
	s.mu.Unlock()

	if watcher.Latest() == nil {
		if err := watcher.Refresh(ctx); err != nil {
			logger.Warn("AvailabilityService:WatchReport:InitialRefreshFailed", "user_id", userID, "error", err)
		}
		// StartPolling is idempotent, a concurrent first caller is harmless
		watcher.StartPolling(autoRefreshInterval())
	}

	latest := watcher.Latest()
	if latest == nil {
		return &dto.AvailabilityResult{Kind: dto.ResultFetchFailed}, nil
	}
	return latest, nil
}

// autoRefreshInterval is the polling period for watched reports
func autoRefreshInterval() time.Duration {
	if cfg, ok := config.GetSafe(); ok && cfg.Engine.AutoRefreshSeconds > 0 {
		return time.Duration(cfg.Engine.AutoRefreshSeconds) * time.Second
	}
	return 30 * time.Second
}

// NewReportRefresher builds a Refresher bound to one (user, range) query
func (s *AvailabilityService) NewReportRefresher(userID uuid.UUID, start, end time.Time) *Refresher {
	return NewRefresher(func(ctx context.Context) (*dto.AvailabilityResult, error) {
		result, appErr := s.GetReport(ctx, userID, start, end)
		if appErr != nil {
			return nil, appErr
		}
		return result, nil
	})
}
