package service

import (
	"context"
	"testing"
	"time"

	"go-activity-planner/core/errors"
	"go-activity-planner/modules/availability/dto"
	availentity "go-activity-planner/modules/availability/entity"
	caldto "go-activity-planner/modules/calendar/dto"
	calentity "go-activity-planner/modules/calendar/entity"

	"github.com/google/uuid"
)

// stubCalendar serves canned busy data per user, marking users without an
// entry as not integrated
type stubCalendar struct {
	busyByUser map[uuid.UUID][]availentity.BusyEvent
	fetchErr   *errors.AppError
	busyCalls  int
}

func (s *stubCalendar) SaveGoogleConnection(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time, email string) (*calentity.CalendarConnection, error) {
	return nil, nil
}

func (s *stubCalendar) GetConnections(ctx context.Context, userID uuid.UUID) ([]caldto.CalendarConnectionResponse, error) {
	return nil, nil
}

func (s *stubCalendar) DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) error {
	return nil
}

func (s *stubCalendar) GetBusyEvents(ctx context.Context, userID uuid.UUID, startTime, endTime time.Time) ([]availentity.BusyEvent, *errors.AppError) {
	s.busyCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	busy, ok := s.busyByUser[userID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotIntegrated, "Chưa kết nối Google Calendar", nil)
	}
	return busy, nil
}

func (s *stubCalendar) GetBusyForUsers(ctx context.Context, userIDs []uuid.UUID, startTime, endTime time.Time) ([]caldto.UserBusy, []uuid.UUID, *errors.AppError) {
	if s.fetchErr != nil {
		return nil, nil, s.fetchErr
	}
	var results []caldto.UserBusy
	var notIntegrated []uuid.UUID
	for _, id := range userIDs {
		if busy, ok := s.busyByUser[id]; ok {
			results = append(results, caldto.UserBusy{UserID: id, Busy: busy})
		} else {
			notIntegrated = append(notIntegrated, id)
		}
	}
	return results, notIntegrated, nil
}

func TestGetGroupFreeSlotsIntersectsParticipants(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	svc := NewAvailabilityService(&stubCalendar{
		busyByUser: map[uuid.UUID][]availentity.BusyEvent{
			alice: {{Interval: iv(t, 9, 0, 12, 0)}},  // free 12:00-17:00
			bob:   {{Interval: iv(t, 14, 0, 17, 0)}}, // free 09:00-14:00
		},
	})

	resp, appErr := svc.GetGroupFreeSlots(context.Background(), []uuid.UUID{alice, bob}, at(t, 9, 0), at(t, 17, 0))
	if appErr != nil {
		t.Fatalf("GetGroupFreeSlots: %v", appErr)
	}

	if resp.ConnectedCount != 2 || resp.TotalParticipants != 2 {
		t.Fatalf("expected 2/2 connected, got %d/%d", resp.ConnectedCount, resp.TotalParticipants)
	}
	if len(resp.FreeSlots) != 1 {
		t.Fatalf("expected 1 shared slot, got %v", resp.FreeSlots)
	}
	slot := resp.FreeSlots[0]
	if !slot.Start.Equal(at(t, 12, 0)) || !slot.End.Equal(at(t, 14, 0)) {
		t.Fatalf("shared slot = %v, want 12:00-14:00", slot.Interval)
	}
}

func TestGetGroupFreeSlotsReportsNotIntegrated(t *testing.T) {
	alice := uuid.New()
	ghost := uuid.New()

	svc := NewAvailabilityService(&stubCalendar{
		busyByUser: map[uuid.UUID][]availentity.BusyEvent{
			alice: {},
		},
	})

	resp, appErr := svc.GetGroupFreeSlots(context.Background(), []uuid.UUID{alice, ghost}, at(t, 9, 0), at(t, 17, 0))
	if appErr != nil {
		t.Fatalf("GetGroupFreeSlots: %v", appErr)
	}

	if resp.ConnectedCount != 1 {
		t.Fatalf("expected 1 connected, got %d", resp.ConnectedCount)
	}
	if len(resp.NotIntegratedIDs) != 1 || resp.NotIntegratedIDs[0] != ghost.String() {
		t.Fatalf("expected ghost reported as not integrated, got %v", resp.NotIntegratedIDs)
	}
	// The disconnected user contributes no data; slots come from alice alone
	if len(resp.FreeSlots) != 1 {
		t.Fatalf("expected alice's free range, got %v", resp.FreeSlots)
	}
}

func TestGetGroupFreeSlotsNoConnectedUsers(t *testing.T) {
	svc := NewAvailabilityService(&stubCalendar{busyByUser: map[uuid.UUID][]availentity.BusyEvent{}})

	resp, appErr := svc.GetGroupFreeSlots(context.Background(), []uuid.UUID{uuid.New()}, at(t, 9, 0), at(t, 17, 0))
	if appErr != nil {
		t.Fatalf("GetGroupFreeSlots: %v", appErr)
	}
	if len(resp.FreeSlots) != 0 || resp.ConnectedCount != 0 {
		t.Fatalf("expected empty response, got %+v", resp)
	}
}

func TestGetReportMapsCalendarOutcomes(t *testing.T) {
	userID := uuid.New()

	t.Run("not integrated", func(t *testing.T) {
		svc := NewAvailabilityService(&stubCalendar{busyByUser: map[uuid.UUID][]availentity.BusyEvent{}})
		result, appErr := svc.GetReport(context.Background(), userID, at(t, 9, 0), at(t, 17, 0))
		if appErr != nil {
			t.Fatalf("GetReport: %v", appErr)
		}
		if result.Kind != dto.ResultNotIntegrated {
			t.Fatalf("expected not_integrated, got %s", result.Kind)
		}
	})

	t.Run("fetch failed", func(t *testing.T) {
		svc := NewAvailabilityService(&stubCalendar{
			fetchErr: errors.NewAppError(errors.ErrFetchFailed, "Failed to fetch calendar busy data", nil),
		})
		result, appErr := svc.GetReport(context.Background(), userID, at(t, 9, 0), at(t, 17, 0))
		if appErr != nil {
			t.Fatalf("GetReport: %v", appErr)
		}
		if result.Kind != dto.ResultFetchFailed {
			t.Fatalf("expected fetch_failed, got %s", result.Kind)
		}
	})

	t.Run("ok", func(t *testing.T) {
		svc := NewAvailabilityService(&stubCalendar{
			busyByUser: map[uuid.UUID][]availentity.BusyEvent{
				userID: {{Interval: iv(t, 9, 0, 13, 0)}},
			},
		})
		result, appErr := svc.GetReport(context.Background(), userID, at(t, 9, 0), at(t, 17, 0))
		if appErr != nil {
			t.Fatalf("GetReport: %v", appErr)
		}
		if result.Kind != dto.ResultOK || result.Report == nil {
			t.Fatalf("expected ok result with report, got %+v", result)
		}
		if result.Report.AvailabilityScore != 50 {
			t.Fatalf("expected score 50, got %d", result.Report.AvailabilityScore)
		}
	})
}

func TestCheckSlotReportsConflicts(t *testing.T) {
	userID := uuid.New()
	svc := NewAvailabilityService(&stubCalendar{
		busyByUser: map[uuid.UUID][]availentity.BusyEvent{
			userID: {{Interval: iv(t, 13, 0, 15, 0), Title: "Họp nhóm"}},
		},
	})

	resp, appErr := svc.CheckSlot(context.Background(), userID,
		availentity.Candidate{Start: at(t, 14, 0), DurationHours: 2},
		at(t, 9, 0), at(t, 17, 0))
	if appErr != nil {
		t.Fatalf("CheckSlot: %v", appErr)
	}
	if resp.Free {
		t.Fatal("candidate overlapping a meeting must not be free")
	}
	if len(resp.Conflicts) != 1 || resp.Conflicts[0].Title != "Họp nhóm" {
		t.Fatalf("expected the meeting as conflict, got %v", resp.Conflicts)
	}
}

func TestWatchReportCachesRefresher(t *testing.T) {
	userID := uuid.New()
	stub := &stubCalendar{
		busyByUser: map[uuid.UUID][]availentity.BusyEvent{
			userID: {{Interval: iv(t, 9, 0, 13, 0)}},
		},
	}
	svc := NewAvailabilityService(stub)

	result, appErr := svc.WatchReport(context.Background(), userID, at(t, 9, 0), at(t, 17, 0))
	if appErr != nil {
		t.Fatalf("WatchReport: %v", appErr)
	}
	if result.Kind != dto.ResultOK || result.Report == nil {
		t.Fatalf("expected ok result with report, got %+v", result)
	}
	if stub.busyCalls != 1 {
		t.Fatalf("expected one calendar fetch, got %d", stub.busyCalls)
	}

	// A second call within the polling interval serves the cached snapshot.
	again, appErr := svc.WatchReport(context.Background(), userID, at(t, 9, 0), at(t, 17, 0))
	if appErr != nil {
		t.Fatalf("WatchReport (cached): %v", appErr)
	}
	if again.Kind != dto.ResultOK {
		t.Fatalf("expected cached ok result, got %+v", again)
	}
	if stub.busyCalls != 1 {
		t.Fatalf("cached call must not refetch, got %d fetches", stub.busyCalls)
	}
}

func TestWatchReportFetchFailure(t *testing.T) {
	stub := &stubCalendar{
		fetchErr: errors.NewAppError(errors.ErrFetchFailed, "Failed to fetch calendar busy data", nil),
	}
	svc := NewAvailabilityService(stub)

	result, appErr := svc.WatchReport(context.Background(), uuid.New(), at(t, 9, 0), at(t, 17, 0))
	if appErr != nil {
		t.Fatalf("WatchReport: %v", appErr)
	}
	if result.Kind != dto.ResultFetchFailed {
		t.Fatalf("expected fetch_failed, got %s", result.Kind)
	}
}

func TestAutoRefreshIntervalDefault(t *testing.T) {
	if got := autoRefreshInterval(); got != 30*time.Second {
		t.Fatalf("expected 30s default interval, got %s", got)
	}
}
