package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"go-activity-planner/core/errors"
	"go-activity-planner/modules/calendar/entity"
)

// stubRepo keeps connections in memory, keyed by user and provider
type stubRepo struct {
	connections map[uuid.UUID][]entity.CalendarConnection
}

func newStubRepo() *stubRepo {
	return &stubRepo{connections: map[uuid.UUID][]entity.CalendarConnection{}}
}

func (r *stubRepo) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	conn.ID = uuid.New()
	r.connections[conn.UserID] = append(r.connections[conn.UserID], *conn)
	return conn, nil
}

func (r *stubRepo) GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	for i := range r.connections[userID] {
		if r.connections[userID][i].Provider == provider {
			return &r.connections[userID][i], nil
		}
	}
	return nil, nil
}

func (r *stubRepo) GetConnectionsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	return r.connections[userID], nil
}

func (r *stubRepo) GetConnectionsByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.CalendarConnection, error) {
	var all []entity.CalendarConnection
	for _, id := range userIDs {
		all = append(all, r.connections[id]...)
	}
	return all, nil
}

func (r *stubRepo) UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	for i := range r.connections[conn.UserID] {
		if r.connections[conn.UserID][i].Provider == conn.Provider {
			r.connections[conn.UserID][i] = *conn
		}
	}
	return nil
}

func (r *stubRepo) DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error {
	kept := r.connections[userID][:0]
	for _, c := range r.connections[userID] {
		if c.Provider != provider {
			kept = append(kept, c)
		}
	}
	r.connections[userID] = kept
	return nil
}

// recordingSync records every participant-flag update it receives
type recordingSync struct {
	calls []bool
}

func (s *recordingSync) SetCalendarConnected(ctx context.Context, userID uuid.UUID, connected bool) *errors.AppError {
	s.calls = append(s.calls, connected)
	return nil
}

func TestSaveGoogleConnectionSyncsParticipantFlag(t *testing.T) {
	sync := &recordingSync{}
	svc := NewCalendarService(newStubRepo(), sync)
	userID := uuid.New()

	expiry := time.Now().Add(time.Hour)
	if _, err := svc.SaveGoogleConnection(context.Background(), userID, "access", "refresh", expiry, "user@example.com"); err != nil {
		t.Fatalf("SaveGoogleConnection: %v", err)
	}
	if len(sync.calls) != 1 || !sync.calls[0] {
		t.Fatalf("expected one connected=true sync, got %v", sync.calls)
	}

	// Re-connecting updates the existing row and syncs again
	if _, err := svc.SaveGoogleConnection(context.Background(), userID, "access2", "", expiry, "user@example.com"); err != nil {
		t.Fatalf("SaveGoogleConnection update: %v", err)
	}
	if len(sync.calls) != 2 || !sync.calls[1] {
		t.Fatalf("expected a second connected=true sync, got %v", sync.calls)
	}
}

func TestDisconnectCalendarClearsParticipantFlagWhenLast(t *testing.T) {
	sync := &recordingSync{}
	svc := NewCalendarService(newStubRepo(), sync)
	userID := uuid.New()

	expiry := time.Now().Add(time.Hour)
	if _, err := svc.SaveGoogleConnection(context.Background(), userID, "access", "refresh", expiry, "user@example.com"); err != nil {
		t.Fatalf("SaveGoogleConnection: %v", err)
	}

	if err := svc.DisconnectCalendar(context.Background(), userID, entity.ProviderGoogle); err != nil {
		t.Fatalf("DisconnectCalendar: %v", err)
	}

	if len(sync.calls) != 2 || sync.calls[1] {
		t.Fatalf("expected a connected=false sync after the last disconnect, got %v", sync.calls)
	}
}

func TestCalendarServiceWithoutSync(t *testing.T) {
	svc := NewCalendarService(newStubRepo(), nil)
	userID := uuid.New()

	if _, err := svc.SaveGoogleConnection(context.Background(), userID, "access", "refresh", time.Now().Add(time.Hour), "user@example.com"); err != nil {
		t.Fatalf("SaveGoogleConnection without sync: %v", err)
	}
}
