package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-activity-planner/core/cache"
	"go-activity-planner/core/config"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/logger"
	availentity "go-activity-planner/modules/availability/entity"
	"go-activity-planner/modules/calendar/dto"
	"go-activity-planner/modules/calendar/entity"
	"go-activity-planner/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"
	googleFreeBusyAPI     = googleCalendarAPIBase + "/freeBusy"
)

type CalendarService interface {
	// Connection management
	SaveGoogleConnection(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time, email string) (*entity.CalendarConnection, error)
	GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.CalendarConnectionResponse, error)
	DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) error

	// Busy-interval supply for the availability engine
	GetBusyEvents(ctx context.Context, userID uuid.UUID, startTime, endTime time.Time) ([]availentity.BusyEvent, *errors.AppError)
	GetBusyForUsers(ctx context.Context, userIDs []uuid.UUID, startTime, endTime time.Time) ([]dto.UserBusy, []uuid.UUID, *errors.AppError)
}

// ParticipantFlagSync propagates calendar connect/disconnect into the
// participant rows of existing activities
type ParticipantFlagSync interface {
	SetCalendarConnected(ctx context.Context, userID uuid.UUID, connected bool) *errors.AppError
}

type calendarService struct {
	repo         repository.CalendarRepository
	participants ParticipantFlagSync
	httpClient   *http.Client
}

func NewCalendarService(repo repository.CalendarRepository, participants ParticipantFlagSync) CalendarService {
	return &calendarService{
		repo:         repo,
		participants: participants,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// syncParticipantFlag is best-effort: the connection change itself has
// already been persisted
func (s *calendarService) syncParticipantFlag(ctx context.Context, userID uuid.UUID, connected bool) {
	if s.participants == nil {
		return
	}
	if appErr := s.participants.SetCalendarConnected(ctx, userID, connected); appErr != nil {
		logger.Warn("CalendarService:syncParticipantFlag:Failed", "user_id", userID, "error", appErr)
	}
}

// SaveGoogleConnection saves or updates a Google Calendar connection
func (s *calendarService) SaveGoogleConnection(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time, email string) (*entity.CalendarConnection, error) {
	existing, _ := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)

	if existing != nil {
		existing.AccessToken = accessToken
		if refreshToken != "" {
			existing.RefreshToken = refreshToken
		}
		existing.TokenExpiresAt = expiresAt
		existing.CalendarEmail = email
		existing.IsActive = true

		if err := s.repo.UpdateConnection(ctx, existing); err != nil {
			return nil, err
		}
		s.syncParticipantFlag(ctx, userID, true)
		return existing, nil
	}

	conn := &entity.CalendarConnection{
		UserID:         userID,
		Provider:       entity.ProviderGoogle,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		TokenExpiresAt: expiresAt,
		CalendarEmail:  email,
		IsActive:       true,
	}

	created, err := s.repo.CreateConnection(ctx, conn)
	if err != nil {
		return nil, err
	}
	s.syncParticipantFlag(ctx, userID, true)
	return created, nil
}

// GetConnections returns all calendar connections for a user
func (s *calendarService) GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.CalendarConnectionResponse, error) {
	connections, err := s.repo.GetConnectionsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CalendarConnectionResponse, 0, len(connections))
	for _, conn := range connections {
		result = append(result, dto.CalendarConnectionResponse{
			ID:            conn.ID.String(),
			Provider:      conn.Provider,
			CalendarEmail: conn.CalendarEmail,
			IsActive:      conn.IsActive,
			ConnectedAt:   conn.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// DisconnectCalendar disconnects a calendar provider. The participant flag
// is cleared only when no connection remains for the user.
func (s *calendarService) DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) error {
	if err := s.repo.DeleteConnection(ctx, userID, provider); err != nil {
		return err
	}

	remaining, err := s.repo.GetConnectionsByUserID(ctx, userID)
	if err != nil {
		logger.Warn("CalendarService:DisconnectCalendar:LookupFailed", "user_id", userID, "error", err)
		return nil
	}
	if len(remaining) == 0 {
		s.syncParticipantFlag(ctx, userID, false)
	}
	return nil
}

// GetBusyEvents fetches busy intervals for one user. A missing connection
// is reported as ErrNotIntegrated, never as an empty (fully free) list.
func (s *calendarService) GetBusyEvents(ctx context.Context, userID uuid.UUID, startTime, endTime time.Time) ([]availentity.BusyEvent, *errors.AppError) {
	conn, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up calendar connection", err)
	}
	if conn == nil {
		return nil, errors.NewAppError(errors.ErrNotIntegrated, "Chưa kết nối Google Calendar", nil)
	}

	busy, appErr := s.fetchBusy(ctx, conn, startTime, endTime)
	if appErr != nil {
		return nil, appErr
	}
	return busy, nil
}

// GetBusyForUsers fetches busy intervals for multiple users, reporting
// which users have no calendar integration separately so callers can
// distinguish "no data" from "fully free"
func (s *calendarService) GetBusyForUsers(ctx context.Context, userIDs []uuid.UUID, startTime, endTime time.Time) ([]dto.UserBusy, []uuid.UUID, *errors.AppError) {
	logger.Info("CalendarService:GetBusyForUsers:Start", "user_count", len(userIDs), "start", startTime, "end", endTime)

	connections, err := s.repo.GetConnectionsByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up calendar connections", err)
	}

	connected := make(map[uuid.UUID]bool, len(connections))
	results := make([]dto.UserBusy, 0, len(connections))

	for i := range connections {
		conn := &connections[i]
		connected[conn.UserID] = true

		busy, appErr := s.fetchBusy(ctx, conn, startTime, endTime)
		if appErr != nil {
			logger.Error("CalendarService:GetBusyForUsers:FetchError", "user_id", conn.UserID, "error", appErr)
			return nil, nil, appErr
		}

		results = append(results, dto.UserBusy{
			UserID: conn.UserID,
			Email:  conn.CalendarEmail,
			Busy:   busy,
		})
	}

	var notIntegrated []uuid.UUID
	for _, id := range userIDs {
		if !connected[id] {
			notIntegrated = append(notIntegrated, id)
		}
	}

	logger.Info("CalendarService:GetBusyForUsers:Complete",
		"connected", len(results),
		"not_integrated", len(notIntegrated),
	)
	return results, notIntegrated, nil
}

// fetchBusy goes through the redis cache, refreshing the OAuth token when
// needed, and parses the FreeBusy response into engine busy events
func (s *calendarService) fetchBusy(ctx context.Context, conn *entity.CalendarConnection, startTime, endTime time.Time) ([]availentity.BusyEvent, *errors.AppError) {
	cacheKey := fmt.Sprintf("freebusy:%s:%d:%d", conn.UserID, startTime.Unix(), endTime.Unix())

	var cached []availentity.BusyEvent
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	accessToken, err := s.ensureValidToken(ctx, conn)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrFetchFailed, "Failed to refresh calendar token", err)
	}

	busy, err := s.callGoogleFreeBusy(ctx, accessToken, conn.CalendarEmail, startTime, endTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrFetchFailed, "Failed to fetch calendar busy data", err)
	}

	cfg, ok := config.GetSafe()
	ttl := 120 * time.Second
	if ok {
		ttl = time.Duration(cfg.Engine.FreeBusyCacheSeconds) * time.Second
	}
	if err := cache.SetJSON(ctx, cacheKey, busy, ttl); err != nil {
		logger.Warn("CalendarService:fetchBusy:CacheSetError", "error", err)
	}

	return busy, nil
}

// ensureValidToken refreshes the access token via the oauth2 token source
// when it is within 5 minutes of expiry
func (s *calendarService) ensureValidToken(ctx context.Context, conn *entity.CalendarConnection) (string, error) {
	if time.Now().Before(conn.TokenExpiresAt.Add(-5 * time.Minute)) {
		return conn.AccessToken, nil
	}

	logger.Info("CalendarService:ensureValidToken:RefreshingToken", "user_id", conn.UserID)

	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("config not initialized")
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiresAt,
	})

	token, err := tokenSource.Token()
	if err != nil {
		logger.Error("CalendarService:ensureValidToken:RefreshError", "user_id", conn.UserID, "error", err)
		return "", err
	}

	conn.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		conn.RefreshToken = token.RefreshToken
	}
	conn.TokenExpiresAt = token.Expiry

	if err := s.repo.UpdateConnection(ctx, conn); err != nil {
		logger.Error("CalendarService:ensureValidToken:UpdateError", "error", err)
	}

	return token.AccessToken, nil
}

// callGoogleFreeBusy calls the Google Calendar FreeBusy API
func (s *calendarService) callGoogleFreeBusy(ctx context.Context, accessToken, email string, startTime, endTime time.Time) ([]availentity.BusyEvent, error) {
	payload := map[string]any{
		"timeMin": startTime.Format(time.RFC3339),
		"timeMax": endTime.Format(time.RFC3339),
		"items": []map[string]string{
			{"id": email},
		},
	}

	payloadJSON, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleFreeBusyAPI, strings.NewReader(string(payloadJSON)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Google FreeBusy API error: %s", string(body))
	}

	var result struct {
		Calendars map[string]struct {
			Busy []struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var busyEvents []availentity.BusyEvent
	if cal, ok := result.Calendars[email]; ok {
		for _, b := range cal.Busy {
			start, err1 := time.Parse(time.RFC3339, b.Start)
			end, err2 := time.Parse(time.RFC3339, b.End)
			if err1 != nil || err2 != nil || !start.Before(end) {
				continue
			}

			// FreeBusy reports opaque intervals without titles
			busyEvents = append(busyEvents, availentity.BusyEvent{
				Interval: availentity.Interval{Start: start, End: end},
				Title:    "Busy",
			})
		}
	}

	return busyEvents, nil
}
