package dto

import (
	"go-activity-planner/modules/suggestion/entity"
)

// SuggestionsRequest asks for ranked scheduling suggestions for an activity.
// Forecasts are optional: weather data is supplied by the caller, never
// fetched here.
type SuggestionsRequest struct {
	StartDate string                 `json:"start_date"` // RFC3339
	EndDate   string                 `json:"end_date"`   // RFC3339
	Forecasts []entity.DailyForecast `json:"forecasts,omitempty"`
}

// SuggestionsResponse carries the ranked list plus group integration status
type SuggestionsResponse struct {
	ActivityID        string                        `json:"activity_id"`
	Suggestions       []entity.SchedulingSuggestion `json:"suggestions"`
	ConnectedCount    int                           `json:"connected_count"`
	NotIntegratedIDs  []string                      `json:"not_integrated_ids"`
	TotalParticipants int                           `json:"total_participants"`
}
