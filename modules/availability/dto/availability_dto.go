package dto

import (
	"go-activity-planner/modules/availability/entity"
)

// Result kinds for an availability query. Calendar absence is "no data",
// never "fully free"; a fetch failure is distinct from "integrated but
// empty" so callers can offer retry.
const (
	ResultOK            = "ok"
	ResultNotIntegrated = "not_integrated"
	ResultFetchFailed   = "fetch_failed"
)

// AvailabilityResult is the tagged variant returned for a report query
type AvailabilityResult struct {
	Kind   string                     `json:"kind"`
	Report *entity.AvailabilityReport `json:"report,omitempty"`
}

// BusyEventDTO mirrors entity.BusyEvent with string timestamps for binding
type BusyEventDTO struct {
	Title string `json:"title"`
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`   // RFC3339
}

// ReportRequest asks for an availability report over a range
type ReportRequest struct {
	StartDate string `json:"start_date"` // RFC3339
	EndDate   string `json:"end_date"`   // RFC3339
	// BusyEvents lets callers supply already-fetched busy data instead of
	// going through the calendar integration
	BusyEvents []BusyEventDTO `json:"busy_events,omitempty"`
}

// GroupFreeSlotsRequest asks for intersected free slots for several users
type GroupFreeSlotsRequest struct {
	UserIDs   []string `json:"user_ids"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

// GroupFreeSlotsResponse carries intersected slots and integration status
type GroupFreeSlotsResponse struct {
	FreeSlots         []entity.FreeSlot `json:"free_slots"`
	ConnectedCount    int               `json:"connected_count"`
	NotIntegratedIDs  []string          `json:"not_integrated_ids"`
	TotalParticipants int               `json:"total_participants"`
}

// CheckSlotRequest asks whether a candidate window is free
type CheckSlotRequest struct {
	Start         string  `json:"start"` // RFC3339
	DurationHours float64 `json:"duration_hours"`
	StartDate     string  `json:"start_date"` // query window start, RFC3339
	EndDate       string  `json:"end_date"`   // query window end, RFC3339
}

// CheckSlotResponse answers a slot-fit query with conflict explanations
type CheckSlotResponse struct {
	Free      bool               `json:"free"`
	Conflicts []entity.BusyEvent `json:"conflicts"`
}
