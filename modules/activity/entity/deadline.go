package entity

import "time"

// Deadline is the latest instant by which invitees must respond.
// SourceActivityDate is nil for flexible-date activities, in which case the
// deadline is anchored to "now" rather than to an event date.
type Deadline struct {
	Value              time.Time  `json:"value"`
	SourceActivityDate *time.Time `json:"source_activity_date,omitempty"`
}
