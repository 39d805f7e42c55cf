package dto

import (
	"time"

	"go-activity-planner/modules/activity/entity"
)

type CreateActivityRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ActivityType    string   `json:"activity_type"`
	TargetDate      string   `json:"target_date"` // RFC3339, empty = flexible
	DurationMinutes int      `json:"duration_minutes"`
	Participants    []string `json:"participants"`
}

type UpdateActivityRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ActivityType    string `json:"activity_type"`
	TargetDate      string `json:"target_date"`
	DurationMinutes int    `json:"duration_minutes"`
}

type OverrideDeadlineRequest struct {
	Deadline string `json:"deadline"` // RFC3339
}

type FinalizeRequest struct {
	StartTime string `json:"start_time"` // RFC3339
	EndTime   string `json:"end_time"`   // RFC3339
}

type ParticipantResponse struct {
	UserID               string `json:"user_id"`
	ActivityID           string `json:"activity_id"`
	Status               string `json:"status"`
	HasCalendarConnected bool   `json:"has_calendar_connected"`
}

type ActivityResponse struct {
	ID                 string                `json:"id"`
	HostID             string                `json:"host_id"`
	Title              string                `json:"title"`
	Description        string                `json:"description,omitempty"`
	Slug               string                `json:"slug"`
	ActivityType       string                `json:"activity_type"`
	TargetDate         *time.Time            `json:"target_date,omitempty"`
	DurationMinutes    int                   `json:"duration_minutes"`
	Status             string                `json:"status"`
	Timezone           string                `json:"timezone"`
	StartDate          *time.Time            `json:"start_date,omitempty"`
	EndDate            *time.Time            `json:"end_date,omitempty"`
	ResponseDeadline   *time.Time            `json:"response_deadline,omitempty"`
	DeadlineOverridden bool                  `json:"deadline_overridden"`
	Participants       []ParticipantResponse `json:"participants"`
	CreatedAt          time.Time             `json:"created_at"`
}

// DeadlineStatusResponse carries the deadline state the UI renders verbatim
type DeadlineStatusResponse struct {
	Deadline      time.Time  `json:"deadline"`
	SourceDate    *time.Time `json:"source_date,omitempty"`
	Overridden    bool       `json:"overridden"`
	Passed        bool       `json:"passed"`
	RemainingText string     `json:"remaining_text"`
}

func ToActivityResponse(a *entity.Activity, participants []entity.ActivityParticipant) *ActivityResponse {
	resp := &ActivityResponse{
		ID:                 a.ID.String(),
		HostID:             a.HostID.String(),
		Title:              a.Title,
		Slug:               a.Slug,
		ActivityType:       a.ActivityType,
		TargetDate:         a.TargetDate,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Timezone:           a.Timezone,
		StartDate:          a.StartDate,
		EndDate:            a.EndDate,
		ResponseDeadline:   a.ResponseDeadline,
		DeadlineOverridden: a.DeadlineOverridden,
		Participants:       make([]ParticipantResponse, 0, len(participants)),
		CreatedAt:          a.CreatedAt,
	}

	if a.Description != nil {
		resp.Description = *a.Description
	}

	for _, p := range participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			UserID:               p.UserID.String(),
			ActivityID:           p.ActivityID.String(),
			Status:               string(p.Status),
			HasCalendarConnected: p.HasCalendarConnected,
		})
	}

	return resp
}
