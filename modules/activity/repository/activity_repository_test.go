package repository

import (
	"reflect"
	"testing"

	"github.com/jmoiron/sqlx/reflectx"

	"go-activity-planner/modules/activity/entity"
)

// The read queries use SELECT * against tables whose rows carry every one
// of these columns; sqlx's StructScan fails the whole query when a result
// column has no destination field, so each must stay mapped on the entity.
func TestActivityScanMapping(t *testing.T) {
	mapper := reflectx.NewMapper("db")
	fields := mapper.TypeMap(reflect.TypeOf(entity.Activity{}))

	columns := []string{
		"id", "host_id", "title", "description", "slug", "activity_type",
		"target_date", "duration_minutes", "status", "timezone",
		"start_date", "end_date", "response_deadline", "deadline_overridden",
		"deleted_at", "created_at", "updated_at",
	}
	for _, col := range columns {
		if _, ok := fields.Names[col]; !ok {
			t.Fatalf("activities column %q has no destination field on entity.Activity", col)
		}
	}
}

func TestActivityParticipantScanMapping(t *testing.T) {
	mapper := reflectx.NewMapper("db")
	fields := mapper.TypeMap(reflect.TypeOf(entity.ActivityParticipant{}))

	columns := []string{
		"user_id", "activity_id", "status", "has_calendar_connected",
		"responded_at", "created_at",
	}
	for _, col := range columns {
		if _, ok := fields.Names[col]; !ok {
			t.Fatalf("activity_participants column %q has no destination field on entity.ActivityParticipant", col)
		}
	}
}
