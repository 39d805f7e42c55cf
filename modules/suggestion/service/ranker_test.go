package service

import (
	"math"
	"testing"
	"time"

	activityentity "go-activity-planner/modules/activity/entity"
	availentity "go-activity-planner/modules/availability/entity"
	"go-activity-planner/modules/suggestion/entity"
)

// March 14 2026 is a Saturday
func slotAt(day, hour int, durationHours float64) availentity.FreeSlot {
	start := time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
	return availentity.FreeSlot{
		Interval: availentity.Interval{
			Start: start,
			End:   start.Add(time.Duration(durationHours * float64(time.Hour))),
		},
		DurationHours: durationHours,
		Type:          availentity.SlotBetweenEvents,
	}
}

func forecast(day int, condition string, tempC float64) entity.DailyForecast {
	return entity.DailyForecast{
		Date:         time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		Condition:    condition,
		TemperatureC: tempC,
	}
}

func TestRankBreakdownSumsToConfidence(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(14, 18, 4)},
		activityentity.ActivityTypeDining,
		2,
		[]entity.DailyForecast{forecast(14, entity.ConditionClear, 22)},
	)

	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}

	s := suggestions[0]
	total := s.ScoreBreakdown.Total()
	if got := int(math.Round(s.ConfidenceScore * 100)); got != total {
		t.Fatalf("confidence*100 = %d does not match breakdown total %d", got, total)
	}
	sum := s.ScoreBreakdown.Availability + s.ScoreBreakdown.Weather +
		s.ScoreBreakdown.TimePreference + s.ScoreBreakdown.DayPreference
	if sum != total {
		t.Fatalf("breakdown components sum to %d, Total() says %d", sum, total)
	}
}

func TestRankSaturdayEveningDiningScoresMaximum(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	// 4h slot for a 2h dinner: full availability margin, clear weather,
	// in the dining window, weekend leisure day
	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(14, 18, 4)},
		activityentity.ActivityTypeDining,
		2,
		[]entity.DailyForecast{forecast(14, entity.ConditionClear, 22)},
	)

	s := suggestions[0]
	if s.ScoreBreakdown.Availability != 40 ||
		s.ScoreBreakdown.Weather != 25 ||
		s.ScoreBreakdown.TimePreference != 20 ||
		s.ScoreBreakdown.DayPreference != 15 {
		t.Fatalf("expected a perfect breakdown, got %+v", s.ScoreBreakdown)
	}
	if s.ConfidenceScore != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", s.ConfidenceScore)
	}
	if s.TimeOfDay != entity.TimeOfDayEvening {
		t.Fatalf("expected EVENING, got %s", s.TimeOfDay)
	}
	if s.Reasoning != "Saturday evening with ample free-slot coverage, favorable weather, preferred time of day and weekend timing" {
		t.Fatalf("unexpected reasoning: %q", s.Reasoning)
	}
}

func TestRankClearOutranksHeavyRain(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	// Identical slots on consecutive Saturdays, weather is the only difference
	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(14, 18, 4), slotAt(21, 18, 4)},
		activityentity.ActivityTypeDining,
		2,
		[]entity.DailyForecast{
			forecast(14, entity.ConditionHeavyRain, 15),
			forecast(21, entity.ConditionClear, 20),
		},
	)

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Start.Day() != 21 {
		t.Fatalf("clear day must rank first, got day %d", suggestions[0].Start.Day())
	}
	if suggestions[0].ScoreBreakdown.Weather != 25 || suggestions[1].ScoreBreakdown.Weather != 3 {
		t.Fatalf("weather points wrong: %d vs %d",
			suggestions[0].ScoreBreakdown.Weather, suggestions[1].ScoreBreakdown.Weather)
	}
}

func TestRankExtremeTemperatureCapsWeather(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(14, 18, 4)},
		activityentity.ActivityTypeDining,
		2,
		[]entity.DailyForecast{forecast(14, entity.ConditionClear, 38)},
	)

	if suggestions[0].ScoreBreakdown.Weather != 8 {
		t.Fatalf("extreme heat must cap weather at 8, got %d", suggestions[0].ScoreBreakdown.Weather)
	}
}

func TestRankMissingForecastUsesNeutralWeather(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(14, 18, 4)},
		activityentity.ActivityTypeDining,
		2,
		nil,
	)

	if suggestions[0].ScoreBreakdown.Weather != 12 {
		t.Fatalf("missing forecast must score neutral 12, got %d", suggestions[0].ScoreBreakdown.Weather)
	}
}

func TestRankTieBreaksByEarlierStart(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	// Same day, same duration, both inside the dining window: identical scores
	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(14, 19, 4), slotAt(14, 18, 4)},
		activityentity.ActivityTypeDining,
		2,
		nil,
	)

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].ConfidenceScore != suggestions[1].ConfidenceScore {
		t.Fatalf("expected a tie, got %v vs %v",
			suggestions[0].ConfidenceScore, suggestions[1].ConfidenceScore)
	}
	if suggestions[0].Start.Hour() != 18 {
		t.Fatalf("tie must break to the earlier start, got %d:00", suggestions[0].Start.Hour())
	}
}

func TestRankSkipsSlotsShorterThanDuration(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(14, 18, 1)},
		activityentity.ActivityTypeDining,
		2,
		nil,
	)

	if len(suggestions) != 0 {
		t.Fatalf("a 1h slot cannot host a 2h activity, got %v", suggestions)
	}
}

func TestRankLowConfidenceFlaggedNotDropped(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	// Tuesday 3am, zero margin, storm: weak on every component
	suggestions := r.Rank(
		[]availentity.FreeSlot{slotAt(17, 3, 2)},
		activityentity.ActivityTypeDining,
		2,
		[]entity.DailyForecast{forecast(17, entity.ConditionStorm, 10)},
	)

	if len(suggestions) != 1 {
		t.Fatalf("low-confidence suggestions must be returned, got %d", len(suggestions))
	}
	s := suggestions[0]
	if !s.LowConfidence {
		t.Fatalf("expected low-confidence flag at %v", s.ConfidenceScore)
	}
	if s.ConfidenceScore >= 0.3 {
		t.Fatalf("expected confidence below 0.3, got %v", s.ConfidenceScore)
	}
}

func TestRankCapsAtMaxSuggestions(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}

	slots := make([]availentity.FreeSlot, 0, 8)
	for day := 9; day < 17; day++ {
		slots = append(slots, slotAt(day, 18, 4))
	}

	suggestions := r.Rank(slots, activityentity.ActivityTypeDining, 2, nil)

	if len(suggestions) != 5 {
		t.Fatalf("expected 5 suggestions, got %d", len(suggestions))
	}
}

func TestRankRejectsNonPositiveDuration(t *testing.T) {
	r := &Ranker{MaxSuggestions: 5}
	if got := r.Rank([]availentity.FreeSlot{slotAt(14, 18, 4)}, activityentity.ActivityTypeDining, 0, nil); got != nil {
		t.Fatalf("expected nil for zero duration, got %v", got)
	}
}
