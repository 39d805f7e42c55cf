package entity

import "time"

// TimeOfDay buckets a suggestion's start hour for display.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "MORNING"
	TimeOfDayAfternoon TimeOfDay = "AFTERNOON"
	TimeOfDayEvening   TimeOfDay = "EVENING"
	TimeOfDayNight     TimeOfDay = "NIGHT"
)

// Weather condition classes accepted from the forecast supplier.
const (
	ConditionClear        = "clear"
	ConditionMild         = "mild"
	ConditionPartlyCloudy = "partly_cloudy"
	ConditionCloudy       = "cloudy"
	ConditionLightRain    = "light_rain"
	ConditionHeavyRain    = "heavy_rain"
	ConditionStorm        = "storm"
	ConditionSnow         = "snow"
)

// DailyForecast is one date's weather record as supplied by the caller.
// The engine never fetches weather itself.
type DailyForecast struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	Condition       string  `json:"condition"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	TemperatureC    float64 `json:"temperature_c"`
}

// ScoreBreakdown holds the four scoring components. Integer points so the
// sum equals round(ConfidenceScore*100) exactly.
type ScoreBreakdown struct {
	Availability   int `json:"availability"`    // 0..40
	Weather        int `json:"weather"`         // 0..25
	TimePreference int `json:"time_preference"` // 0..20
	DayPreference  int `json:"day_preference"`  // 0..15
}

func (b ScoreBreakdown) Total() int {
	return b.Availability + b.Weather + b.TimePreference + b.DayPreference
}

// SchedulingSuggestion is one ranked start/end candidate for an activity.
type SchedulingSuggestion struct {
	Start           time.Time      `json:"start"`
	End             time.Time      `json:"end"`
	DurationHours   float64        `json:"duration_hours"`
	TimeOfDay       TimeOfDay      `json:"time_of_day"`
	ConfidenceScore float64        `json:"confidence_score"`
	Reasoning       string         `json:"reasoning"`
	KeyFactors      []string       `json:"key_factors"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown"`
	LowConfidence   bool           `json:"low_confidence"`
}
