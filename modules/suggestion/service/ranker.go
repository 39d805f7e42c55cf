package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"go-activity-planner/core/config"
	"go-activity-planner/core/constants"
	activityentity "go-activity-planner/modules/activity/entity"
	availentity "go-activity-planner/modules/availability/entity"
	"go-activity-planner/modules/suggestion/entity"
)

const (
	maxAvailabilityPoints   = 40
	maxWeatherPoints        = 25
	maxTimePreferencePoints = 20
	maxDayPreferencePoints  = 15

	neutralWeatherPoints    = 12
	extremeTemperatureCap   = 8
	timePreferenceBaseline  = 8
	nearWindowPoints        = 14
	weekendNonLeisurePoints = 11
	weekdayPoints           = 7

	confidenceFloor = 0.3
	keyFactorShare  = 0.6
)

// hour-affinity window per activity type, half-open on the end hour
type preferenceWindow struct {
	startHour int
	endHour   int
}

var preferenceWindows = map[string]preferenceWindow{
	activityentity.ActivityTypeDining:  {18, 21},
	activityentity.ActivityTypeSports:  {9, 12},
	activityentity.ActivityTypeSocial:  {19, 22},
	activityentity.ActivityTypeOutdoor: {10, 17},
	activityentity.ActivityTypeCulture: {14, 19},
}

var leisureTypes = map[string]bool{
	activityentity.ActivityTypeDining:  true,
	activityentity.ActivityTypeSocial:  true,
	activityentity.ActivityTypeOutdoor: true,
	activityentity.ActivityTypeCulture: true,
}

// Ranker scores and orders candidate slots for an activity. Pure: same
// inputs always produce the same ranking.
type Ranker struct {
	MaxSuggestions int
}

func NewRanker() *Ranker {
	r := &Ranker{MaxSuggestions: 5}
	if cfg, ok := config.GetSafe(); ok && cfg.Engine.MaxSuggestions > 0 {
		r.MaxSuggestions = cfg.Engine.MaxSuggestions
	}
	return r
}

// Rank produces up to MaxSuggestions ranked suggestions from the given free
// slots. Each candidate is anchored at its slot's start, truncated to the
// required duration. Forecasts are keyed by YYYY-MM-DD; a missing date falls
// back to the neutral weather default rather than failing.
func (r *Ranker) Rank(freeSlots []availentity.FreeSlot, activityType string, durationHours float64, forecasts []entity.DailyForecast) []entity.SchedulingSuggestion {
	if durationHours <= 0 {
		return nil
	}

	byDate := make(map[string]entity.DailyForecast, len(forecasts))
	for _, f := range forecasts {
		byDate[f.Date] = f
	}

	suggestions := make([]entity.SchedulingSuggestion, 0, len(freeSlots))
	for _, slot := range freeSlots {
		if slot.DurationHours < durationHours {
			continue
		}

		start := slot.Start
		end := start.Add(time.Duration(durationHours * float64(time.Hour)))

		forecast, hasForecast := byDate[start.Format(constants.DateLayout)]
		breakdown := entity.ScoreBreakdown{
			Availability:   availabilityPoints(slot.DurationHours, durationHours),
			Weather:        weatherPoints(forecast, hasForecast),
			TimePreference: timePreferencePoints(activityType, start),
			DayPreference:  dayPreferencePoints(activityType, start),
		}

		confidence := float64(breakdown.Total()) / 100

		factors := keyFactors(breakdown)
		suggestions = append(suggestions, entity.SchedulingSuggestion{
			Start:           start,
			End:             end,
			DurationHours:   durationHours,
			TimeOfDay:       timeOfDay(start),
			ConfidenceScore: confidence,
			Reasoning:       reasoning(start, factors),
			KeyFactors:      factors,
			ScoreBreakdown:  breakdown,
			LowConfidence:   confidence < confidenceFloor,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].ConfidenceScore != suggestions[j].ConfidenceScore {
			return suggestions[i].ConfidenceScore > suggestions[j].ConfidenceScore
		}
		return suggestions[i].Start.Before(suggestions[j].Start)
	})

	if len(suggestions) > r.MaxSuggestions {
		suggestions = suggestions[:r.MaxSuggestions]
	}
	return suggestions
}

// availabilityPoints grows linearly with the slot's margin beyond the
// required duration, saturating once the slot is twice the requirement.
func availabilityPoints(slotHours, requiredHours float64) int {
	margin := (slotHours - requiredHours) / requiredHours
	if margin > 1 {
		margin = 1
	}
	if margin < 0 {
		margin = 0
	}
	return int(math.Round(maxAvailabilityPoints * margin))
}

func weatherPoints(f entity.DailyForecast, hasForecast bool) int {
	if !hasForecast {
		return neutralWeatherPoints
	}

	var points int
	switch f.Condition {
	case entity.ConditionClear, entity.ConditionMild:
		points = maxWeatherPoints
	case entity.ConditionPartlyCloudy:
		points = 20
	case entity.ConditionCloudy:
		points = 16
	case entity.ConditionLightRain:
		points = 8
	case entity.ConditionHeavyRain, entity.ConditionStorm, entity.ConditionSnow:
		points = 3
	default:
		points = neutralWeatherPoints
	}

	if f.TemperatureC < 0 || f.TemperatureC > 35 {
		if points > extremeTemperatureCap {
			points = extremeTemperatureCap
		}
	}
	return points
}

func timePreferencePoints(activityType string, start time.Time) int {
	window, ok := preferenceWindows[activityType]
	if !ok {
		return timePreferenceBaseline
	}

	hour := start.Hour()
	if hour >= window.startHour && hour < window.endHour {
		return maxTimePreferencePoints
	}
	if hour >= window.startHour-2 && hour < window.endHour+2 {
		return nearWindowPoints
	}
	return timePreferenceBaseline
}

func dayPreferencePoints(activityType string, start time.Time) int {
	weekday := start.Weekday()
	if weekday != time.Saturday && weekday != time.Sunday {
		return weekdayPoints
	}
	if leisureTypes[activityType] {
		return maxDayPreferencePoints
	}
	return weekendNonLeisurePoints
}

func timeOfDay(start time.Time) entity.TimeOfDay {
	hour := start.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return entity.TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return entity.TimeOfDayAfternoon
	case hour >= 17 && hour < 22:
		return entity.TimeOfDayEvening
	default:
		return entity.TimeOfDayNight
	}
}

// keyFactors names the components contributing at least 60% of their max,
// in fixed breakdown order.
func keyFactors(b entity.ScoreBreakdown) []string {
	factors := make([]string, 0, 4)
	if float64(b.Availability) >= keyFactorShare*maxAvailabilityPoints {
		factors = append(factors, "ample free-slot coverage")
	}
	if float64(b.Weather) >= keyFactorShare*maxWeatherPoints {
		factors = append(factors, "favorable weather")
	}
	if float64(b.TimePreference) >= keyFactorShare*maxTimePreferencePoints {
		factors = append(factors, "preferred time of day")
	}
	if float64(b.DayPreference) >= keyFactorShare*maxDayPreferencePoints {
		factors = append(factors, "weekend timing")
	}
	return factors
}

func reasoning(start time.Time, factors []string) string {
	dayPart := strings.ToLower(string(timeOfDay(start)))
	prefix := start.Weekday().String() + " " + dayPart

	if len(factors) == 0 {
		return prefix + " with no standout factors"
	}
	if len(factors) == 1 {
		return prefix + " with " + factors[0]
	}
	return prefix + " with " + strings.Join(factors[:len(factors)-1], ", ") + " and " + factors[len(factors)-1]
}
