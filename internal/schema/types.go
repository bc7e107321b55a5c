package schema

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a task type handled by the gateway.
type Kind string

const (
	// KindWeather produces a weather forecast artifact.
	KindWeather Kind = "weather"

	// KindActivities produces weather-aware activity recommendations.
	KindActivities Kind = "activities"

	// KindPlanner produces a day-by-day weekend plan.
	KindPlanner Kind = "planner"
)

// Kinds lists every registered task kind.
func Kinds() []Kind {
	return []Kind{KindWeather, KindActivities, KindPlanner}
}

// WeatherRequest is the inbound request shape for the weather agent.
type WeatherRequest struct {
	City  string   `json:"city"`
	Dates []string `json:"dates"`
}

// ActivitiesRequest is the inbound request shape for the activities agent.
// WeatherForecast is an opaque structured blob produced by the weather agent.
type ActivitiesRequest struct {
	Destination     string          `json:"destination"`
	Dates           []string        `json:"dates"`
	WeatherForecast json.RawMessage `json:"weather_forecast"`
	Interests       []string        `json:"interests"`
	Budget          string          `json:"budget"` // "low" | "medium" | "high"
	GroupSize       int             `json:"group_size"`
}

// PlannerRequest is the inbound request shape for the weekend planner agent.
type PlannerRequest struct {
	Destination     string          `json:"destination"`
	Dates           []string        `json:"dates"`
	WeatherForecast json.RawMessage `json:"weather_forecast"`
	ActivitiesList  json.RawMessage `json:"activities_list"`
}

// DailyWeather is a single day's entry in a forecast artifact.
type DailyWeather struct {
	Day           int    `json:"day"`
	Date          string `json:"date"`
	Condition     string `json:"condition"`
	HighTemp      int    `json:"highTemp"`
	LowTemp       int    `json:"lowTemp"`
	Precipitation int    `json:"precipitation"`
	Humidity      int    `json:"humidity"`
	WindSpeed     int    `json:"windSpeed"`
	Description   string `json:"description"`
}

// WeatherArtifact is the validated output of the weather agent.
// Field declaration order defines the deterministic serialization order.
type WeatherArtifact struct {
	Destination  string         `json:"destination"`
	Forecast     []DailyWeather `json:"forecast"`
	TravelAdvice string         `json:"travelAdvice"`
	BestDays     []int          `json:"bestDays"`
}

// Activity is a single recommendation in an activities artifact.
type Activity struct {
	Name               string `json:"name"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	DurationMinutes    int    `json:"duration_minutes"`
	EstimatedCost      int    `json:"estimated_cost"`
	WeatherAppropriate bool   `json:"weather_appropriate"`
	IndoorOutdoor      string `json:"indoor_outdoor"` // "indoor" | "outdoor" | "both"
	BestTime           string `json:"best_time"`
	Location           string `json:"location"`
}

// ActivitiesArtifact is the validated output of the activities agent.
type ActivitiesArtifact struct {
	Destination    string     `json:"destination"`
	Activities     []Activity `json:"activities"`
	WeatherSummary string     `json:"weather_summary"`
	PlanningTips   []string   `json:"planning_tips"`
}

// ScheduledActivity is one slot in a day plan's schedule.
type ScheduledActivity struct {
	Time            string `json:"time"`
	ActivityName    string `json:"activity_name"`
	Location        string `json:"location"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

// DayPlan is a single day in a weekend plan artifact.
type DayPlan struct {
	Date            string              `json:"date"`
	WeatherSummary  string              `json:"weather_summary"`
	Schedule        []ScheduledActivity `json:"schedule"`
	MealSuggestions []string            `json:"meal_suggestions"`
	BackupPlan      string              `json:"backup_plan"`
}

// PlannerArtifact is the validated output of the weekend planner agent.
type PlannerArtifact struct {
	Destination        string    `json:"destination"`
	Dates              []string  `json:"dates"`
	DayByDay           []DayPlan `json:"day_by_day"`
	TotalEstimatedCost int       `json:"total_estimated_cost"`
	PackingEssentials  []string  `json:"packing_essentials"`
	GeneralTips        []string  `json:"general_tips"`
	EmergencyContacts  string    `json:"emergency_contacts"`
}

// DecodeArtifact decodes schema-validated raw JSON into the typed artifact
// for kind, giving callers a value with a deterministic field order for
// re-serialization.
func DecodeArtifact(kind Kind, raw []byte) (any, error) {
	switch kind {
	case KindWeather:
		var a WeatherArtifact
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decoding weather artifact: %w", err)
		}
		return a, nil
	case KindActivities:
		var a ActivitiesArtifact
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decoding activities artifact: %w", err)
		}
		return a, nil
	case KindPlanner:
		var a PlannerArtifact
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decoding planner artifact: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}
