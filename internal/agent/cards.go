package agent

import "github.com/planora/planora/internal/schema"

const cardVersion = "1.0.0"

func textModes() []string { return []string{"text"} }

// Weather describes the forecast agent. publicURL is advertised verbatim in
// the card; pass "" when no public base URL is configured.
func Weather(publicURL string) Descriptor {
	return Descriptor{
		Name: "weather",
		Kind: schema.KindWeather,
		Card: Card{
			Name:               "Weather Agent",
			Description:        "Provides weather forecasts and packing advice for travelers",
			URL:                publicURL,
			Version:            cardVersion,
			DefaultInputModes:  textModes(),
			DefaultOutputModes: textModes(),
			Capabilities:       Capabilities{Streaming: true},
			Skills: []Skill{{
				ID:          "weather_agent",
				Name:        "Weather Forecast Agent",
				Description: "Provides weather forecasts and travel weather advice. Expects JSON input with city and dates fields.",
				Tags:        []string{"travel", "weather", "forecast", "climate"},
				Examples: []string{
					`{"city": "Tokyo", "dates": ["2025-10-20", "2025-10-21", "2025-10-22"]}`,
					`{"city": "Paris", "dates": ["2025-11-15", "2025-11-16"]}`,
					`{"city": "New York", "dates": ["2025-12-01", "2025-12-02", "2025-12-03", "2025-12-04", "2025-12-05"]}`,
				},
			}},
		},
	}
}

// Activities describes the recommendation agent.
func Activities(publicURL string) Descriptor {
	return Descriptor{
		Name: "activities",
		Kind: schema.KindActivities,
		Card: Card{
			Name:               "Activities Agent",
			Description:        "Suggests activities based on weather and user preferences",
			URL:                publicURL,
			Version:            cardVersion,
			DefaultInputModes:  textModes(),
			DefaultOutputModes: textModes(),
			Capabilities:       Capabilities{Streaming: true},
			Skills: []Skill{{
				ID:          "activities_agent",
				Name:        "Activities Recommendation Agent",
				Description: "Suggests activities based on weather forecasts and user preferences. Expects JSON input with destination, dates, weather_forecast, interests, budget, and group_size fields.",
				Tags:        []string{"travel", "activities", "recommendations", "weather-aware"},
				Examples: []string{
					`{"destination": "Tokyo", "dates": ["2025-10-20", "2025-10-21"], "weather_forecast": {"forecast": [{"condition": "Sunny", "highTemp": 75}]}, "interests": ["culture", "food"], "budget": "medium", "group_size": 2}`,
					`{"destination": "Paris", "dates": ["2025-11-15", "2025-11-16"], "weather_forecast": {"forecast": [{"condition": "Rainy", "highTemp": 55}]}, "interests": ["art", "history"], "budget": "high", "group_size": 4}`,
					`{"destination": "San Francisco", "dates": ["2025-12-01", "2025-12-02"], "weather_forecast": {"forecast": [{"condition": "Cloudy", "highTemp": 60}]}, "interests": ["outdoor", "adventure"], "budget": "low", "group_size": 1}`,
				},
			}},
		},
	}
}

// Planner describes the weekend planner agent.
func Planner(publicURL string) Descriptor {
	return Descriptor{
		Name: "planner",
		Kind: schema.KindPlanner,
		Card: Card{
			Name:               "Weekend Planner Agent",
			Description:        "Creates comprehensive weekend itineraries from weather and activity data",
			URL:                publicURL,
			Version:            cardVersion,
			DefaultInputModes:  textModes(),
			DefaultOutputModes: textModes(),
			Capabilities:       Capabilities{Streaming: true},
			Skills: []Skill{{
				ID:          "weekend_planner_agent",
				Name:        "Weekend Planner Agent",
				Description: "Synthesizes weather and activities into comprehensive weekend plans. Expects JSON input with destination, dates, weather_forecast, and activities_list fields.",
				Tags:        []string{"travel", "planning", "itinerary", "scheduling"},
				Examples: []string{
					`{"destination": "San Francisco", "dates": ["2025-10-20", "2025-10-21"], "weather_forecast": {"forecast": [{"day": 1, "condition": "Sunny", "highTemp": 72}]}, "activities_list": {"activities": [{"name": "Golden Gate Bridge", "duration_minutes": 120}]}}`,
					`{"destination": "New York", "dates": ["2025-11-15", "2025-11-16"], "weather_forecast": {"forecast": [{"day": 1, "condition": "Cloudy", "highTemp": 55}]}, "activities_list": {"activities": [{"name": "Central Park", "duration_minutes": 180}]}}`,
					`{"destination": "Seattle", "dates": ["2025-12-01", "2025-12-02"], "weather_forecast": {"forecast": [{"day": 1, "condition": "Rainy", "highTemp": 50}]}, "activities_list": {"activities": [{"name": "Pike Place Market", "duration_minutes": 90}]}}`,
				},
			}},
		},
	}
}
