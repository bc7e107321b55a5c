package schema

// JSON Schema documents for each task kind. Request schemas gate what reaches
// the model; response schemas gate what leaves the gateway. Unknown extra
// fields are tolerated on requests (callers may attach routing metadata) but
// every declared field is type-checked.

const weatherRequestSchema = `{
  "type": "object",
  "required": ["city", "dates"],
  "properties": {
    "city": {"type": "string"},
    "dates": {"type": "array", "items": {"type": "string"}}
  }
}`

const weatherResponseSchema = `{
  "type": "object",
  "required": ["destination", "forecast", "travelAdvice", "bestDays"],
  "properties": {
    "destination": {"type": "string"},
    "forecast": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["day", "date", "condition", "highTemp", "lowTemp", "precipitation", "humidity", "windSpeed", "description"],
        "properties": {
          "day": {"type": "integer"},
          "date": {"type": "string"},
          "condition": {"type": "string"},
          "highTemp": {"type": "integer"},
          "lowTemp": {"type": "integer"},
          "precipitation": {"type": "integer"},
          "humidity": {"type": "integer"},
          "windSpeed": {"type": "integer"},
          "description": {"type": "string"}
        }
      }
    },
    "travelAdvice": {"type": "string"},
    "bestDays": {"type": "array", "items": {"type": "integer"}}
  }
}`

const activitiesRequestSchema = `{
  "type": "object",
  "required": ["destination", "dates", "weather_forecast", "interests", "budget", "group_size"],
  "properties": {
    "destination": {"type": "string"},
    "dates": {"type": "array", "items": {"type": "string"}},
    "weather_forecast": {"type": "object"},
    "interests": {"type": "array", "items": {"type": "string"}},
    "budget": {"type": "string", "enum": ["low", "medium", "high"]},
    "group_size": {"type": "integer", "minimum": 1}
  }
}`

const activitiesResponseSchema = `{
  "type": "object",
  "required": ["destination", "activities", "weather_summary", "planning_tips"],
  "properties": {
    "destination": {"type": "string"},
    "activities": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "category", "description", "duration_minutes", "estimated_cost", "weather_appropriate", "indoor_outdoor", "best_time", "location"],
        "properties": {
          "name": {"type": "string"},
          "category": {"type": "string"},
          "description": {"type": "string"},
          "duration_minutes": {"type": "integer"},
          "estimated_cost": {"type": "integer"},
          "weather_appropriate": {"type": "boolean"},
          "indoor_outdoor": {"type": "string", "enum": ["indoor", "outdoor", "both"]},
          "best_time": {"type": "string"},
          "location": {"type": "string"}
        }
      }
    },
    "weather_summary": {"type": "string"},
    "planning_tips": {"type": "array", "items": {"type": "string"}}
  }
}`

const plannerRequestSchema = `{
  "type": "object",
  "required": ["destination", "dates", "weather_forecast", "activities_list"],
  "properties": {
    "destination": {"type": "string"},
    "dates": {"type": "array", "items": {"type": "string"}},
    "weather_forecast": {"type": "object"},
    "activities_list": {"type": "object"}
  }
}`

const plannerResponseSchema = `{
  "type": "object",
  "required": ["destination", "dates", "day_by_day", "total_estimated_cost", "packing_essentials", "general_tips", "emergency_contacts"],
  "properties": {
    "destination": {"type": "string"},
    "dates": {"type": "array", "items": {"type": "string"}},
    "day_by_day": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["date", "weather_summary", "schedule", "meal_suggestions", "backup_plan"],
        "properties": {
          "date": {"type": "string"},
          "weather_summary": {"type": "string"},
          "schedule": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["time", "activity_name", "location", "duration_minutes", "notes"],
              "properties": {
                "time": {"type": "string"},
                "activity_name": {"type": "string"},
                "location": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "notes": {"type": "string"}
              }
            }
          },
          "meal_suggestions": {"type": "array", "items": {"type": "string"}},
          "backup_plan": {"type": "string"}
        }
      }
    },
    "total_estimated_cost": {"type": "integer"},
    "packing_essentials": {"type": "array", "items": {"type": "string"}},
    "general_tips": {"type": "array", "items": {"type": "string"}},
    "emergency_contacts": {"type": "string"}
  }
}`

// Literal expected-format examples returned inside InvalidRequest envelopes.
// These match the sample documents published in each agent's card.
const (
	weatherExpectedFormat = `{
  "city": "string",
  "dates": ["YYYY-MM-DD", "..."]
}`

	activitiesExpectedFormat = `{
  "destination": "string",
  "dates": ["YYYY-MM-DD"],
  "weather_forecast": "object",
  "interests": ["string"],
  "budget": "low|medium|high",
  "group_size": "number"
}`

	plannerExpectedFormat = `{
  "destination": "string",
  "dates": ["YYYY-MM-DD"],
  "weather_forecast": "object",
  "activities_list": "object"
}`
)
