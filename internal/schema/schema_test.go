package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func asSchemaError(t *testing.T, err error) *Error {
	t.Helper()
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *schema.Error, got %T: %v", err, err)
	}
	return serr
}

func TestValidateRequestWeather(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name     string
		body     string
		wantKind ErrorKind // "" means valid
		wantField string
	}{
		{
			name: "valid",
			body: `{"city":"Tokyo","dates":["2025-10-20"]}`,
		},
		{
			name:      "missing city",
			body:      `{"dates":["2025-10-20"]}`,
			wantKind:  MissingField,
			wantField: "city",
		},
		{
			name:      "dates wrong type",
			body:      `{"city":"Tokyo","dates":"2025-10-20"}`,
			wantKind:  WrongType,
			wantField: "dates",
		},
		{
			name:      "null dates rejected",
			body:      `{"city":"Tokyo","dates":null}`,
			wantKind:  WrongType,
			wantField: "dates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateRequest(KindWeather, []byte(tt.body))
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			serr := asSchemaError(t, err)
			if serr.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", serr.Kind, tt.wantKind)
			}
			if serr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", serr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateRequestActivities(t *testing.T) {
	r := newTestRegistry(t)

	valid := `{
		"destination": "Tokyo",
		"dates": ["2025-10-20", "2025-10-21"],
		"weather_forecast": {"forecast": [{"condition": "Sunny", "highTemp": 75}]},
		"interests": ["culture", "food"],
		"budget": "medium",
		"group_size": 2
	}`
	if err := r.ValidateRequest(KindActivities, []byte(valid)); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	t.Run("budget outside enum", func(t *testing.T) {
		body := `{
			"destination": "Tokyo",
			"dates": ["2025-10-20"],
			"weather_forecast": {},
			"interests": ["food"],
			"budget": "extreme",
			"group_size": 2
		}`
		serr := asSchemaError(t, r.ValidateRequest(KindActivities, []byte(body)))
		if serr.Kind != InvalidEnumValue {
			t.Errorf("kind = %s, want %s", serr.Kind, InvalidEnumValue)
		}
		if serr.Field != "budget" {
			t.Errorf("field = %q, want %q", serr.Field, "budget")
		}
	})

	t.Run("missing group_size", func(t *testing.T) {
		body := `{
			"destination": "Tokyo",
			"dates": ["2025-10-20"],
			"weather_forecast": {},
			"interests": ["food"],
			"budget": "low"
		}`
		serr := asSchemaError(t, r.ValidateRequest(KindActivities, []byte(body)))
		if serr.Kind != MissingField {
			t.Errorf("kind = %s, want %s", serr.Kind, MissingField)
		}
		if serr.Field != "group_size" {
			t.Errorf("field = %q, want %q", serr.Field, "group_size")
		}
	})

	t.Run("zero group_size", func(t *testing.T) {
		body := `{
			"destination": "Tokyo",
			"dates": ["2025-10-20"],
			"weather_forecast": {},
			"interests": ["food"],
			"budget": "low",
			"group_size": 0
		}`
		serr := asSchemaError(t, r.ValidateRequest(KindActivities, []byte(body)))
		if serr.Kind != WrongType {
			t.Errorf("kind = %s, want %s", serr.Kind, WrongType)
		}
	})
}

func TestValidateResponseActivities(t *testing.T) {
	r := newTestRegistry(t)

	artifact := ActivitiesArtifact{
		Destination: "Tokyo",
		Activities: []Activity{{
			Name:               "Senso-ji Temple",
			Category:           "Cultural",
			Description:        "Historic temple in Asakusa",
			DurationMinutes:    90,
			EstimatedCost:      0,
			WeatherAppropriate: true,
			IndoorOutdoor:      "outdoor",
			BestTime:           "Morning",
			Location:           "Asakusa",
		}},
		WeatherSummary: "Sunny and mild",
		PlanningTips:   []string{"Arrive early to avoid crowds"},
	}
	raw, err := json.Marshal(artifact)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ValidateResponse(KindActivities, raw); err != nil {
		t.Fatalf("valid artifact rejected: %v", err)
	}

	t.Run("empty activity list rejected", func(t *testing.T) {
		empty := artifact
		empty.Activities = []Activity{}
		raw, _ := json.Marshal(empty)
		serr := asSchemaError(t, r.ValidateResponse(KindActivities, raw))
		if serr.Kind != WrongType {
			t.Errorf("kind = %s, want %s (minItems folds into WrongType)", serr.Kind, WrongType)
		}
	})

	t.Run("invalid indoor_outdoor", func(t *testing.T) {
		bad := artifact
		bad.Activities = []Activity{artifact.Activities[0]}
		bad.Activities[0].IndoorOutdoor = "underground"
		raw, _ := json.Marshal(bad)
		serr := asSchemaError(t, r.ValidateResponse(KindActivities, raw))
		if serr.Kind != InvalidEnumValue {
			t.Errorf("kind = %s, want %s", serr.Kind, InvalidEnumValue)
		}
	})
}

// Round-trip: an artifact that validates still validates after
// serialize/parse and is field-for-field equal.
func TestArtifactRoundTrip(t *testing.T) {
	r := newTestRegistry(t)

	original := WeatherArtifact{
		Destination: "Tokyo",
		Forecast: []DailyWeather{{
			Day:           1,
			Date:          "Oct 20",
			Condition:     "Sunny",
			HighTemp:      72,
			LowTemp:       58,
			Precipitation: 10,
			Humidity:      45,
			WindSpeed:     8,
			Description:   "Clear skies, pleasant for sightseeing",
		}},
		TravelAdvice: "Pack light layers and comfortable shoes.",
		BestDays:     []int{1},
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ValidateResponse(KindWeather, raw); err != nil {
		t.Fatalf("artifact invalid before round-trip: %v", err)
	}

	var decoded WeatherArtifact
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	reRaw, err := json.Marshal(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ValidateResponse(KindWeather, reRaw); err != nil {
		t.Fatalf("artifact invalid after round-trip: %v", err)
	}
	if string(raw) != string(reRaw) {
		t.Errorf("round-trip not byte-identical:\n%s\n%s", raw, reRaw)
	}
}

func TestValidatePlannerResponse(t *testing.T) {
	r := newTestRegistry(t)

	artifact := PlannerArtifact{
		Destination: "San Francisco",
		Dates:       []string{"2025-10-20", "2025-10-21"},
		DayByDay: []DayPlan{{
			Date:           "Saturday, Oct 20",
			WeatherSummary: "Sunny, 72°F high",
			Schedule: []ScheduledActivity{{
				Time:            "9:00 AM - 11:00 AM",
				ActivityName:    "Golden Gate Bridge",
				Location:        "Presidio",
				DurationMinutes: 120,
				Notes:           "Bring a windbreaker",
			}},
			MealSuggestions: []string{"Brunch at the Ferry Building"},
			BackupPlan:      "If foggy, visit the de Young Museum",
		}},
		TotalEstimatedCost: 250,
		PackingEssentials:  []string{"Layers", "Walking shoes"},
		GeneralTips:        []string{"Book dinner reservations ahead"},
		EmergencyContacts:  "Local emergency: 911",
	}
	raw, err := json.Marshal(artifact)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ValidateResponse(KindPlanner, raw); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}

	t.Run("missing nested field", func(t *testing.T) {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatal(err)
		}
		day := m["day_by_day"].([]any)[0].(map[string]any)
		delete(day, "backup_plan")
		broken, _ := json.Marshal(m)
		serr := asSchemaError(t, r.ValidateResponse(KindPlanner, broken))
		if serr.Kind != MissingField {
			t.Errorf("kind = %s, want %s", serr.Kind, MissingField)
		}
		if serr.Field != "day_by_day.0.backup_plan" {
			t.Errorf("field = %q, want %q", serr.Field, "day_by_day.0.backup_plan")
		}
	})
}

func TestUnknownKind(t *testing.T) {
	r := newTestRegistry(t)
	err := r.ValidateRequest(Kind("karaoke"), []byte(`{}`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if got := r.ExpectedFormat(Kind("karaoke")); got != "" {
		t.Errorf("expected empty example for unknown kind, got %q", got)
	}
}
