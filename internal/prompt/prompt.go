// Package prompt renders validated requests into model instructions.
//
// Compose is a pure function: a fixed system preamble per task kind (the
// output contract, stated as a literal example plus behavioral guidance) and
// a user instruction interpolating the request's fields as plain text. Only
// schema-validated requests reach this package, so no unvalidated caller
// input is ever interpolated into a prompt.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/planora/planora/internal/schema"
)

// Prompt is a composed model instruction.
type Prompt struct {
	System      string // fixed per-kind preamble
	Instruction string // rendered from the validated request
}

// Compose renders the validated raw request for kind. The raw document must
// already have passed schema validation; Compose only fails on an unknown
// kind or a document that does not decode into the kind's request type.
func Compose(kind schema.Kind, raw []byte) (Prompt, error) {
	switch kind {
	case schema.KindWeather:
		var req schema.WeatherRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return Prompt{}, fmt.Errorf("decoding weather request: %w", err)
		}
		return Weather(req), nil
	case schema.KindActivities:
		var req schema.ActivitiesRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return Prompt{}, fmt.Errorf("decoding activities request: %w", err)
		}
		return Activities(req), nil
	case schema.KindPlanner:
		var req schema.PlannerRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return Prompt{}, fmt.Errorf("decoding planner request: %w", err)
		}
		return Planner(req), nil
	default:
		return Prompt{}, fmt.Errorf("%w: %s", schema.ErrUnknownKind, kind)
	}
}

// Weather composes the forecast prompt.
func Weather(req schema.WeatherRequest) Prompt {
	return Prompt{
		System: weatherPreamble,
		Instruction: fmt.Sprintf(
			"Provide a weather forecast for %s for the following dates: %s",
			req.City, strings.Join(req.Dates, ", ")),
	}
}

// Activities composes the recommendation prompt. The forecast blob is
// rendered as an indented JSON block so the model sees it verbatim.
func Activities(req schema.ActivitiesRequest) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest activities for %s for the following dates: %s\n\n",
		req.Destination, strings.Join(req.Dates, ", "))
	b.WriteString("Weather Forecast:\n")
	b.WriteString(indentJSON(req.WeatherForecast))
	b.WriteString("\n\nUser Preferences:\n")
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(req.Interests, ", "))
	fmt.Fprintf(&b, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "- Group Size: %s people\n\n", strconv.Itoa(req.GroupSize))
	b.WriteString("Please provide activity recommendations that match the weather and preferences.")

	return Prompt{System: activitiesPreamble, Instruction: b.String()}
}

// Planner composes the synthesis prompt from forecast and activity blobs.
func Planner(req schema.PlannerRequest) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive weekend plan for %s for: %s\n\n",
		req.Destination, strings.Join(req.Dates, ", "))
	b.WriteString("Weather Forecast:\n")
	b.WriteString(indentJSON(req.WeatherForecast))
	b.WriteString("\n\nRecommended Activities:\n")
	b.WriteString(indentJSON(req.ActivitiesList))
	b.WriteString("\n\nPlease organize these into a well-structured day-by-day itinerary with timing, meals, and practical tips.")

	return Prompt{System: plannerPreamble, Instruction: b.String()}
}

// indentJSON re-renders a raw JSON blob with two-space indentation.
// Falls back to the raw text if the blob does not re-indent (it has already
// passed schema validation, so this is a safety net, not a validation path).
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
