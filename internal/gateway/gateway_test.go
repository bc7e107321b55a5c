package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/prompt"
	"github.com/planora/planora/internal/schema"
)

// stubInvoker records calls and returns a scripted reply.
type stubInvoker struct {
	mu         sync.Mutex
	reply      string
	err        error
	calls      int
	lastKey    string
	lastPrompt prompt.Prompt
}

func (s *stubInvoker) Invoke(_ context.Context, sessionKey string, p prompt.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastKey = sessionKey
	s.lastPrompt = p
	return s.reply, s.err
}

func (s *stubInvoker) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

const tokyoForecast = `{
  "destination": "Tokyo",
  "forecast": [
    {
      "day": 1,
      "date": "2025-10-20",
      "condition": "Sunny",
      "highTemp": 72,
      "lowTemp": 58,
      "precipitation": 5,
      "humidity": 50,
      "windSpeed": 7,
      "description": "Clear autumn day"
    }
  ],
  "travelAdvice": "Bring a light jacket for the evening.",
  "bestDays": [1]
}`

func newRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.NewRegistry()
	require.NoError(t, err)
	return reg
}

func decodeEnvelope(t *testing.T, out []byte) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(out, &env), "gateway output must be well-formed JSON: %s", out)
	return env
}

func TestHandleReturnsValidatedArtifact(t *testing.T) {
	inv := &stubInvoker{reply: tokyoForecast}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)

	out := gw.Handle(context.Background(), "s1", []byte(`{"city":"Tokyo","dates":["2025-10-20"]}`))

	var artifact schema.WeatherArtifact
	require.NoError(t, json.Unmarshal(out, &artifact))
	assert.Equal(t, "Tokyo", artifact.Destination)
	require.Len(t, artifact.Forecast, 1)
	assert.NotEmpty(t, artifact.Forecast[0].Condition)

	assert.Equal(t, "s1", inv.lastKey)
	assert.Contains(t, inv.lastPrompt.Instruction, "Tokyo")
	assert.Contains(t, inv.lastPrompt.Instruction, "2025-10-20")
}

func TestHandleStripsFencedProse(t *testing.T) {
	inv := &stubInvoker{reply: "Sure! Here is the forecast:\n```json\n" + tokyoForecast + "\n```\nLet me know if you need more."}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)

	out := gw.Handle(context.Background(), "s", []byte(`{"city":"Tokyo","dates":["2025-10-20"]}`))

	var artifact schema.WeatherArtifact
	require.NoError(t, json.Unmarshal(out, &artifact))
	assert.Equal(t, "Tokyo", artifact.Destination)
}

func TestHandleMalformedRequest(t *testing.T) {
	inv := &stubInvoker{reply: tokyoForecast}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)

	env := decodeEnvelope(t, gw.Handle(context.Background(), "s", []byte(`city=Tokyo`)))

	assert.Equal(t, MalformedRequest, env.Error)
	assert.NotEmpty(t, env.Message)
	assert.Zero(t, inv.callCount(), "malformed request must not reach the model")
}

func TestHandleMissingFieldNeverInvokesModel(t *testing.T) {
	inv := &stubInvoker{reply: "{}"}
	gw := New(schema.KindActivities, newRegistry(t), inv, nil)

	// group_size omitted.
	body := []byte(`{
		"destination": "Tokyo",
		"dates": ["2025-10-20"],
		"weather_forecast": {},
		"interests": ["food"],
		"budget": "low"
	}`)
	env := decodeEnvelope(t, gw.Handle(context.Background(), "s", body))

	assert.Equal(t, InvalidRequest, env.Error)
	assert.Contains(t, env.Message, "missing_field")
	assert.Contains(t, env.Message, "group_size")
	assert.NotEmpty(t, env.ExpectedFormat)
	assert.Zero(t, inv.callCount())
}

func TestHandleEnumViolationNeverInvokesModel(t *testing.T) {
	inv := &stubInvoker{reply: "{}"}
	gw := New(schema.KindActivities, newRegistry(t), inv, nil)

	body := []byte(`{
		"destination": "Tokyo",
		"dates": ["2025-10-20"],
		"weather_forecast": {},
		"interests": ["food"],
		"budget": "extreme",
		"group_size": 2
	}`)
	env := decodeEnvelope(t, gw.Handle(context.Background(), "s", body))

	assert.Equal(t, InvalidRequest, env.Error)
	assert.Contains(t, env.Message, "invalid_enum_value")
	assert.Zero(t, inv.callCount())
}

func TestHandleModelInvocationFailure(t *testing.T) {
	inv := &stubInvoker{err: errors.New("backend unreachable")}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)

	env := decodeEnvelope(t, gw.Handle(context.Background(), "s", []byte(`{"city":"Tokyo","dates":["2025-10-20"]}`)))

	assert.Equal(t, ModelInvocationFailure, env.Error)
	assert.Contains(t, env.Message, "backend unreachable")
}

func TestHandleTruncatedOutput(t *testing.T) {
	truncated := `{"destination": "Tokyo", "forecast": [{"day": 1, "date": "` + strings.Repeat("2025-10-20 ", 30)
	inv := &stubInvoker{reply: truncated}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)

	env := decodeEnvelope(t, gw.Handle(context.Background(), "s", []byte(`{"city":"Tokyo","dates":["2025-10-20"]}`)))

	assert.Equal(t, MalformedResponse, env.Error)
	assert.Len(t, env.RawContent, 200)
	assert.Equal(t, truncated[:200], env.RawContent)
}

func TestHandleUnterminatedFence(t *testing.T) {
	inv := &stubInvoker{reply: "```json\n{\"destination\": \"Tokyo\"}"}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)

	env := decodeEnvelope(t, gw.Handle(context.Background(), "s", []byte(`{"city":"Tokyo","dates":["2025-10-20"]}`)))

	assert.Equal(t, MalformedResponse, env.Error)
	assert.NotEmpty(t, env.RawContent)
}

func TestHandleSchemaViolatingOutput(t *testing.T) {
	inv := &stubInvoker{reply: `{"destination": "Tokyo", "forecast": "sunny all weekend"}`}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)

	env := decodeEnvelope(t, gw.Handle(context.Background(), "s", []byte(`{"city":"Tokyo","dates":["2025-10-20"]}`)))

	assert.Equal(t, InvalidResponse, env.Error)
	assert.NotEmpty(t, env.RawContent)
}

// Handle must return well-formed JSON for any input, valid or not.
func TestHandleIsTotal(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte(""),
		[]byte("null"),
		[]byte("[1,2,3]"),
		[]byte(`"just a string"`),
		[]byte(`{"city": 42}`),
		[]byte(`{"city":"Tokyo","dates":["2025-10-20"]}`),
		[]byte("\xff\xfe not even text"),
	}

	for _, raw := range inputs {
		inv := &stubInvoker{reply: tokyoForecast}
		gw := New(schema.KindWeather, newRegistry(t), inv, nil)
		out := gw.Handle(context.Background(), "s", raw)
		assert.True(t, json.Valid(out), "input %q produced invalid JSON: %s", raw, out)
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	inv := &stubInvoker{reply: tokyoForecast}
	gw := New(schema.KindWeather, newRegistry(t), inv, nil)
	reg := newRegistry(t)

	out := gw.Handle(context.Background(), "s", []byte(`{"city":"Tokyo","dates":["2025-10-20"]}`))
	require.NoError(t, reg.ValidateResponse(schema.KindWeather, out))

	// Serializing the decoded artifact again yields the same document.
	var artifact schema.WeatherArtifact
	require.NoError(t, json.Unmarshal(out, &artifact))
	again, err := json.MarshalIndent(artifact, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}
