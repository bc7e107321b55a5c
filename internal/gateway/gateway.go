// Package gateway runs the structured request/response pipeline for one task
// kind: validate the inbound document, compose a model instruction, invoke
// the backend under the session, extract and validate the structured payload
// from the model's free-text output, and serialize either the artifact or a
// typed error envelope.
//
// Handle is total over its input. Every failure is caught at this boundary
// and converted to an envelope; the caller always receives well-formed JSON,
// never a panic or a third shape.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/planora/planora/internal/extract"
	"github.com/planora/planora/internal/log"
	"github.com/planora/planora/internal/prompt"
	"github.com/planora/planora/internal/schema"
)

// rawContentLimit bounds the offending-text excerpt carried in
// response-side error envelopes.
const rawContentLimit = 200

// Code is a short machine-readable error kind.
type Code string

const (
	// MalformedRequest means the request body is not a JSON object.
	MalformedRequest Code = "MalformedRequest"
	// InvalidRequest means the request parsed but violates the task's
	// request schema.
	InvalidRequest Code = "InvalidRequest"
	// ModelInvocationFailure means the generative backend failed or
	// returned no final output.
	ModelInvocationFailure Code = "ModelInvocationFailure"
	// MalformedResponse means the extracted model output is not parseable
	// as JSON.
	MalformedResponse Code = "MalformedResponse"
	// InvalidResponse means the model output parsed but violates the
	// task's response schema.
	InvalidResponse Code = "InvalidResponse"
)

// Envelope is the error payload returned in place of an artifact. It is
// always delivered as a normal response document, never as a transport
// fault.
type Envelope struct {
	Error          Code   `json:"error"`
	Message        string `json:"message"`
	RawContent     string `json:"raw_content,omitempty"`     // response-side failures, truncated
	ExpectedFormat string `json:"expected_format,omitempty"` // request-side schema failures
}

// Invoker runs one model turn under a session key.
type Invoker interface {
	Invoke(ctx context.Context, sessionKey string, p prompt.Prompt) (string, error)
}

// Gateway is the pipeline for a single task kind. Stateless apart from its
// collaborators; safe for concurrent use.
type Gateway struct {
	kind     schema.Kind
	registry *schema.Registry
	invoker  Invoker
	logger   log.Logger
}

// New creates a Gateway for kind.
func New(kind schema.Kind, registry *schema.Registry, invoker Invoker, logger log.Logger) *Gateway {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Gateway{kind: kind, registry: registry, invoker: invoker, logger: logger}
}

// Kind returns the task kind this gateway serves.
func (g *Gateway) Kind() schema.Kind { return g.kind }

// Handle runs the full pipeline for one request and always returns a
// well-formed JSON document: the serialized artifact on success, an
// Envelope otherwise.
//
// The pipeline is strictly sequential. A rejected request never reaches the
// model, and a response-side failure is surfaced immediately rather than
// re-invoking within the same request.
func (g *Gateway) Handle(ctx context.Context, sessionKey string, raw []byte) []byte {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return g.reject(Envelope{
			Error:   MalformedRequest,
			Message: fmt.Sprintf("request body is not a JSON object: %v", err),
		})
	}

	if err := g.registry.ValidateRequest(g.kind, raw); err != nil {
		return g.reject(Envelope{
			Error:          InvalidRequest,
			Message:        fmt.Sprintf("request does not match the %s schema: %v", g.kind, err),
			ExpectedFormat: g.registry.ExpectedFormat(g.kind),
		})
	}

	p, err := prompt.Compose(g.kind, raw)
	if err != nil {
		// Unreachable for schema-valid documents; classified as a request
		// failure rather than letting it escape the boundary.
		return g.reject(Envelope{
			Error:   MalformedRequest,
			Message: fmt.Sprintf("composing instruction: %v", err),
		})
	}

	text, err := g.invoker.Invoke(ctx, sessionKey, p)
	if err != nil {
		g.logger.Error("model invocation failed", "kind", g.kind, "error", err)
		return g.reject(Envelope{
			Error:   ModelInvocationFailure,
			Message: fmt.Sprintf("model invocation failed: %v", err),
		})
	}

	payload, err := extract.Payload(text)
	if err != nil {
		return g.reject(Envelope{
			Error:      MalformedResponse,
			Message:    fmt.Sprintf("extracting payload from model output: %v", err),
			RawContent: extract.Truncate(text, rawContentLimit),
		})
	}

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return g.reject(Envelope{
			Error:      MalformedResponse,
			Message:    fmt.Sprintf("model output is not valid JSON: %v", err),
			RawContent: extract.Truncate(payload, rawContentLimit),
		})
	}

	if err := g.registry.ValidateResponse(g.kind, []byte(payload)); err != nil {
		return g.reject(Envelope{
			Error:      InvalidResponse,
			Message:    fmt.Sprintf("model output does not match the %s schema: %v", g.kind, err),
			RawContent: extract.Truncate(payload, rawContentLimit),
		})
	}

	artifact, err := schema.DecodeArtifact(g.kind, []byte(payload))
	if err != nil {
		return g.reject(Envelope{
			Error:      InvalidResponse,
			Message:    fmt.Sprintf("decoding artifact: %v", err),
			RawContent: extract.Truncate(payload, rawContentLimit),
		})
	}

	out, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		// Marshaling a plain struct cannot fail; kept total anyway.
		return g.reject(Envelope{
			Error:   InvalidResponse,
			Message: fmt.Sprintf("serializing artifact: %v", err),
		})
	}

	g.logger.Info("request served", "kind", g.kind, "session", sessionKey, "bytes", len(out))
	return out
}

// reject serializes env. Envelope marshaling has no failure mode, so the
// boundary guarantee holds.
func (g *Gateway) reject(env Envelope) []byte {
	g.logger.Warn("request rejected", "kind", g.kind, "code", env.Error, "message", env.Message)
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return []byte(fmt.Sprintf(`{"error":%q,"message":"internal serialization failure"}`, env.Error))
	}
	return out
}
