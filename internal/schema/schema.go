// Package schema is the declarative registry of request and artifact shapes
// for every task kind the gateway serves.
//
// Each kind carries a request schema (gates what reaches the model), a
// response schema (gates what leaves the gateway), and a literal
// expected-format example surfaced in rejection envelopes. Validation
// failures are reported as *Error with one of three kinds: MissingField,
// WrongType, InvalidEnumValue.
package schema

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ErrUnknownKind indicates a task kind with no registered schemas.
var ErrUnknownKind = errors.New("unknown task kind")

type entry struct {
	request  *gojsonschema.Schema
	response *gojsonschema.Schema
	example  string
}

// Registry holds the compiled schemas for all task kinds.
// Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	entries map[Kind]entry
}

// NewRegistry compiles all schema documents. Compilation failure means a
// broken embedded document and is a programming error, so callers typically
// treat a non-nil error as fatal at startup.
func NewRegistry() (*Registry, error) {
	docs := map[Kind]struct {
		request, response, example string
	}{
		KindWeather:    {weatherRequestSchema, weatherResponseSchema, weatherExpectedFormat},
		KindActivities: {activitiesRequestSchema, activitiesResponseSchema, activitiesExpectedFormat},
		KindPlanner:    {plannerRequestSchema, plannerResponseSchema, plannerExpectedFormat},
	}

	entries := make(map[Kind]entry, len(docs))
	for kind, d := range docs {
		req, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(d.request))
		if err != nil {
			return nil, fmt.Errorf("compiling %s request schema: %w", kind, err)
		}
		resp, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(d.response))
		if err != nil {
			return nil, fmt.Errorf("compiling %s response schema: %w", kind, err)
		}
		entries[kind] = entry{request: req, response: resp, example: d.example}
	}

	return &Registry{entries: entries}, nil
}

// ValidateRequest checks raw JSON against the request schema for kind.
// Returns nil on success, a *Error on schema violation, or a plain error for
// unknown kinds and undecodable documents.
func (r *Registry) ValidateRequest(kind Kind, raw []byte) error {
	e, ok := r.entries[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return validate(e.request, raw)
}

// ValidateResponse checks raw JSON against the response schema for kind.
func (r *Registry) ValidateResponse(kind Kind, raw []byte) error {
	e, ok := r.entries[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return validate(e.response, raw)
}

// ExpectedFormat returns the literal example document for kind's request
// shape, or "" for unknown kinds.
func (r *Registry) ExpectedFormat(kind Kind) string {
	return r.entries[kind].example
}

func validate(s *gojsonschema.Schema, raw []byte) error {
	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	// Multiple violations may be reported; the first is surfaced, which is
	// deterministic for a given document and schema.
	return toSchemaError(result.Errors()[0])
}

// toSchemaError maps a validator result onto the registry's error taxonomy.
// Everything that is neither a missing required field nor an enum violation
// is classified as WrongType, including structural constraints such as
// minItems on required lists.
func toSchemaError(re gojsonschema.ResultError) *Error {
	switch re.Type() {
	case "required":
		field, _ := re.Details()["property"].(string)
		if parent := re.Field(); parent != "" && parent != "(root)" {
			field = parent + "." + field
		}
		return &Error{Kind: MissingField, Field: field, Detail: re.Description()}
	case "enum":
		return &Error{Kind: InvalidEnumValue, Field: re.Field(), Detail: re.Description()}
	default:
		return &Error{Kind: WrongType, Field: re.Field(), Detail: re.Description()}
	}
}
