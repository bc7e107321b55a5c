package schema

import "fmt"

// ErrorKind classifies a schema violation.
type ErrorKind string

const (
	// MissingField indicates a required field is absent.
	MissingField ErrorKind = "missing_field"

	// WrongType indicates a field is present but has the wrong type
	// (this also covers structural constraints such as empty required lists).
	WrongType ErrorKind = "wrong_type"

	// InvalidEnumValue indicates a field value is outside its declared value set.
	InvalidEnumValue ErrorKind = "invalid_enum_value"
)

// Error describes a single schema violation.
//
// Check the kind with errors.As:
//
//	var serr *schema.Error
//	if errors.As(err, &serr) && serr.Kind == schema.MissingField { ... }
type Error struct {
	Kind   ErrorKind
	Field  string // dotted path, e.g. "activities.0.indoor_outdoor"
	Detail string // validator description, human-readable
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Field, e.Detail)
}
