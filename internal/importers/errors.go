package importers

import (
	"errors"
	"fmt"
)

// ErrEmptyInput indicates a CSV file with a header but no data rows.
var ErrEmptyInput = errors.New("CSV file must have at least a header and one data row")

// ErrInvalidJSONRoot indicates JSON that decodes to neither an object nor an array.
var ErrInvalidJSONRoot = errors.New("JSON content must be an object or an array of objects")

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnsupportedEntity = errors.New("unsupported entity type")
)

// MalformedJSONError wraps a decoder failure for an uploaded JSON file.
type MalformedJSONError struct {
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("JSON parsing error: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err means the whole file could not be read
// in its declared format.
func IsParseError(err error) bool {
	var jsonErr *MalformedJSONError
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInvalidJSONRoot) ||
		errors.As(err, &jsonErr)
}

// ValidationError describes the first rule a normalized record failed.
type ValidationError struct {
	Entity EntityType
	Row    int
	Label  string // record name or title, empty when unknown
	Field  string
	Rule   string
	Value  string
}

func (e *ValidationError) Error() string {
	subject := fmt.Sprintf("%s (unnamed)", e.Entity)
	if e.Label != "" {
		subject = fmt.Sprintf("%s %q", e.Entity, e.Label)
	}

	var problem string
	switch e.Rule {
	case "required":
		problem = fmt.Sprintf("missing required field %q", e.Field)
	case emailTag:
		problem = fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	default:
		problem = fmt.Sprintf("field %q failed %q check", e.Field, e.Rule)
	}

	return fmt.Sprintf("Row %d: %s: %s", e.Row, subject, problem)
}
