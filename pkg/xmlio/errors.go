package xmlio

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for invalid arguments to parse entry points.
var (
	// ErrNilElement is returned when a parser is handed a nil element.
	ErrNilElement = errors.New("nil xml element")

	// ErrEmptyDocument is returned by Parse for empty or whitespace-only
	// input.
	ErrEmptyDocument = errors.New("empty xml document")
)

// StructureError reports a required element that was absent from the
// document being parsed.
type StructureError struct {
	// Element is the local name of the missing element.
	Element string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("xml element %q not found", e.Element)
}

// ValueError reports element text that could not be converted to the
// expected type. It wraps the underlying conversion error.
type ValueError struct {
	Element string
	Value   string
	Err     error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("element %q: cannot parse %q: %v", e.Element, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// SerializationError reports an attempt to write a record whose mandatory
// field has not been set. Field is the XML element name of the missing
// field, so callers can tell which value to supply.
type SerializationError struct {
	Field string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("mandatory field %q is not set", e.Field)
}

// RequireSet checks a mandatory pointer field just before serialization
// and returns a SerializationError naming the field when it is nil.
func RequireSet[T any](v *T, field string) error {
	if v == nil {
		return &SerializationError{Field: field}
	}
	return nil
}

// RequireText checks a mandatory string field just before serialization.
// Empty and whitespace-only values count as unset.
func RequireText(s, field string) error {
	if strings.TrimSpace(s) == "" {
		return &SerializationError{Field: field}
	}
	return nil
}

// RequireTime checks a mandatory timestamp field just before
// serialization. The zero time counts as unset.
func RequireTime(t time.Time, field string) error {
	if t.IsZero() {
		return &SerializationError{Field: field}
	}
	return nil
}
