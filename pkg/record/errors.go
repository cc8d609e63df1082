package record

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownType is returned when a fragment's root element or type id
	// does not match any registered item type.
	ErrUnknownType = errors.New("unknown item type")

	// ErrNilItem is returned when a nil item is passed to a marshal call.
	ErrNilItem = errors.New("nil item")
)

// ValidationError reports a field value outside its documented domain,
// such as a blank name or a negative measurement. Field is the XML
// element name of the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// validText rejects empty and whitespace-only strings for fields whose
// domain is non-blank text.
func validText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: field, Reason: "must not be blank"}
	}
	return nil
}

// validNonNegative rejects negative values for fields whose domain is
// zero or greater.
func validNonNegative(field string, v float64) error {
	if v < 0 {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}
