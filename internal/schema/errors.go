package schema

import (
	"errors"
	"fmt"
)

// NoIndex marks a ValidationError that does not come from a list element.
const NoIndex = -1

// ValidationError reports a payload or input that violates the entity contract.
type ValidationError struct {
	Entity string
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	location := e.Entity
	if e.Index != NoIndex {
		location = fmt.Sprintf("%s[%d]", location, e.Index)
	}
	if e.Field != "" {
		location = fmt.Sprintf("%s.%s", location, e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", location, e.Reason)
}

func newError(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Index: NoIndex, Reason: reason}
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
