package reports

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownTemplate is returned when a template task ID has no registered
// report definition
var ErrUnknownTemplate = errors.New("unknown template task id")

// ValidationKind classifies a parameter validation failure
type ValidationKind string

const (
	InvalidParameter  ValidationKind = "InvalidParameter"
	InvalidDateFormat ValidationKind = "InvalidDateFormat"
	InvalidDateRange  ValidationKind = "InvalidDateRange"
)

// ValidationError is raised before any I/O when a caller-supplied filter
// value is rejected
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidParameter(field, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Kind:    InvalidParameter,
		Field:   field,
		Message: fmt.Sprintf("invalid %s %q, must be one of: %s", field, value, strings.Join(allowed, ", ")),
	}
}

func invalidDateFormat(field string, err error) *ValidationError {
	return &ValidationError{
		Kind:    InvalidDateFormat,
		Field:   field,
		Message: fmt.Sprintf("invalid date format for %s, use YYYY-MM-DD: %v", field, err),
	}
}

func invalidDateRange(fromField, toField string) *ValidationError {
	return &ValidationError{
		Kind:    InvalidDateRange,
		Field:   toField,
		Message: fmt.Sprintf("%s cannot be earlier than %s", toField, fromField),
	}
}

// IsValidationError reports whether err is a parameter validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
