package dice

import "fmt"

// ValidationError reports input rejected before any die was drawn.
// Malformed notation, out-of-range pools, and bad attribute values all
// surface as this type so callers can map them to user-facing responses.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// validationf builds a ValidationError from a format string.
func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
