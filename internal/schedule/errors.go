package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidRecurrencePattern is returned when a pattern's fields are
// insufficient or contradictory for its declared frequency. Guessing a
// calendar rule would corrupt scheduling silently, so the engine refuses
// instead of defaulting.
var ErrInvalidRecurrencePattern = errors.New("invalid recurrence pattern")

// InvalidPatternError carries the reason a pattern was rejected.
// Use errors.Is(err, ErrInvalidRecurrencePattern) to classify.
type InvalidPatternError struct {
	Reason string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid recurrence pattern: %s", e.Reason)
}

func (e *InvalidPatternError) Unwrap() error {
	return ErrInvalidRecurrencePattern
}

func invalidPattern(format string, args ...interface{}) error {
	return &InvalidPatternError{Reason: fmt.Sprintf(format, args...)}
}
