package storyteller

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to them so callers can match
// with errors.Is.
var (
	ErrBinding         = errors.New("scroll source binding failed")
	ErrInvalidRange    = errors.New("invalid progress range")
	ErrScrollActuation = errors.New("programmatic scroll failed")
	ErrNoActuator      = errors.New("no scroll actuator configured")
	ErrClosed          = errors.New("engine closed")
)

// BindingError reports a missing or unusable scroll source at construction.
type BindingError struct {
	Kind   SourceKind
	Reason string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("bind %s source: %s", e.Kind, e.Reason)
}

// Unwrap returns ErrBinding.
func (e *BindingError) Unwrap() error { return ErrBinding }

// InvalidRangeError reports an observer registered with bounds outside [0,1]
// or with Lower >= Upper.
type InvalidRangeError struct {
	Lower float64
	Upper float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("range [%g, %g] must satisfy 0 <= lower < upper <= 1", e.Lower, e.Upper)
}

// Unwrap returns ErrInvalidRange.
func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// ScrollActuationError wraps a failure of the host actuator.
type ScrollActuationError struct {
	Target float64
	Smooth bool
	Err    error
}

func (e *ScrollActuationError) Error() string {
	return fmt.Sprintf("scroll to %g (smooth=%t): %v", e.Target, e.Smooth, e.Err)
}

// Unwrap exposes both ErrScrollActuation and the underlying cause.
func (e *ScrollActuationError) Unwrap() []error {
	return []error{ErrScrollActuation, e.Err}
}
