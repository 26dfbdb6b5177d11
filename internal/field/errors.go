package field

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("field: parameter out of valid bounds")

	// ErrStopped indicates the frame loop was stopped through its stop handle.
	ErrStopped = errors.New("field: renderer stopped")
)

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
