package life

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a construction payload that is not a collection of
	// [row, col] integer pairs, or an unusable configuration.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIterationBounds reports a step request outside [0, MaxIterations].
	ErrIterationBounds = errors.New("iteration count out of bounds")
)

// IterationBoundsError describes a rejected RunIterations request.
type IterationBoundsError struct {
	Requested int
	Max       int
}

func (e *IterationBoundsError) Error() string {
	if e.Requested < 0 {
		return "iterations must be non-negative"
	}
	return fmt.Sprintf("iterations exceed maximum allowed of %d", e.Max)
}

// Unwrap lets errors.Is match ErrIterationBounds.
func (e *IterationBoundsError) Unwrap() error { return ErrIterationBounds }

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
