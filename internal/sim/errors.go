package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a session could not be built from its config.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrTornDown indicates an operation on a session after Teardown.
	ErrTornDown = errors.New("sim: session torn down")

	// ErrUnstable indicates the marker state became NaN or infinite.
	ErrUnstable = errors.New("sim: marker state diverged")

	// ErrUnknownScenario indicates a scenario name with no registered setup.
	ErrUnknownScenario = errors.New("sim: unknown scenario")
)

// FrameError wraps an error with the frame it occurred on.
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
