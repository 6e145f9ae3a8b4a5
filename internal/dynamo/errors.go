package dynamo

import "errors"

// Domain errors for menu construction and solving.
var (
	// ErrConfiguration indicates a layout or solver parameter that cannot
	// produce a valid menu (zero items, non-positive radius, unknown names).
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrInvalidInput indicates an argument that violates an operation's
	// precondition, such as an empty slot set.
	ErrInvalidInput = errors.New("dynamo: invalid input")

	// ErrUnstable indicates the spring solver diverged (NaN or Inf).
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")
)

// StepError wraps a solver failure with the tick it happened on.
type StepError struct {
	Tick    int
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
