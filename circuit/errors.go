package circuit

import "errors"

var (
	// ErrAllocation indicates that the sequences of a buffer could not be
	// allocated.
	ErrAllocation = errors.New("circuit: cannot allocate time series")

	// ErrParameterBounds indicates a parameter value outside of the range
	// accepted by strict validation.
	ErrParameterBounds = errors.New("circuit: parameter out of valid bounds")
)
