package dynamo

import "errors"

// Domain errors for trajectory runs.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a run parameter outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates a state whose length does not match
	// the system's degrees of freedom.
	ErrDimensionMismatch = errors.New("dynamo: state length does not match system dof")
)
