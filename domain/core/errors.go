package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Argument validation errors
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidConfidence = fmt.Errorf("%w: confidence level must be in (0,1)", ErrInvalidArgument)
	ErrInvalidWidth      = fmt.Errorf("%w: interval width must be positive", ErrInvalidArgument)
	ErrInvalidParams     = fmt.Errorf("%w: number of parameters must be positive", ErrInvalidArgument)

	// Statistical impossibilities
	ErrDegenerateInterval = errors.New("confidence interval bounds inverted")

	// Configuration errors
	ErrMissingConfig = errors.New("analysis configuration incomplete")

	// Parallel execution errors
	ErrWorkerFailure = errors.New("correlation worker failed")

	// Data shape errors
	ErrShapeMismatch = errors.New("input shape mismatch")
	ErrBlockPeriod   = fmt.Errorf("%w: output length is not a multiple of the sampling block period", ErrShapeMismatch)
)

// Error constructors with context
func NewMissingConfigError(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMissingConfig, field)
}

func NewWorkerError(worker int, err error) error {
	return fmt.Errorf("%w: worker %d: %v", ErrWorkerFailure, worker, err)
}

func NewShapeError(what string, got, want int) error {
	return fmt.Errorf("%w: %s is %d, want %d", ErrShapeMismatch, what, got, want)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingConfig)
}

func IsWorkerError(err error) bool {
	return errors.Is(err, ErrWorkerFailure)
}
