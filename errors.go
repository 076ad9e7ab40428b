package geneva

import "errors"

// Sentinel error kinds, per spec §7. Wrap with fmt.Errorf("...: %w", ErrX)
// at the call site so errors.Is still matches while adding context.
var (
	// ErrInvalidArgument is returned when a setter or configuration parse
	// receives an input outside its documented domain.
	ErrInvalidArgument = errors.New("geneva: invalid argument")

	// ErrOutOfRange is returned when a Parameter value is assigned outside
	// its configured bounds.
	ErrOutOfRange = errors.New("geneva: value out of range")

	// ErrInvariantViolation marks an internal consistency failure (e.g. a
	// dirty fitness read outside the one sanctioned evaluation trigger). It
	// is fatal to the run.
	ErrInvariantViolation = errors.New("geneva: invariant violation")

	// ErrEvaluationError wraps a user objective failure. It is localized to
	// the individual that produced it and is never fatal to the run.
	ErrEvaluationError = errors.New("geneva: evaluation error")

	// ErrIoError marks a checkpoint read/write failure. Non-fatal; the
	// checkpoint is skipped and the run continues.
	ErrIoError = errors.New("geneva: io error")

	// ErrCancelled reports that the run was stopped by a cancellation
	// token. Not a failure.
	ErrCancelled = errors.New("geneva: cancelled")
)
