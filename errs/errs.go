// Package errs defines one sentinel error for each of the error kinds in
// the core's error-handling design: InvalidArgument, OutOfBounds,
// MismatchedTypes, NotImplemented, ComputeOverflow, and Corrupted.
//
// No other package in this module returns or wraps these sentinels: the
// compute kernels and array constructors panic on invalid input, and the
// errors btrblocks and compress return are plain fmt.Errorf values.
//
// A sentinel is wrapped with context using fmt.Errorf and %w, e.g.:
//
//	return fmt.Errorf("%w: index %d exceeds length %d", errs.ErrOutOfBounds, idx, length)
//
// Callers can test for a kind with errors.Is(err, errs.ErrOutOfBounds).
package errs

import "errors"

var (
	// ErrInvalidArgument indicates a precondition violation, such as a
	// negative bit width or a wrong-dtype argument to a kernel.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds indicates an index or range outside [0, len).
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrMismatchedTypes indicates an operand dtype differs from the
	// dtype required by the operation.
	ErrMismatchedTypes = errors.New("mismatched types")

	// ErrNotImplemented indicates a kernel isn't implemented for an
	// encoding and no canonical fallback is possible.
	ErrNotImplemented = errors.New("not implemented")

	// ErrComputeOverflow indicates a checked numeric operation on scalars
	// that would wrap.
	ErrComputeOverflow = errors.New("compute overflow")

	// ErrCorrupted indicates a deserialization or metadata validation
	// failure.
	ErrCorrupted = errors.New("corrupted")
)
