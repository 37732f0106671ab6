// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// arithmetic, timeouts) and for carrying the underlying cause.
//
// The arithmetic taxonomy (ErrDivisionByZero, ErrNegativeToUnsigned,
// ErrUnsupportedOperation, ErrMalformedInput, ErrUnderflow) is shared by the
// bignum engine and the CLI so callers can branch with errors.Is.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method to support errors.Is() and errors.As().
package apperrors
