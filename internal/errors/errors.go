package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic or arithmetic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a self-check mismatch against the oracle.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Arithmetic error taxonomy. Every failure reported by the bignum package
// matches exactly one of these sentinels through errors.Is.
var (
	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeToUnsigned is returned when a negative value is converted
	// to an unsigned magnitude.
	ErrNegativeToUnsigned = errors.New("cannot convert negative integer to unsigned")
	// ErrUnsupportedOperation is returned for exponents that are not supported.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrMalformedInput is returned when text input is not valid hexadecimal.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnderflow is returned when an unsigned subtraction would go negative.
	ErrUnderflow = errors.New("unsigned subtraction underflow")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause. The CLI wraps arithmetic failures in it so that the
// presentation layer can tell them apart from configuration problems.
type CalculationError struct {
	// Op is the operation being evaluated when the failure happened.
	Op string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the operation name followed by the underlying cause.
func (e CalculationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// ArithmeticError reports a violated arithmetic precondition. Err is one of
// the taxonomy sentinels above.
type ArithmeticError struct {
	// Op names the arithmetic operation, e.g. "quorem" or "sub".
	Op string
	// Err is the taxonomy sentinel.
	Err error
}

// Error returns "<op>: <sentinel message>".
func (e *ArithmeticError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the taxonomy sentinel.
func (e *ArithmeticError) Unwrap() error { return e.Err }

// NewArithmeticError builds an ArithmeticError for op.
func NewArithmeticError(op string, err error) error {
	return &ArithmeticError{Op: op, Err: err}
}

// MalformedInputError reports the first invalid character of a hexadecimal
// literal.
type MalformedInputError struct {
	// Input is the text that was being parsed.
	Input string
	// Pos is the byte offset of the offending character in Input.
	Pos int
	// Char is the offending character. It is zero when the digit string
	// is empty.
	Char rune
}

// Error returns a formatted message describing the malformed input.
func (e *MalformedInputError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("malformed input %q: no hexadecimal digits", e.Input)
	}
	return fmt.Sprintf("malformed input %q: invalid hexadecimal digit %q at offset %d", e.Input, e.Char, e.Pos)
}

// Unwrap returns ErrMalformedInput.
func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// TimeoutError represents an operation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsArithmeticError reports whether err belongs to the arithmetic taxonomy.
func IsArithmeticError(err error) bool {
	return errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrNegativeToUnsigned) ||
		errors.Is(err, ErrUnsupportedOperation) ||
		errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrUnderflow)
}

// ExitCodeFor maps an error to the process exit code reported by the CLI.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
