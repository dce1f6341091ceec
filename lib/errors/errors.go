// Package errors provides structured error types for qldb-go.
//
// The pool cares about exactly one error property: whether a failed
// transport call is worth retrying. Credential-class failures are not;
// everything else is. This package provides:
//   - Sentinel errors for common error conditions
//   - Recoverable/Unrecoverable classification of transport errors
//   - Error wrapping with context preservation
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrPoolClosed indicates the session pool has been closed.
	ErrPoolClosed = errors.New("pool: session pool closed")

	// ErrCredentials indicates an authentication or credential failure.
	ErrCredentials = errors.New("transport: credential failure")

	// ErrRetriesExhausted indicates an operation failed after its full
	// retry budget.
	ErrRetriesExhausted = errors.New("retry: attempts exhausted")

	// ErrNoSessionToken indicates the ledger service answered a session
	// start without a usable session token.
	ErrNoSessionToken = errors.New("transport: no session token in response")

	// ErrRateLimited indicates a request was rejected by rate limiting.
	ErrRateLimited = errors.New("transport: rate limit exceeded")

	// ErrCircuitOpen indicates the circuit breaker is open.
	ErrCircuitOpen = errors.New("transport: circuit breaker is open")
)

// Class categorizes a transport error for the retry policy.
type Class int

const (
	// ClassRecoverable errors are transient and may be retried.
	ClassRecoverable Class = iota
	// ClassUnrecoverable errors abort the operation immediately.
	ClassUnrecoverable
)

func (c Class) String() string {
	switch c {
	case ClassRecoverable:
		return "recoverable"
	case ClassUnrecoverable:
		return "unrecoverable"
	default:
		return "unknown"
	}
}

// TransportError wraps a transport failure with its retry classification.
type TransportError struct {
	Class Class
	Err   error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", e.Class, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Recoverable wraps err as a transient transport error.
func Recoverable(err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Class: ClassRecoverable, Err: err}
}

// Unrecoverable wraps err as a terminal transport error.
func Unrecoverable(err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Class: ClassUnrecoverable, Err: err}
}

// Classify determines whether err is worth retrying. An explicit
// TransportError wrapper wins; otherwise credential-class errors are
// unrecoverable and everything else is treated as transient.
func Classify(err error) Class {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Class
	}
	if errors.Is(err, ErrCredentials) || errors.Is(err, ErrNoSessionToken) {
		return ClassUnrecoverable
	}
	return ClassRecoverable
}

// IsPoolClosed returns true if the error indicates the pool is closed.
func IsPoolClosed(err error) bool {
	return errors.Is(err, ErrPoolClosed)
}

// IsCredentials returns true if the error indicates a credential failure.
func IsCredentials(err error) bool {
	return errors.Is(err, ErrCredentials)
}

// IsRetriesExhausted returns true if the error indicates an exhausted
// retry budget.
func IsRetriesExhausted(err error) bool {
	return errors.Is(err, ErrRetriesExhausted)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target,
// and if so, sets target to that error value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}
