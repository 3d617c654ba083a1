package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all network retry attempts are
	// exhausted. It indicates a systemic problem; callers abort the run.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled
	// during a backoff or rate-limit wait.
	ErrContextCancelled = errors.New("context cancelled")
)

// TransportError wraps the final network-level failure after the retry
// budget is spent. It matches ErrRetryExhausted under errors.Is.
type TransportError struct {
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("network/API error after %d attempts: %v", e.Attempts, e.Err)
}

// Is reports ErrRetryExhausted identity.
func (e *TransportError) Is(target error) bool {
	return target == ErrRetryExhausted
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError represents a terminal provider error (HTTP >=400, non-429).
type APIError struct {
	StatusCode int
	Class      ErrorClass
	Details    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("scryfall %s error (status %d): %s", e.Class, e.StatusCode, e.Details)
	}
	return fmt.Sprintf("scryfall %s error (status %d)", e.Class, e.StatusCode)
}

// classifyStatus categorizes an HTTP status for observability.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == 429:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}
