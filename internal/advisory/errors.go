// Package advisory provides the typed HTTP client for the remote advisory
// service. It is a pure request/response mapping: no retries, no workflow
// state. Callers decide what to do with each failure class.
package advisory

import (
	"errors"
	"fmt"
)

// RequestError represents a request that produced no response at all
// (connection failure, timeout, cancelled context). No remote state was
// observed, so the call is safe to retry.
type RequestError struct {
	Op    string
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// RemoteError represents a response received with a non-2xx status other
// than 401 and 404. Message carries the remote payload's error text when
// present, otherwise a generic fallback.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: remote error (status %d): %s", e.Op, e.StatusCode, e.Message)
}

// NotFoundError represents a 404: the target resource no longer exists
// server-side.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// AuthError represents a 401. Credential handling lives outside this client;
// callers propagate this to the auth collaborator and must not retry.
type AuthError struct {
	Op string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: unauthorized", e.Op)
}

// ContractError represents a 2xx response whose payload violates the
// service's data contract (for example a match score outside 0-100).
type ContractError struct {
	Op    string
	Cause error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *ContractError) Unwrap() error {
	return e.Cause
}

// DecodeError represents a 2xx response whose body could not be parsed.
type DecodeError struct {
	Op    string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err indicates no response was received,
// making the call safe to retry.
func IsRetryable(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}
