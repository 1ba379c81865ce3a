package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced record or entity does not resolve.
	ErrNotFound = errors.New("domain: not found")
	// ErrMissingField is returned when a required input is empty.
	ErrMissingField = errors.New("domain: missing field")
	// ErrWrongPassword is returned when a known username is used with a different password.
	ErrWrongPassword = errors.New("domain: wrong password")
	// ErrGatewayUnavailable marks every suggestion failure.
	ErrGatewayUnavailable = errors.New("domain: suggestions unavailable")
)

// NotFoundError names the entity that failed to resolve.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	if e.Kind == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// GatewayError wraps a failed suggestion request. It always matches
// ErrGatewayUnavailable and unwraps to the underlying cause.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, ErrGatewayUnavailable)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrGatewayUnavailable, e.Err)
}

func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayUnavailable
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
