package sdk

import (
	"errors"
	"fmt"
)

// OperationError is the single error kind returned by resource operations.
// Op is a fixed, human-readable description of the failed operation such as
// "Failed to list projects"; Err is the underlying transport failure.
//
// Network errors, non-2xx responses and malformed bodies all surface as an
// OperationError. Err is reachable through errors.As for callers that want
// the status code, but the SDK itself never branches on it.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error { return e.Err }

// StatusError describes a response outside the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s resulted in a %s response", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from a non-2xx response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func fail(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}
