package backend

import (
	"errors"
	"fmt"
)

// APIError is a reply the backend refused: a non-2xx status, or a 2xx
// without the success flag. Message is whatever the server said, if
// anything.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Status %d", e.Status)
}

// NetworkError means no usable reply arrived.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// Describe renders err for the page message, using fallback when the
// server gave no message of its own.
func Describe(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if fallback != "" {
			return fmt.Sprintf(fallback, apiErr.Status)
		}
	}
	return err.Error()
}

func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
