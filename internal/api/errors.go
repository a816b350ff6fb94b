package api

import (
	"errors"
	"fmt"
)

// ErrUnknownEndpoint is returned for paths outside the endpoint table.
var ErrUnknownEndpoint = errors.New("unknown API endpoint")

// NetworkError means no usable response reached the client: connection
// refused, DNS failure, timeout, or a cancelled context.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError means the transport succeeded but the server answered with
// a non-2xx status.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
}

// APIError means the server answered 200 OK but the payload's own
// status flag is false, or the payload could not be decoded.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "api error"
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
// The dashboard fallback path branches on this single error class.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
