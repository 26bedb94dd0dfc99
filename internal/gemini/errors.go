package gemini

import (
	"errors"
	"fmt"
)

// Error definitions for the gemini package.
var (
	// ErrMissingCredential is returned when no API key is configured.
	// No request is issued in that case.
	ErrMissingCredential = errors.New("gemini: API key is missing")

	// ErrEmptyGeneration is returned when the endpoint answered 2xx but the
	// response carried no usable candidate text. This is distinct from an
	// upstream (non-2xx) failure.
	ErrEmptyGeneration = errors.New("gemini: response contained no generated text")
)

// UpstreamError reports a non-2xx response from the generation endpoint.
// Message carries the upstream-supplied description when one was parseable.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini: upstream error (HTTP %d): %s", e.StatusCode, e.Message)
}

// TransportError wraps a network-level failure reaching the endpoint.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "gemini: request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
