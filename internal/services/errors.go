package services

import "fmt"

// Custom errors

// ConfigError means the relay cannot reach upstream at all because it is
// missing configuration. No upstream call was made.
type ConfigError struct{ Message string }

func (e *ConfigError) Error() string { return e.Message }

// UpstreamError is a non-success answer from the generative API.
// Message is empty when the error body could not be parsed.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return e.Message
}

type NoCandidatesError struct{}

func (e *NoCandidatesError) Error() string { return "no candidates in response" }

// TransportError covers network failures, timeouts and unreadable
// success bodies.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
