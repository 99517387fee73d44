package itinerary

import "fmt"

// ClientInputError is caused by the request itself and will not succeed on retry.
type ClientInputError struct {
	Field string
	Msg   string
	Cause error
}

func (e *ClientInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Msg, e.Cause)
	}

	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func (e *ClientInputError) Unwrap() error {
	return e.Cause
}

// UpstreamUnavailableError wraps a failure of the schedule catalog or the flight search.
type UpstreamUnavailableError struct {
	Upstream string
	Cause    error
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Upstream, e.Cause)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Cause
}

type UpstreamTimeoutError struct {
	Upstream string
	Cause    error
}

func (e *UpstreamTimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Upstream, e.Cause)
}

func (e *UpstreamTimeoutError) Unwrap() error {
	return e.Cause
}

// DataInconsistencyError reports catalog data the composer cannot work with.
type DataInconsistencyError struct {
	Msg string
}

func (e *DataInconsistencyError) Error() string {
	return "catalog inconsistency: " + e.Msg
}
