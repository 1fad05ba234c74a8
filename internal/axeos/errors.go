package axeos

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMinerUnreachable indicates no attempted endpoint produced a usable response.
	ErrMinerUnreachable = errors.New("miner unreachable")

	// ErrMalformedResponse indicates a success status with a body that is not JSON.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrResponseTooLarge indicates a telemetry body over the read limit.
	ErrResponseTooLarge = errors.New("response too large")

	// ErrBadStatus indicates a probe answered outside the 2xx range.
	ErrBadStatus = errors.New("unexpected status")
)

// ProbeFailure records why a single endpoint attempt was abandoned.
type ProbeFailure struct {
	Endpoint string
	Err      error
}

func (f ProbeFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Endpoint, f.Err)
}

// UnreachableError is returned when a miner could not be reached on any
// attempted endpoint.
type UnreachableError struct {
	Address  string
	Failures []ProbeFailure
}

func (e *UnreachableError) Error() string {
	msg := fmt.Sprintf("failed to connect to miner at %s", e.Address)
	if len(e.Failures) == 0 {
		return msg
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.String())
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}

// Unwrap lets callers match with errors.Is(err, ErrMinerUnreachable).
func (e *UnreachableError) Unwrap() error {
	return ErrMinerUnreachable
}

// SettingsRejectedError carries the firmware's reply to a refused settings patch.
// Body is the response body exactly as received.
type SettingsRejectedError struct {
	StatusCode int
	Body       string
}

func (e *SettingsRejectedError) Error() string {
	return fmt.Sprintf("failed with status %d: %s", e.StatusCode, e.Body)
}

// IsUnreachable reports whether err means the miner could not be reached.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrMinerUnreachable)
}

// AsSettingsRejected extracts a SettingsRejectedError from err.
func AsSettingsRejected(err error) (*SettingsRejectedError, bool) {
	var rejected *SettingsRejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
