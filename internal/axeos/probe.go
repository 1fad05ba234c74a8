package axeos

import (
	"bytes"
	"encoding/json"
)

// telemetryProbe describes one candidate telemetry endpoint.
type telemetryProbe struct {
	path  string
	parse func(body []byte) (json.RawMessage, error)
}

// telemetryProbes lists the read-only endpoints in preference order. The more
// complete info endpoint comes first.
var telemetryProbes = []telemetryProbe{
	{path: "/api/system/info", parse: parseDocument},
	{path: "/api/system/statistics", parse: parseDocument},
}

// Endpoints returns the telemetry endpoint paths in probe order.
func Endpoints() []string {
	paths := make([]string, len(telemetryProbes))
	for i, p := range telemetryProbes {
		paths[i] = p.path
	}
	return paths
}

// parseDocument accepts any well-formed JSON body and returns it unchanged.
func parseDocument(body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return nil, ErrMalformedResponse
	}
	return json.RawMessage(body), nil
}

// tryInOrder runs attempt against each candidate sequentially and stops at the
// first success. Failures of earlier candidates are returned for reporting.
func tryInOrder[C, R any](candidates []C, label func(C) string, attempt func(C) (R, error)) (C, R, []ProbeFailure, bool) {
	var (
		zeroC    C
		zeroR    R
		failures []ProbeFailure
	)
	for _, candidate := range candidates {
		result, err := attempt(candidate)
		if err != nil {
			failures = append(failures, ProbeFailure{Endpoint: label(candidate), Err: err})
			continue
		}
		return candidate, result, failures, true
	}
	return zeroC, zeroR, failures, false
}
