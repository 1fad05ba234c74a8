// Package axeos provides an HTTP client for the AxeOS miner management API.
//
// # Overview
//
// The client is a thin, stateless adapter between the shell and one miner. It
// knows three operations:
//
//   - FetchTelemetry: read-only status document
//   - Restart: fire-and-forget reboot command
//   - ApplySettings: sparse PATCH of pool, fan and tuning settings
//
// Every call receives the miner address from the caller. Nothing is cached
// between calls: each operation builds its own transport and closes it before
// returning.
//
// # Telemetry Discovery
//
// Firmware builds expose status under different paths. FetchTelemetry walks an
// ordered list of candidates and returns the first success:
//
//	GET /api/system/info        (tried first, richer payload)
//	GET /api/system/statistics  (fallback)
//
// A candidate is skipped on a transport error, a non-2xx status, or a body
// that is not JSON. Probing is strictly sequential; later candidates are never
// contacted once one succeeds. When every candidate fails the error is an
// *UnreachableError naming the address and each failed attempt.
//
// # Normalization
//
// The returned Telemetry holds the document exactly as served. Snapshot()
// extracts the known fields into a Snapshot whose fields are all optional, so
// a firmware that omits or mistypes a field never fails the caller.
//
// # Commands
//
//	POST  /api/system/restart   no body, 5s timeout
//	PATCH /api/system           JSON body with populated keys only, 10s timeout
//
// Restart treats any completed response as success; the status code is kept
// in RestartResult for diagnostics. ApplySettings reports a non-2xx reply as
// a *SettingsRejectedError whose Body is the firmware's message verbatim.
//
// # Request Handling
//
// All requests:
//   - Set User-Agent: axedeck/1.0 (override with WithUserAgent)
//   - Never follow redirects
//   - Never send an Origin header
//   - Honour ctx plus a fixed per-operation timeout
//
// There is no retry or backoff anywhere in this package.
//
// # Errors
//
//   - ErrMinerUnreachable: match with errors.Is or IsUnreachable
//   - ErrMalformedResponse: recorded on a probe whose body was not JSON
//   - ErrResponseTooLarge: recorded on a probe whose body exceeded 1 MiB
//   - *SettingsRejectedError: extract with AsSettingsRejected
package axeos
