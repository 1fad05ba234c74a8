// Package state provides thread-safe state shared between the poller and the UI.
//
// # Overview
//
// The Store keeps the latest telemetry for every miner that has been fetched,
// keyed by address, plus the single "active" address the poller follows.
//
//	Producer (poller / refresh cmd):     Consumer (UI):
//	  client.FetchTelemetry(active)        store.Get(selected)
//	  store.Update(addr, tel, err) ──────→ render detail pane
//
// # Update Semantics
//
//	// Success: replace telemetry and the parsed snapshot
//	store.Update(addr, &telemetry, nil)
//	→ ConsecutiveFailures = 0, LastError = nil
//
//	// Failure: keep the last good data, record the error
//	store.Update(addr, nil, err)
//	→ ConsecutiveFailures++, LastError = err
//
// A document that is valid JSON but not an object is kept raw with
// HasSnapshot=false and the decode error recorded. The miner did answer, so
// the failure counter is not incremented.
//
// # Alerts
//
// When a watcher is set with SetAlerts, every successfully parsed snapshot is
// passed to alerts.Watcher.Observe after the store lock is released. Failed
// polls and raw-only documents are not observed. Forget clears the watcher's
// memory of the miner too.
//
// # Offline Detection
//
// MinerState.IsOffline reports true after two consecutive failures, so a
// single dropped poll does not flip the UI to offline.
//
// # Copy Semantics
//
// Get and Snapshot return copies: the telemetry document bytes are duplicated
// and errors are re-wrapped so callers can never mutate stored state.
package state
