// Package alerts watches stored telemetry for conditions worth interrupting
// the user for.
//
// Two checks run on every snapshot the state store records:
//
//	temperature      ASIC temp at or above the threshold (default 70 °C),
//	                 repeated at most once per five minutes per miner
//	best difficulty  best difficulty rose by more than 1e9 over the last
//	                 value seen, and that last value was non-zero
//
// The first snapshot of a miner only seeds its best difficulty, so starting
// axedeck never reports an old best as new.
//
// Alerts are logged at warn level and kept in a short backlog. The UI asks
// for everything after the last sequence number it showed:
//
//	w := alerts.New(cfg.TempWarning, alerts.WithLogger(logger))
//	store.SetAlerts(w)
//	...
//	for _, a := range w.Since(lastSeen) {
//		lastSeen = a.Seq
//	}
package alerts
