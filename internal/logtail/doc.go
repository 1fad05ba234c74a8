// Package logtail reads the tail of axedeck's own log file for the logs view.
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) regardless of file size. A missing file returns
// no lines and no error.
//
// LevelOf extracts the level column from a zap console-encoded line so the UI
// can color it:
//
//	2026-10-18T09:12:01Z	WARN	axeos/client.go:160	telemetry probes exhausted	{"address": "10.0.0.5"}
//	                    	^^^^
package logtail
