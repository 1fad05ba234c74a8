package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which header details are dropped.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for a narrower miner list.
	LayoutExtraWideWidth = 160
)

// Chrome rows around the main content: header, command bar, status line.
const chromeRows = 3

// Log display limits.
const (
	// LogTailLines is the number of lines read from the end of the log file.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// StatusTTL is how long an action result stays in the status line.
	StatusTTL = 15 * time.Second
)
