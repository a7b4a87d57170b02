package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the sun times drop the
	// arrows and the counters move under the temperature.
	LayoutCompactWidth = 44

	// FaceWidth is the inner width of the face panel.
	FaceWidth = 36
)

// Log pane limits.
const (
	// LogTailLines is the number of log lines shown in the log pane.
	LogTailLines = 500
)

// Timing constants.
const (
	// RequestTimeout bounds each location, zone, weather and ping request.
	RequestTimeout = 15 * time.Second
)
