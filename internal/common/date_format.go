package common

import (
	"fmt"
	"time"
)

// Standard timestamp format constants
const (
	// FrameTimestamp is the compact UTC format used in cache keys, metadata
	// URLs, and upstream file naming
	FrameTimestamp = "20060102150405"

	// DisplayTimestamp is the human-readable format used for UI display
	DisplayTimestamp = "Jan 02, 2006 15:04 UTC"
)

// ParseFrameTimestamp parses a compact frame timestamp (YYYYMMDDHHMMSS)
func ParseFrameTimestamp(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}
	return time.Parse(FrameTimestamp, ts)
}

// FormatFrameTimestamp formats a time.Time to the compact frame format
func FormatFrameTimestamp(t time.Time) string {
	return t.UTC().Format(FrameTimestamp)
}

// FormatDisplayTimestamp formats a time.Time for UI display
func FormatDisplayTimestamp(t time.Time) string {
	return t.UTC().Format(DisplayTimestamp)
}
