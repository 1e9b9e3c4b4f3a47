package core

import "time"

// nowFunc is swapped out by tests that need deterministic timestamps.
var nowFunc = time.Now

// Timestamp returns the current time as an RFC3339 UTC string, the wire
// format the emulated platform uses everywhere.
func Timestamp() string {
	return nowFunc().UTC().Format(time.RFC3339)
}
