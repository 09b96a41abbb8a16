// Package buildinfo exposes build-time identification for the health
// endpoint.
package buildinfo

import "time"

// Set via -ldflags at build time
var (
	BuildTime  string // when the binary was compiled
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)

// Summary is the map rendered by the health endpoint
func Summary() map[string]string {
	return map[string]string{
		"build_time":  BuildTime,
		"commit_hash": CommitHash,
		"started_at":  StartTime,
	}
}
