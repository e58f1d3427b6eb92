package models

import "time"

// BackupManifest is the on-disk JSON document for a snapshot.
type BackupManifest struct {
	GeneratedAt time.Time                   `json:"generated_at"`
	Reason      string                      `json:"reason"`
	Context     string                      `json:"context"`
	Summary     map[string]int              `json:"summary"`
	Tables      map[string][]map[string]any `json:"tables"`
}

// RestoreResult reports the outcome of a restore attempt. Restore failures
// are surfaced through Success=false, never as an unhandled error.
type RestoreResult struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Restored map[string]int `json:"restored,omitempty"`
}
