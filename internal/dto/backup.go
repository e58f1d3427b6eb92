package dto

import "time"

// CreateBackupRequest names the reason recorded in the snapshot metadata.
type CreateBackupRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

// BackupResponse describes a created snapshot.
type BackupResponse struct {
	File        string         `json:"file"`
	GeneratedAt time.Time      `json:"generated_at"`
	Reason      string         `json:"reason"`
	Summary     map[string]int `json:"summary"`
	DownloadURL string         `json:"download_url,omitempty"`
}

// RestoreBackupRequest names the snapshot file to restore.
type RestoreBackupRequest struct {
	File string `json:"file" validate:"required"`
}
