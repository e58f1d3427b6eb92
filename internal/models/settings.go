package models

import "time"

// Setting is a key/value configuration row.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Settings keys maintained by the backup snapshotter.
const (
	SettingLatestBackupAt     = "latest_backup_at"
	SettingLatestBackupFile   = "latest_backup_file"
	SettingLatestBackupReason = "latest_backup_reason"
)
