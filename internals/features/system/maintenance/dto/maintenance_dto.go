package dto

import "time"

const (
	ActionClearCache         = "clear-cache"
	ActionBackup             = "backup"
	ActionClearOldLogs       = "clear_old_logs"
	ActionClearPageViews     = "clear_page_views"
	ActionClearNotifications = "clear_notifications"
)

type MaintenanceRequest struct {
	Action string `json:"action"`
}

// BackupFile isi file JSON backup
type BackupFile struct {
	ExportedAt time.Time      `json:"exported_at"`
	Version    string         `json:"version"`
	Data       map[string]any `json:"data"`
	Counts     map[string]int `json:"counts"`
}

type BackupResult struct {
	FileName string         `json:"file_name"`
	Counts   map[string]int `json:"counts"`
}

type PurgeResult struct {
	Deleted int64 `json:"deleted"`
}
