package models

import "time"

// SystemInfo holds host-wide resource usage
type SystemInfo struct {
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryAvailableGB float64 `json:"memory_available_gb"`
	DiskUsage         float64 `json:"disk_usage"`
	// LoadAverage is 1, 5 and 15 minute load, nil where the platform has none.
	LoadAverage []float64 `json:"load_average"`
}

// LogFileInfo describes one log file in the workspace
type LogFileInfo struct {
	Name     string    `json:"name"`
	SizeMB   float64   `json:"size_mb"`
	Modified time.Time `json:"modified"`
}

// DatabaseInfo describes the workspace database file. Size and Modified are
// nil when the file does not exist.
type DatabaseInfo struct {
	Exists   bool       `json:"exists"`
	SizeMB   *float64   `json:"size_mb,omitempty"`
	Modified *time.Time `json:"modified,omitempty"`
}
