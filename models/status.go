package models

import "time"

// Status is the overall InstaPy state derived from running process families.
type Status string

const (
	StatusRunning Status = "running"
	StatusPartial Status = "partial"
	StatusStopped Status = "stopped"
	// StatusUnknown is a declared state that DeriveStatus never returns today.
	StatusUnknown Status = "unknown"
)

// DeriveStatus applies the precedence rules: all three families → running,
// InstaPy alone → partial, otherwise stopped.
func DeriveStatus(instapy, firefox, xvfb bool) Status {
	switch {
	case instapy && firefox && xvfb:
		return StatusRunning
	case instapy:
		return StatusPartial
	default:
		return StatusStopped
	}
}

// StatusSummary is the aggregate view of one process-table snapshot
type StatusSummary struct {
	Status           Status    `json:"status"`
	InstaPyProcesses int       `json:"instapy_processes"`
	FirefoxProcesses int       `json:"firefox_processes"`
	XvfbProcesses    int       `json:"xvfb_processes"`
	Timestamp        time.Time `json:"timestamp"`
}

// StatusReport is the document written by the JSON export and served over HTTP.
type StatusReport struct {
	Summary          StatusSummary   `json:"summary"`
	InstaPyProcesses []ProcessSample `json:"instapy_processes"`
	FirefoxProcesses []ProcessSample `json:"firefox_processes"`
	XvfbProcesses    []ProcessSample `json:"xvfb_processes"`
	SystemInfo       SystemInfo      `json:"system_info"`
	LogFiles         []LogFileInfo   `json:"log_files"`
	DatabaseInfo     DatabaseInfo    `json:"database_info"`
	NetworkInfo      *NetworkInfo    `json:"network_info,omitempty"`
	Containers       []ContainerInfo `json:"containers,omitempty"`
}
