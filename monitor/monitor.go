// Package monitor reports whether InstaPy is running on this host by
// inspecting the process table, the workspace logs and the database file.
package monitor

import (
	"context"
	"path/filepath"
	"time"

	"instawatch/collector"
	"instawatch/models"
)

const (
	dbFileName  = "instapy.db"
	pingCount   = 3
	pingTimeout = 5 * time.Second
)

// containerMarkers select InstaPy containers by name or image.
var containerMarkers = []string{"instapy"}

// Config holds the monitor settings. Workspace must already be resolved by
// the caller; an empty value means the current directory.
type Config struct {
	Workspace string
	// CPUSample is the window used to measure host CPU usage.
	CPUSample time.Duration
	// PingHost is probed for reachability; empty disables the probe.
	PingHost string
}

// Monitor inspects one InstaPy workspace.
type Monitor struct {
	cfg      Config
	logsPath string
	dbPath   string
	lister   collector.ProcessLister

	now        func() time.Time
	systemInfo func(ctx context.Context) models.SystemInfo
	ping       func(ctx context.Context, host string) models.NetworkInfo
	containers func(ctx context.Context) []models.ContainerInfo
}

// New returns a Monitor for cfg.Workspace reading processes from lister.
func New(cfg Config, lister collector.ProcessLister) *Monitor {
	return &Monitor{
		cfg:      cfg,
		logsPath: filepath.Join(cfg.Workspace, "logs"),
		dbPath:   filepath.Join(cfg.Workspace, "db", dbFileName),
		lister:   lister,
		now:      time.Now,
		systemInfo: func(ctx context.Context) models.SystemInfo {
			return collector.CollectSystemInfo(ctx, cfg.CPUSample)
		},
		ping: func(ctx context.Context, host string) models.NetworkInfo {
			return collector.Ping(ctx, host, pingCount, pingTimeout)
		},
		containers: func(ctx context.Context) []models.ContainerInfo {
			return collector.CollectContainers(ctx, containerMarkers)
		},
	}
}

// Workspace returns the configured workspace root.
func (m *Monitor) Workspace() string { return m.cfg.Workspace }

// LogsPath returns the directory scanned for log files.
func (m *Monitor) LogsPath() string { return m.logsPath }

// DatabasePath returns the database file inspected by DatabaseInfo.
func (m *Monitor) DatabasePath() string { return m.dbPath }

// SystemInfo samples host resource usage. It blocks for the CPU sample
// window.
func (m *Monitor) SystemInfo(ctx context.Context) models.SystemInfo {
	return m.systemInfo(ctx)
}
