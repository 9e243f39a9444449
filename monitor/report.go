package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"instawatch/models"
)

const (
	maxLogFilesShown = 5
	recentLogLines   = 5
	cmdlinePreview   = 50
)

// Summary takes one process-table snapshot and derives the status.
func (m *Monitor) Summary(ctx context.Context) models.StatusSummary {
	return m.snapshot(ctx).Summary
}

// snapshot fills the summary and the three process lists from a single
// scan so the counts always agree with the lists.
func (m *Monitor) snapshot(ctx context.Context) models.StatusReport {
	lists := m.scan(ctx, familyInstaPy, familyFirefox, familyXvfb)
	instapy, firefox, xvfb := lists[0], lists[1], lists[2]

	return models.StatusReport{
		Summary: models.StatusSummary{
			Status:           models.DeriveStatus(len(instapy) > 0, len(firefox) > 0, len(xvfb) > 0),
			InstaPyProcesses: len(instapy),
			FirefoxProcesses: len(firefox),
			XvfbProcesses:    len(xvfb),
			Timestamp:        m.now(),
		},
		InstaPyProcesses: instapy,
		FirefoxProcesses: firefox,
		XvfbProcesses:    xvfb,
		LogFiles:         []models.LogFileInfo{},
	}
}

// Collect builds the full report: processes, system usage, logs, database
// and, when available, network reachability and InstaPy containers.
func (m *Monitor) Collect(ctx context.Context) models.StatusReport {
	report := m.snapshot(ctx)
	report.SystemInfo = m.systemInfo(ctx)
	report.LogFiles = m.LogFiles()
	report.DatabaseInfo = m.DatabaseInfo()

	if m.cfg.PingHost != "" {
		network := m.ping(ctx, m.cfg.PingHost)
		report.NetworkInfo = &network
	}
	report.Containers = m.containers(ctx)

	return report
}

// PrintStatus writes the human-readable report to w. The detailed form
// adds system usage, log files, the database and supplemental sections.
func (m *Monitor) PrintStatus(ctx context.Context, w io.Writer, detailed bool) error {
	var report models.StatusReport
	if detailed {
		report = m.Collect(ctx)
	} else {
		report = m.snapshot(ctx)
	}

	var b strings.Builder
	m.render(&b, report, detailed)
	_, err := io.WriteString(w, b.String())
	return err
}

// SaveJSON collects the full report and writes it to path, replacing any
// existing file.
func (m *Monitor) SaveJSON(ctx context.Context, path string) (models.StatusReport, error) {
	report := m.Collect(ctx)
	if err := WriteJSON(path, report); err != nil {
		return report, err
	}
	return report, nil
}

// WriteJSON writes report as indented JSON to path.
func WriteJSON(path string, report models.StatusReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (m *Monitor) render(b *strings.Builder, r models.StatusReport, detailed bool) {
	s := r.Summary

	b.WriteString("InstaPy Status Monitor\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(b, "Status: %s %s\n", statusMarker(s.Status), strings.ToUpper(string(s.Status)))
	fmt.Fprintf(b, "Timestamp: %s\n", s.Timestamp.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(b, "Workspace: %s\n\n", m.cfg.Workspace)

	b.WriteString("Process Information:\n")
	if len(r.InstaPyProcesses) > 0 {
		fmt.Fprintf(b, "  InstaPy: %d process(es)\n", len(r.InstaPyProcesses))
		for _, p := range r.InstaPyProcesses {
			fmt.Fprintf(b, "    PID %d: %s\n", p.PID, preview(p.Cmdline, cmdlinePreview))
			fmt.Fprintf(b, "      Memory: %.1f MB, CPU: %.1f%%\n", p.MemoryMB, p.CPUPercent)
		}
	} else {
		b.WriteString("  InstaPy: No processes running\n")
	}
	writeFamilyCount(b, "Firefox", len(r.FirefoxProcesses))
	writeFamilyCount(b, "Xvfb", len(r.XvfbProcesses))
	b.WriteString("\n")

	if detailed {
		m.renderDetails(b, r)
	}

	b.WriteString("Recommendations:\n")
	switch s.Status {
	case models.StatusRunning:
		b.WriteString("  ✓ InstaPy is running normally\n")
	case models.StatusPartial:
		b.WriteString("  ! Some components are missing. Check Firefox and Xvfb\n")
	case models.StatusStopped:
		b.WriteString("  ✗ InstaPy is not running. Start with: python quickstart.py\n")
	default:
		b.WriteString("  ? InstaPy status could not be determined\n")
	}
	if len(r.FirefoxProcesses) == 0 {
		b.WriteString("  - Firefox is not running. Check installation\n")
	}
	if len(r.XvfbProcesses) == 0 {
		b.WriteString("  - Xvfb is not running. Start with: Xvfb :99 -screen 0 1024x768x24 &\n")
	}
}

func (m *Monitor) renderDetails(b *strings.Builder, r models.StatusReport) {
	sys := r.SystemInfo
	b.WriteString("System Information:\n")
	fmt.Fprintf(b, "  CPU Usage: %.1f%%\n", sys.CPUPercent)
	fmt.Fprintf(b, "  Memory Usage: %.1f%%\n", sys.MemoryPercent)
	fmt.Fprintf(b, "  Available Memory: %.1f GB\n", sys.MemoryAvailableGB)
	fmt.Fprintf(b, "  Disk Usage: %.1f%%\n", sys.DiskUsage)
	if len(sys.LoadAverage) > 0 {
		fmt.Fprintf(b, "  Load Average: %.2f\n", sys.LoadAverage[0])
	}
	b.WriteString("\n")

	b.WriteString("Log Files:\n")
	if len(r.LogFiles) == 0 {
		b.WriteString("  No log files found\n")
	}
	for i, f := range r.LogFiles {
		if i == maxLogFilesShown {
			break
		}
		fmt.Fprintf(b, "  %s: %.2f MB\n", f.Name, f.SizeMB)
		fmt.Fprintf(b, "    Modified: %s\n", f.Modified.Format("2006-01-02T15:04:05"))
	}
	if name, lines := m.RecentLogLines(recentLogLines); len(lines) > 0 {
		fmt.Fprintf(b, "  Last lines of %s:\n", name)
		for _, line := range lines {
			fmt.Fprintf(b, "    %s\n", line)
		}
	}
	b.WriteString("\n")

	b.WriteString("Database:\n")
	db := r.DatabaseInfo
	if db.Exists && db.SizeMB != nil && db.Modified != nil {
		b.WriteString("  Status: Exists\n")
		fmt.Fprintf(b, "  Size: %.2f MB\n", *db.SizeMB)
		fmt.Fprintf(b, "  Modified: %s\n", db.Modified.Format("2006-01-02T15:04:05"))
	} else {
		b.WriteString("  Status: Not found\n")
	}
	b.WriteString("\n")

	if n := r.NetworkInfo; n != nil {
		b.WriteString("Network:\n")
		switch {
		case n.Error != "":
			fmt.Fprintf(b, "  %s: unreachable (%s)\n", n.Host, n.Error)
		case n.Reachable:
			fmt.Fprintf(b, "  %s: reachable, avg %.1f ms, loss %.0f%%\n", n.Host, n.AvgRTTms, n.PacketLoss)
		default:
			fmt.Fprintf(b, "  %s: unreachable, loss %.0f%%\n", n.Host, n.PacketLoss)
		}
		b.WriteString("\n")
	}

	if len(r.Containers) > 0 {
		b.WriteString("Containers:\n")
		for _, c := range r.Containers {
			fmt.Fprintf(b, "  %s (%s): %s\n", c.Name, c.Image, c.Status)
		}
		b.WriteString("\n")
	}
}

func writeFamilyCount(b *strings.Builder, label string, n int) {
	if n > 0 {
		fmt.Fprintf(b, "  %s: %d process(es)\n", label, n)
		return
	}
	fmt.Fprintf(b, "  %s: No processes running\n", label)
}

func statusMarker(s models.Status) string {
	switch s {
	case models.StatusRunning:
		return "[+]"
	case models.StatusPartial:
		return "[~]"
	case models.StatusStopped:
		return "[-]"
	default:
		return "[?]"
	}
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
