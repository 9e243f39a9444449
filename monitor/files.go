package monitor

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"instawatch/collector"
	"instawatch/models"
)

const logExt = ".log"

// LogFiles lists *.log files in the workspace log directory, most recently
// modified first. A missing directory yields an empty list.
func (m *Monitor) LogFiles() []models.LogFileInfo {
	files := []models.LogFileInfo{}

	entries, err := os.ReadDir(m.logsPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to read log directory", slog.String("path", m.logsPath), slog.String("error", err.Error()))
		}
		return files
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), logExt) {
			continue
		}
		// os.Stat follows symlinks so a linked log reports the target's
		// size and mtime.
		info, err := os.Stat(filepath.Join(m.logsPath, entry.Name()))
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, models.LogFileInfo{
			Name:     entry.Name(),
			SizeMB:   float64(info.Size()) / bytesPerMB,
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files
}

// RecentLogLines returns the last n lines of the newest log file and its
// name. It returns nil when there is no readable log.
func (m *Monitor) RecentLogLines(n int) (string, []string) {
	files := m.LogFiles()
	if len(files) == 0 {
		return "", nil
	}

	lines, err := collector.TailFile(filepath.Join(m.logsPath, files[0].Name), n)
	if err != nil {
		slog.Debug("failed to tail log", slog.String("file", files[0].Name), slog.String("error", err.Error()))
		return files[0].Name, nil
	}
	return files[0].Name, lines
}

// DatabaseInfo reports whether the workspace database exists, with its
// size and modification time when it does.
func (m *Monitor) DatabaseInfo() models.DatabaseInfo {
	info, err := os.Stat(m.dbPath)
	if err != nil || info.IsDir() {
		return models.DatabaseInfo{Exists: false}
	}

	size := float64(info.Size()) / bytesPerMB
	modified := info.ModTime()
	return models.DatabaseInfo{
		Exists:   true,
		SizeMB:   &size,
		Modified: &modified,
	}
}
