package monitor

import (
	"context"
	"log/slog"
	"strings"

	"instawatch/collector"
	"instawatch/models"
)

const bytesPerMB = 1024 * 1024

// family is a group of processes identified by lower-case substring
// markers. When cmdlineMarkers is set, the command line must match too.
type family struct {
	name           string
	nameMarkers    []string
	cmdlineMarkers []string
}

var (
	familyInstaPy = family{
		name:           "instapy",
		nameMarkers:    []string{"python"},
		cmdlineMarkers: []string{"instapy", "quickstart.py"},
	}
	familyFirefox = family{name: "firefox", nameMarkers: []string{"firefox"}}
	familyXvfb    = family{name: "xvfb", nameMarkers: []string{"xvfb"}}
)

// InstaPyProcesses returns Python processes whose command line mentions
// InstaPy or quickstart.py.
func (m *Monitor) InstaPyProcesses(ctx context.Context) []models.ProcessSample {
	return m.scan(ctx, familyInstaPy)[0]
}

// FirefoxProcesses returns browser processes.
func (m *Monitor) FirefoxProcesses(ctx context.Context) []models.ProcessSample {
	return m.scan(ctx, familyFirefox)[0]
}

// XvfbProcesses returns virtual display server processes.
func (m *Monitor) XvfbProcesses(ctx context.Context) []models.ProcessSample {
	return m.scan(ctx, familyXvfb)[0]
}

// scan walks the process table once and returns the matches for each
// family, in order. Entries whose attributes cannot be read are skipped.
func (m *Monitor) scan(ctx context.Context, families ...family) [][]models.ProcessSample {
	result := make([][]models.ProcessSample, len(families))
	for i := range result {
		result[i] = []models.ProcessSample{}
	}

	procs, err := m.lister.Processes(ctx)
	if err != nil {
		slog.Warn("failed to list processes", slog.String("error", err.Error()))
		return result
	}

	for _, p := range procs {
		name, err := p.Name(ctx)
		if err != nil {
			continue
		}
		lowerName := strings.ToLower(name)

		for i, f := range families {
			if sample, ok := f.sample(ctx, p, name, lowerName); ok {
				result[i] = append(result[i], sample)
			}
		}
	}

	return result
}

func (f family) sample(ctx context.Context, p collector.Process, name, lowerName string) (models.ProcessSample, bool) {
	if !containsAny(lowerName, f.nameMarkers) {
		return models.ProcessSample{}, false
	}

	s := models.ProcessSample{PID: p.PID(), Name: name}

	if len(f.cmdlineMarkers) > 0 {
		cmdline, err := p.Cmdline(ctx)
		if err != nil {
			return models.ProcessSample{}, false
		}
		if !containsAny(strings.ToLower(cmdline), f.cmdlineMarkers) {
			return models.ProcessSample{}, false
		}
		s.Cmdline = cmdline
	}

	rss, err := p.MemoryRSS(ctx)
	if err != nil {
		slog.Debug("skipping process", slog.String("family", f.name), slog.Int("pid", int(p.PID())), slog.String("error", err.Error()))
		return models.ProcessSample{}, false
	}
	cpu, err := p.CPUPercent(ctx)
	if err != nil {
		slog.Debug("skipping process", slog.String("family", f.name), slog.Int("pid", int(p.PID())), slog.String("error", err.Error()))
		return models.ProcessSample{}, false
	}

	s.MemoryMB = float64(rss) / bytesPerMB
	s.CPUPercent = cpu
	return s, true
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
