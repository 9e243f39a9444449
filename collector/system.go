package collector

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"instawatch/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

const gb = 1024 * 1024 * 1024

// CollectSystemInfo samples host CPU, memory, root disk and load average.
// CPU usage is measured over the sample window. Probes that fail leave
// their fields at zero.
func CollectSystemInfo(ctx context.Context, sample time.Duration) models.SystemInfo {
	info := models.SystemInfo{}

	if percent, err := cpu.PercentWithContext(ctx, sample, false); err == nil && len(percent) > 0 {
		info.CPUPercent = percent[0]
	} else if err != nil {
		slog.Debug("cpu sample failed", slog.String("error", err.Error()))
	}

	if memInfo, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryPercent = memInfo.UsedPercent
		info.MemoryAvailableGB = float64(memInfo.Available) / gb
	} else {
		slog.Debug("memory stats failed", slog.String("error", err.Error()))
	}

	diskPath := "/"
	if runtime.GOOS == "windows" {
		diskPath = "C:\\"
	}
	if usage, err := disk.UsageWithContext(ctx, diskPath); err == nil {
		info.DiskUsage = usage.UsedPercent
	} else {
		slog.Debug("disk usage failed", slog.String("path", diskPath), slog.String("error", err.Error()))
	}

	// Load average (Unix only)
	if runtime.GOOS != "windows" {
		if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
			info.LoadAverage = []float64{avg.Load1, avg.Load5, avg.Load15}
		}
	}

	return info
}

// Platform identifies the host operating system
type Platform struct {
	OS      string // linux, darwin, windows...
	Distro  string // ubuntu, centos... empty when unknown
	Version string
}

// HostPlatform reports the host OS, falling back to runtime.GOOS when
// gopsutil cannot read host information.
func HostPlatform(ctx context.Context) Platform {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info == nil || info.OS == "" {
		return Platform{OS: runtime.GOOS}
	}
	return Platform{
		OS:      strings.ToLower(info.OS),
		Distro:  info.Platform,
		Version: info.PlatformVersion,
	}
}
