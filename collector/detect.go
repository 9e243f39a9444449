package collector

import (
	"log/slog"
	"os"
	"sync"
)

const dockerSocket = "/var/run/docker.sock"

// Capabilities lists optional host features the monitor can use
type Capabilities struct {
	HasDockerSocket bool
	HasProcFS       bool
}

var (
	caps     Capabilities
	capsOnce sync.Once
)

// DetectCapabilities probes the host once per process and logs the result
// at debug level.
func DetectCapabilities() Capabilities {
	capsOnce.Do(func() {
		caps = Capabilities{
			HasDockerSocket: fileExists(dockerSocket),
			HasProcFS:       fileExists("/proc/self/stat"),
		}

		logCap("docker", caps.HasDockerSocket, "container listing")
		logCap("procfs", caps.HasProcFS, "process table")
	})
	return caps
}

func logCap(name string, available bool, desc string) {
	slog.Debug("capability",
		slog.String("name", name),
		slog.Bool("available", available),
		slog.String("used_for", desc),
	)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
