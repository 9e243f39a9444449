package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultOutputFile = "instapy_status.json"
	DefaultPingHost   = "www.instagram.com"
	DefaultListenAddr = "127.0.0.1:8787"
	DefaultPython     = "python3"
)

// Config holds settings shared by the checker and the monitor
type Config struct {
	// Workspace is the InstaPy root holding logs/ and db/.
	Workspace  string
	OutputFile string
	CPUSample  time.Duration
	// PingHost is probed in detailed reports; empty disables the probe.
	PingHost   string
	Python     string
	APIURL     string
	APIKey     string
	ListenAddr string
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	// Seconds, default 1
	sample := time.Second
	if raw := os.Getenv("INSTAPY_CPU_SAMPLE_SECONDS"); raw != "" {
		if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs >= 0 {
			sample = time.Duration(secs * float64(time.Second))
		}
	}

	pingHost := DefaultPingHost
	if v, ok := os.LookupEnv("INSTAPY_PING_HOST"); ok {
		pingHost = v
	}

	return &Config{
		Workspace:  getEnv("INSTAPY_WORKSPACE", DefaultWorkspace()),
		OutputFile: getEnv("INSTAPY_STATUS_OUTPUT", DefaultOutputFile),
		CPUSample:  sample,
		PingHost:   pingHost,
		Python:     getEnv("INSTAPY_PYTHON", DefaultPython),
		APIURL:     getEnv("API_URL", ""),
		APIKey:     getEnv("API_KEY", ""),
		ListenAddr: getEnv("INSTAPY_LISTEN_ADDR", DefaultListenAddr),
	}
}

// DefaultWorkspace returns ~/InstaPy, or ./InstaPy when the home directory
// cannot be determined.
func DefaultWorkspace() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "InstaPy"
	}
	return filepath.Join(home, "InstaPy")
}

// getEnv returns the variable or fallback when unset or empty
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
