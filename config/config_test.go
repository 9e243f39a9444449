package config

import (
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INSTAPY_WORKSPACE", "INSTAPY_STATUS_OUTPUT", "INSTAPY_CPU_SAMPLE_SECONDS",
		"INSTAPY_PYTHON", "API_URL", "API_KEY", "INSTAPY_LISTEN_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Load()
	cases := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{name: "Workspace", got: cfg.Workspace, want: filepath.Join(home, "InstaPy")},
		{name: "OutputFile", got: cfg.OutputFile, want: "instapy_status.json"},
		{name: "CPUSample", got: cfg.CPUSample, want: time.Second},
		{name: "Python", got: cfg.Python, want: "python3"},
		{name: "APIURL", got: cfg.APIURL, want: ""},
		{name: "ListenAddr", got: cfg.ListenAddr, want: "127.0.0.1:8787"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, tc.got)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("INSTAPY_WORKSPACE", "/srv/instapy")
	t.Setenv("INSTAPY_STATUS_OUTPUT", "/tmp/status.json")
	t.Setenv("INSTAPY_CPU_SAMPLE_SECONDS", "0.5")
	t.Setenv("INSTAPY_PING_HOST", "")
	t.Setenv("API_URL", "https://example.test/status")

	cfg := Load()
	if cfg.Workspace != "/srv/instapy" {
		t.Fatalf("expected workspace override, got %q", cfg.Workspace)
	}
	if cfg.OutputFile != "/tmp/status.json" {
		t.Fatalf("expected output override, got %q", cfg.OutputFile)
	}
	if cfg.CPUSample != 500*time.Millisecond {
		t.Fatalf("expected 500ms sample, got %v", cfg.CPUSample)
	}
	if cfg.PingHost != "" {
		t.Fatalf("expected ping disabled, got %q", cfg.PingHost)
	}
	if cfg.APIURL != "https://example.test/status" {
		t.Fatalf("expected API URL override, got %q", cfg.APIURL)
	}
}

func TestLoadInvalidSampleFallsBack(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("INSTAPY_CPU_SAMPLE_SECONDS", "soon")

	if got := Load().CPUSample; got != time.Second {
		t.Fatalf("expected default sample, got %v", got)
	}
}
