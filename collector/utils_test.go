package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExecRunnerExitCodes(t *testing.T) {
	cases := []struct {
		name     string
		script   string
		wantCode int
		wantOut  string
	}{
		{name: "success", script: "echo ready", wantCode: 0, wantOut: "ready"},
		{name: "non_zero", script: "echo broken >&2; exit 3", wantCode: 3, wantOut: "broken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ExecRunner{}.Run(context.Background(), 5*time.Second, "sh", "-c", tc.script)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.ExitCode != tc.wantCode {
				t.Fatalf("expected exit code %d, got %d", tc.wantCode, res.ExitCode)
			}
			if !strings.Contains(res.Output, tc.wantOut) {
				t.Fatalf("expected output to contain %q, got %q", tc.wantOut, res.Output)
			}
		})
	}
}

func TestExecRunnerNotFound(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), time.Second, "instawatch-no-such-binary")
	if !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}

	if _, err := (ExecRunner{}).LookPath("instawatch-no-such-binary"); !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound from LookPath, got %v", err)
	}
}

func TestExecRunnerTimeout(t *testing.T) {
	start := time.Now()
	_, err := ExecRunner{}.Run(context.Background(), 100*time.Millisecond, "sh", "-c", "sleep 5")
	if !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("expected ErrCommandTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}
}

func TestTailFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instapy.log")

	var b strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, err := TailFile(path, 3)
	if err != nil {
		t.Fatalf("TailFile failed: %v", err)
	}
	want := []string{"line 18", "line 19", "line 20"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d (%q)", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	short, err := TailFile(path, 100)
	if err != nil {
		t.Fatalf("TailFile failed: %v", err)
	}
	if len(short) != 20 {
		t.Fatalf("expected all 20 lines, got %d", len(short))
	}

	if _, err := TailFile(filepath.Join(dir, "missing.log"), 3); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
