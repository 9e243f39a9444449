package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrCommandNotFound is returned when the binary is not on PATH.
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandTimeout is returned when the command outlives its timeout.
	ErrCommandTimeout = errors.New("command timed out")
)

// CommandResult is the outcome of a command that ran to completion
type CommandResult struct {
	ExitCode int
	Output   string
}

// CommandRunner runs external binaries. Tests replace it with a fake.
type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (CommandResult, error)
	LookPath(name string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// LookPath resolves name on PATH.
func (ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}
	return path, nil
}

// Run executes name with args and returns combined output. A non-zero exit
// is reported through CommandResult.ExitCode, not as an error. A zero
// timeout means no limit beyond ctx.
func (r ExecRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (CommandResult, error) {
	path, err := r.LookPath(name)
	if err != nil {
		return CommandResult{}, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return CommandResult{Output: string(out)}, fmt.Errorf("%s: %w", name, ErrCommandTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return CommandResult{ExitCode: exitErr.ExitCode(), Output: string(out)}, nil
	}
	if err != nil {
		return CommandResult{Output: string(out)}, fmt.Errorf("run %s: %w", name, err)
	}
	return CommandResult{Output: string(out)}, nil
}

// TailFile reads the last n lines from a file
func TailFile(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	filesize := stat.Size()

	// 64KB covers a handful of log lines with room to spare
	const blockSize int64 = 64 * 1024

	startPos := filesize - blockSize
	if startPos < 0 {
		startPos = 0
	}

	if _, err := file.Seek(startPos, io.SeekStart); err != nil {
		return nil, err
	}

	buf := make([]byte, filesize-startPos)
	if _, err := io.ReadFull(file, buf); err != nil {
		return nil, err
	}

	lines := strings.Split(string(buf), "\n")

	// Trailing newline leaves an empty last element
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return lines, nil
}
