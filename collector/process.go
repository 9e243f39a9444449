package collector

import (
	"context"
	"errors"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// Process is one entry of the OS process table. Every accessor may fail
// when the process has exited or is not readable by the caller.
type Process interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	Cmdline(ctx context.Context) (string, error)
	MemoryRSS(ctx context.Context) (uint64, error)
	CPUPercent(ctx context.Context) (float64, error)
}

// ProcessLister enumerates the live process table.
type ProcessLister interface {
	Processes(ctx context.Context) ([]Process, error)
}

// ErrNoProcFS is returned on Linux when /proc is not mounted, as in some
// minimal containers.
var ErrNoProcFS = errors.New("procfs not mounted")

// PsutilLister reads the process table through gopsutil.
type PsutilLister struct{}

// Processes returns a handle for every PID visible at call time.
func (PsutilLister) Processes(ctx context.Context) ([]Process, error) {
	if err := processTableReadable(runtime.GOOS, DetectCapabilities()); err != nil {
		return nil, err
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Process, 0, len(procs))
	for _, p := range procs {
		result = append(result, psutilProcess{p: p})
	}
	return result, nil
}

type psutilProcess struct {
	p *process.Process
}

func (p psutilProcess) PID() int32 {
	return p.p.Pid
}

func (p psutilProcess) Name(ctx context.Context) (string, error) {
	return p.p.NameWithContext(ctx)
}

func (p psutilProcess) Cmdline(ctx context.Context) (string, error) {
	return p.p.CmdlineWithContext(ctx)
}

func (p psutilProcess) MemoryRSS(ctx context.Context) (uint64, error) {
	info, err := p.p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

func (p psutilProcess) CPUPercent(ctx context.Context) (float64, error) {
	return p.p.CPUPercentWithContext(ctx)
}

// processTableReadable reports whether gopsutil can enumerate processes on
// goos. Only Linux depends on procfs.
func processTableReadable(goos string, caps Capabilities) error {
	if goos == "linux" && !caps.HasProcFS {
		return ErrNoProcFS
	}
	return nil
}
