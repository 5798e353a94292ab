// Package runner executes one variant's scripts under /bin/sh and
// measures the run: wall-clock duration from the monotonic clock and
// peak RSS from the child's rusage.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/cloud-bulldozer/shbench/pkg/sample"
)

// Result is one successful measurement of a variant's run script.
type Result struct {
	Duration sample.Duration
	MaxRSS   sample.MemUsage
}

var (
	// ErrWarmupFailed - the warmup script exited non-zero; no sample.
	ErrWarmupFailed = errors.New("warmup script failed")
	// ErrBodyFailed - the run script exited non-zero; no sample.
	ErrBodyFailed = errors.New("run script failed")
)

// Runner executes a warmup/run script pair and measures the run.
type Runner interface {
	Run(warmup, body string) (Result, error)
}

// ShellRunner spawns scripts with /bin/sh -c, streaming child output
// to the given writers (typically a tee of the terminal and the run
// log).
type ShellRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner returns a ShellRunner wired to the given streams.
func NewShellRunner(stdout, stderr io.Writer) *ShellRunner {
	return &ShellRunner{Stdout: stdout, Stderr: stderr}
}

// Run executes the warmup script (skipped when empty), then the run
// script under the clock. Children run strictly sequentially; the
// caller blocks until the child exits.
func (r *ShellRunner) Run(warmup, body string) (Result, error) {
	if strings.TrimSpace(warmup) != "" {
		if err := r.spawn(warmup).Run(); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrWarmupFailed, err)
		}
	}

	cmd := r.spawn(body)
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrBodyFailed, err)
	}
	elapsed := time.Since(start)

	ru, ok := cmd.ProcessState.SysUsage().(*syscall.Rusage)
	if !ok || ru.Maxrss == 0 {
		panic("runner: maxrss not available on this platform")
	}

	return Result{
		Duration: sample.DurationFromNanos(elapsed.Nanoseconds()),
		MaxRSS:   sample.MemUsageFromBytes(maxRSSBytes(int64(ru.Maxrss))),
	}, nil
}

func (r *ShellRunner) spawn(script string) *exec.Cmd {
	cmd := exec.Command("/bin/sh", "-c", script)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd
}

// getrusage reports maxrss in kilobytes on Linux and bytes on Darwin.
func maxRSSBytes(v int64) int64 {
	if runtime.GOOS == "darwin" {
		return v
	}
	return v * 1024
}
