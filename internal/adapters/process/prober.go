package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"

	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

var _ ports.Prober = (*Prober)(nil)

// Prober spawns a subprocess and resolves once it closes, combining
// stdout and stderr in arrival order for diagnostics. Used by the
// ConfigLoader to run a task's configuration in probe mode.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe runs command with args in dir, using env as the whole
// environment, and waits for it to exit.
func (p *Prober) Probe(ctx context.Context, dir, command string, args []string, env []string) (ports.ProbeResult, error) {
	cmd := exec.CommandContext(ctx, command, args...) //nolint:gosec // command is the task's own declared script
	cmd.Dir = dir
	cmd.Env = env

	var stdout, stderr, combined lockedBuffer
	cmd.Stdout = combinedWriter{&stdout, &combined}
	cmd.Stderr = combinedWriter{&stderr, &combined}

	runErr := cmd.Run()

	result := ports.ProbeResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Combined: combined.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		result.ExitCode = 0
		return result, nil
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		return result, runErr
	}
}

// lockedBuffer is a bytes.Buffer safe for concurrent writes from stdout
// and stderr pipes, since both are drained on separate goroutines by
// exec.Cmd internally.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type combinedWriter struct {
	primary   *lockedBuffer
	secondary *lockedBuffer
}

func (w combinedWriter) Write(p []byte) (int, error) {
	n, err := w.primary.Write(p)
	if err != nil {
		return n, err
	}
	_, _ = w.secondary.Write(p)
	return n, nil
}
