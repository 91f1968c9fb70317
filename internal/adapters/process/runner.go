// Package process spawns task child processes as detached process groups
// and can terminate their entire descendant tree, without allocating a
// pty (interactive terminal emulation for child processes is out of scope).
package process

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"go.trai.ch/zerr"

	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

var _ ports.ProcessRunner = (*Runner)(nil)

const ipcChannelBuffer = 16

// Runner implements ports.ProcessRunner using os/exec, with a dedicated
// extra pipe file descriptor standing in for Node's IPC channel: the
// child writes newline-delimited messages to it, and a single line equal
// to the sentinel "task-done" declares readiness.
type Runner struct{}

// NewRunner creates a new process runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Start spawns spec as a new, detached process group.
func (r *Runner) Start(_ context.Context, spec ports.ProcessSpec) (ports.RunningProcess, error) {
	ipcRead, ipcWrite, err := os.Pipe()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create ipc pipe")
	}

	cmd := exec.Command(spec.Command, spec.Args...) //nolint:gosec // spec.Command is the task's own declared script
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	cmd.ExtraFiles = []*os.File{ipcWrite}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	if err := cmd.Start(); err != nil {
		_ = ipcRead.Close()
		_ = ipcWrite.Close()
		return nil, zerr.Wrap(err, "failed to start process")
	}
	// The write end now lives in the child's fd table; close our copy so
	// ipcRead observes EOF once the child (and any fork it makes) closes it.
	_ = ipcWrite.Close()

	proc := &runningProcess{
		cmd:      cmd,
		pid:      cmd.Process.Pid,
		messages: make(chan string, ipcChannelBuffer),
		waitDone: make(chan struct{}),
	}
	go proc.readIPC(ipcRead)
	go proc.wait()

	return proc, nil
}

type runningProcess struct {
	cmd      *exec.Cmd
	pid      int
	messages chan string
	waitErr  error
	waitCode int
	waitDone chan struct{}
}

func (p *runningProcess) Pid() int {
	return p.pid
}

func (p *runningProcess) Wait() (int, error) {
	<-p.waitDone
	return p.waitCode, p.waitErr
}

func (p *runningProcess) Messages() <-chan string {
	return p.messages
}

// Kill terminates the process's entire process-group tree.
func (p *runningProcess) Kill() error {
	return killProcessGroup(p.pid, syscall.SIGKILL)
}

func (p *runningProcess) readIPC(r io.ReadCloser) {
	defer close(p.messages)
	defer func() { _ = r.Close() }()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.messages <- scanner.Text()
	}
}

func (p *runningProcess) wait() {
	defer close(p.waitDone)
	err := p.cmd.Wait()
	if err == nil {
		p.waitCode = 0
		return
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		p.waitCode = exitErr.ExitCode()
		return
	}
	p.waitErr = err
	p.waitCode = -1
}
