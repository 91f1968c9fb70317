package workspace

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

// Project is the workspace-side wrapper over a task: it owns the task's
// child process, accumulated output, filesystem watcher handle, and
// pid/exit_code, exactly the split of ownership the task-runner's data
// model assigns it (the TaskGraph owns nothing about the process).
type Project struct {
	taskID domain.TaskID

	mu        sync.Mutex
	cfg       *domain.Configuration
	output    bytes.Buffer
	startedAt time.Time
	stoppedAt time.Time
	proc      ports.RunningProcess
	watcher   ports.Watcher
	exitCode  *int
}

func newProject(taskID domain.TaskID, cfg *domain.Configuration) *Project {
	return &Project{taskID: taskID, cfg: cfg}
}

// TaskID returns the project's task identifier (its absolute configuration path).
func (p *Project) TaskID() domain.TaskID {
	return p.taskID
}

// ConfigPath returns the project's absolute configuration path.
func (p *Project) ConfigPath() string {
	return p.taskID.String()
}

// Name returns the human-readable name declared by the configuration, if any.
func (p *Project) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cfg == nil {
		return ""
	}
	return p.cfg.Name
}

// ConfigurationError returns the load error for this project's
// configuration, or nil if it loaded successfully.
func (p *Project) ConfigurationError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cfg == nil {
		return nil
	}
	return p.cfg.Err
}

// Output returns the accumulated stdout+stderr in arrival order,
// reset at the start of each run.
func (p *Project) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.output.String()
}

// Pid returns the child process id while the project has a live process, or 0.
func (p *Project) Pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.proc == nil {
		return 0
	}
	return p.proc.Pid()
}

// ExitCode returns the child's exit code once known.
func (p *Project) ExitCode() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exitCode == nil {
		return 0, false
	}
	return *p.exitCode, true
}

// StartTime and StopTime expose the project's last run window.
func (p *Project) StartTime() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startedAt
}

func (p *Project) StopTime() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stoppedAt
}

func (p *Project) configuration() *domain.Configuration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

func (p *Project) setConfiguration(cfg *domain.Configuration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}

func (p *Project) attachWatcher(w ports.Watcher) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watcher = w
}

func (p *Project) detachWatcher() ports.Watcher {
	p.mu.Lock()
	defer p.mu.Unlock()
	w := p.watcher
	p.watcher = nil
	return w
}

func (p *Project) appendOutput(text string) {
	p.mu.Lock()
	p.output.WriteString(text)
	p.mu.Unlock()
}

func (p *Project) markStopped() {
	p.mu.Lock()
	p.stoppedAt = time.Now()
	p.mu.Unlock()
}

// outputWriter forwards every write both into the project's accumulated
// output buffer and to a reporting callback, so it can be handed directly
// to ports.ProcessSpec.Stdout/Stderr.
type outputWriter struct {
	project *Project
	forward func(string)
}

func (w outputWriter) Write(b []byte) (int, error) {
	text := string(b)
	w.project.appendOutput(text)
	if w.forward != nil {
		w.forward(text)
	}
	return len(b), nil
}

// killPriorProcess terminates any process tree the project is still
// holding, enforcing "at most one child process per Project at a time".
func (p *Project) killPriorProcess() {
	p.mu.Lock()
	proc := p.proc
	p.mu.Unlock()
	if proc != nil {
		_ = proc.Kill()
	}
}

// run implements the dispatch callback for this project's task.
func (p *Project) run(
	cancel <-chan struct{},
	onComplete func(success bool),
	runner ports.ProcessRunner,
	opts Options,
	logger ports.Logger,
	observer Observer,
) {
	cfg := p.configuration()
	if cfg == nil || !cfg.Loaded() {
		if cfg != nil {
			p.appendOutput(fmt.Sprintf("configuration error: %v\n", cfg.Err))
		}
		observer.OnBuildStatusChanged(p)
		onComplete(false)
		return
	}

	p.killPriorProcess()

	p.mu.Lock()
	p.output.Reset()
	p.startedAt = time.Now()
	p.stoppedAt = time.Time{}
	p.exitCode = nil
	p.mu.Unlock()
	observer.OnBuildStatusChanged(p)

	stdout := outputWriter{project: p, forward: func(s string) { observer.OnBuildStdout(p, s) }}
	stderr := outputWriter{project: p, forward: func(s string) { observer.OnBuildStderr(p, s) }}

	proc, err := runner.Start(context.Background(), ports.ProcessSpec{
		Command: cfg.ConfigPath,
		Dir:     filepath.Dir(cfg.ConfigPath),
		Env:     buildChildEnv(opts),
		Stdout:  stdout,
		Stderr:  stderr,
	})
	if err != nil {
		p.appendOutput(fmt.Sprintf("failed to start process: %v\n", err))
		logger.Error(err)
		p.markStopped()
		observer.OnBuildStatusChanged(p)
		onComplete(false)
		return
	}

	p.mu.Lock()
	p.proc = proc
	p.mu.Unlock()
	observer.OnPidChanged(p)

	var stateMu sync.Mutex
	done := false
	complete := func(success bool) bool {
		stateMu.Lock()
		defer stateMu.Unlock()
		if done {
			return false
		}
		done = true
		onComplete(success)
		return true
	}

	allDone := make(chan struct{})

	go func() {
		select {
		case <-cancel:
			p.appendOutput("terminated\n")
			_ = proc.Kill()
		case <-allDone:
		}
	}()

	go func() {
		for msg := range proc.Messages() {
			if msg == domain.IPCSentinel {
				complete(true)
			}
		}
	}()

	go func() {
		code, waitErr := proc.Wait()
		close(allDone)

		p.mu.Lock()
		p.exitCode = &code
		p.proc = nil
		p.mu.Unlock()
		observer.OnPidChanged(p)

		if waitErr != nil {
			p.appendOutput(fmt.Sprintf("process error: %v\n", waitErr))
		}

		triggered := complete(code == 0)
		if !triggered {
			// Sentinel already marked this task ok; a later exit is just logged.
			msg := fmt.Sprintf("process exited with code=%d", code)
			p.appendOutput(msg + "\n")
			logger.Info(msg)
		}

		p.markStopped()
		observer.OnBuildStatusChanged(p)
	}()
}

// buildChildEnv assembles the environment passed to a task's subprocess:
// inherited parent env plus the runner-mode/watch-mode/force-color
// markers and an optional env-file injection, per Options.
func buildChildEnv(opts Options) []string {
	env := append([]string{}, opts.baseEnv()...)
	env = append(env, domain.EnvRunnerMode+"=1")
	if opts.WatchMode {
		env = append(env, domain.EnvWatchMode+"=1")
	}
	if opts.ForceColors {
		env = append(env, domain.EnvForceColor+"=1")
	}
	if opts.EnvFile != "" {
		env = append(env, readEnvFile(opts.EnvFile)...)
	}
	return env
}
