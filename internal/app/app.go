// Package app wires a Workspace together with the CLI-facing run/watch
// entry points, the application layer analogue of the teacher's own
// internal/app package.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ridgewaylabs/dagrun/internal/adapters/config"
	"github.com/ridgewaylabs/dagrun/internal/adapters/watcher"
	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
	"github.com/ridgewaylabs/dagrun/internal/engine/graph"
	"github.com/ridgewaylabs/dagrun/internal/workspace"
)

// ErrRunFailed is returned by Run when the workspace settles with at
// least one task failed.
var ErrRunFailed = errors.New("one or more tasks failed")

// pollInterval is how often Run polls WorkspaceStatus while waiting for
// a one-shot pass to settle. The coalesced update loop itself fires on
// its own ~150ms window; this just needs to be fine enough not to add
// perceptible latency on top of that.
const pollInterval = 25 * time.Millisecond

// App is the application layer: it owns no state of its own beyond its
// adapters, constructing a fresh Workspace per Run/Watch invocation.
type App struct {
	logger        ports.Logger
	configLoader  *config.Loader
	processRunner ports.ProcessRunner
}

// New creates an App from its wired adapters.
func New(logger ports.Logger, configLoader *config.Loader, processRunner ports.ProcessRunner) *App {
	return &App{logger: logger, configLoader: configLoader, processRunner: processRunner}
}

// RunOptions mirrors the task-runner's WorkspaceOptions record as seen
// from the CLI surface.
type RunOptions struct {
	Roots       []string
	Jobs        int
	Watch       bool
	EnvFile     string
	ForceColors bool
}

func newWatcherFactory() workspace.WatcherFactory {
	return func() (ports.Watcher, error) {
		return watcher.NewWatcher()
	}
}

func jobsFromOptions(n int) graph.Jobs {
	if n <= 0 {
		return graph.Unlimited
	}
	return graph.Jobs(n)
}

// Run loads roots, builds the graph, runs every task to completion once,
// and returns ErrRunFailed if any task did not succeed.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	a.configLoader.SetWatchMode(false)
	ws := a.newWorkspace(opts, false)
	defer ws.Stop()

	select {
	case <-ws.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	return a.waitSettled(ctx, ws)
}

// Watch loads roots and keeps the Workspace alive, re-running on file
// changes, until ctx is cancelled (e.g. by SIGINT/SIGTERM).
func (a *App) Watch(ctx context.Context, opts RunOptions) error {
	a.configLoader.SetWatchMode(true)
	ws := a.newWorkspace(opts, true)
	defer ws.Stop()

	select {
	case <-ws.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	<-ctx.Done()
	return nil
}

func (a *App) newWorkspace(opts RunOptions, watchMode bool) *workspace.Workspace {
	wsOpts := workspace.Options{
		Roots:       opts.Roots,
		Jobs:        jobsFromOptions(opts.Jobs),
		WatchMode:   watchMode,
		EnvFile:     opts.EnvFile,
		ForceColors: opts.ForceColors,
	}
	observer := newLoggingObserver(a.logger)
	return workspace.New(wsOpts, a.configLoader, a.processRunner, newWatcherFactory(), a.logger, observer)
}

// waitSettled polls ws's status until it reaches a terminal verdict or
// ctx is cancelled.
func (a *App) waitSettled(ctx context.Context, ws *workspace.Workspace) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			switch ws.WorkspaceStatus() {
			case domain.WorkspaceStatusOK:
				return nil
			case domain.WorkspaceStatusFail:
				return ErrRunFailed
			case domain.WorkspaceStatusError:
				return fmt.Errorf("workspace error: %s", ws.WorkspaceError())
			case domain.WorkspaceStatusPending, domain.WorkspaceStatusRunning:
				continue
			}
		}
	}
}
