// Package workspace implements the top-level orchestrator: it composes a
// TaskGraph with a ConfigLoader, a filesystem watcher, and a process
// spawner, owning one Project per discovered configuration.
package workspace

import (
	"sync"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
	"github.com/ridgewaylabs/dagrun/internal/engine/graph"
)

// Options mirrors the task-runner's WorkspaceOptions record.
type Options struct {
	// Roots is the set of root configuration paths to discover from.
	Roots []string
	// Jobs caps concurrent executions; graph.Unlimited removes the cap.
	Jobs graph.Jobs
	// WatchMode enables filesystem watching and the watch-mode env marker.
	WatchMode bool
	// EnvFile, if set, is injected into every child's environment.
	EnvFile string
	// ForceColors sets the force-color env marker for children.
	ForceColors bool
}

// WatcherFactory constructs one filesystem watcher per Project. Workspace
// depends only on ports.Watcher, so the concrete fsnotify-backed adapter
// is supplied by the caller (the app/wiring layer) rather than imported
// here.
type WatcherFactory func() (ports.Watcher, error)

// Workspace is the top-level orchestrator: it owns a TaskGraph and a
// collection of Projects (one per configuration), driving config
// (re)loads, filesystem watching, coalesced updates, and child-process
// execution.
type Workspace struct {
	opts           Options
	configLoader   ports.ConfigLoader
	processRunner  ports.ProcessRunner
	watcherFactory WatcherFactory
	logger         ports.Logger
	observer       Observer

	graph   *graph.Graph
	pending *pendingUpdate

	projectsMu sync.RWMutex
	projects   map[domain.TaskID]*Project
	// dependents is the reverse of the last adjacency graph.SetTasks was
	// given, used to answer direct_dependants without re-deriving it from
	// the graph (which only exposes topology, not per-project views).
	adjMu      sync.RWMutex
	dependents *domain.Multimap[domain.TaskID, domain.TaskID]
	adjacency  *domain.Multimap[domain.TaskID, domain.TaskID]

	updateMu sync.Mutex

	statusMu     sync.Mutex
	workspaceErr error

	stopOnce sync.Once
	stopped  chan struct{}

	readyOnce sync.Once
	ready     chan struct{}
}

// New constructs a Workspace, wires its TaskGraph, and schedules an
// initial configuration read.
func New(
	opts Options,
	configLoader ports.ConfigLoader,
	processRunner ports.ProcessRunner,
	watcherFactory WatcherFactory,
	logger ports.Logger,
	observer Observer,
) *Workspace {
	if observer == nil {
		observer = NoopObserver{}
	}

	w := &Workspace{
		opts:           opts,
		configLoader:   configLoader,
		processRunner:  processRunner,
		watcherFactory: watcherFactory,
		logger:         logger,
		observer:       observer,
		projects:       make(map[domain.TaskID]*Project),
		dependents:     domain.NewMultimap[domain.TaskID, domain.TaskID](),
		adjacency:      domain.NewMultimap[domain.TaskID, domain.TaskID](),
		stopped:        make(chan struct{}),
		ready:          make(chan struct{}),
	}

	graphObserver := &graphEventBridge{workspace: w}
	w.graph = graph.New(opts.Jobs, w.runCallback, graphObserver)
	w.pending = newPendingUpdate(coalesceWindowDuration(), w.fireUpdate)
	w.pending.scheduleReread()

	return w
}

// BFSProjects returns the current Projects ordered by a breadth-first
// traversal from the graph's roots, so no project precedes a dependency
// in the same traversal layer.
func (w *Workspace) BFSProjects() []*Project {
	order := w.graph.BFSOrder()
	w.projectsMu.RLock()
	defer w.projectsMu.RUnlock()

	out := make([]*Project, 0, len(order))
	for _, id := range order {
		if p, ok := w.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// DirectDependencies returns the Projects p's task directly depends on.
func (w *Workspace) DirectDependencies(p *Project) []*Project {
	w.adjMu.RLock()
	ids := w.adjacency.GetAll(p.TaskID())
	w.adjMu.RUnlock()
	return w.resolveProjects(ids)
}

// DirectDependants returns the Projects that directly depend on p's task.
func (w *Workspace) DirectDependants(p *Project) []*Project {
	w.adjMu.RLock()
	ids := w.dependents.GetAll(p.TaskID())
	w.adjMu.RUnlock()
	return w.resolveProjects(ids)
}

func (w *Workspace) resolveProjects(ids []domain.TaskID) []*Project {
	w.projectsMu.RLock()
	defer w.projectsMu.RUnlock()
	out := make([]*Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := w.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ScheduleUpdate forces an update pass that marks p's task as changed.
func (w *Workspace) ScheduleUpdate(p *Project) {
	w.scheduleUpdate(p.TaskID(), false)
}

func (w *Workspace) scheduleUpdate(taskID domain.TaskID, needsRereadConfigs bool) {
	select {
	case <-w.stopped:
		return
	default:
	}
	w.pending.schedule(taskID, needsRereadConfigs)
}

// Stop cancels the pending update timer, resets all tasks, and disposes
// all projects, returning once that is done.
func (w *Workspace) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopped)
		w.pending.stop()
		w.graph.ResetAllTasks()

		w.projectsMu.Lock()
		projects := w.projects
		w.projects = make(map[domain.TaskID]*Project)
		w.projectsMu.Unlock()

		for _, p := range projects {
			w.disposeProject(p)
		}
	})
}

// Ready returns a channel that closes once the first configuration load
// has completed (successfully or not), so a caller that wants to wait
// for a settled one-shot run knows it is no longer looking at the
// graph's pre-load "zero tasks" state.
func (w *Workspace) Ready() <-chan struct{} {
	return w.ready
}

// WorkspaceStatus reports "error" if the last configuration read failed or
// produced a cycle, else the TaskGraph's tree_status.
func (w *Workspace) WorkspaceStatus() domain.WorkspaceStatus {
	w.statusMu.Lock()
	err := w.workspaceErr
	w.statusMu.Unlock()
	if err != nil {
		return domain.WorkspaceStatusError
	}
	return domain.WorkspaceStatusFromTree(w.graph.TreeStatus())
}

// WorkspaceError returns a human-readable string if WorkspaceStatus is "error".
func (w *Workspace) WorkspaceError() string {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	if w.workspaceErr == nil {
		return ""
	}
	return w.workspaceErr.Error()
}

func (w *Workspace) setWorkspaceError(err error) {
	w.statusMu.Lock()
	changed := (w.workspaceErr == nil) != (err == nil)
	w.workspaceErr = err
	w.statusMu.Unlock()
	if changed {
		status := domain.WorkspaceStatusError
		if err == nil {
			status = domain.WorkspaceStatusFromTree(w.graph.TreeStatus())
		}
		w.observer.OnWorkspaceStatusChanged(status)
	}
}

// runCallback is the TaskGraph's run_callback: it looks up the Project for
// taskID and delegates execution to it.
func (w *Workspace) runCallback(taskID domain.TaskID, cancel <-chan struct{}, onComplete func(success bool)) {
	w.projectsMu.RLock()
	p := w.projects[taskID]
	w.projectsMu.RUnlock()

	if p == nil {
		onComplete(false)
		return
	}
	p.run(cancel, onComplete, w.processRunner, w.opts, w.logger, w.observer)
}

func (w *Workspace) disposeProject(p *Project) {
	p.killPriorProcess()
	if wch := p.detachWatcher(); wch != nil {
		_ = wch.Stop()
	}
	w.observer.OnProjectRemoved(p)
}

// graphEventBridge adapts ports.GraphObserver callbacks from the
// TaskGraph into the higher-level build_status_changed events the
// corresponding Project should emit.
type graphEventBridge struct {
	workspace *Workspace
}

func (b *graphEventBridge) OnTaskStarted(taskID domain.TaskID) {
	b.notify(taskID)
}

func (b *graphEventBridge) OnTaskFinished(taskID domain.TaskID, _ bool) {
	b.notify(taskID)
}

func (b *graphEventBridge) OnTaskReset(taskID domain.TaskID) {
	b.notify(taskID)
}

func (b *graphEventBridge) OnTreeStatusChanged(status domain.TreeStatus) {
	b.workspace.statusMu.Lock()
	inError := b.workspace.workspaceErr != nil
	b.workspace.statusMu.Unlock()
	if !inError {
		b.workspace.observer.OnWorkspaceStatusChanged(domain.WorkspaceStatusFromTree(status))
	}
}

func (b *graphEventBridge) notify(taskID domain.TaskID) {
	b.workspace.projectsMu.RLock()
	p := b.workspace.projects[taskID]
	b.workspace.projectsMu.RUnlock()
	if p != nil {
		b.workspace.observer.OnBuildStatusChanged(p)
	}
}
