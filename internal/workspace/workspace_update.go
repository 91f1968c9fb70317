package workspace

import (
	"errors"
	"time"

	"github.com/ridgewaylabs/dagrun/internal/adapters/watcher"
	"github.com/ridgewaylabs/dagrun/internal/core/domain"
)

func coalesceWindowDuration() time.Duration {
	return watcher.DefaultDebounceWindow
}

// fireUpdate is the coalesced update loop's entry point, armed by
// pendingUpdate's deferred timer. It snapshots whatever accumulated,
// applies it, and loops back to snapshotting rather than running if more
// arrived while it was working — so a burst of filesystem events during
// an in-flight update is absorbed instead of triggering a second pass.
func (w *Workspace) fireUpdate() {
	w.updateMu.Lock()
	defer w.updateMu.Unlock()

	for {
		changed, reread := w.pending.snapshot()
		if len(changed) == 0 && !reread {
			return
		}

		for id := range changed {
			w.graph.MarkChanged(id)
		}

		if reread {
			w.reloadConfigurations()
		}

		if !w.pending.hasPending() {
			break
		}
	}

	w.graph.Run()
}

// reloadConfigurations re-discovers every configuration from the
// workspace's roots, rebuilds the dependency adjacency, and reconciles
// the project set against it. A cycle in the new adjacency leaves the
// previous graph state untouched and puts the workspace into its error
// status instead.
func (w *Workspace) reloadConfigurations() {
	defer w.readyOnce.Do(func() { close(w.ready) })

	configs, err := w.configLoader.Load(w.opts.Roots)
	if err != nil {
		w.setWorkspaceError(err)
		return
	}

	adjacency := domain.NewMultimap[domain.TaskID, domain.TaskID]()
	dependents := domain.NewMultimap[domain.TaskID, domain.TaskID]()
	for path, cfg := range configs {
		id := domain.NewTaskID(path)
		deps := make([]domain.TaskID, 0, len(cfg.Deps))
		if cfg.Loaded() {
			for _, dep := range cfg.Deps {
				depID := domain.NewTaskID(dep)
				deps = append(deps, depID)
				dependents.Insert(depID, id)
			}
		}
		// InsertAll registers id as a node even with zero deps, so a
		// leafless or dependentless configuration still gets a task.
		adjacency.InsertAll(id, deps)
	}

	if err := w.graph.SetTasks(adjacency); err != nil {
		var cycleErr *domain.CycleError
		if errors.As(err, &cycleErr) {
			w.setWorkspaceError(renderCycle(cycleErr))
			return
		}
		w.setWorkspaceError(err)
		return
	}

	w.adjMu.Lock()
	w.adjacency = adjacency
	w.dependents = dependents
	w.adjMu.Unlock()
	w.setWorkspaceError(nil)
	w.reconcileProjects(configs)
}

// reconcileProjects disposes projects whose configuration disappeared,
// creates projects for newly discovered configurations, and updates the
// configuration held by projects that survived, (re)arming their
// filesystem watcher in watch mode.
func (w *Workspace) reconcileProjects(configs map[string]*domain.Configuration) {
	w.projectsMu.Lock()
	var removed []*Project
	seen := make(map[domain.TaskID]struct{}, len(configs))
	var added []*Project

	for path, cfg := range configs {
		id := domain.NewTaskID(path)
		seen[id] = struct{}{}

		if p, ok := w.projects[id]; ok {
			p.setConfiguration(cfg)
			continue
		}

		p := newProject(id, cfg)
		w.projects[id] = p
		added = append(added, p)
	}

	for id, p := range w.projects {
		if _, ok := seen[id]; !ok {
			removed = append(removed, p)
			delete(w.projects, id)
		}
	}
	w.projectsMu.Unlock()

	for _, p := range removed {
		w.disposeProject(p)
	}
	for _, p := range added {
		w.observer.OnProjectAdded(p)
	}

	if w.opts.WatchMode {
		w.projectsMu.RLock()
		live := make([]*Project, 0, len(w.projects))
		for _, p := range w.projects {
			live = append(live, p)
		}
		w.projectsMu.RUnlock()
		for _, p := range live {
			w.armWatcher(p)
		}
	}

	if len(added) > 0 || len(removed) > 0 {
		w.observer.OnProjectsChanged()
	}
}

// renderCycle produces the human-readable error WorkspaceError surfaces
// when the last configuration reload's adjacency contained a cycle.
func renderCycle(err *domain.CycleError) error {
	return errors.New("dependency cycle detected: " + err.Error())
}
