package workspace

import "github.com/ridgewaylabs/dagrun/internal/core/domain"

// Observer receives Workspace- and Project-level lifecycle events. It is
// the workspace-layer analogue of ports.GraphObserver: the graph reports
// on tasks, this reports on the Projects wrapping them plus the
// Workspace's own status, mirroring the task-runner's project_added /
// project_removed / projects_changed / workspace_status_changed /
// build_status_changed / build_stdout / build_stderr / pid_changed events.
type Observer interface {
	OnProjectAdded(p *Project)
	OnProjectRemoved(p *Project)
	OnProjectsChanged()
	OnWorkspaceStatusChanged(status domain.WorkspaceStatus)
	OnBuildStatusChanged(p *Project)
	OnBuildStdout(p *Project, text string)
	OnBuildStderr(p *Project, text string)
	OnPidChanged(p *Project)
}

// NoopObserver implements Observer with no-op methods, useful as a
// default when no consumer cares about events (e.g. in unit tests that
// only assert on Workspace/Project state).
type NoopObserver struct{}

func (NoopObserver) OnProjectAdded(*Project)                          {}
func (NoopObserver) OnProjectRemoved(*Project)                        {}
func (NoopObserver) OnProjectsChanged()                               {}
func (NoopObserver) OnWorkspaceStatusChanged(domain.WorkspaceStatus)   {}
func (NoopObserver) OnBuildStatusChanged(*Project)                    {}
func (NoopObserver) OnBuildStdout(*Project, string)                   {}
func (NoopObserver) OnBuildStderr(*Project, string)                   {}
func (NoopObserver) OnPidChanged(*Project)                            {}
