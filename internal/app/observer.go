package app

import (
	"fmt"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
	"github.com/ridgewaylabs/dagrun/internal/workspace"
)

// loggingObserver forwards every workspace/project event to the ambient
// logger, since the real TUI/log-pane renderer is out of scope but some
// observable output is still expected of a working CLI.
type loggingObserver struct {
	logger ports.Logger
}

func newLoggingObserver(logger ports.Logger) *loggingObserver {
	return &loggingObserver{logger: logger}
}

func (o *loggingObserver) OnProjectAdded(p *workspace.Project) {
	o.logger.Info(fmt.Sprintf("project added: %s", projectLabel(p)))
}

func (o *loggingObserver) OnProjectRemoved(p *workspace.Project) {
	o.logger.Info(fmt.Sprintf("project removed: %s", projectLabel(p)))
}

func (o *loggingObserver) OnProjectsChanged() {
	o.logger.Info("project set changed")
}

func (o *loggingObserver) OnWorkspaceStatusChanged(status domain.WorkspaceStatus) {
	o.logger.Info(fmt.Sprintf("workspace status: %s", status))
}

func (o *loggingObserver) OnBuildStatusChanged(p *workspace.Project) {
	if err := p.ConfigurationError(); err != nil {
		o.logger.Error(err)
		return
	}
	o.logger.Info(fmt.Sprintf("build status changed: %s", projectLabel(p)))
}

func (o *loggingObserver) OnBuildStdout(p *workspace.Project, text string) {
	o.logger.Info(fmt.Sprintf("[%s] %s", projectLabel(p), text))
}

func (o *loggingObserver) OnBuildStderr(p *workspace.Project, text string) {
	o.logger.Info(fmt.Sprintf("[%s] %s", projectLabel(p), text))
}

func (o *loggingObserver) OnPidChanged(p *workspace.Project) {
	if pid := p.Pid(); pid != 0 {
		o.logger.Info(fmt.Sprintf("[%s] pid=%d", projectLabel(p), pid))
	}
}

func projectLabel(p *workspace.Project) string {
	if name := p.Name(); name != "" {
		return name
	}
	return p.ConfigPath()
}
