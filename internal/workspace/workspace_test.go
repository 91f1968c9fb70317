package workspace

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
	"github.com/ridgewaylabs/dagrun/internal/core/ports/mocks"
	"github.com/ridgewaylabs/dagrun/internal/engine/graph"
)

// recordingObserver is a hand-rolled Observer fake: workspace.Observer has
// no generated mock since it lives outside ports, and these tests only
// need to assert on which events fired, not argument-by-argument call
// expectations.
type recordingObserver struct {
	mu               sync.Mutex
	statusChanges    []domain.WorkspaceStatus
	projectsAdded    int
	projectsRemoved  int
	projectsChanged  int
	buildStatusCalls int
}

func (r *recordingObserver) OnProjectAdded(*Project) {
	r.mu.Lock()
	r.projectsAdded++
	r.mu.Unlock()
}

func (r *recordingObserver) OnProjectRemoved(*Project) {
	r.mu.Lock()
	r.projectsRemoved++
	r.mu.Unlock()
}

func (r *recordingObserver) OnProjectsChanged() {
	r.mu.Lock()
	r.projectsChanged++
	r.mu.Unlock()
}

func (r *recordingObserver) OnWorkspaceStatusChanged(status domain.WorkspaceStatus) {
	r.mu.Lock()
	r.statusChanges = append(r.statusChanges, status)
	r.mu.Unlock()
}

func (r *recordingObserver) OnBuildStatusChanged(*Project) {
	r.mu.Lock()
	r.buildStatusCalls++
	r.mu.Unlock()
}

func (r *recordingObserver) OnBuildStdout(*Project, string) {}
func (r *recordingObserver) OnBuildStderr(*Project, string) {}
func (r *recordingObserver) OnPidChanged(*Project)          {}

func (r *recordingObserver) lastStatus() (domain.WorkspaceStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statusChanges) == 0 {
		return "", false
	}
	return r.statusChanges[len(r.statusChanges)-1], true
}

func noopWatcherFactory() (ports.Watcher, error) {
	return nil, nil
}

func TestWorkspace_SingleTaskRunsToSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockConfigLoader(ctrl)
	runner := mocks.NewMockProcessRunner(ctrl)
	proc := mocks.NewMockRunningProcess(ctrl)

	messages := make(chan string)
	close(messages)

	loader.EXPECT().Load(gomock.Any()).Return(map[string]*domain.Configuration{
		"/root/a.dagrun": {ConfigPath: "/root/a.dagrun", Name: "a"},
	}, nil).AnyTimes()

	runner.EXPECT().Start(gomock.Any(), gomock.Any()).Return(proc, nil)
	proc.EXPECT().Messages().Return(messages)
	proc.EXPECT().Wait().Return(0, nil)
	proc.EXPECT().Pid().Return(4242).AnyTimes()

	obs := &recordingObserver{}
	ws := New(Options{Roots: []string{"/root"}, Jobs: graph.Unlimited}, loader, runner, noopWatcherFactory, NoopLogger{}, obs)
	defer ws.Stop()

	select {
	case <-ws.Ready():
	case <-time.After(time.Second):
		t.Fatal("workspace never became ready")
	}

	assert.Eventually(t, func() bool {
		return ws.WorkspaceStatus() == domain.WorkspaceStatusOK
	}, time.Second, 5*time.Millisecond)

	projects := ws.BFSProjects()
	require.Len(t, projects, 1)
	assert.Equal(t, "a", projects[0].Name())
}

func TestWorkspace_CycleDetectionReportsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockConfigLoader(ctrl)
	runner := mocks.NewMockProcessRunner(ctrl)

	loader.EXPECT().Load(gomock.Any()).Return(map[string]*domain.Configuration{
		"/root/a.dagrun": {ConfigPath: "/root/a.dagrun", Deps: []string{"/root/b.dagrun"}},
		"/root/b.dagrun": {ConfigPath: "/root/b.dagrun", Deps: []string{"/root/a.dagrun"}},
	}, nil).AnyTimes()

	obs := &recordingObserver{}
	ws := New(Options{Roots: []string{"/root"}, Jobs: graph.Unlimited}, loader, runner, noopWatcherFactory, NoopLogger{}, obs)
	defer ws.Stop()

	select {
	case <-ws.Ready():
	case <-time.After(time.Second):
		t.Fatal("workspace never became ready")
	}

	assert.Eventually(t, func() bool {
		return ws.WorkspaceStatus() == domain.WorkspaceStatusError
	}, time.Second, 5*time.Millisecond)

	assert.NotEmpty(t, ws.WorkspaceError())
}

func TestWorkspace_ScheduleUpdateTriggersRerun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockConfigLoader(ctrl)
	runner := mocks.NewMockProcessRunner(ctrl)

	var startCount int
	var startMu sync.Mutex

	loader.EXPECT().Load(gomock.Any()).Return(map[string]*domain.Configuration{
		"/root/a.dagrun": {ConfigPath: "/root/a.dagrun", Name: "a"},
	}, nil).AnyTimes()

	runner.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, ports.ProcessSpec) (ports.RunningProcess, error) {
			startMu.Lock()
			startCount++
			startMu.Unlock()

			proc := mocks.NewMockRunningProcess(ctrl)
			messages := make(chan string)
			close(messages)
			proc.EXPECT().Messages().Return(messages)
			proc.EXPECT().Wait().Return(0, nil)
			proc.EXPECT().Pid().Return(1).AnyTimes()
			return proc, nil
		},
	).MinTimes(1)

	obs := &recordingObserver{}
	ws := New(Options{Roots: []string{"/root"}, Jobs: graph.Unlimited}, loader, runner, noopWatcherFactory, NoopLogger{}, obs)
	defer ws.Stop()

	select {
	case <-ws.Ready():
	case <-time.After(time.Second):
		t.Fatal("workspace never became ready")
	}

	assert.Eventually(t, func() bool {
		return ws.WorkspaceStatus() == domain.WorkspaceStatusOK
	}, time.Second, 5*time.Millisecond)

	projects := ws.BFSProjects()
	require.Len(t, projects, 1)

	startMu.Lock()
	firstCount := startCount
	startMu.Unlock()

	ws.ScheduleUpdate(projects[0])

	assert.Eventually(t, func() bool {
		startMu.Lock()
		defer startMu.Unlock()
		return startCount > firstCount
	}, time.Second, 5*time.Millisecond)
}

func TestWorkspace_StopDisposesAllProjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockConfigLoader(ctrl)
	runner := mocks.NewMockProcessRunner(ctrl)
	proc := mocks.NewMockRunningProcess(ctrl)

	messages := make(chan string)

	loader.EXPECT().Load(gomock.Any()).Return(map[string]*domain.Configuration{
		"/root/a.dagrun": {ConfigPath: "/root/a.dagrun", Name: "a"},
	}, nil).AnyTimes()

	runner.EXPECT().Start(gomock.Any(), gomock.Any()).Return(proc, nil)
	proc.EXPECT().Messages().Return(messages)
	proc.EXPECT().Pid().Return(99).AnyTimes()
	proc.EXPECT().Wait().DoAndReturn(func() (int, error) {
		<-messages
		return 0, nil
	}).AnyTimes()
	proc.EXPECT().Kill().DoAndReturn(func() error {
		close(messages)
		return nil
	}).AnyTimes()

	obs := &recordingObserver{}
	ws := New(Options{Roots: []string{"/root"}, Jobs: graph.Unlimited}, loader, runner, noopWatcherFactory, NoopLogger{}, obs)

	select {
	case <-ws.Ready():
	case <-time.After(time.Second):
		t.Fatal("workspace never became ready")
	}

	assert.Eventually(t, func() bool {
		return len(ws.BFSProjects()) == 1
	}, time.Second, 5*time.Millisecond)

	ws.Stop()

	assert.Empty(t, ws.BFSProjects())
	assert.Eventually(t, func() bool {
		return obs.projectsRemoved == 1
	}, time.Second, 5*time.Millisecond)
}

// NoopLogger implements ports.Logger with no-op methods, for tests that
// don't care about log output.
type NoopLogger struct{}

func (NoopLogger) Info(string)     {}
func (NoopLogger) Warn(string)     {}
func (NoopLogger) Error(error)     {}
func (NoopLogger) SetOutput(io.Writer) {}
func (NoopLogger) SetJSON(bool)    {}
