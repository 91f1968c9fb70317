package graph_test

import (
	"sync"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
)

// eventLog records lifecycle events under a mutex so tests can snapshot
// them after a synctest.Wait() sync point without racing the actor
// goroutine.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, s)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

type recordingObserver struct {
	log *eventLog
}

func (o recordingObserver) OnTaskStarted(id domain.TaskID) {
	o.log.add("started:" + id.String())
}

func (o recordingObserver) OnTaskFinished(id domain.TaskID, success bool) {
	if success {
		o.log.add("finished:" + id.String())
	} else {
		o.log.add("failed:" + id.String())
	}
}

func (o recordingObserver) OnTaskReset(id domain.TaskID) {
	o.log.add("reset:" + id.String())
}

func (o recordingObserver) OnTreeStatusChanged(domain.TreeStatus) {}

// controlledRunner lets a test decide exactly when each dispatched task's
// callback reports completion, simulating an external child process.
type controlledRunner struct {
	mu      sync.Mutex
	pending map[string]func(bool)
}

func newControlledRunner() *controlledRunner {
	return &controlledRunner{pending: make(map[string]func(bool))}
}

func (r *controlledRunner) callback(id domain.TaskID, _ <-chan struct{}, onComplete func(bool)) {
	r.mu.Lock()
	r.pending[id.String()] = onComplete
	r.mu.Unlock()
}

// complete invokes the pending onComplete for id, as if a child process
// just reported its result. A no-op if nothing is pending for id.
func (r *controlledRunner) complete(id string, success bool) {
	r.mu.Lock()
	fn := r.pending[id]
	delete(r.pending, id)
	r.mu.Unlock()
	if fn != nil {
		fn(success)
	}
}

func (r *controlledRunner) isPending(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[id]
	return ok
}

// autoSuccessRunner completes every dispatched task successfully, shortly
// after dispatch, on its own goroutine — simulating an async child exit.
func autoSuccessRunner(id domain.TaskID, _ <-chan struct{}, onComplete func(bool)) {
	go onComplete(true)
}
