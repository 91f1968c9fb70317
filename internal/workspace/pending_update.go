package workspace

import (
	"sync"
	"time"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
)

// pendingUpdate is the Workspace's at-most-one coalesced update record: it
// extends the single-pending-timer, time.AfterFunc-based debouncer shape
// with the two extra fields the coalesced update loop needs: which
// projects changed, and whether configurations must be re-read from disk.
type pendingUpdate struct {
	mu                 sync.Mutex
	changedProjects    map[domain.TaskID]struct{}
	needsRereadConfigs bool
	timer              *time.Timer
	window             time.Duration
	fire               func()
}

func newPendingUpdate(window time.Duration, fire func()) *pendingUpdate {
	return &pendingUpdate{window: window, fire: fire}
}

// schedule merges a notification into the pending record, carrying the
// needsRereadConfigs flag alongside the changed-project set. It arms the
// deferred trigger only when none is armed; a notification arriving while
// the trigger is pending just joins the record without re-arming it.
func (p *pendingUpdate) schedule(taskID domain.TaskID, needsRereadConfigs bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.changedProjects == nil {
		p.changedProjects = make(map[domain.TaskID]struct{})
	}
	p.changedProjects[taskID] = struct{}{}
	if needsRereadConfigs {
		p.needsRereadConfigs = true
	}

	if p.timer == nil {
		p.timer = time.AfterFunc(p.window, p.fire)
	}
}

// scheduleReread arms the trigger for a reload with no specific changed
// project, used for the initial configuration read on construction.
func (p *pendingUpdate) scheduleReread() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.needsRereadConfigs = true
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.window, p.fire)
}

// snapshot returns and clears the current pending record.
func (p *pendingUpdate) snapshot() (map[domain.TaskID]struct{}, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed := p.changedProjects
	reread := p.needsRereadConfigs
	p.changedProjects = nil
	p.needsRereadConfigs = false
	p.timer = nil
	return changed, reread
}

// hasPending reports whether anything has accumulated since the last snapshot.
func (p *pendingUpdate) hasPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.changedProjects) > 0 || p.needsRereadConfigs
}

// stop cancels any armed timer and discards pending state.
func (p *pendingUpdate) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.changedProjects = nil
	p.needsRereadConfigs = false
}
