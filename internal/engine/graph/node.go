package graph

import (
	"sync"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
)

// cancelToken is fired at most once to cancel an in-flight execution.
type cancelToken struct {
	ch   chan struct{}
	once sync.Once
}

func newCancelToken() *cancelToken {
	return &cancelToken{ch: make(chan struct{})}
}

func (c *cancelToken) fire() {
	c.once.Do(func() { close(c.ch) })
}

func (c *cancelToken) C() <-chan struct{} {
	return c.ch
}

// execution is present on a taskNode iff a run has been dispatched and the
// task's version has not changed since dispatch.
type execution struct {
	cancel            *cancelToken
	versionAtDispatch domain.Digest
	outcome           domain.Outcome
}

// taskNode is the internal record the TaskGraph owns for one task.
// Parent/child references are ids, not pointers, so back-references never
// form retain cycles; lookups go through the graph's arena.
type taskNode struct {
	id domain.TaskID

	// parents/children are kept consistent: b in a.children iff a in b.parents.
	parents  map[domain.TaskID]struct{}
	children []domain.TaskID // sorted by id

	generation uint64
	subtreeSHA domain.Digest

	execution *execution
}

func newTaskNode(id domain.TaskID) *taskNode {
	return &taskNode{
		id:      id,
		parents: make(map[domain.TaskID]struct{}),
	}
}

// taskVersion is the digest of (generation, subtree_sha).
func (n *taskNode) taskVersion() domain.Digest {
	return domain.TaskVersion(n.generation, n.subtreeSHA)
}

// current reports whether n's execution is still bound to n's present version.
func (n *taskNode) current() bool {
	return n.execution != nil && n.execution.versionAtDispatch == n.taskVersion()
}

// status derives task_status for n given the tree's settled state.
func (n *taskNode) status(treeSettled bool) domain.TaskStatus {
	if n.execution == nil {
		if treeSettled {
			return domain.TaskStatusNA
		}
		return domain.TaskStatusPending
	}
	switch n.execution.outcome {
	case domain.OutcomeSuccess:
		return domain.TaskStatusOK
	case domain.OutcomeFailure:
		return domain.TaskStatusFail
	default:
		return domain.TaskStatusRunning
	}
}
