package ports

import "github.com/ridgewaylabs/dagrun/internal/core/domain"

// GraphObserver receives lifecycle events emitted by the TaskGraph. Per
// dispatched execution, task_started comes first, then task_finished
// and/or task_reset: an execution cancelled in flight gets only
// task_reset, and a settled execution later invalidated by a mutation
// gets task_finished followed by task_reset. Across tasks no ordering is
// promised.
//
//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks
type GraphObserver interface {
	// OnTaskStarted is called before the run callback is invoked for a task.
	OnTaskStarted(taskID domain.TaskID)
	// OnTaskFinished is called when a dispatched execution completes.
	OnTaskFinished(taskID domain.TaskID, success bool)
	// OnTaskReset is called when a task's execution, in flight or already
	// settled, is cleared by a mutation.
	OnTaskReset(taskID domain.TaskID)
	// OnTreeStatusChanged is called on tree_status transitions only.
	OnTreeStatusChanged(status domain.TreeStatus)
}
