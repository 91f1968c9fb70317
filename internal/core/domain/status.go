package domain

// TaskStatus is the externally-observable state of a single task.
type TaskStatus string

const (
	// TaskStatusNA means the task has no execution and the tree has settled.
	TaskStatusNA TaskStatus = "n/a"
	// TaskStatusPending means the task has no execution but the tree has not settled.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusRunning means the task has an execution whose outcome is unset.
	TaskStatusRunning TaskStatus = "running"
	// TaskStatusOK means the task's execution completed successfully.
	TaskStatusOK TaskStatus = "ok"
	// TaskStatusFail means the task's execution completed with failure.
	TaskStatusFail TaskStatus = "fail"
)

// TreeStatus is the externally-observable state of the whole graph.
type TreeStatus string

const (
	// TreeStatusPending means at least one task is not yet settled and nothing is in-flight.
	TreeStatusPending TreeStatus = "pending"
	// TreeStatusRunning means at least one task has an in-flight execution.
	TreeStatusRunning TreeStatus = "running"
	// TreeStatusOK means nothing is runnable, nothing is in-flight, and no task failed.
	TreeStatusOK TreeStatus = "ok"
	// TreeStatusFail means nothing is runnable, nothing is in-flight, and at least one task failed.
	TreeStatusFail TreeStatus = "fail"
)

// WorkspaceStatus mirrors TreeStatus with one addition: a Workspace enters
// WorkspaceStatusError when its last configuration reload failed or
// produced a cycle, superseding whatever the TaskGraph's tree_status would otherwise report.
type WorkspaceStatus string

const (
	// WorkspaceStatusPending mirrors TreeStatusPending.
	WorkspaceStatusPending WorkspaceStatus = "pending"
	// WorkspaceStatusRunning mirrors TreeStatusRunning.
	WorkspaceStatusRunning WorkspaceStatus = "running"
	// WorkspaceStatusOK mirrors TreeStatusOK.
	WorkspaceStatusOK WorkspaceStatus = "ok"
	// WorkspaceStatusFail mirrors TreeStatusFail.
	WorkspaceStatusFail WorkspaceStatus = "fail"
	// WorkspaceStatusError means the last configuration reload failed or found a cycle.
	WorkspaceStatusError WorkspaceStatus = "error"
)

// WorkspaceStatusFromTree converts a settled TreeStatus into the
// corresponding WorkspaceStatus.
func WorkspaceStatusFromTree(status TreeStatus) WorkspaceStatus {
	return WorkspaceStatus(status)
}

// Outcome is the result recorded on a task's execution once it completes.
type Outcome uint8

const (
	// OutcomeUnset means the execution has not completed yet.
	OutcomeUnset Outcome = iota
	// OutcomeSuccess means the execution completed successfully.
	OutcomeSuccess
	// OutcomeFailure means the execution completed with a business-level failure.
	OutcomeFailure
)
