package graph

import "github.com/ridgewaylabs/dagrun/internal/core/domain"

// isRunnable reports whether n has no execution and every child has a
// current successful execution.
func isRunnable(n *taskNode, tasks map[domain.TaskID]*taskNode) bool {
	if n.execution != nil {
		return false
	}
	for _, childID := range n.children {
		child, ok := tasks[childID]
		if !ok {
			return false
		}
		if !child.current() || child.execution.outcome != domain.OutcomeSuccess {
			return false
		}
	}
	return true
}

// runnableTasks returns the ids of tasks currently eligible for dispatch,
// sorted by id for deterministic dispatch order.
func runnableTasks(tasks map[domain.TaskID]*taskNode) []domain.TaskID {
	var out []domain.TaskID
	for id, n := range tasks {
		if isRunnable(n, tasks) {
			out = append(out, id)
		}
	}
	return sortByID(out)
}

// deriveTreeStatus implements the tree_status rules: running beats
// pending (runnable work remains) beats the settled fail/ok verdict.
func deriveTreeStatus(tasks map[domain.TaskID]*taskNode) domain.TreeStatus {
	inFlight := false
	anyFail := false
	anyRunnable := len(runnableTasks(tasks)) > 0

	for _, n := range tasks {
		if n.execution != nil {
			switch n.execution.outcome {
			case domain.OutcomeUnset:
				inFlight = true
			case domain.OutcomeFailure:
				anyFail = true
			}
		}
	}

	switch {
	case inFlight:
		return domain.TreeStatusRunning
	case anyRunnable:
		return domain.TreeStatusPending
	case anyFail:
		return domain.TreeStatusFail
	default:
		return domain.TreeStatusOK
	}
}

func sortByID(ids []domain.TaskID) []domain.TaskID {
	return sortedTaskIDs(ids)
}
