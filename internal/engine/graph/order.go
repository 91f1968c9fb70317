package graph

import (
	"sort"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
)

// sortedRoots returns the tasks with no parents, sorted by id.
func sortedRoots(tasks map[domain.TaskID]*taskNode) []domain.TaskID {
	var roots []domain.TaskID
	for id, n := range tasks {
		if len(n.parents) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].String() < roots[j].String() })
	return roots
}

// topologicalOrder is a DFS post-order traversal over sorted roots: a
// task's children (its dependencies) precede it in the result.
func topologicalOrder(tasks map[domain.TaskID]*taskNode) []domain.TaskID {
	visited := make(map[domain.TaskID]bool, len(tasks))
	order := make([]domain.TaskID, 0, len(tasks))

	var visit func(id domain.TaskID)
	visit = func(id domain.TaskID) {
		if visited[id] {
			return
		}
		visited[id] = true
		n, ok := tasks[id]
		if !ok {
			return
		}
		for _, child := range n.children {
			visit(child)
		}
		order = append(order, id)
	}

	for _, root := range sortedRoots(tasks) {
		visit(root)
	}
	// Any task unreachable from a root (only possible transiently) is still included.
	for id := range tasks {
		visit(id)
	}
	return order
}

// bfsOrder is a breadth-first traversal from sorted roots. A task is
// enqueued only once all of its parents have been emitted, so no task
// precedes any of its direct dependencies in the same traversal layer.
func bfsOrder(tasks map[domain.TaskID]*taskNode) []domain.TaskID {
	order := make([]domain.TaskID, 0, len(tasks))

	remainingParents := make(map[domain.TaskID]int, len(tasks))
	for id, n := range tasks {
		remainingParents[id] = len(n.parents)
	}

	queue := sortedRoots(tasks)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		n, ok := tasks[id]
		if !ok {
			continue
		}
		for _, child := range n.children {
			remainingParents[child]--
			if remainingParents[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return order
}
