package graph_test

import (
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/engine/graph"
)

func chainAdjacency(edges map[string][]string) *domain.Multimap[domain.TaskID, domain.TaskID] {
	mm := domain.NewMultimap[domain.TaskID, domain.TaskID]()
	for k, vs := range edges {
		key := domain.NewTaskID(k)
		ids := make([]domain.TaskID, len(vs))
		for i, v := range vs {
			ids[i] = domain.NewTaskID(v)
		}
		mm.InsertAll(key, ids)
	}
	return mm
}

func TestGraph_LinearChain(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := newControlledRunner()
		log := &eventLog{}
		g := graph.New(graph.Unlimited, runner.callback, recordingObserver{log: log})
		defer g.Close()

		adjacency := chainAdjacency(map[string][]string{
			"root":   {"middle"},
			"middle": {"leaf"},
		})
		require.NoError(t, g.SetTasks(adjacency))

		g.Run()
		assert.Equal(t, []string{"started:leaf"}, log.snapshot())

		runner.complete("leaf", true)
		synctest.Wait()
		assert.Equal(t, []string{"started:leaf", "finished:leaf", "started:middle"}, log.snapshot())

		runner.complete("middle", true)
		synctest.Wait()
		assert.Equal(t, []string{
			"started:leaf", "finished:leaf",
			"started:middle", "finished:middle",
			"started:root",
		}, log.snapshot())

		runner.complete("root", true)
		synctest.Wait()
		assert.Equal(t, []string{
			"started:leaf", "finished:leaf",
			"started:middle", "finished:middle",
			"started:root", "finished:root",
		}, log.snapshot())

		assert.Equal(t, domain.TreeStatusOK, g.TreeStatus())

		// mark_changed("middle"); run() resets middle and root, then redispatches.
		g.MarkChanged(domain.NewTaskID("middle"))
		g.Run()

		assert.Equal(t, []string{
			"started:leaf", "finished:leaf",
			"started:middle", "finished:middle",
			"started:root", "finished:root",
			"reset:middle", "reset:root",
			"started:middle",
		}, log.snapshot())

		runner.complete("middle", true)
		synctest.Wait()
		runner.complete("root", true)
		synctest.Wait()

		assert.Equal(t, []string{
			"started:leaf", "finished:leaf",
			"started:middle", "finished:middle",
			"started:root", "finished:root",
			"reset:middle", "reset:root",
			"started:middle", "finished:middle",
			"started:root", "finished:root",
		}, log.snapshot())
	})
}

func TestGraph_DiamondPrune(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := newControlledRunner()
		log := &eventLog{}
		g := graph.New(graph.Unlimited, runner.callback, recordingObserver{log: log})
		defer g.Close()

		adjacency := chainAdjacency(map[string][]string{
			"root": {"dep-1", "dep-2"},
		})
		require.NoError(t, g.SetTasks(adjacency))
		g.Run()

		assert.ElementsMatch(t, []string{"started:dep-1", "started:dep-2"}, log.snapshot())

		runner.complete("dep-1", true)
		synctest.Wait()
		runner.complete("dep-2", true)
		synctest.Wait()

		snap := log.snapshot()
		require.Len(t, snap, 5) // both finished, started:root
		assert.Equal(t, "started:root", snap[4])

		runner.complete("root", true)
		synctest.Wait()
		require.Len(t, log.snapshot(), 6)

		require.NoError(t, g.SetTasks(chainAdjacency(map[string][]string{
			"root": {"dep-1"},
		})))
		g.Run()

		snap = log.snapshot()
		require.Len(t, snap, 9) // reset:dep-2, reset:root, started:root
		tail := snap[6:]
		assert.ElementsMatch(t, []string{"reset:dep-2", "reset:root"}, tail[:2])
		assert.Equal(t, "started:root", tail[2])

		runner.complete("root", true)
		synctest.Wait()
		snap = log.snapshot()
		assert.Equal(t, "finished:root", snap[len(snap)-1])
	})
}

func TestGraph_ParallelCap(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := newControlledRunner()
		log := &eventLog{}
		g := graph.New(graph.Jobs(2), runner.callback, recordingObserver{log: log})
		defer g.Close()

		adjacency := domain.NewMultimap[domain.TaskID, domain.TaskID]()
		adjacency.InsertAll(domain.NewTaskID("leaf-1"), nil)
		adjacency.InsertAll(domain.NewTaskID("leaf-2"), nil)
		adjacency.InsertAll(domain.NewTaskID("leaf-3"), nil)

		require.NoError(t, g.SetTasks(adjacency))
		g.Run()

		assert.Len(t, log.snapshot(), 2)
		assert.False(t, runner.isPending("leaf-3"))

		runner.complete("leaf-1", true)
		runner.complete("leaf-2", true)
		synctest.Wait()

		require.Len(t, log.snapshot(), 5) // two finished + started:leaf-3

		runner.complete("leaf-3", true)
		synctest.Wait()
		require.Len(t, log.snapshot(), 6)

		assert.Equal(t, domain.TreeStatusOK, g.TreeStatus())
	})
}

func TestGraph_CycleDetection(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := graph.New(graph.Unlimited, autoSuccessRunner, nil)
		defer g.Close()

		adjacency := chainAdjacency(map[string][]string{
			"n0": {"n1"},
			"n1": {"n2"},
			"n2": {"n3"},
			"n3": {"n1"},
		})

		err := g.SetTasks(adjacency)
		require.Error(t, err)

		var cycleErr *domain.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Len(t, cycleErr.Cycle, 3)
	})
}

func TestGraph_EmptyGraphIsNoop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := graph.New(graph.Unlimited, autoSuccessRunner, nil)
		defer g.Close()

		g.Run()
		assert.Equal(t, domain.TreeStatusOK, g.TreeStatus())
	})
}

func TestGraph_JobsOneIsSequential(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := newControlledRunner()
		log := &eventLog{}
		g := graph.New(graph.Jobs(1), runner.callback, recordingObserver{log: log})
		defer g.Close()

		adjacency := domain.NewMultimap[domain.TaskID, domain.TaskID]()
		adjacency.InsertAll(domain.NewTaskID("a"), nil)
		adjacency.InsertAll(domain.NewTaskID("b"), nil)

		require.NoError(t, g.SetTasks(adjacency))
		g.Run()

		synctest.Wait()
		assert.Len(t, log.snapshot(), 1, "only one task should be dispatched with jobs=1")
	})
}

func TestGraph_FailedTaskNeverRetriedWithoutChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := newControlledRunner()
		log := &eventLog{}
		g := graph.New(graph.Unlimited, runner.callback, recordingObserver{log: log})
		defer g.Close()

		adjacency := chainAdjacency(map[string][]string{
			"root": {"leaf"},
		})
		require.NoError(t, g.SetTasks(adjacency))
		g.Run()

		assert.Equal(t, []string{"started:leaf"}, log.snapshot())

		runner.complete("leaf", false)
		synctest.Wait()
		assert.Equal(t, []string{"started:leaf", "failed:leaf"}, log.snapshot())

		assert.Equal(t, domain.TaskStatusFail, g.TaskStatus(domain.NewTaskID("leaf")))

		g.Run()
		synctest.Wait()
		assert.Equal(t, []string{"started:leaf", "failed:leaf"}, log.snapshot())
		assert.Equal(t, domain.TaskStatusNA, g.TaskStatus(domain.NewTaskID("root")))
	})
}
