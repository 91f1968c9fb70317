package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
)

func mustAdjacency(edges map[string][]string) *domain.Multimap[domain.TaskID, domain.TaskID] {
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

func TestDetectCycle_NoCycle(t *testing.T) {
	adjacency := mustAdjacency(map[string][]string{
		"root":   {"middle"},
		"middle": {"leaf"},
	})
	_, found := detectCycle(adjacency)
	assert.False(t, found)
}

func TestDetectCycle_SimpleCycle(t *testing.T) {
	adjacency := mustAdjacency(map[string][]string{
		"n0": {"n1"},
		"n1": {"n2"},
		"n2": {"n3"},
		"n3": {"n1"},
	})
	cycle, found := detectCycle(adjacency)
	assert.True(t, found)
	assert.Len(t, cycle, 3)

	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = id.String()
	}
	assert.ElementsMatch(t, []string{"n1", "n2", "n3"}, names)
}

func TestDetectCycle_NoRoots(t *testing.T) {
	adjacency := mustAdjacency(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	})
	cycle, found := detectCycle(adjacency)
	assert.True(t, found)
	assert.Len(t, cycle, 3)
}

func TestDetectCycle_SelfLoop(t *testing.T) {
	adjacency := mustAdjacency(map[string][]string{
		"a": {"a"},
	})
	cycle, found := detectCycle(adjacency)
	assert.True(t, found)
	assert.Equal(t, []domain.TaskID{domain.NewTaskID("a")}, cycle)
}

func TestDetectCycle_DiamondIsNotACycle(t *testing.T) {
	adjacency := mustAdjacency(map[string][]string{
		"root": {"dep-1", "dep-2"},
		"dep-1": {"leaf"},
		"dep-2": {"leaf"},
	})
	_, found := detectCycle(adjacency)
	assert.False(t, found)
}
