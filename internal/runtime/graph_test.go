package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func noopTask() domain.Task {
	return domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
		return map[string]any{}, nil
	})
}

func TestNewGraph(t *testing.T) {
	t.Run("Valid Set Preserves Construction Order", func(t *testing.T) {
		g, err := NewGraph([]domain.Node{
			{ID: "c", Task: noopTask(), DependsOn: []string{"a"}},
			{ID: "a", Task: noopTask()},
			{ID: "b", Task: noopTask(), DependsOn: []string{"a", "c"}},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, g.Len())
		nodes := g.Nodes()
		require.Len(t, nodes, 3)
		assert.Equal(t, "c", nodes[0].ID)
		assert.Equal(t, "a", nodes[1].ID)
		assert.Equal(t, "b", nodes[2].ID)

		n, ok := g.Node("b")
		require.True(t, ok)
		assert.Equal(t, []string{"a", "c"}, n.DependsOn)

		_, ok = g.Node("ghost")
		assert.False(t, ok)
	})

	t.Run("Empty Set Is Valid", func(t *testing.T) {
		g, err := NewGraph(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, g.Len())
	})

	t.Run("Duplicate Id Is Rejected", func(t *testing.T) {
		_, err := NewGraph([]domain.Node{
			{ID: "a", Task: noopTask()},
			{ID: "a", Task: noopTask()},
		})
		require.Error(t, err)

		var dup domain.DuplicateNodeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "a", dup.ID)
		assert.EqualError(t, err, `duplicate node id "a"`)
	})

	t.Run("Unknown Dependency Names Node And Missing Id", func(t *testing.T) {
		_, err := NewGraph([]domain.Node{
			{ID: "real", Task: noopTask(), DependsOn: []string{"ghost"}},
		})
		require.Error(t, err)

		var unknown domain.UnknownDependencyError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "real", unknown.NodeID)
		assert.Equal(t, "ghost", unknown.Dependency)
		assert.Contains(t, err.Error(), `"ghost"`)
	})

	t.Run("Node Without Task Is Rejected", func(t *testing.T) {
		_, err := NewGraph([]domain.Node{{ID: "a"}})
		assert.ErrorContains(t, err, `node "a" has no task`)
	})
}

func TestNewGraphCycles(t *testing.T) {
	t.Run("Mutual Dependency", func(t *testing.T) {
		_, err := NewGraph([]domain.Node{
			{ID: "a", Task: noopTask(), DependsOn: []string{"b"}},
			{ID: "b", Task: noopTask(), DependsOn: []string{"a"}},
		})
		var cycle domain.CycleError
		require.ErrorAs(t, err, &cycle)
	})

	t.Run("Self Reference", func(t *testing.T) {
		_, err := NewGraph([]domain.Node{
			{ID: "a", Task: noopTask(), DependsOn: []string{"a"}},
		})
		var cycle domain.CycleError
		require.ErrorAs(t, err, &cycle)
		assert.Equal(t, "a", cycle.NodeID)
	})

	t.Run("Longer Cycle Behind Valid Prefix", func(t *testing.T) {
		_, err := NewGraph([]domain.Node{
			{ID: "root", Task: noopTask()},
			{ID: "a", Task: noopTask(), DependsOn: []string{"root", "c"}},
			{ID: "b", Task: noopTask(), DependsOn: []string{"a"}},
			{ID: "c", Task: noopTask(), DependsOn: []string{"b"}},
		})
		var cycle domain.CycleError
		require.ErrorAs(t, err, &cycle)
	})

	t.Run("Diamond Is Not A Cycle", func(t *testing.T) {
		_, err := NewGraph([]domain.Node{
			{ID: "top", Task: noopTask()},
			{ID: "left", Task: noopTask(), DependsOn: []string{"top"}},
			{ID: "right", Task: noopTask(), DependsOn: []string{"top"}},
			{ID: "bottom", Task: noopTask(), DependsOn: []string{"left", "right"}},
		})
		assert.NoError(t, err)
	})

	t.Run("Shared Dependency Visited Twice Is Not A Cycle", func(t *testing.T) {
		// Both b and c point at a; the second traversal must treat a as
		// settled rather than re-entering it.
		_, err := NewGraph([]domain.Node{
			{ID: "a", Task: noopTask()},
			{ID: "b", Task: noopTask(), DependsOn: []string{"a"}},
			{ID: "c", Task: noopTask(), DependsOn: []string{"a", "b"}},
		})
		assert.NoError(t, err)
	})

	t.Run("No Task Runs When Construction Fails", func(t *testing.T) {
		invoked := false
		spy := domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
			invoked = true
			return nil, nil
		})

		_, err := NewGraph([]domain.Node{
			{ID: "a", Task: spy, DependsOn: []string{"b"}},
			{ID: "b", Task: spy, DependsOn: []string{"a"}},
		})

		require.Error(t, err)
		assert.False(t, invoked, "construction must never execute a task")
	})
}
