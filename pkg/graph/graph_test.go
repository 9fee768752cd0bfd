package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/wyrd/pkg/property"
)

// dummyNode is a minimal property owner with one input and one output leaf
// of each common type, for exercising the graph layers without the engine.
type dummyNode struct {
	id    uint64
	name  string
	dirty bool

	in  *property.Property
	out *property.Property
}

func (n *dummyNode) ID() uint64          { return n.id }
func (n *dummyNode) Name() string        { return n.name }
func (n *dummyNode) SetDirty(dirty bool) { n.dirty = dirty }

var nextDummyID uint64

func newDummyNode(t *testing.T, name string) *dummyNode {
	t.Helper()
	nextDummyID++
	n := &dummyNode{id: nextDummyID, name: name}

	var err error
	n.in, err = property.New(property.MakeStruct("IN", []property.TypeDesc{
		property.MakeType("value", property.TypeInt32),
		property.MakeType("other", property.TypeFloat),
	}), property.SemanticsScriptInput, n)
	require.NoError(t, err)

	n.out, err = property.New(property.MakeStruct("OUT", []property.TypeDesc{
		property.MakeType("value", property.TypeInt32),
		property.MakeType("other", property.TypeFloat),
	}), property.SemanticsScriptOutput, n)
	require.NoError(t, err)
	return n
}

func sortedNames(t *testing.T, nodes []property.Owner) []string {
	t.Helper()
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name())
	}
	return names
}

func indexOf(nodes []property.Owner, node property.Owner) int {
	for i, n := range nodes {
		if n == node {
			return i
		}
	}
	return -1
}

func TestNodeGraph_Edges(t *testing.T) {
	t.Run("add_edge_reports_first_connection", func(t *testing.T) {
		g := NewNodeGraph()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		g.AddNode(a)
		g.AddNode(b)

		assert.True(t, g.AddEdge(a, b))
		assert.False(t, g.AddEdge(a, b), "second link between the pair only bumps multiplicity")
		assert.Equal(t, 2, g.OutDegree(a))
		assert.Equal(t, 2, g.InDegree(b))
	})

	t.Run("remove_edge_decrements_multiplicity", func(t *testing.T) {
		g := NewNodeGraph()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		g.AddNode(a)
		g.AddNode(b)
		g.AddEdge(a, b)
		g.AddEdge(a, b)

		assert.False(t, g.RemoveEdge(a, b))
		assert.Equal(t, 1, g.InDegree(b))
		assert.True(t, g.RemoveEdge(a, b), "last removal drops the edge")
		assert.Equal(t, 0, g.InDegree(b))
	})

	t.Run("remove_node_drops_touching_edges", func(t *testing.T) {
		g := NewNodeGraph()
		a, b, c := newDummyNode(t, "a"), newDummyNode(t, "b"), newDummyNode(t, "c")
		g.AddNode(a)
		g.AddNode(b)
		g.AddNode(c)
		g.AddEdge(a, b)
		g.AddEdge(b, c)

		g.RemoveNode(b)
		assert.False(t, g.Contains(b))
		assert.Equal(t, 0, g.OutDegree(a))
		assert.Equal(t, 0, g.InDegree(c))
	})
}

func TestNodeGraph_TopologicalSort(t *testing.T) {
	t.Run("empty_graph_sorts_empty", func(t *testing.T) {
		g := NewNodeGraph()
		sorted, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Empty(t, sorted)
	})

	t.Run("respects_every_edge", func(t *testing.T) {
		g := NewNodeGraph()
		a, b, c, d := newDummyNode(t, "a"), newDummyNode(t, "b"), newDummyNode(t, "c"), newDummyNode(t, "d")
		for _, n := range []*dummyNode{a, b, c, d} {
			g.AddNode(n)
		}
		g.AddEdge(a, b)
		g.AddEdge(a, c)
		g.AddEdge(b, d)
		g.AddEdge(c, d)

		sorted, err := g.TopologicalSort()
		require.NoError(t, err)
		require.Len(t, sorted, 4)

		assert.Less(t, indexOf(sorted, a), indexOf(sorted, b))
		assert.Less(t, indexOf(sorted, a), indexOf(sorted, c))
		assert.Less(t, indexOf(sorted, b), indexOf(sorted, d))
		assert.Less(t, indexOf(sorted, c), indexOf(sorted, d))
	})

	t.Run("every_node_appears_exactly_once", func(t *testing.T) {
		g := NewNodeGraph()
		a, b, c := newDummyNode(t, "a"), newDummyNode(t, "b"), newDummyNode(t, "c")
		for _, n := range []*dummyNode{a, b, c} {
			g.AddNode(n)
		}
		// diamond with a shortcut: c is reachable twice
		g.AddEdge(a, b)
		g.AddEdge(a, c)
		g.AddEdge(b, c)

		sorted, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, sortedNames(t, sorted))
	})

	t.Run("unconnected_nodes_keep_insertion_order", func(t *testing.T) {
		g := NewNodeGraph()
		nodes := []*dummyNode{
			newDummyNode(t, "n1"), newDummyNode(t, "n2"), newDummyNode(t, "n3"),
		}
		for _, n := range nodes {
			g.AddNode(n)
		}

		first, err := g.TopologicalSort()
		require.NoError(t, err)
		second, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n2", "n3"}, sortedNames(t, first))
		assert.Equal(t, sortedNames(t, first), sortedNames(t, second))
	})

	t.Run("two_node_cycle_is_detected", func(t *testing.T) {
		g := NewNodeGraph()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		g.AddNode(a)
		g.AddNode(b)
		g.AddEdge(a, b)
		g.AddEdge(b, a)

		_, err := g.TopologicalSort()
		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("cycle_behind_root_nodes_is_detected", func(t *testing.T) {
		g := NewNodeGraph()
		root, a, b := newDummyNode(t, "root"), newDummyNode(t, "a"), newDummyNode(t, "b")
		for _, n := range []*dummyNode{root, a, b} {
			g.AddNode(n)
		}
		// root feeds a cycle between a and b; roots exist, but the sort
		// must still fail
		g.AddEdge(root, a)
		g.AddEdge(a, b)
		g.AddEdge(b, a)

		_, err := g.TopologicalSort()
		assert.ErrorIs(t, err, ErrCycleDetected)
	})
}

func TestLinkRegistry(t *testing.T) {
	t.Run("link_records_both_directions", func(t *testing.T) {
		r := NewLinkRegistry()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		out := a.out.Child("value")
		in := b.in.Child("value")

		require.True(t, r.Add(out, in))
		assert.Same(t, out, r.SourceOf(in))
		assert.Contains(t, r.TargetsOf(out), in)
		assert.True(t, in.IsLinkedInput())
	})

	t.Run("second_source_for_same_input_is_rejected", func(t *testing.T) {
		r := NewLinkRegistry()
		a, b, c := newDummyNode(t, "a"), newDummyNode(t, "b"), newDummyNode(t, "c")
		in := c.in.Child("value")

		require.True(t, r.Add(a.out.Child("value"), in))
		assert.False(t, r.Add(b.out.Child("value"), in))
		assert.Same(t, a.out.Child("value"), r.SourceOf(in))
	})

	t.Run("one_output_drives_many_inputs", func(t *testing.T) {
		r := NewLinkRegistry()
		a, b, c := newDummyNode(t, "a"), newDummyNode(t, "b"), newDummyNode(t, "c")
		out := a.out.Child("value")

		require.True(t, r.Add(out, b.in.Child("value")))
		require.True(t, r.Add(out, c.in.Child("value")))
		assert.Len(t, r.TargetsOf(out), 2)
	})

	t.Run("unlink_restores_input_state", func(t *testing.T) {
		r := NewLinkRegistry()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		out := a.out.Child("value")
		in := b.in.Child("value")
		require.True(t, r.Add(out, in))

		require.True(t, r.Remove(out, in))
		assert.Nil(t, r.SourceOf(in))
		assert.NotContains(t, r.TargetsOf(out), in)
		assert.False(t, in.IsLinkedInput())

		assert.False(t, r.Remove(out, in), "removing a missing link fails")
	})

	t.Run("remove_all_for_node_drops_every_touching_link", func(t *testing.T) {
		r := NewLinkRegistry()
		a, b, c := newDummyNode(t, "a"), newDummyNode(t, "b"), newDummyNode(t, "c")
		require.True(t, r.Add(a.out.Child("value"), b.in.Child("value")))
		require.True(t, r.Add(b.out.Child("value"), c.in.Child("value")))

		removed := r.RemoveAllForNode(b)
		assert.Len(t, removed, 2)
		assert.False(t, r.IsLinked(a))
		assert.False(t, r.IsLinked(b))
		assert.False(t, r.IsLinked(c))
	})
}

func TestDependencies_Link(t *testing.T) {
	setup := func(t *testing.T) (*Dependencies, *dummyNode, *dummyNode) {
		d := NewDependencies()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		d.AddNode(a)
		d.AddNode(b)
		return d, a, b
	}

	t.Run("valid_link_succeeds_and_dirties_target", func(t *testing.T) {
		d, a, b := setup(t)
		b.dirty = false

		require.NoError(t, d.Link(a.out.Child("value"), b.in.Child("value")))
		assert.Same(t, a.out.Child("value"), d.LinkedSource(b.in.Child("value")))
		assert.True(t, b.dirty)
	})

	t.Run("rejects_foreign_node", func(t *testing.T) {
		d, a, _ := setup(t)
		foreign := newDummyNode(t, "foreign")

		err := d.Link(a.out.Child("value"), foreign.in.Child("value"))
		assert.ErrorIs(t, err, ErrNotInstance)
	})

	t.Run("rejects_same_node", func(t *testing.T) {
		d, a, _ := setup(t)
		err := d.Link(a.out.Child("value"), a.in.Child("value"))
		assert.ErrorIs(t, err, ErrSelfLink)
	})

	t.Run("rejects_wrong_direction", func(t *testing.T) {
		d, a, b := setup(t)
		err := d.Link(a.in.Child("value"), b.in.Child("value"))
		assert.ErrorIs(t, err, ErrDirection)

		err = d.Link(a.out.Child("value"), b.out.Child("value"))
		assert.ErrorIs(t, err, ErrDirection)
	})

	t.Run("rejects_type_mismatch", func(t *testing.T) {
		d, a, b := setup(t)
		err := d.Link(a.out.Child("value"), b.in.Child("other"))
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("rejects_complex_endpoints", func(t *testing.T) {
		d, a, b := setup(t)
		err := d.Link(a.out, b.in)
		assert.ErrorIs(t, err, ErrComplexType)
	})

	t.Run("rejects_already_linked_input", func(t *testing.T) {
		d, a, b := setup(t)
		c := newDummyNode(t, "c")
		d.AddNode(c)

		require.NoError(t, d.Link(a.out.Child("value"), b.in.Child("value")))
		err := d.Link(c.out.Child("value"), b.in.Child("value"))
		assert.ErrorIs(t, err, ErrAlreadyLinked)
	})

	t.Run("rejects_link_closing_a_cycle", func(t *testing.T) {
		d, a, b := setup(t)
		c := newDummyNode(t, "c")
		d.AddNode(c)

		require.NoError(t, d.Link(a.out.Child("value"), b.in.Child("value")))
		require.NoError(t, d.Link(b.out.Child("value"), c.in.Child("value")))

		err := d.Link(c.out.Child("value"), a.in.Child("value"))
		assert.ErrorIs(t, err, ErrCycleDetected)

		// prior links stay intact, rejected link leaves no trace
		assert.NotNil(t, d.LinkedSource(b.in.Child("value")))
		assert.NotNil(t, d.LinkedSource(c.in.Child("value")))
		assert.Nil(t, d.LinkedSource(a.in.Child("value")))
		assert.False(t, a.in.Child("value").IsLinkedInput())

		sorted, err := d.SortedNodes()
		require.NoError(t, err)
		assert.Len(t, sorted, 3)
	})

	t.Run("unlink_rejects_missing_link", func(t *testing.T) {
		d, a, b := setup(t)
		err := d.Unlink(a.out.Child("value"), b.in.Child("value"))
		assert.ErrorIs(t, err, ErrNoLink)
	})

	t.Run("unlink_removes_edge", func(t *testing.T) {
		d, a, b := setup(t)
		out, in := a.out.Child("value"), b.in.Child("value")
		require.NoError(t, d.Link(out, in))
		require.NoError(t, d.Unlink(out, in))

		assert.Nil(t, d.LinkedSource(in))
		assert.Equal(t, 0, d.Graph().InDegree(b))
	})
}

func TestDependencies_SortedNodes(t *testing.T) {
	t.Run("caches_between_topology_changes", func(t *testing.T) {
		d := NewDependencies()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		d.AddNode(a)
		d.AddNode(b)

		first, err := d.SortedNodes()
		require.NoError(t, err)
		second, err := d.SortedNodes()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("remove_node_keeps_relative_order_without_resort", func(t *testing.T) {
		d := NewDependencies()
		nodes := []*dummyNode{
			newDummyNode(t, "a"), newDummyNode(t, "b"),
			newDummyNode(t, "c"), newDummyNode(t, "d"),
		}
		for _, n := range nodes {
			d.AddNode(n)
		}
		require.NoError(t, d.Link(nodes[0].out.Child("value"), nodes[1].in.Child("value")))
		require.NoError(t, d.Link(nodes[1].out.Child("value"), nodes[3].in.Child("value")))

		before, err := d.SortedNodes()
		require.NoError(t, err)
		beforeNames := sortedNames(t, before)

		d.RemoveNode(nodes[2])
		after, err := d.SortedNodes()
		require.NoError(t, err)

		var expected []string
		for _, name := range beforeNames {
			if name != "c" {
				expected = append(expected, name)
			}
		}
		assert.Equal(t, expected, sortedNames(t, after))
	})

	t.Run("remove_node_unlinks_its_properties", func(t *testing.T) {
		d := NewDependencies()
		a, b, c := newDummyNode(t, "a"), newDummyNode(t, "b"), newDummyNode(t, "c")
		for _, n := range []*dummyNode{a, b, c} {
			d.AddNode(n)
		}
		require.NoError(t, d.Link(a.out.Child("value"), b.in.Child("value")))
		require.NoError(t, d.Link(b.out.Child("value"), c.in.Child("value")))

		d.RemoveNode(b)
		assert.Nil(t, d.LinkedSource(c.in.Child("value")))
		assert.False(t, d.IsLinked(a))
		assert.False(t, d.IsLinked(c))
	})
}

func TestDependencies_ImplicitDependency(t *testing.T) {
	t.Run("orders_target_after_source", func(t *testing.T) {
		d := NewDependencies()
		// insertion order puts the dependent first
		late, early := newDummyNode(t, "late"), newDummyNode(t, "early")
		d.AddNode(late)
		d.AddNode(early)

		require.NoError(t, d.AddImplicitDependency(early, late))
		sorted, err := d.SortedNodes()
		require.NoError(t, err)
		assert.Less(t, indexOf(sorted, early), indexOf(sorted, late))
	})

	t.Run("rejects_cycle", func(t *testing.T) {
		d := NewDependencies()
		a, b := newDummyNode(t, "a"), newDummyNode(t, "b")
		d.AddNode(a)
		d.AddNode(b)

		require.NoError(t, d.AddImplicitDependency(a, b))
		err := d.AddImplicitDependency(b, a)
		assert.ErrorIs(t, err, ErrCycleDetected)
	})
}
