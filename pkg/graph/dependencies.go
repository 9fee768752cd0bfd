package graph

import (
	"fmt"
	"slices"

	"github.com/orneryd/wyrd/pkg/property"
)

// Dependencies composes the link registry and the node graph behind one
// façade: it validates link requests against property semantics, keeps the
// node edges in sync with the primitive links and caches the topological
// order between topology changes.
type Dependencies struct {
	registry *LinkRegistry
	dag      *NodeGraph

	cachedOrder     []property.Owner
	topologyChanged bool

	// implicit node-level dependencies without a property link, e.g. an
	// anchor point depending on the bindings it reads
	implicitEdges []implicitEdge
}

type implicitEdge struct {
	source property.Owner
	target property.Owner
}

// NewDependencies creates an empty dependency tracker.
func NewDependencies() *Dependencies {
	return &Dependencies{
		registry:        NewLinkRegistry(),
		dag:             NewNodeGraph(),
		topologyChanged: true,
	}
}

// AddNode registers a node with the dependency graph.
func (d *Dependencies) AddNode(node property.Owner) {
	d.dag.AddNode(node)
	d.topologyChanged = true
}

// RemoveNode unlinks every link touching the node's properties, removes the
// node from the graph and drops it from the cached order without re-sorting.
// Relative order of unrelated nodes is only guaranteed while they are
// linked, so removal needs no topology update.
func (d *Dependencies) RemoveNode(node property.Owner) {
	for _, link := range d.registry.RemoveAllForNode(node) {
		d.dag.RemoveEdge(link.Source.Owner(), link.Target.Owner())
	}
	d.implicitEdges = slices.DeleteFunc(d.implicitEdges, func(e implicitEdge) bool {
		if e.source == node || e.target == node {
			d.dag.RemoveEdge(e.source, e.target)
			return true
		}
		return false
	})
	d.dag.RemoveNode(node)

	if d.cachedOrder != nil {
		d.cachedOrder = slices.DeleteFunc(d.cachedOrder, func(n property.Owner) bool {
			return n == node
		})
	}
}

// Contains reports whether the node belongs to this dependency graph.
func (d *Dependencies) Contains(node property.Owner) bool {
	return d.dag.Contains(node)
}

// IsLinked reports whether any link touches the node.
func (d *Dependencies) IsLinked(node property.Owner) bool {
	return d.registry.IsLinked(node)
}

// Link connects the output leaf out to the input leaf in after validating
// the request:
//
//   - both owners belong to this graph and differ,
//   - out is output-capable and in is input-capable,
//   - both are primitive leaves of identical type,
//   - in has no source yet,
//   - the new edge closes no cycle.
//
// Failure leaves all state untouched. Success adds the registry entry, the
// node edge and marks the target node dirty.
func (d *Dependencies) Link(out, in *property.Property) error {
	sourceNode := out.Owner()
	targetNode := in.Owner()

	if !d.dag.Contains(sourceNode) {
		return fmt.Errorf("node '%s': %w", sourceNode.Name(), ErrNotInstance)
	}
	if !d.dag.Contains(targetNode) {
		return fmt.Errorf("node '%s': %w", targetNode.Name(), ErrNotInstance)
	}
	if sourceNode == targetNode {
		return fmt.Errorf("property '%s' to '%s' on node '%s': %w", out.Name(), in.Name(), sourceNode.Name(), ErrSelfLink)
	}
	if !out.Semantics().LinkableAsOutput() || !in.Semantics().LinkableAsInput() {
		return fmt.Errorf("property '%s' (%s) to '%s' (%s): %w",
			out.Name(), out.Semantics(), in.Name(), in.Semantics(), ErrDirection)
	}
	if out.Type() != in.Type() {
		return fmt.Errorf("source property '%s:%s' and target property '%s:%s': %w",
			out.Name(), out.Type(), in.Name(), in.Type(), ErrTypeMismatch)
	}
	if !out.Type().IsPrimitive() {
		return fmt.Errorf("property '%s' of type %s: %w", out.Name(), out.Type(), ErrComplexType)
	}
	if !d.registry.Add(out, in) {
		existing := d.registry.SourceOf(in)
		return fmt.Errorf("property '%s' of node '%s' is already linked to '%s' of node '%s': %w",
			existing.Name(), existing.Owner().Name(), in.Name(), targetNode.Name(), ErrAlreadyLinked)
	}

	isNewEdge := d.dag.AddEdge(sourceNode, targetNode)
	if isNewEdge {
		// A first edge between the pair can close a cycle. Check eagerly and
		// roll the whole link back so rejected requests have no side effects.
		if _, err := d.dag.TopologicalSort(); err != nil {
			d.dag.RemoveEdge(sourceNode, targetNode)
			d.registry.Remove(out, in)
			return fmt.Errorf("link from '%s' of node '%s' to '%s' of node '%s': %w",
				out.Name(), sourceNode.Name(), in.Name(), targetNode.Name(), ErrCycleDetected)
		}
		d.topologyChanged = true
	}
	targetNode.SetDirty(true)

	return nil
}

// Unlink removes the link from out to in. Complex-type endpoints and
// missing links are rejected.
func (d *Dependencies) Unlink(out, in *property.Property) error {
	if in.Type().CanHaveChildren() {
		return fmt.Errorf("property '%s' of type %s: %w", in.Name(), in.Type(), ErrComplexType)
	}
	if !d.registry.Remove(out, in) {
		return fmt.Errorf("from source property '%s' to target property '%s': %w", out.Name(), in.Name(), ErrNoLink)
	}
	d.dag.RemoveEdge(out.Owner(), in.Owner())
	return nil
}

// AddImplicitDependency adds a node-level edge without a property link:
// target sorts after source from now on. Used for composite nodes (anchor
// points) that read other nodes' state outside the link system. The edge is
// removed when either node is removed.
func (d *Dependencies) AddImplicitDependency(source, target property.Owner) error {
	if !d.dag.Contains(source) {
		return fmt.Errorf("node '%s': %w", source.Name(), ErrNotInstance)
	}
	if !d.dag.Contains(target) {
		return fmt.Errorf("node '%s': %w", target.Name(), ErrNotInstance)
	}
	if source == target {
		return fmt.Errorf("node '%s': %w", source.Name(), ErrSelfLink)
	}
	if d.dag.AddEdge(source, target) {
		if _, err := d.dag.TopologicalSort(); err != nil {
			d.dag.RemoveEdge(source, target)
			return fmt.Errorf("dependency from '%s' to '%s': %w", source.Name(), target.Name(), ErrCycleDetected)
		}
		d.topologyChanged = true
	}
	d.implicitEdges = append(d.implicitEdges, implicitEdge{source: source, target: target})
	return nil
}

// SortedNodes returns the cached topological order, re-sorting only after
// topology changes. Reports ErrCycleDetected for cyclic graphs.
func (d *Dependencies) SortedNodes() ([]property.Owner, error) {
	if d.topologyChanged {
		order, err := d.dag.TopologicalSort()
		if err != nil {
			return nil, err
		}
		d.cachedOrder = order
		d.topologyChanged = false
	}
	return d.cachedOrder, nil
}

// LinkedSource returns the output leaf driving in, or nil.
func (d *Dependencies) LinkedSource(in *property.Property) *property.Property {
	return d.registry.SourceOf(in)
}

// Links returns every link in the graph in a deterministic order.
func (d *Dependencies) Links() []Link {
	return d.registry.Links()
}

// LinkTargets returns the input leaves driven by out.
func (d *Dependencies) LinkTargets(out *property.Property) []*property.Property {
	return d.registry.TargetsOf(out)
}

// Graph exposes the underlying node graph for degree queries in tests.
func (d *Dependencies) Graph() *NodeGraph {
	return d.dag
}
