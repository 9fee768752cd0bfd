// Package graph tracks the links between logic nodes and orders the nodes
// topologically based on those links.
//
// Three layers build on each other:
//
//   - LinkRegistry maps every linked input leaf to its single source output
//     leaf and every output leaf to the set of inputs it drives.
//   - NodeGraph is a multiset of directed node-to-node edges, where the
//     multiplicity of an edge counts the primitive links between the pair.
//     It produces the topological evaluation order or reports a cycle.
//   - Dependencies composes both, validates link requests against property
//     semantics and caches the sorted order between topology changes.
//
// The asymmetry between the layers is deliberate: an input leaf always has
// at most one source, so incoming links carry no multiplicity; two nodes can
// be connected by many leaf links, so node edges do.
package graph

import "errors"

// Link and sort errors. Dependencies wraps these with the offending
// property and node names.
var (
	// ErrNotInstance is returned when a link endpoint belongs to a node that
	// was never added to this dependency graph.
	ErrNotInstance = errors.New("node is not an instance of this engine")
	// ErrSelfLink is returned when both endpoints belong to the same node.
	ErrSelfLink = errors.New("source and target node are equal")
	// ErrDirection is returned when the source is not output-capable or the
	// target is not input-capable.
	ErrDirection = errors.New("only outputs can be linked to inputs")
	// ErrTypeMismatch is returned when the endpoint types differ.
	ErrTypeMismatch = errors.New("source and target types do not match")
	// ErrComplexType is returned when an endpoint is a struct or array.
	// Only primitive leaves can be linked.
	ErrComplexType = errors.New("properties of complex types cannot be linked")
	// ErrAlreadyLinked is returned when the target input already has a
	// source.
	ErrAlreadyLinked = errors.New("target property is already linked")
	// ErrNoLink is returned by unlink when no such link exists.
	ErrNoLink = errors.New("no link between the given properties")
	// ErrCycleDetected is returned when the graph contains a cycle, either
	// during sorting or when a link request would close one.
	ErrCycleDetected = errors.New("cycle detected in node graph")
)
