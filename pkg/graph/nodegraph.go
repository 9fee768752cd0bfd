package graph

import (
	"github.com/orneryd/wyrd/pkg/property"
)

// edge is one outgoing connection of a node. multiplicity counts the
// primitive links between the node pair; the edge disappears when the last
// link is removed.
type edge struct {
	target       property.Owner
	multiplicity int
}

// NodeGraph is a multiset of directed node-to-node edges. Nodes are added
// explicitly; edges follow the primitive links between their properties.
//
// The graph remembers node insertion order so that unrelated nodes keep a
// stable position in the topological sort across calls.
type NodeGraph struct {
	nodes    []property.Owner
	outgoing map[property.Owner][]edge
}

// NewNodeGraph creates an empty graph.
func NewNodeGraph() *NodeGraph {
	return &NodeGraph{
		outgoing: make(map[property.Owner][]edge),
	}
}

// AddNode registers a node with no edges. Adding a node twice is a no-op.
func (g *NodeGraph) AddNode(node property.Owner) {
	if g.Contains(node) {
		return
	}
	g.nodes = append(g.nodes, node)
	g.outgoing[node] = nil
}

// RemoveNode drops the node and every edge touching it.
func (g *NodeGraph) RemoveNode(node property.Owner) {
	for other, edges := range g.outgoing {
		if other == node {
			continue
		}
		for i, e := range edges {
			if e.target == node {
				g.outgoing[other] = append(edges[:i], edges[i+1:]...)
				break
			}
		}
	}
	delete(g.outgoing, node)
	for i, n := range g.nodes {
		if n == node {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
}

// Contains reports whether the node was added to the graph.
func (g *NodeGraph) Contains(node property.Owner) bool {
	_, ok := g.outgoing[node]
	return ok
}

// NodeCount returns the number of registered nodes.
func (g *NodeGraph) NodeCount() int {
	return len(g.nodes)
}

// AddEdge increments the multiplicity of the edge from source to target,
// creating it at multiplicity one if absent. Reports whether this was the
// first edge between the pair; only a first edge changes the topology.
func (g *NodeGraph) AddEdge(source, target property.Owner) bool {
	edges := g.outgoing[source]
	for i := range edges {
		if edges[i].target == target {
			edges[i].multiplicity++
			return false
		}
	}
	g.outgoing[source] = append(edges, edge{target: target, multiplicity: 1})
	return true
}

// RemoveEdge decrements the multiplicity of the edge from source to target
// and drops the edge at zero. Reports whether the edge disappeared.
func (g *NodeGraph) RemoveEdge(source, target property.Owner) bool {
	edges := g.outgoing[source]
	for i := range edges {
		if edges[i].target == target {
			edges[i].multiplicity--
			if edges[i].multiplicity == 0 {
				g.outgoing[source] = append(edges[:i], edges[i+1:]...)
				return true
			}
			return false
		}
	}
	return false
}

// InDegree sums the multiplicities of all edges terminating at node.
func (g *NodeGraph) InDegree(node property.Owner) int {
	sum := 0
	for _, edges := range g.outgoing {
		for _, e := range edges {
			if e.target == node {
				sum += e.multiplicity
			}
		}
	}
	return sum
}

// OutDegree sums the multiplicities of all edges originating at node.
func (g *NodeGraph) OutDegree(node property.Owner) int {
	sum := 0
	for _, e := range g.outgoing[node] {
		sum += e.multiplicity
	}
	return sum
}

// TopologicalSort returns the nodes ordered so that for every edge (a, b),
// a precedes b, or ErrCycleDetected when no such order exists.
//
// The algorithm keeps a sparse, partially sorted queue seeded with the root
// nodes. Each traversed edge moves the edge's target to the tail of the
// queue, clearing its previous slot. A node moves again whenever one of its
// predecessors is traversed, so nodes and their descendants bubble towards
// the tail until every predecessor has been processed. The queue only ever
// grows, so exceeding N² iterations means some node kept being re-appended,
// which only a cycle can cause. Nodes on a cycle that no root reaches are
// never placed; a short result reports that cycle.
func (g *NodeGraph) TopologicalSort() ([]property.Owner, error) {
	totalNodes := len(g.nodes)

	// queue slot of each node seen so far; slots go stale when a node moves
	queueIndex := make(map[property.Owner]int, totalNodes)

	sparseQueue := g.collectRootNodes()
	if len(sparseQueue) == 0 && totalNodes > 0 {
		return nil, ErrCycleDetected
	}

	for i := 0; i < len(sparseQueue); i++ {
		if i > totalNodes*totalNodes {
			return nil, ErrCycleDetected
		}

		next := sparseQueue[i]
		if next == nil {
			// hole left behind by a moved node
			continue
		}

		for _, e := range g.outgoing[next] {
			sparseQueue = append(sparseQueue, e.target)
			tail := len(sparseQueue) - 1

			if prev, seen := queueIndex[e.target]; seen {
				// already placed: clear the old slot so the node occurs once
				sparseQueue[prev] = nil
			}
			queueIndex[e.target] = tail
		}
	}

	sorted := make([]property.Owner, 0, totalNodes)
	for _, node := range sparseQueue {
		if node != nil {
			sorted = append(sorted, node)
		}
	}
	if len(sorted) != totalNodes {
		return nil, ErrCycleDetected
	}
	return sorted, nil
}

// collectRootNodes returns the nodes without incoming edges, in insertion
// order.
func (g *NodeGraph) collectRootNodes() []property.Owner {
	hasIncoming := make(map[property.Owner]struct{}, len(g.nodes))
	for _, edges := range g.outgoing {
		for _, e := range edges {
			hasIncoming[e.target] = struct{}{}
		}
	}

	roots := make([]property.Owner, 0, len(g.nodes))
	for _, node := range g.nodes {
		if _, ok := hasIncoming[node]; !ok {
			roots = append(roots, node)
		}
	}
	return roots
}
