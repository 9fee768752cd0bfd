// Package wyrd implements the Wyrd logic engine: a runtime that evaluates a
// directed acyclic graph of typed computational nodes whose outputs drive a
// host rendering scene.
//
// Node outputs connect to node inputs through links between individual leaf
// properties. On every Update the engine executes the dirty nodes in
// topological order, propagates changed output values across links, and
// lets binding nodes forward their inputs into scene objects.
//
// Node kinds:
//   - ScriptNode: behavior scripted in an embedded, sandboxed language
//   - InterfaceNode: renaming façade copying inputs to outputs
//   - AnimationNode: keyframe sampling over DataArray channels
//   - TimerNode: host-driven clock source
//   - AnchorPointNode: projected screen position of a bound transform
//   - Bindings: one kind per host scene object (node, appearance, camera,
//     render pass)
//
// Example Usage:
//
//	engine := wyrd.NewEngine(wyrd.EngineOptions{})
//	src, _ := engine.CreateScript(`
//	    function interface() { OUT.value = Types.Int32; }
//	    function run() { OUT.value = 3; }
//	`, "producer")
//	sink, _ := engine.CreateScript(`
//	    function interface() { IN.value = Types.Int32; OUT.value = Types.Int32; }
//	    function run() { OUT.value = IN.value; }
//	`, "consumer")
//
//	engine.Link(src.RootOutput().Child("value"), sink.RootInput().Child("value"))
//	engine.Update()
package wyrd

import (
	"fmt"

	"github.com/orneryd/wyrd/pkg/property"
)

// LogicNode is the surface every node variant exposes to the engine and the
// user: identity, the two property trees, the dirty flag and the update
// operation.
type LogicNode interface {
	// Name returns the display name. Names are not required to be unique.
	Name() string
	// ID returns the engine-stable id, monotonically assigned at creation.
	ID() uint64
	// RootInput returns the root of the input tree; nil for output-less
	// binding-only variants never occurs, but the tree may be empty.
	RootInput() *property.Property
	// RootOutput returns the root of the output tree; nil for bindings.
	RootOutput() *property.Property
	// IsDirty reports whether an input changed since the last successful
	// update.
	IsDirty() bool
	// SetDirty flags or clears the node for re-execution.
	SetDirty(dirty bool)
	// Update executes the node: read the input tree, write the output tree
	// (or the bound scene object). Returns nil on success.
	Update() *RuntimeError
}

// RuntimeError is a failure produced by a node's Update.
type RuntimeError struct {
	NodeName string
	Message  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("node '%s': %s", e.NodeName, e.Message)
}

// runtimeErrorf builds a RuntimeError for a node.
func runtimeErrorf(node LogicNode, format string, args ...any) *RuntimeError {
	return &RuntimeError{NodeName: node.Name(), Message: fmt.Sprintf(format, args...)}
}

// nodeBase carries the state shared by all node variants. Concrete nodes
// embed it and implement Update; the embedding node pointer (not the base)
// is the property owner and graph identity.
type nodeBase struct {
	name  string
	id    uint64
	dirty bool

	rootIn  *property.Property
	rootOut *property.Property
}

// Name returns the node's display name.
func (n *nodeBase) Name() string { return n.name }

// ID returns the node's engine-stable id.
func (n *nodeBase) ID() uint64 { return n.id }

// IsDirty reports whether the node needs re-execution.
func (n *nodeBase) IsDirty() bool { return n.dirty }

// SetDirty flags or clears the node for re-execution.
func (n *nodeBase) SetDirty(dirty bool) { n.dirty = dirty }

// RootInput returns the root input property.
func (n *nodeBase) RootInput() *property.Property { return n.rootIn }

// RootOutput returns the root output property.
func (n *nodeBase) RootOutput() *property.Property { return n.rootOut }
