package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
)

// InterfaceNode is a renaming façade: one property tree with Interface
// semantics acts as both input and output. Values written to (or linked
// into) the tree propagate onward unchanged, so interface nodes give a
// stable, named surface in front of internal node networks.
type InterfaceNode struct {
	nodeBase
}

// newInterfaceNode instantiates the declared tree with Interface semantics.
func newInterfaceNode(desc property.TypeDesc, name string, id uint64) (*InterfaceNode, error) {
	n := &InterfaceNode{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
	}
	root, err := property.New(desc, property.SemanticsInterface, n)
	if err != nil {
		return nil, err
	}
	// Inputs and outputs are the same tree: the identity copy is free.
	n.rootIn = root
	n.rootOut = root
	return n, nil
}

// Update is a no-op: input and output share one tree, so the identity copy
// already happened when the value arrived.
func (n *InterfaceNode) Update() *RuntimeError {
	return nil
}
