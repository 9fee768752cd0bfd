package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
)

// NodeBinding forwards its inputs into a transformable scene node. The
// input tree mirrors the node's settable state: visibility, translation,
// rotation and scaling.
type NodeBinding struct {
	nodeBase
	bound *scene.Node
}

// newNodeBinding builds the fixed input schema and seeds the leaf values
// from the bound object's current state.
func newNodeBinding(bound *scene.Node, name string, id uint64) (*NodeBinding, error) {
	n := &NodeBinding{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
		bound:    bound,
	}

	inputs := property.MakeStruct("IN", []property.TypeDesc{
		property.MakeType("visibility", property.TypeBool),
		property.MakeType("translation", property.TypeVec3f),
		property.MakeType("rotation", property.TypeVec3f),
		property.MakeType("scaling", property.TypeVec3f),
	})

	var err error
	if n.rootIn, err = property.New(inputs, property.SemanticsBindingInput, n); err != nil {
		return nil, err
	}
	n.seedFromScene()
	return n, nil
}

// seedFromScene loads the current host state into the input leaves without
// marking them set: reads reflect the host until the logic graph takes
// over a leaf.
func (n *NodeBinding) seedFromScene() {
	_ = n.rootIn.Child("visibility").RestoreValue(n.bound.Visibility)
	_ = n.rootIn.Child("translation").RestoreValue(n.bound.Translation)
	_ = n.rootIn.Child("rotation").RestoreValue(n.bound.Rotation)
	_ = n.rootIn.Child("scaling").RestoreValue(n.bound.Scaling)
}

// BoundObject returns the scene node this binding writes into.
func (n *NodeBinding) BoundObject() *scene.Node { return n.bound }

// Update forwards the pending input leaves to the scene node.
func (n *NodeBinding) Update() *RuntimeError {
	forEachPendingLeaf(n.rootIn, func(leaf *property.Property) {
		switch leaf.Name() {
		case "visibility":
			v, _ := property.Get[bool](leaf)
			n.bound.Visibility = v
		case "translation":
			v, _ := property.Get[property.Vec3f](leaf)
			n.bound.Translation = v
		case "rotation":
			v, _ := property.Get[property.Vec3f](leaf)
			n.bound.Rotation = v
		case "scaling":
			v, _ := property.Get[property.Vec3f](leaf)
			n.bound.Scaling = v
		}
	})
	return nil
}
