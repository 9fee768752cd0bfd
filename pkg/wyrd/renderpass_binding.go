package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
)

// RenderPassBinding forwards its inputs into a render pass: the enabled
// toggle and the render order.
type RenderPassBinding struct {
	nodeBase
	bound *scene.RenderPass
}

func newRenderPassBinding(bound *scene.RenderPass, name string, id uint64) (*RenderPassBinding, error) {
	n := &RenderPassBinding{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
		bound:    bound,
	}

	inputs := property.MakeStruct("IN", []property.TypeDesc{
		property.MakeType("enabled", property.TypeBool),
		property.MakeType("renderOrder", property.TypeInt32),
	})

	var err error
	if n.rootIn, err = property.New(inputs, property.SemanticsBindingInput, n); err != nil {
		return nil, err
	}
	_ = n.rootIn.Child("enabled").RestoreValue(bound.Enabled)
	_ = n.rootIn.Child("renderOrder").RestoreValue(bound.RenderOrder)
	return n, nil
}

// BoundObject returns the render pass this binding writes into.
func (n *RenderPassBinding) BoundObject() *scene.RenderPass { return n.bound }

// Update forwards the pending input leaves into the render pass.
func (n *RenderPassBinding) Update() *RuntimeError {
	forEachPendingLeaf(n.rootIn, func(leaf *property.Property) {
		switch leaf.Name() {
		case "enabled":
			v, _ := property.Get[bool](leaf)
			n.bound.Enabled = v
		case "renderOrder":
			v, _ := property.Get[int32](leaf)
			n.bound.RenderOrder = v
		}
	})
	return nil
}
