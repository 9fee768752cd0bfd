package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
)

// AppearanceBinding forwards its inputs into the uniforms of an appearance.
// The input schema is derived from the bound appearance: one child per
// declared uniform, named and typed like the uniform. Re-attaching the
// binding to a different appearance re-derives the schema, invalidating all
// previous property references.
type AppearanceBinding struct {
	nodeBase
	bound *scene.Appearance
}

// newAppearanceBinding derives the input schema from the appearance.
func newAppearanceBinding(bound *scene.Appearance, name string, id uint64) (*AppearanceBinding, error) {
	n := &AppearanceBinding{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
		bound:    bound,
	}
	if err := n.rebuildInputs(); err != nil {
		return nil, err
	}
	return n, nil
}

// rebuildInputs re-derives the input tree from the bound appearance and
// seeds leaf values from the current uniform values.
func (n *AppearanceBinding) rebuildInputs() error {
	uniforms := n.bound.Uniforms()
	children := make([]property.TypeDesc, 0, len(uniforms))
	for _, u := range uniforms {
		children = append(children, property.MakeType(u.Name, u.Type))
	}

	root, err := property.New(property.MakeStruct("IN", children), property.SemanticsBindingInput, n)
	if err != nil {
		return err
	}
	n.rootIn = root
	for _, u := range uniforms {
		_ = root.Child(u.Name).RestoreValue(u.Value)
	}
	return nil
}

// BoundObject returns the appearance this binding writes into.
func (n *AppearanceBinding) BoundObject() *scene.Appearance { return n.bound }

// Update forwards the pending input leaves into the uniforms.
func (n *AppearanceBinding) Update() *RuntimeError {
	forEachPendingLeaf(n.rootIn, func(leaf *property.Property) {
		n.bound.SetUniform(leaf.Name(), leaf.RawValue())
	})
	return nil
}
