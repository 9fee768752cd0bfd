package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
)

// CameraBinding forwards its inputs into a camera: the pixel viewport and
// the perspective frustum parameters, grouped into two input structs.
type CameraBinding struct {
	nodeBase
	bound *scene.Camera
}

// newCameraBinding builds the fixed input schema and seeds the leaves from
// the camera's current state.
func newCameraBinding(bound *scene.Camera, name string, id uint64) (*CameraBinding, error) {
	n := &CameraBinding{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
		bound:    bound,
	}

	inputs := property.MakeStruct("IN", []property.TypeDesc{
		property.MakeStruct("viewport", []property.TypeDesc{
			property.MakeType("offsetX", property.TypeInt32),
			property.MakeType("offsetY", property.TypeInt32),
			property.MakeType("width", property.TypeInt32),
			property.MakeType("height", property.TypeInt32),
		}),
		property.MakeStruct("frustum", []property.TypeDesc{
			property.MakeType("nearPlane", property.TypeFloat),
			property.MakeType("farPlane", property.TypeFloat),
			property.MakeType("fieldOfView", property.TypeFloat),
			property.MakeType("aspectRatio", property.TypeFloat),
		}),
	})

	var err error
	if n.rootIn, err = property.New(inputs, property.SemanticsBindingInput, n); err != nil {
		return nil, err
	}
	n.seedFromScene()
	return n, nil
}

func (n *CameraBinding) seedFromScene() {
	vp := n.rootIn.Child("viewport")
	_ = vp.Child("offsetX").RestoreValue(n.bound.Viewport.OffsetX)
	_ = vp.Child("offsetY").RestoreValue(n.bound.Viewport.OffsetY)
	_ = vp.Child("width").RestoreValue(n.bound.Viewport.Width)
	_ = vp.Child("height").RestoreValue(n.bound.Viewport.Height)

	fr := n.rootIn.Child("frustum")
	_ = fr.Child("nearPlane").RestoreValue(n.bound.Frustum.NearPlane)
	_ = fr.Child("farPlane").RestoreValue(n.bound.Frustum.FarPlane)
	_ = fr.Child("fieldOfView").RestoreValue(n.bound.Frustum.FieldOfView)
	_ = fr.Child("aspectRatio").RestoreValue(n.bound.Frustum.AspectRatio)
}

// BoundObject returns the camera this binding writes into.
func (n *CameraBinding) BoundObject() *scene.Camera { return n.bound }

// Update forwards the pending input leaves into the camera.
func (n *CameraBinding) Update() *RuntimeError {
	vp := n.rootIn.Child("viewport")
	fr := n.rootIn.Child("frustum")
	forEachPendingLeaf(n.rootIn, func(leaf *property.Property) {
		switch leaf.Parent() {
		case vp:
			v, _ := property.Get[int32](leaf)
			switch leaf.Name() {
			case "offsetX":
				n.bound.Viewport.OffsetX = v
			case "offsetY":
				n.bound.Viewport.OffsetY = v
			case "width":
				n.bound.Viewport.Width = v
			case "height":
				n.bound.Viewport.Height = v
			}
		case fr:
			v, _ := property.Get[float32](leaf)
			switch leaf.Name() {
			case "nearPlane":
				n.bound.Frustum.NearPlane = v
			case "farPlane":
				n.bound.Frustum.FarPlane = v
			case "fieldOfView":
				n.bound.Frustum.FieldOfView = v
			case "aspectRatio":
				n.bound.Frustum.AspectRatio = v
			}
		}
	})
	return nil
}
