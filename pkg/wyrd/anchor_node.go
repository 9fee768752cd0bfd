package wyrd

import (
	"github.com/chewxy/math32"

	"github.com/orneryd/wyrd/pkg/property"
)

// AnchorPointNode is a read-only composite: it projects the world position
// of a node binding's transform through a camera binding into viewport
// pixel coordinates. Outputs are viewportCoords (Vec2f, pixels) and depth
// (Float, 0 at the near plane, 1 at the far plane).
//
// The node has no inputs and no incoming links; it reads the two bindings
// directly and is placed downstream of both through implicit dependency
// edges, so it always observes the bindings' state of the current tick.
type AnchorPointNode struct {
	nodeBase

	nodeBinding   *NodeBinding
	cameraBinding *CameraBinding
}

// newAnchorPointNode builds the output tree. The implicit graph edges are
// added by the engine after registration.
func newAnchorPointNode(nodeBinding *NodeBinding, cameraBinding *CameraBinding, name string, id uint64) (*AnchorPointNode, error) {
	n := &AnchorPointNode{
		nodeBase:      nodeBase{name: name, id: id, dirty: true},
		nodeBinding:   nodeBinding,
		cameraBinding: cameraBinding,
	}

	outputs := property.MakeStruct("OUT", []property.TypeDesc{
		property.MakeType("viewportCoords", property.TypeVec2f),
		property.MakeType("depth", property.TypeFloat),
	})

	var err error
	if n.rootOut, err = property.New(outputs, property.SemanticsAnimationOutput, n); err != nil {
		return nil, err
	}
	inputs := property.MakeStruct("IN", nil)
	if n.rootIn, err = property.New(inputs, property.SemanticsAnimationInput, n); err != nil {
		return nil, err
	}
	return n, nil
}

// IsDirty always reports true: the projection depends on host scene state
// that sits outside the property dirty tracking, so anchors re-evaluate on
// every update.
func (n *AnchorPointNode) IsDirty() bool { return true }

// NodeBinding returns the transform dependency.
func (n *AnchorPointNode) NodeBinding() *NodeBinding { return n.nodeBinding }

// CameraBinding returns the camera dependency.
func (n *AnchorPointNode) CameraBinding() *CameraBinding { return n.cameraBinding }

// Update projects the bound node's translation through the bound camera.
// The camera sits at the origin looking down negative Z; positions at or
// behind the camera plane cannot be projected.
func (n *AnchorPointNode) Update() *RuntimeError {
	pos := n.nodeBinding.BoundObject().Translation
	cam := n.cameraBinding.BoundObject()

	if pos[2] >= 0 {
		return runtimeErrorf(n, "cannot project position (%v, %v, %v) behind the camera", pos[0], pos[1], pos[2])
	}

	fov := cam.Frustum.FieldOfView * math32.Pi / 180
	f := 1 / math32.Tan(fov/2)

	invZ := -1 / pos[2]
	ndcX := f / cam.Frustum.AspectRatio * pos[0] * invZ
	ndcY := f * pos[1] * invZ

	vp := cam.Viewport
	coords := property.Vec2f{
		float32(vp.OffsetX) + (ndcX*0.5+0.5)*float32(vp.Width),
		float32(vp.OffsetY) + (ndcY*0.5+0.5)*float32(vp.Height),
	}
	depth := (-pos[2] - cam.Frustum.NearPlane) / (cam.Frustum.FarPlane - cam.Frustum.NearPlane)

	_ = n.rootOut.Child("viewportCoords").SetOutput(coords)
	_ = n.rootOut.Child("depth").SetOutput(depth)
	return nil
}
