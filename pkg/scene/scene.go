// Package scene provides the host scene objects that binding nodes write
// into. The logic engine treats the scene as an opaque sink: binding nodes
// forward their input leaves into scene objects at the end of each update,
// in topological order.
//
// Scene objects carry stable ids so that bindings can be re-attached after
// loading a persisted logic graph. Re-attachment validates that the object
// still exposes the names and types the persisted binding expects.
//
// Example Usage:
//
//	sc := scene.New()
//	node := sc.CreateNode("root")
//	cam := sc.CreateCamera("main")
//
//	// ... drive node.Translation / cam.Viewport through binding nodes ...
package scene

import "github.com/orneryd/wyrd/pkg/property"

// ObjectID is a stable identifier for a scene object, unique within one
// Scene across all object kinds.
type ObjectID uint64

// Node is a transformable scene object: the target of node bindings.
type Node struct {
	id   ObjectID
	name string

	Visibility  bool
	Translation property.Vec3f
	Rotation    property.Vec3f
	Scaling     property.Vec3f
}

// ID returns the object's scene-stable id.
func (n *Node) ID() ObjectID { return n.id }

// Name returns the object's display name.
func (n *Node) Name() string { return n.name }

// Uniform is one settable appearance input: a name, a property type and the
// last written value.
type Uniform struct {
	Name  string
	Type  property.Type
	Value any
}

// Appearance is a material-like scene object carrying named typed uniforms:
// the target of appearance bindings. The uniform set is fixed at creation;
// bindings derive their input schema from it.
type Appearance struct {
	id   ObjectID
	name string

	uniforms []Uniform
	index    map[string]int
}

// ID returns the object's scene-stable id.
func (a *Appearance) ID() ObjectID { return a.id }

// Name returns the object's display name.
func (a *Appearance) Name() string { return a.name }

// Uniforms returns the declared uniforms in declaration order. The returned
// slice is the appearance's own; callers must not mutate it.
func (a *Appearance) Uniforms() []Uniform { return a.uniforms }

// Uniform returns the declared uniform with the given name, or nil.
func (a *Appearance) Uniform(name string) *Uniform {
	i, ok := a.index[name]
	if !ok {
		return nil
	}
	return &a.uniforms[i]
}

// SetUniform stores a value for the named uniform. Returns false when the
// uniform does not exist; the value type was validated by the binding.
func (a *Appearance) SetUniform(name string, value any) bool {
	i, ok := a.index[name]
	if !ok {
		return false
	}
	a.uniforms[i].Value = value
	return true
}

// Viewport is the pixel rectangle a camera renders into.
type Viewport struct {
	OffsetX int32
	OffsetY int32
	Width   int32
	Height  int32
}

// Frustum holds the perspective projection parameters of a camera.
type Frustum struct {
	NearPlane   float32
	FarPlane    float32
	FieldOfView float32 // vertical, degrees
	AspectRatio float32
}

// Camera is a perspective camera scene object: the target of camera
// bindings and one of the two dependencies of anchor points.
type Camera struct {
	id   ObjectID
	name string

	Viewport Viewport
	Frustum  Frustum
}

// ID returns the object's scene-stable id.
func (c *Camera) ID() ObjectID { return c.id }

// Name returns the object's display name.
func (c *Camera) Name() string { return c.name }

// RenderPass is a renderable pass scene object: the target of render pass
// bindings.
type RenderPass struct {
	id   ObjectID
	name string

	Enabled     bool
	RenderOrder int32
}

// ID returns the object's scene-stable id.
func (p *RenderPass) ID() ObjectID { return p.id }

// Name returns the object's display name.
func (p *RenderPass) Name() string { return p.name }

// Scene owns all host objects and hands out ids.
type Scene struct {
	nextID ObjectID

	nodes       []*Node
	appearances []*Appearance
	cameras     []*Camera
	passes      []*RenderPass
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

func (s *Scene) allocID() ObjectID {
	s.nextID++
	return s.nextID
}

// CreateNode adds a transformable node with identity transform defaults:
// visible, zero translation and rotation, unit scaling.
func (s *Scene) CreateNode(name string) *Node {
	n := &Node{
		id:         s.allocID(),
		name:       name,
		Visibility: true,
		Scaling:    property.Vec3f{1, 1, 1},
	}
	s.nodes = append(s.nodes, n)
	return n
}

// CreateAppearance adds an appearance with the given uniform declarations.
// Declarations with container types or duplicate names are skipped.
func (s *Scene) CreateAppearance(name string, uniforms []Uniform) *Appearance {
	a := &Appearance{
		id:    s.allocID(),
		name:  name,
		index: make(map[string]int, len(uniforms)),
	}
	for _, u := range uniforms {
		if !u.Type.IsPrimitive() {
			continue
		}
		if _, dup := a.index[u.Name]; dup {
			continue
		}
		if u.Value == nil {
			u.Value = u.Type.ZeroValue()
		}
		a.index[u.Name] = len(a.uniforms)
		a.uniforms = append(a.uniforms, u)
	}
	s.appearances = append(s.appearances, a)
	return a
}

// CreateCamera adds a camera with a 16:9 viewport and a standard
// perspective frustum.
func (s *Scene) CreateCamera(name string) *Camera {
	c := &Camera{
		id:   s.allocID(),
		name: name,
		Viewport: Viewport{
			Width:  1280,
			Height: 720,
		},
		Frustum: Frustum{
			NearPlane:   0.1,
			FarPlane:    100,
			FieldOfView: 45,
			AspectRatio: 16.0 / 9.0,
		},
	}
	s.cameras = append(s.cameras, c)
	return c
}

// CreateRenderPass adds an enabled render pass with order zero.
func (s *Scene) CreateRenderPass(name string) *RenderPass {
	p := &RenderPass{
		id:      s.allocID(),
		name:    name,
		Enabled: true,
	}
	s.passes = append(s.passes, p)
	return p
}

// FindNode returns the node with the given id, or nil.
func (s *Scene) FindNode(id ObjectID) *Node {
	for _, n := range s.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

// FindAppearance returns the appearance with the given id, or nil.
func (s *Scene) FindAppearance(id ObjectID) *Appearance {
	for _, a := range s.appearances {
		if a.id == id {
			return a
		}
	}
	return nil
}

// FindCamera returns the camera with the given id, or nil.
func (s *Scene) FindCamera(id ObjectID) *Camera {
	for _, c := range s.cameras {
		if c.id == id {
			return c
		}
	}
	return nil
}

// FindRenderPass returns the render pass with the given id, or nil.
func (s *Scene) FindRenderPass(id ObjectID) *RenderPass {
	for _, p := range s.passes {
		if p.id == id {
			return p
		}
	}
	return nil
}
