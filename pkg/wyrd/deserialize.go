package wyrd

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
	"github.com/orneryd/wyrd/pkg/script"
	"github.com/orneryd/wyrd/pkg/serialization"
	"github.com/orneryd/wyrd/pkg/serialization/fb"
)

// LoadEngineFromBuffer reconstructs an engine from a buffer produced by
// SaveToBuffer. Bindings re-attach to the given scene by object id; their
// input schemas are re-derived from the attached objects and the persisted
// leaf values are merged back in by name. Any failure returns an error and
// no engine.
func LoadEngineFromBuffer(data []byte, sc *scene.Scene, opts EngineOptions) (*Engine, error) {
	e := NewEngine(opts)
	if err := loadInto(e, data, sc); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadEngineFromFile reads a logic file and reconstructs the engine.
func LoadEngineFromFile(path string, sc *scene.Scene, opts EngineOptions) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &serialization.IOError{Path: path, Err: err}
	}
	return LoadEngineFromBuffer(data, sc, opts)
}

// LoadFromBuffer replaces this engine's content with the persisted state.
// Loading is all-or-nothing: on error the engine keeps its previous state.
func (e *Engine) LoadFromBuffer(data []byte, sc *scene.Scene) error {
	e.clearErrors()
	scratch := NewEngine(e.opts)
	if err := loadInto(scratch, data, sc); err != nil {
		e.appendError(nil, "%v", err)
		return err
	}
	e.adoptState(scratch)
	return nil
}

// LoadFromFile reads a logic file into this engine, all-or-nothing.
func (e *Engine) LoadFromFile(path string, sc *scene.Scene) error {
	e.clearErrors()
	data, err := os.ReadFile(path)
	if err != nil {
		ioErr := &serialization.IOError{Path: path, Err: err}
		e.appendError(nil, "%v", ioErr)
		return ioErr
	}
	return e.LoadFromBuffer(data, sc)
}

func (e *Engine) adoptState(src *Engine) {
	e.nextID = src.nextID
	e.scripts = src.scripts
	e.interfaces = src.interfaces
	e.animations = src.animations
	e.timers = src.timers
	e.anchors = src.anchors
	e.nodeBindings = src.nodeBindings
	e.appearanceBindings = src.appearanceBindings
	e.cameraBindings = src.cameraBindings
	e.renderPassBindings = src.renderPassBindings
	e.dataArrays = src.dataArrays
	e.deps = src.deps
}

// loadInto deserializes the buffer into a fresh engine. FlatBuffers
// accessors panic on truncated buffers; the recover turns that into a
// format error.
func loadInto(e *Engine, data []byte, sc *scene.Scene) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &serialization.FormatError{Message: fmt.Sprintf("corrupted buffer: %v", r)}
		}
	}()

	header, payload, err := serialization.ParseHeader(data)
	if err != nil {
		return err
	}
	compat, err := serialization.CheckCompatibility(header)
	if err != nil {
		return err
	}
	if compat {
		e.logger.Debug("loading logic file with previous format version in compatibility mode",
			"fileFormat", header.FileFormat,
			"currentFormat", serialization.FileFormatVersion)
	}
	if len(payload) < 4 {
		return &serialization.FormatError{Message: "missing payload"}
	}

	root := fb.GetRootAsLogicFile(payload, 0)

	for j := 0; j < root.DataArraysLength(); j++ {
		var src fb.DataArray
		if !root.DataArrays(&src, j) {
			return &serialization.FormatError{Message: "missing data array entry"}
		}
		d, err := deserializeDataArray(&src)
		if err != nil {
			return err
		}
		e.restoreDataArray(d)
	}

	for j := 0; j < root.NodesLength(); j++ {
		var src fb.LogicNode
		if !root.Nodes(&src, j) {
			return &serialization.FormatError{Message: "missing node entry"}
		}
		if err := e.deserializeNode(&src, sc); err != nil {
			return err
		}
	}

	for j := 0; j < root.LinksLength(); j++ {
		var src fb.Link
		if !root.Links(&src, j) {
			return &serialization.FormatError{Message: "missing link entry"}
		}
		if err := e.deserializeLink(&src); err != nil {
			return err
		}
	}
	return nil
}

func deserializeDataArray(src *fb.DataArray) (*DataArray, error) {
	if src.Id() == 0 {
		return nil, &serialization.FormatError{Message: "data array without id"}
	}
	t := property.Type(src.Type())

	floats := make([]float32, src.FloatValuesLength())
	for i := range floats {
		floats[i] = src.FloatValues(i)
	}
	ints := make([]int32, src.IntValuesLength())
	for i := range ints {
		ints[i] = src.IntValues(i)
	}

	d := &DataArray{id: src.Id(), name: string(src.Name()), typ: t}
	switch t {
	case property.TypeFloat:
		d.data, d.size = floats, len(floats)
	case property.TypeVec2f:
		v, err := groupFloats[property.Vec2f](floats, 2, src)
		if err != nil {
			return nil, err
		}
		d.data, d.size = v, len(v)
	case property.TypeVec3f:
		v, err := groupFloats[property.Vec3f](floats, 3, src)
		if err != nil {
			return nil, err
		}
		d.data, d.size = v, len(v)
	case property.TypeVec4f:
		v, err := groupFloats[property.Vec4f](floats, 4, src)
		if err != nil {
			return nil, err
		}
		d.data, d.size = v, len(v)
	case property.TypeInt32:
		d.data, d.size = ints, len(ints)
	case property.TypeVec2i:
		v, err := groupInts[property.Vec2i](ints, 2, src)
		if err != nil {
			return nil, err
		}
		d.data, d.size = v, len(v)
	case property.TypeVec3i:
		v, err := groupInts[property.Vec3i](ints, 3, src)
		if err != nil {
			return nil, err
		}
		d.data, d.size = v, len(v)
	case property.TypeVec4i:
		v, err := groupInts[property.Vec4i](ints, 4, src)
		if err != nil {
			return nil, err
		}
		d.data, d.size = v, len(v)
	default:
		return nil, formatErrorForArray(src, "unsupported element type")
	}
	if d.size == 0 {
		return nil, formatErrorForArray(src, "no elements")
	}
	return d, nil
}

func formatErrorForArray(src *fb.DataArray, msg string) error {
	return &serialization.FormatError{Message: fmt.Sprintf("data array '%s': %s", src.Name(), msg)}
}

func groupFloats[T ~[2]float32 | ~[3]float32 | ~[4]float32](flat []float32, stride int, src *fb.DataArray) ([]T, error) {
	if len(flat)%stride != 0 {
		return nil, formatErrorForArray(src, "component count does not match element type")
	}
	out := make([]T, len(flat)/stride)
	for i := range out {
		copy(unsafe.Slice((*float32)(unsafe.Pointer(&out[i])), stride), flat[i*stride:(i+1)*stride])
	}
	return out, nil
}

func groupInts[T ~[2]int32 | ~[3]int32 | ~[4]int32](flat []int32, stride int, src *fb.DataArray) ([]T, error) {
	if len(flat)%stride != 0 {
		return nil, formatErrorForArray(src, "component count does not match element type")
	}
	out := make([]T, len(flat)/stride)
	for i := range out {
		copy(unsafe.Slice((*int32)(unsafe.Pointer(&out[i])), stride), flat[i*stride:(i+1)*stride])
	}
	return out, nil
}

func (e *Engine) deserializeNode(src *fb.LogicNode, sc *scene.Scene) error {
	if src.Id() == 0 {
		return &serialization.FormatError{Message: fmt.Sprintf("node '%s' without id", src.Name())}
	}
	name := string(src.Name())
	id := src.Id()

	var node LogicNode
	switch src.Kind() {
	case fb.NodeKindScript:
		n := &ScriptNode{nodeBase: nodeBase{name: name, id: id, dirty: true}}
		compiled, err := script.Compile(string(src.ScriptSource()), name)
		if err != nil {
			return &serialization.FormatError{Message: fmt.Sprintf("script node '%s': %v", name, err)}
		}
		n.script = compiled
		if n.rootIn, err = deserializeTree(src.RootInput(nil), name, property.SemanticsScriptInput, n); err != nil {
			return err
		}
		if n.rootOut, err = deserializeTree(src.RootOutput(nil), name, property.SemanticsScriptOutput, n); err != nil {
			return err
		}
		e.scripts = append(e.scripts, n)
		node = n

	case fb.NodeKindInterface:
		n := &InterfaceNode{nodeBase: nodeBase{name: name, id: id, dirty: true}}
		tree, err := deserializeTree(src.RootInput(nil), name, property.SemanticsInterface, n)
		if err != nil {
			return err
		}
		n.rootIn = tree
		n.rootOut = tree
		e.interfaces = append(e.interfaces, n)
		node = n

	case fb.NodeKindAnimation:
		n, err := e.deserializeAnimationNode(src, name, id)
		if err != nil {
			return err
		}
		e.animations = append(e.animations, n)
		node = n

	case fb.NodeKindTimer:
		n, err := newTimerNode(name, id)
		if err != nil {
			return err
		}
		if err := mergePersistedInputs(name, n.rootIn, src.RootInput(nil)); err != nil {
			return err
		}
		e.timers = append(e.timers, n)
		node = n

	case fb.NodeKindAnchorPoint:
		nodeBinding, _ := e.FindNodeByID(src.AnchorNodeBindingId()).(*NodeBinding)
		cameraBinding, _ := e.FindNodeByID(src.AnchorCameraBindingId()).(*CameraBinding)
		if nodeBinding == nil || cameraBinding == nil {
			return &serialization.FormatError{Message: fmt.Sprintf("anchor point '%s' references missing bindings", name)}
		}
		n, err := newAnchorPointNode(nodeBinding, cameraBinding, name, id)
		if err != nil {
			return err
		}
		e.anchors = append(e.anchors, n)
		e.deps.AddNode(n)
		_ = e.deps.AddImplicitDependency(nodeBinding, n)
		_ = e.deps.AddImplicitDependency(cameraBinding, n)
		e.nextID = max(e.nextID, id)
		return nil

	case fb.NodeKindNodeBinding:
		bound := sc.FindNode(scene.ObjectID(src.BoundObjectId()))
		if bound == nil {
			return attachErrorf(name, "scene node %d not found", src.BoundObjectId())
		}
		n, err := newNodeBinding(bound, name, id)
		if err != nil {
			return err
		}
		if err := mergePersistedInputs(name, n.rootIn, src.RootInput(nil)); err != nil {
			return err
		}
		e.nodeBindings = append(e.nodeBindings, n)
		node = n

	case fb.NodeKindAppearanceBinding:
		bound := sc.FindAppearance(scene.ObjectID(src.BoundObjectId()))
		if bound == nil {
			return attachErrorf(name, "appearance %d not found", src.BoundObjectId())
		}
		n, err := newAppearanceBinding(bound, name, id)
		if err != nil {
			return err
		}
		if err := mergePersistedInputs(name, n.rootIn, src.RootInput(nil)); err != nil {
			return err
		}
		e.appearanceBindings = append(e.appearanceBindings, n)
		node = n

	case fb.NodeKindCameraBinding:
		bound := sc.FindCamera(scene.ObjectID(src.BoundObjectId()))
		if bound == nil {
			return attachErrorf(name, "camera %d not found", src.BoundObjectId())
		}
		n, err := newCameraBinding(bound, name, id)
		if err != nil {
			return err
		}
		if err := mergePersistedInputs(name, n.rootIn, src.RootInput(nil)); err != nil {
			return err
		}
		e.cameraBindings = append(e.cameraBindings, n)
		node = n

	case fb.NodeKindRenderPassBinding:
		bound := sc.FindRenderPass(scene.ObjectID(src.BoundObjectId()))
		if bound == nil {
			return attachErrorf(name, "render pass %d not found", src.BoundObjectId())
		}
		n, err := newRenderPassBinding(bound, name, id)
		if err != nil {
			return err
		}
		if err := mergePersistedInputs(name, n.rootIn, src.RootInput(nil)); err != nil {
			return err
		}
		e.renderPassBindings = append(e.renderPassBindings, n)
		node = n

	default:
		return &serialization.FormatError{Message: fmt.Sprintf("node '%s' has unknown kind %d", name, src.Kind())}
	}

	e.deps.AddNode(node)
	e.nextID = max(e.nextID, id)
	return nil
}

func deserializeTree(src *fb.Property, nodeName string, semantics property.Semantics, owner property.Owner) (*property.Property, error) {
	if src == nil {
		return nil, &serialization.FormatError{Message: fmt.Sprintf("node '%s' is missing property data", nodeName)}
	}
	tree, err := property.Deserialize(src, semantics, owner)
	if err != nil {
		return nil, &serialization.FormatError{Message: fmt.Sprintf("node '%s': %v", nodeName, err)}
	}
	return tree, nil
}

func (e *Engine) deserializeAnimationNode(src *fb.LogicNode, name string, id uint64) (*AnimationNode, error) {
	channels := make([]AnimationChannel, 0, src.ChannelsLength())
	for j := 0; j < src.ChannelsLength(); j++ {
		var chSrc fb.Channel
		if !src.Channels(&chSrc, j) {
			return nil, &serialization.FormatError{Message: fmt.Sprintf("animation node '%s': missing channel entry", name)}
		}
		ch := AnimationChannel{
			Name:          string(chSrc.Name()),
			Timestamps:    e.FindDataArrayByID(chSrc.TimestampsId()),
			Keyframes:     e.FindDataArrayByID(chSrc.KeyframesId()),
			Interpolation: InterpolationType(chSrc.Interpolation()),
		}
		if chSrc.TangentsInId() != 0 {
			ch.TangentsIn = e.FindDataArrayByID(chSrc.TangentsInId())
		}
		if chSrc.TangentsOutId() != 0 {
			ch.TangentsOut = e.FindDataArrayByID(chSrc.TangentsOutId())
		}
		if ch.Timestamps == nil || ch.Keyframes == nil {
			return nil, &serialization.FormatError{Message: fmt.Sprintf("animation node '%s' channel '%s': missing timestamps or keyframes", name, ch.Name)}
		}
		channels = append(channels, ch)
	}

	n, err := newAnimationNode(channels, name, id)
	if err != nil {
		return nil, &serialization.FormatError{Message: fmt.Sprintf("animation node '%s': %v", name, err)}
	}
	// restore the persisted control inputs (play, loop, timeRange, ...);
	// the accumulated play time intentionally starts at zero
	if err := mergePersistedInputs(name, n.rootIn, src.RootInput(nil)); err != nil {
		return nil, err
	}
	return n, nil
}

// mergePersistedInputs replays the persisted leaf values and wasSet flags
// onto a freshly derived input tree. Every persisted property has to exist
// in the new tree under the same name with the same type; a mismatch means
// the schema changed underneath the persisted state.
func mergePersistedInputs(nodeName string, dst *property.Property, src *fb.Property) error {
	if src == nil {
		return &serialization.FormatError{Message: fmt.Sprintf("node '%s' is missing property data", nodeName)}
	}
	if property.Type(src.Type()) != dst.Type() {
		return attachErrorf(nodeName, "persisted property '%s' has type %s, object provides %s",
			src.Name(), property.Type(src.Type()), dst.Type())
	}
	if dst.Type().IsPrimitive() {
		if !src.WasSet() {
			return nil
		}
		value, err := property.PersistedValue(src)
		if err != nil {
			return &serialization.FormatError{Message: fmt.Sprintf("node '%s': %v", nodeName, err)}
		}
		if err := dst.RestoreValue(value); err != nil {
			return attachErrorf(nodeName, "persisted property '%s': %v", src.Name(), err)
		}
		dst.MarkWasSet(true)
		return nil
	}

	for j := 0; j < src.ChildrenLength(); j++ {
		var child fb.Property
		if !src.Children(&child, j) {
			return &serialization.FormatError{Message: fmt.Sprintf("node '%s': missing property child", nodeName)}
		}
		var target *property.Property
		if dst.Type() == property.TypeArray {
			target = dst.ChildAt(j)
		} else {
			target = dst.Child(string(child.Name()))
		}
		if target == nil {
			return attachErrorf(nodeName, "persisted property '%s' does not exist on the attached object", child.Name())
		}
		if err := mergePersistedInputs(nodeName, target, &child); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) deserializeLink(src *fb.Link) error {
	sourceNode := e.FindNodeByID(src.SourceNodeId())
	targetNode := e.FindNodeByID(src.TargetNodeId())
	if sourceNode == nil || targetNode == nil {
		return &serialization.FormatError{Message: fmt.Sprintf("link references missing node (%d -> %d)",
			src.SourceNodeId(), src.TargetNodeId())}
	}
	out := property.ResolvePath(sourceNode.RootOutput(), string(src.SourcePath()))
	in := property.ResolvePath(targetNode.RootInput(), string(src.TargetPath()))
	if out == nil || in == nil {
		return &serialization.FormatError{Message: fmt.Sprintf("link references missing property ('%s' of node '%s' -> '%s' of node '%s')",
			src.SourcePath(), sourceNode.Name(), src.TargetPath(), targetNode.Name())}
	}
	if err := e.deps.Link(out, in); err != nil {
		return &serialization.FormatError{Message: fmt.Sprintf("restoring link: %v", err)}
	}
	return nil
}
