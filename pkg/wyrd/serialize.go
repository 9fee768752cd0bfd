package wyrd

import (
	"fmt"
	"os"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/serialization"
	"github.com/orneryd/wyrd/pkg/serialization/fb"
)

// SaveToBuffer serializes the engine into the flat binary format: the
// fixed version header followed by the FlatBuffers payload. Nodes and data
// arrays are written in stable id order; links go by node id plus property
// path. Runtime state (dirty flags, animation play time, timer clocks) is
// not persisted.
func (e *Engine) SaveToBuffer() ([]byte, error) {
	e.clearErrors()

	builder := flatbuffers.NewBuilder(4096)

	daOffsets := make([]flatbuffers.UOffsetT, 0, len(e.dataArrays))
	for _, d := range e.dataArrays {
		daOffsets = append(daOffsets, serializeDataArray(d, builder))
	}
	fb.LogicFileStartDataArraysVector(builder, len(daOffsets))
	for i := len(daOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(daOffsets[i])
	}
	daVec := builder.EndVector(len(daOffsets))

	nodes := e.allNodes()
	nodeOffsets := make([]flatbuffers.UOffsetT, 0, len(nodes))
	for _, n := range nodes {
		off, err := e.serializeNode(n, builder)
		if err != nil {
			e.appendError(n, "%v", err)
			return nil, err
		}
		nodeOffsets = append(nodeOffsets, off)
	}
	fb.LogicFileStartNodesVector(builder, len(nodeOffsets))
	for i := len(nodeOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(nodeOffsets[i])
	}
	nodeVec := builder.EndVector(len(nodeOffsets))

	linkOffsets := e.serializeLinks(nodes, builder)
	fb.LogicFileStartLinksVector(builder, len(linkOffsets))
	for i := len(linkOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(linkOffsets[i])
	}
	linkVec := builder.EndVector(len(linkOffsets))

	writer := builder.CreateString("wyrd " + serialization.RuntimeVersion.String())
	fb.MetadataStart(builder)
	fb.MetadataAddWriter(builder, writer)
	metadata := fb.MetadataEnd(builder)

	fb.LogicFileStart(builder)
	fb.LogicFileAddMetadata(builder, metadata)
	fb.LogicFileAddDataArrays(builder, daVec)
	fb.LogicFileAddNodes(builder, nodeVec)
	fb.LogicFileAddLinks(builder, linkVec)
	builder.Finish(fb.LogicFileEnd(builder))

	out := serialization.AppendHeader(nil, serialization.CurrentHeader())
	return append(out, builder.FinishedBytes()...), nil
}

// SaveToFile writes SaveToBuffer's result to a file.
func (e *Engine) SaveToFile(path string) error {
	data, err := e.SaveToBuffer()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		ioErr := &serialization.IOError{Path: path, Err: err}
		e.appendError(nil, "%v", ioErr)
		return ioErr
	}
	return nil
}

func serializeDataArray(d *DataArray, builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	var floatVec, intVec flatbuffers.UOffsetT

	floats := flattenFloats(d)
	ints := flattenInts(d)
	if floats != nil {
		fb.DataArrayStartFloatValuesVector(builder, len(floats))
		for i := len(floats) - 1; i >= 0; i-- {
			builder.PrependFloat32(floats[i])
		}
		floatVec = builder.EndVector(len(floats))
	}
	if ints != nil {
		fb.DataArrayStartIntValuesVector(builder, len(ints))
		for i := len(ints) - 1; i >= 0; i-- {
			builder.PrependInt32(ints[i])
		}
		intVec = builder.EndVector(len(ints))
	}

	name := builder.CreateString(d.name)

	fb.DataArrayStart(builder)
	fb.DataArrayAddId(builder, d.id)
	fb.DataArrayAddName(builder, name)
	fb.DataArrayAddType(builder, fb.PropertyType(d.typ))
	if floatVec != 0 {
		fb.DataArrayAddFloatValues(builder, floatVec)
	}
	if intVec != 0 {
		fb.DataArrayAddIntValues(builder, intVec)
	}
	return fb.DataArrayEnd(builder)
}

func flattenFloats(d *DataArray) []float32 {
	switch data := d.data.(type) {
	case []float32:
		return data
	case []property.Vec2f:
		out := make([]float32, 0, len(data)*2)
		for _, v := range data {
			out = append(out, v[:]...)
		}
		return out
	case []property.Vec3f:
		out := make([]float32, 0, len(data)*3)
		for _, v := range data {
			out = append(out, v[:]...)
		}
		return out
	case []property.Vec4f:
		out := make([]float32, 0, len(data)*4)
		for _, v := range data {
			out = append(out, v[:]...)
		}
		return out
	}
	return nil
}

func flattenInts(d *DataArray) []int32 {
	switch data := d.data.(type) {
	case []int32:
		return data
	case []property.Vec2i:
		out := make([]int32, 0, len(data)*2)
		for _, v := range data {
			out = append(out, v[:]...)
		}
		return out
	case []property.Vec3i:
		out := make([]int32, 0, len(data)*3)
		for _, v := range data {
			out = append(out, v[:]...)
		}
		return out
	case []property.Vec4i:
		out := make([]int32, 0, len(data)*4)
		for _, v := range data {
			out = append(out, v[:]...)
		}
		return out
	}
	return nil
}

func (e *Engine) serializeNode(node LogicNode, builder *flatbuffers.Builder) (flatbuffers.UOffsetT, error) {
	var kind fb.NodeKind
	var scriptSource flatbuffers.UOffsetT
	var channelsVec flatbuffers.UOffsetT
	var boundObjectID, anchorNodeID, anchorCameraID uint64
	serializeOutput := true

	switch n := node.(type) {
	case *ScriptNode:
		kind = fb.NodeKindScript
		scriptSource = builder.CreateString(n.Source())
	case *InterfaceNode:
		kind = fb.NodeKindInterface
		// input and output are one tree; persist it once
		serializeOutput = false
	case *AnimationNode:
		kind = fb.NodeKindAnimation
		offsets := make([]flatbuffers.UOffsetT, 0, len(n.channels))
		for i := range n.channels {
			offsets = append(offsets, serializeChannel(&n.channels[i], builder))
		}
		fb.LogicNodeStartChannelsVector(builder, len(offsets))
		for i := len(offsets) - 1; i >= 0; i-- {
			builder.PrependUOffsetT(offsets[i])
		}
		channelsVec = builder.EndVector(len(offsets))
	case *TimerNode:
		kind = fb.NodeKindTimer
	case *AnchorPointNode:
		kind = fb.NodeKindAnchorPoint
		anchorNodeID = n.nodeBinding.ID()
		anchorCameraID = n.cameraBinding.ID()
	case *NodeBinding:
		kind = fb.NodeKindNodeBinding
		boundObjectID = uint64(n.bound.ID())
	case *AppearanceBinding:
		kind = fb.NodeKindAppearanceBinding
		boundObjectID = uint64(n.bound.ID())
	case *CameraBinding:
		kind = fb.NodeKindCameraBinding
		boundObjectID = uint64(n.bound.ID())
	case *RenderPassBinding:
		kind = fb.NodeKindRenderPassBinding
		boundObjectID = uint64(n.bound.ID())
	default:
		return 0, fmt.Errorf("node '%s' has an unknown variant", node.Name())
	}

	var rootIn, rootOut flatbuffers.UOffsetT
	if node.RootInput() != nil {
		rootIn = property.Serialize(node.RootInput(), builder)
	}
	if serializeOutput && node.RootOutput() != nil {
		rootOut = property.Serialize(node.RootOutput(), builder)
	}

	name := builder.CreateString(node.Name())

	fb.LogicNodeStart(builder)
	fb.LogicNodeAddId(builder, node.ID())
	fb.LogicNodeAddName(builder, name)
	fb.LogicNodeAddKind(builder, kind)
	if rootIn != 0 {
		fb.LogicNodeAddRootInput(builder, rootIn)
	}
	if rootOut != 0 {
		fb.LogicNodeAddRootOutput(builder, rootOut)
	}
	if scriptSource != 0 {
		fb.LogicNodeAddScriptSource(builder, scriptSource)
	}
	if channelsVec != 0 {
		fb.LogicNodeAddChannels(builder, channelsVec)
	}
	fb.LogicNodeAddBoundObjectId(builder, boundObjectID)
	fb.LogicNodeAddAnchorNodeBindingId(builder, anchorNodeID)
	fb.LogicNodeAddAnchorCameraBindingId(builder, anchorCameraID)
	return fb.LogicNodeEnd(builder), nil
}

func serializeChannel(ch *AnimationChannel, builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	name := builder.CreateString(ch.Name)

	fb.ChannelStart(builder)
	fb.ChannelAddName(builder, name)
	fb.ChannelAddTimestampsId(builder, ch.Timestamps.id)
	fb.ChannelAddKeyframesId(builder, ch.Keyframes.id)
	fb.ChannelAddInterpolation(builder, fb.Interpolation(ch.Interpolation))
	if ch.TangentsIn != nil {
		fb.ChannelAddTangentsInId(builder, ch.TangentsIn.id)
	}
	if ch.TangentsOut != nil {
		fb.ChannelAddTangentsOutId(builder, ch.TangentsOut.id)
	}
	return fb.ChannelEnd(builder)
}

// serializeLinks walks every node's input tree in id order and emits one
// link tuple per driven leaf, so the link order is stable.
func (e *Engine) serializeLinks(nodes []LogicNode, builder *flatbuffers.Builder) []flatbuffers.UOffsetT {
	var offsets []flatbuffers.UOffsetT
	for _, node := range nodes {
		in := node.RootInput()
		if in == nil {
			continue
		}
		in.VisitLeaves(func(leaf *property.Property) {
			source := e.deps.LinkedSource(leaf)
			if source == nil {
				return
			}
			sourcePath := builder.CreateString(source.Path())
			targetPath := builder.CreateString(leaf.Path())
			fb.LinkStart(builder)
			fb.LinkAddSourceNodeId(builder, source.Owner().ID())
			fb.LinkAddSourcePath(builder, sourcePath)
			fb.LinkAddTargetNodeId(builder, node.ID())
			fb.LinkAddTargetPath(builder, targetPath)
			offsets = append(offsets, fb.LinkEnd(builder))
		})
	}
	return offsets
}
