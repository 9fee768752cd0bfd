package wyrd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
	"github.com/orneryd/wyrd/pkg/serialization"
)

func saveLoad(t *testing.T, e *Engine, sc *scene.Scene) *Engine {
	t.Helper()
	data, err := e.SaveToBuffer()
	require.NoError(t, err)
	loaded, err := LoadEngineFromBuffer(data, sc, EngineOptions{})
	require.NoError(t, err)
	return loaded
}

func TestSerialization_Scripts(t *testing.T) {
	t.Run("round_trips_nodes_values_and_links", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		s1 := mustScript(t, e, `
			function interface() {
				IN.value = Types.Int32;
				OUT.value = Types.Int32;
			}
			function run() { OUT.value = IN.value + 1; }
		`, "producer")
		s2 := mustScript(t, e, passthroughScript, "consumer")
		require.NoError(t, e.Link(s1.RootOutput().Child("value"), s2.RootInput().Child("value")))
		require.NoError(t, property.Set(s1.RootInput().Child("value"), int32(10)))

		loaded := saveLoad(t, e, scene.New())

		p1, ok := loaded.FindNodeByName("producer").(*ScriptNode)
		require.True(t, ok)
		p2, ok := loaded.FindNodeByName("consumer").(*ScriptNode)
		require.True(t, ok)

		assert.Equal(t, s1.ID(), p1.ID(), "ids are stable across save/load")
		v, _ := property.Get[int32](p1.RootInput().Child("value"))
		assert.Equal(t, int32(10), v)
		assert.True(t, p1.RootInput().Child("value").WasSet())

		assert.Same(t, p1.RootOutput().Child("value"), loaded.LinkedSource(p2.RootInput().Child("value")))

		require.NoError(t, loaded.Update())
		out, _ := property.Get[int32](p2.RootOutput().Child("value"))
		assert.Equal(t, int32(11), out)
	})

	t.Run("round_trips_all_value_types", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		n := mustScript(t, e, `
			function interface() {
				IN.f = Types.Float;
				IN.v2 = Types.Vec2f;
				IN.v3 = Types.Vec3f;
				IN.v4 = Types.Vec4f;
				IN.i = Types.Int32;
				IN.i2 = Types.Vec2i;
				IN.i3 = Types.Vec3i;
				IN.i4 = Types.Vec4i;
				IN.b = Types.Bool;
				IN.s = Types.String;
			}
			function run() {}
		`, "values")

		in := n.RootInput()
		require.NoError(t, property.Set(in.Child("f"), float32(1.5)))
		require.NoError(t, property.Set(in.Child("v2"), property.Vec2f{1, 2}))
		require.NoError(t, property.Set(in.Child("v3"), property.Vec3f{1, 2, 3}))
		require.NoError(t, property.Set(in.Child("v4"), property.Vec4f{1, 2, 3, 4}))
		require.NoError(t, property.Set(in.Child("i"), int32(-7)))
		require.NoError(t, property.Set(in.Child("i2"), property.Vec2i{1, -2}))
		require.NoError(t, property.Set(in.Child("i3"), property.Vec3i{1, -2, 3}))
		require.NoError(t, property.Set(in.Child("i4"), property.Vec4i{1, -2, 3, -4}))
		require.NoError(t, property.Set(in.Child("b"), true))
		require.NoError(t, property.Set(in.Child("s"), "persisted"))

		loaded := saveLoad(t, e, scene.New())
		lin := loaded.FindNodeByName("values").RootInput()

		f, _ := property.Get[float32](lin.Child("f"))
		assert.Equal(t, float32(1.5), f)
		v2, _ := property.Get[property.Vec2f](lin.Child("v2"))
		assert.Equal(t, property.Vec2f{1, 2}, v2)
		v3, _ := property.Get[property.Vec3f](lin.Child("v3"))
		assert.Equal(t, property.Vec3f{1, 2, 3}, v3)
		v4, _ := property.Get[property.Vec4f](lin.Child("v4"))
		assert.Equal(t, property.Vec4f{1, 2, 3, 4}, v4)
		i, _ := property.Get[int32](lin.Child("i"))
		assert.Equal(t, int32(-7), i)
		i2, _ := property.Get[property.Vec2i](lin.Child("i2"))
		assert.Equal(t, property.Vec2i{1, -2}, i2)
		i3, _ := property.Get[property.Vec3i](lin.Child("i3"))
		assert.Equal(t, property.Vec3i{1, -2, 3}, i3)
		i4, _ := property.Get[property.Vec4i](lin.Child("i4"))
		assert.Equal(t, property.Vec4i{1, -2, 3, -4}, i4)
		b, _ := property.Get[bool](lin.Child("b"))
		assert.True(t, b)
		s, _ := property.Get[string](lin.Child("s"))
		assert.Equal(t, "persisted", s)

		// wasSet flags survive
		assert.True(t, lin.Child("f").WasSet())
	})

	t.Run("was_set_flag_round_trips_unset_leaves", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		mustScript(t, e, `
			function interface() { IN.value = Types.Int32; }
			function run() {}
		`, "untouched")

		loaded := saveLoad(t, e, scene.New())
		assert.False(t, loaded.FindNodeByName("untouched").RootInput().Child("value").WasSet())
	})
}

func TestSerialization_AnimationState(t *testing.T) {
	// §8 scenario: inputs persist, the accumulated play time does not
	e := NewEngine(EngineOptions{})
	stamps, err := CreateDataArray(e, []float32{1, 2}, "stamps")
	require.NoError(t, err)
	keys, err := CreateDataArray(e, []property.Vec2f{{0, 10}, {1, 20}}, "keys")
	require.NoError(t, err)
	n, err := e.CreateAnimationNode([]AnimationChannel{{
		Name: "channel", Timestamps: stamps, Keyframes: keys, Interpolation: InterpolationLinear,
	}}, "anim")
	require.NoError(t, err)

	in := n.RootInput()
	require.NoError(t, property.Set(in.Child("play"), true))
	require.NoError(t, property.Set(in.Child("loop"), true))
	require.NoError(t, property.Set(in.Child("rewindOnStop"), true))
	require.NoError(t, property.Set(in.Child("timeRange"), property.Vec2f{1, 2}))
	require.NoError(t, property.Set(in.Child("timeDelta"), float32(0.5)))
	require.NoError(t, e.Update())
	require.InDelta(t, 0.5, float64(mustFloat(t, n.RootOutput().Child("progress"))), 1e-5)

	loaded := saveLoad(t, e, scene.New())
	ln, ok := loaded.FindNodeByName("anim").(*AnimationNode)
	require.True(t, ok)

	lin := ln.RootInput()
	play, _ := property.Get[bool](lin.Child("play"))
	loop, _ := property.Get[bool](lin.Child("loop"))
	rewind, _ := property.Get[bool](lin.Child("rewindOnStop"))
	timeRange, _ := property.Get[property.Vec2f](lin.Child("timeRange"))
	assert.True(t, play)
	assert.True(t, loop)
	assert.True(t, rewind)
	assert.Equal(t, property.Vec2f{1, 2}, timeRange)

	// advance with zero delta: the play time starts over at zero
	require.NoError(t, property.Set(lin.Child("timeDelta"), float32(0)))
	require.NoError(t, loaded.Update())

	assert.Equal(t, float32(0), mustFloat(t, ln.RootOutput().Child("progress")), "progress is not persisted")
	v, _ := property.Get[property.Vec2f](ln.RootOutput().Child("channel"))
	assert.Equal(t, property.Vec2f{0, 10}, v, "sampling restarts at the first keyframe of the range")
}

func mustFloat(t *testing.T, p *property.Property) float32 {
	t.Helper()
	v, ok := property.Get[float32](p)
	require.True(t, ok)
	return v
}

func TestSerialization_Bindings(t *testing.T) {
	t.Run("bindings_reattach_by_object_id", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		obj := sc.CreateNode("obj")
		binding, err := e.CreateNodeBinding(obj, "binding")
		require.NoError(t, err)
		require.NoError(t, property.Set(binding.RootInput().Child("translation"), property.Vec3f{1, 2, 3}))

		loaded := saveLoad(t, e, sc)
		lb, ok := loaded.FindNodeByName("binding").(*NodeBinding)
		require.True(t, ok)
		assert.Same(t, obj, lb.BoundObject())

		v, _ := property.Get[property.Vec3f](lb.RootInput().Child("translation"))
		assert.Equal(t, property.Vec3f{1, 2, 3}, v)
		assert.True(t, lb.RootInput().Child("translation").WasSet())

		require.NoError(t, loaded.Update())
		assert.Equal(t, property.Vec3f{1, 2, 3}, obj.Translation)
	})

	t.Run("missing_scene_object_fails_load", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		obj := sc.CreateNode("obj")
		_, err := e.CreateNodeBinding(obj, "binding")
		require.NoError(t, err)

		data, err := e.SaveToBuffer()
		require.NoError(t, err)

		_, err = LoadEngineFromBuffer(data, scene.New(), EngineOptions{})
		require.Error(t, err)
		var attachErr *AttachmentError
		assert.ErrorAs(t, err, &attachErr)
	})

	t.Run("appearance_schema_mismatch_fails_load", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		appearance := sc.CreateAppearance("material", []scene.Uniform{
			{Name: "opacity", Type: property.TypeFloat},
		})
		binding, err := e.CreateAppearanceBinding(appearance, "binding")
		require.NoError(t, err)
		require.NoError(t, property.Set(binding.RootInput().Child("opacity"), float32(0.5)))

		data, err := e.SaveToBuffer()
		require.NoError(t, err)

		// a scene whose appearance (same id) renamed the uniform
		other := scene.New()
		other.CreateAppearance("material", []scene.Uniform{
			{Name: "alpha", Type: property.TypeFloat},
		})
		_, err = LoadEngineFromBuffer(data, other, EngineOptions{})
		require.Error(t, err)
		var attachErr *AttachmentError
		assert.ErrorAs(t, err, &attachErr)
	})

	t.Run("anchor_point_reconnects_to_bindings", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		obj := sc.CreateNode("obj")
		cam := sc.CreateCamera("camera")
		nodeBinding, err := e.CreateNodeBinding(obj, "nodeBinding")
		require.NoError(t, err)
		cameraBinding, err := e.CreateCameraBinding(cam, "cameraBinding")
		require.NoError(t, err)
		_, err = e.CreateAnchorPoint(nodeBinding, cameraBinding, "anchor")
		require.NoError(t, err)

		loaded := saveLoad(t, e, sc)
		anchor, ok := loaded.FindNodeByName("anchor").(*AnchorPointNode)
		require.True(t, ok)
		assert.Equal(t, "nodeBinding", anchor.NodeBinding().Name())
		assert.Equal(t, "cameraBinding", anchor.CameraBinding().Name())
	})
}

func TestSerialization_Files(t *testing.T) {
	t.Run("save_and_load_file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "logic.wyrd")

		e := NewEngine(EngineOptions{})
		mustScript(t, e, passthroughScript, "node")
		require.NoError(t, e.SaveToFile(path))

		loaded, err := LoadEngineFromFile(path, scene.New(), EngineOptions{})
		require.NoError(t, err)
		assert.NotNil(t, loaded.FindNodeByName("node"))
	})

	t.Run("missing_file_is_an_io_error", func(t *testing.T) {
		_, err := LoadEngineFromFile(filepath.Join(t.TempDir(), "nope.wyrd"), scene.New(), EngineOptions{})
		var ioErr *serialization.IOError
		assert.ErrorAs(t, err, &ioErr)
	})
}

func TestSerialization_Compatibility(t *testing.T) {
	makeBuffer := func(t *testing.T, h serialization.Header) []byte {
		t.Helper()
		e := NewEngine(EngineOptions{})
		mustScript(t, e, passthroughScript, "node")
		data, err := e.SaveToBuffer()
		require.NoError(t, err)
		// rewrite the header in place
		return append(serialization.AppendHeader(nil, h), data[serialization.HeaderSize:]...)
	}

	t.Run("previous_format_version_loads_in_compat_mode", func(t *testing.T) {
		h := serialization.CurrentHeader()
		h.FileFormat = serialization.PreviousFileFormatVersion
		_, err := LoadEngineFromBuffer(makeBuffer(t, h), scene.New(), EngineOptions{})
		assert.NoError(t, err)
	})

	t.Run("older_format_version_is_rejected", func(t *testing.T) {
		h := serialization.CurrentHeader()
		h.FileFormat = 0
		h.Runtime = serialization.Version{Major: 0, Minor: 1, Patch: 0}
		_, err := LoadEngineFromBuffer(makeBuffer(t, h), scene.New(), EngineOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected version")
	})

	t.Run("newer_format_version_is_rejected", func(t *testing.T) {
		h := serialization.CurrentHeader()
		h.FileFormat = serialization.FileFormatVersion + 1
		_, err := LoadEngineFromBuffer(makeBuffer(t, h), scene.New(), EngineOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "newer")
	})

	t.Run("host_engine_major_mismatch_is_rejected", func(t *testing.T) {
		h := serialization.CurrentHeader()
		h.HostEngine.Major++
		_, err := LoadEngineFromBuffer(makeBuffer(t, h), scene.New(), EngineOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "host engine")
	})

	t.Run("bad_magic_is_rejected", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		data, err := e.SaveToBuffer()
		require.NoError(t, err)
		data[0] = 'X'
		_, err = LoadEngineFromBuffer(data, scene.New(), EngineOptions{})
		var formatErr *serialization.FormatError
		assert.ErrorAs(t, err, &formatErr)
	})

	t.Run("truncated_buffer_is_rejected", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		mustScript(t, e, passthroughScript, "node")
		data, err := e.SaveToBuffer()
		require.NoError(t, err)

		_, err = LoadEngineFromBuffer(data[:serialization.HeaderSize+2], scene.New(), EngineOptions{})
		var formatErr *serialization.FormatError
		assert.ErrorAs(t, err, &formatErr)
	})
}

func TestEngine_LoadFromBuffer(t *testing.T) {
	t.Run("replaces_engine_content", func(t *testing.T) {
		source := NewEngine(EngineOptions{})
		mustScript(t, source, passthroughScript, "persisted")
		data, err := source.SaveToBuffer()
		require.NoError(t, err)

		e := NewEngine(EngineOptions{})
		mustScript(t, e, passthroughScript, "preexisting")
		require.NoError(t, e.LoadFromBuffer(data, scene.New()))

		assert.Nil(t, e.FindNodeByName("preexisting"))
		assert.NotNil(t, e.FindNodeByName("persisted"))
	})

	t.Run("failed_load_keeps_previous_state", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		keep := mustScript(t, e, passthroughScript, "keep")

		err := e.LoadFromBuffer([]byte("garbage"), scene.New())
		require.Error(t, err)
		assert.NotEmpty(t, e.Errors())
		assert.Equal(t, LogicNode(keep), e.FindNodeByName("keep"))
	})
}
