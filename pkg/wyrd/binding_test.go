package wyrd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
)

func TestNodeBinding(t *testing.T) {
	t.Run("writes_only_touched_leaves", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		obj := sc.CreateNode("obj")
		obj.Translation = property.Vec3f{5, 5, 5}

		binding, err := e.CreateNodeBinding(obj, "binding")
		require.NoError(t, err)

		require.NoError(t, property.Set(binding.RootInput().Child("scaling"), property.Vec3f{2, 2, 2}))
		require.NoError(t, e.Update())

		assert.Equal(t, property.Vec3f{2, 2, 2}, obj.Scaling)
		assert.Equal(t, property.Vec3f{5, 5, 5}, obj.Translation, "untouched leaf never reaches the host")
		assert.True(t, obj.Visibility)
	})

	t.Run("inputs_reflect_host_state_on_attach", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		obj := sc.CreateNode("obj")
		obj.Translation = property.Vec3f{1, 2, 3}
		obj.Visibility = false

		binding, err := e.CreateNodeBinding(obj, "binding")
		require.NoError(t, err)

		v, _ := property.Get[property.Vec3f](binding.RootInput().Child("translation"))
		assert.Equal(t, property.Vec3f{1, 2, 3}, v)
		vis, _ := property.Get[bool](binding.RootInput().Child("visibility"))
		assert.False(t, vis)
	})

	t.Run("linked_input_writes_through_and_blocks_user_set", func(t *testing.T) {
		// §8 scenario: a script output drives translation; the user's
		// direct set on the linked leaf fails and the host keeps the
		// script's value
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		obj := sc.CreateNode("obj")

		src := mustScript(t, e, `
			function interface() { OUT.pos = Types.Vec3f; }
			function run() { OUT.pos = [1, 2, 3]; }
		`, "src")
		binding, err := e.CreateNodeBinding(obj, "binding")
		require.NoError(t, err)

		translation := binding.RootInput().Child("translation")
		require.NoError(t, e.Link(src.RootOutput().Child("pos"), translation))
		require.NoError(t, e.Update())

		assert.Equal(t, property.Vec3f{1, 2, 3}, obj.Translation)

		err = property.Set(translation, property.Vec3f{9, 9, 9})
		assert.ErrorIs(t, err, property.ErrLinkedInput)
		require.NoError(t, e.Update())
		assert.Equal(t, property.Vec3f{1, 2, 3}, obj.Translation)
	})
}

func TestAppearanceBinding(t *testing.T) {
	newAppearance := func(sc *scene.Scene) *scene.Appearance {
		return sc.CreateAppearance("material", []scene.Uniform{
			{Name: "opacity", Type: property.TypeFloat},
			{Name: "tint", Type: property.TypeVec3f},
			{Name: "steps", Type: property.TypeInt32},
		})
	}

	t.Run("derives_schema_from_uniforms", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		binding, err := e.CreateAppearanceBinding(newAppearance(sc), "binding")
		require.NoError(t, err)

		in := binding.RootInput()
		require.Equal(t, 3, in.ChildCount())
		assert.Equal(t, property.TypeFloat, in.Child("opacity").Type())
		assert.Equal(t, property.TypeVec3f, in.Child("tint").Type())
		assert.Equal(t, property.TypeInt32, in.Child("steps").Type())
	})

	t.Run("forwards_set_uniforms", func(t *testing.T) {
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		appearance := newAppearance(sc)
		binding, err := e.CreateAppearanceBinding(appearance, "binding")
		require.NoError(t, err)

		require.NoError(t, property.Set(binding.RootInput().Child("opacity"), float32(0.5)))
		require.NoError(t, e.Update())

		assert.Equal(t, float32(0.5), appearance.Uniform("opacity").Value)
		assert.Equal(t, property.Vec3f{}, appearance.Uniform("tint").Value, "untouched uniform keeps its default")
	})
}

func TestCameraBinding(t *testing.T) {
	e := NewEngine(EngineOptions{})
	sc := scene.New()
	cam := sc.CreateCamera("camera")
	binding, err := e.CreateCameraBinding(cam, "binding")
	require.NoError(t, err)

	t.Run("schema_groups_viewport_and_frustum", func(t *testing.T) {
		in := binding.RootInput()
		require.NotNil(t, in.Child("viewport"))
		require.NotNil(t, in.Child("frustum"))
		assert.Equal(t, property.TypeInt32, in.Child("viewport").Child("width").Type())
		assert.Equal(t, property.TypeFloat, in.Child("frustum").Child("farPlane").Type())
	})

	t.Run("forwards_viewport_and_frustum_fields", func(t *testing.T) {
		require.NoError(t, property.Set(binding.RootInput().Child("viewport").Child("width"), int32(640)))
		require.NoError(t, property.Set(binding.RootInput().Child("frustum").Child("fieldOfView"), float32(60)))
		require.NoError(t, e.Update())

		assert.Equal(t, int32(640), cam.Viewport.Width)
		assert.Equal(t, float32(60), cam.Frustum.FieldOfView)
		assert.Equal(t, int32(720), cam.Viewport.Height, "untouched field keeps host value")
	})
}

func TestRenderPassBinding(t *testing.T) {
	e := NewEngine(EngineOptions{})
	sc := scene.New()
	pass := sc.CreateRenderPass("pass")
	binding, err := e.CreateRenderPassBinding(pass, "binding")
	require.NoError(t, err)

	require.NoError(t, property.Set(binding.RootInput().Child("enabled"), false))
	require.NoError(t, property.Set(binding.RootInput().Child("renderOrder"), int32(7)))
	require.NoError(t, e.Update())

	assert.False(t, pass.Enabled)
	assert.Equal(t, int32(7), pass.RenderOrder)
}

func TestAnchorPointNode(t *testing.T) {
	setup := func(t *testing.T) (*Engine, *scene.Node, *AnchorPointNode) {
		t.Helper()
		e := NewEngine(EngineOptions{})
		sc := scene.New()
		obj := sc.CreateNode("obj")
		cam := sc.CreateCamera("camera")

		nodeBinding, err := e.CreateNodeBinding(obj, "nodeBinding")
		require.NoError(t, err)
		cameraBinding, err := e.CreateCameraBinding(cam, "cameraBinding")
		require.NoError(t, err)
		anchor, err := e.CreateAnchorPoint(nodeBinding, cameraBinding, "anchor")
		require.NoError(t, err)
		return e, obj, anchor
	}

	t.Run("projects_center_to_viewport_center", func(t *testing.T) {
		e, obj, anchor := setup(t)
		_ = obj

		nodeBinding := anchor.NodeBinding()
		require.NoError(t, property.Set(nodeBinding.RootInput().Child("translation"), property.Vec3f{0, 0, -10}))
		require.NoError(t, e.Update())

		coords, ok := property.Get[property.Vec2f](anchor.RootOutput().Child("viewportCoords"))
		require.True(t, ok)
		assert.InDelta(t, 640, float64(coords[0]), 1e-3)
		assert.InDelta(t, 360, float64(coords[1]), 1e-3)

		depth, _ := property.Get[float32](anchor.RootOutput().Child("depth"))
		assert.InDelta(t, (10.0-0.1)/(100.0-0.1), float64(depth), 1e-5)
	})

	t.Run("sorts_after_both_bindings", func(t *testing.T) {
		e, _, anchor := setup(t)
		sorted, err := e.Dependencies().SortedNodes()
		require.NoError(t, err)

		anchorIdx := -1
		nodeIdx := -1
		camIdx := -1
		for i, n := range sorted {
			switch n {
			case property.Owner(anchor):
				anchorIdx = i
			case property.Owner(anchor.NodeBinding()):
				nodeIdx = i
			case property.Owner(anchor.CameraBinding()):
				camIdx = i
			}
		}
		assert.Greater(t, anchorIdx, nodeIdx)
		assert.Greater(t, anchorIdx, camIdx)
	})

	t.Run("position_behind_camera_is_a_runtime_error", func(t *testing.T) {
		e, _, anchor := setup(t)
		require.NoError(t, property.Set(anchor.NodeBinding().RootInput().Child("translation"), property.Vec3f{0, 0, 1}))
		err := e.Update()
		assert.ErrorIs(t, err, ErrUpdateFailed)
	})
}
