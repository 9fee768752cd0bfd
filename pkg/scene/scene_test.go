package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/wyrd/pkg/property"
)

func TestScene_Create(t *testing.T) {
	t.Run("ids_are_unique_across_kinds", func(t *testing.T) {
		sc := New()
		node := sc.CreateNode("node")
		cam := sc.CreateCamera("camera")
		pass := sc.CreateRenderPass("pass")

		assert.NotEqual(t, node.ID(), cam.ID())
		assert.NotEqual(t, cam.ID(), pass.ID())
	})

	t.Run("node_defaults", func(t *testing.T) {
		sc := New()
		node := sc.CreateNode("node")

		assert.True(t, node.Visibility)
		assert.Equal(t, property.Vec3f{}, node.Translation)
		assert.Equal(t, property.Vec3f{1, 1, 1}, node.Scaling)
	})

	t.Run("camera_defaults", func(t *testing.T) {
		sc := New()
		cam := sc.CreateCamera("camera")

		assert.Equal(t, int32(1280), cam.Viewport.Width)
		assert.Equal(t, int32(720), cam.Viewport.Height)
		assert.InDelta(t, 45, float64(cam.Frustum.FieldOfView), 1e-6)
	})
}

func TestScene_Find(t *testing.T) {
	sc := New()
	node := sc.CreateNode("node")
	cam := sc.CreateCamera("camera")
	appearance := sc.CreateAppearance("material", nil)
	pass := sc.CreateRenderPass("pass")

	assert.Same(t, node, sc.FindNode(node.ID()))
	assert.Same(t, cam, sc.FindCamera(cam.ID()))
	assert.Same(t, appearance, sc.FindAppearance(appearance.ID()))
	assert.Same(t, pass, sc.FindRenderPass(pass.ID()))

	assert.Nil(t, sc.FindNode(cam.ID()), "lookups are per kind")
	assert.Nil(t, sc.FindNode(999))
}

func TestAppearance_Uniforms(t *testing.T) {
	t.Run("keeps_declaration_order", func(t *testing.T) {
		sc := New()
		a := sc.CreateAppearance("material", []Uniform{
			{Name: "b", Type: property.TypeFloat},
			{Name: "a", Type: property.TypeVec3f},
		})

		uniforms := a.Uniforms()
		require.Len(t, uniforms, 2)
		assert.Equal(t, "b", uniforms[0].Name)
		assert.Equal(t, "a", uniforms[1].Name)
	})

	t.Run("skips_container_types_and_duplicates", func(t *testing.T) {
		sc := New()
		a := sc.CreateAppearance("material", []Uniform{
			{Name: "ok", Type: property.TypeFloat},
			{Name: "bad", Type: property.TypeStruct},
			{Name: "ok", Type: property.TypeInt32},
		})

		require.Len(t, a.Uniforms(), 1)
		assert.Equal(t, property.TypeFloat, a.Uniform("ok").Type)
		assert.Nil(t, a.Uniform("bad"))
	})

	t.Run("set_uniform_stores_value", func(t *testing.T) {
		sc := New()
		a := sc.CreateAppearance("material", []Uniform{
			{Name: "opacity", Type: property.TypeFloat},
		})

		assert.Equal(t, float32(0), a.Uniform("opacity").Value, "defaults to the type's zero value")
		assert.True(t, a.SetUniform("opacity", float32(0.25)))
		assert.Equal(t, float32(0.25), a.Uniform("opacity").Value)
		assert.False(t, a.SetUniform("missing", float32(1)))
	})
}
