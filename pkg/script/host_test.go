package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/wyrd/pkg/property"
)

type fakeOwner struct {
	dirty bool
}

func (o *fakeOwner) ID() uint64      { return 1 }
func (o *fakeOwner) Name() string    { return "owner" }
func (o *fakeOwner) SetDirty(d bool) { o.dirty = d }

func mustTrees(t *testing.T, s *Script) (*property.Property, *property.Property) {
	t.Helper()
	owner := &fakeOwner{}
	in, err := property.New(s.InputDesc(), property.SemanticsScriptInput, owner)
	require.NoError(t, err)
	out, err := property.New(s.OutputDesc(), property.SemanticsScriptOutput, owner)
	require.NoError(t, err)
	return in, out
}

func TestCompile(t *testing.T) {
	t.Run("extracts_declared_schema", func(t *testing.T) {
		s, err := Compile(`
			function interface() {
				IN.speed = Types.Float;
				IN.enabled = Types.Bool;
				OUT.position = Types.Vec3f;
			}
			function run() {}
		`, "schema")
		require.NoError(t, err)

		in := s.InputDesc()
		require.Len(t, in.Children, 2)
		assert.Equal(t, "speed", in.Children[0].Name)
		assert.Equal(t, property.TypeFloat, in.Children[0].Type)
		assert.Equal(t, "enabled", in.Children[1].Name)
		assert.Equal(t, property.TypeBool, in.Children[1].Type)

		out := s.OutputDesc()
		require.Len(t, out.Children, 1)
		assert.Equal(t, "position", out.Children[0].Name)
		assert.Equal(t, property.TypeVec3f, out.Children[0].Type)
	})

	t.Run("supports_nested_structs_and_arrays", func(t *testing.T) {
		s, err := Compile(`
			function interface() {
				IN.settings = { limit: Types.Int32, name: Types.String };
				OUT.samples = Types.Array(3, Types.Float);
			}
			function run() {}
		`, "nested")
		require.NoError(t, err)

		settings := s.InputDesc().Children[0]
		assert.Equal(t, property.TypeStruct, settings.Type)
		require.Len(t, settings.Children, 2)
		assert.Equal(t, "limit", settings.Children[0].Name)

		samples := s.OutputDesc().Children[0]
		assert.Equal(t, property.TypeArray, samples.Type)
		require.Len(t, samples.Children, 3)
		assert.Equal(t, property.TypeFloat, samples.Children[0].Type)
	})

	t.Run("rejects_missing_interface", func(t *testing.T) {
		_, err := Compile(`function run() {}`, "no-interface")
		assert.ErrorIs(t, err, ErrNoInterface)
	})

	t.Run("rejects_missing_run", func(t *testing.T) {
		_, err := Compile(`function interface() {}`, "no-run")
		assert.ErrorIs(t, err, ErrNoRun)
	})

	t.Run("rejects_syntax_errors", func(t *testing.T) {
		_, err := Compile(`function interface( {`, "syntax")
		assert.Error(t, err)
	})

	t.Run("rejects_invalid_declaration", func(t *testing.T) {
		_, err := Compile(`
			function interface() { IN.bad = "nope"; }
			function run() {}
		`, "bad-decl")
		assert.ErrorIs(t, err, ErrBadDeclaration)
	})

	t.Run("reports_interface_exception", func(t *testing.T) {
		_, err := Compile(`
			function interface() { throw new Error("boom"); }
			function run() {}
		`, "throwing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestRun(t *testing.T) {
	t.Run("reads_inputs_and_writes_outputs", func(t *testing.T) {
		s, err := Compile(`
			function interface() {
				IN.value = Types.Int32;
				OUT.doubled = Types.Int32;
			}
			function run() {
				OUT.doubled = IN.value * 2;
			}
		`, "double")
		require.NoError(t, err)

		in, out := mustTrees(t, s)
		require.NoError(t, property.Set(in.Child("value"), int32(21)))
		require.NoError(t, s.Run(in, out))

		v, ok := property.Get[int32](out.Child("doubled"))
		assert.True(t, ok)
		assert.Equal(t, int32(42), v)
	})

	t.Run("vector_outputs_accept_js_arrays", func(t *testing.T) {
		s, err := Compile(`
			function interface() { OUT.pos = Types.Vec3f; }
			function run() { OUT.pos = [1, 2, 3]; }
		`, "vec")
		require.NoError(t, err)

		in, out := mustTrees(t, s)
		require.NoError(t, s.Run(in, out))

		v, _ := property.Get[property.Vec3f](out.Child("pos"))
		assert.Equal(t, property.Vec3f{1, 2, 3}, v)
	})

	t.Run("untouched_outputs_keep_previous_value", func(t *testing.T) {
		s, err := Compile(`
			function interface() {
				IN.write = Types.Bool;
				OUT.value = Types.Int32;
			}
			function run() {
				if (IN.write) { OUT.value = 7; }
			}
		`, "conditional")
		require.NoError(t, err)

		in, out := mustTrees(t, s)
		require.NoError(t, s.Run(in, out))
		v, _ := property.Get[int32](out.Child("value"))
		assert.Equal(t, int32(0), v)

		require.NoError(t, property.Set(in.Child("write"), true))
		require.NoError(t, s.Run(in, out))
		v, _ = property.Get[int32](out.Child("value"))
		assert.Equal(t, int32(7), v)
	})

	t.Run("type_mismatch_on_output_fails", func(t *testing.T) {
		s, err := Compile(`
			function interface() { OUT.value = Types.Int32; }
			function run() { OUT.value = "text"; }
		`, "mismatch")
		require.NoError(t, err)

		in, out := mustTrees(t, s)
		err = s.Run(in, out)
		assert.ErrorIs(t, err, ErrBadAssignment)
	})

	t.Run("fractional_int_assignment_fails", func(t *testing.T) {
		s, err := Compile(`
			function interface() { OUT.value = Types.Int32; }
			function run() { OUT.value = 1.5; }
		`, "fractional")
		require.NoError(t, err)

		in, out := mustTrees(t, s)
		err = s.Run(in, out)
		assert.ErrorIs(t, err, ErrBadAssignment)
	})

	t.Run("runtime_exception_surfaces_as_error", func(t *testing.T) {
		s, err := Compile(`
			function interface() {}
			function run() { throw new Error("exploded"); }
		`, "throwing")
		require.NoError(t, err)

		in, out := mustTrees(t, s)
		err = s.Run(in, out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exploded")
	})

	t.Run("scripts_do_not_share_globals", func(t *testing.T) {
		source := `
			function interface() { OUT.counter = Types.Int32; }
			var state = 0;
			function run() {
				state = state + 1;
				OUT.counter = state;
			}
		`
		s1, err := Compile(source, "s1")
		require.NoError(t, err)
		s2, err := Compile(source, "s2")
		require.NoError(t, err)

		in1, out1 := mustTrees(t, s1)
		in2, out2 := mustTrees(t, s2)

		require.NoError(t, s1.Run(in1, out1))
		require.NoError(t, s1.Run(in1, out1))
		require.NoError(t, s2.Run(in2, out2))

		v1, _ := property.Get[int32](out1.Child("counter"))
		v2, _ := property.Get[int32](out2.Child("counter"))
		assert.Equal(t, int32(2), v1)
		assert.Equal(t, int32(1), v2, "each script runs in its own isolated runtime")
	})

	t.Run("mutating_input_projection_does_not_corrupt_engine_state", func(t *testing.T) {
		s, err := Compile(`
			function interface() {
				IN.value = Types.Int32;
				OUT.echo = Types.Int32;
			}
			function run() {
				IN.value = 999;
				OUT.echo = IN.value;
			}
		`, "mutator")
		require.NoError(t, err)

		in, out := mustTrees(t, s)
		require.NoError(t, property.Set(in.Child("value"), int32(5)))
		require.NoError(t, s.Run(in, out))

		v, _ := property.Get[int32](in.Child("value"))
		assert.Equal(t, int32(5), v, "IN is a copy; the property tree is untouched")
	})
}
