package property

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/orneryd/wyrd/pkg/serialization/fb"
)

// Serialize appends the property tree to the builder and returns the table
// offset. Leaf values are stored in per-type slots; float-ish values (and
// each vector component) go into the float vector, integer values into the
// int vector.
func Serialize(p *Property, builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	var childrenVec flatbuffers.UOffsetT
	if n := p.ChildCount(); n > 0 {
		offsets := make([]flatbuffers.UOffsetT, n)
		for i := 0; i < n; i++ {
			offsets[i] = Serialize(p.ChildAt(i), builder)
		}
		fb.PropertyStartChildrenVector(builder, n)
		for i := n - 1; i >= 0; i-- {
			builder.PrependUOffsetT(offsets[i])
		}
		childrenVec = builder.EndVector(n)
	}

	var floatVec, intVec, stringVal flatbuffers.UOffsetT
	boolVal := false
	switch v := p.value.(type) {
	case float32:
		floatVec = floatValuesVector(builder, []float32{v})
	case Vec2f:
		floatVec = floatValuesVector(builder, v[:])
	case Vec3f:
		floatVec = floatValuesVector(builder, v[:])
	case Vec4f:
		floatVec = floatValuesVector(builder, v[:])
	case int32:
		intVec = intValuesVector(builder, []int32{v})
	case Vec2i:
		intVec = intValuesVector(builder, v[:])
	case Vec3i:
		intVec = intValuesVector(builder, v[:])
	case Vec4i:
		intVec = intValuesVector(builder, v[:])
	case bool:
		boolVal = v
	case string:
		stringVal = builder.CreateString(v)
	}

	name := builder.CreateString(p.name)

	fb.PropertyStart(builder)
	fb.PropertyAddName(builder, name)
	fb.PropertyAddType(builder, fb.PropertyType(p.typ))
	fb.PropertyAddSemantics(builder, fb.Semantics(p.semantics))
	fb.PropertyAddWasSet(builder, p.wasSet)
	if childrenVec != 0 {
		fb.PropertyAddChildren(builder, childrenVec)
	}
	if floatVec != 0 {
		fb.PropertyAddFloatValues(builder, floatVec)
	}
	if intVec != 0 {
		fb.PropertyAddIntValues(builder, intVec)
	}
	fb.PropertyAddBoolValue(builder, boolVal)
	if stringVal != 0 {
		fb.PropertyAddStringValue(builder, stringVal)
	}
	return fb.PropertyEnd(builder)
}

func floatValuesVector(builder *flatbuffers.Builder, values []float32) flatbuffers.UOffsetT {
	fb.PropertyStartFloatValuesVector(builder, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		builder.PrependFloat32(values[i])
	}
	return builder.EndVector(len(values))
}

func intValuesVector(builder *flatbuffers.Builder, values []int32) flatbuffers.UOffsetT {
	fb.PropertyStartIntValuesVector(builder, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		builder.PrependInt32(values[i])
	}
	return builder.EndVector(len(values))
}

// Deserialize reconstructs a property tree from its persisted form. The
// tree is built through the regular schema validation, so corrupted
// descriptors (duplicate names, bad type tags) are rejected; then values
// and wasSet flags are restored without touching dirty state.
func Deserialize(src *fb.Property, semantics Semantics, owner Owner) (*Property, error) {
	desc, err := descFromPersisted(src)
	if err != nil {
		return nil, err
	}
	p, err := New(desc, semantics, owner)
	if err != nil {
		return nil, err
	}
	if err := restoreValues(p, src); err != nil {
		return nil, err
	}
	return p, nil
}

func descFromPersisted(src *fb.Property) (TypeDesc, error) {
	t := Type(src.Type())
	if !t.IsValid() {
		return TypeDesc{}, fmt.Errorf("persisted property '%s' has unknown type tag %d", src.Name(), src.Type())
	}
	desc := TypeDesc{Name: string(src.Name()), Type: t}
	for j := 0; j < src.ChildrenLength(); j++ {
		var child fb.Property
		if !src.Children(&child, j) {
			return TypeDesc{}, fmt.Errorf("persisted property '%s' has a missing child", src.Name())
		}
		childDesc, err := descFromPersisted(&child)
		if err != nil {
			return TypeDesc{}, err
		}
		desc.Children = append(desc.Children, childDesc)
	}
	return desc, nil
}

func restoreValues(p *Property, src *fb.Property) error {
	if p.typ.IsPrimitive() {
		value, err := PersistedValue(src)
		if err != nil {
			return err
		}
		if err := p.RestoreValue(value); err != nil {
			return err
		}
		p.wasSet = src.WasSet()
		return nil
	}
	for i := 0; i < p.ChildCount(); i++ {
		var child fb.Property
		if !src.Children(&child, i) {
			return fmt.Errorf("persisted property '%s' has a missing child", src.Name())
		}
		if err := restoreValues(p.ChildAt(i), &child); err != nil {
			return err
		}
	}
	return nil
}

// PersistedValue decodes the leaf value stored in a persisted property.
func PersistedValue(src *fb.Property) (any, error) {
	t := Type(src.Type())
	fail := func() (any, error) {
		return nil, fmt.Errorf("persisted property '%s' of type %s has malformed value data", src.Name(), t)
	}

	switch t {
	case TypeFloat, TypeVec2f, TypeVec3f, TypeVec4f:
		c := make([]float32, src.FloatValuesLength())
		for i := range c {
			c[i] = src.FloatValues(i)
		}
		switch {
		case t == TypeFloat && len(c) == 1:
			return c[0], nil
		case t == TypeVec2f && len(c) == 2:
			return Vec2f{c[0], c[1]}, nil
		case t == TypeVec3f && len(c) == 3:
			return Vec3f{c[0], c[1], c[2]}, nil
		case t == TypeVec4f && len(c) == 4:
			return Vec4f{c[0], c[1], c[2], c[3]}, nil
		}
		return fail()
	case TypeInt32, TypeVec2i, TypeVec3i, TypeVec4i:
		c := make([]int32, src.IntValuesLength())
		for i := range c {
			c[i] = src.IntValues(i)
		}
		switch {
		case t == TypeInt32 && len(c) == 1:
			return c[0], nil
		case t == TypeVec2i && len(c) == 2:
			return Vec2i{c[0], c[1]}, nil
		case t == TypeVec3i && len(c) == 3:
			return Vec3i{c[0], c[1], c[2]}, nil
		case t == TypeVec4i && len(c) == 4:
			return Vec4i{c[0], c[1], c[2], c[3]}, nil
		}
		return fail()
	case TypeBool:
		return src.BoolValue(), nil
	case TypeString:
		return string(src.StringValue()), nil
	}
	return fail()
}
