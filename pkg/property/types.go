// Package property implements the typed, hierarchical value model shared by
// all logic nodes in Wyrd.
//
// A property is a named node in a value tree owned by a logic node. Leaf
// properties carry a tagged primitive value (scalars, fixed-size vectors,
// bool, string); struct and array properties carry ordered children. Links
// between nodes connect individual leaf properties, so only leaves carry
// link state.
//
// The permission model is driven by semantics: a property created as a script
// output can only be written by its script, a binding input only by the user
// or by an incoming link, and so on. See Semantics for the full matrix.
//
// Example Usage:
//
//	desc := property.MakeStruct("IN", []property.TypeDesc{
//		property.MakeType("speed", property.TypeFloat),
//		property.MakeType("enabled", property.TypeBool),
//	})
//	root, err := property.New(desc, property.SemanticsScriptInput, owner)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	speed := root.Child("speed")
//	_ = property.Set(speed, float32(3.5))
//	v, ok := property.Get[float32](speed) // v == 3.5, ok == true
package property

// Type is the runtime type tag of a property.
type Type uint8

// Property type tags. Scalar and vector types are primitive (linkable);
// TypeStruct and TypeArray are complex containers.
const (
	TypeFloat Type = iota
	TypeVec2f
	TypeVec3f
	TypeVec4f
	TypeInt32
	TypeVec2i
	TypeVec3i
	TypeVec4i
	TypeBool
	TypeString
	TypeStruct
	TypeArray
)

// Fixed-size vector value types. Arrays (not slices) so that values are
// comparable and copy on assignment.
type (
	// Vec2f is a 2-component float vector.
	Vec2f [2]float32
	// Vec3f is a 3-component float vector.
	Vec3f [3]float32
	// Vec4f is a 4-component float vector. Quaternion-interpolated animation
	// channels produce normalized Vec4f values in (x, y, z, w) order.
	Vec4f [4]float32
	// Vec2i is a 2-component integer vector.
	Vec2i [2]int32
	// Vec3i is a 3-component integer vector.
	Vec3i [3]int32
	// Vec4i is a 4-component integer vector.
	Vec4i [4]int32
)

// String returns the type name as it appears in diagnostics.
func (t Type) String() string {
	switch t {
	case TypeFloat:
		return "Float"
	case TypeVec2f:
		return "Vec2f"
	case TypeVec3f:
		return "Vec3f"
	case TypeVec4f:
		return "Vec4f"
	case TypeInt32:
		return "Int32"
	case TypeVec2i:
		return "Vec2i"
	case TypeVec3i:
		return "Vec3i"
	case TypeVec4i:
		return "Vec4i"
	case TypeBool:
		return "Bool"
	case TypeString:
		return "String"
	case TypeStruct:
		return "Struct"
	case TypeArray:
		return "Array"
	}
	return "Unknown"
}

// IsPrimitive reports whether the type carries a value directly. Only
// primitive properties can participate in links.
func (t Type) IsPrimitive() bool {
	return t <= TypeString
}

// CanHaveChildren reports whether the type is a container (struct or array).
func (t Type) CanHaveChildren() bool {
	return t == TypeStruct || t == TypeArray
}

// IsValid reports whether the tag is one of the known property types.
func (t Type) IsValid() bool {
	return t <= TypeArray
}

// ZeroValue returns the default value for a primitive type tag, or nil for
// container types.
func (t Type) ZeroValue() any {
	switch t {
	case TypeFloat:
		return float32(0)
	case TypeVec2f:
		return Vec2f{}
	case TypeVec3f:
		return Vec3f{}
	case TypeVec4f:
		return Vec4f{}
	case TypeInt32:
		return int32(0)
	case TypeVec2i:
		return Vec2i{}
	case TypeVec3i:
		return Vec3i{}
	case TypeVec4i:
		return Vec4i{}
	case TypeBool:
		return false
	case TypeString:
		return ""
	}
	return nil
}

// TypeOf returns the type tag for a Go value usable as a property value.
// The second return is false for unsupported Go types.
func TypeOf(v any) (Type, bool) {
	switch v.(type) {
	case float32:
		return TypeFloat, true
	case Vec2f:
		return TypeVec2f, true
	case Vec3f:
		return TypeVec3f, true
	case Vec4f:
		return TypeVec4f, true
	case int32:
		return TypeInt32, true
	case Vec2i:
		return TypeVec2i, true
	case Vec3i:
		return TypeVec3i, true
	case Vec4i:
		return TypeVec4i, true
	case bool:
		return TypeBool, true
	case string:
		return TypeString, true
	}
	return TypeStruct, false
}

// Semantics describes who may read and write a property, and in which
// direction it can be linked.
type Semantics uint8

const (
	// SemanticsScriptInput marks inputs of script nodes: user-settable while
	// unlinked, linkable as link target.
	SemanticsScriptInput Semantics = iota
	// SemanticsScriptOutput marks outputs of script nodes: written only by
	// the owning script, linkable as link source.
	SemanticsScriptOutput
	// SemanticsBindingInput marks inputs of binding nodes: user-settable
	// while unlinked, forwarded to the host scene object on update.
	SemanticsBindingInput
	// SemanticsAnimationInput marks the control inputs of animation nodes.
	SemanticsAnimationInput
	// SemanticsAnimationOutput marks animation channel outputs and progress:
	// written only by the animation evaluation, linkable as link source.
	SemanticsAnimationOutput
	// SemanticsInterface marks interface node properties, which act as both
	// link source and target.
	SemanticsInterface
)

// String returns the semantics name as it appears in diagnostics.
func (s Semantics) String() string {
	switch s {
	case SemanticsScriptInput:
		return "ScriptInput"
	case SemanticsScriptOutput:
		return "ScriptOutput"
	case SemanticsBindingInput:
		return "BindingInput"
	case SemanticsAnimationInput:
		return "AnimationInput"
	case SemanticsAnimationOutput:
		return "AnimationOutput"
	case SemanticsInterface:
		return "Interface"
	}
	return "Unknown"
}

// IsValid reports whether the tag is one of the known semantics.
func (s Semantics) IsValid() bool {
	return s <= SemanticsInterface
}

// UserSettable reports whether the user may assign values to properties of
// this semantics (still subject to the unlinked check on the property).
func (s Semantics) UserSettable() bool {
	switch s {
	case SemanticsScriptInput, SemanticsBindingInput, SemanticsAnimationInput, SemanticsInterface:
		return true
	}
	return false
}

// LinkableAsOutput reports whether properties of this semantics may act as
// the source end of a link.
func (s Semantics) LinkableAsOutput() bool {
	switch s {
	case SemanticsScriptOutput, SemanticsAnimationOutput, SemanticsInterface:
		return true
	}
	return false
}

// LinkableAsInput reports whether properties of this semantics may act as
// the target end of a link.
func (s Semantics) LinkableAsInput() bool {
	switch s {
	case SemanticsScriptInput, SemanticsBindingInput, SemanticsAnimationInput, SemanticsInterface:
		return true
	}
	return false
}
