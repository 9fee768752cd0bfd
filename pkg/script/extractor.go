package script

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/orneryd/wyrd/pkg/property"
)

// ErrBadDeclaration is returned when an interface() declaration assigns
// something that is neither a Types constant, a Types.Array marker nor a
// nested object literal.
var ErrBadDeclaration = errors.New("invalid type declaration")

// arrayMarkerKey tags the objects produced by Types.Array so the extractor
// can tell them apart from nested struct literals.
const arrayMarkerKey = "__wyrdArray"

// installTypes publishes the Types declaration namespace into a runtime:
// one numeric constant per primitive property type plus the Array(count,
// element) constructor.
func installTypes(vm *goja.Runtime) {
	types := vm.NewObject()
	_ = types.Set("Float", int(property.TypeFloat))
	_ = types.Set("Vec2f", int(property.TypeVec2f))
	_ = types.Set("Vec3f", int(property.TypeVec3f))
	_ = types.Set("Vec4f", int(property.TypeVec4f))
	_ = types.Set("Int32", int(property.TypeInt32))
	_ = types.Set("Vec2i", int(property.TypeVec2i))
	_ = types.Set("Vec3i", int(property.TypeVec3i))
	_ = types.Set("Vec4i", int(property.TypeVec4i))
	_ = types.Set("Bool", int(property.TypeBool))
	_ = types.Set("String", int(property.TypeString))
	_ = types.Set("Array", func(count int, element goja.Value) goja.Value {
		marker := vm.NewObject()
		_ = marker.Set(arrayMarkerKey, count)
		_ = marker.Set("element", element)
		return marker
	})
	_ = vm.Set("Types", types)
}

// extractStruct reads the declarations the interface() call left on a
// global IN/OUT object and converts them into a struct descriptor.
func extractStruct(vm *goja.Runtime, name string, obj *goja.Object) (property.TypeDesc, error) {
	children := make([]property.TypeDesc, 0, len(obj.Keys()))
	for _, key := range obj.Keys() {
		child, err := extractDecl(vm, key, obj.Get(key))
		if err != nil {
			return property.TypeDesc{}, err
		}
		children = append(children, child)
	}
	desc := property.MakeStruct(name, children)
	if err := desc.Validate(); err != nil {
		return property.TypeDesc{}, err
	}
	return desc, nil
}

// extractDecl converts one declared value: a numeric Types constant becomes
// a primitive leaf, an Array marker becomes an array, any other object
// literal becomes a nested struct.
func extractDecl(vm *goja.Runtime, name string, v goja.Value) (property.TypeDesc, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return property.TypeDesc{}, fmt.Errorf("property '%s': %w", name, ErrBadDeclaration)
	}

	if code, ok := asInt(v); ok {
		t := property.Type(code)
		if !t.IsValid() || !t.IsPrimitive() {
			return property.TypeDesc{}, fmt.Errorf("property '%s' declared with unknown type code %d: %w", name, code, ErrBadDeclaration)
		}
		return property.MakeType(name, t), nil
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return property.TypeDesc{}, fmt.Errorf("property '%s': %w", name, ErrBadDeclaration)
	}

	if marker := obj.Get(arrayMarkerKey); marker != nil && !goja.IsUndefined(marker) {
		count, ok := asInt(marker)
		if !ok || count <= 0 {
			return property.TypeDesc{}, fmt.Errorf("array property '%s' needs a positive element count: %w", name, ErrBadDeclaration)
		}
		element, err := extractDecl(vm, "", obj.Get("element"))
		if err != nil {
			return property.TypeDesc{}, fmt.Errorf("array property '%s': %w", name, err)
		}
		return property.MakeArray(name, int(count), element), nil
	}

	children := make([]property.TypeDesc, 0, len(obj.Keys()))
	for _, key := range obj.Keys() {
		child, err := extractDecl(vm, key, obj.Get(key))
		if err != nil {
			return property.TypeDesc{}, err
		}
		children = append(children, child)
	}
	return property.MakeStruct(name, children), nil
}

// asInt reports a goja number with integral value.
func asInt(v goja.Value) (int64, bool) {
	f, ok := v.Export().(float64)
	if ok {
		if f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
	i, ok := v.Export().(int64)
	return i, ok
}
