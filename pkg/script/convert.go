package script

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dop251/goja"

	"github.com/orneryd/wyrd/pkg/property"
)

// ErrBadAssignment is returned when run() assigns a value to OUT that does
// not match the declared property type.
var ErrBadAssignment = errors.New("assigned value does not match property type")

// valueToJS projects a property tree into plain runtime values: leaves
// become numbers/bools/strings, vectors become arrays, containers become
// objects or arrays. The projection is a copy; scripts mutating IN cannot
// corrupt engine state.
func valueToJS(vm *goja.Runtime, p *property.Property) (goja.Value, error) {
	switch {
	case p.Type().IsPrimitive():
		return leafToJS(vm, p), nil
	case p.Type() == property.TypeArray:
		elems := make([]any, p.ChildCount())
		for i := 0; i < p.ChildCount(); i++ {
			v, err := valueToJS(vm, p.ChildAt(i))
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return vm.ToValue(elems), nil
	default:
		obj := vm.NewObject()
		for i := 0; i < p.ChildCount(); i++ {
			child := p.ChildAt(i)
			v, err := valueToJS(vm, child)
			if err != nil {
				return nil, err
			}
			if err := obj.Set(child.Name(), v); err != nil {
				return nil, err
			}
		}
		return obj, nil
	}
}

func leafToJS(vm *goja.Runtime, p *property.Property) goja.Value {
	switch v := p.RawValue().(type) {
	case float32:
		return vm.ToValue(float64(v))
	case property.Vec2f:
		return vm.ToValue([]any{float64(v[0]), float64(v[1])})
	case property.Vec3f:
		return vm.ToValue([]any{float64(v[0]), float64(v[1]), float64(v[2])})
	case property.Vec4f:
		return vm.ToValue([]any{float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3])})
	case int32:
		return vm.ToValue(int64(v))
	case property.Vec2i:
		return vm.ToValue([]any{int64(v[0]), int64(v[1])})
	case property.Vec3i:
		return vm.ToValue([]any{int64(v[0]), int64(v[1]), int64(v[2])})
	case property.Vec4i:
		return vm.ToValue([]any{int64(v[0]), int64(v[1]), int64(v[2]), int64(v[3])})
	case bool:
		return vm.ToValue(v)
	case string:
		return vm.ToValue(v)
	}
	return goja.Undefined()
}

// writeOutputs copies every value run() assigned on OUT back into the
// output property tree. Children the script never touched are skipped, so
// untouched outputs keep their previous values and do not propagate.
func writeOutputs(out *property.Property, obj *goja.Object) error {
	for i := 0; i < out.ChildCount(); i++ {
		child := out.ChildAt(i)
		key := child.Name()
		if out.Type() == property.TypeArray {
			key = strconv.Itoa(i)
		}
		v := obj.Get(key)
		if v == nil || goja.IsUndefined(v) {
			continue
		}
		if err := writeValue(child, v); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(p *property.Property, v goja.Value) error {
	if p.Type().IsPrimitive() {
		converted, err := jsToLeaf(p, v)
		if err != nil {
			return err
		}
		return p.SetOutput(converted)
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return fmt.Errorf("property '%s' of type %s: %w", p.Name(), p.Type(), ErrBadAssignment)
	}
	return writeOutputs(p, obj)
}

// jsToLeaf converts a runtime value into the Go value for the leaf's type
// tag, rejecting mismatches. Integer targets reject fractional numbers
// instead of silently truncating.
func jsToLeaf(p *property.Property, v goja.Value) (any, error) {
	fail := func() (any, error) {
		return nil, fmt.Errorf("property '%s' of type %s: %w", p.Name(), p.Type(), ErrBadAssignment)
	}

	switch p.Type() {
	case property.TypeFloat:
		f, ok := asFloat(v)
		if !ok {
			return fail()
		}
		return float32(f), nil
	case property.TypeInt32:
		i, ok := asInt(v)
		if !ok {
			return fail()
		}
		return int32(i), nil
	case property.TypeBool:
		b, ok := v.Export().(bool)
		if !ok {
			return fail()
		}
		return b, nil
	case property.TypeString:
		s, ok := v.Export().(string)
		if !ok {
			return fail()
		}
		return s, nil
	case property.TypeVec2f:
		f, ok := asFloatVec(v, 2)
		if !ok {
			return fail()
		}
		return property.Vec2f{f[0], f[1]}, nil
	case property.TypeVec3f:
		f, ok := asFloatVec(v, 3)
		if !ok {
			return fail()
		}
		return property.Vec3f{f[0], f[1], f[2]}, nil
	case property.TypeVec4f:
		f, ok := asFloatVec(v, 4)
		if !ok {
			return fail()
		}
		return property.Vec4f{f[0], f[1], f[2], f[3]}, nil
	case property.TypeVec2i:
		n, ok := asIntVec(v, 2)
		if !ok {
			return fail()
		}
		return property.Vec2i{n[0], n[1]}, nil
	case property.TypeVec3i:
		n, ok := asIntVec(v, 3)
		if !ok {
			return fail()
		}
		return property.Vec3i{n[0], n[1], n[2]}, nil
	case property.TypeVec4i:
		n, ok := asIntVec(v, 4)
		if !ok {
			return fail()
		}
		return property.Vec4i{n[0], n[1], n[2], n[3]}, nil
	}
	return fail()
}

func asFloat(v goja.Value) (float64, bool) {
	switch n := v.Export().(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asFloatVec(v goja.Value, n int) ([]float32, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, ok := asFloat(obj.Get(strconv.Itoa(i)))
		if !ok {
			return nil, false
		}
		out[i] = float32(f)
	}
	return out, true
}

func asIntVec(v goja.Value, n int) ([]int32, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		x, ok := asInt(obj.Get(strconv.Itoa(i)))
		if !ok {
			return nil, false
		}
		out[i] = int32(x)
	}
	return out, true
}
