package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
)

// Element is the constraint over value types a DataArray can hold. Bool
// and string buffers are deliberately unsupported: data arrays exist to
// feed animation channels.
type Element interface {
	float32 | property.Vec2f | property.Vec3f | property.Vec4f |
		int32 | property.Vec2i | property.Vec3i | property.Vec4i
}

// DataArray is an immutable typed buffer referenced by animation channels.
// Arrays are engine-owned, carry a stable id and are serialized once; the
// channels referencing them persist only the id.
type DataArray struct {
	id   uint64
	name string
	typ  property.Type

	// data is a []T matching typ; never mutated after construction.
	data any
	size int
}

// ID returns the engine-stable id.
func (d *DataArray) ID() uint64 { return d.id }

// Name returns the display name.
func (d *DataArray) Name() string { return d.name }

// Type returns the element type tag.
func (d *DataArray) Type() property.Type { return d.typ }

// Size returns the number of elements.
func (d *DataArray) Size() int { return d.size }

// Data returns the typed element slice iff T matches the array's element
// type. The returned slice is the array's backing store; callers must not
// mutate it.
func Data[T Element](d *DataArray) ([]T, bool) {
	data, ok := d.data.([]T)
	return data, ok
}

// newDataArray copies the values into an immutable buffer.
func newDataArray[T Element](values []T, name string, id uint64) *DataArray {
	var zero T
	typ, _ := property.TypeOf(zero)
	data := make([]T, len(values))
	copy(data, values)
	return &DataArray{
		id:   id,
		name: name,
		typ:  typ,
		data: data,
		size: len(data),
	}
}
