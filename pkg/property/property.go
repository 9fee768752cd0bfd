package property

import (
	"fmt"
	"strconv"
	"strings"
)

// Owner is the logic node a property tree belongs to. Properties hold a
// back-reference to their owner so that value changes can mark the owning
// node dirty without the property package knowing about node types.
type Owner interface {
	// ID returns the owner's engine-stable id.
	ID() uint64
	// Name returns the owner's display name for diagnostics.
	Name() string
	// SetDirty flags the owner for re-execution on the next engine update.
	SetDirty(dirty bool)
}

// Property is one node in a hierarchical value tree. Leaves carry a tagged
// primitive value; structs and arrays carry ordered children. A property is
// created through New from a TypeDesc and lives as long as its owning node.
type Property struct {
	name      string
	typ       Type
	semantics Semantics

	// value holds the tagged primitive for leaf properties; nil for
	// containers.
	value any

	parent     *Property
	children   []*Property
	childIndex map[string]int

	owner Owner

	// wasSet is true once the value has been explicitly assigned by the
	// user. Cleared when the property becomes a link target.
	wasSet bool
	// linkedInput is true while an incoming link drives this leaf.
	linkedInput bool
	// changed is true when the value changed since the owner's last
	// processed update. Consumed by the engine's propagation pass and by
	// binding nodes.
	changed bool
}

// New instantiates a property tree from a descriptor. Every property in the
// tree shares the given semantics and owner. Leaves start at the zero value
// of their type with wasSet == false.
func New(desc TypeDesc, semantics Semantics, owner Owner) (*Property, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if !semantics.IsValid() {
		return nil, &SchemaError{Path: desc.Name, Err: fmt.Errorf("unknown semantics %d", semantics)}
	}
	return build(desc, semantics, owner, nil), nil
}

func build(desc TypeDesc, semantics Semantics, owner Owner, parent *Property) *Property {
	p := &Property{
		name:      desc.Name,
		typ:       desc.Type,
		semantics: semantics,
		owner:     owner,
		parent:    parent,
	}
	if desc.Type.IsPrimitive() {
		p.value = desc.Type.ZeroValue()
		return p
	}
	p.children = make([]*Property, 0, len(desc.Children))
	p.childIndex = make(map[string]int, len(desc.Children))
	for _, childDesc := range desc.Children {
		child := build(childDesc, semantics, owner, p)
		if desc.Type == TypeStruct {
			p.childIndex[child.name] = len(p.children)
		}
		p.children = append(p.children, child)
	}
	return p
}

// Name returns the property name. Empty for array elements.
func (p *Property) Name() string { return p.name }

// Type returns the runtime type tag.
func (p *Property) Type() Type { return p.typ }

// Semantics returns the permission class of this property.
func (p *Property) Semantics() Semantics { return p.semantics }

// Owner returns the logic node owning this property tree.
func (p *Property) Owner() Owner { return p.owner }

// Parent returns the containing property, or nil for a root.
func (p *Property) Parent() *Property { return p.parent }

// ChildCount returns the number of direct children.
func (p *Property) ChildCount() int { return len(p.children) }

// ChildAt returns the i-th child, or nil if the index is out of range.
func (p *Property) ChildAt(i int) *Property {
	if i < 0 || i >= len(p.children) {
		return nil
	}
	return p.children[i]
}

// Child returns the struct child with the given name, or nil if this is not
// a struct or no such child exists.
func (p *Property) Child(name string) *Property {
	if p.childIndex == nil {
		return nil
	}
	i, ok := p.childIndex[name]
	if !ok {
		return nil
	}
	return p.children[i]
}

// HasChild reports whether a struct child with the given name exists.
func (p *Property) HasChild(name string) bool {
	_, ok := p.childIndex[name]
	return ok
}

// WasSet reports whether the value was explicitly assigned since
// construction (or since the property became a link target).
func (p *Property) WasSet() bool { return p.wasSet }

// IsLinkedInput reports whether an incoming link currently drives this leaf.
func (p *Property) IsLinkedInput() bool { return p.linkedInput }

// MarkLinkedInput records whether this leaf is driven by a link. Becoming a
// link target clears wasSet: from then on the value comes from the link.
// Called by the link registry; not part of the user API.
func (p *Property) MarkLinkedInput(linked bool) {
	p.linkedInput = linked
	if linked {
		p.wasSet = false
	}
}

// Changed reports whether the value changed since the owner's last processed
// update.
func (p *Property) Changed() bool { return p.changed }

// ClearChanged resets the change marker. Called by the engine after
// propagating a node's outputs and by binding nodes after forwarding a leaf
// to the host scene.
func (p *Property) ClearChanged() { p.changed = false }

// RawValue returns the untyped leaf value (nil for containers). Prefer the
// typed Get accessor; RawValue exists for serialization and diagnostics.
func (p *Property) RawValue() any { return p.value }

// Value is the constraint listing every Go type usable as a leaf value.
type Value interface {
	float32 | Vec2f | Vec3f | Vec4f | int32 | Vec2i | Vec3i | Vec4i | bool | string
}

// Get returns the leaf value iff the runtime tag matches T.
func Get[T Value](p *Property) (T, bool) {
	v, ok := p.value.(T)
	return v, ok
}

// Set assigns a value through the user-facing path. It succeeds iff the
// property is a primitive leaf whose tag matches the value's type, its
// semantics permit user assignment, and no incoming link drives it. On
// success the value is stored, wasSet becomes true and, if the value
// differs from the previous one, the owning node is marked dirty. Failure
// leaves the property untouched.
func Set[T Value](p *Property, v T) error {
	if !p.typ.IsPrimitive() {
		return fmt.Errorf("property '%s': %w", p.name, ErrNotPrimitive)
	}
	if !p.semantics.UserSettable() {
		return fmt.Errorf("property '%s' with semantics %s: %w", p.name, p.semantics, ErrNotSettable)
	}
	if p.linkedInput {
		return fmt.Errorf("property '%s': %w", p.name, ErrLinkedInput)
	}
	t, _ := TypeOf(v)
	if t != p.typ {
		return fmt.Errorf("property '%s' of type %s given %s: %w", p.name, p.typ, t, ErrTypeMismatch)
	}
	p.storeValue(v, true)
	p.wasSet = true
	return nil
}

// SetFromSource assigns a value through the engine-privileged propagation
// path, bypassing the semantics and link checks. The type still has to
// match. Does not touch wasSet: a propagated value is not a user assignment.
func (p *Property) SetFromSource(v any) error {
	if !p.typ.IsPrimitive() {
		return fmt.Errorf("property '%s': %w", p.name, ErrNotPrimitive)
	}
	t, ok := TypeOf(v)
	if !ok || t != p.typ {
		return fmt.Errorf("property '%s' of type %s: %w", p.name, p.typ, ErrTypeMismatch)
	}
	p.storeValue(v, true)
	return nil
}

// storeValue stores a value with change tracking. Assignments arriving from
// outside the owning node (user set, link propagation) mark the owner dirty
// on change; a node writing its own outputs does not re-dirty itself.
func (p *Property) storeValue(v any, markOwnerDirty bool) {
	if p.value != v {
		p.value = v
		p.changed = true
		if markOwnerDirty && p.owner != nil {
			p.owner.SetDirty(true)
		}
	}
}

// SetOutput assigns a value through the owning node's update. Used by node
// implementations to write their outputs; bypasses the user-settable check
// but keeps the type check.
func (p *Property) SetOutput(v any) error {
	if !p.typ.IsPrimitive() {
		return fmt.Errorf("property '%s': %w", p.name, ErrNotPrimitive)
	}
	t, ok := TypeOf(v)
	if !ok || t != p.typ {
		return fmt.Errorf("property '%s' of type %s: %w", p.name, p.typ, ErrTypeMismatch)
	}
	p.storeValue(v, false)
	return nil
}

// MarkWasSet forces the wasSet flag. Used by deserialization to restore the
// persisted flag without re-triggering dirty propagation.
func (p *Property) MarkWasSet(wasSet bool) { p.wasSet = wasSet }

// RestoreValue stores a value without change tracking or dirty marking.
// Used by deserialization only; the type still has to match.
func (p *Property) RestoreValue(v any) error {
	if !p.typ.IsPrimitive() {
		return fmt.Errorf("property '%s': %w", p.name, ErrNotPrimitive)
	}
	t, ok := TypeOf(v)
	if !ok || t != p.typ {
		return fmt.Errorf("property '%s' of type %s: %w", p.name, p.typ, ErrTypeMismatch)
	}
	p.value = v
	return nil
}

// Path returns the slash-separated path of this property below its root,
// with array elements addressed by index. The root's own name is excluded,
// so the path is stable against node renames. Used by link serialization.
func (p *Property) Path() string {
	if p.parent == nil {
		return ""
	}
	segments := make([]string, 0, 4)
	for cur := p; cur.parent != nil; cur = cur.parent {
		seg := cur.name
		if cur.parent.typ == TypeArray {
			for i, sibling := range cur.parent.children {
				if sibling == cur {
					seg = strconv.Itoa(i)
					break
				}
			}
		}
		segments = append(segments, seg)
	}
	// reverse into root-first order
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/")
}

// ResolvePath walks a path produced by Path starting at root. Returns nil
// if any segment does not resolve.
func ResolvePath(root *Property, path string) *Property {
	if path == "" {
		return root
	}
	cur := root
	for _, seg := range strings.Split(path, "/") {
		if cur == nil {
			return nil
		}
		if cur.typ == TypeArray {
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil
			}
			cur = cur.ChildAt(i)
		} else {
			cur = cur.Child(seg)
		}
	}
	return cur
}

// VisitLeaves calls fn for every primitive leaf in the tree, in depth-first
// declaration order.
func (p *Property) VisitLeaves(fn func(*Property)) {
	if p.typ.IsPrimitive() {
		fn(p)
		return
	}
	for _, child := range p.children {
		child.VisitLeaves(fn)
	}
}

// String renders the property for diagnostics as "name:Type".
func (p *Property) String() string {
	return p.name + ":" + p.typ.String()
}
