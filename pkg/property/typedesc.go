package property

// TypeDesc describes the shape of a property tree before it is instantiated:
// a name, a type tag and, for containers, the descriptors of the children.
// Node constructors and the script interface extractor build TypeDesc trees,
// then instantiate them with New.
type TypeDesc struct {
	Name     string
	Type     Type
	Children []TypeDesc
}

// MakeType creates a descriptor for a primitive leaf.
func MakeType(name string, t Type) TypeDesc {
	return TypeDesc{Name: name, Type: t}
}

// MakeStruct creates a descriptor for a struct with the given children.
// Child order is preserved on instantiation.
func MakeStruct(name string, children []TypeDesc) TypeDesc {
	return TypeDesc{Name: name, Type: TypeStruct, Children: children}
}

// MakeArray creates a descriptor for an array of count elements, each with
// the element descriptor's type structure. Element names are cleared; array
// elements are addressed by index only.
func MakeArray(name string, count int, element TypeDesc) TypeDesc {
	children := make([]TypeDesc, count)
	for i := range children {
		children[i] = element
		children[i].Name = ""
	}
	return TypeDesc{Name: name, Type: TypeArray, Children: children}
}

// Validate checks the descriptor tree for schema violations: unknown type
// tags, duplicate sibling names in structs, primitives with children and
// arrays with mixed element types.
func (d TypeDesc) Validate() error {
	return d.validate(d.Name)
}

func (d TypeDesc) validate(path string) error {
	if !d.Type.IsValid() {
		return &SchemaError{Path: path, Err: ErrUnknownType}
	}
	if d.Type.IsPrimitive() {
		if len(d.Children) > 0 {
			return &SchemaError{Path: path, Err: ErrNotPrimitive}
		}
		return nil
	}

	if d.Type == TypeStruct {
		seen := make(map[string]struct{}, len(d.Children))
		for _, child := range d.Children {
			if _, dup := seen[child.Name]; dup {
				return &SchemaError{Path: path + "/" + child.Name, Err: ErrDuplicateChild}
			}
			seen[child.Name] = struct{}{}
		}
	} else {
		for i := 1; i < len(d.Children); i++ {
			if !sameStructure(d.Children[0], d.Children[i]) {
				return &SchemaError{Path: path, Err: ErrInvalidElement}
			}
		}
	}

	for _, child := range d.Children {
		childPath := path + "/" + child.Name
		if err := child.validate(childPath); err != nil {
			return err
		}
	}
	return nil
}

// sameStructure reports whether two descriptors share an identical type
// structure, ignoring names. Used to enforce homogeneous array elements.
func sameStructure(a, b TypeDesc) bool {
	if a.Type != b.Type || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !sameStructure(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
