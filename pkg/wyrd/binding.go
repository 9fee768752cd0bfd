package wyrd

import (
	"fmt"

	"github.com/orneryd/wyrd/pkg/property"
)

// AttachmentError reports that a binding could not be connected to its host
// scene object: the object is missing, of the wrong kind, or its schema no
// longer matches the persisted binding inputs.
type AttachmentError struct {
	NodeName string
	Message  string
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("binding '%s': %s", e.NodeName, e.Message)
}

func attachErrorf(name, format string, args ...any) *AttachmentError {
	return &AttachmentError{NodeName: name, Message: fmt.Sprintf(format, args...)}
}

// forEachPendingLeaf visits the binding input leaves that have to be
// forwarded to the host object this tick: every leaf that was explicitly
// set by the user plus every leaf whose incoming link fired. The change
// marker is consumed; leaves never touched since creation are skipped, so
// they never overwrite host state the logic graph does not control.
func forEachPendingLeaf(root *property.Property, fn func(*property.Property)) {
	root.VisitLeaves(func(leaf *property.Property) {
		if leaf.WasSet() || leaf.Changed() {
			fn(leaf)
			leaf.ClearChanged()
		}
	})
}
