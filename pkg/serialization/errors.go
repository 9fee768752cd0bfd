// Package serialization defines the binary file envelope for persisted
// logic engines: a fixed-size version header followed by a FlatBuffers
// payload (see pkg/serialization/fb for the table glue).
//
// The header carries the magic bytes, the host engine version, the logic
// runtime version and the file format version. Compatibility rules:
//
//   - the file format version has to equal the current one, or the
//     immediately previous one (accepted in compatibility mode),
//   - a newer format version than the runtime's is rejected,
//   - a host engine major version mismatch is rejected.
package serialization

import "fmt"

// FormatError reports a corrupted or incompatible buffer: truncated data,
// bad magic, version mismatch or a missing required subobject.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return "invalid logic file: " + e.Message
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, args...)}
}

// IOError reports a file read or write failure.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("file '%s': %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
