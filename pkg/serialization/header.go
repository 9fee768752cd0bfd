package serialization

import (
	"encoding/binary"
	"fmt"
)

// Magic identifies wyrd logic files.
var Magic = [4]byte{'W', 'Y', 'R', 'D'}

// Version is a semantic version triple as persisted in the file header.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Versions written by this build.
var (
	// HostEngineVersion is the version of the host scene API this runtime
	// was built against. Files from a different major version do not load.
	HostEngineVersion = Version{Major: 1, Minor: 2, Patch: 0}

	// RuntimeVersion is the logic runtime version.
	RuntimeVersion = Version{Major: 0, Minor: 9, Patch: 3}
)

// File format versions. The loader accepts the current version, and the
// previous one in compatibility mode.
const (
	FileFormatVersion         uint32 = 2
	PreviousFileFormatVersion uint32 = 1
)

// HeaderSize is the fixed byte length of the file header: magic, host
// engine version triple, runtime version triple, file format version.
const HeaderSize = 4 + 12 + 12 + 4

// Header is the decoded fixed-size file prefix.
type Header struct {
	HostEngine Version
	Runtime    Version
	FileFormat uint32
}

// CurrentHeader returns the header this build writes.
func CurrentHeader() Header {
	return Header{
		HostEngine: HostEngineVersion,
		Runtime:    RuntimeVersion,
		FileFormat: FileFormatVersion,
	}
}

// AppendHeader appends the encoded header to dst. All integers are little
// endian.
func AppendHeader(dst []byte, h Header) []byte {
	dst = append(dst, Magic[:]...)
	for _, v := range []Version{h.HostEngine, h.Runtime} {
		dst = binary.LittleEndian.AppendUint32(dst, v.Major)
		dst = binary.LittleEndian.AppendUint32(dst, v.Minor)
		dst = binary.LittleEndian.AppendUint32(dst, v.Patch)
	}
	dst = binary.LittleEndian.AppendUint32(dst, h.FileFormat)
	return dst
}

// ParseHeader decodes and strips the header, returning the payload that
// follows it.
func ParseHeader(data []byte) (Header, []byte, error) {
	if len(data) < HeaderSize {
		return Header{}, nil, formatErrorf("truncated header (%d bytes)", len(data))
	}
	if [4]byte(data[:4]) != Magic {
		return Header{}, nil, formatErrorf("bad magic bytes")
	}

	var h Header
	readVersion := func(off int) Version {
		return Version{
			Major: binary.LittleEndian.Uint32(data[off:]),
			Minor: binary.LittleEndian.Uint32(data[off+4:]),
			Patch: binary.LittleEndian.Uint32(data[off+8:]),
		}
	}
	h.HostEngine = readVersion(4)
	h.Runtime = readVersion(16)
	h.FileFormat = binary.LittleEndian.Uint32(data[28:])

	return h, data[HeaderSize:], nil
}

// CheckCompatibility validates a parsed header against this build. The
// compat return is true when the file uses the previous file format
// version; callers log that case.
func CheckCompatibility(h Header) (compat bool, err error) {
	if h.HostEngine.Major != HostEngineVersion.Major {
		return false, formatErrorf("incompatible host engine version %s, this runtime was built against %s",
			h.HostEngine, HostEngineVersion)
	}
	switch {
	case h.FileFormat == FileFormatVersion:
		return false, nil
	case h.FileFormat == PreviousFileFormatVersion:
		return true, nil
	case h.FileFormat > FileFormatVersion:
		return false, formatErrorf("file format version %d is newer than the supported version %d",
			h.FileFormat, FileFormatVersion)
	default:
		return false, formatErrorf("expected version %s but found %s (file format %d, supported %d and %d)",
			RuntimeVersion, h.Runtime, h.FileFormat, FileFormatVersion, PreviousFileFormatVersion)
	}
}
