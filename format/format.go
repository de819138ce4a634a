// Package format describes the legacy pixel formats understood by
// legacytex and how each one is realized on the device.
//
// Format values use the numeric codes of the legacy API, including the
// FOURCC codes of the compressed and vendor depth formats, so descriptors
// can be passed through from application code unchanged.
package format

import (
	"fmt"
	"strings"
)

// Format is a legacy pixel format code.
type Format uint32

// Legacy pixel formats.
const (
	Unknown Format = 0

	R8G8B8        Format = 20
	A8R8G8B8      Format = 21
	X8R8G8B8      Format = 22
	A8            Format = 28
	A2B10G10R10   Format = 31
	A8B8G8R8      Format = 32
	X8B8G8R8      Format = 33
	L8            Format = 50
	A8L8          Format = 51
	D32           Format = 71
	D24S8         Format = 75
	D24X8         Format = 77
	D16           Format = 80
	D32FLockable  Format = 82
	D24FS8        Format = 83
	R16F          Format = 111
	G16R16F       Format = 112
	A16B16G16R16F Format = 113
	R32F          Format = 114
	G32R32F       Format = 115
	A32B32G32R32F Format = 116

	DXT1 Format = 'D' | 'X'<<8 | 'T'<<16 | '1'<<24
	DXT2 Format = 'D' | 'X'<<8 | 'T'<<16 | '2'<<24
	DXT3 Format = 'D' | 'X'<<8 | 'T'<<16 | '3'<<24
	DXT4 Format = 'D' | 'X'<<8 | 'T'<<16 | '4'<<24
	DXT5 Format = 'D' | 'X'<<8 | 'T'<<16 | '5'<<24

	// INTZ, DF16 and DF24 are vendor depth formats whose depth values
	// are fetched as plain values instead of being compared.
	INTZ Format = 'I' | 'N'<<8 | 'T'<<16 | 'Z'<<24
	DF16 Format = 'D' | 'F'<<8 | '1'<<16 | '6'<<24
	DF24 Format = 'D' | 'F'<<8 | '2'<<16 | '4'<<24

	// NULL is the render target format that has no storage at all.
	NULL Format = 'N' | 'U'<<8 | 'L'<<16 | 'L'<<24
)

var names = map[Format]string{
	Unknown:       "Unknown",
	R8G8B8:        "R8G8B8",
	A8R8G8B8:      "A8R8G8B8",
	X8R8G8B8:      "X8R8G8B8",
	A8:            "A8",
	A2B10G10R10:   "A2B10G10R10",
	A8B8G8R8:      "A8B8G8R8",
	X8B8G8R8:      "X8B8G8R8",
	L8:            "L8",
	A8L8:          "A8L8",
	D32:           "D32",
	D24S8:         "D24S8",
	D24X8:         "D24X8",
	D16:           "D16",
	D32FLockable:  "D32F_LOCKABLE",
	D24FS8:        "D24FS8",
	R16F:          "R16F",
	G16R16F:       "G16R16F",
	A16B16G16R16F: "A16B16G16R16F",
	R32F:          "R32F",
	G32R32F:       "G32R32F",
	A32B32G32R32F: "A32B32G32R32F",
	DXT1:          "DXT1",
	DXT2:          "DXT2",
	DXT3:          "DXT3",
	DXT4:          "DXT4",
	DXT5:          "DXT5",
	INTZ:          "INTZ",
	DF16:          "DF16",
	DF24:          "DF24",
	NULL:          "NULL",
}

// String returns the legacy name of the format.
func (f Format) String() string {
	if s, ok := names[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}

// Known reports whether f is one of the formats declared by this package.
func (f Format) Known() bool {
	_, ok := names[f]
	return ok
}

// Parse returns the format with the given legacy name. Matching ignores
// case.
func Parse(name string) (Format, bool) {
	for f, n := range names {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}
	return Unknown, false
}

// Info describes how a format is packed in host memory.
type Info struct {
	// ElementSize is the size in bytes of one element: a pixel for
	// uncompressed formats, a block for compressed ones.
	ElementSize uint32

	// BlockWidth and BlockHeight are the element dimensions in pixels.
	BlockWidth  uint32
	BlockHeight uint32

	Depth   bool
	Stencil bool
}

func pixel(size uint32) Info { return Info{ElementSize: size, BlockWidth: 1, BlockHeight: 1} }

func block(size uint32) Info { return Info{ElementSize: size, BlockWidth: 4, BlockHeight: 4} }

func depth(size uint32, stencil bool) Info {
	i := pixel(size)
	i.Depth = true
	i.Stencil = stencil
	return i
}

var infos = map[Format]Info{
	R8G8B8:        pixel(3),
	A8R8G8B8:      pixel(4),
	X8R8G8B8:      pixel(4),
	A8:            pixel(1),
	A2B10G10R10:   pixel(4),
	A8B8G8R8:      pixel(4),
	X8B8G8R8:      pixel(4),
	L8:            pixel(1),
	A8L8:          pixel(2),
	R16F:          pixel(2),
	G16R16F:       pixel(4),
	A16B16G16R16F: pixel(8),
	R32F:          pixel(4),
	G32R32F:       pixel(8),
	A32B32G32R32F: pixel(16),
	DXT1:          block(8),
	DXT2:          block(16),
	DXT3:          block(16),
	DXT4:          block(16),
	DXT5:          block(16),
	D16:           depth(2, false),
	D24X8:         depth(4, false),
	D24S8:         depth(4, true),
	D24FS8:        depth(4, true),
	D32:           depth(4, false),
	D32FLockable:  depth(4, false),
	INTZ:          depth(4, true),
	DF16:          depth(2, false),
	DF24:          depth(4, false),
}

// Info returns the host packing of f. Formats without storage, such as
// NULL, report a zero element size.
func (f Format) Info() Info {
	if i, ok := infos[f]; ok {
		return i
	}
	return Info{BlockWidth: 1, BlockHeight: 1}
}

// IsDepth reports whether f stores depth values.
func (f Format) IsDepth() bool { return f.Info().Depth }

// IsRawDepthFetch reports whether sampling f returns stored depth values
// rather than the result of a depth comparison.
func (f Format) IsRawDepthFetch() bool {
	switch f {
	case INTZ, DF16, DF24:
		return true
	}
	return false
}
