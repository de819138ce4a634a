package format

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
)

// Fixup describes a legacy format that has no native device
// representation and is converted on the host during uploads and
// readbacks.
type Fixup struct {
	// Native is the device format the data is converted to.
	Native gputypes.TextureFormat

	// ElementSize is the size in bytes of one native pixel.
	ElementSize uint32
}

// Only the packed 24-bit RGB layout is converted. Further formats go in
// this table together with a converter pair below.
var fixups = map[Format]Fixup{
	R8G8B8: {Native: gputypes.TextureFormatBGRA8Unorm, ElementSize: 4},
}

// NeedsFixup reports whether f must be converted on the host.
func NeedsFixup(f Format) bool {
	_, ok := fixups[f]
	return ok
}

// FixupFor returns the conversion target of f.
func FixupFor(f Format) (Fixup, bool) {
	fx, ok := fixups[f]
	return fx, ok
}

// ErrFixupSize is returned when conversion buffers do not hold the same
// number of pixels.
var ErrFixupSize = errors.New("format: fixup buffer sizes do not match")

// ExpandFixup converts packed B8G8R8 pixels in src into B8G8R8A8 pixels in
// dst, writing an opaque alpha channel.
func ExpandFixup(dst, src []byte) error {
	if len(src)%3 != 0 || len(dst) != len(src)/3*4 {
		return errors.Wrapf(ErrFixupSize, "expand %d bytes into %d", len(src), len(dst))
	}
	for s, d := 0, 0; s < len(src); s, d = s+3, d+4 {
		dst[d+0] = src[s+0]
		dst[d+1] = src[s+1]
		dst[d+2] = src[s+2]
		dst[d+3] = 0xff
	}
	return nil
}

// PackFixup converts B8G8R8A8 pixels in src back into packed B8G8R8
// pixels in dst, dropping alpha.
func PackFixup(dst, src []byte) error {
	if len(src)%4 != 0 || len(dst) != len(src)/4*3 {
		return errors.Wrapf(ErrFixupSize, "pack %d bytes into %d", len(src), len(dst))
	}
	for s, d := 0, 0; s < len(src); s, d = s+4, d+3 {
		dst[d+0] = src[s+0]
		dst[d+1] = src[s+1]
		dst[d+2] = src[s+2]
	}
	return nil
}
