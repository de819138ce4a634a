package legacytex

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/legacytex/format"
	"github.com/gogpu/legacytex/internal/mip"
)

// stagingUsage is the usage of every per-subresource buffer: mapped by
// the host in both directions and copied to and from the image.
var stagingUsage = gputypes.BufferUsageMapRead |
	gputypes.BufferUsageMapWrite |
	gputypes.BufferUsageCopySrc |
	gputypes.BufferUsageCopyDst

// RequiresFixup reports whether the texture's format is converted on the
// host between its mapping buffers and the device image.
func (t *Texture) RequiresFixup() bool { return t.fixup }

// fixupMipSize returns the size of subresource sub in the native layout
// the fixup buffer holds.
func (t *Texture) fixupMipSize(sub uint32) uint64 {
	fx, _ := format.FixupFor(t.desc.Format)
	return mip.Footprint(t.MipExtent(sub), fx.ElementSize, 1, 1)
}

// EnsureBuffer creates the mapping buffer of subresource sub, and its
// fixup buffer when the format requires one, unless they exist already.
// It reports whether any buffer was allocated, which tells callers that
// the contents have to be uploaded or read back.
//
// Unmapped textures have no buffers; EnsureBuffer reports false for them.
// A failed allocation leaves the subresource without buffers.
func (t *Texture) EnsureBuffer(sub uint32) (bool, error) {
	if t.destroyed {
		return false, ErrTextureDestroyed
	}
	if !t.validSubresource(sub) {
		return false, errors.Wrapf(ErrInvalidSubresource, "subresource %d of %d", sub, t.CountSubresources())
	}
	if t.mapMode == MapModeUnmapped {
		return false, nil
	}

	allocated := false
	if t.buffers[sub] == nil {
		buf, err := t.createBuffer(sub, "", t.MipSize(sub))
		if err != nil {
			return false, err
		}
		t.buffers[sub] = buf
		allocated = true
	}

	if t.fixup && t.fixupBuffers[sub] == nil {
		buf, err := t.createBuffer(sub, " fixup", t.fixupMipSize(sub))
		if err != nil {
			if allocated {
				t.buffers[sub].Destroy()
				t.buffers[sub] = nil
			}
			return false, err
		}
		t.fixupBuffers[sub] = buf
		allocated = true
	}
	return allocated, nil
}

func (t *Texture) createBuffer(sub uint32, suffix string, size uint64) (Buffer, error) {
	info := BufferCreateInfo{
		Label: fmt.Sprintf("%s sub%d%s", t.label, sub, suffix),
		Size:  size,
		Usage: stagingUsage,
	}
	buf, err := t.device.CreateBuffer(&info)
	if err != nil {
		return nil, errors.Wrapf(err, "create buffer %s", info.Label)
	}
	Logger().Debug("legacytex: subresource buffer created", "label", info.Label, "size", size)
	return buf, nil
}

// EnsureAllBuffers creates the buffers of every subresource.
func (t *Texture) EnsureAllBuffers() error {
	for i := range t.CountSubresources() {
		if _, err := t.EnsureBuffer(i); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseBuffer destroys the mapping and fixup buffers of subresource sub.
// It is used to reclaim memory of device-backed textures whose CPU copy
// is only needed transiently. Out of range indices are ignored.
func (t *Texture) ReleaseBuffer(sub uint32) {
	if !t.validSubresource(sub) {
		return
	}
	if b := t.buffers[sub]; b != nil {
		b.Destroy()
		t.buffers[sub] = nil
	}
	if b := t.fixupBuffers[sub]; b != nil {
		b.Destroy()
		t.fixupBuffers[sub] = nil
	}
}

// MappingBuffer returns the buffer the application maps for subresource
// sub, or nil when it has not been created.
func (t *Texture) MappingBuffer(sub uint32) Buffer {
	if !t.validSubresource(sub) {
		return nil
	}
	return t.buffers[sub]
}

// CopyBuffer returns the buffer copied to and from the image for
// subresource sub: the fixup buffer when the format requires fixup, the
// mapping buffer otherwise.
func (t *Texture) CopyBuffer(sub uint32) Buffer {
	if !t.validSubresource(sub) {
		return nil
	}
	if t.fixup {
		return t.fixupBuffers[sub]
	}
	return t.buffers[sub]
}
