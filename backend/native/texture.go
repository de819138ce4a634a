package native

import (
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/legacytex"
)

// Image is a legacytex.Image backed by a hal texture.
//
// Thread Safety:
// Image is safe for concurrent read access. Destroy is idempotent.
type Image struct {
	// mu protects mutable state.
	mu sync.RWMutex

	// halTexture is the underlying texture handle.
	halTexture hal.Texture

	// device is the Device that created the image.
	device *Device

	// info holds the create info (immutable after creation).
	info legacytex.ImageCreateInfo

	destroyed bool
}

// Info returns the parameters the image was created with.
func (i *Image) Info() legacytex.ImageCreateInfo {
	return i.info
}

// IsDestroyed returns true if the image has been destroyed.
func (i *Image) IsDestroyed() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.destroyed
}

// Raw returns the underlying texture handle.
//
// Returns nil if the image has been destroyed.
func (i *Image) Raw() hal.Texture {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.destroyed {
		return nil
	}
	return i.halTexture
}

// Destroy releases the hal texture.
//
// Views created from the image must be destroyed first.
func (i *Image) Destroy() {
	i.mu.Lock()
	if i.destroyed {
		i.mu.Unlock()
		return
	}
	i.destroyed = true
	halTex := i.halTexture
	i.halTexture = nil
	i.mu.Unlock()

	if halTex != nil {
		i.device.hal.DestroyTexture(halTex)
	}
}

// Buffer is a legacytex.Buffer backed by a hal buffer.
type Buffer struct {
	mu sync.RWMutex

	halBuffer hal.Buffer
	device    *Device
	info      legacytex.BufferCreateInfo

	destroyed bool
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 { return b.info.Size }

// Info returns the parameters the buffer was created with.
func (b *Buffer) Info() legacytex.BufferCreateInfo { return b.info }

// Raw returns the underlying buffer handle, or nil after Destroy.
func (b *Buffer) Raw() hal.Buffer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.destroyed {
		return nil
	}
	return b.halBuffer
}

// Destroy releases the hal buffer. Destroy is idempotent.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	halBuf := b.halBuffer
	b.halBuffer = nil
	b.mu.Unlock()

	if halBuf != nil {
		b.device.hal.DestroyBuffer(halBuf)
	}
}

// ImageView is a legacytex.ImageView backed by a hal texture view.
//
// hal views have no component mapping; the swizzle recorded in Info is
// applied by the sampling code that binds the view.
type ImageView struct {
	mu sync.RWMutex

	halView hal.TextureView
	image   *Image
	info    legacytex.ImageViewCreateInfo

	destroyed bool
}

// Info returns the parameters the view was created with.
func (v *ImageView) Info() legacytex.ImageViewCreateInfo { return v.info }

// Image returns the parent image.
func (v *ImageView) Image() legacytex.Image { return v.image }

// IsDestroyed returns true if the view has been destroyed.
func (v *ImageView) IsDestroyed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.destroyed
}

// Raw returns the underlying texture view handle, or nil after Destroy.
func (v *ImageView) Raw() hal.TextureView {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.destroyed {
		return nil
	}
	return v.halView
}

// Destroy releases the hal view. Destroy is idempotent.
func (v *ImageView) Destroy() {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return
	}
	v.destroyed = true
	halView := v.halView
	v.halView = nil
	v.mu.Unlock()

	if halView != nil {
		v.image.device.hal.DestroyTextureView(halView)
	}
}
