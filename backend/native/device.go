// Package native realizes legacytex textures on a gogpu/wgpu hal device.
//
// Device implements legacytex.Device: images become hal textures, buffers
// become hal buffers and views become hal texture views. It also carries
// a MemoryBudget, so textures created on it report their memory
// consumption against a fixed video memory budget.
package native

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/legacytex"
	"github.com/gogpu/legacytex/format"
)

// Device adapts a hal.Device to legacytex.Device.
//
// Device is safe for concurrent use; the textures built on it are not.
type Device struct {
	hal    hal.Device
	limits Limits
	budget *MemoryBudget
}

// NewDevice creates a Device on top of halDevice. The hal device stays
// owned by the caller.
func NewDevice(halDevice hal.Device, config Config) (*Device, error) {
	if halDevice == nil {
		return nil, ErrNilHALDevice
	}
	return &Device{
		hal:    halDevice,
		limits: config.Limits.withDefaults(),
		budget: NewMemoryBudget(config.MaxMemoryMB),
	}, nil
}

// Limits returns the limits images are checked against.
func (d *Device) Limits() Limits { return d.limits }

// Memory returns the video memory budget of the device.
func (d *Device) Memory() *MemoryBudget { return d.budget }

// ChangeReportedMemory implements legacytex.MemoryReporter.
func (d *Device) ChangeReportedMemory(delta int64) bool {
	return d.budget.ChangeReportedMemory(delta)
}

// SupportsImage implements legacytex.Device.
func (d *Device) SupportsImage(info *legacytex.ImageCreateInfo, tiling legacytex.Tiling) bool {
	return d.limits.SupportsImage(info, tiling)
}

// LookupFormat implements legacytex.Device.
func (d *Device) LookupFormat(f format.Format) format.Mapping {
	return format.DefaultMapping(f)
}

// textureDescriptor translates image create info to a hal descriptor.
// 2D images carry their array layers in the depth slot.
func textureDescriptor(info *legacytex.ImageCreateInfo) *hal.TextureDescriptor {
	depthOrLayers := info.Extent.DepthOrArrayLayers
	if info.Dimension != gputypes.TextureDimension3D {
		depthOrLayers = info.ArrayLayers
	}
	return &hal.TextureDescriptor{
		Label: info.Label,
		Size: hal.Extent3D{
			Width:              info.Extent.Width,
			Height:             info.Extent.Height,
			DepthOrArrayLayers: depthOrLayers,
		},
		MipLevelCount: info.MipLevels,
		SampleCount:   info.SampleCount,
		Dimension:     info.Dimension,
		Format:        info.Format,
		Usage:         info.Usage,
		ViewFormats:   info.ViewFormats,
	}
}

// CreateImage implements legacytex.Device.
func (d *Device) CreateImage(info *legacytex.ImageCreateInfo) (legacytex.Image, error) {
	if info == nil {
		return nil, errors.New("native: image create info is nil")
	}
	if info.Extent.Width == 0 || info.Extent.Height == 0 {
		return nil, errors.Wrapf(ErrInvalidExtent, "image %s: %dx%d",
			info.Label, info.Extent.Width, info.Extent.Height)
	}

	halTex, err := d.hal.CreateTexture(textureDescriptor(info))
	if err != nil {
		return nil, errors.Wrapf(err, "native: create texture %s", info.Label)
	}
	return &Image{halTexture: halTex, device: d, info: *info}, nil
}

// CreateBuffer implements legacytex.Device.
func (d *Device) CreateBuffer(info *legacytex.BufferCreateInfo) (legacytex.Buffer, error) {
	if info == nil {
		return nil, errors.New("native: buffer create info is nil")
	}
	if info.Size == 0 {
		return nil, errors.Wrapf(ErrInvalidExtent, "buffer %s has zero size", info.Label)
	}

	halBuf, err := d.hal.CreateBuffer(&hal.BufferDescriptor{
		Label: info.Label,
		Size:  info.Size,
		Usage: info.Usage,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "native: create buffer %s", info.Label)
	}
	return &Buffer{halBuffer: halBuf, device: d, info: *info}, nil
}

// CreateImageView implements legacytex.Device. img must have been created
// by d.
func (d *Device) CreateImageView(img legacytex.Image, info *legacytex.ImageViewCreateInfo) (legacytex.ImageView, error) {
	if info == nil {
		return nil, errors.New("native: view create info is nil")
	}
	image, ok := img.(*Image)
	if !ok || image.device != d {
		return nil, errors.Wrapf(ErrForeignImage, "view %s", info.Label)
	}
	halTex := image.Raw()
	if halTex == nil {
		return nil, errors.Wrapf(ErrImageDestroyed, "view %s", info.Label)
	}

	halView, err := d.hal.CreateTextureView(halTex, &hal.TextureViewDescriptor{
		Label:           info.Label,
		Format:          info.Format,
		Dimension:       info.Dimension,
		Aspect:          info.Aspect.TextureAspect(),
		BaseMipLevel:    info.BaseMipLevel,
		MipLevelCount:   info.MipLevelCount,
		BaseArrayLayer:  info.BaseArrayLayer,
		ArrayLayerCount: info.ArrayLayerCount,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "native: create view %s", info.Label)
	}
	return &ImageView{halView: halView, image: image, info: *info}, nil
}
