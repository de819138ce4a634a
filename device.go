package legacytex

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/legacytex/format"
)

// Tiling is the memory arrangement of an image.
type Tiling uint8

// Image tilings.
const (
	TilingOptimal Tiling = iota
	TilingLinear
)

func (t Tiling) String() string {
	if t == TilingLinear {
		return "Linear"
	}
	return "Optimal"
}

// Layout is the access layout an image is kept in between operations.
type Layout uint8

// Image layouts.
const (
	LayoutUndefined Layout = iota
	LayoutGeneral
	LayoutColorAttachmentOptimal
	LayoutDepthStencilAttachmentOptimal
	LayoutShaderReadOnlyOptimal
	LayoutTransferSrcOptimal
	LayoutTransferDstOptimal
)

func (l Layout) String() string {
	switch l {
	case LayoutUndefined:
		return "Undefined"
	case LayoutGeneral:
		return "General"
	case LayoutColorAttachmentOptimal:
		return "ColorAttachmentOptimal"
	case LayoutDepthStencilAttachmentOptimal:
		return "DepthStencilAttachmentOptimal"
	case LayoutShaderReadOnlyOptimal:
		return "ShaderReadOnlyOptimal"
	case LayoutTransferSrcOptimal:
		return "TransferSrcOptimal"
	case LayoutTransferDstOptimal:
		return "TransferDstOptimal"
	}
	return "Layout(?)"
}

// ImageFlags are creation flags of an image.
type ImageFlags uint8

// Image creation flags.
const (
	// ImageFlagCubeCompatible allows cube views over six array layers.
	ImageFlagCubeCompatible ImageFlags = 1 << iota

	// ImageFlagMutableFormat allows views in the formats listed in
	// ImageCreateInfo.ViewFormats.
	ImageFlagMutableFormat
)

// ImageCreateInfo describes a device image.
type ImageCreateInfo struct {
	Label string

	Dimension   gputypes.TextureDimension
	Format      gputypes.TextureFormat
	ViewFormats []gputypes.TextureFormat
	Flags       ImageFlags

	// Extent is the top-level extent. DepthOrArrayLayers carries the
	// depth of 3D images and is 1 otherwise; array layers are counted in
	// ArrayLayers.
	Extent      gputypes.Extent3D
	ArrayLayers uint32
	MipLevels   uint32
	SampleCount uint32

	Usage         gputypes.TextureUsage
	Tiling        Tiling
	InitialLayout Layout
}

// BufferCreateInfo describes a host-visible buffer.
type BufferCreateInfo struct {
	Label string
	Size  uint64
	Usage gputypes.BufferUsage
}

// ImageViewCreateInfo describes a typed, range-scoped view of an image.
type ImageViewCreateInfo struct {
	Label string

	Format    gputypes.TextureFormat
	Dimension gputypes.TextureViewDimension
	Aspect    format.Aspect
	Swizzle   format.Swizzle

	// Usage restricts the view to the operations it is created for.
	Usage gputypes.TextureUsage

	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
}

// Image is a device image owned by a Texture.
type Image interface {
	Info() ImageCreateInfo
	Destroy()
}

// Buffer is a host-visible buffer owned by a Texture.
type Buffer interface {
	Size() uint64
	Destroy()
}

// ImageView is a view of an Image owned by a Texture.
type ImageView interface {
	Info() ImageViewCreateInfo
	Image() Image
	Destroy()
}

// Device is the part of the GPU device a Texture needs. It is borrowed,
// never owned, and only ever called from the goroutine that owns the
// rendering context.
type Device interface {
	CreateImage(info *ImageCreateInfo) (Image, error)
	CreateBuffer(info *BufferCreateInfo) (Buffer, error)
	CreateImageView(img Image, info *ImageViewCreateInfo) (ImageView, error)

	// SupportsImage reports whether an image described by info can be
	// created with the given tiling.
	SupportsImage(info *ImageCreateInfo, tiling Tiling) bool

	// LookupFormat returns the native realization of a legacy format.
	LookupFormat(f format.Format) format.Mapping
}

// MemoryReporter is implemented by devices that track the video memory
// reported to the application. A negative delta consumes memory; the
// call returns false and changes nothing when the budget cannot cover it.
type MemoryReporter interface {
	ChangeReportedMemory(delta int64) bool
}
