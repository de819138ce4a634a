package legacytex

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/legacytex/format"
	"github.com/gogpu/legacytex/internal/mip"
)

// Declared limits.
const (
	// MaxTextureDimension is the largest width or height of a 2D or cube
	// texture.
	MaxTextureDimension = 16384

	// MaxVolumeExtent is the largest width, height or depth of a volume
	// texture.
	MaxVolumeExtent = 2048

	// MaxMipLevels is the longest mip chain of a MaxTextureDimension
	// texture.
	MaxMipLevels = 15

	// MaxSubresources bounds the per-subresource collections of a texture:
	// a full mip chain on each of six cube faces.
	MaxSubresources = MaxMipLevels * 6
)

// Pool is the legacy memory pool a texture lives in.
type Pool uint32

// Memory pools.
const (
	PoolDefault Pool = iota
	PoolManaged
	PoolSystemMem
	PoolScratch
)

func (p Pool) String() string {
	switch p {
	case PoolDefault:
		return "Default"
	case PoolManaged:
		return "Managed"
	case PoolSystemMem:
		return "SystemMem"
	case PoolScratch:
		return "Scratch"
	}
	return "Pool(?)"
}

// Usage is the legacy usage flag set.
type Usage uint32

// Usage flags.
const (
	UsageRenderTarget  Usage = 0x1
	UsageDepthStencil  Usage = 0x2
	UsageWriteOnly     Usage = 0x8
	UsageDynamic       Usage = 0x200
	UsageAutoGenMipMap Usage = 0x400
	UsageDMap          Usage = 0x4000
)

// Has reports whether all flags in f are set.
func (u Usage) Has(f Usage) bool { return u&f == f }

// ResourceType is the dimensionality of a texture.
type ResourceType uint32

// Resource types.
const (
	ResourceSurface ResourceType = iota
	ResourceTexture
	ResourceCubeTexture
	ResourceVolumeTexture
)

func (r ResourceType) String() string {
	switch r {
	case ResourceSurface:
		return "Surface"
	case ResourceTexture:
		return "Texture"
	case ResourceCubeTexture:
		return "CubeTexture"
	case ResourceVolumeTexture:
		return "VolumeTexture"
	}
	return "ResourceType(?)"
}

// MultisampleType is the legacy multisample selector.
type MultisampleType uint32

// Multisample types. Values 2 through 16 request that many samples.
const (
	MultisampleNone        MultisampleType = 0
	MultisampleNonMaskable MultisampleType = 1
)

// SampleCount returns the number of samples the type requests, or 0 for
// a type the device cannot represent.
func (m MultisampleType) SampleCount() uint32 {
	switch m {
	case MultisampleNone, MultisampleNonMaskable:
		return 1
	case 2, 4, 8, 16:
		return uint32(m)
	}
	return 0
}

// TextureDescriptor is the legacy description of a texture.
type TextureDescriptor struct {
	Width     uint32
	Height    uint32
	Depth     uint32
	ArraySize uint32
	MipLevels uint32

	Usage  Usage
	Format format.Format
	Pool   Pool

	// Discard marks a depth-stencil surface whose contents are discarded
	// after presentation.
	Discard bool

	MultiSample MultisampleType

	// MultisampleQuality must be zero without multisampling. Other values
	// are accepted and not used: device images have no quality levels.
	MultisampleQuality uint32
}

// Extent returns the top-level extent of the descriptor.
func (d *TextureDescriptor) Extent() gputypes.Extent3D {
	return gputypes.Extent3D{Width: d.Width, Height: d.Height, DepthOrArrayLayers: d.Depth}
}

// Normalize fills in unset fields of d and validates it for a resource of
// type rtype. It must run before any other component reads d.
//
// Zero width, height, depth and array size default to 1 (6 array slices
// for cube textures). A zero mip level count selects the full chain.
// Errors wrap ErrInvalidCall for inconsistent combinations and
// ErrOutOfLimits for values beyond the declared limits.
func Normalize(rtype ResourceType, d *TextureDescriptor) error {
	if d == nil {
		return errors.Wrap(ErrInvalidCall, "nil texture descriptor")
	}

	if d.Width == 0 {
		d.Width = 1
	}
	if d.Height == 0 {
		d.Height = 1
	}
	if d.Depth == 0 {
		d.Depth = 1
	}
	if d.ArraySize == 0 {
		d.ArraySize = 1
		if rtype == ResourceCubeTexture {
			d.ArraySize = 6
		}
	}

	if err := validateShape(rtype, d); err != nil {
		return err
	}
	if d.Format == format.Unknown || !d.Format.Known() {
		return errors.Wrapf(ErrInvalidCall, "unsupported format %v", d.Format)
	}
	if err := validateUsage(rtype, d); err != nil {
		return err
	}

	samples := d.MultiSample.SampleCount()
	if samples == 0 {
		return errors.Wrapf(ErrInvalidCall, "multisample type %d", d.MultiSample)
	}
	if d.MultiSample == MultisampleNone && d.MultisampleQuality != 0 {
		return errors.Wrapf(ErrInvalidCall, "multisample quality %d without multisampling", d.MultisampleQuality)
	}
	if samples > 1 {
		if rtype != ResourceSurface || d.Usage&(UsageRenderTarget|UsageDepthStencil) == 0 {
			return errors.Wrapf(ErrInvalidCall, "%d samples on a %v without render or depth target usage", samples, rtype)
		}
		if d.MipLevels > 1 {
			return errors.Wrapf(ErrInvalidCall, "multisampled surface with %d mip levels", d.MipLevels)
		}
	}

	maxLevels := uint32(1)
	if samples == 1 {
		maxLevels = mip.LevelCount(d.Extent())
	}
	if d.MipLevels == 0 {
		d.MipLevels = maxLevels
	} else if d.MipLevels > maxLevels {
		return errors.Wrapf(ErrOutOfLimits, "%d mip levels for %dx%dx%d, at most %d",
			d.MipLevels, d.Width, d.Height, d.Depth, maxLevels)
	}

	if n := d.ArraySize * d.MipLevels; n > MaxSubresources {
		return errors.Wrapf(ErrOutOfLimits, "%d subresources, at most %d", n, MaxSubresources)
	}
	return nil
}

func validateShape(rtype ResourceType, d *TextureDescriptor) error {
	switch rtype {
	case ResourceSurface, ResourceTexture:
		if d.Depth != 1 || d.ArraySize != 1 {
			return errors.Wrapf(ErrInvalidCall, "%v with depth %d and %d array slices", rtype, d.Depth, d.ArraySize)
		}
		if d.Width > MaxTextureDimension || d.Height > MaxTextureDimension {
			return errors.Wrapf(ErrOutOfLimits, "%v extent %dx%d", rtype, d.Width, d.Height)
		}
	case ResourceCubeTexture:
		if d.Depth != 1 || d.ArraySize != 6 {
			return errors.Wrapf(ErrInvalidCall, "cube texture with depth %d and %d faces", d.Depth, d.ArraySize)
		}
		if d.Width != d.Height {
			return errors.Wrapf(ErrInvalidCall, "cube texture %dx%d is not square", d.Width, d.Height)
		}
		if d.Width > MaxTextureDimension {
			return errors.Wrapf(ErrOutOfLimits, "cube edge %d", d.Width)
		}
	case ResourceVolumeTexture:
		if d.ArraySize != 1 {
			return errors.Wrapf(ErrInvalidCall, "volume texture with %d array slices", d.ArraySize)
		}
		if d.Width > MaxVolumeExtent || d.Height > MaxVolumeExtent || d.Depth > MaxVolumeExtent {
			return errors.Wrapf(ErrOutOfLimits, "volume extent %dx%dx%d", d.Width, d.Height, d.Depth)
		}
	default:
		return errors.Wrapf(ErrInvalidCall, "resource type %d", rtype)
	}
	return nil
}

func validateUsage(rtype ResourceType, d *TextureDescriptor) error {
	attachment := d.Usage & (UsageRenderTarget | UsageDepthStencil)
	if attachment == UsageRenderTarget|UsageDepthStencil {
		return errors.Wrap(ErrInvalidCall, "render target and depth stencil usage are exclusive")
	}
	if attachment != 0 {
		if d.Pool != PoolDefault {
			return errors.Wrapf(ErrInvalidCall, "attachment usage in %v pool", d.Pool)
		}
		if rtype == ResourceVolumeTexture {
			return errors.Wrap(ErrInvalidCall, "attachment usage on a volume texture")
		}
	}
	if d.Usage.Has(UsageDepthStencil) && !d.Format.IsDepth() {
		return errors.Wrapf(ErrInvalidCall, "depth stencil usage with color format %v", d.Format)
	}
	if d.Usage.Has(UsageRenderTarget) && d.Format.IsDepth() {
		return errors.Wrapf(ErrInvalidCall, "render target usage with depth format %v", d.Format)
	}
	if d.Usage.Has(UsageDynamic) && d.Pool == PoolManaged {
		return errors.Wrap(ErrInvalidCall, "dynamic usage in managed pool")
	}
	if d.Usage.Has(UsageAutoGenMipMap) && (d.Pool == PoolSystemMem || d.Pool == PoolScratch) {
		return errors.Wrapf(ErrInvalidCall, "automatic mip generation in %v pool", d.Pool)
	}
	return nil
}
