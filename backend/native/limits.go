package native

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/legacytex"
)

// SupportsImage reports whether an image described by info can be created
// with tiling under l.
func (l Limits) SupportsImage(info *legacytex.ImageCreateInfo, tiling legacytex.Tiling) bool {
	l = l.withDefaults()

	if info == nil || info.Format == gputypes.TextureFormatUndefined {
		return false
	}
	if info.MipLevels == 0 || info.ArrayLayers == 0 {
		return false
	}
	e := info.Extent
	if e.Width == 0 || e.Height == 0 || e.DepthOrArrayLayers == 0 {
		return false
	}

	switch info.Dimension {
	case gputypes.TextureDimension3D:
		limit := l.MaxTextureDimension3D
		if e.Width > limit || e.Height > limit || e.DepthOrArrayLayers > limit {
			return false
		}
		if info.ArrayLayers != 1 || isDepthFormat(info.Format) {
			return false
		}
	case gputypes.TextureDimension2D:
		limit := l.MaxTextureDimension2D
		if e.Width > limit || e.Height > limit || e.DepthOrArrayLayers != 1 {
			return false
		}
		if info.ArrayLayers > l.MaxArrayLayers {
			return false
		}
	default:
		return false
	}

	if !supportsSampleCount(info) {
		return false
	}

	if isCompressedFormat(info.Format) {
		if info.Usage&gputypes.TextureUsageRenderAttachment != 0 {
			return false
		}
		// Block compressed images cover whole blocks at the top level.
		if e.Width%4 != 0 || e.Height%4 != 0 {
			return false
		}
	}

	if tiling == legacytex.TilingLinear {
		return l.LinearTiling &&
			info.Dimension == gputypes.TextureDimension2D &&
			info.MipLevels == 1 &&
			info.ArrayLayers == 1 &&
			info.SampleCount == 1 &&
			!isDepthFormat(info.Format) &&
			!isCompressedFormat(info.Format)
	}
	return true
}

func supportsSampleCount(info *legacytex.ImageCreateInfo) bool {
	switch info.SampleCount {
	case 1:
		return true
	case 4:
		return info.Dimension == gputypes.TextureDimension2D &&
			info.MipLevels == 1 &&
			info.ArrayLayers == 1 &&
			info.Usage&gputypes.TextureUsageRenderAttachment != 0 &&
			!isCompressedFormat(info.Format)
	}
	return false
}

func isDepthFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float:
		return true
	}
	return false
}

func isCompressedFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatBC1RGBAUnorm, gputypes.TextureFormatBC1RGBAUnormSrgb,
		gputypes.TextureFormatBC2RGBAUnorm, gputypes.TextureFormatBC2RGBAUnormSrgb,
		gputypes.TextureFormatBC3RGBAUnorm, gputypes.TextureFormatBC3RGBAUnormSrgb:
		return true
	}
	return false
}
