package legacytex

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
)

// imageDimension maps a resource type to the dimension of its image.
// Cube textures are 2D images with six layers.
func imageDimension(rtype ResourceType) gputypes.TextureDimension {
	if rtype == ResourceVolumeTexture {
		return gputypes.TextureDimension3D
	}
	return gputypes.TextureDimension2D
}

// allLayers selects every array layer of a texture in view creation.
const allLayers = ^uint32(0)

// viewDimension maps a resource type and layer selection to a view
// dimension. Single faces of a cube are plain 2D views.
func viewDimension(rtype ResourceType, layer uint32) gputypes.TextureViewDimension {
	switch rtype {
	case ResourceVolumeTexture:
		return gputypes.TextureViewDimension3D
	case ResourceCubeTexture:
		if layer == allLayers {
			return gputypes.TextureViewDimensionCube
		}
	}
	return gputypes.TextureViewDimension2D
}

// optimizeLayout returns the layout an image is kept in. Attachment
// layouts are only legal for optimally tiled images.
func optimizeLayout(tiling Tiling, renderTarget, depthTarget bool) Layout {
	if tiling != TilingOptimal {
		return LayoutGeneral
	}
	switch {
	case renderTarget:
		return LayoutColorAttachmentOptimal
	case depthTarget:
		return LayoutDepthStencilAttachmentOptimal
	}
	return LayoutGeneral
}

// enableUsage returns the usage bits needed by operations other code
// performs on the image: blits for mip generation, resolves for
// multisampled images and buffer copies for fixup uploads.
func enableUsage(desc *TextureDescriptor, fixup bool) gputypes.TextureUsage {
	var usage gputypes.TextureUsage
	if desc.Usage.Has(UsageAutoGenMipMap) {
		usage |= gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst
	}
	if desc.MultiSample.SampleCount() > 1 {
		usage |= gputypes.TextureUsageCopySrc
	}
	if fixup {
		usage |= gputypes.TextureUsageCopyDst
	}
	return usage
}

// imageInfo derives the primary image parameters from the descriptor.
// Tiling and initial layout are left for the caller to negotiate.
func (t *Texture) imageInfo() ImageCreateInfo {
	d := &t.desc
	info := ImageCreateInfo{
		Label:     t.label,
		Dimension: imageDimension(t.rtype),
		Format:    t.mapping.Format,
		Extent: gputypes.Extent3D{
			Width:              d.Width,
			Height:             d.Height,
			DepthOrArrayLayers: d.Depth,
		},
		ArrayLayers: d.ArraySize,
		MipLevels:   d.MipLevels,
		SampleCount: d.MultiSample.SampleCount(),
		Usage:       imageUsage(d, t.fixup),
	}

	if t.mapping.HasSrgb() {
		info.Flags |= ImageFlagMutableFormat
		info.ViewFormats = []gputypes.TextureFormat{t.mapping.Format, t.mapping.FormatSrgb}
	}
	if t.rtype == ResourceCubeTexture {
		info.Flags |= ImageFlagCubeCompatible
	}
	return info
}

// imageUsage returns the full usage of an image created for desc. Every
// image is sampled and takes part in transfers.
func imageUsage(desc *TextureDescriptor, fixup bool) gputypes.TextureUsage {
	usage := gputypes.TextureUsageCopySrc |
		gputypes.TextureUsageCopyDst |
		gputypes.TextureUsageTextureBinding
	if desc.Usage&(UsageRenderTarget|UsageDepthStencil) != 0 {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	return usage | enableUsage(desc, fixup)
}

// createPrimaryImage negotiates tiling and creates the primary image.
// Optimal tiling is preferred; linear tiling is the only fallback.
func (t *Texture) createPrimaryImage() (Image, error) {
	if !t.mapping.IsValid() {
		return nil, errors.Wrapf(ErrUnsupported, "%s: no native format for %v", t.label, t.desc.Format)
	}

	info := t.imageInfo()
	info.Tiling = TilingOptimal
	if !t.device.SupportsImage(&info, TilingOptimal) {
		if !t.device.SupportsImage(&info, TilingLinear) {
			return nil, errors.Wrapf(ErrUnsupported, "%s: %v %dx%dx%d, %d layers, %d levels, %d samples, usage %#x",
				t.label, info.Format, info.Extent.Width, info.Extent.Height, info.Extent.DepthOrArrayLayers,
				info.ArrayLayers, info.MipLevels, info.SampleCount, uint32(info.Usage))
		}
		info.Tiling = TilingLinear
		Logger().Warn("legacytex: optimal tiling unsupported, using linear",
			"label", t.label, "format", t.desc.Format.String())
	}
	info.InitialLayout = optimizeLayout(info.Tiling,
		t.desc.Usage.Has(UsageRenderTarget), t.desc.Usage.Has(UsageDepthStencil))

	img, err := t.device.CreateImage(&info)
	if err != nil {
		return nil, errors.Wrapf(err, "create primary image %s", t.label)
	}
	Logger().Debug("legacytex: primary image created",
		"label", t.label,
		"tiling", info.Tiling.String(),
		"layout", info.InitialLayout.String(),
		"samples", info.SampleCount)
	return img, nil
}

// ResolveImage returns the single-sample companion of the primary image,
// creating it on first use. Textures without a primary image return nil.
func (t *Texture) ResolveImage() (Image, error) {
	if t.destroyed {
		return nil, ErrTextureDestroyed
	}
	if t.image == nil {
		return nil, nil
	}
	if t.resolveImage == nil {
		img, err := t.createResolveImage()
		if err != nil {
			return nil, err
		}
		t.resolveImage = img
	}
	return t.resolveImage, nil
}

func (t *Texture) createResolveImage() (Image, error) {
	info := t.image.Info()
	info.Label = t.label + " resolve"
	info.SampleCount = 1

	single := t.desc
	single.MultiSample = MultisampleNone
	info.Usage = imageUsage(&single, t.fixup)

	img, err := t.device.CreateImage(&info)
	if err != nil {
		return nil, errors.Wrapf(err, "create resolve image %s", t.label)
	}
	Logger().Debug("legacytex: resolve image created", "label", t.label)
	return img, nil
}
