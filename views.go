package legacytex

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/legacytex/format"
)

// ColorView is a pair of views over the same range, one reading raw
// values and one reading with sRGB correction. Srgb equals Color when the
// format has no sRGB twin.
type ColorView struct {
	Color ImageView
	Srgb  ImageView

	// srgbAliased is set when Srgb is the same view as Color.
	srgbAliased bool
}

// Pick returns the sRGB view when srgb is set, the raw view otherwise.
func (c ColorView) Pick(srgb bool) ImageView {
	if srgb {
		return c.Srgb
	}
	return c.Color
}

// destroy releases both views of the pair, once each.
func (c ColorView) destroy() {
	if c.Color != nil {
		c.Color.Destroy()
	}
	if c.Srgb != nil && !c.srgbAliased {
		c.Srgb.Destroy()
	}
}

// ViewSet is the family of views a texture exposes to the renderer.
// Face arrays hold one entry per array layer: six for cube textures, the
// first entry only otherwise.
type ViewSet struct {
	// Sample covers every layer and every mip from the LOD clamp down.
	Sample ColorView

	// MipGenRT is the render target view used as blit destination when
	// generating the mip chain. Only set for auto-mip textures.
	MipGenRT ImageView

	FaceSample       [6]ColorView
	FaceRenderTarget [6]ColorView
	FaceDepth        [6]ImageView

	// faceSampleAliased is set while FaceSample[0] is the same pair as
	// Sample, which is the case for single-layer textures until the
	// sampled view is recreated.
	faceSampleAliased bool
}

// RenderTargetLayout returns the layout render target views are used in.
func (v *ViewSet) RenderTargetLayout() Layout {
	return attachmentLayout(v.FaceRenderTarget[0].Color, LayoutColorAttachmentOptimal)
}

// DepthLayout returns the layout depth views are used in.
func (v *ViewSet) DepthLayout() Layout {
	return attachmentLayout(v.FaceDepth[0], LayoutDepthStencilAttachmentOptimal)
}

// attachmentLayout returns optimal when view's image is optimally tiled.
// Linear images never leave the general layout.
func attachmentLayout(view ImageView, optimal Layout) Layout {
	if view == nil || view.Image() == nil {
		return LayoutGeneral
	}
	return layoutForTiling(view.Image().Info().Tiling, optimal)
}

func layoutForTiling(tiling Tiling, optimal Layout) Layout {
	if tiling == TilingOptimal {
		return optimal
	}
	return LayoutGeneral
}

// destroy releases every view of the set. The only shared entries are
// the aliases recorded at build time.
func (v *ViewSet) destroy() {
	v.Sample.destroy()
	if v.MipGenRT != nil {
		v.MipGenRT.Destroy()
	}
	for i := range 6 {
		if i > 0 || !v.faceSampleAliased {
			v.FaceSample[i].destroy()
		}
		v.FaceRenderTarget[i].destroy()
		if v.FaceDepth[i] != nil {
			v.FaceDepth[i].Destroy()
		}
	}
}

// viewPurpose selects the usage and range rules of a view.
type viewPurpose uint8

const (
	viewSampled viewPurpose = iota
	viewRenderTarget
	viewDepthTarget
)

func (p viewPurpose) usage() gputypes.TextureUsage {
	if p == viewSampled {
		return gputypes.TextureUsageTextureBinding
	}
	return gputypes.TextureUsageRenderAttachment
}

func (p viewPurpose) String() string {
	switch p {
	case viewRenderTarget:
		return "rt"
	case viewDepthTarget:
		return "depth"
	}
	return "sample"
}

// viewInfo builds the create info of one view. layer is a single array
// layer or allLayers; lod is the first mip level.
func (t *Texture) viewInfo(purpose viewPurpose, layer, lod uint32, srgb bool) ImageViewCreateInfo {
	m := t.mapping
	info := ImageViewCreateInfo{
		Format:          m.Format,
		Dimension:       viewDimension(t.rtype, layer),
		Aspect:          m.Aspect,
		Swizzle:         m.Swizzle,
		Usage:           purpose.usage(),
		BaseMipLevel:    lod,
		MipLevelCount:   t.desc.MipLevels - lod,
		BaseArrayLayer:  0,
		ArrayLayerCount: t.desc.ArraySize,
	}
	if srgb && m.HasSrgb() {
		info.Format = m.FormatSrgb
	}
	if layer != allLayers {
		info.BaseArrayLayer = layer
		info.ArrayLayerCount = 1
	}

	// Only depth attachments bind the stencil aspect.
	if purpose != viewDepthTarget {
		info.Aspect &^= format.AspectStencil
	}
	if purpose != viewSampled {
		info.MipLevelCount = 1
		info.Swizzle = format.Swizzle{}
		if info.Dimension == gputypes.TextureViewDimensionCube {
			info.Dimension = gputypes.TextureViewDimension2DArray
		}
	}

	layerName := "all"
	if layer != allLayers {
		layerName = fmt.Sprint(layer)
	}
	info.Label = fmt.Sprintf("%s %s layer=%s lod=%d", t.label, purpose, layerName, lod)
	if srgb {
		info.Label += " srgb"
	}
	return info
}

func (t *Texture) createView(purpose viewPurpose, layer, lod uint32, srgb bool) (ImageView, error) {
	info := t.viewInfo(purpose, layer, lod, srgb)
	view, err := t.device.CreateImageView(t.image, &info)
	if err != nil {
		return nil, errors.Wrapf(err, "create view %s", info.Label)
	}
	return view, nil
}

func (t *Texture) createColorViewPair(purpose viewPurpose, layer, lod uint32) (ColorView, error) {
	color, err := t.createView(purpose, layer, lod, false)
	if err != nil {
		return ColorView{}, err
	}
	if !t.mapping.HasSrgb() {
		return ColorView{Color: color, Srgb: color, srgbAliased: true}, nil
	}
	srgb, err := t.createView(purpose, layer, lod, true)
	if err != nil {
		color.Destroy()
		return ColorView{}, err
	}
	return ColorView{Color: color, Srgb: srgb}, nil
}

// Views returns the texture's view set, building it on first use.
// Textures without a primary image have no views and return nil.
func (t *Texture) Views() (*ViewSet, error) {
	if t.destroyed {
		return nil, ErrTextureDestroyed
	}
	if t.image == nil {
		return nil, nil
	}
	if t.views == nil {
		vs, err := t.buildViews()
		if err != nil {
			return nil, err
		}
		t.views = vs
	}
	return t.views, nil
}

func (t *Texture) buildViews() (vs *ViewSet, err error) {
	vs = &ViewSet{}
	defer func() {
		if err != nil {
			vs.destroy()
			vs = nil
		}
	}()

	if vs.Sample, err = t.createColorViewPair(viewSampled, allLayers, 0); err != nil {
		return
	}
	if t.IsAutomaticMip() {
		if vs.MipGenRT, err = t.createView(viewRenderTarget, allLayers, 0, false); err != nil {
			return
		}
	}

	for i := range t.desc.ArraySize {
		if t.desc.ArraySize > 1 {
			if vs.FaceSample[i], err = t.createColorViewPair(viewSampled, i, 0); err != nil {
				return
			}
		} else {
			vs.FaceSample[0] = vs.Sample
			vs.faceSampleAliased = true
		}
		if t.desc.Usage.Has(UsageRenderTarget) {
			if vs.FaceRenderTarget[i], err = t.createColorViewPair(viewRenderTarget, i, 0); err != nil {
				return
			}
		}
		if t.desc.Usage.Has(UsageDepthStencil) {
			if vs.FaceDepth[i], err = t.createView(viewDepthTarget, i, 0, false); err != nil {
				return
			}
		}
	}

	Logger().Debug("legacytex: views created", "label", t.label, "layers", t.desc.ArraySize)
	return vs, nil
}

// RecreateSampledView rebuilds the whole-resource sampling pair starting
// at mip level lod. It applies a level-of-detail clamp, which the legacy
// API only allows for managed textures. No other view is touched.
func (t *Texture) RecreateSampledView(lod uint32) error {
	if !t.IsManaged() {
		return errors.Wrapf(ErrInvalidCall, "%s: LOD clamp on %v pool texture", t.label, t.desc.Pool)
	}
	if lod >= t.desc.MipLevels {
		return errors.Wrapf(ErrInvalidCall, "%s: LOD %d with %d mip levels", t.label, lod, t.desc.MipLevels)
	}
	vs, err := t.Views()
	if err != nil || vs == nil {
		return err
	}

	pair, err := t.createColorViewPair(viewSampled, allLayers, lod)
	if err != nil {
		return err
	}

	old := vs.Sample
	vs.Sample = pair
	// Single-layer textures share the pair with FaceSample[0], which
	// keeps it alive.
	if vs.faceSampleAliased {
		vs.faceSampleAliased = false
	} else {
		old.destroy()
	}
	Logger().Debug("legacytex: sampled view recreated", "label", t.label, "lod", lod)
	return nil
}

// RenderTargetLayout returns the layout render target views of the
// texture are used in, derived from the primary image's tiling.
func (t *Texture) RenderTargetLayout() Layout {
	if t.image == nil {
		return LayoutGeneral
	}
	return layoutForTiling(t.image.Info().Tiling, LayoutColorAttachmentOptimal)
}

// DepthLayout returns the layout depth views of the texture are used in.
func (t *Texture) DepthLayout() Layout {
	if t.image == nil {
		return LayoutGeneral
	}
	return layoutForTiling(t.image.Info().Tiling, LayoutDepthStencilAttachmentOptimal)
}
