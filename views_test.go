package legacytex

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/legacytex/format"
)

func mustViews(t *testing.T, tex *Texture) *ViewSet {
	t.Helper()
	vs, err := tex.Views()
	if err != nil {
		t.Fatalf("Views failed: %v", err)
	}
	if vs == nil {
		t.Fatal("Views returned nil for device backed texture")
	}
	return vs
}

func viewInfoOf(t *testing.T, v ImageView) ImageViewCreateInfo {
	t.Helper()
	if v == nil {
		t.Fatal("view is nil")
	}
	return v.Info()
}

func TestViews_Texture2D(t *testing.T) {
	dev := &mockDevice{}
	tex := newTestTexture(t, dev, ResourceTexture, TextureDescriptor{
		Width: 64, Height: 64, MipLevels: 4, Format: format.A8R8G8B8, Pool: PoolManaged,
	})
	vs := mustViews(t, tex)

	if dev.viewsCreated != 2 {
		t.Errorf("viewsCreated = %d, want 2", dev.viewsCreated)
	}
	if vs.Sample.Color == vs.Sample.Srgb {
		t.Error("format with sRGB twin should have distinct views")
	}
	if vs.FaceSample[0] != vs.Sample {
		t.Error("single layer texture should alias FaceSample[0] to Sample")
	}
	if vs.MipGenRT != nil || vs.FaceRenderTarget[0].Color != nil || vs.FaceDepth[0] != nil {
		t.Error("plain texture has attachment views")
	}

	color := viewInfoOf(t, vs.Sample.Color)
	if color.Format != gputypes.TextureFormatBGRA8Unorm || color.Dimension != gputypes.TextureViewDimension2D {
		t.Errorf("sample view format=%v dimension=%v", color.Format, color.Dimension)
	}
	if color.BaseMipLevel != 0 || color.MipLevelCount != 4 || color.ArrayLayerCount != 1 {
		t.Errorf("sample view range mips %d+%d layers %d", color.BaseMipLevel, color.MipLevelCount, color.ArrayLayerCount)
	}
	if color.Usage != gputypes.TextureUsageTextureBinding {
		t.Errorf("sample view usage = %v", color.Usage)
	}
	if srgb := viewInfoOf(t, vs.Sample.Srgb); srgb.Format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("sRGB view format = %v", srgb.Format)
	}
	if vs.Sample.Pick(true) != vs.Sample.Srgb || vs.Sample.Pick(false) != vs.Sample.Color {
		t.Error("ColorView.Pick selected the wrong view")
	}
}

func TestViews_Cached(t *testing.T) {
	dev := &mockDevice{}
	tex := newTestTexture(t, dev, ResourceTexture, TextureDescriptor{
		Width: 8, Height: 8, Format: format.L8, Pool: PoolManaged,
	})
	first := mustViews(t, tex)
	created := dev.viewsCreated
	second := mustViews(t, tex)
	if first != second {
		t.Error("Views returned a different set on second call")
	}
	if dev.viewsCreated != created {
		t.Error("second Views call created views")
	}
}

func TestViews_CubeRenderTarget(t *testing.T) {
	dev := &mockDevice{}
	tex := newTestTexture(t, dev, ResourceCubeTexture, TextureDescriptor{
		Width: 32, Height: 32, MipLevels: 1, Format: format.X8R8G8B8, Usage: UsageRenderTarget,
	})
	vs := mustViews(t, tex)

	// Sample pair, six face sample pairs and six face render target pairs.
	if want := 2 + 6*2 + 6*2; dev.viewsCreated != want {
		t.Errorf("viewsCreated = %d, want %d", dev.viewsCreated, want)
	}

	sample := viewInfoOf(t, vs.Sample.Color)
	if sample.Dimension != gputypes.TextureViewDimensionCube || sample.ArrayLayerCount != 6 {
		t.Errorf("cube sample view dimension=%v layers=%d", sample.Dimension, sample.ArrayLayerCount)
	}
	if sample.Swizzle != (format.Swizzle{R: format.Identity, G: format.Identity, B: format.Identity, A: format.One}) {
		t.Errorf("X8 sample view swizzle = %+v, want opaque alpha", sample.Swizzle)
	}

	for face := range uint32(6) {
		fs := viewInfoOf(t, vs.FaceSample[face].Color)
		if fs.BaseArrayLayer != face || fs.ArrayLayerCount != 1 || fs.Dimension != gputypes.TextureViewDimension2D {
			t.Errorf("face %d sample view layer %d+%d dim %v", face, fs.BaseArrayLayer, fs.ArrayLayerCount, fs.Dimension)
		}
		rt := viewInfoOf(t, vs.FaceRenderTarget[face].Color)
		if rt.BaseArrayLayer != face || rt.ArrayLayerCount != 1 || rt.MipLevelCount != 1 {
			t.Errorf("face %d render target range layer %d+%d mips %d", face, rt.BaseArrayLayer, rt.ArrayLayerCount, rt.MipLevelCount)
		}
		if rt.Usage != gputypes.TextureUsageRenderAttachment {
			t.Errorf("face %d render target usage = %v", face, rt.Usage)
		}
		if !rt.Swizzle.IsIdentity() {
			t.Errorf("face %d render target swizzle = %+v, want identity", face, rt.Swizzle)
		}
	}
	if vs.RenderTargetLayout() != LayoutColorAttachmentOptimal {
		t.Errorf("RenderTargetLayout() = %v", vs.RenderTargetLayout())
	}
}

func TestViews_DepthStencil(t *testing.T) {
	dev := &mockDevice{}
	tex := newTestTexture(t, dev, ResourceTexture, TextureDescriptor{
		Width: 32, Height: 32, MipLevels: 1, Format: format.D24S8, Usage: UsageDepthStencil,
	})
	vs := mustViews(t, tex)

	if dev.viewsCreated != 2 {
		t.Errorf("viewsCreated = %d, want 2", dev.viewsCreated)
	}
	if vs.Sample.Color != vs.Sample.Srgb {
		t.Error("depth format without sRGB twin should share one view")
	}
	if aspect := viewInfoOf(t, vs.Sample.Color).Aspect; aspect != format.AspectDepth {
		t.Errorf("sample view aspect = %v, want depth only", aspect)
	}
	depth := viewInfoOf(t, vs.FaceDepth[0])
	if depth.Aspect != format.AspectDepth|format.AspectStencil {
		t.Errorf("depth view aspect = %v, want depth and stencil", depth.Aspect)
	}
	if depth.Usage != gputypes.TextureUsageRenderAttachment || depth.MipLevelCount != 1 {
		t.Errorf("depth view usage=%v mips=%d", depth.Usage, depth.MipLevelCount)
	}
	if vs.DepthLayout() != LayoutDepthStencilAttachmentOptimal {
		t.Errorf("DepthLayout() = %v", vs.DepthLayout())
	}
	if vs.RenderTargetLayout() != LayoutGeneral {
		t.Errorf("RenderTargetLayout() without render target views = %v, want General", vs.RenderTargetLayout())
	}
}

func TestViews_AutoMip(t *testing.T) {
	dev := &mockDevice{}
	tex := newTestTexture(t, dev, ResourceTexture, TextureDescriptor{
		Width: 64, Height: 64, Format: format.A8B8G8R8, Usage: UsageAutoGenMipMap,
	})
	vs := mustViews(t, tex)

	if vs.MipGenRT == nil {
		t.Fatal("auto mip texture has no MipGenRT view")
	}
	info := vs.MipGenRT.Info()
	if info.Usage != gputypes.TextureUsageRenderAttachment || info.MipLevelCount != 1 {
		t.Errorf("MipGenRT usage=%v mips=%d", info.Usage, info.MipLevelCount)
	}
	if info.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("MipGenRT format = %v", info.Format)
	}
}

func TestViews_Volume(t *testing.T) {
	tex := newTestTexture(t, &mockDevice{}, ResourceVolumeTexture, TextureDescriptor{
		Width: 8, Height: 8, Depth: 8, Format: format.A16B16G16R16F,
	})
	vs := mustViews(t, tex)
	if d := viewInfoOf(t, vs.Sample.Color).Dimension; d != gputypes.TextureViewDimension3D {
		t.Errorf("volume sample view dimension = %v, want 3D", d)
	}
}

func TestViews_BufferOnly(t *testing.T) {
	dev := &mockDevice{}
	tex := newTestTexture(t, dev, ResourceTexture, TextureDescriptor{
		Width: 8, Height: 8, Format: format.A8R8G8B8, Pool: PoolScratch,
	})
	vs, err := tex.Views()
	if vs != nil || err != nil {
		t.Errorf("Views() = %v, %v; want nil, nil", vs, err)
	}
	if dev.viewsCreated != 0 {
		t.Error("buffer only texture created views")
	}
}

func TestViews_FailureRollsBack(t *testing.T) {
	dev := &mockDevice{}
	failAt := 3
	calls := 0
	dev.createImageViewFunc = func(img Image, info *ImageViewCreateInfo) (ImageView, error) {
		calls++
		if calls == failAt {
			return nil, errDeviceOOM
		}
		v := &mockImageView{image: img, info: *info}
		dev.views = append(dev.views, v)
		return v, nil
	}
	tex := newTestTexture(t, dev, ResourceCubeTexture, TextureDescriptor{
		Width: 16, Height: 16, Format: format.A8R8G8B8, Pool: PoolManaged,
	})

	if _, err := tex.Views(); !errors.Is(err, errDeviceOOM) {
		t.Fatalf("Views() = %v, want device error", err)
	}
	if n := dev.liveViews(); n != 0 {
		t.Errorf("%d views alive after failed build", n)
	}

	failAt = 0
	vs := mustViews(t, tex)
	if vs.FaceSample[5].Color == nil {
		t.Error("retry did not build the full set")
	}
}

func TestRecreateSampledView(t *testing.T) {
	t.Run("single layer", func(t *testing.T) {
		tex := newTestTexture(t, &mockDevice{}, ResourceTexture, TextureDescriptor{
			Width: 64, Height: 64, MipLevels: 4, Format: format.A8R8G8B8, Pool: PoolManaged,
		})
		vs := mustViews(t, tex)
		old := vs.Sample

		if err := tex.RecreateSampledView(2); err != nil {
			t.Fatalf("RecreateSampledView failed: %v", err)
		}
		info := viewInfoOf(t, vs.Sample.Color)
		if info.BaseMipLevel != 2 || info.MipLevelCount != 2 {
			t.Errorf("clamped view mips %d+%d, want 2+2", info.BaseMipLevel, info.MipLevelCount)
		}
		if vs.FaceSample[0] != old {
			t.Error("RecreateSampledView touched FaceSample")
		}
		if old.Color.(*mockImageView).destroyed {
			t.Error("view still used by FaceSample[0] was destroyed")
		}
	})

	t.Run("cube", func(t *testing.T) {
		dev := &mockDevice{}
		tex := newTestTexture(t, dev, ResourceCubeTexture, TextureDescriptor{
			Width: 16, Height: 16, Format: format.DXT1, Pool: PoolManaged,
		})
		vs := mustViews(t, tex)
		old := vs.Sample
		faces := vs.FaceSample
		created := dev.viewsCreated

		if err := tex.RecreateSampledView(1); err != nil {
			t.Fatalf("RecreateSampledView failed: %v", err)
		}
		if dev.viewsCreated != created+2 {
			t.Errorf("created %d views, want 2", dev.viewsCreated-created)
		}
		if !old.Color.(*mockImageView).destroyed || !old.Srgb.(*mockImageView).destroyed {
			t.Error("replaced sample views not destroyed")
		}
		if vs.FaceSample != faces {
			t.Error("RecreateSampledView rebuilt face views")
		}
		if d := viewInfoOf(t, vs.Sample.Srgb).Dimension; d != gputypes.TextureViewDimensionCube {
			t.Errorf("clamped cube view dimension = %v", d)
		}
	})

	t.Run("errors", func(t *testing.T) {
		def := newTestTexture(t, &mockDevice{}, ResourceTexture, TextureDescriptor{
			Width: 8, Height: 8, Format: format.A8R8G8B8,
		})
		if err := def.RecreateSampledView(1); !errors.Is(err, ErrInvalidCall) {
			t.Errorf("default pool: err = %v, want ErrInvalidCall", err)
		}
		managed := newTestTexture(t, &mockDevice{}, ResourceTexture, TextureDescriptor{
			Width: 8, Height: 8, Format: format.A8R8G8B8, Pool: PoolManaged,
		})
		if err := managed.RecreateSampledView(4); !errors.Is(err, ErrInvalidCall) {
			t.Errorf("lod past chain: err = %v, want ErrInvalidCall", err)
		}
	})
}

func TestLayoutSelection(t *testing.T) {
	families := []struct {
		name    string
		desc    TextureDescriptor
		optimal Layout
		layout  func(*Texture) Layout
		viewSet func(*ViewSet) Layout
	}{
		{
			name:    "render target",
			desc:    TextureDescriptor{Width: 8, Height: 8, MipLevels: 1, Format: format.A8R8G8B8, Usage: UsageRenderTarget},
			optimal: LayoutColorAttachmentOptimal,
			layout:  (*Texture).RenderTargetLayout,
			viewSet: (*ViewSet).RenderTargetLayout,
		},
		{
			name:    "depth",
			desc:    TextureDescriptor{Width: 8, Height: 8, MipLevels: 1, Format: format.D32, Usage: UsageDepthStencil},
			optimal: LayoutDepthStencilAttachmentOptimal,
			layout:  (*Texture).DepthLayout,
			viewSet: (*ViewSet).DepthLayout,
		},
	}
	for _, fam := range families {
		for _, tiling := range []Tiling{TilingOptimal, TilingLinear} {
			t.Run(fam.name+"/"+tiling.String(), func(t *testing.T) {
				dev := &mockDevice{}
				if tiling == TilingLinear {
					dev.supportsImageFunc = optimalUnsupported
				}
				tex := newTestTexture(t, dev, ResourceTexture, fam.desc)
				want := LayoutGeneral
				if tiling == TilingOptimal {
					want = fam.optimal
				}
				if got := fam.layout(tex); got != want {
					t.Errorf("texture layout = %v, want %v", got, want)
				}
				if got := fam.viewSet(mustViews(t, tex)); got != want {
					t.Errorf("view set layout = %v, want %v", got, want)
				}
			})
		}
	}
}

func TestAttachmentLayout_NilView(t *testing.T) {
	if got := attachmentLayout(nil, LayoutColorAttachmentOptimal); got != LayoutGeneral {
		t.Errorf("attachmentLayout(nil) = %v, want General", got)
	}
	var tex Texture
	if tex.RenderTargetLayout() != LayoutGeneral || tex.DepthLayout() != LayoutGeneral {
		t.Error("texture without image should use the general layout")
	}
}

// valueView is an ImageView held by value whose dynamic type is not
// comparable. Destroy calls are counted per label.
type valueView struct {
	image     Image
	info      ImageViewCreateInfo
	tags      []string
	destroyed map[string]int
}

func (v valueView) Info() ImageViewCreateInfo { return v.info }
func (v valueView) Image() Image              { return v.image }
func (v valueView) Destroy()                  { v.destroyed[v.info.Label]++ }

func valueViewDevice() (*mockDevice, map[string]int) {
	destroyed := make(map[string]int)
	dev := &mockDevice{}
	dev.createImageViewFunc = func(img Image, info *ImageViewCreateInfo) (ImageView, error) {
		return valueView{image: img, info: *info, tags: []string{info.Label}, destroyed: destroyed}, nil
	}
	return dev, destroyed
}

func checkDestroyedOnce(t *testing.T, dev *mockDevice, destroyed map[string]int) {
	t.Helper()
	if len(destroyed) != dev.viewsCreated {
		t.Errorf("%d distinct views destroyed, %d created", len(destroyed), dev.viewsCreated)
	}
	for label, n := range destroyed {
		if n != 1 {
			t.Errorf("view %q destroyed %d times", label, n)
		}
	}
}

func TestViews_NonComparableViews(t *testing.T) {
	t.Run("single layer without srgb", func(t *testing.T) {
		dev, destroyed := valueViewDevice()
		tex, err := NewTexture(dev, &TextureDescriptor{
			Width: 16, Height: 16, MipLevels: 3, Format: format.L8, Pool: PoolManaged,
		}, ResourceTexture)
		if err != nil {
			t.Fatalf("NewTexture failed: %v", err)
		}
		mustViews(t, tex)
		if err := tex.RecreateSampledView(1); err != nil {
			t.Fatalf("RecreateSampledView failed: %v", err)
		}
		if len(destroyed) != 0 {
			t.Errorf("views destroyed before Destroy: %v", destroyed)
		}
		if err := tex.RecreateSampledView(2); err != nil {
			t.Fatalf("second RecreateSampledView failed: %v", err)
		}

		tex.Destroy()
		if dev.viewsCreated != 3 {
			t.Errorf("viewsCreated = %d, want 3", dev.viewsCreated)
		}
		checkDestroyedOnce(t, dev, destroyed)
	})

	t.Run("cube render target", func(t *testing.T) {
		dev, destroyed := valueViewDevice()
		tex, err := NewTexture(dev, &TextureDescriptor{
			Width: 8, Height: 8, MipLevels: 1, Format: format.X8R8G8B8, Usage: UsageRenderTarget,
		}, ResourceCubeTexture)
		if err != nil {
			t.Fatalf("NewTexture failed: %v", err)
		}
		mustViews(t, tex)

		tex.Destroy()
		if dev.viewsCreated != 26 {
			t.Errorf("viewsCreated = %d, want 26", dev.viewsCreated)
		}
		checkDestroyedOnce(t, dev, destroyed)
	})
}
