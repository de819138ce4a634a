package legacytex

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/google/uuid"

	"github.com/gogpu/legacytex/format"
	"github.com/gogpu/legacytex/internal/mip"
)

// LockFlags record how a subresource was last mapped.
type LockFlags uint32

// Lock flags.
const (
	LockReadOnly      LockFlags = 0x10
	LockNoSysLock     LockFlags = 0x800
	LockNoOverwrite   LockFlags = 0x1000
	LockDiscard       LockFlags = 0x2000
	LockDoNotWait     LockFlags = 0x4000
	LockNoDirtyUpdate LockFlags = 0x8000
)

// Has reports whether all flags in f are set.
func (l LockFlags) Has(f LockFlags) bool { return l&f == f }

// Subresource addresses one mip level of one array layer.
type Subresource struct {
	Aspect     format.Aspect
	MipLevel   uint32
	ArrayLayer uint32
}

// Texture is the device realization of one legacy texture object.
//
// A Texture decides at construction how the texture is backed (see
// MapMode), creates its primary image when it has one, and creates
// staging buffers, fixup buffers, the resolve image and views lazily on
// first use.
//
// Texture performs no locking. All calls must come from the goroutine that
// owns the rendering context.
type Texture struct {
	device Device
	desc   TextureDescriptor
	rtype  ResourceType

	id    uuid.UUID
	label string

	mapMode MapMode
	mapping format.Mapping
	fixup   bool
	shadow  bool

	image        Image
	resolveImage Image

	// Indexed by subresource, sized once to ArraySize * MipLevels.
	buffers      []Buffer
	fixupBuffers []Buffer
	lockFlags    []LockFlags

	views *ViewSet

	reportedMemory int64
	destroyed      bool
}

type options struct {
	label string
}

// Option configures NewTexture.
type Option func(*options)

// WithLabel sets the debug label prefix of every device object the
// texture creates. The default is "tex-" followed by the texture ID.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// NewTexture creates the texture described by desc on device.
//
// desc is copied and normalized; errors from Normalize are returned before
// any device object is created. When the texture is device backed the
// primary image is created here, and failure to create it fails the whole
// construction.
func NewTexture(device Device, desc *TextureDescriptor, rtype ResourceType, opts ...Option) (*Texture, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if desc == nil {
		return nil, errors.Wrap(ErrInvalidCall, "nil texture descriptor")
	}

	d := *desc
	if err := Normalize(rtype, &d); err != nil {
		return nil, err
	}

	t := &Texture{
		device:  device,
		desc:    d,
		rtype:   rtype,
		id:      uuid.New(),
		mapMode: DetermineMapMode(d.Format, d.Pool),
		fixup:   format.NeedsFixup(d.Format),
		shadow:  detectShadow(d.Format),
	}
	t.mapping = device.LookupFormat(d.Format)

	o := options{label: "tex-" + t.id.String()[:8]}
	for _, opt := range opts {
		opt(&o)
	}
	t.label = o.label

	n := t.CountSubresources()
	t.buffers = make([]Buffer, n)
	t.fixupBuffers = make([]Buffer, n)
	t.lockFlags = make([]LockFlags, n)

	if err := t.reportMemory(); err != nil {
		return nil, err
	}

	if t.mapMode == MapModeDeviceBacked {
		img, err := t.createPrimaryImage()
		if err != nil {
			t.returnMemory()
			return nil, err
		}
		t.image = img
	}

	Logger().Debug("legacytex: texture created",
		"label", t.label,
		"type", rtype.String(),
		"format", d.Format.String(),
		"pool", d.Pool.String(),
		"mapMode", t.mapMode.String(),
		"subresources", n)
	return t, nil
}

// detectShadow reports whether textures of format f are sampled through a
// depth-compare sampler.
func detectShadow(f format.Format) bool {
	return f.IsDepth() && !f.IsRawDepthFetch()
}

// ID returns the unique identity of the texture.
func (t *Texture) ID() uuid.UUID { return t.id }

// Label returns the debug label prefix of the texture.
func (t *Texture) Label() string { return t.label }

// Descriptor returns a copy of the normalized descriptor.
func (t *Texture) Descriptor() TextureDescriptor { return t.desc }

// ResourceType returns the dimensionality of the texture.
func (t *Texture) ResourceType() ResourceType { return t.rtype }

// Format returns the native format of the texture's images.
func (t *Texture) Format() gputypes.TextureFormat { return t.mapping.Format }

// FormatMapping returns the native realization of the legacy format.
func (t *Texture) FormatMapping() format.Mapping { return t.mapping }

// CountSubresources returns ArraySize * MipLevels.
func (t *Texture) CountSubresources() uint32 {
	return t.desc.ArraySize * t.desc.MipLevels
}

// MapMode returns how the texture is backed.
func (t *Texture) MapMode() MapMode { return t.mapMode }

// Image returns the primary device image, or nil unless the texture is
// device backed.
func (t *Texture) Image() Image { return t.image }

// IsShadow reports whether the texture is sampled with depth comparison.
func (t *Texture) IsShadow() bool { return t.shadow }

// IsManaged reports whether the texture lives in the managed pool.
func (t *Texture) IsManaged() bool { return t.desc.Pool == PoolManaged }

// IsAutomaticMip reports whether the texture generates its mip chain.
func (t *Texture) IsAutomaticMip() bool { return t.desc.Usage.Has(UsageAutoGenMipMap) }

// IsDestroyed reports whether Destroy has been called.
func (t *Texture) IsDestroyed() bool { return t.destroyed }

func (t *Texture) validSubresource(sub uint32) bool {
	return sub < t.CountSubresources()
}

// LockFlags returns the flags the subresource was last mapped with.
// Out of range indices report no flags.
func (t *Texture) LockFlags(sub uint32) LockFlags {
	if !t.validSubresource(sub) {
		return 0
	}
	return t.lockFlags[sub]
}

// SetLockFlags records the flags a subresource is mapped with.
func (t *Texture) SetLockFlags(sub uint32, flags LockFlags) error {
	if !t.validSubresource(sub) {
		return errors.Wrapf(ErrInvalidSubresource, "subresource %d of %d", sub, t.CountSubresources())
	}
	t.lockFlags[sub] = flags
	return nil
}

// CalcSubresource returns the subresource index of a face (array slice)
// and mip level.
func (t *Texture) CalcSubresource(face, mipLevel uint32) uint32 {
	return face*t.desc.MipLevels + mipLevel
}

// SubresourceFromIndex splits a subresource index into its mip level and
// array layer.
func (t *Texture) SubresourceFromIndex(aspect format.Aspect, sub uint32) Subresource {
	return Subresource{
		Aspect:     aspect,
		MipLevel:   sub % t.desc.MipLevels,
		ArrayLayer: sub / t.desc.MipLevels,
	}
}

// Extent returns the extent of the top-level mip.
func (t *Texture) Extent() gputypes.Extent3D { return t.desc.Extent() }

// MipExtent returns the extent of the mip level addressed by sub.
func (t *Texture) MipExtent(sub uint32) gputypes.Extent3D {
	return mip.LevelExtent(t.Extent(), sub%t.desc.MipLevels)
}

// MipSize returns the packed size in bytes of subresource sub in the
// legacy format.
func (t *Texture) MipSize(sub uint32) uint64 {
	info := t.desc.Format.Info()
	return mip.Footprint(t.MipExtent(sub), info.ElementSize, info.BlockWidth, info.BlockHeight)
}

// MemoryConsumption returns the memory reported for the texture, or zero
// for textures in host pools.
func (t *Texture) MemoryConsumption() int64 { return t.reportedMemory }

func (t *Texture) determineMemoryConsumption() int64 {
	var size uint64
	for i := range t.CountSubresources() {
		size += t.MipSize(i)
	}
	return int64(size)
}

func (t *Texture) reportMemory() error {
	if t.desc.Pool == PoolSystemMem || t.desc.Pool == PoolScratch {
		return nil
	}
	r, ok := t.device.(MemoryReporter)
	if !ok {
		return nil
	}
	size := t.determineMemoryConsumption()
	if !r.ChangeReportedMemory(-size) {
		return errors.Wrapf(ErrOutOfVideoMemory, "%s needs %d bytes", t.label, size)
	}
	t.reportedMemory = size
	return nil
}

func (t *Texture) returnMemory() {
	if t.reportedMemory == 0 {
		return
	}
	if r, ok := t.device.(MemoryReporter); ok && !r.ChangeReportedMemory(t.reportedMemory) {
		Logger().Warn("legacytex: reported memory not returned", "label", t.label, "bytes", t.reportedMemory)
	}
	t.reportedMemory = 0
}

// Destroy releases every device object the texture owns and returns its
// reported memory. Destroy is idempotent.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true

	if t.views != nil {
		t.views.destroy()
		t.views = nil
	}
	for i := range t.buffers {
		t.ReleaseBuffer(uint32(i))
	}
	if t.resolveImage != nil {
		t.resolveImage.Destroy()
		t.resolveImage = nil
	}
	if t.image != nil {
		t.image.Destroy()
		t.image = nil
	}
	t.returnMemory()
}
