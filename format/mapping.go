package format

import "github.com/gogpu/gputypes"

// Aspect is a set of image aspects.
type Aspect uint8

// Image aspects.
const (
	AspectColor Aspect = 1 << iota
	AspectDepth
	AspectStencil
)

// Has reports whether every aspect in o is set in a.
func (a Aspect) Has(o Aspect) bool { return a&o == o }

// TextureAspect converts a to the aspect selector used by view creation.
func (a Aspect) TextureAspect() gputypes.TextureAspect {
	switch {
	case a == AspectDepth:
		return gputypes.TextureAspectDepthOnly
	case a == AspectStencil:
		return gputypes.TextureAspectStencilOnly
	default:
		return gputypes.TextureAspectAll
	}
}

// Component selects the source of one channel in a Swizzle.
type Component uint8

// Swizzle components. Identity keeps the channel in place.
const (
	Identity Component = iota
	Zero
	One
	R
	G
	B
	A
)

// Swizzle is a per-channel component mapping.
type Swizzle struct {
	R, G, B, A Component
}

// IsIdentity reports whether s leaves every channel in place.
func (s Swizzle) IsIdentity() bool {
	return s == Swizzle{} || s == Swizzle{R, G, B, A}
}

// Mapping describes how a legacy format is stored on the device.
type Mapping struct {
	// Format is the native format of images and views.
	Format gputypes.TextureFormat

	// FormatSrgb is the sRGB twin of Format, or TextureFormatUndefined
	// when the format cannot be read with sRGB correction.
	FormatSrgb gputypes.TextureFormat

	Aspect  Aspect
	Swizzle Swizzle
}

// IsValid reports whether the mapping names a native format.
func (m Mapping) IsValid() bool { return m.Format != gputypes.TextureFormatUndefined }

// HasSrgb reports whether the mapping has an sRGB twin.
func (m Mapping) HasSrgb() bool { return m.FormatSrgb != gputypes.TextureFormatUndefined }

var (
	opaque    = Swizzle{Identity, Identity, Identity, One}
	alphaOnly = Swizzle{Zero, Zero, Zero, R}
	luminance = Swizzle{R, R, R, One}
	lumAlpha  = Swizzle{R, R, R, G}
	oneRed    = Swizzle{Identity, One, One, One}
	twoRG     = Swizzle{Identity, Identity, One, One}
)

func color(f, srgb gputypes.TextureFormat, s Swizzle) Mapping {
	return Mapping{Format: f, FormatSrgb: srgb, Aspect: AspectColor, Swizzle: s}
}

func depthStencil(f gputypes.TextureFormat, stencil bool) Mapping {
	m := Mapping{Format: f, Aspect: AspectDepth}
	if stencil {
		m.Aspect |= AspectStencil
	}
	return m
}

var mappings = map[Format]Mapping{
	R8G8B8:        color(gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb, opaque),
	A8R8G8B8:      color(gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb, Swizzle{}),
	X8R8G8B8:      color(gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb, opaque),
	A8B8G8R8:      color(gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb, Swizzle{}),
	X8B8G8R8:      color(gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb, opaque),
	A2B10G10R10:   color(gputypes.TextureFormatRGB10A2Unorm, gputypes.TextureFormatUndefined, Swizzle{}),
	A8:            color(gputypes.TextureFormatR8Unorm, gputypes.TextureFormatUndefined, alphaOnly),
	L8:            color(gputypes.TextureFormatR8Unorm, gputypes.TextureFormatUndefined, luminance),
	A8L8:          color(gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatUndefined, lumAlpha),
	R16F:          color(gputypes.TextureFormatR16Float, gputypes.TextureFormatUndefined, oneRed),
	G16R16F:       color(gputypes.TextureFormatRG16Float, gputypes.TextureFormatUndefined, twoRG),
	A16B16G16R16F: color(gputypes.TextureFormatRGBA16Float, gputypes.TextureFormatUndefined, Swizzle{}),
	R32F:          color(gputypes.TextureFormatR32Float, gputypes.TextureFormatUndefined, oneRed),
	G32R32F:       color(gputypes.TextureFormatRG32Float, gputypes.TextureFormatUndefined, twoRG),
	A32B32G32R32F: color(gputypes.TextureFormatRGBA32Float, gputypes.TextureFormatUndefined, Swizzle{}),
	DXT1:          color(gputypes.TextureFormatBC1RGBAUnorm, gputypes.TextureFormatBC1RGBAUnormSrgb, Swizzle{}),
	DXT2:          color(gputypes.TextureFormatBC2RGBAUnorm, gputypes.TextureFormatBC2RGBAUnormSrgb, Swizzle{}),
	DXT3:          color(gputypes.TextureFormatBC2RGBAUnorm, gputypes.TextureFormatBC2RGBAUnormSrgb, Swizzle{}),
	DXT4:          color(gputypes.TextureFormatBC3RGBAUnorm, gputypes.TextureFormatBC3RGBAUnormSrgb, Swizzle{}),
	DXT5:          color(gputypes.TextureFormatBC3RGBAUnorm, gputypes.TextureFormatBC3RGBAUnormSrgb, Swizzle{}),
	D16:           depthStencil(gputypes.TextureFormatDepth16Unorm, false),
	D24X8:         depthStencil(gputypes.TextureFormatDepth24Plus, false),
	D24S8:         depthStencil(gputypes.TextureFormatDepth24PlusStencil8, true),
	D24FS8:        depthStencil(gputypes.TextureFormatDepth24PlusStencil8, true),
	D32:           depthStencil(gputypes.TextureFormatDepth32Float, false),
	D32FLockable:  depthStencil(gputypes.TextureFormatDepth32Float, false),
	INTZ:          depthStencil(gputypes.TextureFormatDepth24PlusStencil8, true),
	DF16:          depthStencil(gputypes.TextureFormatDepth16Unorm, false),
	DF24:          depthStencil(gputypes.TextureFormatDepth24Plus, false),
}

// DefaultMapping returns the native realization of f. Formats without a
// native representation, NULL included, return an invalid Mapping.
func DefaultMapping(f Format) Mapping {
	return mappings[f]
}
