package native

// Default device limits, matching the guaranteed WebGPU limits.
const (
	DefaultMaxTextureDimension2D = 8192
	DefaultMaxTextureDimension3D = 2048
	DefaultMaxArrayLayers        = 256
)

// Limits bound the images a Device reports as supported.
type Limits struct {
	// MaxTextureDimension2D is the largest width or height of a 2D image.
	MaxTextureDimension2D uint32

	// MaxTextureDimension3D is the largest extent of a 3D image.
	MaxTextureDimension3D uint32

	// MaxArrayLayers is the largest array layer count of a 2D image.
	MaxArrayLayers uint32

	// LinearTiling enables linearly tiled images. The hal layer allocates
	// every texture with driver-chosen tiling, so linear images are only
	// reported when the backend exposes host-visible textures.
	LinearTiling bool
}

// DefaultLimits returns the guaranteed limits.
func DefaultLimits() Limits {
	return Limits{
		MaxTextureDimension2D: DefaultMaxTextureDimension2D,
		MaxTextureDimension3D: DefaultMaxTextureDimension3D,
		MaxArrayLayers:        DefaultMaxArrayLayers,
	}
}

// withDefaults fills zero limits from DefaultLimits.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxTextureDimension2D == 0 {
		l.MaxTextureDimension2D = d.MaxTextureDimension2D
	}
	if l.MaxTextureDimension3D == 0 {
		l.MaxTextureDimension3D = d.MaxTextureDimension3D
	}
	if l.MaxArrayLayers == 0 {
		l.MaxArrayLayers = d.MaxArrayLayers
	}
	return l
}

// Config holds configuration for creating a Device.
type Config struct {
	// Limits bound supported images. Zero fields use DefaultLimits.
	Limits Limits

	// MaxMemoryMB is the video memory budget textures report against.
	// Defaults to DefaultMaxMemoryMB if below MinMemoryMB.
	MaxMemoryMB int
}
