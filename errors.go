package legacytex

import "github.com/cockroachdb/errors"

// Texture errors.
//
// Every error returned by this package can be classified with errors.Is
// against one of these values, or is a device error passed through
// unchanged with added context.
var (
	// ErrInvalidCall is returned for malformed or self-contradictory
	// texture descriptors and for calls that are illegal for the
	// texture's pool or map mode.
	ErrInvalidCall = errors.New("legacytex: invalid call")

	// ErrOutOfLimits is returned when a descriptor exceeds the declared
	// limits, such as more mip levels than the extent supports.
	ErrOutOfLimits = errors.New("legacytex: out of declared limits")

	// ErrUnsupported is returned when the device cannot create the
	// primary image under any tiling.
	ErrUnsupported = errors.New("legacytex: image capability not supported")

	// ErrOutOfVideoMemory is returned when the device memory tracker
	// refuses the texture's memory consumption.
	ErrOutOfVideoMemory = errors.New("legacytex: out of video memory")

	// ErrNilDevice is returned when creating a texture without a device.
	ErrNilDevice = errors.New("legacytex: device is nil")

	// ErrInvalidSubresource is returned for subresource indices outside
	// [0, CountSubresources()).
	ErrInvalidSubresource = errors.New("legacytex: subresource index out of range")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("legacytex: texture has been destroyed")
)
