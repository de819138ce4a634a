package native

import "github.com/cockroachdb/errors"

// Backend errors.
var (
	// ErrNilHALDevice is returned when creating a device without a hal device.
	ErrNilHALDevice = errors.New("native: hal device is nil")

	// ErrForeignImage is returned when a view is requested for an image
	// that was not created by the same Device.
	ErrForeignImage = errors.New("native: image belongs to another device")

	// ErrImageDestroyed is returned when creating a view of a destroyed image.
	ErrImageDestroyed = errors.New("native: image has been destroyed")

	// ErrInvalidExtent is returned for images or buffers of zero size.
	ErrInvalidExtent = errors.New("native: invalid extent")
)
