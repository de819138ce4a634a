// Package legacytex realizes legacy texture objects on a modern explicit
// graphics device.
//
// # Overview
//
// A legacy texture is described by a TextureDescriptor: a pixel format in
// the legacy numbering, a memory pool, usage flags and a shape (surface,
// 2D texture, cube texture or volume texture). NewTexture normalizes the
// descriptor and decides how the texture is backed:
//
//   - Device-backed textures own a primary image on the device. The CPU
//     reaches their contents through per-subresource staging buffers.
//   - Buffer-only textures (SystemMem and Scratch pools) live in
//     host-visible buffers and never touch the device image path.
//   - Textures in the NULL format have no storage at all.
//
// # Quick Start
//
//	dev, _ := native.NewDevice(halDevice, native.Config{})
//
//	tex, err := legacytex.NewTexture(dev, &legacytex.TextureDescriptor{
//		Width:  256,
//		Height: 256,
//		Format: format.A8R8G8B8,
//		Pool:   legacytex.PoolManaged,
//	}, legacytex.ResourceTexture)
//	if err != nil {
//		return err
//	}
//	defer tex.Destroy()
//
//	views, err := tex.Views()
//
// # Lazily Created Objects
//
// Staging buffers (EnsureBuffer), the single-sample resolve image
// (ResolveImage) and the view set (Views) are created on first use and
// kept until Destroy. Formats the device cannot store natively, such as
// 24-bit R8G8B8, get a second fixup buffer per subresource holding the
// converted data; see package format.
//
// # Devices
//
// The Device interface is the only way the package reaches the GPU.
// backend/native implements it on top of a gogpu/wgpu hal device and
// tracks reported video memory against a budget.
//
// # Concurrency
//
// A Texture is not safe for concurrent use. All calls on a texture must
// come from the goroutine that owns the rendering context. SetLogger and
// Logger may be called from any goroutine.
package legacytex

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
