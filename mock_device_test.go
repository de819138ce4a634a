package legacytex

import (
	"errors"

	"github.com/gogpu/legacytex/format"
)

// =============================================================================
// Mock Types for Testing
// =============================================================================

// mockDevice is a test double for Device.
type mockDevice struct {
	supportsImageFunc   func(*ImageCreateInfo, Tiling) bool
	createImageFunc     func(*ImageCreateInfo) (Image, error)
	createBufferFunc    func(*BufferCreateInfo) (Buffer, error)
	createImageViewFunc func(Image, *ImageViewCreateInfo) (ImageView, error)

	// Track calls for verification
	imagesCreated  int
	buffersCreated int
	viewsCreated   int
	supportQueries []Tiling

	images  []*mockImage
	buffers []*mockBuffer
	views   []*mockImageView
}

func (d *mockDevice) CreateImage(info *ImageCreateInfo) (Image, error) {
	d.imagesCreated++
	if d.createImageFunc != nil {
		return d.createImageFunc(info)
	}
	img := &mockImage{info: *info}
	d.images = append(d.images, img)
	return img, nil
}

func (d *mockDevice) CreateBuffer(info *BufferCreateInfo) (Buffer, error) {
	d.buffersCreated++
	if d.createBufferFunc != nil {
		return d.createBufferFunc(info)
	}
	buf := &mockBuffer{info: *info}
	d.buffers = append(d.buffers, buf)
	return buf, nil
}

func (d *mockDevice) CreateImageView(img Image, info *ImageViewCreateInfo) (ImageView, error) {
	d.viewsCreated++
	if d.createImageViewFunc != nil {
		return d.createImageViewFunc(img, info)
	}
	view := &mockImageView{image: img, info: *info}
	d.views = append(d.views, view)
	return view, nil
}

func (d *mockDevice) SupportsImage(info *ImageCreateInfo, tiling Tiling) bool {
	d.supportQueries = append(d.supportQueries, tiling)
	if d.supportsImageFunc != nil {
		return d.supportsImageFunc(info, tiling)
	}
	return true
}

func (d *mockDevice) LookupFormat(f format.Format) format.Mapping {
	return format.DefaultMapping(f)
}

// liveViews counts views that have not been destroyed.
func (d *mockDevice) liveViews() int {
	n := 0
	for _, v := range d.views {
		if !v.destroyed {
			n++
		}
	}
	return n
}

// reportingDevice adds a memory budget to mockDevice.
type reportingDevice struct {
	mockDevice
	available int64
}

func (d *reportingDevice) ChangeReportedMemory(delta int64) bool {
	if d.available+delta < 0 {
		return false
	}
	d.available += delta
	return true
}

// mockImage is a test double for Image.
type mockImage struct {
	info      ImageCreateInfo
	destroyed bool
}

func (i *mockImage) Info() ImageCreateInfo { return i.info }
func (i *mockImage) Destroy()              { i.destroyed = true }

// mockBuffer is a test double for Buffer.
type mockBuffer struct {
	info      BufferCreateInfo
	destroyed bool
}

func (b *mockBuffer) Size() uint64 { return b.info.Size }
func (b *mockBuffer) Destroy()     { b.destroyed = true }

// mockImageView is a test double for ImageView.
type mockImageView struct {
	image     Image
	info      ImageViewCreateInfo
	destroyed bool
}

func (v *mockImageView) Info() ImageViewCreateInfo { return v.info }
func (v *mockImageView) Image() Image              { return v.image }
func (v *mockImageView) Destroy()                  { v.destroyed = true }

var errDeviceOOM = errors.New("mock: out of device memory")
