package main

import (
	"github.com/gogpu/legacytex"
	"github.com/gogpu/legacytex/backend/native"
	"github.com/gogpu/legacytex/format"
)

// dryRunDevice accepts every object the native backend would accept and
// records it instead of allocating anything.
type dryRunDevice struct {
	limits native.Limits
	budget *native.MemoryBudget

	images  []*dryImage
	buffers []*dryBuffer
	views   []*dryView
}

func newDryRunDevice(limits native.Limits, budgetMB int) *dryRunDevice {
	return &dryRunDevice{limits: limits, budget: native.NewMemoryBudget(budgetMB)}
}

type dryImage struct {
	info      legacytex.ImageCreateInfo
	destroyed bool
}

func (i *dryImage) Info() legacytex.ImageCreateInfo { return i.info }
func (i *dryImage) Destroy()                        { i.destroyed = true }

type dryBuffer struct {
	info      legacytex.BufferCreateInfo
	destroyed bool
}

func (b *dryBuffer) Size() uint64 { return b.info.Size }
func (b *dryBuffer) Destroy()     { b.destroyed = true }

type dryView struct {
	info      legacytex.ImageViewCreateInfo
	image     *dryImage
	destroyed bool
}

func (v *dryView) Info() legacytex.ImageViewCreateInfo { return v.info }
func (v *dryView) Image() legacytex.Image              { return v.image }
func (v *dryView) Destroy()                            { v.destroyed = true }

func (d *dryRunDevice) CreateImage(info *legacytex.ImageCreateInfo) (legacytex.Image, error) {
	img := &dryImage{info: *info}
	d.images = append(d.images, img)
	return img, nil
}

func (d *dryRunDevice) CreateBuffer(info *legacytex.BufferCreateInfo) (legacytex.Buffer, error) {
	buf := &dryBuffer{info: *info}
	d.buffers = append(d.buffers, buf)
	return buf, nil
}

func (d *dryRunDevice) CreateImageView(img legacytex.Image, info *legacytex.ImageViewCreateInfo) (legacytex.ImageView, error) {
	view := &dryView{info: *info, image: img.(*dryImage)}
	d.views = append(d.views, view)
	return view, nil
}

func (d *dryRunDevice) SupportsImage(info *legacytex.ImageCreateInfo, tiling legacytex.Tiling) bool {
	return d.limits.SupportsImage(info, tiling)
}

func (d *dryRunDevice) LookupFormat(f format.Format) format.Mapping {
	return format.DefaultMapping(f)
}

func (d *dryRunDevice) ChangeReportedMemory(delta int64) bool {
	return d.budget.ChangeReportedMemory(delta)
}

// liveViews returns the views that are still in use.
func (d *dryRunDevice) liveViews() []*dryView {
	var live []*dryView
	for _, v := range d.views {
		if !v.destroyed {
			live = append(live, v)
		}
	}
	return live
}
