// Package mip implements mip chain arithmetic shared by the texture engine.
//
// Extents use gputypes.Extent3D with DepthOrArrayLayers carrying the depth
// of volume images; array layers never take part in mip reduction.
package mip

import (
	"math/bits"

	"github.com/gogpu/gputypes"
)

// LevelCount returns the length of the full mip chain of e, down to 1x1x1.
func LevelCount(e gputypes.Extent3D) uint32 {
	m := max(e.Width, e.Height, e.DepthOrArrayLayers, 1)
	return uint32(bits.Len32(m))
}

// LevelExtent returns the extent of mip level of e. Each dimension is
// halved per level and floored at 1.
func LevelExtent(e gputypes.Extent3D, level uint32) gputypes.Extent3D {
	return gputypes.Extent3D{
		Width:              reduce(e.Width, level),
		Height:             reduce(e.Height, level),
		DepthOrArrayLayers: reduce(e.DepthOrArrayLayers, level),
	}
}

func reduce(v, level uint32) uint32 {
	if level >= 32 {
		return 1
	}
	return max(v>>level, 1)
}

// BlockCount returns the number of blockW x blockH elements covering e.
func BlockCount(e gputypes.Extent3D, blockW, blockH uint32) gputypes.Extent3D {
	return gputypes.Extent3D{
		Width:              divCeil(e.Width, blockW),
		Height:             divCeil(e.Height, blockH),
		DepthOrArrayLayers: max(e.DepthOrArrayLayers, 1),
	}
}

func divCeil(v, d uint32) uint32 {
	if d <= 1 {
		return v
	}
	return (v + d - 1) / d
}

// Footprint returns the packed size in bytes of an extent stored with the
// given element size and block dimensions.
func Footprint(e gputypes.Extent3D, elementSize, blockW, blockH uint32) uint64 {
	b := BlockCount(e, blockW, blockH)
	return uint64(elementSize) * uint64(b.Width) * uint64(b.Height) * uint64(b.DepthOrArrayLayers)
}
