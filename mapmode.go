package legacytex

import "github.com/gogpu/legacytex/format"

// MapMode is the way a texture's contents are made reachable by the CPU.
type MapMode uint8

// Map modes.
const (
	// MapModeUnmapped textures have no storage at all.
	MapModeUnmapped MapMode = iota

	// MapModeDeviceBacked textures own a device image and map through
	// per-subresource staging buffers.
	MapModeDeviceBacked

	// MapModeBufferOnly textures live in host-visible buffers only.
	MapModeBufferOnly
)

func (m MapMode) String() string {
	switch m {
	case MapModeUnmapped:
		return "Unmapped"
	case MapModeDeviceBacked:
		return "DeviceBacked"
	case MapModeBufferOnly:
		return "BufferOnly"
	}
	return "MapMode(?)"
}

// DetermineMapMode derives the map mode of a texture from its format and
// pool.
func DetermineMapMode(f format.Format, pool Pool) MapMode {
	if f == format.NULL {
		return MapModeUnmapped
	}
	if pool == PoolSystemMem || pool == PoolScratch {
		return MapModeBufferOnly
	}
	return MapModeDeviceBacked
}
