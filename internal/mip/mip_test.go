package mip

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func ext(w, h, d uint32) gputypes.Extent3D {
	return gputypes.Extent3D{Width: w, Height: h, DepthOrArrayLayers: d}
}

func TestLevelCount(t *testing.T) {
	tests := []struct {
		e    gputypes.Extent3D
		want uint32
	}{
		{ext(1, 1, 1), 1},
		{ext(2, 1, 1), 2},
		{ext(256, 256, 1), 9},
		{ext(256, 3, 1), 9},
		{ext(300, 200, 1), 9},
		{ext(4, 4, 64), 7},
		{ext(16384, 16384, 1), 15},
		{ext(0, 0, 0), 1},
	}
	for _, tt := range tests {
		if got := LevelCount(tt.e); got != tt.want {
			t.Errorf("LevelCount(%+v) = %d, want %d", tt.e, got, tt.want)
		}
	}
}

func TestLevelExtent(t *testing.T) {
	base := ext(256, 64, 8)
	tests := []struct {
		level uint32
		want  gputypes.Extent3D
	}{
		{0, ext(256, 64, 8)},
		{1, ext(128, 32, 4)},
		{3, ext(32, 8, 1)},
		{6, ext(4, 1, 1)},
		{8, ext(1, 1, 1)},
		{40, ext(1, 1, 1)},
	}
	for _, tt := range tests {
		got := LevelExtent(base, tt.level)
		if got != tt.want {
			t.Errorf("LevelExtent(%d) = %+v, want %+v", tt.level, got, tt.want)
		}
		if again := LevelExtent(base, tt.level); again != got {
			t.Errorf("LevelExtent(%d) not stable: %+v then %+v", tt.level, got, again)
		}
	}
}

func TestFootprint(t *testing.T) {
	tests := []struct {
		name string
		e    gputypes.Extent3D
		size uint32
		bw   uint32
		want uint64
	}{
		{"rgba", ext(64, 64, 1), 4, 1, 64 * 64 * 4},
		{"rgb", ext(3, 5, 1), 3, 1, 45},
		{"bc1", ext(64, 64, 1), 8, 4, 16 * 16 * 8},
		{"bc1 partial block", ext(2, 2, 1), 8, 4, 8},
		{"bc3 odd", ext(5, 9, 1), 16, 4, 2 * 3 * 16},
		{"volume", ext(8, 8, 4), 2, 1, 8 * 8 * 4 * 2},
		{"empty format", ext(16, 16, 1), 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Footprint(tt.e, tt.size, tt.bw, tt.bw); got != tt.want {
				t.Errorf("Footprint = %d, want %d", got, tt.want)
			}
		})
	}
}
