package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilled(w, h int, fill Terrain) []Terrain {
	m := make([]Terrain, w*h)
	for i := range m {
		m[i] = fill
	}
	return m
}

func TestTerrainOf_ExactMatch(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want Terrain
		ok   bool
	}{
		{"drivable", RGB{0, 0, 0}, Drivable, true},
		{"wall", RGB{255, 255, 255}, Wall, true},
		{"start marker", RGB{0, 0, 255}, StartMarker, true},
		{"slow down", RGB{0, 255, 0}, SlowDown, true},
		{"near wall is not wall", RGB{254, 255, 255}, Drivable, false},
		{"near slow down", RGB{0, 254, 0}, Drivable, false},
		{"red", RGB{255, 0, 0}, Drivable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TerrainOf(tt.c)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTerrain_ColorRoundTrip(t *testing.T) {
	for _, tr := range []Terrain{Drivable, Wall, SlowDown, StartMarker} {
		got, ok := TerrainOf(tr.Color())
		require.True(t, ok, tr.String())
		assert.Equal(t, tr, got)
	}
}

func TestClassify_OutOfBoundsIsWall(t *testing.T) {
	tr := New(10, 10, newFilled(10, 10, Drivable), nil)

	tests := []struct {
		name string
		x, y float64
	}{
		{"left", -0.01, 5},
		{"top", 5, -0.5},
		{"right edge", 10, 5},
		{"bottom edge", 5, 10},
		{"far away", 1e9, -1e9},
		{"nan", math.NaN(), 5},
		{"inf", math.Inf(1), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Wall, tr.Classify(tt.x, tt.y))
		})
	}
	assert.Equal(t, Drivable, tr.Classify(0, 0))
	assert.Equal(t, Drivable, tr.Classify(9.99, 9.99))
}

func TestClassify_FloorsCoordinate(t *testing.T) {
	mask := newFilled(4, 4, Drivable)
	mask[1*4+2] = SlowDown
	tr := New(4, 4, mask, nil)

	assert.Equal(t, SlowDown, tr.Classify(2.0, 1.0))
	assert.Equal(t, SlowDown, tr.Classify(2.9, 1.9))
	assert.Equal(t, Drivable, tr.Classify(1.99, 1.5))
	assert.Equal(t, Drivable, tr.Classify(3.0, 1.5))
	assert.Equal(t, SlowDown, tr.At(2, 1))
	assert.Equal(t, Wall, tr.At(-1, 0))
}

func TestStartPositions_RowMajorOrder(t *testing.T) {
	mask := newFilled(8, 8, Drivable)
	mask[5*8+1] = StartMarker
	mask[2*8+6] = StartMarker
	mask[2*8+3] = StartMarker
	tr := New(8, 8, mask, nil)

	assert.Equal(t, []Point{{3, 2}, {6, 2}, {1, 5}}, tr.StartPositions())
}

func TestStartPositions_ReturnsCopy(t *testing.T) {
	mask := newFilled(4, 4, Drivable)
	mask[0] = StartMarker
	tr := New(4, 4, mask, nil)

	got := tr.StartPositions()
	got[0] = Point{X: 3, Y: 3}
	assert.Equal(t, []Point{{0, 0}}, tr.StartPositions())
}

func TestNew_MaskVisual(t *testing.T) {
	mask := []Terrain{Drivable, Wall, SlowDown, StartMarker}
	tr := New(2, 2, mask, nil)

	px := tr.Visual()
	require.Len(t, px, 16)
	assert.Equal(t, []uint8{255, 255, 255, 255}, px[4:8])
	assert.Equal(t, []uint8{0, 0, 255, 255}, px[12:16])
	assert.False(t, tr.IsFallback())
}

func TestNew_PanicsOnSizeMismatch(t *testing.T) {
	assert.Panics(t, func() { New(3, 3, make([]Terrain, 8), nil) })
}
