package track

import "math"

// Logical resolution every raster is scaled to.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Track is a fixed-size terrain raster plus the visual image drawn under the
// cars. It is never mutated after construction and may be shared freely.
type Track struct {
	width  int
	height int

	mask   []Terrain
	visual []uint8 // RGBA8, row-major

	starts   []Point
	fallback bool
}

// New builds a track from a row-major terrain slice. visual may be nil, in
// which case the mask colours are used as the visual.
func New(width, height int, mask []Terrain, visual []uint8) *Track {
	if width <= 0 || height <= 0 || len(mask) != width*height {
		panic("track: mask size does not match dimensions")
	}
	t := &Track{
		width:  width,
		height: height,
		mask:   mask,
		visual: visual,
	}
	if t.visual == nil {
		t.visual = maskVisual(mask)
	}
	t.findStartPositions()
	return t
}

func maskVisual(mask []Terrain) []uint8 {
	px := make([]uint8, len(mask)*4)
	for i, m := range mask {
		c := m.Color()
		o := i * 4
		px[o+0] = c.R
		px[o+1] = c.G
		px[o+2] = c.B
		px[o+3] = 255
	}
	return px
}

// findStartPositions records every StartMarker pixel in row-major order.
func (t *Track) findStartPositions() {
	t.starts = t.starts[:0]
	for y := 0; y < t.height; y++ {
		row := y * t.width
		for x := 0; x < t.width; x++ {
			if t.mask[row+x] == StartMarker {
				t.starts = append(t.starts, Point{X: x, Y: y})
			}
		}
	}
}

func (t *Track) Width() int  { return t.width }
func (t *Track) Height() int { return t.height }

// IsFallback reports whether the track was generated procedurally.
func (t *Track) IsFallback() bool { return t.fallback }

// Visual returns the RGBA8 pixels of the visual raster. Callers must not
// modify the slice.
func (t *Track) Visual() []uint8 { return t.visual }

// At returns the terrain of an integer pixel. Out of bounds is Wall.
func (t *Track) At(px, py int) Terrain {
	if px < 0 || py < 0 || px >= t.width || py >= t.height {
		return Wall
	}
	return t.mask[py*t.width+px]
}

// Classify returns the terrain under a world coordinate.
func (t *Track) Classify(x, y float64) Terrain {
	if math.IsNaN(x) || math.IsNaN(y) {
		return Wall
	}
	fx := math.Floor(x)
	fy := math.Floor(y)
	if fx < 0 || fy < 0 || fx >= float64(t.width) || fy >= float64(t.height) {
		return Wall
	}
	return t.mask[int(fy)*t.width+int(fx)]
}

// StartPositions returns a copy of the start markers in raster scan order.
func (t *Track) StartPositions() []Point {
	out := make([]Point, len(t.starts))
	copy(out, t.starts)
	return out
}
