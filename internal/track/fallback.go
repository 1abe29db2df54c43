package track

import "math"

// Fallback ring layout at the default resolution (in track pixels).
const (
	fallbackOuterInset = 100
	fallbackInnerInset = 200
	fallbackMarkerGap  = 20
	fallbackPatchSize  = 40
)

// Smallest raster the fallback ring is generated at. Fallback clamps
// smaller requests up to this size.
const (
	MinWidth  = 160
	MinHeight = 120
)

// Half extents of the wall-free box kept around each fallback start marker.
// Both presets fit at heading 0 with room to spare.
const (
	startClearX = 16
	startClearY = 11
)

// Angles (degrees, y down) of the slow-down patches around the ring. The
// start line sits at 180 so none of these overlap it.
var fallbackPatchAngles = [4]float64{60, 120, 240, 300}

type ellipse struct {
	cx, cy float64
	rx, ry float64
}

func boxEllipse(x0, y0, w, h int) ellipse {
	return ellipse{
		cx: float64(x0) + float64(w)*0.5,
		cy: float64(y0) + float64(h)*0.5,
		rx: float64(w) * 0.5,
		ry: float64(h) * 0.5,
	}
}

func cosSinDeg(deg float64) (float64, float64) {
	r := deg * math.Pi / 180
	return math.Cos(r), math.Sin(r)
}

func (e ellipse) contains(x, y float64) bool {
	if e.rx <= 0 || e.ry <= 0 {
		return false
	}
	dx := (x - e.cx) / e.rx
	dy := (y - e.cy) / e.ry
	return dx*dx+dy*dy <= 1
}

// Fallback generates the procedural track used when the track images cannot
// be loaded: an elliptical drivable ring inside a wall boundary, four
// slow-down patches on the ring and exactly two start markers. Sizes below
// MinWidth x MinHeight are clamped up.
func Fallback(width, height int) *Track {
	width = max(width, MinWidth)
	height = max(height, MinHeight)
	outer, inner := fallbackInsets(width, height)
	outerE := boxEllipse(outer, outer, width-2*outer, height-2*outer)
	innerE := boxEllipse(inner, inner, width-2*inner, height-2*inner)

	mask := make([]Terrain, width*height)
	for y := 0; y < height; y++ {
		fy := float64(y) + 0.5
		for x := 0; x < width; x++ {
			fx := float64(x) + 0.5
			i := y*width + x
			if outerE.contains(fx, fy) && !innerE.contains(fx, fy) {
				mask[i] = Drivable
			} else {
				mask[i] = Wall
			}
		}
	}

	// Slow-down patches centred on the middle of the ring.
	mid := ellipse{
		cx: outerE.cx,
		cy: outerE.cy,
		rx: (outerE.rx + innerE.rx) * 0.5,
		ry: (outerE.ry + innerE.ry) * 0.5,
	}
	half := fallbackPatchSize / 2
	for _, deg := range fallbackPatchAngles {
		c, s := cosSinDeg(deg)
		px := int(mid.cx + mid.rx*c)
		py := int(mid.cy + mid.ry*s)
		for y := py - half; y < py+half; y++ {
			for x := px - half; x < px+half; x++ {
				if x < 0 || y < 0 || x >= width || y >= height {
					continue
				}
				if mask[y*width+x] == Drivable {
					mask[y*width+x] = SlowDown
				}
			}
		}
	}

	for _, p := range fallbackStarts(mask, width, height, outer, inner) {
		mask[p.Y*width+p.X] = StartMarker
	}

	t := New(width, height, mask, fallbackVisual(width, height, mask, innerE))
	t.fallback = true
	return t
}

// fallbackInsets keeps the default ring at the default resolution and
// shrinks it proportionally for small rasters.
func fallbackInsets(width, height int) (outer, inner int) {
	m := min(width, height)
	if m > 2*fallbackInnerInset+2*fallbackPatchSize {
		return fallbackOuterInset, fallbackInnerInset
	}
	return m / 10, m * 2 / 5
}

// fallbackStarts places the two start markers midway across the ring, on the
// left straight when a car fits there and on the top straight otherwise. The
// gap between them narrows until both spots are clear. On a long, flat raster
// the left end of the ellipse is too narrow and the top straight is used.
func fallbackStarts(mask []Terrain, width, height, outer, inner int) [2]Point {
	mid := (outer + inner) / 2
	for gap := fallbackMarkerGap; gap >= startClearY; gap -= 3 {
		left := [2]Point{{X: mid, Y: height/2 - gap}, {X: mid, Y: height/2 + gap}}
		top := [2]Point{{X: width/2 - gap, Y: mid}, {X: width/2 + gap, Y: mid}}
		for _, c := range [][2]Point{left, top} {
			if clearAround(mask, width, height, c[0]) && clearAround(mask, width, height, c[1]) {
				return c
			}
		}
	}
	return [2]Point{{X: mid, Y: height/2 - fallbackMarkerGap}, {X: mid, Y: height/2 + fallbackMarkerGap}}
}

// clearAround reports whether the start box around p is inside the raster
// and free of walls.
func clearAround(mask []Terrain, width, height int, p Point) bool {
	for y := p.Y - startClearY; y <= p.Y+startClearY; y++ {
		for x := p.X - startClearX; x <= p.X+startClearX; x++ {
			if x < 0 || y < 0 || x >= width || y >= height || mask[y*width+x] == Wall {
				return false
			}
		}
	}
	return true
}

func fallbackVisual(width, height int, mask []Terrain, infield ellipse) []uint8 {
	px := make([]uint8, width*height*4)
	put := func(i int, c RGB) {
		o := i * 4
		px[o+0] = c.R
		px[o+1] = c.G
		px[o+2] = c.B
		px[o+3] = 255
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			switch mask[i] {
			case Wall:
				if infield.contains(float64(x)+0.5, float64(y)+0.5) {
					put(i, Palette.Infield)
				} else {
					put(i, Palette.Grass)
				}
			case SlowDown:
				put(i, Palette.Sand)
			case StartMarker:
				put(i, Palette.StartPaint)
			default:
				if touchesWall(mask, width, height, x, y) {
					put(i, Palette.Kerb)
				} else {
					put(i, Palette.Asphalt)
				}
			}
		}
	}
	return px
}

func touchesWall(mask []Terrain, width, height, x, y int) bool {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				return true
			}
			if mask[ny*width+nx] == Wall {
				return true
			}
		}
	}
	return false
}
