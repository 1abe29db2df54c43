package track

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func rgbEq(a, b RGB) bool { return a.R == b.R && a.G == b.G && a.B == b.B }

// Mask colours. Matching is exact, there is no tolerance.
var MaskColors = struct {
	Drivable    RGB
	Wall        RGB
	StartMarker RGB
	SlowDown    RGB
}{
	Drivable:    RGB{R: 0, G: 0, B: 0},
	Wall:        RGB{R: 255, G: 255, B: 255},
	StartMarker: RGB{R: 0, G: 0, B: 255},
	SlowDown:    RGB{R: 0, G: 255, B: 0},
}

// Palette holds the colours used to paint the fallback visual raster.
var Palette = struct {
	Grass      RGB
	Asphalt    RGB
	Kerb       RGB
	Sand       RGB
	Infield    RGB
	StartPaint RGB
}{
	Grass:      RGB{R: 50, G: 150, B: 50},
	Asphalt:    RGB{R: 80, G: 80, B: 80},
	Kerb:       RGB{R: 100, G: 100, B: 100},
	Sand:       RGB{R: 30, G: 100, B: 30},
	Infield:    RGB{R: 40, G: 120, B: 40},
	StartPaint: RGB{R: 230, G: 230, B: 230},
}
