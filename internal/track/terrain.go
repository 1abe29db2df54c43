package track

// Terrain is the class of a single mask pixel.
type Terrain uint8

const (
	Drivable Terrain = iota
	Wall
	SlowDown
	StartMarker
)

func (t Terrain) String() string {
	switch t {
	case Drivable:
		return "drivable"
	case Wall:
		return "wall"
	case SlowDown:
		return "slowdown"
	case StartMarker:
		return "start"
	}
	return "unknown"
}

// TerrainOf decodes a mask colour. Colours outside the mask palette report
// ok=false and decode as Drivable.
func TerrainOf(c RGB) (t Terrain, ok bool) {
	switch {
	case rgbEq(c, MaskColors.Drivable):
		return Drivable, true
	case rgbEq(c, MaskColors.Wall):
		return Wall, true
	case rgbEq(c, MaskColors.StartMarker):
		return StartMarker, true
	case rgbEq(c, MaskColors.SlowDown):
		return SlowDown, true
	}
	return Drivable, false
}

// Color returns the mask colour that encodes t.
func (t Terrain) Color() RGB {
	switch t {
	case Wall:
		return MaskColors.Wall
	case SlowDown:
		return MaskColors.SlowDown
	case StartMarker:
		return MaskColors.StartMarker
	}
	return MaskColors.Drivable
}
