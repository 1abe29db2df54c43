package track

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Load reads the visual and collision-mask images and scales both to the
// logical resolution. Any failure is returned; see LoadOrFallback.
func Load(visualPath, maskPath string, width, height int) (*Track, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid track resolution %dx%d", width, height)
	}
	visualImg, err := decodeFile(visualPath)
	if err != nil {
		return nil, fmt.Errorf("decode visual %q: %w", visualPath, err)
	}
	maskImg, err := decodeFile(maskPath)
	if err != nil {
		return nil, fmt.Errorf("decode mask %q: %w", maskPath, err)
	}
	return FromImages(visualImg, maskImg, width, height), nil
}

// LoadOrFallback loads the track images and falls back to the procedural
// track when they cannot be read.
func LoadOrFallback(visualPath, maskPath string, width, height int, log zerolog.Logger) *Track {
	t, err := Load(visualPath, maskPath, width, height)
	if err != nil {
		log.Warn().Err(err).Msg("Track images unavailable, creating fallback track")
		t = Fallback(width, height)
		log.Info().
			Int("width", t.width).
			Int("height", t.height).
			Interface("starts", t.starts).
			Msg("Fallback track created")
		return t
	}
	log.Info().
		Str("visual", visualPath).
		Str("mask", maskPath).
		Int("startPositions", len(t.starts)).
		Interface("starts", t.starts).
		Msg("Track loaded")
	return t
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// FromImages builds a track from already decoded images. visual may be nil.
func FromImages(visual, mask image.Image, width, height int) *Track {
	m := scaleNearest(mask, width, height)
	terrain := make([]Terrain, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := m.PixOffset(x, y)
			c := RGB{R: m.Pix[o+0], G: m.Pix[o+1], B: m.Pix[o+2]}
			terrain[y*width+x], _ = TerrainOf(c)
		}
	}
	var px []uint8
	if visual != nil {
		px = scaleNearest(visual, width, height).Pix
	}
	return New(width, height, terrain, px)
}

// scaleNearest resamples src into a width x height opaque raster. Nearest
// neighbour keeps mask colours exact. Alpha is dropped before scaling so a
// transparent pixel keeps its RGB whether or not the image is resized.
func scaleNearest(src image.Image, width, height int) *image.NRGBA {
	n := opaque(src)
	if n.Rect.Dx() == width && n.Rect.Dy() == height {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), n, n.Bounds(), draw.Src, nil)
	return dst
}

// opaque copies src into a zero-origin NRGBA with alpha forced to 255. The
// copy is un-premultiplied so a transparent pixel does not change the RGB
// used for mask matching.
func opaque(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			c.A = 255
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
