package game

import "racer/internal/track"

// testTrack builds a w x h Drivable track and lets paint override pixels.
func testTrack(w, h int, paint func(x, y int) (track.Terrain, bool)) *track.Track {
	mask := make([]track.Terrain, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if paint != nil {
				if t, ok := paint(x, y); ok {
					mask[y*w+x] = t
				}
			}
		}
	}
	return track.New(w, h, mask, nil)
}

// solid is a classifier with one terrain everywhere.
type solid track.Terrain

func (s solid) Classify(x, y float64) track.Terrain { return track.Terrain(s) }

func sportsCarAt(x, y, heading float64) *Vehicle {
	return NewVehicle(Vec2{x, y}, heading, SportsCar)
}
