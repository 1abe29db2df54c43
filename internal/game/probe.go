package game

import "racer/internal/track"

// HullPoints is the number of collision samples per vehicle.
const HullPoints = 5

// Classifier maps a world coordinate to a terrain class. *track.Track
// implements it.
type Classifier interface {
	Classify(x, y float64) track.Terrain
}

// Hull returns the probe points of a car of the given size, relative to its
// centre at heading 0: front-centre, front-left, front-right, rear-left,
// rear-right.
func Hull(length, width float64) [HullPoints]Vec2 {
	hl, hw := length*0.5, width*0.5
	return [HullPoints]Vec2{
		{hl, 0},
		{hl, -hw},
		{hl, hw},
		{-hl, -hw},
		{-hl, hw},
	}
}

// ProbeResult lists the hull points that landed on Wall.
type ProbeResult struct {
	Collided  bool
	Offending []Vec2
	Count     int
}

// Probe rotates the hull by heading, translates it to pos and classifies
// every point.
func Probe(tr Classifier, pos Vec2, heading float64, hull [HullPoints]Vec2) ProbeResult {
	var res ProbeResult
	for _, h := range hull {
		p := pos.Add(h.Rotate(heading))
		if tr.Classify(p.X, p.Y) == track.Wall {
			res.Offending = append(res.Offending, p)
		}
	}
	res.Count = len(res.Offending)
	res.Collided = res.Count > 0
	return res
}

// Fits reports whether a car placed at pos has no hull point and no centre
// on Wall.
func Fits(tr Classifier, pos Vec2, heading float64, hull [HullPoints]Vec2) bool {
	if tr.Classify(pos.X, pos.Y) == track.Wall {
		return false
	}
	return !Probe(tr, pos, heading, hull).Collided
}
