// Package sound synthesises the racer's sound effects as interleaved stereo
// float32 little-endian PCM, ready for an oto player.
package sound

import "math"

const (
	SampleRate    = 44100
	ChannelCount  = 2
	BitDepth      = 0 // 32-bit float (oto.FormatFloat32LE)
	BytesPerFrame = 8
)

// Thud is a wall impact. intensity in [0,1] makes it deeper, longer and louder.
func Thud(intensity float64) []byte {
	k := clamp01(intensity)
	n := int((0.08 + 0.10*k) * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x7D0D) ^ uint64(k*4096)
	phase := 0.0
	lp := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		// Body: a short pitch drop.
		freq := (150 - 40*k) * math.Pow(0.45, p)
		phase += 2 * math.Pi * freq / SampleRate
		body := math.Sin(phase) * math.Exp(-p*5.5) * (0.45 + 0.35*k)

		// Contact click.
		click := 0.0
		if p < 0.06 {
			click = lcg(&seed) * (1 - p/0.06) * 0.35
		}

		// Muffled panel rattle.
		lp = lp*0.9 + lcg(&seed)*0.1
		rattle := lp * math.Exp(-p*9) * 0.3 * k

		putStereoF32(buf, i, softSat(body+click+rattle))
	}
	return buf
}

// Crash is played when a car is stuck and sent back to its spawn point.
// Different seeds give different variants.
func Crash(seed uint64) []byte {
	n := int(0.45 * SampleRate)
	buf := makeBuf(n)
	if seed == 0 {
		seed = 1
	}
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := 110 * math.Pow(28.0/110.0, p*1.8)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*5) * 0.5

		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * 0.8
		}

		// Bandpassed debris.
		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*4.5) * 0.42

		putStereoF32(buf, i, softSat((sub+crack+body)*0.86))
	}
	return buf
}

// Blip is a short descending bell for a car pushed clear of a wall.
func Blip() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.3, 0.5, 0.4)
		freq := 880 - 330*p
		s := fm(t, freq, 2.0, 2.2*env) * env * 0.32
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// Gravel is a brief hiss for a car entering a slow-down surface.
func Gravel() []byte {
	n := int(0.2 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x6A7E1)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.55 + lcg(&seed)*0.45
		grain := 0.6 + 0.4*math.Sin(2*math.Pi*38*t)
		env := adsr(p, 0.15, 0.2, 0.7, 0.5)
		putStereoF32(buf, i, softSat(lp*grain*env*0.3))
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle saturation. Output stays inside [-1,1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*BytesPerFrame) }

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
