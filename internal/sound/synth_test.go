package sound

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frames decodes the left channel of a stereo float32 buffer.
func frames(t *testing.T, buf []byte) []float64 {
	t.Helper()
	require.Zero(t, len(buf)%BytesPerFrame)
	out := make([]float64, len(buf)/BytesPerFrame)
	for i := range out {
		l := binary.LittleEndian.Uint32(buf[i*8:])
		r := binary.LittleEndian.Uint32(buf[i*8+4:])
		require.Equal(t, l, r, "frame %d is not mono", i)
		out[i] = float64(math.Float32frombits(l))
	}
	return out
}

func TestEffects_StayInRange(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"thud soft", Thud(0)},
		{"thud hard", Thud(1)},
		{"crash", Crash(42)},
		{"blip", Blip()},
		{"gravel", Gravel()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := frames(t, tt.buf)
			require.NotEmpty(t, samples)
			peak := 0.0
			for _, s := range samples {
				require.False(t, math.IsNaN(s))
				require.LessOrEqual(t, math.Abs(s), 1.0)
				peak = math.Max(peak, math.Abs(s))
			}
			assert.Greater(t, peak, 0.01, "effect is silent")
		})
	}
}

func TestThud_ScalesWithIntensity(t *testing.T) {
	soft, hard := Thud(0.1), Thud(0.9)
	assert.Greater(t, len(hard), len(soft))

	// Out-of-range intensities clamp.
	assert.Equal(t, Thud(1), Thud(7))
	assert.Equal(t, Thud(0), Thud(math.NaN()))
}

func TestCrash_VariesBySeed(t *testing.T) {
	assert.Equal(t, Crash(3), Crash(3))
	assert.NotEqual(t, Crash(3), Crash(4))
	assert.NotEmpty(t, Crash(0))
}

func TestSoftSat_Bounded(t *testing.T) {
	for _, x := range []float64{-100, -1.5, -1, -0.3, 0, 0.3, 1, 1.5, 100} {
		y := softSat(x)
		assert.LessOrEqual(t, math.Abs(y), 1.0, "x=%v", x)
		if x != 0 {
			assert.Equal(t, math.Signbit(x), math.Signbit(y), "x=%v", x)
		}
	}
}

func TestADSR_Shape(t *testing.T) {
	assert.InDelta(t, 0, adsr(0, 0.1, 0.2, 0.5, 0.3), 1e-9)
	assert.InDelta(t, 1, adsr(0.1, 0.1, 0.2, 0.5, 0.3), 1e-9)
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.3), 1e-9)
	assert.InDelta(t, 0, adsr(1, 0.1, 0.2, 0.5, 0.3), 1e-9)
}

func TestLCG_Range(t *testing.T) {
	seed := uint64(1)
	for i := 0; i < 10000; i++ {
		v := lcg(&seed)
		require.GreaterOrEqual(t, v, -1.0)
		require.Less(t, v, 1.0)
	}
}
