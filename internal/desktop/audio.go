package desktop

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"racer/internal/game"
	"racer/internal/sound"
)

const (
	// maxVoices limits simultaneous effects to avoid speaker clipping.
	maxVoices = 4
	// thudCooldown keeps a car sliding along a wall from thudding every tick.
	thudCooldown = 180 * time.Millisecond
	// impactFullScale is the impact speed that plays a thud at full intensity.
	impactFullScale = 8.0
)

// Audio plays procedural effects for race events.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	log    zerolog.Logger

	voices    int32
	lastThud  [game.Players]time.Time
	crashSeed uint64
}

func NewAudio(volume float64, log zerolog.Logger) (*Audio, error) {
	ctx, ready, err := oto.NewContext(sound.SampleRate, sound.ChannelCount, sound.BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	return &Audio{ctx: ctx, ready: ready, volume: volume, log: log}, nil
}

// Subscribe hooks the effects to the race's events. Handlers run on the
// simulation goroutine; playback happens on its own goroutines.
func (a *Audio) Subscribe(bus *game.EventBus) {
	bus.Subscribe(game.EventWallHit, func(e game.Event) {
		now := time.Now()
		if now.Sub(a.lastThud[e.Vehicle]) < thudCooldown {
			return
		}
		a.lastThud[e.Vehicle] = now
		k := e.Speed / impactFullScale
		a.play(sound.Thud(k), 0.4+0.6*k)
	})
	bus.Subscribe(game.EventRepositioned, func(game.Event) {
		a.play(sound.Blip(), 0.7)
	})
	bus.Subscribe(game.EventReset, func(e game.Event) {
		a.crashSeed++
		a.play(sound.Crash(a.crashSeed), 1)
	})
	bus.Subscribe(game.EventSurfaceChanged, func(e game.Event) {
		if e.Slow {
			a.play(sound.Gravel(), 0.6)
		}
	})
}

func (a *Audio) play(samples []byte, gain float64) {
	if gain <= 0 || len(samples) == 0 {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	if atomic.AddInt32(&a.voices, 1) > maxVoices {
		atomic.AddInt32(&a.voices, -1)
		a.log.Debug().Msg("Sound dropped, all voices busy")
		return
	}
	go func() {
		defer atomic.AddInt32(&a.voices, -1)
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.volume * clamp01(gain))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
