// Package desktop is the glfw/OpenGL shell around the race: window, keyboard,
// rendering and sound.
package desktop

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"racer/internal/config"
	"racer/internal/fx"
	"racer/internal/game"
	"racer/internal/track"
)

const (
	// TickRate is the simulation rate. All physics constants are per tick.
	TickRate = 60
	// maxTicksPerFrame stops a long stall from fast-forwarding the race.
	maxTicksPerFrame = 5
)

// Run opens the window and drives the race until the window closes or ctx
// is cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, cfg *config.Config, race *game.Race, log zerolog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	if cfg.Audio.Enabled {
		audio, err := NewAudio(cfg.Audio.Volume, log)
		if err != nil {
			log.Warn().Err(err).Msg("Audio init failed, continuing without sound")
		} else {
			audio.Subscribe(race.Events())
		}
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(
		float32(track.Palette.Grass.R)/255.0,
		float32(track.Palette.Grass.G)/255.0,
		float32(track.Palette.Grass.B)/255.0,
		1.0,
	)

	rend, err := NewRenderer(race.Track())
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	particles := fx.NewParticleSystem(fx.MaxParticles, uint64(time.Now().UnixNano()))
	particles.Subscribe(race.Events())
	var particleBuf []float32

	input := NewInput()
	log.Info().
		Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		Int("width", cfg.Window.Width).
		Int("height", cfg.Window.Height).
		Msg("Window opened")

	const step = 1.0 / TickRate
	acc := 0.0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			log.Info().Msg("Shutting down")
			return nil
		}

		now := glfw.GetTime()
		dt := now - last
		acc += dt
		last = now
		if acc > maxTicksPerFrame*step {
			acc = maxTicksPerFrame * step
		}

		glfw.PollEvents()
		input.HandleHotkeys(window, race, log)
		controls := ReadControls(window)
		for ; acc >= step; acc -= step {
			race.Step(controls)
		}

		particles.Update(dt)
		particleBuf = particles.RenderData(particleBuf)

		fbW, fbH := window.GetFramebufferSize()
		rend.Draw(race.Vehicles(), particleBuf, fbW, fbH)
		window.SwapBuffers()
	}
	log.Info().Uint64("ticks", race.Ticks()).Msg("Window closed")
	return nil
}
