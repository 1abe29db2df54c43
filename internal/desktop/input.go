package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"racer/internal/game"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

type binding struct {
	accelerate, brake, left, right glfw.Key
}

// P1 drives with WASD, P2 with the arrow keys.
var bindings = [game.Players]binding{
	{accelerate: glfw.KeyW, brake: glfw.KeyS, left: glfw.KeyA, right: glfw.KeyD},
	{accelerate: glfw.KeyUp, brake: glfw.KeyDown, left: glfw.KeyLeft, right: glfw.KeyRight},
}

// ReadControls snapshots the driving keys of both players.
func ReadControls(window *glfw.Window) [game.Players]game.Controls {
	var out [game.Players]game.Controls
	for i, b := range bindings {
		out[i] = game.Controls{
			Accelerate: window.GetKey(b.accelerate) == glfw.Press,
			Brake:      window.GetKey(b.brake) == glfw.Press,
			Left:       window.GetKey(b.left) == glfw.Press,
			Right:      window.GetKey(b.right) == glfw.Press,
		}
	}
	return out
}

type tuningKey struct {
	key   glfw.Key
	param game.Param
	dir   game.Direction
}

// Hotkeys tune P1 while driving. The terminal panel covers everything else.
var tuningKeys = []tuningKey{
	{glfw.KeyU, game.ParamTurnRate, game.Increase},
	{glfw.KeyJ, game.ParamTurnRate, game.Decrease},
	{glfw.KeyI, game.ParamAcceleration, game.Increase},
	{glfw.KeyK, game.ParamAcceleration, game.Decrease},
}

// HandleHotkeys applies the tuning keys and closes the window on Escape.
func (in *Input) HandleHotkeys(window *glfw.Window, race *game.Race, log zerolog.Logger) {
	if in.JustPressed(window, glfw.KeyEscape) {
		window.SetShouldClose(true)
	}
	for _, tk := range tuningKeys {
		if !in.JustPressed(window, tk.key) {
			continue
		}
		if !race.Enqueue(game.Adjustment{Vehicle: 0, Param: tk.param, Dir: tk.dir}) {
			log.Warn().Stringer("param", tk.param).Msg("Adjustment queue full")
		}
	}
	if in.JustPressed(window, glfw.KeyO) {
		race.AdjustStickiness(game.Increase)
	}
	if in.JustPressed(window, glfw.KeyL) {
		race.AdjustStickiness(game.Decrease)
	}
}
