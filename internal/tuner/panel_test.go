package tuner

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/game"
)

type fakeController struct {
	queued  []game.Adjustment
	full    bool
	tuning  *game.Tuning
	tunable [game.Players]game.Tunables
}

func newFake() *fakeController {
	return &fakeController{
		tuning: game.DefaultTuning(),
		tunable: [game.Players]game.Tunables{
			{Name: "sports", Acceleration: 0.3, MaxSpeed: 8, TurnRate: 6, Friction: 0.95},
			{Name: "truck", Acceleration: 0.2, MaxSpeed: 6, TurnRate: 5, Friction: 0.93},
		},
	}
}

func (f *fakeController) Enqueue(a game.Adjustment) bool {
	if f.full {
		return false
	}
	f.queued = append(f.queued, a)
	return true
}

func (f *fakeController) Tunables() [game.Players]game.Tunables { return f.tunable }
func (f *fakeController) Tuning() *game.Tuning                  { return f.tuning }

func (f *fakeController) AdjustStickiness(d game.Direction) float64 {
	return f.tuning.AdjustStickiness(d)
}

func (f *fakeController) AdjustBounceFactor(d game.Direction) float64 {
	return f.tuning.AdjustBounceFactor(d)
}

func newTestPanel(t *testing.T) (*Panel, *fakeController, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	ctl := newFake()
	return New(screen, ctl, zerolog.Nop()), ctl, screen
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func runeKey(r rune) *tcell.EventKey  { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestPanel_NavigationWraps(t *testing.T) {
	p, _, _ := newTestPanel(t)

	assert.Equal(t, "P1 acceleration", p.Selected())
	assert.True(t, p.HandleEvent(key(tcell.KeyDown)))
	assert.Equal(t, "P1 max speed", p.Selected())
	p.HandleEvent(key(tcell.KeyUp))
	p.HandleEvent(key(tcell.KeyUp))
	assert.Equal(t, "Wall bounce", p.Selected())
	p.HandleEvent(runeKey('j'))
	assert.Equal(t, "P1 acceleration", p.Selected())
}

func TestPanel_VehicleAdjustmentsAreQueued(t *testing.T) {
	p, ctl, _ := newTestPanel(t)

	for i := 0; i < 6; i++ {
		p.HandleEvent(key(tcell.KeyDown))
	}
	require.Equal(t, "P2 turn rate", p.Selected())
	p.HandleEvent(key(tcell.KeyRight))
	p.HandleEvent(key(tcell.KeyLeft))

	assert.Equal(t, []game.Adjustment{
		{Vehicle: 1, Param: game.ParamTurnRate, Dir: game.Increase},
		{Vehicle: 1, Param: game.ParamTurnRate, Dir: game.Decrease},
	}, ctl.queued)
}

func TestPanel_GlobalRowsWriteTuning(t *testing.T) {
	p, ctl, _ := newTestPanel(t)

	p.HandleEvent(key(tcell.KeyUp))
	p.HandleEvent(key(tcell.KeyUp))
	require.Equal(t, "Wall stickiness", p.Selected())
	p.HandleEvent(key(tcell.KeyRight))
	assert.InDelta(t, 0.5, ctl.tuning.WallStickiness(), 1e-9)

	p.HandleEvent(key(tcell.KeyDown))
	p.HandleEvent(runeKey('-'))
	assert.InDelta(t, 0.55, ctl.tuning.WallBounceFactor(), 1e-9)
	assert.Empty(t, ctl.queued)
}

func TestPanel_QueueFullShowsStatus(t *testing.T) {
	p, ctl, screen := newTestPanel(t)
	ctl.full = true

	p.HandleEvent(key(tcell.KeyRight))
	p.Draw()

	found := false
	for y := 0; y < 24; y++ {
		if strings.Contains(rowText(screen, y), "queue full") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPanel_DrawShowsValues(t *testing.T) {
	p, _, screen := newTestPanel(t)
	p.Draw()

	assert.Equal(t, "Racer tuning", rowText(screen, 0))
	assert.Contains(t, rowText(screen, 2), "> P1 acceleration")
	assert.Contains(t, rowText(screen, 2), "0.30")
	assert.Contains(t, rowText(screen, 7), "P2 max speed")
	assert.Contains(t, rowText(screen, 7), "6.00")
	assert.Contains(t, rowText(screen, 10), "Wall stickiness")
	assert.Contains(t, rowText(screen, 10), "0.40")
}

func TestPanel_QuitKeys(t *testing.T) {
	p, _, _ := newTestPanel(t)
	assert.False(t, p.HandleEvent(runeKey('q')))
	assert.False(t, p.HandleEvent(key(tcell.KeyEscape)))
	assert.False(t, p.interrupted)

	assert.False(t, p.HandleEvent(key(tcell.KeyCtrlC)))
	assert.True(t, p.interrupted)
}

func TestPanel_RunStopsOnContext(t *testing.T) {
	p, _, _ := newTestPanel(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
