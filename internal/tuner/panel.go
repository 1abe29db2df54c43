// Package tuner is a terminal panel for adjusting car and wall parameters
// while the race runs.
package tuner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"racer/internal/game"
)

// ErrInterrupted is returned by Run when the panel received Ctrl-C.
var ErrInterrupted = errors.New("tuner: interrupted")

// Controller is the part of the race the panel drives. It must be safe to
// call from the panel goroutine.
type Controller interface {
	Enqueue(game.Adjustment) bool
	Tunables() [game.Players]game.Tunables
	Tuning() *game.Tuning
	AdjustStickiness(game.Direction) float64
	AdjustBounceFactor(game.Direction) float64
}

type rowKind int

const (
	rowVehicle rowKind = iota
	rowStickiness
	rowBounce
)

type row struct {
	kind    rowKind
	vehicle int
	param   game.Param
}

// Panel renders the parameter list and turns arrow keys into adjustments.
type Panel struct {
	screen tcell.Screen
	ctl    Controller
	log    zerolog.Logger

	rows        []row
	selected    int
	status      string
	interrupted bool
}

// Open creates and initialises a terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tuner screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tuner screen init: %w", err)
	}
	return screen, nil
}

// New returns a panel drawing on an initialised screen.
func New(screen tcell.Screen, ctl Controller, log zerolog.Logger) *Panel {
	p := &Panel{screen: screen, ctl: ctl, log: log}
	for v := 0; v < game.Players; v++ {
		for _, param := range game.Params {
			p.rows = append(p.rows, row{kind: rowVehicle, vehicle: v, param: param})
		}
	}
	p.rows = append(p.rows, row{kind: rowStickiness}, row{kind: rowBounce})
	return p
}

// Run draws the panel and handles keys until ctx is done or the user quits.
// The screen is finalised on return.
func (p *Panel) Run(ctx context.Context) error {
	defer p.screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Values change under us as the game hotkeys fire, so redraw regularly.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	p.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !p.HandleEvent(ev) {
				if p.interrupted {
					return ErrInterrupted
				}
				return nil
			}
			p.Draw()
		case <-ticker.C:
			p.Draw()
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the panel
// should close.
func (p *Panel) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			p.interrupted = true
			return false
		case tcell.KeyEscape:
			return false
		case tcell.KeyUp:
			p.move(-1)
		case tcell.KeyDown:
			p.move(1)
		case tcell.KeyLeft:
			p.adjust(game.Decrease)
		case tcell.KeyRight:
			p.adjust(game.Increase)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'k':
				p.move(-1)
			case 'j':
				p.move(1)
			case 'h', '-':
				p.adjust(game.Decrease)
			case 'l', '+':
				p.adjust(game.Increase)
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *Panel) move(d int) {
	n := len(p.rows)
	p.selected = ((p.selected+d)%n + n) % n
}

func (p *Panel) adjust(dir game.Direction) {
	r := p.rows[p.selected]
	switch r.kind {
	case rowStickiness:
		p.ctl.AdjustStickiness(dir)
		p.status = ""
	case rowBounce:
		p.ctl.AdjustBounceFactor(dir)
		p.status = ""
	default:
		if !p.ctl.Enqueue(game.Adjustment{Vehicle: r.vehicle, Param: r.param, Dir: dir}) {
			p.status = "adjustment queue full, try again"
			p.log.Warn().Int("vehicle", r.vehicle).Stringer("param", r.param).Msg("Adjustment queue full")
			return
		}
		p.status = ""
	}
}

// Selected returns the label of the highlighted row.
func (p *Panel) Selected() string {
	return p.label(p.rows[p.selected])
}

func (p *Panel) label(r row) string {
	switch r.kind {
	case rowStickiness:
		return "Wall stickiness"
	case rowBounce:
		return "Wall bounce"
	}
	return fmt.Sprintf("P%d %s", r.vehicle+1, r.param)
}

func (p *Panel) value(r row, tun [game.Players]game.Tunables, stick, bounce float64) string {
	switch r.kind {
	case rowStickiness:
		return fmt.Sprintf("%.2f", stick)
	case rowBounce:
		return fmt.Sprintf("%.2f", bounce)
	}
	return fmt.Sprintf("%.2f", tun[r.vehicle].Value(r.param))
}

var (
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleRow      = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Draw renders the panel.
func (p *Panel) Draw() {
	p.screen.Clear()
	tun := p.ctl.Tunables()
	stick, bounce := p.ctl.Tuning().Snapshot()

	p.text(0, 0, "Racer tuning", styleTitle)
	for i, r := range p.rows {
		style := styleRow
		marker := "  "
		if i == p.selected {
			style = styleSelected
			marker = "> "
		}
		p.text(0, i+2, fmt.Sprintf("%s%-20s %8s", marker, p.label(r), p.value(r, tun, stick, bounce)), style)
	}
	y := len(p.rows) + 3
	p.text(0, y, "up/down select  left/right adjust  q close", styleHelp)
	if p.status != "" {
		p.text(0, y+1, p.status, styleStatus)
	}
	p.screen.Show()
}

func (p *Panel) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
