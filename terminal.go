package toasters

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// TerminalCellPixels is the number of canvas pixels, along each axis,
// covered by one half cell of the terminal.
const TerminalCellPixels = 8

// upperHalfBlock paints the top half of a cell in the foreground color and
// the bottom half in the background color, giving two pixels per cell.
const upperHalfBlock = '▀'

// Terminal is a Host that renders into a tcell screen. Frames are composed
// on a Canvas, scaled down to one pixel per half cell, and written as
// upper half blocks.
type Terminal struct {
	screen tcell.Screen
	canvas *Canvas
	cells  *image.RGBA

	events chan tcell.Event
	done   chan struct{}
	quit   bool
}

// NewTerminal wraps an initialized screen. The canvas size is fixed from
// the screen size at this point; later resizes only trigger a redraw.
// The terminal owns the screen from here on and finalizes it in Close.
func NewTerminal(screen tcell.Screen, sprites *SpriteSet) (*Terminal, error) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("toasters: terminal is %dx%d", cols, rows)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		canvas: NewCanvas(cols*TerminalCellPixels, rows*2*TerminalCellPixels, sprites),
		cells:  image.NewRGBA(image.Rect(0, 0, cols, rows*2)),
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

// pollEvents forwards screen events until the screen is finalized.
func (t *Terminal) pollEvents() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) Size() (width, height int) {
	return t.canvas.Size()
}

func (t *Terminal) Clear() {
	t.canvas.Clear()
}

func (t *Terminal) DrawSprite(kind Kind, frame, x, y int) {
	t.canvas.DrawSprite(kind, frame, x, y)
}

func (t *Terminal) Present() error {
	src := t.canvas.Image()
	draw.ApproxBiLinear.Scale(t.cells, t.cells.Bounds(), src, src.Bounds(), draw.Src, nil)

	b := t.cells.Bounds()
	for y := 0; y < b.Dy()/2; y++ {
		for x := 0; x < b.Dx(); x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(t.cells.RGBAAt(x, 2*y))).
				Background(cellColor(t.cells.RGBAAt(x, 2*y+1)))
			t.screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
	t.screen.Show()
	return t.canvas.Present()
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// PollQuit drains pending events without blocking. Esc, q and Ctrl-C ask
// to quit; a resize repaints the screen.
func (t *Terminal) PollQuit() bool {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return true
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					t.quit = true
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		default:
			return t.quit
		}
	}
}

// Close stops event polling and restores the terminal.
func (t *Terminal) Close() {
	close(t.done)
	t.screen.Fini()
}
