package toasters

import (
	"image"

	"github.com/fogleman/gg"
)

// Canvas is a software Host that composes frames in memory. It backs the
// capture host and the terminal host, and is handy in tests.
type Canvas struct {
	dc      *gg.Context
	sprites *SpriteSet
	capture *CaptureRunner
	frames  int
}

// NewCanvas returns a width x height canvas cleared to Background.
func NewCanvas(width, height int, sprites *SpriteSet) *Canvas {
	c := &Canvas{dc: gg.NewContext(width, height), sprites: sprites}
	c.Clear()
	return c
}

// SetCaptureRunner attaches a capture script. The runner steps once per
// presented frame and the canvas asks to quit when it is done.
func (c *Canvas) SetCaptureRunner(r *CaptureRunner) {
	c.capture = r
}

func (c *Canvas) Size() (width, height int) {
	return c.dc.Width(), c.dc.Height()
}

func (c *Canvas) Clear() {
	c.dc.SetColor(Background)
	c.dc.Clear()
}

// DrawSprite composites the sprite over the frame. Parts outside the
// canvas are clipped.
func (c *Canvas) DrawSprite(kind Kind, frame, x, y int) {
	c.dc.DrawImage(c.sprites.Sprite(kind, frame), x, y)
}

func (c *Canvas) Present() error {
	c.frames++
	if c.capture == nil {
		return nil
	}
	return c.capture.step(c)
}

func (c *Canvas) PollQuit() bool {
	return c.capture != nil && c.capture.Done()
}

// Frames returns the number of frames presented.
func (c *Canvas) Frames() int {
	return c.frames
}

// Image returns the current frame. It aliases the canvas buffer and is
// overwritten by the next Clear.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the current frame to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
