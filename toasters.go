package toasters

import "image/color"

// Sprite and field geometry.
const (
	SpriteSize        = 64 // width and height of every sprite, in pixels
	ToasterFrameCount = 6  // frames in the toaster wing-flap cycle
	GridWidth         = 4  // spawn grid columns
	GridHeight        = 4  // spawn grid rows
	TPS               = 60 // ticks per second of the render loop
)

// Default pool sizes and speed limits.
const (
	DefaultToasterCount    = 10
	DefaultToastCount      = 6
	DefaultMaxToasterSpeed = 4
	DefaultMaxToastSpeed   = 3
)

// Background is the color every frame is cleared to.
var Background = color.NRGBA{A: 0xff}

// Kind distinguishes the two entity pools.
type Kind uint8

const (
	KindToaster Kind = iota // winged toaster, animated, collides with other toasters
	KindToast               // single frame, never collides
)

func (k Kind) String() string {
	switch k {
	case KindToaster:
		return "toaster"
	case KindToast:
		return "toast"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned integer rectangle with its origin at the top-left
// and Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// spriteRect returns the sprite-sized box whose top-left corner is (x, y).
func spriteRect(x, y int) Rect {
	return Rect{X: x, Y: y, Width: SpriteSize, Height: SpriteSize}
}

// Overlaps reports whether r and other overlap once both are grown by gap
// on their right and bottom edges. Rectangles that only share an edge do
// not overlap when gap is 0.
func (r Rect) Overlaps(other Rect, gap int) bool {
	return r.X < other.X+other.Width+gap &&
		other.X < r.X+r.Width+gap &&
		r.Y < other.Y+other.Height+gap &&
		other.Y < r.Y+r.Height+gap
}
