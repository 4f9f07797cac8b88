package toasters

// Body is the state shared by both entity kinds. Slot and Speed are fixed
// once the entity is spawned; X and Y change every tick.
type Body struct {
	Slot  int // reserved spawn grid cell
	X, Y  int // top-left corner in screen pixels
	Speed int // pixels moved along each axis per tick
}

// Rect returns the sprite box at the body's current position.
func (b *Body) Rect() Rect {
	return spriteRect(b.X, b.Y)
}

// next returns the candidate position one tick ahead.
func (b *Body) next() (x, y int) {
	return b.X - b.Speed, b.Y + b.Speed
}

// Toaster is a winged toaster. Frame cycles through the flap animation.
type Toaster struct {
	Body
	Frame int
}

// Toast is a slice of toast. It has no animation.
type Toast struct {
	Body
}
