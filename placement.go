package toasters

import "math/rand/v2"

// Layout maps spawn grid slots to screen coordinates for a fixed screen
// size. The grid is GridWidth by GridHeight cells, numbered row-major.
type Layout struct {
	Width, Height int
}

// Cell returns the size of one grid cell in pixels.
func (l Layout) Cell() (w, h int) {
	return l.Width / GridWidth, l.Height / GridHeight
}

// Spawn returns the spawn position for slot. The whole grid is shifted a
// full screen height to the right and up, so entities always enter from
// the upper right whatever the aspect ratio, and each sprite is centered
// in its cell.
func (l Layout) Spawn(slot int) (x, y int) {
	cw, ch := l.Cell()
	col, row := slot%GridWidth, slot/GridWidth
	x = l.Height + col*cw + (cw-SpriteSize)/2
	y = -l.Height + row*ch + (ch-SpriteSize)/2
	return x, y
}

// respawn moves b back to its slot's spawn position.
func (l Layout) respawn(b *Body) {
	b.X, b.Y = l.Spawn(b.Slot)
}

// Visible reports whether a sprite at (x, y) overlaps the screen. The
// bottom edge is not checked: sprites leave through the left or bottom and
// are respawned before they can sit fully below the screen.
func (l Layout) Visible(x, y int) bool {
	return y+SpriteSize > 0 && x+SpriteSize > 0 && x < l.Width
}

// Gone reports whether a sprite at (x, y) has scrolled off the left or
// bottom edge.
func (l Layout) Gone(x, y int) bool {
	return x <= -SpriteSize || y >= l.Height
}

// ShuffleSlots returns a random permutation of the slots 0..n-1.
func ShuffleSlots(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}
