package toasters

// animationBase sets how often a toaster flaps: every (animationBase -
// speed) ticks, so faster toasters flap faster.
const animationBase = 10

// HasCollision reports whether sprites at (x1, y1) and (x2, y2) overlap,
// with both boxes grown by gap. The result does not depend on argument
// order.
func HasCollision(x1, y1, x2, y2, gap int) bool {
	return spriteRect(x1, y1).Overlaps(spriteRect(x2, y2), gap)
}

// advanceToast moves toast i one tick. Toast pass through everything.
func (f *Field) advanceToast(i int) {
	t := &f.Toast[i]
	x, y := t.next()
	if f.layout.Gone(x, y) {
		f.layout.respawn(&t.Body)
		f.emit(Event{Type: EventRespawn, Kind: KindToast, Index: i, Slot: t.Slot, X: t.X, Y: t.Y, Blocker: -1})
		return
	}
	t.X, t.Y = x, y
}

// advanceToaster moves toaster i one tick. The candidate position is
// checked against every other toaster in pool order and the first overlap
// found redirects the move: a toaster still behind its blocker drops
// straight down at the blocker's speed, one that has passed it slides
// straight left at the blocker's speed.
func (f *Field) advanceToaster(i int) {
	t := &f.Toasters[i]
	x, y := t.next()
	if f.layout.Gone(x, y) {
		f.layout.respawn(&t.Body)
		f.emit(Event{Type: EventRespawn, Kind: KindToaster, Index: i, Slot: t.Slot, X: t.X, Y: t.Y, Blocker: -1})
	} else {
		blocker := -1
		for j := range f.Toasters {
			if j == i {
				continue
			}
			b := &f.Toasters[j]
			if !HasCollision(b.X, b.Y, x, y, 0) {
				continue
			}
			// A deflection replaces the whole move: the dropping toaster
			// keeps its current x, not its own leftward step.
			if t.X <= b.X+SpriteSize {
				x, y = t.X, t.Y+b.Speed
			} else {
				x, y = t.X-b.Speed, t.Y
			}
			blocker = j
			break
		}
		t.X, t.Y = x, y
		if blocker >= 0 {
			f.emit(Event{Type: EventDeflect, Kind: KindToaster, Index: i, Slot: t.Slot, X: x, Y: y, Blocker: blocker})
		}
	}

	if int(f.counter)%(animationBase-t.Speed) == 0 {
		t.Frame = (t.Frame + 1) % ToasterFrameCount
	}
}
