package toasters

import (
	"context"
	"fmt"
)

// DrawCommand is a single sprite draw emitted by Field.Draw. Frame is only
// meaningful for KindToaster.
type DrawCommand struct {
	Kind  Kind
	Frame int
	X, Y  int
}

// Host is a drawable surface. Sprites are uploaded when the host is built,
// so DrawSprite only needs the kind and frame to pick a texture.
type Host interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Clear fills the frame with Background.
	Clear()
	// DrawSprite blits a SpriteSize square sprite with its top-left at (x, y).
	DrawSprite(kind Kind, frame, x, y int)
	// Present shows the completed frame.
	Present() error
	// PollQuit reports whether the user or the host asked to stop.
	PollQuit() bool
}

// Pacer blocks until the next tick is due. *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Submit draws cmds on h in order.
func Submit(h Host, cmds []DrawCommand) {
	for _, c := range cmds {
		h.DrawSprite(c.Kind, c.Frame, c.X, c.Y)
	}
}

// State is a render loop phase.
type State uint8

const (
	StateInitializing State = iota
	StateRunning
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
