package toasters

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// FieldConfig sizes a Field. Zero speeds mean the defaults.
type FieldConfig struct {
	Width, Height   int
	Toasters, Toast int
	MaxToasterSpeed int
	MaxToastSpeed   int
}

func (c FieldConfig) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Toasters < 0 || c.Toast < 0:
		return fmt.Errorf("%w: negative entity count", ErrInvalidConfig)
	case c.Toasters+c.Toast > GridWidth*GridHeight:
		return fmt.Errorf("%w: %d entities exceed %d grid slots", ErrInvalidConfig, c.Toasters+c.Toast, GridWidth*GridHeight)
	case c.MaxToasterSpeed < 1 || c.MaxToasterSpeed >= animationBase:
		return fmt.Errorf("%w: max toaster speed %d not in 1..%d", ErrInvalidConfig, c.MaxToasterSpeed, animationBase-1)
	case c.MaxToastSpeed < 1:
		return fmt.Errorf("%w: max toast speed %d", ErrInvalidConfig, c.MaxToastSpeed)
	}
	return nil
}

// Field owns the toaster and toast pools for one screen. It is not safe
// for concurrent use; a single render loop drives it.
//
// Pool order is part of the contract: toast are advanced before toasters,
// and toasters resolve collisions against the first overlapping toaster
// in pool order.
type Field struct {
	layout   Layout
	Toasters []Toaster
	Toast    []Toast

	// counter is the shared animation clock. It starts at 0 and wraps at 256.
	counter uint8

	sink  EventSink
	debug *slog.Logger
	stats tickStats
}

// NewField allocates both pools and spawns every entity. Slots are a
// single shuffled permutation: toasters take the first entries, toast the
// rest. Speeds and starting animation frames are drawn from rng.
func NewField(cfg FieldConfig, rng *rand.Rand) (*Field, error) {
	if cfg.MaxToasterSpeed == 0 {
		cfg.MaxToasterSpeed = DefaultMaxToasterSpeed
	}
	if cfg.MaxToastSpeed == 0 {
		cfg.MaxToastSpeed = DefaultMaxToastSpeed
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f := &Field{
		layout:   Layout{Width: cfg.Width, Height: cfg.Height},
		Toasters: make([]Toaster, cfg.Toasters),
		Toast:    make([]Toast, cfg.Toast),
	}
	slots := ShuffleSlots(cfg.Toasters+cfg.Toast, rng)
	for i := range f.Toasters {
		t := &f.Toasters[i]
		t.Slot = slots[i]
		t.Speed = 1 + rng.IntN(cfg.MaxToasterSpeed)
		t.Frame = rng.IntN(ToasterFrameCount)
		f.layout.respawn(&t.Body)
	}
	for i := range f.Toast {
		t := &f.Toast[i]
		t.Slot = slots[cfg.Toasters+i]
		t.Speed = 1 + rng.IntN(cfg.MaxToastSpeed)
		f.layout.respawn(&t.Body)
	}
	return f, nil
}

// Layout returns the field's screen layout.
func (f *Field) Layout() Layout {
	return f.layout
}

// Counter returns the animation clock.
func (f *Field) Counter() uint8 {
	return f.counter
}

// SetEventSink sets the optional event bridge. Pass nil to remove it.
func (f *Field) SetEventSink(sink EventSink) {
	f.sink = sink
}

// SetDebug enables per-window tick statistics on logger at debug level.
// Pass nil to disable.
func (f *Field) SetDebug(logger *slog.Logger) {
	f.debug = logger
	f.stats = tickStats{}
}

// Draw appends a command for every entity visible at its current
// position, toast first, then toasters, each in pool order.
func (f *Field) Draw(cmds []DrawCommand) []DrawCommand {
	for i := range f.Toast {
		t := &f.Toast[i]
		if f.layout.Visible(t.X, t.Y) {
			cmds = append(cmds, DrawCommand{Kind: KindToast, X: t.X, Y: t.Y})
		}
	}
	for i := range f.Toasters {
		t := &f.Toasters[i]
		if f.layout.Visible(t.X, t.Y) {
			cmds = append(cmds, DrawCommand{Kind: KindToaster, Frame: t.Frame, X: t.X, Y: t.Y})
		}
	}
	return cmds
}

// Advance runs one tick: the clock moves first, then every toast, then
// every toaster.
func (f *Field) Advance() {
	var t0 time.Time
	if f.debug != nil {
		t0 = time.Now()
	}

	f.counter++
	for i := range f.Toast {
		f.advanceToast(i)
	}
	for i := range f.Toasters {
		f.advanceToaster(i)
	}

	if f.debug != nil {
		f.stats.advanceTime += time.Since(t0)
		f.stats.ticks++
		if f.counter == 0 {
			f.debugLog()
		}
	}
}

// Tick captures the draw commands for the current positions and then
// advances the field, so what is shown always trails the simulation by
// one tick.
func (f *Field) Tick(cmds []DrawCommand) []DrawCommand {
	n := len(cmds)
	cmds = f.Draw(cmds)
	f.stats.drawn += len(cmds) - n
	f.Advance()
	return cmds
}
