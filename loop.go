package toasters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// NewPacer returns a limiter that releases tps ticks per second with no
// burst. Ticks that run late are not made up.
func NewPacer(tps int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second/time.Duration(tps)), 1)
}

// Loop drives a Field on a Host at a fixed tick rate.
type Loop struct {
	host   Host
	field  *Field
	pacer  Pacer
	log    *slog.Logger
	state  State
	frames int
	cmds   []DrawCommand
}

// NewLoop returns a loop in StateInitializing. The field must have been
// built for the host's size. A nil logger discards log output.
func NewLoop(host Host, field *Field, pacer Pacer, logger *slog.Logger) (*Loop, error) {
	w, h := host.Size()
	if l := field.Layout(); l.Width != w || l.Height != h {
		return nil, fmt.Errorf("toasters: field is %dx%d but host is %dx%d", l.Width, l.Height, w, h)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		host:  host,
		field: field,
		pacer: pacer,
		log:   logger,
		cmds:  make([]DrawCommand, 0, len(field.Toasters)+len(field.Toast)),
	}, nil
}

// State returns the loop's current phase.
func (l *Loop) State() State {
	return l.state
}

// Frames returns the number of frames presented.
func (l *Loop) Frames() int {
	return l.frames
}

// Step runs one tick: clear, capture draws at pre-tick positions, advance
// the field, draw, present. It does not pace.
func (l *Loop) Step() error {
	l.host.Clear()
	l.cmds = l.field.Tick(l.cmds[:0])
	Submit(l.host, l.cmds)
	if err := l.host.Present(); err != nil {
		return fmt.Errorf("toasters: present frame %d: %w", l.frames, err)
	}
	l.frames++
	return nil
}

// Run ticks until the host asks to quit or ctx is done. Cancellation and
// quit requests are only observed between ticks. A canceled context is a
// normal stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateRunning
	w, h := l.host.Size()
	l.log.Info("running", "width", w, "height", h,
		"toasters", len(l.field.Toasters), "toast", len(l.field.Toast))
	defer func() {
		l.state = StateTerminating
		l.log.Info("terminating", "frames", l.frames)
	}()

	for {
		if ctx.Err() != nil || l.host.PollQuit() {
			return nil
		}
		if err := l.Step(); err != nil {
			return err
		}
		if l.pacer == nil {
			continue
		}
		if err := l.pacer.Wait(ctx); err != nil {
			// The limiter refuses to wait past a deadline it can already
			// see, before ctx itself reports done.
			if _, ok := ctx.Deadline(); ok || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("toasters: pace: %w", err)
		}
	}
}
