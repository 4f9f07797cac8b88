package toasters

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/gdamore/tcell/v2"
)

// NewRand returns the random source for a run. A zero seed draws one from
// the runtime's source, so runs differ.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run starts the host cfg selects and blocks until it stops. A quit
// request or a canceled ctx is a normal stop and returns nil.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	sprites, err := LoadSprites()
	if err != nil {
		return err
	}
	rng := NewRand(cfg.Seed)
	logger = logger.With("host", cfg.Host)
	logger.Debug("initializing", "seed", cfg.Seed, "toasters", cfg.Toasters, "toast", cfg.Toast)

	switch cfg.Host {
	case HostTerminal:
		return runTerminal(ctx, cfg, sprites, rng, logger)
	case HostCapture:
		return runCapture(ctx, cfg, sprites, rng, logger)
	default:
		s := NewScreensaver(cfg, sprites, rng, logger)
		stop := context.AfterFunc(ctx, s.Stop)
		defer stop()
		return RunScreensaver(cfg, s)
	}
}

func runTerminal(ctx context.Context, cfg Config, sprites *SpriteSet, rng *rand.Rand, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("toasters: terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("toasters: terminal: %w", err)
	}
	term, err := NewTerminal(screen, sprites)
	if err != nil {
		screen.Fini()
		return err
	}
	defer term.Close()
	return runLoop(ctx, cfg, term, NewPacer(TPS), rng, logger)
}

func runCapture(ctx context.Context, cfg Config, sprites *SpriteSet, rng *rand.Rand, logger *slog.Logger) error {
	data, err := os.ReadFile(cfg.Script)
	if err != nil {
		return fmt.Errorf("toasters: capture: %w", err)
	}
	runner, err := LoadCaptureScript(data, cfg.OutDir, logger)
	if err != nil {
		return err
	}
	canvas := NewCanvas(cfg.Width, cfg.Height, sprites)
	canvas.SetCaptureRunner(runner)
	if err := runLoop(ctx, cfg, canvas, nil, rng, logger); err != nil {
		return err
	}
	logger.Info("capture finished", "screenshots", len(runner.Saved()), "frames", canvas.Frames())
	return nil
}

// runLoop builds a field for host and runs it to completion.
func runLoop(ctx context.Context, cfg Config, host Host, pacer Pacer, rng *rand.Rand, logger *slog.Logger) error {
	w, h := host.Size()
	field, err := NewField(cfg.Field(w, h), rng)
	if err != nil {
		return err
	}
	if cfg.Debug {
		field.SetDebug(logger)
	}
	loop, err := NewLoop(host, field, pacer, logger)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}
