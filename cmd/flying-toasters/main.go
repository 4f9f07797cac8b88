// The flying-toasters executable runs the flying toasters screensaver in a
// window, in a terminal, or headless to capture screenshots.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phanxgames/toasters"
)

// Exit status codes.
const (
	success       = 0
	internalError = 1 << (iota - 1)
	invocationError
)

func main() { os.Exit(Main()) }

func Main() int {
	defaults := toasters.DefaultConfig()
	configPath := flag.String("config", "", "path to a TOML config file")
	host := flag.String("host", defaults.Host, "host to run on (ebiten, terminal or capture)")
	windowed := flag.Bool("windowed", defaults.Windowed, "run in a window instead of fullscreen")
	width := flag.Int("width", defaults.Width, "window or capture width")
	height := flag.Int("height", defaults.Height, "window or capture height")
	seed := flag.Uint64("seed", defaults.Seed, "random seed, 0 for a random run")
	script := flag.String("script", defaults.Script, "capture script (JSON)")
	out := flag.String("out", defaults.OutDir, "capture screenshot directory")
	showFPS := flag.Bool("fps", defaults.ShowFPS, "show the FPS overlay")
	debug := flag.Bool("debug", defaults.Debug, "log field statistics")
	logging := flag.String("log", "info", "logging level (debug, info, warn or error)")
	flag.Parse()

	var level slog.LevelVar
	if err := level.UnmarshalText([]byte(*logging)); err != nil {
		flag.Usage()
		return invocationError
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	cfg := defaults
	if *configPath != "" {
		var err error
		cfg, err = toasters.LoadConfig(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			return invocationError
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Error("environment", "error", err)
		return invocationError
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "windowed":
			cfg.Windowed = *windowed
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "seed":
			cfg.Seed = *seed
		case "script":
			cfg.Script = *script
		case "out":
			cfg.OutDir = *out
		case "fps":
			cfg.ShowFPS = *showFPS
		case "debug":
			cfg.Debug = *debug
		}
	})
	if cfg.Debug && level.Level() > slog.LevelDebug {
		level.Set(slog.LevelDebug)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := toasters.Run(ctx, cfg, log)
	switch {
	case err == nil:
		return success
	case errors.Is(err, toasters.ErrInvalidConfig):
		fmt.Fprintln(os.Stderr, err)
		return invocationError
	default:
		log.Error("run", "error", err)
		return internalError
	}
}
