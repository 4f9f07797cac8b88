// Package toasters is the flying toasters screensaver: winged toasters and
// slices of toast drift from the upper right to the lower left of the
// screen, forever.
//
// # Quick start
//
// [Run] picks a host from a [Config] and blocks until the user quits:
//
//	cfg := toasters.DefaultConfig()
//	cfg.Windowed = true
//	err := toasters.Run(ctx, cfg, slog.Default())
//
// Three hosts are available. [HostEbiten] draws with [Ebitengine] in a
// fullscreen or windowed native window. [HostTerminal] draws with half
// block characters through [tcell]. [HostCapture] composes frames in
// memory and writes screenshots from a JSON capture script.
//
// # Field
//
// A [Field] owns two fixed pools of entities, toasters and toast. Every
// entity holds one cell of a 4x4 spawn grid, placed a screen height up and
// to the right of the visible area. Each tick an entity moves left and
// down by its speed; when it leaves through the left or bottom edge it
// returns to its cell.
//
// Toasters avoid each other. A toaster whose next position overlaps
// another toaster either drops straight down or slides straight left at
// the other toaster's speed. Toast pass through everything.
//
// For full control, drive a field on your own [Host]:
//
//	f, err := toasters.NewField(toasters.FieldConfig{
//		Width: 800, Height: 600, Toasters: 10, Toast: 6,
//	}, toasters.NewRand(0))
//	loop, err := toasters.NewLoop(host, f, toasters.NewPacer(toasters.TPS), logger)
//	err = loop.Run(ctx)
//
// # Sprites
//
// Sprites are compiled in as XPM images and decoded at startup by
// [LoadSprites]. The decoder is also registered with the image package, so
// [image.Decode] reads XPM files.
//
// # Extras
//
// Startup fades sprites in (via [gween]), an FPS overlay can be shown, and
// respawn and deflection events can be bridged into a [Donburi] world with
// the toasters/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package toasters
