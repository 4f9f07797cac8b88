package toasters

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Screensaver implements ebiten.Game. The field is built on the first
// Update after Layout reports the screen size, and that size is kept for
// the rest of the run; later window resizes are scaled by ebiten.
//
// Update captures draw commands and advances the field; Draw only replays
// the captured commands, so the picture trails the simulation by one tick
// whichever order ebiten calls them in.
type Screensaver struct {
	cfg     Config
	sprites *SpriteSet
	rng     *rand.Rand
	log     *slog.Logger
	sink    EventSink

	width, height int
	field         *Field
	cmds          []DrawCommand
	state         State
	stop          atomic.Bool

	toasterTex [ToasterFrameCount]*ebiten.Image
	toastTex   *ebiten.Image
	op         ebiten.DrawImageOptions

	fade *Fade
	fps  *fpsOverlay
}

// NewScreensaver returns a game in StateInitializing. A nil logger
// discards log output.
func NewScreensaver(cfg Config, sprites *SpriteSet, rng *rand.Rand, logger *slog.Logger) *Screensaver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Screensaver{
		cfg:     cfg,
		sprites: sprites,
		rng:     rng,
		log:     logger,
		fade:    NewFade(cfg.FadeIn),
	}
	if cfg.ShowFPS {
		s.fps = &fpsOverlay{}
	}
	return s
}

// SetEventSink forwards field events to sink once the field exists.
func (s *Screensaver) SetEventSink(sink EventSink) {
	s.sink = sink
	if s.field != nil {
		s.field.SetEventSink(sink)
	}
}

// Field returns the running field, or nil before the first Update.
func (s *Screensaver) Field() *Field {
	return s.field
}

// State returns the current phase.
func (s *Screensaver) State() State {
	return s.state
}

// Stop asks the game to end at the next Update. It is safe to call from
// any goroutine.
func (s *Screensaver) Stop() {
	s.stop.Store(true)
}

// quitRequested reports an Escape press or a primary pointer press.
func quitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (s *Screensaver) Update() error {
	if quitRequested() {
		s.Stop()
	}
	return s.tick()
}

// tick runs one simulation step, or ends the game once Stop was called.
func (s *Screensaver) tick() error {
	if s.stop.Load() {
		s.state = StateTerminating
		return ebiten.Termination
	}
	if s.field == nil {
		if s.width == 0 || s.height == 0 {
			return nil
		}
		if err := s.start(); err != nil {
			return err
		}
	}

	dt := 1.0 / float64(TPS)
	s.fade.Update(float32(dt))
	if s.fps != nil {
		s.fps.update(dt)
	}
	s.cmds = s.field.Tick(s.cmds[:0])
	return nil
}

// start builds the field for the laid out size and enters StateRunning.
func (s *Screensaver) start() error {
	f, err := NewField(s.cfg.Field(s.width, s.height), s.rng)
	if err != nil {
		return err
	}
	f.SetEventSink(s.sink)
	if s.cfg.Debug {
		f.SetDebug(s.log)
	}
	s.field = f
	s.cmds = make([]DrawCommand, 0, len(f.Toasters)+len(f.Toast))
	s.state = StateRunning
	s.log.Info("running", "width", s.width, "height", s.height,
		"toasters", len(f.Toasters), "toast", len(f.Toast))
	return nil
}

// ensureTextures uploads the sprite set on first use. Textures live until
// release.
func (s *Screensaver) ensureTextures() {
	if s.toastTex != nil {
		return
	}
	for i, img := range s.sprites.Toaster {
		s.toasterTex[i] = ebiten.NewImageFromImage(img)
	}
	s.toastTex = ebiten.NewImageFromImage(s.sprites.Toast)
}

func (s *Screensaver) texture(kind Kind, frame int) *ebiten.Image {
	if kind == KindToast {
		return s.toastTex
	}
	return s.toasterTex[frame%ToasterFrameCount]
}

func (s *Screensaver) Draw(screen *ebiten.Image) {
	screen.Fill(Background)
	s.ensureTextures()

	alpha := float32(s.fade.Alpha)
	for _, c := range s.cmds {
		s.op.GeoM.Reset()
		s.op.GeoM.Translate(float64(c.X), float64(c.Y))
		s.op.ColorScale.Reset()
		s.op.ColorScale.ScaleAlpha(alpha)
		screen.DrawImage(s.texture(c.Kind, c.Frame), &s.op)
	}

	if s.fps != nil {
		s.fps.draw(screen)
	}
}

// Layout fixes the logical screen to the first outside size reported.
func (s *Screensaver) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.width == 0 || s.height == 0 {
		s.width, s.height = outsideWidth, outsideHeight
	}
	return s.width, s.height
}

// release frees the uploaded textures.
func (s *Screensaver) release() {
	for i, tex := range s.toasterTex {
		if tex != nil {
			tex.Deallocate()
			s.toasterTex[i] = nil
		}
	}
	if s.toastTex != nil {
		s.toastTex.Deallocate()
		s.toastTex = nil
	}
}

// RunScreensaver opens the window described by cfg and runs s until the
// window closes or s asks to terminate.
func RunScreensaver(cfg Config, s *Screensaver) error {
	ebiten.SetTPS(TPS)
	ebiten.SetWindowTitle("Flying Toasters")
	if cfg.Windowed {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	} else {
		if cfg.WindowID != 0 {
			s.log.Warn("cannot draw into a foreign window, running fullscreen",
				"env", EnvWindow, "window", cfg.WindowID)
		}
		ebiten.SetFullscreen(true)
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	defer func() {
		s.state = StateTerminating
		s.release()
		s.log.Info("terminating")
	}()
	return ebiten.RunGame(s)
}
