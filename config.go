package toasters

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("toasters: invalid config")

// EnvWindow names the variable a host screensaver manager uses to hand us
// the window to draw into.
const EnvWindow = "XSCREENSAVER_WINDOW"

// Hosts a Config can select.
const (
	HostEbiten   = "ebiten"   // native window, windowed or fullscreen
	HostTerminal = "terminal" // tcell screen with half-block cells
	HostCapture  = "capture"  // headless canvas driven by a capture script
)

// Config is the complete startup configuration. Only entity counts and
// speeds change what the screensaver does; the rest selects and tunes the
// host.
type Config struct {
	Host     string `toml:"host"`
	Windowed bool   `toml:"windowed"`
	Width    int    `toml:"width"`  // window size when windowed, canvas size for capture
	Height   int    `toml:"height"` // window size when windowed, canvas size for capture

	Toasters        int `toml:"toasters"`
	Toast           int `toml:"toast"`
	MaxToasterSpeed int `toml:"max_toaster_speed"`
	MaxToastSpeed   int `toml:"max_toast_speed"`

	// Seed fixes the random source when non-zero.
	Seed uint64 `toml:"seed"`

	FadeIn  float64 `toml:"fade_in"` // seconds, 0 disables
	ShowFPS bool    `toml:"show_fps"`
	Debug   bool    `toml:"debug"`

	// Script and OutDir are used by HostCapture.
	Script string `toml:"script"`
	OutDir string `toml:"out"`

	// WindowID is the externally supplied window handle, 0 if none.
	WindowID uint64 `toml:"-"`
}

// DefaultConfig returns the configuration used when no file or flags
// override it.
func DefaultConfig() Config {
	return Config{
		Host:            HostEbiten,
		Width:           1920,
		Height:          1080,
		Toasters:        DefaultToasterCount,
		Toast:           DefaultToastCount,
		MaxToasterSpeed: DefaultMaxToasterSpeed,
		MaxToastSpeed:   DefaultMaxToastSpeed,
		FadeIn:          1,
		OutDir:          "screenshots",
	}
}

// LoadConfig overlays the TOML file at path on DefaultConfig. Keys the
// Config does not know are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyEnv reads the embedding window handle through getenv, usually
// os.Getenv. An unset or empty variable leaves WindowID alone.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	s := getenv(EnvWindow)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	id, err := ParseWindowID(s)
	if err != nil {
		return err
	}
	c.WindowID = id
	return nil
}

// ParseWindowID parses a window handle written as hex with a 0x prefix or
// as decimal. Surrounding space is ignored.
func ParseWindowID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	base := 10
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		s, base = rest, 16
	}
	id, err := strconv.ParseUint(s, base, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: window id %q", ErrInvalidConfig, s)
	}
	return id, nil
}

// Field returns the FieldConfig for a screen of the given size.
func (c Config) Field(width, height int) FieldConfig {
	return FieldConfig{
		Width:           width,
		Height:          height,
		Toasters:        c.Toasters,
		Toast:           c.Toast,
		MaxToasterSpeed: c.MaxToasterSpeed,
		MaxToastSpeed:   c.MaxToastSpeed,
	}
}

// Validate checks everything that can be checked before a host exists.
func (c Config) Validate() error {
	switch c.Host {
	case HostEbiten, HostTerminal, HostCapture:
	default:
		return fmt.Errorf("%w: unknown host %q", ErrInvalidConfig, c.Host)
	}
	if c.FadeIn < 0 {
		return fmt.Errorf("%w: fade_in %v", ErrInvalidConfig, c.FadeIn)
	}
	if c.Host == HostCapture && c.Script == "" {
		return fmt.Errorf("%w: capture host needs a script", ErrInvalidConfig)
	}
	return c.Field(c.Width, c.Height).validate()
}
