package toasters

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// captureStep is a single action in a capture script.
type captureStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// captureScript is the top-level JSON structure for a capture script.
type captureScript struct {
	Steps []captureStep `json:"steps"`
}

// CaptureRunner sequences waits and screenshots across frames of a
// Canvas. Attach it with Canvas.SetCaptureRunner.
//
//	{"steps": [
//		{"action": "wait", "frames": 120},
//		{"action": "screenshot", "label": "two-seconds"}
//	]}
type CaptureRunner struct {
	steps     []captureStep
	cursor    int
	waitCount int
	done      bool

	dir   string
	stamp string
	log   *slog.Logger
	saved []string
}

// LoadCaptureScript parses a JSON capture script. Screenshots are written
// to dir, which is created on the first screenshot. A nil logger discards
// log output.
func LoadCaptureScript(jsonData []byte, dir string, logger *slog.Logger) (*CaptureRunner, error) {
	var script captureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("toasters: parse capture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("toasters: parse capture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait":
		default:
			return nil, fmt.Errorf("toasters: parse capture script: step %d: unknown action %q", i, st.Action)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CaptureRunner{
		steps: script.Steps,
		dir:   dir,
		stamp: time.Now().Format("20060102_150405"),
		log:   logger,
	}, nil
}

// Done reports whether every step has run.
func (r *CaptureRunner) Done() bool {
	return r.done
}

// Saved returns the paths written so far.
func (r *CaptureRunner) Saved() []string {
	return r.saved
}

// step advances the runner by one presented frame.
func (r *CaptureRunner) step(c *Canvas) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		if err := r.screenshot(c, st.Label); err != nil {
			return err
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

// screenshot writes the canvas's current frame as a PNG named after the
// run stamp, frame number and label.
func (r *CaptureRunner) screenshot(c *Canvas, label string) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("toasters: screenshot: %w", err)
	}
	name := fmt.Sprintf("%s_%05d_%s.png", r.stamp, c.Frames(), sanitizeLabel(label))
	path := filepath.Join(r.dir, name)
	if err := c.SavePNG(path); err != nil {
		return fmt.Errorf("toasters: screenshot: %w", err)
	}
	r.saved = append(r.saved, path)
	r.log.Info("screenshot", "path", path, "frame", c.Frames())
	return nil
}

// sanitizeLabel makes label safe to embed in a file name. Runes other than
// ASCII letters, digits, '-' and '.' become '_'.
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(fileNameRune, label)
}

func fileNameRune(r rune) rune {
	if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
		return r
	}
	return '_'
}
