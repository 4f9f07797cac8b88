package toasters

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade eases sprite opacity from 0 to 1 when the screensaver starts.
// The owner calls Update once per tick and reads Alpha when drawing.
type Fade struct {
	tween *gween.Tween
	Alpha float64
	Done  bool
}

// NewFade returns a fade lasting seconds. A non-positive duration returns
// a fade that is already done at full opacity.
func NewFade(seconds float64) *Fade {
	if seconds <= 0 {
		return &Fade{Alpha: 1, Done: true}
	}
	return &Fade{tween: gween.New(0, 1, float32(seconds), ease.OutQuad)}
}

// Update advances the fade by dt seconds.
func (f *Fade) Update(dt float32) {
	if f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	f.Alpha = float64(val)
	if finished {
		f.Alpha = 1
		f.Done = true
	}
}
