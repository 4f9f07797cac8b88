package toasters

import "time"

// tickStats accumulates timing and event counts between debug log lines.
// advanceTime and ticks are only measured while a debug logger is set.
type tickStats struct {
	ticks       int
	advanceTime time.Duration
	respawns    int
	deflections int
	drawn       int
}

// debugLog writes the accumulated stats once per clock cycle (256 ticks)
// and resets them.
func (f *Field) debugLog() {
	s := f.stats
	if s.ticks == 0 {
		return
	}
	f.debug.Debug("field stats",
		"ticks", s.ticks,
		"advance_avg", s.advanceTime/time.Duration(s.ticks),
		"respawns", s.respawns,
		"deflections", s.deflections,
		"drawn_avg", float64(s.drawn)/float64(s.ticks),
	)
	f.stats = tickStats{}
}
