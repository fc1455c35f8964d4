package composer

// General MIDI percussion keys.
const (
	drumKick      = 36
	drumSnare     = 38
	drumClosedHat = 42
	drumTomHigh   = 48
	drumTomMid    = 45
	drumTomLow    = 43
	drumCrash     = 49

	drumChannel = 9
)

// drumFeel is the per-complexity pattern shape.
type drumFeel struct {
	hatDivisions   int
	backbeatKick   func(SectionType) bool
	syncopatedKick func(SectionType) bool
}

func always(SectionType) bool { return true }
func never(SectionType) bool  { return false }

var drumFeels = map[DrumComplexity]drumFeel{
	DrumsSimple: {
		hatDivisions:   4,
		backbeatKick:   func(t SectionType) bool { return t == SectionChorus },
		syncopatedKick: never,
	},
	DrumsMedium: {
		hatDivisions:   8,
		backbeatKick:   always,
		syncopatedKick: never,
	},
	DrumsComplex: {
		hatDivisions:   8,
		backbeatKick:   always,
		syncopatedKick: func(t SectionType) bool { return t != SectionIntro },
	},
}

func generateDrums(s *session, w *trackWriter) {
	feel, ok := drumFeels[s.params.DrumComplexity]
	if !ok {
		feel = drumFeels[DrumsMedium]
	}

	// Only the first chorus and the first bridge of the song open with a crash.
	seen := make(map[SectionType]bool, len(s.sections))

	for idx, sec := range s.sections {
		energy := s.energy(sec)
		last := min(sec.Bars, MaxSectionBars) - 1
		fill := s.params.Fills && !s.isLastSection(idx)
		crash := !seen[sec.Type] && (sec.Type == SectionChorus || sec.Type == SectionBridge)
		seen[sec.Type] = true

		more := w.forEachBar(sec, func(bar, barTick int) bool {
			if fill && bar == last {
				return drumFill(w, barTick, energy)
			}
			return drumBar(s, w, feel, sec, barTick, energy, crash && bar == 0)
		})
		if !more {
			return
		}
	}
}

func drumBar(s *session, w *trackWriter, feel drumFeel, sec Section, barTick int, energy float64, crash bool) bool {
	t := s.timing
	at := func(beats float64) int { return barTick + t.Place(beats*TicksPerBeat, 10) }

	kick := t.Velocity(90*energy, 10)
	if !w.add(drumKick, kick, at(0), TicksPerBeat/2) {
		return false
	}
	if feel.backbeatKick(sec.Type) && !w.add(drumKick, kick-5, at(2), TicksPerBeat/2) {
		return false
	}
	if feel.syncopatedKick(sec.Type) && !w.add(drumKick, kick-10, at(3.5), TicksPerBeat/4) {
		return false
	}

	snare := t.Velocity(95*energy, 10)
	if !w.add(drumSnare, snare, at(1), TicksPerBeat/2) || !w.add(drumSnare, snare, at(3), TicksPerBeat/2) {
		return false
	}

	divisions := min(feel.hatDivisions, 16)
	hat := t.Velocity(70*energy, 15)
	for i := 0; i < divisions; i++ {
		accent := -10
		if i%2 == 0 {
			accent = 10
		}
		pos := float64(i*TicksPerBar) / float64(divisions)
		if !w.add(drumClosedHat, hat+accent+t.Jitter(5), barTick+t.Place(pos, 10), TicksPerBeat/8) {
			return false
		}
	}

	if crash {
		return w.add(drumCrash, 100, barTick, TicksPerBeat*2)
	}
	return true
}

// drumFill replaces a bar with a descending tom run over the last beat.
func drumFill(w *trackWriter, barTick int, energy float64) bool {
	vel := roundHalfUp(85 * energy)
	hits := []struct {
		key, slot, vel int
	}{
		{drumTomHigh, 12, vel},
		{drumTomHigh, 13, vel - 5},
		{drumTomMid, 14, vel - 5},
		{drumTomLow, 15, vel + 10},
	}
	for _, h := range hits {
		if !w.add(h.key, h.vel, barTick+h.slot*sixteenth, sixteenth) {
			return false
		}
	}
	return true
}
