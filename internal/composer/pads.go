package composer

const padChannel = 1

// generateChords holds one voicing per bar for 95% of the bar.
func generateChords(s *session, w *trackWriter) {
	for _, sec := range s.sections {
		base := s.energy(sec) * 80
		more := w.forEachBar(sec, func(bar, barTick int) bool {
			pitches := s.harmony.ChordPitches(bar, 0)
			if len(pitches) == 0 {
				return true
			}
			start := barTick + s.timing.Place(0, 10)
			velocity := s.timing.Velocity(base, 10)
			for _, p := range pitches {
				if !w.add(p, velocity, start, TicksPerBar*95/100) {
					return false
				}
			}
			return true
		})
		if !more {
			return
		}
	}
}
