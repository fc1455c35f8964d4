package composer

const (
	arpChannel = 3
	arpSlices  = 16
)

// generateArp cycles the bar's chord an octave up in sixteenths.
func generateArp(s *session, w *trackWriter) {
	for _, sec := range s.sections {
		more := w.forEachBar(sec, func(bar, barTick int) bool {
			pitches := s.harmony.ChordPitches(bar, 1)
			if len(pitches) == 0 {
				return true
			}
			for i := 0; i < arpSlices; i++ {
				pos := float64(i * TicksPerBar / arpSlices)
				velocity := s.timing.Velocity(85, 10)
				if !w.add(pitches[i%len(pitches)], velocity, barTick+s.timing.Place(pos, 10), sixteenth*9/10) {
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
