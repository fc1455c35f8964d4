package composer

const (
	leadChannel       = 2
	leadMaxIterations = 100
)

var (
	leadDurations = []int{TicksPerBeat, TicksPerBeat / 2, TicksPerBeat / 4}
	leadFallback  = []int{60, 64, 67, 72}
)

func leadRange(scale Scale) []int {
	if notes := scale.Within(60, 84); len(notes) > 0 {
		return notes
	}
	if notes := scale.Within(48, 96); len(notes) > 0 {
		return notes
	}
	return leadFallback
}

func generateLead(s *session, w *trackWriter) {
	notes := leadRange(s.scale)
	density := float64(s.params.Density) / 100

	for _, sec := range s.sections {
		if sec.Type == SectionIntro && s.rng.Float64() <= 0.3 {
			continue
		}
		energy := s.energy(sec)
		more := w.forEachBar(sec, func(_, barTick int) bool {
			return melodyBar(s, w, barTick, notes, energy, density)
		})
		if !more {
			return
		}
	}
}

// melodyBar greedily fills one bar with random lengths, keeping each slot
// with probability density.
func melodyBar(s *session, w *trackWriter, barTick int, notes []int, energy, density float64) bool {
	pos := 0
	for i := 0; pos < TicksPerBar && i < leadMaxIterations; i++ {
		dur := leadDurations[pick(s.rng, len(leadDurations))]
		if s.rng.Float64() < density {
			note := notes[pick(s.rng, len(notes))]
			velocity := s.timing.Velocity(energy*90, 10)
			if !w.add(note, velocity, barTick+s.timing.Place(float64(pos), 10), dur*9/10) {
				return false
			}
		}
		pos += dur
	}
	return true
}

func pick(rng RandomSource, n int) int {
	return min(int(rng.Float64()*float64(n)), n-1)
}
