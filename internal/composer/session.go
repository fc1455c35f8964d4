package composer

import (
	"github.com/Conceptual-Machines/songsmith-api/internal/smf"
)

// session holds everything derived once per generation.
type session struct {
	params   Params
	sections []Section
	scale    Scale
	harmony  *Harmony
	timing   Timing
	rng      RandomSource
	budget   *NoteBudget
}

// energy is the section energy when dynamic arrangement is on, 1.0 otherwise.
func (s *session) energy(sec Section) float64 {
	if s.params.DynamicArrangement {
		return sec.Energy
	}
	return 1.0
}

func (s *session) isLastSection(idx int) bool {
	return idx == len(s.sections)-1
}

// trackWriter owns one track while it is generated.
type trackWriter struct {
	kind    TrackKind
	channel uint8
	track   *smf.Track
	budget  *NoteBudget
	bars    int
	notes   int
}

func newTrackWriter(kind TrackKind, channel uint8, tempo int, budget *NoteBudget) *trackWriter {
	t := smf.NewTrack()
	t.SetTempo(float64(tempo))
	return &trackWriter{kind: kind, channel: channel, track: t, budget: budget}
}

// add emits one note unless the budget is spent.
func (w *trackWriter) add(pitch, velocity, start, duration int) bool {
	if !w.budget.Take() {
		return false
	}
	w.track.AddNote(w.channel, pitch, velocity, start, duration)
	w.notes++
	return true
}

// forEachBar walks the bars of sec within the section and track bar ceilings.
// fn returns false to stop the whole track; so does forEachBar.
func (w *trackWriter) forEachBar(sec Section, fn func(bar, barTick int) bool) bool {
	n := min(sec.Bars, MaxSectionBars)
	for bar := 0; bar < n; bar++ {
		if w.bars >= MaxTrackBars {
			return false
		}
		w.bars++
		if !fn(bar, (sec.StartBar+bar)*TicksPerBar) {
			return false
		}
	}
	return true
}
