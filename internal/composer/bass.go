package composer

const (
	bassChannel = 0
	bassLow     = 28
	bassHigh    = 55
	bassJitter  = 5
)

// bassFallback is used when the scale has nothing in either bass range.
var bassFallback = []int{36}

// bassLine plays one bar over an anchor root.
type bassLine interface {
	play(t Timing, w *trackWriter, barTick, root int, notes []int, velocity int) bool
}

var bassLines = map[BassPattern]bassLine{
	BassRoot:     rootBass{},
	BassWalking:  walkingBass{},
	BassRhythmic: rhythmicBass{},
	BassMelodic:  melodicBass{},
}

// bassRange picks the scale notes for the bass, widening the range before
// falling back to a fixed low C.
func bassRange(scale Scale) []int {
	if notes := scale.Within(bassLow, bassHigh); len(notes) > 0 {
		return notes
	}
	if notes := scale.Within(24, 60); len(notes) > 0 {
		return notes
	}
	return bassFallback
}

func bassVelocity(t SectionType) int {
	switch t {
	case SectionChorus:
		return 100
	case SectionVerse:
		return 85
	default:
		return 90
	}
}

func generateBass(s *session, w *trackWriter) {
	line, ok := bassLines[s.params.BassPattern]
	if !ok {
		line = rootBass{}
	}
	notes := bassRange(s.scale)

	for _, sec := range s.sections {
		velocity := bassVelocity(sec.Type)
		more := w.forEachBar(sec, func(bar, barTick int) bool {
			root := notes[0]
			if chord := s.harmony.ChordPitches(bar, -2); len(chord) > 0 {
				root = chord[0]
			}
			return line.play(s.timing, w, barTick, root, notes, velocity)
		})
		if !more {
			return
		}
	}
}

type rootBass struct{}

func (rootBass) play(t Timing, w *trackWriter, barTick, root int, _ []int, velocity int) bool {
	return w.add(root, velocity, barTick+t.Place(0, bassJitter), TicksPerBar)
}

// walkingBass steps up through the bass notes from the root, one per beat.
type walkingBass struct{}

func (walkingBass) play(t Timing, w *trackWriter, barTick, root int, notes []int, velocity int) bool {
	start := indexOf(notes, root)
	if start < 0 {
		start = 0
	}
	for beat := 0; beat < BeatsPerBar; beat++ {
		note := notes[(start+beat)%len(notes)]
		if !w.add(note, velocity, barTick+t.Place(float64(beat*TicksPerBeat), bassJitter), TicksPerBeat*9/10) {
			return false
		}
	}
	return true
}

// rhythmicBass is a syncopated six-hit eighth-note figure on the root.
type rhythmicBass struct{}

var rhythmicBeats = []float64{0, 0.5, 1.5, 2, 2.5, 3.5}

func (rhythmicBass) play(t Timing, w *trackWriter, barTick, root int, _ []int, velocity int) bool {
	for _, beat := range rhythmicBeats {
		if !w.add(root, velocity, barTick+t.Place(beat*TicksPerBeat, bassJitter), TicksPerBeat*4/10) {
			return false
		}
	}
	return true
}

// melodicBass plays root, fifth, root on beats 1, 3 and 4.
type melodicBass struct{}

func (melodicBass) play(t Timing, w *trackWriter, barTick, root int, _ []int, velocity int) bool {
	fifth := min(root+7, 127)
	return w.add(root, velocity, barTick+t.Place(0, bassJitter), TicksPerBeat) &&
		w.add(fifth, velocity-5, barTick+t.Place(2*TicksPerBeat, bassJitter), TicksPerBeat) &&
		w.add(root, velocity, barTick+t.Place(3*TicksPerBeat, bassJitter), TicksPerBeat)
}

func indexOf(notes []int, n int) int {
	for i, v := range notes {
		if v == n {
			return i
		}
	}
	return -1
}
