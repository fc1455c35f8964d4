package composer

import (
	"strings"
)

var numeralDegrees = map[string]int{
	"I": 0, "II": 1, "III": 2, "IV": 3, "V": 4, "VI": 5, "VII": 6,
}

// Numerals lists the accepted chord symbols in upper case.
func Numerals() []string {
	return []string{"I", "II", "III", "IV", "V", "VI", "VII"}
}

// Chord is one parsed progression entry.
type Chord struct {
	Numeral    string
	Degree     int
	Minor      bool
	Diminished bool
}

// ParseChord parses a roman numeral. Upper case is major, lower case minor;
// a trailing "°", "o" or "dim" marks a diminished chord.
func ParseChord(symbol string) (Chord, bool) {
	s := strings.TrimSpace(symbol)
	dim := false
	for _, marker := range []string{"°", "dim", "o"} {
		if strings.HasSuffix(s, marker) && len(s) > len(marker) {
			s = strings.TrimSuffix(s, marker)
			dim = true
			break
		}
	}

	upper := strings.ToUpper(s)
	degree, ok := numeralDegrees[upper]
	if !ok {
		return Chord{}, false
	}

	lower := strings.ToLower(s)
	if s != upper && s != lower {
		return Chord{}, false
	}

	return Chord{
		Numeral:    strings.TrimSpace(symbol),
		Degree:     degree,
		Minor:      s == lower || dim,
		Diminished: dim,
	}, true
}

// ParseProgression parses every symbol, failing on the first bad one.
func ParseProgression(symbols []string) ([]Chord, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyProgression
	}

	chords := make([]Chord, 0, len(symbols))
	for i, sym := range symbols {
		c, ok := ParseChord(sym)
		if !ok {
			return nil, &InvalidChordSymbolError{Symbol: sym, Index: i}
		}
		chords = append(chords, c)
	}
	return chords, nil
}

type voicingIntervals struct {
	major []int
	minor []int
}

var (
	diminishedIntervals = []int{0, 3, 6}

	voicings = map[Voicing]voicingIntervals{
		VoicingTriad:    {major: []int{0, 4, 7}, minor: []int{0, 3, 7}},
		VoicingSeventh:  {major: []int{0, 4, 7, 11}, minor: []int{0, 3, 7, 10}},
		VoicingExtended: {major: []int{0, 4, 7, 11, 14}, minor: []int{0, 3, 7, 10, 14}},
	}
)

// Harmony resolves progression entries to pitches against a scale.
type Harmony struct {
	scale     Scale
	chords    []Chord
	intervals voicingIntervals
}

// NewHarmony binds a progression and voicing to a scale. chords must be non-empty.
func NewHarmony(scale Scale, chords []Chord, voicing Voicing) *Harmony {
	iv, ok := voicings[voicing]
	if !ok {
		iv = voicings[VoicingTriad]
	}
	return &Harmony{scale: scale, chords: chords, intervals: iv}
}

// Len is the progression length.
func (h *Harmony) Len() int {
	return len(h.chords)
}

// Chord returns the chord at index modulo the progression length.
func (h *Harmony) Chord(index int) Chord {
	return h.chords[mod(index, len(h.chords))]
}

// ChordPitches voices the chord at index, shifted by octave, and drops pitches
// outside 0-127. The root is taken from the scale counting degrees up from
// the tonal center, wrapping around the scale.
func (h *Harmony) ChordPitches(index, octave int) []int {
	chord := h.Chord(index)
	notes := h.scale.Notes
	root := notes[mod(h.scale.Center()+chord.Degree, len(notes))]

	intervals := h.intervals.major
	switch {
	case chord.Diminished:
		intervals = diminishedIntervals
	case chord.Minor:
		intervals = h.intervals.minor
	}

	out := make([]int, 0, len(intervals))
	for _, iv := range intervals {
		p := root + iv + 12*octave
		if p >= 0 && p <= 127 {
			out = append(out, p)
		}
	}
	return out
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
