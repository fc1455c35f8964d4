package composer

import (
	"strings"
)

// Engine limits.
const (
	TicksPerBeat = 480
	BeatsPerBar  = 4
	TicksPerBar  = TicksPerBeat * BeatsPerBar

	DefaultNoteCeiling = 10000
	MaxTrackBars       = 256
	MaxSectionBars     = 64
	MaxSongBars        = 128
	MaxRepeats         = 8

	MinTempo     = 40
	MaxTempo     = 300
	DefaultTempo = 120

	DefaultKey   = "C"
	DefaultScale = "major"
)

// DrumComplexity selects the drum feel.
type DrumComplexity string

const (
	DrumsSimple  DrumComplexity = "simple"
	DrumsMedium  DrumComplexity = "medium"
	DrumsComplex DrumComplexity = "complex"
)

// BassPattern selects the bass line strategy.
type BassPattern string

const (
	BassRoot     BassPattern = "root"
	BassWalking  BassPattern = "walking"
	BassRhythmic BassPattern = "rhythmic"
	BassMelodic  BassPattern = "melodic"
)

// Voicing selects which chord tones are stacked.
type Voicing string

const (
	VoicingTriad    Voicing = "triad"
	VoicingSeventh  Voicing = "seventh"
	VoicingExtended Voicing = "extended"
)

// TrackKind names an instrument track.
type TrackKind string

const (
	TrackDrums  TrackKind = "drums"
	TrackBass   TrackKind = "bass"
	TrackChords TrackKind = "chords"
	TrackLead   TrackKind = "lead"
	TrackArp    TrackKind = "arp"
)

// AllTracks lists every track in file order.
var AllTracks = []TrackKind{TrackDrums, TrackBass, TrackChords, TrackLead, TrackArp}

// DefaultProgression is used when no progression is given.
var DefaultProgression = []string{"I", "V", "vi", "IV"}

// Params is the full generation configuration.
type Params struct {
	Key   string
	Scale string
	Tempo int

	Intro     bool
	Buildup   bool
	Drop      bool
	Breakdown bool
	Bridge    bool
	Outro     bool
	Verses    int
	Choruses  int

	Humanization int
	Swing        int
	Density      int

	DrumComplexity     DrumComplexity
	BassPattern        BassPattern
	Voicing            Voicing
	Fills              bool
	DynamicArrangement bool

	// Progression is a list of roman numerals. nil selects DefaultProgression;
	// an empty non-nil slice is rejected at generation time.
	Progression []string

	// Tracks lists enabled tracks. nil enables all of them.
	Tracks []TrackKind

	// Seed makes generation reproducible when set.
	Seed *uint64

	// NoteCeiling caps notes across all tracks. Zero selects DefaultNoteCeiling.
	NoteCeiling int
}

// Sanitize returns a copy with every field clamped or defaulted into range.
// Key and scale names are only trimmed here; they are validated by ScaleNotes.
func (p Params) Sanitize() Params {
	s := p

	s.Key = strings.TrimSpace(s.Key)
	if s.Key == "" {
		s.Key = DefaultKey
	}
	s.Scale = strings.TrimSpace(s.Scale)
	if s.Scale == "" {
		s.Scale = DefaultScale
	}

	if s.Tempo == 0 {
		s.Tempo = DefaultTempo
	}
	s.Tempo = clamp(s.Tempo, MinTempo, MaxTempo)

	s.Humanization = clamp(s.Humanization, 0, 100)
	s.Swing = clamp(s.Swing, 0, 100)
	s.Density = clamp(s.Density, 0, 100)

	switch DrumComplexity(strings.ToLower(string(s.DrumComplexity))) {
	case DrumsSimple, DrumsComplex:
		s.DrumComplexity = DrumComplexity(strings.ToLower(string(s.DrumComplexity)))
	default:
		s.DrumComplexity = DrumsMedium
	}

	switch BassPattern(strings.ToLower(string(s.BassPattern))) {
	case BassWalking, BassRhythmic, BassMelodic:
		s.BassPattern = BassPattern(strings.ToLower(string(s.BassPattern)))
	default:
		s.BassPattern = BassRoot
	}

	switch Voicing(strings.ToLower(string(s.Voicing))) {
	case VoicingSeventh, VoicingExtended:
		s.Voicing = Voicing(strings.ToLower(string(s.Voicing)))
	default:
		s.Voicing = VoicingTriad
	}

	if s.Progression == nil {
		s.Progression = append([]string(nil), DefaultProgression...)
	} else {
		s.Progression = append([]string{}, s.Progression...)
	}

	s.Tracks = sanitizeTracks(s.Tracks)

	if s.NoteCeiling <= 0 {
		s.NoteCeiling = DefaultNoteCeiling
	}

	s.Verses = clamp(s.Verses, 0, MaxRepeats)
	s.Choruses = clamp(s.Choruses, 0, MaxRepeats)
	s.Verses, s.Choruses = fitSongBars(s)

	return s
}

// Enabled reports whether kind is among the enabled tracks.
func (p Params) Enabled(kind TrackKind) bool {
	for _, k := range p.Tracks {
		if k == kind {
			return true
		}
	}
	return false
}

// fitSongBars scales verse and chorus counts down until the layout fits in
// MaxSongBars. A count that started positive never drops below one.
func fitSongBars(p Params) (int, int) {
	total := SongBars(p)
	if total <= MaxSongBars {
		return p.Verses, p.Choruses
	}

	ratio := float64(MaxSongBars) / float64(total)
	p.Verses = scaleCount(p.Verses, ratio)
	p.Choruses = scaleCount(p.Choruses, ratio)

	for SongBars(p) > MaxSongBars {
		switch {
		case p.Verses >= p.Choruses && p.Verses > 1:
			p.Verses--
		case p.Choruses > 1:
			p.Choruses--
		default:
			return p.Verses, p.Choruses
		}
	}
	return p.Verses, p.Choruses
}

func scaleCount(n int, ratio float64) int {
	if n <= 0 {
		return 0
	}
	return max(1, int(float64(n)*ratio))
}

func sanitizeTracks(tracks []TrackKind) []TrackKind {
	if tracks == nil {
		return append([]TrackKind(nil), AllTracks...)
	}

	want := make(map[TrackKind]bool, len(tracks))
	for _, t := range tracks {
		want[TrackKind(strings.ToLower(strings.TrimSpace(string(t))))] = true
	}

	out := []TrackKind{}
	for _, t := range AllTracks {
		if want[t] {
			out = append(out, t)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
