package composer

import (
	"sort"
	"strings"
)

// OctaveSpan is the number of octaves a scale covers, centered on the tonal center.
const OctaveSpan = 5

var scalePatterns = map[string][]int{
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"harmonic_minor":   {0, 2, 3, 5, 7, 8, 11},
	"melodic_minor":    {0, 2, 3, 5, 7, 9, 11},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"locrian":          {0, 1, 3, 5, 6, 8, 10},
	"pentatonic_major": {0, 2, 4, 7, 9},
	"pentatonic_minor": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},
	"whole_tone":       {0, 2, 4, 6, 8, 10},
}

var scaleAliases = map[string]string{
	"ionian":           "major",
	"aeolian":          "minor",
	"natural_minor":    "minor",
	"harmonic":         "harmonic_minor",
	"melodic":          "melodic_minor",
	"major_pentatonic": "pentatonic_major",
	"minor_pentatonic": "pentatonic_minor",
	"wholetone":        "whole_tone",
}

// tonal centers in the octave starting at middle C
var tonalCenters = map[string]int{
	"C": 60, "C#": 61, "Db": 61,
	"D": 62, "D#": 63, "Eb": 63,
	"E": 64,
	"F": 65, "F#": 66, "Gb": 66,
	"G": 67, "G#": 68, "Ab": 68,
	"A": 69, "A#": 70, "Bb": 70,
	"B": 71,
}

// Keys lists the accepted tonal centers in sharp spelling.
func Keys() []string {
	return []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
}

// Modes lists the canonical scale names.
func Modes() []string {
	names := make([]string, 0, len(scalePatterns))
	for name := range scalePatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scale is an ascending run of absolute pitches around a tonal center.
type Scale struct {
	Root    int
	Mode    string
	Pattern []int
	Notes   []int
}

// Center is the index of the tonal center within Notes.
func (s Scale) Center() int {
	return len(s.Pattern) * (OctaveSpan / 2)
}

// Within returns the scale notes in [lo, hi].
func (s Scale) Within(lo, hi int) []int {
	var out []int
	for _, n := range s.Notes {
		if n >= lo && n <= hi {
			out = append(out, n)
		}
	}
	return out
}

// ParseKey resolves a key such as "F#", "Bb" or "Am" into its tonal center
// and whether the minor suffix was present.
func ParseKey(key string) (int, bool, error) {
	k := strings.TrimSpace(key)
	minor := false
	if len(k) > 1 && strings.HasSuffix(k, "m") {
		minor = true
		k = strings.TrimSuffix(k, "m")
	}
	if k == "" {
		return 0, false, &InvalidKeyError{Key: key}
	}

	k = strings.ToUpper(k[:1]) + k[1:]
	root, ok := tonalCenters[k]
	if !ok {
		return 0, false, &InvalidKeyError{Key: key}
	}
	return root, minor, nil
}

// NormalizeMode maps a user supplied mode name to its canonical form.
func NormalizeMode(mode string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(mode))
	m = strings.NewReplacer(" ", "_", "-", "_").Replace(m)
	if alias, ok := scaleAliases[m]; ok {
		m = alias
	}
	_, ok := scalePatterns[m]
	return m, ok
}

// NewScale builds the scale for key and mode. A minor key combined with the
// major mode selects natural minor.
func NewScale(key, mode string) (Scale, error) {
	root, minor, err := ParseKey(key)
	if err != nil {
		return Scale{}, err
	}

	name, ok := NormalizeMode(mode)
	if !ok {
		return Scale{}, &InvalidScaleError{Scale: mode}
	}
	if minor && name == "major" {
		name = "minor"
	}

	pattern := scalePatterns[name]
	notes := make([]int, 0, len(pattern)*OctaveSpan)
	for octave := -(OctaveSpan / 2); octave <= OctaveSpan/2; octave++ {
		for _, interval := range pattern {
			notes = append(notes, root+interval+12*octave)
		}
	}

	return Scale{
		Root:    root,
		Mode:    name,
		Pattern: pattern,
		Notes:   notes,
	}, nil
}

// ScaleNotes returns the ascending pitch list for key and mode.
func ScaleNotes(key, mode string) ([]int, error) {
	s, err := NewScale(key, mode)
	if err != nil {
		return nil, err
	}
	return s.Notes, nil
}
