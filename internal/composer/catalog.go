package composer

import "sort"

// Presets are named progressions that can stand in for an explicit list.
var Presets = map[string][]string{
	"pop":         {"I", "V", "vi", "IV"},
	"jazz":        {"ii", "V", "I"},
	"edm_minor":   {"i", "VI", "III", "VII"},
	"three_chord": {"I", "IV", "V"},
}

// Preset returns a copy of the named progression.
func Preset(name string) ([]string, bool) {
	p, ok := Presets[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), p...), true
}

// PresetNames lists preset names alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
