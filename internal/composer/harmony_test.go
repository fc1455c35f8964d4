package composer

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		symbol string
		want   Chord
		ok     bool
	}{
		{"I", Chord{Numeral: "I", Degree: 0}, true},
		{"vi", Chord{Numeral: "vi", Degree: 5, Minor: true}, true},
		{"vii°", Chord{Numeral: "vii°", Degree: 6, Minor: true, Diminished: true}, true},
		{"viio", Chord{Numeral: "viio", Degree: 6, Minor: true, Diminished: true}, true},
		{"IIdim", Chord{Numeral: "IIdim", Degree: 1, Minor: true, Diminished: true}, true},
		{"VII", Chord{Numeral: "VII", Degree: 6}, true},
		{"Iv", Chord{}, false},
		{"VIII", Chord{}, false},
		{"X", Chord{}, false},
		{"", Chord{}, false},
		{"°", Chord{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseChord(tt.symbol)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseChord(%q) = %+v, %v; want %+v, %v", tt.symbol, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseProgressionErrors(t *testing.T) {
	if _, err := ParseProgression(nil); !errors.Is(err, ErrEmptyProgression) {
		t.Errorf("expected ErrEmptyProgression, got %v", err)
	}

	_, err := ParseProgression([]string{"I", "V", "bogus"})
	var symErr *InvalidChordSymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("expected InvalidChordSymbolError, got %v", err)
	}
	if symErr.Symbol != "bogus" || symErr.Index != 2 {
		t.Errorf("got %+v", symErr)
	}
}

func newTestHarmony(t *testing.T, key, mode string, symbols []string, v Voicing) *Harmony {
	t.Helper()
	s, err := NewScale(key, mode)
	if err != nil {
		t.Fatal(err)
	}
	chords, err := ParseProgression(symbols)
	if err != nil {
		t.Fatal(err)
	}
	return NewHarmony(s, chords, v)
}

func TestChordPitchesCMajor(t *testing.T) {
	h := newTestHarmony(t, "C", "major", []string{"I", "V", "vi", "IV", "vii°"}, VoicingTriad)

	tests := []struct {
		index, octave int
		want          []int
	}{
		{0, 0, []int{60, 64, 67}},
		{1, 0, []int{67, 71, 74}},
		{2, 0, []int{69, 72, 76}},
		{3, 0, []int{65, 69, 72}},
		{4, 0, []int{71, 74, 77}},
		{0, -2, []int{36, 40, 43}},
		{0, 1, []int{72, 76, 79}},
		{5, 0, []int{60, 64, 67}},
		{-1, 0, []int{71, 74, 77}},
	}

	for _, tt := range tests {
		got := h.ChordPitches(tt.index, tt.octave)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ChordPitches(%d, %d) = %v, want %v", tt.index, tt.octave, got, tt.want)
		}
	}
}

func TestChordPitchesVoicings(t *testing.T) {
	tests := []struct {
		voicing Voicing
		symbol  string
		want    []int
	}{
		{VoicingSeventh, "I", []int{60, 64, 67, 71}},
		{VoicingSeventh, "ii", []int{62, 65, 69, 72}},
		{VoicingExtended, "I", []int{60, 64, 67, 71, 74}},
		{VoicingExtended, "ii", []int{62, 65, 69, 72, 76}},
		{VoicingExtended, "vii°", []int{71, 74, 77}},
	}

	for _, tt := range tests {
		h := newTestHarmony(t, "C", "major", []string{tt.symbol}, tt.voicing)
		if got := h.ChordPitches(0, 0); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s %s = %v, want %v", tt.voicing, tt.symbol, got, tt.want)
		}
	}
}

func TestChordPitchesAnyIndexAnyScale(t *testing.T) {
	symbols := []string{"I", "II", "III", "IV", "V", "VI", "VII", "i", "vii°"}
	for _, mode := range Modes() {
		h := newTestHarmony(t, "B", mode, symbols, VoicingExtended)
		for idx := -20; idx < 100; idx++ {
			for octave := -6; octave <= 6; octave++ {
				for _, p := range h.ChordPitches(idx, octave) {
					if p < 0 || p > 127 {
						t.Fatalf("%s: pitch %d out of range for index %d octave %d", mode, p, idx, octave)
					}
				}
			}
		}
	}
}

func TestChordPitchesFiltersOutOfRange(t *testing.T) {
	h := newTestHarmony(t, "C", "major", []string{"I"}, VoicingTriad)
	if got := h.ChordPitches(0, 6); len(got) != 0 {
		t.Errorf("expected all pitches filtered, got %v", got)
	}
	if got := h.ChordPitches(0, 5); !reflect.DeepEqual(got, []int{120, 124, 127}) {
		t.Errorf("got %v", got)
	}
}
