package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T, p Params, rng RandomSource) *session {
	t.Helper()
	p = p.Sanitize()
	scale, err := NewScale(p.Key, p.Scale)
	require.NoError(t, err)
	chords, err := ParseProgression(p.Progression)
	require.NoError(t, err)
	return &session{
		params:   p,
		sections: BuildStructure(p),
		scale:    scale,
		harmony:  NewHarmony(scale, chords, p.Voicing),
		timing:   NewTiming(rng, p.Swing, p.Humanization),
		rng:      rng,
		budget:   NewNoteBudget(p.NoteCeiling),
	}
}

func keysAt(notes []noteOn, tick int) []uint8 {
	var keys []uint8
	for _, n := range notes {
		if n.tick == tick {
			keys = append(keys, n.key)
		}
	}
	return keys
}

func TestWalkingBassCyclesShortRange(t *testing.T) {
	tm := NewTiming(constSource(0.5), 0, 0)

	w := newTrackWriter(TrackBass, bassChannel, 120, NewNoteBudget(100))
	require.True(t, walkingBass{}.play(tm, w, 0, 40, []int{36, 43}, 85))
	require.True(t, walkingBass{}.play(tm, w, TicksPerBar, 43, []int{36, 43}, 85))

	var keys []uint8
	for _, n := range writerNotes(t, w) {
		keys = append(keys, n.key)
	}
	assert.Equal(t, []uint8{36, 43, 36, 43, 43, 36, 43, 36}, keys)
}

func TestBassPatterns(t *testing.T) {
	tests := []struct {
		pattern BassPattern
		ticks   []int
		keys    []uint8
	}{
		{BassRoot, []int{0}, []uint8{36}},
		{BassWalking, []int{0, 480, 960, 1440}, []uint8{36, 38, 40, 41}},
		{BassRhythmic, []int{0, 240, 720, 960, 1200, 1680}, []uint8{36, 36, 36, 36, 36, 36}},
		{BassMelodic, []int{0, 960, 1440}, []uint8{36, 43, 36}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			s := testSession(t, Params{Verses: 1, BassPattern: tt.pattern}, constSource(0.5))
			w := newTrackWriter(TrackBass, bassChannel, 120, s.budget)
			generateBass(s, w)

			notes := writerNotes(t, w)
			require.GreaterOrEqual(t, len(notes), len(tt.ticks))
			for i := range tt.ticks {
				assert.Equal(t, tt.ticks[i], notes[i].tick)
				assert.Equal(t, tt.keys[i], notes[i].key)
			}
			assert.Equal(t, uint8(85), notes[0].velocity)
		})
	}
}

func TestBassRangeFallback(t *testing.T) {
	assert.Equal(t, []int{36}, bassRange(Scale{Notes: []int{70, 72}}))
	assert.Equal(t, []int{58, 60}, bassRange(Scale{Notes: []int{58, 60, 62}}))
	assert.Equal(t, []int{30}, bassRange(Scale{Notes: []int{30, 58}}))
}

func TestLeadRangeFallback(t *testing.T) {
	assert.Equal(t, leadFallback, leadRange(Scale{Notes: []int{10, 20}}))
	assert.Equal(t, []int{50, 90}, leadRange(Scale{Notes: []int{50, 90}}))
}

func TestDrumBarMedium(t *testing.T) {
	s := testSession(t, Params{Verses: 1, Tracks: []TrackKind{TrackDrums}}, constSource(0.5))
	w := newTrackWriter(TrackDrums, drumChannel, 120, s.budget)
	generateDrums(s, w)

	notes := writerNotes(t, w)
	// 2 kicks + 2 snares + 8 hats per bar
	assert.Len(t, notes, 8*12)
	assert.ElementsMatch(t, []uint8{drumKick, drumClosedHat}, keysAt(notes, 0))
	assert.ElementsMatch(t, []uint8{drumSnare, drumClosedHat}, keysAt(notes, 480))
	assert.ElementsMatch(t, []uint8{drumKick, drumClosedHat}, keysAt(notes, 960))
	assert.ElementsMatch(t, []uint8{drumClosedHat}, keysAt(notes, 240))
}

func TestDrumSimpleSkipsBackbeatKickOutsideChorus(t *testing.T) {
	s := testSession(t, Params{Verses: 1, Choruses: 1, DrumComplexity: DrumsSimple}, constSource(0.5))
	w := newTrackWriter(TrackDrums, drumChannel, 120, s.budget)
	generateDrums(s, w)
	notes := writerNotes(t, w)

	assert.NotContains(t, keysAt(notes, 960), uint8(drumKick))
	chorus := s.sections[1].StartBar * TicksPerBar
	assert.Contains(t, keysAt(notes, chorus+960), uint8(drumKick))
	assert.Contains(t, keysAt(notes, chorus), uint8(drumCrash))
	assert.NotContains(t, keysAt(notes, 0), uint8(drumCrash))
}

func TestDrumCrashOnlyOnFirstChorusAndBridge(t *testing.T) {
	s := testSession(t, Params{Verses: 2, Choruses: 2, Bridge: true}, constSource(0.5))
	w := newTrackWriter(TrackDrums, drumChannel, 120, s.budget)
	generateDrums(s, w)
	notes := writerNotes(t, w)

	require.Equal(t, []SectionType{SectionVerse, SectionChorus, SectionVerse, SectionChorus, SectionBridge}, sectionTypes(s.sections))
	firstChorus := s.sections[1].StartBar * TicksPerBar
	secondChorus := s.sections[3].StartBar * TicksPerBar
	bridge := s.sections[4].StartBar * TicksPerBar

	assert.Contains(t, keysAt(notes, firstChorus), uint8(drumCrash))
	assert.NotContains(t, keysAt(notes, secondChorus), uint8(drumCrash))
	assert.Contains(t, keysAt(notes, bridge), uint8(drumCrash))
	assert.NotContains(t, keysAt(notes, firstChorus+TicksPerBar), uint8(drumCrash))
}

func TestDrumComplexSyncopation(t *testing.T) {
	s := testSession(t, Params{Intro: true, Verses: 1, DrumComplexity: DrumsComplex}, constSource(0.5))
	w := newTrackWriter(TrackDrums, drumChannel, 120, s.budget)
	generateDrums(s, w)
	notes := writerNotes(t, w)

	assert.NotContains(t, keysAt(notes, 1680), uint8(drumKick), "no syncopated kick in the intro")
	verse := s.sections[1].StartBar * TicksPerBar
	assert.Contains(t, keysAt(notes, verse+1680), uint8(drumKick))
}

func TestDrumFillOnSectionEnd(t *testing.T) {
	s := testSession(t, Params{Verses: 1, Choruses: 1, Fills: true}, constSource(0.5))
	w := newTrackWriter(TrackDrums, drumChannel, 120, s.budget)
	generateDrums(s, w)
	notes := writerNotes(t, w)

	fillBar := 7 * TicksPerBar
	assert.Equal(t, []uint8{drumTomHigh}, keysAt(notes, fillBar+12*sixteenth))
	assert.Equal(t, []uint8{drumTomLow}, keysAt(notes, fillBar+15*sixteenth))
	assert.Empty(t, keysAt(notes, fillBar), "fill replaces the groove")

	lastBar := 15 * TicksPerBar
	assert.NotContains(t, keysAt(notes, lastBar+12*sixteenth), uint8(drumTomHigh), "no fill after the final section")
	assert.NotEmpty(t, keysAt(notes, lastBar))
}

func TestLeadDensity(t *testing.T) {
	s := testSession(t, Params{Verses: 1, Density: 0}, constSource(0.5))
	w := newTrackWriter(TrackLead, leadChannel, 120, s.budget)
	generateLead(s, w)
	assert.Equal(t, 0, w.notes)

	// r=0.5 always picks the eighth note, so a full-density bar holds 8 notes
	s = testSession(t, Params{Verses: 1, Density: 100}, constSource(0.5))
	w = newTrackWriter(TrackLead, leadChannel, 120, s.budget)
	generateLead(s, w)
	assert.Equal(t, 8*8, w.notes)
	for _, n := range writerNotes(t, w) {
		assert.GreaterOrEqual(t, n.key, uint8(60))
		assert.LessOrEqual(t, n.key, uint8(84))
	}
}

func TestLeadSkipsIntroOnLowDraw(t *testing.T) {
	s := testSession(t, Params{Intro: true, Verses: 1, Density: 100}, constSource(0.1))
	w := newTrackWriter(TrackLead, leadChannel, 120, s.budget)
	generateLead(s, w)

	notes := writerNotes(t, w)
	require.NotEmpty(t, notes)
	assert.GreaterOrEqual(t, notes[0].tick, 4*TicksPerBar)
	assert.Equal(t, 8, w.bars)
}

func TestArpSixteenSlices(t *testing.T) {
	s := testSession(t, Params{Verses: 1}, constSource(0.5))
	w := newTrackWriter(TrackArp, arpChannel, 120, s.budget)
	generateArp(s, w)

	notes := writerNotes(t, w)
	require.Len(t, notes, 8*arpSlices)
	assert.Equal(t, []uint8{72, 76, 79, 72}, []uint8{notes[0].key, notes[1].key, notes[2].key, notes[3].key})
	assert.Equal(t, sixteenth, notes[1].tick)
	assert.Equal(t, uint8(85), notes[0].velocity)
}
