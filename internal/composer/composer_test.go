package composer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidismf "gitlab.com/gomidi/midi/v2/smf"

	"github.com/Conceptual-Machines/songsmith-api/internal/smf"
)

type noteOn struct {
	tick     int
	channel  uint8
	key      uint8
	velocity uint8
}

// parseNotes reads data back with gomidi and returns note-ons per track.
func parseNotes(t *testing.T, data []byte) [][]noteOn {
	t.Helper()
	parsed, err := gomidismf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)

	out := make([][]noteOn, len(parsed.Tracks))
	for i, track := range parsed.Tracks {
		tick := 0
		for _, ev := range track {
			tick += int(ev.Delta)
			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				out[i] = append(out[i], noteOn{tick: tick, channel: ch, key: key, velocity: vel})
			}
		}
	}
	return out
}

func writerNotes(t *testing.T, w *trackWriter) []noteOn {
	t.Helper()
	data, err := smf.Encode([][]byte{w.track.Chunk()})
	require.NoError(t, err)
	return parseNotes(t, data)[0]
}

func seeded(v uint64) *uint64 { return &v }

func TestChordOnlyScenario(t *testing.T) {
	comp, err := Generate(Params{
		Key:         "C",
		Scale:       "major",
		Tempo:       120,
		Verses:      1,
		Progression: []string{"I", "V", "vi", "IV"},
		Tracks:      []TrackKind{TrackChords},
	})
	require.NoError(t, err)

	require.Len(t, comp.Sections, 1)
	assert.Equal(t, SectionVerse, comp.Sections[0].Type)
	assert.Equal(t, 8, comp.Sections[0].Bars)
	require.Len(t, comp.Tracks, 1)
	assert.Equal(t, 8, comp.Tracks[0].Bars)

	tracks := parseNotes(t, comp.Data)
	require.Len(t, tracks, 1)
	notes := tracks[0]
	require.Len(t, notes, 24)

	onsets := map[int][]uint8{}
	for _, n := range notes {
		assert.Equal(t, uint8(padChannel), n.channel)
		onsets[n.tick] = append(onsets[n.tick], n.key)
	}
	assert.Len(t, onsets, 8)
	assert.Equal(t, []uint8{60, 64, 67}, onsets[0])
	assert.Equal(t, []uint8{67, 71, 74}, onsets[TicksPerBar])
	assert.Equal(t, []uint8{60, 64, 67}, onsets[4*TicksPerBar])

	// single track files are format 0
	assert.Equal(t, []byte{0, 0}, comp.Data[8:10])
}

func TestGenerateWritesTempo(t *testing.T) {
	comp, err := Generate(Params{Tempo: 95, Verses: 1, Tracks: []TrackKind{TrackDrums, TrackBass}})
	require.NoError(t, err)

	parsed, err := gomidismf.ReadFrom(bytes.NewReader(comp.Data))
	require.NoError(t, err)
	require.Len(t, parsed.Tracks, 2)
	for _, track := range parsed.Tracks {
		var bpm float64
		require.True(t, track[0].Message.GetMetaTempo(&bpm))
		assert.InDelta(t, 95.0, bpm, 0.01)
	}
}

func TestNoteCeiling(t *testing.T) {
	p := Params{
		Intro: true, Buildup: true, Drop: true, Breakdown: true, Bridge: true, Outro: true,
		Verses: 8, Choruses: 8, Density: 100, Humanization: 50,
		DrumComplexity: DrumsComplex, BassPattern: BassRhythmic, Voicing: VoicingExtended,
		NoteCeiling: 500, Seed: seeded(1),
	}
	comp, err := Generate(p)
	require.NoError(t, err)

	assert.Equal(t, 500, comp.NoteCount)
	assert.True(t, comp.Truncated)

	total := 0
	for _, notes := range parseNotes(t, comp.Data) {
		total += len(notes)
	}
	assert.LessOrEqual(t, total, 500)

	sum := 0
	for _, tr := range comp.Tracks {
		sum += tr.Notes
		assert.LessOrEqual(t, tr.Bars, MaxTrackBars)
	}
	assert.Equal(t, 500, sum)
}

func TestDefaultCeilingHoldsForLargestSong(t *testing.T) {
	comp, err := Generate(Params{
		Intro: true, Buildup: true, Drop: true, Breakdown: true, Bridge: true, Outro: true,
		Verses: 8, Choruses: 8, Density: 100, Seed: seeded(3),
		DrumComplexity: DrumsComplex, Voicing: VoicingExtended, BassPattern: BassRhythmic,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, comp.NoteCount, DefaultNoteCeiling)
	assert.LessOrEqual(t, comp.Bars(), MaxSongBars)
}

func TestForEachBarTrackCeiling(t *testing.T) {
	w := newTrackWriter(TrackLead, leadChannel, 120, NewNoteBudget(DefaultNoteCeiling))
	visited := 0
	for i := 0; i < 6; i++ {
		sec := Section{Type: SectionVerse, StartBar: i * 100, Bars: 100}
		if !w.forEachBar(sec, func(_, _ int) bool { visited++; return true }) {
			break
		}
	}
	// each section is capped at MaxSectionBars, the track at MaxTrackBars
	assert.Equal(t, MaxTrackBars, visited)
	assert.Equal(t, MaxTrackBars, w.bars)
}

func TestFailingTrackIsSkipped(t *testing.T) {
	orig := trackSpecs[TrackArp]
	trackSpecs[TrackArp] = trackSpec{channel: arpChannel, generate: func(*session, *trackWriter) { panic("boom") }}
	t.Cleanup(func() { trackSpecs[TrackArp] = orig })

	comp, err := Generate(Params{Verses: 1, Tracks: []TrackKind{TrackChords, TrackArp}})
	require.NoError(t, err)
	require.Len(t, comp.Tracks, 2)
	assert.Empty(t, comp.Tracks[0].Error)
	assert.Contains(t, comp.Tracks[1].Error, "boom")
	assert.Len(t, parseNotes(t, comp.Data), 1)

	_, err = Generate(Params{Verses: 1, Tracks: []TrackKind{TrackArp}})
	assert.ErrorIs(t, err, ErrEmptyComposition)
}

func TestFailingTrackReleasesItsNotes(t *testing.T) {
	orig := trackSpecs[TrackDrums]
	trackSpecs[TrackDrums] = trackSpec{channel: drumChannel, generate: func(_ *session, w *trackWriter) {
		for w.add(drumKick, 100, 0, TicksPerBeat) {
		}
		panic("boom")
	}}
	t.Cleanup(func() { trackSpecs[TrackDrums] = orig })

	comp, err := Generate(Params{Verses: 1, Tracks: []TrackKind{TrackDrums, TrackChords}, NoteCeiling: 24})
	require.NoError(t, err)
	require.Len(t, comp.Tracks, 2)
	assert.Contains(t, comp.Tracks[0].Error, "boom")
	assert.Equal(t, 24, comp.Tracks[1].Notes, "chords get the budget the failed track gave back")
	assert.Equal(t, 24, comp.NoteCount)
	assert.False(t, comp.Truncated)
}

func TestGenerateNoTracks(t *testing.T) {
	_, err := Generate(Params{Tracks: []TrackKind{}})
	assert.ErrorIs(t, err, ErrEmptyComposition)
}

func TestGenerateFatalErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		check  func(error) bool
	}{
		{"bad key", Params{Key: "Q"}, func(err error) bool { var e *InvalidKeyError; return errors.As(err, &e) }},
		{"bad scale", Params{Scale: "klezmer"}, func(err error) bool { var e *InvalidScaleError; return errors.As(err, &e) }},
		{"bad chord", Params{Progression: []string{"I", "W"}}, func(err error) bool { var e *InvalidChordSymbolError; return errors.As(err, &e) }},
		{"empty progression", Params{Progression: []string{}}, func(err error) bool { return errors.Is(err, ErrEmptyProgression) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := Generate(tt.params)
			assert.Nil(t, comp)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}

func TestSeedIsReproducible(t *testing.T) {
	p := Params{Verses: 2, Choruses: 2, Humanization: 80, Swing: 40, Density: 60, Seed: seeded(99)}
	a, err := Generate(p)
	require.NoError(t, err)
	b, err := Generate(p)
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data)
}

func TestChannelsPerTrack(t *testing.T) {
	comp, err := Generate(Params{Verses: 1, Choruses: 1, Density: 100, Seed: seeded(5)})
	require.NoError(t, err)

	want := []uint8{drumChannel, bassChannel, padChannel, leadChannel, arpChannel}
	tracks := parseNotes(t, comp.Data)
	require.Len(t, tracks, len(want))
	for i, notes := range tracks {
		require.NotEmpty(t, notes, "track %d", i)
		for _, n := range notes {
			assert.Equal(t, want[i], n.channel)
		}
	}
	assert.Equal(t, []byte{0, 1}, comp.Data[8:10])
}

func TestDynamicArrangementScalesChordVelocity(t *testing.T) {
	p := Params{Verses: 1, Tracks: []TrackKind{TrackChords}}

	flat, err := Generate(p)
	require.NoError(t, err)
	assert.Equal(t, uint8(80), parseNotes(t, flat.Data)[0][0].velocity)

	p.DynamicArrangement = true
	dyn, err := Generate(p)
	require.NoError(t, err)
	assert.Equal(t, uint8(48), parseNotes(t, dyn.Data)[0][0].velocity)
}
