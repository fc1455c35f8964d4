package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
)

func TestToParamsDefaults(t *testing.T) {
	var req CompositionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"key":"Am"}`), &req))

	p, err := req.ToParams(5000)
	require.NoError(t, err)
	assert.Equal(t, "Am", p.Key)
	assert.Equal(t, composer.DefaultTempo, p.Tempo)
	assert.Equal(t, DefaultVerses, p.Verses)
	assert.Equal(t, DefaultChoruses, p.Choruses)
	assert.Equal(t, DefaultHumanization, p.Humanization)
	assert.Equal(t, DefaultDensity, p.Density)
	assert.True(t, p.Intro)
	assert.True(t, p.Outro)
	assert.False(t, p.Bridge)
	assert.Nil(t, p.Progression)
	assert.Nil(t, p.Tracks)
	assert.Equal(t, 5000, p.NoteCeiling)
}

func TestToParamsExplicitZerosSurvive(t *testing.T) {
	var req CompositionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"humanization":0,"density":0,"num_verses":0,"include_chorus":false}`), &req))

	p, err := req.ToParams(0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Humanization)
	assert.Equal(t, 0, p.Density)
	assert.Equal(t, 0, p.Verses)
	assert.Equal(t, 0, p.Choruses)
}

func TestToParamsTracks(t *testing.T) {
	req := CompositionRequest{Tracks: map[string]bool{"drums": false, "lead": false}}
	p, err := req.ToParams(0)
	require.NoError(t, err)
	assert.Equal(t, []composer.TrackKind{composer.TrackBass, composer.TrackChords, composer.TrackArp}, p.Tracks)
}

func TestToParamsPreset(t *testing.T) {
	p, err := CompositionRequest{ProgressionPreset: "Jazz"}.ToParams(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"ii", "V", "I"}, p.Progression)

	p, err = CompositionRequest{ProgressionPreset: "jazz", ChordProgression: []string{"I", "IV"}}.ToParams(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"I", "IV"}, p.Progression)

	_, err = CompositionRequest{ProgressionPreset: "polka"}.ToParams(0)
	var pe composer.ParamError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "progression_preset", pe.Field())
	assert.Equal(t, "polka", pe.Value())
}

func TestRequestFromParamsRoundTrip(t *testing.T) {
	seed := uint64(7)
	want := composer.Params{
		Key: "E", Scale: "dorian", Tempo: 96,
		Intro: true, Bridge: true, Verses: 0, Choruses: 2,
		Humanization: 10, Swing: 40, Density: 60,
		DrumComplexity: composer.DrumsComplex, BassPattern: composer.BassWalking, Voicing: composer.VoicingSeventh,
		Fills: true, Progression: []string{"ii", "V", "I"},
		Tracks: []composer.TrackKind{composer.TrackBass, composer.TrackChords},
		Seed:   &seed,
	}.Sanitize()

	req := RequestFromParams(want)
	assert.False(t, *req.IncludeVerse)
	assert.True(t, *req.IncludeChorus)
	assert.Equal(t, map[string]bool{"drums": false, "bass": true, "chords": true, "lead": false, "arp": false}, req.Tracks)

	got, err := req.ToParams(want.NoteCeiling)
	require.NoError(t, err)
	assert.Equal(t, want, got.Sanitize())
}
