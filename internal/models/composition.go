package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
)

// Request defaults for fields the client leaves out.
const (
	DefaultVerses       = 2
	DefaultChoruses     = 3
	DefaultHumanization = 50
	DefaultSwing        = 0
	DefaultDensity      = 50
)

// CompositionRequest is the JSON body of a composition request. Pointer
// fields distinguish "not sent" from an explicit zero.
type CompositionRequest struct {
	Key   string `json:"key"`
	Scale string `json:"scale"`
	Tempo *int   `json:"tempo,omitempty"`

	IncludeIntro     *bool `json:"include_intro,omitempty"`
	IncludeBuildup   *bool `json:"include_buildup,omitempty"`
	IncludeVerse     *bool `json:"include_verse,omitempty"`
	IncludeDrop      *bool `json:"include_drop,omitempty"`
	IncludeChorus    *bool `json:"include_chorus,omitempty"`
	IncludeBreakdown *bool `json:"include_breakdown,omitempty"`
	IncludeBridge    *bool `json:"include_bridge,omitempty"`
	IncludeOutro     *bool `json:"include_outro,omitempty"`
	NumVerses        *int  `json:"num_verses,omitempty"`
	NumChorus        *int  `json:"num_chorus,omitempty"`

	Humanization *int `json:"humanization,omitempty"`
	Swing        *int `json:"swing,omitempty"`
	Density      *int `json:"density,omitempty"`

	DrumComplexity     string `json:"drum_complexity,omitempty"`
	BassPattern        string `json:"bass_pattern,omitempty"`
	Voicing            string `json:"voicing,omitempty"`
	AddFills           bool   `json:"add_fills"`
	DynamicArrangement bool   `json:"dynamic_arrangement"`

	ChordProgression  []string `json:"chord_progression,omitempty"`
	ProgressionPreset string   `json:"progression_preset,omitempty"`

	// Tracks toggles instruments by name; omitted tracks stay enabled.
	Tracks map[string]bool `json:"tracks,omitempty"`

	Seed *uint64 `json:"seed,omitempty"`
}

// FieldError reports a request field the engine cannot use.
type FieldError struct {
	Name   string
	Got    string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Got, e.Reason)
}

func (e *FieldError) Field() string { return e.Name }
func (e *FieldError) Value() string { return e.Got }

// ToParams applies request defaults and maps the request onto engine parameters.
// Range clamping is left to composer.Params.Sanitize.
func (r CompositionRequest) ToParams(noteCeiling int) (composer.Params, error) {
	p := composer.Params{
		Key:                r.Key,
		Scale:              r.Scale,
		Tempo:              intOr(r.Tempo, composer.DefaultTempo),
		Intro:              boolOr(r.IncludeIntro, true),
		Buildup:            boolOr(r.IncludeBuildup, false),
		Drop:               boolOr(r.IncludeDrop, false),
		Breakdown:          boolOr(r.IncludeBreakdown, false),
		Bridge:             boolOr(r.IncludeBridge, false),
		Outro:              boolOr(r.IncludeOutro, true),
		Verses:             intOr(r.NumVerses, DefaultVerses),
		Choruses:           intOr(r.NumChorus, DefaultChoruses),
		Humanization:       intOr(r.Humanization, DefaultHumanization),
		Swing:              intOr(r.Swing, DefaultSwing),
		Density:            intOr(r.Density, DefaultDensity),
		DrumComplexity:     composer.DrumComplexity(r.DrumComplexity),
		BassPattern:        composer.BassPattern(r.BassPattern),
		Voicing:            composer.Voicing(r.Voicing),
		Fills:              r.AddFills,
		DynamicArrangement: r.DynamicArrangement,
		Progression:        r.ChordProgression,
		Seed:               r.Seed,
		NoteCeiling:        noteCeiling,
	}

	if !boolOr(r.IncludeVerse, true) {
		p.Verses = 0
	}
	if !boolOr(r.IncludeChorus, true) {
		p.Choruses = 0
	}

	if r.ChordProgression == nil && r.ProgressionPreset != "" {
		preset, ok := composer.Preset(strings.ToLower(r.ProgressionPreset))
		if !ok {
			return composer.Params{}, &FieldError{
				Name:   "progression_preset",
				Got:    r.ProgressionPreset,
				Reason: "must be one of " + strings.Join(composer.PresetNames(), ", "),
			}
		}
		p.Progression = preset
	}

	if r.Tracks != nil {
		p.Tracks = []composer.TrackKind{}
		for _, kind := range composer.AllTracks {
			if enabled, ok := r.Tracks[string(kind)]; !ok || enabled {
				p.Tracks = append(p.Tracks, kind)
			}
		}
	}

	return p, nil
}

// RequestFromParams renders engine parameters back into a fully explicit request.
// Verse and chorus toggles follow their counts.
func RequestFromParams(p composer.Params) CompositionRequest {
	req := CompositionRequest{
		Key:                p.Key,
		Scale:              p.Scale,
		Tempo:              &p.Tempo,
		IncludeIntro:       &p.Intro,
		IncludeBuildup:     &p.Buildup,
		IncludeVerse:       boolPtr(p.Verses > 0),
		IncludeDrop:        &p.Drop,
		IncludeChorus:      boolPtr(p.Choruses > 0),
		IncludeBreakdown:   &p.Breakdown,
		IncludeBridge:      &p.Bridge,
		IncludeOutro:       &p.Outro,
		NumVerses:          &p.Verses,
		NumChorus:          &p.Choruses,
		Humanization:       &p.Humanization,
		Swing:              &p.Swing,
		Density:            &p.Density,
		DrumComplexity:     string(p.DrumComplexity),
		BassPattern:        string(p.BassPattern),
		Voicing:            string(p.Voicing),
		AddFills:           p.Fills,
		DynamicArrangement: p.DynamicArrangement,
		ChordProgression:   p.Progression,
		Seed:               p.Seed,
		Tracks:             make(map[string]bool, len(composer.AllTracks)),
	}
	for _, kind := range composer.AllTracks {
		req.Tracks[string(kind)] = p.Enabled(kind)
	}
	return req
}

func boolPtr(v bool) *bool { return &v }

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// CompositionSummary is the JSON view of a generated song.
type CompositionSummary struct {
	ID         string                  `json:"id"`
	Key        string                  `json:"key"`
	Scale      string                  `json:"scale"`
	Tempo      int                     `json:"tempo"`
	Bars       int                     `json:"bars"`
	NoteCount  int                     `json:"note_count"`
	Truncated  bool                    `json:"truncated"`
	Sections   []composer.Section      `json:"sections"`
	Tracks     []composer.TrackSummary `json:"tracks"`
	ByteSize   int                     `json:"byte_size"`
	MIDIBase64 string                  `json:"midi_base64,omitempty"`
	ShareURL   string                  `json:"share_url,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// InterpretRequest asks the LLM to turn a free-text brief into a request.
type InterpretRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// InterpretResponse carries the proposed request and the model's reasoning.
type InterpretResponse struct {
	Request   CompositionRequest `json:"request"`
	Rationale string             `json:"rationale,omitempty"`
	Provider  string             `json:"provider"`
	Model     string             `json:"model"`
}
