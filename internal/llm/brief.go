package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/songsmith-api/internal/models"
)

// Brief is the structured output of an interpretation call
type Brief struct {
	Rationale string `json:"rationale"`
	Key       string `json:"key"`
	Scale     string `json:"scale"`
	Tempo     int    `json:"tempo"`

	IncludeIntro     bool `json:"include_intro"`
	IncludeBuildup   bool `json:"include_buildup"`
	IncludeVerse     bool `json:"include_verse"`
	IncludeDrop      bool `json:"include_drop"`
	IncludeChorus    bool `json:"include_chorus"`
	IncludeBreakdown bool `json:"include_breakdown"`
	IncludeBridge    bool `json:"include_bridge"`
	IncludeOutro     bool `json:"include_outro"`
	NumVerses        int  `json:"num_verses"`
	NumChorus        int  `json:"num_chorus"`

	Humanization int `json:"humanization"`
	Swing        int `json:"swing"`
	Density      int `json:"density"`

	DrumComplexity     string `json:"drum_complexity"`
	BassPattern        string `json:"bass_pattern"`
	Voicing            string `json:"voicing"`
	AddFills           bool   `json:"add_fills"`
	DynamicArrangement bool   `json:"dynamic_arrangement"`

	ChordProgression []string `json:"chord_progression"`
	Tracks           []string `json:"tracks"`
}

// ParseBrief decodes raw model output into a Brief.
// Some models wrap JSON in a markdown fence even in structured mode.
func ParseBrief(raw string) (*Brief, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, fmt.Errorf("empty brief output")
	}

	var brief Brief
	if err := json.Unmarshal([]byte(text), &brief); err != nil {
		return nil, fmt.Errorf("failed to parse brief output: %w", err)
	}
	return &brief, nil
}

// Request converts the brief into a composition request. Every field is set
// explicitly so request defaults never override the model's choices.
func (b *Brief) Request() models.CompositionRequest {
	req := models.CompositionRequest{
		Key:                b.Key,
		Scale:              b.Scale,
		Tempo:              intPtr(b.Tempo),
		IncludeIntro:       boolPtr(b.IncludeIntro),
		IncludeBuildup:     boolPtr(b.IncludeBuildup),
		IncludeVerse:       boolPtr(b.IncludeVerse),
		IncludeDrop:        boolPtr(b.IncludeDrop),
		IncludeChorus:      boolPtr(b.IncludeChorus),
		IncludeBreakdown:   boolPtr(b.IncludeBreakdown),
		IncludeBridge:      boolPtr(b.IncludeBridge),
		IncludeOutro:       boolPtr(b.IncludeOutro),
		NumVerses:          intPtr(b.NumVerses),
		NumChorus:          intPtr(b.NumChorus),
		Humanization:       intPtr(b.Humanization),
		Swing:              intPtr(b.Swing),
		Density:            intPtr(b.Density),
		DrumComplexity:     b.DrumComplexity,
		BassPattern:        b.BassPattern,
		Voicing:            b.Voicing,
		AddFills:           b.AddFills,
		DynamicArrangement: b.DynamicArrangement,
	}

	if len(b.ChordProgression) > 0 {
		req.ChordProgression = b.ChordProgression
	}

	// An empty track list means the model did not choose; keep everything on.
	if len(b.Tracks) > 0 {
		req.Tracks = make(map[string]bool)
		for _, name := range trackNames() {
			req.Tracks[name] = false
		}
		for _, name := range b.Tracks {
			req.Tracks[strings.ToLower(name)] = true
		}
	}

	return req
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
