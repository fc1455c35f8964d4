package llm

import (
	"sort"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"google.golang.org/genai"
)

const (
	// Slider constraints shared by humanization, swing and density
	percentMin = 0
	percentMax = 100

	briefSchemaName = "song_brief"
)

// BriefSchema returns the JSON schema the interpreter asks the model to fill.
// OpenAI strict mode requires additionalProperties: false and every property listed
// in required, so optional request fields are expressed as concrete values here.
func BriefSchema() *OutputSchema {
	properties := map[string]any{
		"rationale": map[string]any{
			"type":        "string",
			"description": "One or two sentences explaining the musical choices",
		},
		"key":   map[string]any{"type": "string", "enum": composer.Keys()},
		"scale": map[string]any{"type": "string", "enum": composer.Modes()},
		"tempo": map[string]any{"type": "integer", "minimum": composer.MinTempo, "maximum": composer.MaxTempo},

		"num_verses": map[string]any{"type": "integer", "minimum": 0, "maximum": composer.MaxRepeats},
		"num_chorus": map[string]any{"type": "integer", "minimum": 0, "maximum": composer.MaxRepeats},

		"humanization": map[string]any{"type": "integer", "minimum": percentMin, "maximum": percentMax},
		"swing":        map[string]any{"type": "integer", "minimum": percentMin, "maximum": percentMax},
		"density":      map[string]any{"type": "integer", "minimum": percentMin, "maximum": percentMax},

		"drum_complexity": map[string]any{"type": "string", "enum": []string{
			string(composer.DrumsSimple), string(composer.DrumsMedium), string(composer.DrumsComplex),
		}},
		"bass_pattern": map[string]any{"type": "string", "enum": []string{
			string(composer.BassRoot), string(composer.BassWalking), string(composer.BassRhythmic), string(composer.BassMelodic),
		}},
		"voicing": map[string]any{"type": "string", "enum": []string{
			string(composer.VoicingTriad), string(composer.VoicingSeventh), string(composer.VoicingExtended),
		}},
		"add_fills":           map[string]any{"type": "boolean"},
		"dynamic_arrangement": map[string]any{"type": "boolean"},

		"chord_progression": map[string]any{
			"type":        "array",
			"description": "Roman numerals; uppercase for major, lowercase for minor, ° or dim suffix for diminished",
			"items":       map[string]any{"type": "string"},
		},
		"tracks": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "enum": trackNames()},
		},
	}
	for _, section := range briefSections {
		properties["include_"+section] = map[string]any{"type": "boolean"}
	}

	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	sort.Strings(required)

	return &OutputSchema{
		Name:        briefSchemaName,
		Description: "Parameters for one procedurally generated song",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           properties,
			"required":             required,
			"additionalProperties": false,
		},
	}
}

var briefSections = []string{"intro", "buildup", "verse", "drop", "chorus", "breakdown", "bridge", "outro"}

func trackNames() []string {
	names := make([]string, len(composer.AllTracks))
	for i, kind := range composer.AllTracks {
		names[i] = string(kind)
	}
	return names
}

// convertSchemaToGemini maps a JSON schema map onto genai.Schema.
// Keywords Gemini does not understand (additionalProperties) are dropped.
func convertSchemaToGemini(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{}
	switch schema["type"] {
	case "object":
		out.Type = genai.TypeObject
	case "array":
		out.Type = genai.TypeArray
	case "string":
		out.Type = genai.TypeString
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	}

	if desc, ok := schema["description"].(string); ok {
		out.Description = desc
	}
	if enum, ok := schema["enum"].([]string); ok {
		out.Enum = enum
	}
	if lo, ok := toFloat(schema["minimum"]); ok {
		out.Minimum = &lo
	}
	if hi, ok := toFloat(schema["maximum"]); ok {
		out.Maximum = &hi
	}
	if items, ok := schema["items"].(map[string]any); ok {
		out.Items = convertSchemaToGemini(items)
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if prop, ok := raw.(map[string]any); ok {
				out.Properties[name] = convertSchemaToGemini(prop)
			}
		}
	}
	if required, ok := schema["required"].([]string); ok {
		out.Required = required
	}

	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
