package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"github.com/gin-gonic/gin"
)

// CatalogResponse lists every value the composition endpoint accepts
type CatalogResponse struct {
	Keys               []string            `json:"keys"`
	Scales             []string            `json:"scales"`
	Numerals           []string            `json:"numerals"`
	DrumComplexity     []string            `json:"drum_complexity"`
	BassPatterns       []string            `json:"bass_patterns"`
	Voicings           []string            `json:"voicings"`
	Tracks             []string            `json:"tracks"`
	Progressions       map[string][]string `json:"progressions"`
	DefaultProgression []string            `json:"default_progression"`
	TempoRange         [2]int              `json:"tempo_range"`
	MaxRepeats         int                 `json:"max_repeats"`
}

// Catalog returns the engine vocabulary
func Catalog(c *gin.Context) {
	tracks := make([]string, len(composer.AllTracks))
	for i, kind := range composer.AllTracks {
		tracks[i] = string(kind)
	}

	c.JSON(http.StatusOK, CatalogResponse{
		Keys:     composer.Keys(),
		Scales:   composer.Modes(),
		Numerals: composer.Numerals(),
		DrumComplexity: []string{
			string(composer.DrumsSimple), string(composer.DrumsMedium), string(composer.DrumsComplex),
		},
		BassPatterns: []string{
			string(composer.BassRoot), string(composer.BassWalking), string(composer.BassRhythmic), string(composer.BassMelodic),
		},
		Voicings: []string{
			string(composer.VoicingTriad), string(composer.VoicingSeventh), string(composer.VoicingExtended),
		},
		Tracks:             tracks,
		Progressions:       composer.Presets,
		DefaultProgression: composer.DefaultProgression,
		TempoRange:         [2]int{composer.MinTempo, composer.MaxTempo},
		MaxRepeats:         composer.MaxRepeats,
	})
}
