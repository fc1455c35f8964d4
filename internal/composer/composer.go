package composer

import (
	"fmt"
	"time"

	"github.com/Conceptual-Machines/songsmith-api/internal/logger"
	"github.com/Conceptual-Machines/songsmith-api/internal/smf"
)

type generatorFunc func(s *session, w *trackWriter)

type trackSpec struct {
	channel  uint8
	generate generatorFunc
}

var trackSpecs = map[TrackKind]trackSpec{
	TrackDrums:  {drumChannel, generateDrums},
	TrackBass:   {bassChannel, generateBass},
	TrackChords: {padChannel, generateChords},
	TrackLead:   {leadChannel, generateLead},
	TrackArp:    {arpChannel, generateArp},
}

// TrackSummary describes one generated (or skipped) track.
type TrackSummary struct {
	Kind    TrackKind `json:"kind"`
	Channel int       `json:"channel"`
	Notes   int       `json:"notes"`
	Bars    int       `json:"bars"`
	Bytes   int       `json:"bytes"`
	Error   string    `json:"error,omitempty"`
}

// Composition is the result of one generation.
type Composition struct {
	Params    Params         `json:"-"`
	Scale     Scale          `json:"-"`
	Sections  []Section      `json:"sections"`
	Tracks    []TrackSummary `json:"tracks"`
	NoteCount int            `json:"note_count"`
	Truncated bool           `json:"truncated"`
	Data      []byte         `json:"-"`
	Duration  time.Duration  `json:"-"`
}

// Bars is the song length in bars.
func (c *Composition) Bars() int {
	if len(c.Sections) == 0 {
		return 0
	}
	return c.Sections[len(c.Sections)-1].EndBar()
}

// Option configures a Composer.
type Option func(*Composer)

// WithRandomSource overrides the seeded source derived from Params.Seed.
func WithRandomSource(rng RandomSource) Option {
	return func(c *Composer) {
		c.rng = rng
	}
}

// Composer turns Params into a Standard MIDI File.
type Composer struct {
	rng RandomSource
}

func New(opts ...Option) *Composer {
	c := &Composer{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate composes with a default Composer.
func Generate(p Params) (*Composition, error) {
	return New().Generate(p)
}

// Generate sanitizes p, derives structure, scale and harmony, then renders each
// enabled track. A track that fails is logged and left out; the call only
// fails on bad key, scale or progression, or when no track was produced.
func (c *Composer) Generate(p Params) (*Composition, error) {
	start := time.Now()
	params := p.Sanitize()

	scale, err := NewScale(params.Key, params.Scale)
	if err != nil {
		return nil, err
	}
	chords, err := ParseProgression(params.Progression)
	if err != nil {
		return nil, err
	}

	rng := c.rng
	if rng == nil {
		rng = NewRandomSource(params.Seed)
	}

	s := &session{
		params:   params,
		sections: BuildStructure(params),
		scale:    scale,
		harmony:  NewHarmony(scale, chords, params.Voicing),
		timing:   NewTiming(rng, params.Swing, params.Humanization),
		rng:      rng,
		budget:   NewNoteBudget(params.NoteCeiling),
	}

	comp := &Composition{Params: params, Scale: scale, Sections: s.sections}
	var chunks [][]byte
	for _, kind := range params.Tracks {
		summary, chunk, err := renderTrack(s, kind)
		if err != nil {
			logger.Warn("Track generation failed, continuing without it", logger.Fields{
				"track": string(kind),
				"error": err.Error(),
			})
			summary.Error = err.Error()
		} else {
			chunks = append(chunks, chunk)
		}
		comp.Tracks = append(comp.Tracks, summary)
	}

	if len(chunks) == 0 {
		return nil, ErrEmptyComposition
	}

	data, err := smf.Encode(chunks)
	if err != nil {
		return nil, fmt.Errorf("encode file: %w", err)
	}

	comp.Data = data
	comp.NoteCount = s.budget.Used()
	comp.Truncated = s.budget.Exhausted()
	comp.Duration = time.Since(start)

	if comp.Truncated {
		logger.Warn("Note ceiling reached, composition truncated", logger.Fields{
			"note_ceiling": params.NoteCeiling,
		})
	}
	return comp, nil
}

// renderTrack runs one generator and frames its chunk, turning a panic into an error
// and handing the notes it took back to the budget.
func renderTrack(s *session, kind TrackKind) (summary TrackSummary, chunk []byte, err error) {
	spec, ok := trackSpecs[kind]
	summary = TrackSummary{Kind: kind, Channel: int(spec.channel)}
	if !ok {
		return summary, nil, fmt.Errorf("unknown track %q", kind)
	}

	w := newTrackWriter(kind, spec.channel, s.params.Tempo, s.budget)
	defer func() {
		if r := recover(); r != nil {
			// notes of a dropped track do not count toward the ceiling
			s.budget.Release(w.notes)
			chunk = nil
			err = fmt.Errorf("%s track: %v", kind, r)
		}
	}()

	spec.generate(s, w)
	chunk = w.track.Chunk()

	summary.Notes = w.notes
	summary.Bars = w.bars
	summary.Bytes = len(chunk)
	return summary, chunk, nil
}
