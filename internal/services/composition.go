package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"github.com/Conceptual-Machines/songsmith-api/internal/logger"
	"github.com/Conceptual-Machines/songsmith-api/internal/metrics"
	"github.com/Conceptual-Machines/songsmith-api/internal/models"
	"github.com/Conceptual-Machines/songsmith-api/internal/storage"
)

const storeTimeout = 10 * time.Second

// ComposeResult is one generated song plus its bookkeeping.
type ComposeResult struct {
	ID          string
	Composition *composer.Composition
	Stored      bool
	ShareURL    string
	CreatedAt   time.Time
}

// Summary renders the JSON view; includeData embeds the file as base64.
func (r *ComposeResult) Summary(includeData bool) models.CompositionSummary {
	c := r.Composition
	s := models.CompositionSummary{
		ID:        r.ID,
		Key:       c.Params.Key,
		Scale:     c.Scale.Mode,
		Tempo:     c.Params.Tempo,
		Bars:      c.Bars(),
		NoteCount: c.NoteCount,
		Truncated: c.Truncated,
		Sections:  c.Sections,
		Tracks:    c.Tracks,
		ByteSize:  len(c.Data),
		ShareURL:  r.ShareURL,
		CreatedAt: r.CreatedAt,
	}
	if includeData {
		s.MIDIBase64 = base64.StdEncoding.EncodeToString(c.Data)
	}
	return s
}

// CompositionService runs the composer and records what it produced.
type CompositionService struct {
	composer      *composer.Composer
	store         storage.Store
	history       *HistoryService
	share         *ShareService
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
	noteCeiling   int
	baseURL       string
}

// CompositionOptions wires optional collaborators; nil fields are skipped.
type CompositionOptions struct {
	Composer      *composer.Composer
	Store         storage.Store
	History       *HistoryService
	Share         *ShareService
	CloudWatch    *metrics.Client
	SentryMetrics *metrics.SentryMetrics
	NoteCeiling   int
	BaseURL       string
}

func NewCompositionService(opts CompositionOptions) *CompositionService {
	c := opts.Composer
	if c == nil {
		c = composer.New()
	}
	return &CompositionService{
		composer:      c,
		store:         opts.Store,
		history:       opts.History,
		share:         opts.Share,
		cloudwatch:    opts.CloudWatch,
		sentryMetrics: opts.SentryMetrics,
		noteCeiling:   opts.NoteCeiling,
		baseURL:       opts.BaseURL,
	}
}

// Compose generates a song for req. Parameter errors come back unwrapped so
// callers can match them; storage and history failures are only logged.
func (s *CompositionService) Compose(ctx context.Context, req models.CompositionRequest, userID, prompt string) (*ComposeResult, error) {
	params, err := req.ToParams(s.noteCeiling)
	if err != nil {
		return nil, err
	}

	comp, err := s.composer.Generate(params)
	if err != nil {
		return nil, err
	}

	res := &ComposeResult{
		ID:          uuid.New().String(),
		Composition: comp,
		CreatedAt:   time.Now().UTC(),
	}
	fields := logger.Fields{
		"composition_id": res.ID,
		"key":            comp.Params.Key,
		"scale":          comp.Scale.Mode,
		"tracks":         len(comp.Tracks),
	}

	logger.LogComposition(ctx, comp.Duration, comp.NoteCount, len(comp.Data), fields)
	s.cloudwatch.RecordComposition(comp.NoteCount, len(comp.Data), len(comp.Tracks), comp.Duration, comp.Truncated)
	s.sentryMetrics.RecordComposition(ctx, comp.NoteCount, len(comp.Tracks), comp.Truncated)

	// Stored files are only reachable through share links.
	if s.store != nil && s.share.Enabled() {
		storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		err := s.store.Put(storeCtx, res.ID, comp.Data)
		cancel()
		if err != nil {
			logger.Error("Failed to store composition", err, fields)
		} else {
			res.Stored = true
		}
	}

	if res.Stored {
		if token, _, err := s.share.Issue(res.ID); err == nil {
			res.ShareURL = fmt.Sprintf("%s/api/v1/compositions/%s/download?token=%s", s.baseURL, res.ID, url.QueryEscape(token))
		} else {
			logger.Warn("Failed to issue share link", logger.Fields{"composition_id": res.ID, "error": err.Error()})
		}
	}

	if err := s.history.Record(ctx, s.record(res, userID, prompt)); err != nil {
		logger.Error("Failed to record composition history", err, fields)
	}

	return res, nil
}

func (s *CompositionService) record(res *ComposeResult, userID, prompt string) *models.CompositionRecord {
	c := res.Composition
	params, _ := json.Marshal(paramsView(c.Params))

	rec := &models.CompositionRecord{
		ID:         res.ID,
		CreatedAt:  res.CreatedAt,
		UserID:     userID,
		Key:        c.Params.Key,
		Scale:      c.Scale.Mode,
		Tempo:      c.Params.Tempo,
		Bars:       c.Bars(),
		TrackCount: len(c.Tracks),
		NoteCount:  c.NoteCount,
		ByteSize:   len(c.Data),
		Truncated:  c.Truncated,
		Params:     string(params),
		Prompt:     prompt,
	}
	if res.Stored {
		rec.StorageKey = res.ID
	}
	return rec
}

// paramsView is the persisted shape of sanitized parameters.
func paramsView(p composer.Params) map[string]interface{} {
	return map[string]interface{}{
		"key":                 p.Key,
		"scale":               p.Scale,
		"tempo":               p.Tempo,
		"intro":               p.Intro,
		"buildup":             p.Buildup,
		"drop":                p.Drop,
		"breakdown":           p.Breakdown,
		"bridge":              p.Bridge,
		"outro":               p.Outro,
		"verses":              p.Verses,
		"choruses":            p.Choruses,
		"humanization":        p.Humanization,
		"swing":               p.Swing,
		"density":             p.Density,
		"drum_complexity":     p.DrumComplexity,
		"bass_pattern":        p.BassPattern,
		"voicing":             p.Voicing,
		"fills":               p.Fills,
		"dynamic_arrangement": p.DynamicArrangement,
		"progression":         p.Progression,
		"tracks":              p.Tracks,
		"seed":                p.Seed,
	}
}

// Fetch returns a stored file. Callers check the share token first.
func (s *CompositionService) Fetch(ctx context.Context, id string) ([]byte, error) {
	if s.store == nil {
		return nil, ErrCompositionNotFound
	}

	data, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCompositionNotFound
		}
		return nil, fmt.Errorf("load composition %s: %w", id, err)
	}
	return data, nil
}

// Share returns the share service used to sign download links.
func (s *CompositionService) Share() *ShareService {
	return s.share
}

// Get returns the history record for id.
func (s *CompositionService) Get(ctx context.Context, id string) (*models.CompositionRecord, error) {
	return s.history.Get(ctx, id)
}

// Recent lists recent history for userID.
func (s *CompositionService) Recent(ctx context.Context, userID string, limit int) ([]models.CompositionRecord, error) {
	return s.history.Recent(ctx, userID, limit)
}
