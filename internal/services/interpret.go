package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"github.com/Conceptual-Machines/songsmith-api/internal/llm"
	"github.com/Conceptual-Machines/songsmith-api/internal/logger"
	"github.com/Conceptual-Machines/songsmith-api/internal/metrics"
	"github.com/Conceptual-Machines/songsmith-api/internal/models"
	"github.com/Conceptual-Machines/songsmith-api/internal/observability"
	"github.com/Conceptual-Machines/songsmith-api/internal/prompt"
)

const interpretTimeout = 60 * time.Second

var (
	ErrInterpreterDisabled = errors.New("brief interpreter is not configured")
	ErrInterpreterFailed   = errors.New("brief interpretation failed")
)

// ProviderSource hands out LLM providers by model or provider name
type ProviderSource interface {
	Enabled() bool
	GetProvider(ctx context.Context, model, providerName string) (llm.Provider, error)
}

// InterpretService turns free-text briefs into validated composition requests
type InterpretService struct {
	providers     ProviderSource
	prompts       *prompt.Builder
	defaultModel  string
	noteCeiling   int
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
}

func NewInterpretService(providers ProviderSource, defaultModel string, noteCeiling int, cw *metrics.Client, sm *metrics.SentryMetrics) *InterpretService {
	return &InterpretService{
		providers:     providers,
		prompts:       prompt.NewPromptBuilder(),
		defaultModel:  defaultModel,
		noteCeiling:   noteCeiling,
		cloudwatch:    cw,
		sentryMetrics: sm,
	}
}

// Enabled reports whether any provider is configured
func (s *InterpretService) Enabled() bool {
	return s != nil && s.providers != nil && s.providers.Enabled()
}

// Interpret asks the model for a brief and returns it as a sanitized request.
// Invalid keys, scales or chord symbols from the model count as interpretation failures.
func (s *InterpretService) Interpret(ctx context.Context, req models.InterpretRequest, userID string) (*models.InterpretResponse, error) {
	if !s.Enabled() {
		return nil, ErrInterpreterDisabled
	}

	modelName := req.Model
	if modelName == "" {
		if req.Provider != "" {
			modelName = llm.DefaultModel(req.Provider)
		} else {
			modelName = s.defaultModel
		}
	}

	provider, err := s.providers.GetProvider(ctx, modelName, req.Provider)
	if err != nil {
		if errors.Is(err, llm.ErrNoProvider) {
			return nil, fmt.Errorf("%w: %v", ErrInterpreterDisabled, err)
		}
		return nil, err
	}

	systemPrompt, err := s.prompts.BuildPrompt()
	if err != nil {
		return nil, fmt.Errorf("failed to build interpreter prompt: %w", err)
	}

	trace := observability.GetClient().StartTrace(ctx, "interpret", userID, map[string]interface{}{
		"provider": provider.Name(),
	})
	defer trace.Finish()
	gen := trace.Generation("brief", modelName, req.Prompt)
	defer gen.Finish()

	callCtx, cancel := context.WithTimeout(ctx, interpretTimeout)
	defer cancel()

	result, err := provider.Interpret(callCtx, &llm.InterpretRequest{
		Model:        modelName,
		SystemPrompt: systemPrompt,
		Prompt:       req.Prompt,
		Schema:       llm.BriefSchema(),
	})
	if err != nil {
		gen.Fail(err)
		logger.Error("Brief interpretation failed", err, logger.Fields{"provider": provider.Name(), "model": modelName})
		return nil, fmt.Errorf("%w: %v", ErrInterpreterFailed, err)
	}

	gen.Output(result.RawOutput)
	gen.RecordUsage(result.InputTokens, result.OutputTokens)
	s.cloudwatch.RecordTokenUsage(provider.Name(), modelName, int(result.InputTokens), int(result.OutputTokens))
	s.sentryMetrics.RecordTokenUsage(ctx, modelName, int(result.InputTokens), int(result.OutputTokens))

	brief, err := llm.ParseBrief(result.RawOutput)
	if err != nil {
		gen.Fail(err)
		return nil, fmt.Errorf("%w: %v", ErrInterpreterFailed, err)
	}

	params, err := s.validate(brief.Request())
	if err != nil {
		gen.Fail(err)
		return nil, fmt.Errorf("%w: %v", ErrInterpreterFailed, err)
	}

	logger.Info("Brief interpreted", logger.Fields{
		"provider": provider.Name(),
		"model":    modelName,
		"key":      params.Key,
		"scale":    params.Scale,
		"tempo":    params.Tempo,
		"trace_id": trace.ID(),
	})

	return &models.InterpretResponse{
		Request:   models.RequestFromParams(params),
		Rationale: brief.Rationale,
		Provider:  provider.Name(),
		Model:     modelName,
	}, nil
}

// validate applies request defaults and clamping, then rejects anything the
// composer would refuse so the returned request is always playable
func (s *InterpretService) validate(req models.CompositionRequest) (composer.Params, error) {
	params, err := req.ToParams(s.noteCeiling)
	if err != nil {
		return composer.Params{}, err
	}
	params = params.Sanitize()

	if _, err := composer.NewScale(params.Key, params.Scale); err != nil {
		return composer.Params{}, err
	}
	if _, err := composer.ParseProgression(params.Progression); err != nil {
		return composer.Params{}, err
	}
	return params, nil
}
