package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	defaultOpenAIModel = "gpt-5-mini"
	defaultGeminiModel = "gemini-2.5-flash"
)

// ErrNoProvider is returned when no API key is configured for the requested provider
var ErrNoProvider = errors.New("llm provider not configured")

// ProviderFactory creates providers based on model name or explicit provider choice
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
	}
}

// Enabled reports whether at least one provider has credentials
func (f *ProviderFactory) Enabled() bool {
	return f != nil && (f.openaiAPIKey != "" || f.geminiAPIKey != "")
}

// GetProvider returns the appropriate provider for the given model/provider name
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	if !f.Enabled() {
		return nil, ErrNoProvider
	}

	// If provider is explicitly specified, use that
	if providerName != "" {
		return f.getProviderByName(ctx, providerName)
	}

	// Otherwise, infer from model name
	return f.getProviderByModel(ctx, model)
}

// DefaultModel returns the model used when a request names only a provider
func DefaultModel(providerName string) string {
	if strings.EqualFold(providerName, providerNameGemini) {
		return defaultGeminiModel
	}
	return defaultOpenAIModel
}

// getProviderByName creates a provider by explicit name
func (f *ProviderFactory) getProviderByName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameOpenAI:
		if f.openaiAPIKey == "" {
			return nil, fmt.Errorf("%w: openai API key not configured", ErrNoProvider)
		}
		return NewOpenAIProvider(f.openaiAPIKey), nil

	case providerNameGemini:
		if f.geminiAPIKey == "" {
			return nil, fmt.Errorf("%w: gemini API key not configured", ErrNoProvider)
		}
		return NewGeminiProvider(ctx, f.geminiAPIKey)

	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini)", providerName)
	}
}

// getProviderByModel infers provider from model name
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	if strings.HasPrefix(modelLower, "gemini-") {
		return f.getProviderByName(ctx, providerNameGemini)
	}
	if strings.HasPrefix(modelLower, "gpt-") {
		return f.getProviderByName(ctx, providerNameOpenAI)
	}

	// Unknown models go to whichever provider is configured, OpenAI first
	if f.openaiAPIKey != "" {
		return NewOpenAIProvider(f.openaiAPIKey), nil
	}
	return NewGeminiProvider(ctx, f.geminiAPIKey)
}
