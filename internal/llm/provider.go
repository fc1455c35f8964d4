package llm

import (
	"context"
)

// Provider defines the interface for LLM providers
// All providers MUST support structured output (JSON Schema) so the brief can be decoded
type Provider interface {
	// Interpret turns a free-text brief into a JSON document matching request.Schema
	Interpret(ctx context.Context, request *InterpretRequest) (*InterpretResult, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// InterpretRequest contains all parameters needed for one interpretation call
type InterpretRequest struct {
	Model        string
	SystemPrompt string
	Prompt       string
	// Structured output schema - REQUIRED for reliable JSON parsing
	Schema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// InterpretResult contains the raw structured output and token usage
type InterpretResult struct {
	RawOutput    string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// TotalTokens returns input plus output tokens
func (r *InterpretResult) TotalTokens() int64 {
	return r.InputTokens + r.OutputTokens
}
