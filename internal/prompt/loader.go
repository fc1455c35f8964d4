package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/songsmith-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the interpreter system prompt
func (l *Loader) GetSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.InterpreterPromptTxt)), nil
}
