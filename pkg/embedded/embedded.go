package embedded

import (
	_ "embed"
)

// InterpreterPromptTxt is the system prompt for the brief interpreter
//
//go:embed data/interpreter_prompt.txt
var InterpreterPromptTxt []byte
