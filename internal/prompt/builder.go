package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
)

// Builder builds the system prompt for the brief interpreter
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// BuildPrompt returns the system prompt followed by the engine's vocabulary
func (b *Builder) BuildPrompt() (string, error) {
	system, err := b.loader.GetSystemPrompt()
	if err != nil {
		return "", fmt.Errorf("failed to load system prompt: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	sb.WriteString(catalogSection())
	return sb.String(), nil
}

// catalogSection lists what the generator accepts, including the preset progressions
func catalogSection() string {
	var sb strings.Builder
	sb.WriteString("AVAILABLE VALUES\n")
	fmt.Fprintf(&sb, "Keys: %s\n", strings.Join(composer.Keys(), ", "))
	fmt.Fprintf(&sb, "Scales: %s\n", strings.Join(composer.Modes(), ", "))
	fmt.Fprintf(&sb, "Numerals: %s\n", strings.Join(composer.Numerals(), ", "))
	fmt.Fprintf(&sb, "Tempo: %d to %d bpm\n", composer.MinTempo, composer.MaxTempo)

	sb.WriteString("Example progressions:\n")
	names := composer.PresetNames()
	sort.Strings(names)
	for _, name := range names {
		chords, _ := composer.Preset(name)
		fmt.Fprintf(&sb, "- %s: %s\n", name, strings.Join(chords, " "))
	}

	return strings.TrimRight(sb.String(), "\n")
}
