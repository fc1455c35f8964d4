package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5fd7"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888")).Width(10)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555")).Padding(0, 1)
)

// renderSummary draws a boxed overview of the generated song
func renderSummary(comp *composer.Composition, path string) string {
	p := comp.Params

	rows := []string{
		titleStyle.Render("♪ " + path),
		row("key", fmt.Sprintf("%s %s", p.Key, comp.Scale.Mode)),
		row("tempo", fmt.Sprintf("%d bpm", p.Tempo)),
		row("chords", strings.Join(p.Progression, " ")),
		row("bars", fmt.Sprintf("%d", comp.Bars())),
		row("notes", fmt.Sprintf("%d", comp.NoteCount)),
		row("size", fmt.Sprintf("%d bytes", len(comp.Data))),
		"",
		sectionLine(comp.Sections),
		"",
	}

	for _, t := range comp.Tracks {
		line := fmt.Sprintf("%-7s ch%-2d %5d notes", t.Kind, t.Channel+1, t.Notes)
		if t.Error != "" {
			line = errorStyle.Render(fmt.Sprintf("%-7s failed: %s", t.Kind, t.Error))
		}
		rows = append(rows, line)
	}

	if comp.Truncated {
		rows = append(rows, "", warnStyle.Render(fmt.Sprintf("note ceiling of %d reached, song truncated", p.NoteCeiling)))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// sectionLine renders the arrangement as "intro(4) › verse(8) › ..."
func sectionLine(sections []composer.Section) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = fmt.Sprintf("%s(%d)", s.Type, s.Bars)
	}
	return sectionStyle.Render(strings.Join(parts, " › "))
}
