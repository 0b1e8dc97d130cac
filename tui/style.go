package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	styleStage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	stylePath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("249"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleFound = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleFailure = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindHeader
	kindStage
	kindPath
	kindFound
	kindFailure
	kindInput
	kindSystem
	kindHelp
	kindTrace
)

var failurePrefixes = []string{
	"You can't",
	"You don't have",
	"You look around, but see no",
	"You search the area, but find nothing",
	"Didn't understand",
	"Unrecognised input",
	"There is no",
	"There is nothing",
	"There are no",
	"Could not",
	"Which ",
	"Locked!",
}

// classifyLine determines what kind of engine output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "You found "),
		strings.HasPrefix(line, "You take "),
		strings.HasPrefix(line, "Game saved"),
		strings.HasPrefix(line, "Game loaded"):
		return kindFound
	}
	for _, p := range failurePrefixes {
		if strings.HasPrefix(line, p) {
			return kindFailure
		}
	}
	return kindNarration
}

// render applies the style for a line kind.
func render(line string, kind lineKind) string {
	switch kind {
	case kindHeader:
		return styleHeader.Render(line)
	case kindStage:
		return styleStage.Render(line)
	case kindPath:
		return stylePath.Render(line)
	case kindFound:
		return styleFound.Render(line)
	case kindFailure:
		return styleFailure.Render(line)
	case kindInput:
		return stylePlayerInput.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindHelp:
		return styleHelp.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}
