package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/stageplay/engine/world"
)

// stageDisplayName derives a human-readable name from a stage ID:
// "great_hall" -> "Great Hall".
func stageDisplayName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width status line with the stage, its
// visible paths, and the inventory (names if they fit, else a count).
func (m Model) renderStatusBar() string {
	w := m.engine.World

	paths := strings.Join(world.VisiblePaths(w, world.CurrentStage(w)), ",")
	if paths == "" {
		paths = "none"
	}
	left := fmt.Sprintf(" %s | Paths: %s", stageDisplayName(w.CurrentStage), paths)

	right := fmt.Sprintf("Slot: %s ", w.SaveName)
	if n := len(w.PlayerInventory); n > 0 {
		names := make([]string, n)
		for i, id := range w.PlayerInventory {
			names[i] = world.ItemName(w, id)
		}
		right = fmt.Sprintf("Inv: %s | Slot: %s ", strings.Join(names, ", "), w.SaveName)
		if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
			right = fmt.Sprintf("Inv: %d | Slot: %s ", n, w.SaveName)
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
