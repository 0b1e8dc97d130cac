// Package resolve maps item names typed by the player to catalog item IDs.
package resolve

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/nathoo/stageplay/types"
)

// AmbiguityError indicates multiple items matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no item matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no item called %q", e.Name)
}

// Item resolves name against the candidate item IDs. An exact ID match
// wins outright; otherwise the catalog display names are compared
// case-insensitively, whole name first, then any single word of the name.
// Hidden catalog items never resolve.
func Item(w *types.World, name string, candidates []string) (string, error) {
	if slices.Contains(candidates, name) && !w.Inventory[name].Hidden {
		return name, nil
	}

	nameLower := strings.ToLower(strings.TrimSpace(name))
	underscored := strings.ReplaceAll(nameLower, " ", "_")

	var exact, partial []string
	seen := map[string]bool{}
	for _, id := range candidates {
		if seen[id] {
			continue
		}
		seen[id] = true

		it := w.Inventory[id]
		if it.Hidden {
			continue
		}
		itemName := strings.ToLower(it.Name)
		switch {
		case itemName == nameLower, strings.ToLower(id) == nameLower, strings.ToLower(id) == underscored:
			exact = append(exact, id)
		case slices.Contains(strings.Fields(itemName), nameLower):
			partial = append(partial, id)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = partial
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", &AmbiguityError{Name: name, Candidates: matches}
	}
}

// CatalogIDs returns every item ID in the world catalog, sorted.
func CatalogIDs(w *types.World) []string {
	ids := make([]string, 0, len(w.Inventory))
	for id := range w.Inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
