// Package world holds the world model: stage lookup, the flag store,
// inventory bookkeeping, and the traversal and visibility predicates.
// Runtime mutations are applied by the effects package through the
// functions here; nothing else writes to a World.
package world

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/nathoo/stageplay/types"
)

const (
	// DefaultSaveName is the slot used until the player names one.
	DefaultSaveName = "default"
	// OnEnterTrigger is the reserved trigger run when a stage is entered.
	OnEnterTrigger = "on enter"
	// BlockedFallback is shown for a hidden or locked path without its own text.
	BlockedFallback = "Locked!"
)

var (
	ErrHidden         = errors.New("path is hidden")
	ErrLocked         = errors.New("path is locked")
	ErrUndefinedStage = errors.New("undefined stage")
)

// New creates an empty world with every collection allocated.
func New(name, description string) *types.World {
	w := &types.World{Name: name, Description: description}
	Normalize(w)
	return w
}

// Normalize allocates any nil collection and fills in the default save
// slot, so decoded worlds never carry nil maps.
func Normalize(w *types.World) {
	if w.Inventory == nil {
		w.Inventory = map[string]types.Item{}
	}
	if w.PlayerInventory == nil {
		w.PlayerInventory = []string{}
	}
	if w.Stages == nil {
		w.Stages = map[string]*types.Stage{}
	}
	if w.Flags == nil {
		w.Flags = map[string]bool{}
	}
	if w.SaveName == "" {
		w.SaveName = DefaultSaveName
	}
	for _, st := range w.Stages {
		if st == nil {
			continue
		}
		if st.Paths == nil {
			st.Paths = map[string]types.Path{}
		}
		if st.Items == nil {
			st.Items = []string{}
		}
		if st.Triggers == nil {
			st.Triggers = map[string]types.Trigger{}
		}
	}
}

// LookupStage resolves a stage id that has not been validated yet.
func LookupStage(w *types.World, id string) (*types.Stage, error) {
	st, ok := w.Stages[id]
	if !ok || st == nil {
		return nil, fmt.Errorf("%w %q", ErrUndefinedStage, id)
	}
	return st, nil
}

// CurrentStage returns the stage the player is in. The current stage id is
// validated whenever a world is loaded, so a miss is a programming error.
func CurrentStage(w *types.World) *types.Stage {
	st, err := LookupStage(w, w.CurrentStage)
	if err != nil {
		panic(fmt.Sprintf("world: current stage: %v", err))
	}
	return st
}

// CheckStages verifies that the current stage and every path destination
// name a defined stage.
func CheckStages(w *types.World) error {
	if _, err := LookupStage(w, w.CurrentStage); err != nil {
		return fmt.Errorf("current stage: %w", err)
	}
	for _, id := range sortedKeys(w.Stages) {
		st := w.Stages[id]
		if st == nil {
			return fmt.Errorf("stage %q: %w", id, ErrUndefinedStage)
		}
		for _, pid := range sortedKeys(st.Paths) {
			if _, err := LookupStage(w, st.Paths[pid].Destination); err != nil {
				return fmt.Errorf("stage %q path %q: %w", id, pid, err)
			}
		}
	}
	return nil
}

// HasFlag reports whether flag is in the world's flag set.
func HasFlag(w *types.World, flag string) bool {
	return w.Flags[flag]
}

// SetFlag adds flag to the flag set.
func SetFlag(w *types.World, flag string) {
	w.Flags[flag] = true
}

// ClearFlag removes flag from the flag set.
func ClearFlag(w *types.World, flag string) {
	delete(w.Flags, flag)
}

// ToggleFlag flips flag's membership and returns the new membership.
func ToggleFlag(w *types.World, flag string) bool {
	if HasFlag(w, flag) {
		ClearFlag(w, flag)
		return false
	}
	SetFlag(w, flag)
	return true
}

// SortedFlags returns the members of the flag set in sorted order.
func SortedFlags(w *types.World) []string {
	return sortedKeys(w.Flags)
}

// HasItem returns true if the player carries the given item.
func HasItem(w *types.World, itemID string) bool {
	return slices.Contains(w.PlayerInventory, itemID)
}

// GiveItem appends itemID to the player inventory unless already carried.
// It reports whether the inventory changed.
func GiveItem(w *types.World, itemID string) bool {
	if HasItem(w, itemID) {
		return false
	}
	w.PlayerInventory = append(w.PlayerInventory, itemID)
	return true
}

// StageHasItem reports whether itemID lies unclaimed in st.
func StageHasItem(st *types.Stage, itemID string) bool {
	return slices.Contains(st.Items, itemID)
}

// RemoveStageItem removes every occurrence of itemID from st's item list.
func RemoveStageItem(st *types.Stage, itemID string) bool {
	before := len(st.Items)
	st.Items = slices.DeleteFunc(st.Items, func(id string) bool { return id == itemID })
	return len(st.Items) != before
}

// ItemName returns the display name of a catalog item, or its id.
func ItemName(w *types.World, itemID string) string {
	if it, ok := w.Inventory[itemID]; ok && it.Name != "" {
		return it.Name
	}
	return itemID
}

// IsHiddenItem reports whether itemID is a catalog-only item.
func IsHiddenItem(w *types.World, itemID string) bool {
	return w.Inventory[itemID].Hidden
}

// IsHidden reports whether p is gated on a flag that is not set.
func IsHidden(w *types.World, p types.Path) bool {
	return p.HiddenUnless != "" && !HasFlag(w, p.HiddenUnless)
}

// IsLocked reports whether p needs an item the player does not carry.
func IsLocked(w *types.World, p types.Path) bool {
	return p.LockedBy != "" && !HasItem(w, p.LockedBy)
}

// Traverse returns p's destination, or ErrHidden / ErrLocked. The hidden
// check comes first: a path that is both reports ErrHidden.
func Traverse(w *types.World, p types.Path) (string, error) {
	if IsHidden(w, p) {
		return "", ErrHidden
	}
	if IsLocked(w, p) {
		return "", ErrLocked
	}
	return p.Destination, nil
}

// BlockedText is the message for a failed traversal.
func BlockedText(p types.Path, err error) string {
	switch {
	case errors.Is(err, ErrHidden) && p.HiddenText != "":
		return p.HiddenText
	case errors.Is(err, ErrLocked) && p.LockedText != "":
		return p.LockedText
	}
	return BlockedFallback
}

// VisiblePaths returns the ids of st's paths that are not hidden, sorted.
func VisiblePaths(w *types.World, st *types.Stage) []string {
	var ids []string
	for _, id := range sortedKeys(st.Paths) {
		if !IsHidden(w, st.Paths[id]) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Summary renders the current stage: its description, the short
// description of every visible path, then every visible trigger.
func Summary(w *types.World) []string {
	return StageSummary(w, CurrentStage(w))
}

// StageSummary renders st the way Summary renders the current stage.
func StageSummary(w *types.World, st *types.Stage) []string {
	lines := []string{st.Description}
	for _, id := range VisiblePaths(w, st) {
		if d := st.Paths[id].Description; d != "" {
			lines = append(lines, d)
		}
	}
	for _, id := range sortedKeys(st.Triggers) {
		tr := st.Triggers[id]
		if tr.Visible && tr.Description != "" {
			lines = append(lines, tr.Description)
		}
	}
	return lines
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
