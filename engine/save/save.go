// Package save implements the world snapshot format and the slot stores
// that keep snapshots between sessions.
package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/types"
)

var (
	// ErrNoSaveLocation means nothing has ever been saved to the store.
	ErrNoSaveLocation = errors.New("no save location")
	// ErrSlotNotFound means the store exists but holds no such slot.
	ErrSlotNotFound = errors.New("save slot not found")
	// ErrInvalidSlot rejects slot names that could escape the store.
	ErrInvalidSlot = errors.New("invalid save slot name")
)

var slotPattern = regexp.MustCompile(`^[\w-]+$`)

// Store persists world snapshots under named slots.
type Store interface {
	Save(ctx context.Context, slot string, w *types.World) error
	Load(ctx context.Context, slot string) (*types.World, error)
	List(ctx context.Context) ([]string, error)
	// Location describes where a slot lives, for player-facing messages.
	Location(slot string) string
}

// ValidateSlot checks that slot is a plain name.
func ValidateSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// Encode serializes the entire world to JSON bytes.
func Encode(w *types.World) ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// Decode deserializes JSON bytes into a world, allocating any missing
// collections and checking that every stage reference resolves.
func Decode(data []byte) (*types.World, error) {
	var w types.World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	world.Normalize(&w)
	if err := world.CheckStages(&w); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &w, nil
}
