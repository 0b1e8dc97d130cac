// Package effects implements centralized state mutation via the Apply function.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/types"
)

// Effect types understood by Apply.
const (
	MovePlayer      = "move_player"
	GiveItem        = "give_item"
	RemoveStageItem = "remove_stage_item"
	SetFlag         = "set_flag"
	ToggleFlag      = "toggle_flag"
)

// Event types emitted by Apply.
const (
	EventStageEntered = "stage_entered"
	EventItemTaken    = "item_taken"
	EventFlagChanged  = "flag_changed"
)

// Apply applies a list of effects to the world, mutating it, and returns
// the events emitted. Narration is produced by the verb handlers.
func Apply(w *types.World, effects []types.Effect) []types.Event {
	var events []types.Event

	for _, eff := range effects {
		switch eff.Type {
		case MovePlayer:
			stage, _ := eff.Params["stage"].(string)
			from := w.CurrentStage
			w.CurrentStage = stage
			events = append(events, types.Event{
				Type: EventStageEntered,
				Data: map[string]any{"stage": stage, "from": from},
			})

		case GiveItem:
			item, _ := eff.Params["item"].(string)
			if world.GiveItem(w, item) {
				events = append(events, types.Event{
					Type: EventItemTaken,
					Data: map[string]any{"item": item},
				})
			}

		case RemoveStageItem:
			item, _ := eff.Params["item"].(string)
			world.RemoveStageItem(world.CurrentStage(w), item)

		case SetFlag:
			flag, _ := eff.Params["flag"].(string)
			was := world.HasFlag(w, flag)
			world.SetFlag(w, flag)
			if !was {
				events = append(events, flagChanged(flag, true))
			}

		case ToggleFlag:
			flag, _ := eff.Params["flag"].(string)
			events = append(events, flagChanged(flag, world.ToggleFlag(w, flag)))
		}
	}

	return events
}

func flagChanged(flag string, value bool) types.Event {
	return types.Event{
		Type: EventFlagChanged,
		Data: map[string]any{"flag": flag, "value": value},
	}
}
