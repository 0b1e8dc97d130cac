// Package rules finds the stage trigger a command refers to and turns a
// trigger into the effects that apply it.
package rules

import (
	"fmt"

	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/types"
)

// TriggerKey synthesizes the trigger id a use command refers to:
// "use lever" or "use key on door". Other verbs have no key.
func TriggerKey(intent types.Intent) string {
	switch intent.Verb {
	case types.VerbUse:
		return "use " + intent.Object
	case types.VerbUseWith:
		return fmt.Sprintf("use %s on %s", intent.Object, intent.Target)
	}
	return ""
}

// Find looks key up in the current stage's trigger table. Triggers are
// stage-local: a trigger defined elsewhere never matches.
func Find(w *types.World, key string) (types.Trigger, bool) {
	if key == "" {
		return types.Trigger{}, false
	}
	tr, ok := world.CurrentStage(w).Triggers[key]
	return tr, ok
}

// Effects returns the effects that apply tr. Toggle flips the flag, Set
// adds it; an unset action behaves as Toggle.
func Effects(tr types.Trigger) []types.Effect {
	typ := "toggle_flag"
	if tr.Action == types.ActionSet {
		typ = "set_flag"
	}
	return []types.Effect{
		{Type: typ, Params: map[string]any{"flag": tr.Flag}},
	}
}

// OnEnter returns the effects of the reserved "on enter" trigger of the
// given stage, or nil when the stage has none.
func OnEnter(w *types.World, stageID string) []types.Effect {
	st, err := world.LookupStage(w, stageID)
	if err != nil {
		return nil
	}
	tr, ok := st.Triggers[world.OnEnterTrigger]
	if !ok {
		return nil
	}
	return Effects(tr)
}
