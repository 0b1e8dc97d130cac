// Package events implements single-pass event handler dispatch.
// Event handlers produce additional effects but do not recurse.
package events

import (
	"github.com/nathoo/stageplay/engine/effects"
	"github.com/nathoo/stageplay/engine/rules"
	"github.com/nathoo/stageplay/types"
)

// Dispatch runs the handlers for the emitted events. Single pass, no
// recursion. Entering a stage runs that stage's "on enter" trigger.
func Dispatch(evts []types.Event, w *types.World) []types.Effect {
	var result []types.Effect

	for _, event := range evts {
		switch event.Type {
		case effects.EventStageEntered:
			stage, _ := event.Data["stage"].(string)
			result = append(result, rules.OnEnter(w, stage)...)
		}
	}

	return result
}
