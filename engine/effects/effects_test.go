package effects

import (
	"reflect"
	"testing"

	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/types"
)

func testWorld() *types.World {
	w := world.New("Test", "")
	w.Inventory["key"] = types.Item{Name: "key", Description: "A key."}
	w.Stages["hall"] = &types.Stage{Description: "A hall.", Items: []string{"key", "lamp"}}
	w.Stages["garden"] = &types.Stage{Description: "A garden."}
	w.CurrentStage = "hall"
	world.Normalize(w)
	return w
}

func TestApply_MovePlayer(t *testing.T) {
	w := testWorld()
	events := Apply(w, []types.Effect{
		{Type: MovePlayer, Params: map[string]any{"stage": "garden"}},
	})

	if w.CurrentStage != "garden" {
		t.Errorf("expected garden, got %q", w.CurrentStage)
	}
	if len(events) != 1 || events[0].Type != EventStageEntered {
		t.Fatalf("expected stage_entered event, got %+v", events)
	}
	if events[0].Data["stage"] != "garden" || events[0].Data["from"] != "hall" {
		t.Errorf("unexpected event data %v", events[0].Data)
	}
}

func TestApply_GiveItem_OnlyOnce(t *testing.T) {
	w := testWorld()
	give := []types.Effect{{Type: GiveItem, Params: map[string]any{"item": "key"}}}

	events := Apply(w, give)
	if len(events) != 1 || events[0].Type != EventItemTaken {
		t.Errorf("expected item_taken, got %+v", events)
	}

	events = Apply(w, give)
	if len(events) != 0 {
		t.Errorf("expected no event for an item already carried, got %+v", events)
	}
	if !reflect.DeepEqual(w.PlayerInventory, []string{"key"}) {
		t.Errorf("expected [key], got %v", w.PlayerInventory)
	}
}

func TestApply_RemoveStageItem(t *testing.T) {
	w := testWorld()
	Apply(w, []types.Effect{{Type: RemoveStageItem, Params: map[string]any{"item": "key"}}})
	if got := w.Stages["hall"].Items; !reflect.DeepEqual(got, []string{"lamp"}) {
		t.Errorf("expected [lamp], got %v", got)
	}
}

func TestApply_SetFlag(t *testing.T) {
	w := testWorld()
	set := []types.Effect{{Type: SetFlag, Params: map[string]any{"flag": "lit"}}}

	events := Apply(w, set)
	if !world.HasFlag(w, "lit") || len(events) != 1 {
		t.Fatalf("expected flag set with one event, got %v / %+v", w.Flags, events)
	}

	events = Apply(w, set)
	if !world.HasFlag(w, "lit") || len(events) != 0 {
		t.Errorf("second set should be silent and keep the flag, got %v / %+v", w.Flags, events)
	}
}

func TestApply_ToggleFlag(t *testing.T) {
	w := testWorld()
	toggle := []types.Effect{{Type: ToggleFlag, Params: map[string]any{"flag": "lever"}}}

	events := Apply(w, toggle)
	if !world.HasFlag(w, "lever") || events[0].Data["value"] != true {
		t.Fatalf("expected lever set, got %v / %+v", w.Flags, events)
	}

	events = Apply(w, toggle)
	if world.HasFlag(w, "lever") || events[0].Data["value"] != false {
		t.Errorf("expected lever cleared, got %v / %+v", w.Flags, events)
	}
}

func TestApply_UnknownEffectIgnored(t *testing.T) {
	w := testWorld()
	events := Apply(w, []types.Effect{{Type: "explode"}})
	if len(events) != 0 {
		t.Errorf("expected no events, got %+v", events)
	}
}
