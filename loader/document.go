package loader

import (
	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/types"
)

// document mirrors the world document's field names. It differs from
// types.World where the document allows omissions: trigger visibility
// defaults to true and the action defaults to toggle.
type document struct {
	Name            string               `yaml:"name" json:"name"`
	Description     string               `yaml:"description" json:"description"`
	Inventory       map[string]itemDoc   `yaml:"inventory" json:"inventory"`
	PlayerInventory []string             `yaml:"player_inventory" json:"player_inventory"`
	Stages          map[string]*stageDoc `yaml:"stages" json:"stages"`
	Flags           []string             `yaml:"flags" json:"flags"`
	CurrentStage    string               `yaml:"current_stage" json:"current_stage"`
	SaveName        string               `yaml:"save_name" json:"save_name"`
}

type itemDoc struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Hidden      bool   `yaml:"hidden" json:"hidden"`
}

type stageDoc struct {
	Description string                `yaml:"description" json:"description"`
	Paths       map[string]pathDoc    `yaml:"paths" json:"paths"`
	Items       []string              `yaml:"items" json:"items"`
	Triggers    map[string]triggerDoc `yaml:"triggers" json:"triggers"`
}

type pathDoc struct {
	Description         string `yaml:"description" json:"description"`
	DetailedDescription string `yaml:"detailed_description" json:"detailed_description"`
	Destination         string `yaml:"destination" json:"destination"`
	LockedBy            string `yaml:"locked_by" json:"locked_by"`
	LockedText          string `yaml:"locked_text" json:"locked_text"`
	HiddenUnless        string `yaml:"hidden_unless" json:"hidden_unless"`
	HiddenText          string `yaml:"hidden_text" json:"hidden_text"`
}

type triggerDoc struct {
	Flag        string `yaml:"flag" json:"flag"`
	Description string `yaml:"description" json:"description"`
	Visible     *bool  `yaml:"visible" json:"visible"`
	Action      string `yaml:"action" json:"action"`
}

// compile converts a validated document into a World.
func compile(doc *document) *types.World {
	w := world.New(doc.Name, doc.Description)
	w.CurrentStage = doc.CurrentStage
	if doc.SaveName != "" {
		w.SaveName = doc.SaveName
	}

	for id, it := range doc.Inventory {
		w.Inventory[id] = types.Item{Name: it.Name, Description: it.Description, Hidden: it.Hidden}
	}
	for _, id := range doc.PlayerInventory {
		world.GiveItem(w, id)
	}
	for _, f := range doc.Flags {
		world.SetFlag(w, f)
	}

	for id, sd := range doc.Stages {
		st := &types.Stage{
			Description: sd.Description,
			Paths:       make(map[string]types.Path, len(sd.Paths)),
			Items:       append([]string{}, sd.Items...),
			Triggers:    make(map[string]types.Trigger, len(sd.Triggers)),
		}
		for pid, p := range sd.Paths {
			st.Paths[pid] = types.Path(p)
		}
		for tid, td := range sd.Triggers {
			st.Triggers[tid] = compileTrigger(td)
		}
		w.Stages[id] = st
	}

	world.Normalize(w)
	return w
}

func compileTrigger(td triggerDoc) types.Trigger {
	tr := types.Trigger{
		Flag:        td.Flag,
		Description: td.Description,
		Visible:     true,
		Action:      types.ActionToggle,
	}
	if td.Visible != nil {
		tr.Visible = *td.Visible
	}
	if td.Action != "" {
		tr.Action = types.TriggerAction(td.Action)
	}
	return tr
}
