// Package types defines the shared data structures for the stageplay runtime.
// This package contains only type definitions: no logic, no methods.
package types

// Verb identifies one of the closed set of commands the interpreter produces.
type Verb string

const (
	VerbNone    Verb = ""
	VerbGo      Verb = "go"
	VerbLook    Verb = "look"
	VerbTake    Verb = "take"
	VerbUse     Verb = "use"
	VerbUseWith Verb = "use_with"
	VerbSearch  Verb = "search"
	VerbSave    Verb = "save"
	VerbLoad    Verb = "load"
	VerbExit    Verb = "exit"
)

// Intent is the parsed representation of a player command.
// The zero value is the no-op intent.
type Intent struct {
	Verb   Verb
	Object string // path, item or trigger object; save slot for save/load (empty = none)
	Target string // UseWith only: the thing the object is used on
}

// TriggerAction is what a trigger does to its flag.
type TriggerAction string

const (
	ActionToggle TriggerAction = "toggle"
	ActionSet    TriggerAction = "set"
)

// Item is a describable thing in the world catalog.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Hidden      bool   `json:"hidden,omitempty"` // catalog-only, never discovered by name
}

// Path is a directed, possibly conditional edge between stages.
type Path struct {
	Description         string `json:"description"`
	DetailedDescription string `json:"detailed_description,omitempty"`
	Destination         string `json:"destination"`
	LockedBy            string `json:"locked_by,omitempty"`     // item id required in inventory
	LockedText          string `json:"locked_text,omitempty"`
	HiddenUnless        string `json:"hidden_unless,omitempty"` // flag id required to see the path
	HiddenText          string `json:"hidden_text,omitempty"`
}

// Trigger is a stage-scoped action that mutates exactly one flag.
type Trigger struct {
	Flag        string        `json:"flag"`
	Description string        `json:"description"`
	Visible     bool          `json:"visible"`
	Action      TriggerAction `json:"action"`
}

// Stage is a location node in the world graph.
type Stage struct {
	Description string             `json:"description"`
	Paths       map[string]Path    `json:"paths"`
	Items       []string           `json:"items"`
	Triggers    map[string]Trigger `json:"triggers"`
}

// World is the complete game: topology, catalog and mutable runtime state.
type World struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Inventory       map[string]Item   `json:"inventory"`
	PlayerInventory []string          `json:"player_inventory"`
	Stages          map[string]*Stage `json:"stages"`
	Flags           map[string]bool   `json:"flags"` // members only
	CurrentStage    string            `json:"current_stage"`
	SaveName        string            `json:"save_name"`
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Intent  Intent
	Effects []Effect
	Events  []Event
	Output  []string
	Quit    bool
}
