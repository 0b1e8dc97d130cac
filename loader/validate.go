package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/stageplay/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// check verifies the document's cross references. Errors make the
// document unusable; warnings point at content that can never be reached.
func check(doc *document) *ValidationError {
	ve := &ValidationError{}

	if doc.Name == "" {
		ve.Warnings = append(ve.Warnings, "name is empty")
	}

	// Current stage exists.
	if doc.CurrentStage == "" {
		ve.Errors = append(ve.Errors, "current_stage is required")
	} else if _, ok := doc.Stages[doc.CurrentStage]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"current_stage %q not found in defined stages", doc.CurrentStage))
	}

	seen := map[string]bool{}
	for _, id := range doc.PlayerInventory {
		if _, ok := doc.Inventory[id]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"player_inventory references undefined item %q", id))
		}
		if seen[id] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"player_inventory lists item %q more than once", id))
		}
		seen[id] = true
	}

	setFlags := settableFlags(doc)

	for _, stageID := range sortedKeys(doc.Stages) {
		st := doc.Stages[stageID]
		if st == nil {
			ve.Errors = append(ve.Errors, fmt.Sprintf("stage %q is empty", stageID))
			continue
		}

		for _, pathID := range sortedKeys(st.Paths) {
			p := st.Paths[pathID]
			where := fmt.Sprintf("stage %q path %q", stageID, pathID)
			if _, ok := doc.Stages[p.Destination]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s points to undefined stage %q", where, p.Destination))
			}
			if p.LockedBy != "" {
				if _, ok := doc.Inventory[p.LockedBy]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"%s is locked by undefined item %q", where, p.LockedBy))
				}
			}
			if p.HiddenUnless != "" && !setFlags[p.HiddenUnless] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"%s is hidden behind flag %q that no trigger sets", where, p.HiddenUnless))
			}
		}

		for _, itemID := range st.Items {
			if _, ok := doc.Inventory[itemID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"stage %q references undefined item %q", stageID, itemID))
			}
		}

		for _, trigID := range sortedKeys(st.Triggers) {
			tr := st.Triggers[trigID]
			where := fmt.Sprintf("stage %q trigger %q", stageID, trigID)
			if tr.Flag == "" {
				ve.Errors = append(ve.Errors, where+" has no flag")
			}
			switch types.TriggerAction(tr.Action) {
			case "", types.ActionToggle, types.ActionSet:
			default:
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s has unknown action %q", where, tr.Action))
			}
			if !strings.HasPrefix(trigID, "use ") && trigID != "on enter" {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"%s can never be triggered: ids start with \"use \" or are \"on enter\"", where))
			}
		}
	}

	return ve
}

// settableFlags returns every flag that starts set or that some trigger
// can set.
func settableFlags(doc *document) map[string]bool {
	flags := map[string]bool{}
	for _, f := range doc.Flags {
		flags[f] = true
	}
	for _, st := range doc.Stages {
		if st == nil {
			continue
		}
		for _, tr := range st.Triggers {
			flags[tr.Flag] = true
		}
	}
	return flags
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
