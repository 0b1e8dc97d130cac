package resolve

import (
	"errors"
	"testing"

	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/types"
)

func testWorld() *types.World {
	w := world.New("Test", "")
	w.Inventory["rusty_key"] = types.Item{Name: "Rusty Key", Description: "An old iron key."}
	w.Inventory["golden_key"] = types.Item{Name: "Golden Key", Description: "A shiny key."}
	w.Inventory["lamp"] = types.Item{Name: "oil lamp", Description: "A lamp."}
	w.Inventory["token"] = types.Item{Name: "token", Hidden: true}
	return w
}

func TestItem_ExactID(t *testing.T) {
	w := testWorld()
	id, err := Item(w, "lamp", []string{"lamp", "rusty_key"})
	if err != nil || id != "lamp" {
		t.Errorf("got %q, %v", id, err)
	}
}

func TestItem_DisplayName(t *testing.T) {
	w := testWorld()
	tests := []struct {
		name string
		want string
	}{
		{"rusty key", "rusty_key"},
		{"RUSTY KEY", "rusty_key"},
		{"oil lamp", "lamp"},
		{"rusty", "rusty_key"},
		{"golden", "golden_key"},
	}
	for _, tt := range tests {
		id, err := Item(w, tt.name, CatalogIDs(w))
		if err != nil {
			t.Errorf("Item(%q): unexpected error %v", tt.name, err)
			continue
		}
		if id != tt.want {
			t.Errorf("Item(%q) = %q, want %q", tt.name, id, tt.want)
		}
	}
}

func TestItem_Ambiguous(t *testing.T) {
	w := testWorld()
	_, err := Item(w, "key", CatalogIDs(w))

	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %v", err)
	}
	if len(amb.Candidates) != 2 || amb.Candidates[0] != "golden_key" || amb.Candidates[1] != "rusty_key" {
		t.Errorf("unexpected candidates %v", amb.Candidates)
	}
	if amb.Error() != "which key? (golden_key, rusty_key)" {
		t.Errorf("unexpected message %q", amb.Error())
	}
}

func TestItem_CandidatesLimitTheSearch(t *testing.T) {
	w := testWorld()
	id, err := Item(w, "key", []string{"rusty_key", "lamp"})
	if err != nil || id != "rusty_key" {
		t.Errorf("got %q, %v", id, err)
	}
}

func TestItem_NotFound(t *testing.T) {
	w := testWorld()
	_, err := Item(w, "sword", CatalogIDs(w))

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Name != "sword" {
		t.Errorf("got name %q", nf.Name)
	}
}

func TestItem_HiddenNeverResolves(t *testing.T) {
	w := testWorld()
	if _, err := Item(w, "token", CatalogIDs(w)); err == nil {
		t.Error("expected hidden item to stay undiscoverable")
	}
}
