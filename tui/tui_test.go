package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/stageplay/engine"
	"github.com/nathoo/stageplay/engine/save"
	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/types"
)

func TestStageDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"hall", "Hall"},
		{"great_hall", "Great Hall"},
		{"castle-gates", "Castle Gates"},
		{"tower__top", "Tower Top"},
	}
	for _, tt := range tests {
		if got := stageDisplayName(tt.id); got != tt.want {
			t.Errorf("stageDisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"You found a rusty key.", kindFound},
		{"You take the rusty key.", kindFound},
		{`Game saved to "default".`, kindFound},
		{"[trace] Effects: 2", kindTrace},
		{"You can't do that.", kindFailure},
		{"You don't have a key.", kindFailure},
		{`Didn't understand "up"`, kindFailure},
		{"Unrecognised input: dance", kindFailure},
		{"Locked!", kindFailure},
		{"You search the area, but find nothing.", kindFailure},
		{"You use the lever.", kindNarration},
		{"A grand hall.", kindNarration},
		{"", kindNarration},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The great hall stretches before you with its vaulted ceiling.", 30,
			"The great hall stretches\nbefore you with its vaulted\nceiling."},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		if got := wordWrap(tt.text, tt.width); got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_OlderAndNewer(t *testing.T) {
	h := NewHistory(5)
	h.Record("look north")
	h.Record("go north")
	h.Record("take key")

	for _, want := range []string{"take key", "go north", "look north", "look north"} {
		if got, ok := h.Older(); !ok || got != want {
			t.Errorf("Older() = %q, %v; want %q", got, ok, want)
		}
	}

	if got, ok := h.Newer(); !ok || got != "go north" {
		t.Errorf("Newer() = %q, %v; want 'go north'", got, ok)
	}
	h.Newer() // "take key"
	if _, ok := h.Newer(); ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Older(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Newer(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(2)
	h.Record("a")
	h.Record("b")
	h.Record("c")

	if h.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", h.Len())
	}
	h.Older()
	if got, _ := h.Older(); got != "b" {
		t.Errorf("expected oldest kept entry 'b', got %q", got)
	}
}

func TestHistory_SkipsRepeats(t *testing.T) {
	h := NewHistory(5)
	h.Record("search")
	h.Record("search")
	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}
}

func TestHistory_RecordStopsBrowsing(t *testing.T) {
	h := NewHistory(5)
	h.Record("look north")
	h.Record("go north")
	h.Older()
	h.Older()

	h.Record("search")
	if got, _ := h.Older(); got != "search" {
		t.Errorf("expected browsing to restart at newest, got %q", got)
	}
}

// testWorld returns a two-stage world for TUI testing.
func testWorld() *types.World {
	w := world.New("Test Game", "Welcome to the test.")
	w.Inventory["key"] = types.Item{Name: "rusty key", Description: "An old key."}
	w.Stages["hall"] = &types.Stage{
		Description: "A grand hall.",
		Paths: map[string]types.Path{
			"north": {Description: "An archway leads north.", Destination: "garden"},
		},
		Items: []string{"key"},
	}
	w.Stages["garden"] = &types.Stage{
		Description: "A peaceful garden.",
		Paths: map[string]types.Path{
			"south": {Description: "The hall is south.", Destination: "hall"},
		},
	}
	w.CurrentStage = "hall"
	world.Normalize(w)
	return w
}

func newModel(t *testing.T, opts ...engine.Option) Model {
	t.Helper()
	m := New(context.Background(), engine.New(testWorld(), opts...))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func enter(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func transcript(m Model) string {
	lines := make([]string, len(m.rawLines))
	for i, rl := range m.rawLines {
		lines[i] = rl.text
	}
	return strings.Join(lines, "\n")
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_Opening(t *testing.T) {
	m := newModel(t)
	msg := m.opening()()
	updated, _ := m.Update(msg)
	m = updated.(Model)

	out := transcript(m)
	for _, want := range []string{"---", "Test Game", "Welcome to the test.", "A grand hall.", "An archway leads north."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in opening transcript", want)
		}
	}
}

func TestModel_StepMovesAndDescribes(t *testing.T) {
	m, cmd := enter(t, newModel(t), "go north")
	if isQuit(cmd) {
		t.Fatal("go should not quit")
	}

	if m.engine.World.CurrentStage != "garden" {
		t.Errorf("expected stage 'garden', got %q", m.engine.World.CurrentStage)
	}
	out := transcript(m)
	if !strings.Contains(out, "> go north") {
		t.Error("expected echoed input")
	}
	if !strings.Contains(out, "A peaceful garden.") {
		t.Error("expected new stage summary after moving")
	}
	if m.input.Value() != "" {
		t.Error("expected input to be cleared")
	}
}

func TestModel_ExitQuits(t *testing.T) {
	m, cmd := enter(t, newModel(t), "exit")
	if !isQuit(cmd) {
		t.Error("expected exit to quit the program")
	}
	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestModel_Again(t *testing.T) {
	m, _ := enter(t, newModel(t), "again")
	if !strings.Contains(transcript(m), "[Nothing to repeat.]") {
		t.Error("expected nothing-to-repeat message")
	}

	m, _ = enter(t, m, "search")
	m, _ = enter(t, m, "g")
	if n := strings.Count(transcript(m), "You found a rusty key."); n != 2 {
		t.Errorf("expected search to run twice, got %d", n)
	}
}

func TestModel_LoadShowsSummary(t *testing.T) {
	store := save.NewFileStore(filepath.Join(t.TempDir(), "saves"))
	m := newModel(t, engine.WithStore(store))

	m, _ = enter(t, m, "go north")
	m, _ = enter(t, m, "save")
	m, _ = enter(t, m, "go south")
	m.rawLines = nil
	m, _ = enter(t, m, "load")

	out := transcript(m)
	if !strings.Contains(out, `Game loaded from "default".`) {
		t.Errorf("expected load confirmation, got %q", out)
	}
	if !strings.Contains(out, "A peaceful garden.") {
		t.Error("expected summary of the loaded stage")
	}
}

func TestModel_StatusBar(t *testing.T) {
	m := newModel(t)
	m, _ = enter(t, m, "take key")

	bar := m.renderStatusBar()
	for _, want := range []string{"Hall", "Paths: north", "Inv: rusty key", "Slot: default"} {
		if !strings.Contains(bar, want) {
			t.Errorf("expected %q in status bar %q", want, bar)
		}
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m := newModel(t)
	for _, cmd := range []string{"/quit", "/exit"} {
		if _, quit := m.handleMeta(cmd); !quit {
			t.Errorf("expected quit for %s", cmd)
		}
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := newModel(t)
	lines, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	var joined strings.Builder
	for _, l := range lines {
		joined.WriteString(l.text + "\n")
	}
	for _, want := range []string{"/quit", "/state", "search", "PgUp/PgDn"} {
		if !strings.Contains(joined.String(), want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m := newModel(t)

	lines, _ := m.handleMeta("/trace")
	if !m.trace || !strings.Contains(lines[0].text, "enabled") {
		t.Errorf("expected trace enabled, got %v", lines)
	}
	lines, _ = m.handleMeta("/trace")
	if m.trace || !strings.Contains(lines[0].text, "disabled") {
		t.Errorf("expected trace disabled, got %v", lines)
	}
}

func TestHandleMeta_State(t *testing.T) {
	m := newModel(t)
	lines, _ := m.handleMeta("/state")
	if len(lines) == 0 || lines[0].text != "[Stage: hall]" {
		t.Errorf("expected stage line, got %v", lines)
	}
}

func TestHandleMeta_SavesWithoutStore(t *testing.T) {
	m := newModel(t)
	lines, _ := m.handleMeta("/saves")
	if len(lines) != 1 || lines[0].text != "[Saving is not available.]" {
		t.Errorf("unexpected output %v", lines)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := newModel(t)
	lines, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if !strings.Contains(lines[0].text, "Unknown command") {
		t.Errorf("expected unknown command message, got %v", lines)
	}
}
