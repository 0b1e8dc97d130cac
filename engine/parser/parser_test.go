package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/nathoo/stageplay/logging"
	"github.com/nathoo/stageplay/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{"empty string", "", types.Intent{}},
		{"whitespace only", "   ", types.Intent{}},
		{"trailing newline", "search\n", types.Intent{Verb: types.VerbSearch}},

		// Movement
		{"go north", "go north", types.Intent{Verb: types.VerbGo, Object: "north"}},
		{"enter cave", "enter cave", types.Intent{Verb: types.VerbGo, Object: "cave"}},
		{"go without target", "go", types.Intent{}},
		{"go two words", "go north east", types.Intent{}},

		// Look
		{"look door", "look door", types.Intent{Verb: types.VerbLook, Object: "door"}},
		{"look at door", "look at door", types.Intent{Verb: types.VerbLook, Object: "door"}},
		{"examine spade", "examine spade", types.Intent{Verb: types.VerbLook, Object: "spade"}},

		// Search
		{"search", "search", types.Intent{Verb: types.VerbSearch}},
		{"search with object", "search room", types.Intent{}},

		// Take
		{"take key", "take key", types.Intent{Verb: types.VerbTake, Object: "key"}},
		{"take all", "take all", types.Intent{Verb: types.VerbTake, Object: "all"}},
		{"take multi word", "take blue key", types.Intent{Verb: types.VerbTake, Object: "blue key"}},
		{"take nothing", "take", types.Intent{}},
		{"take spaces", "take   ", types.Intent{}},

		// Use
		{"use lever", "use lever", types.Intent{Verb: types.VerbUse, Object: "lever"}},
		{"use key on door", "use key on door", types.Intent{Verb: types.VerbUseWith, Object: "key", Target: "door"}},
		{"use key with door", "use key with door", types.Intent{Verb: types.VerbUseWith, Object: "key", Target: "door"}},
		{"use key at door", "use key at door", types.Intent{}},

		// Session
		{"exit", "exit", types.Intent{Verb: types.VerbExit}},
		{"save", "save", types.Intent{Verb: types.VerbSave}},
		{"save slot", "save slot1", types.Intent{Verb: types.VerbSave, Object: "slot1"}},
		{"load", "load", types.Intent{Verb: types.VerbLoad}},
		{"load slot", "load slot1", types.Intent{Verb: types.VerbLoad, Object: "slot1"}},

		// Case sensitive
		{"upper case verb", "GO north", types.Intent{}},

		// Unknown
		{"unknown verb", "dance", types.Intent{}},
	}

	p := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInterpret_EmptyInputHasNoDiagnostic(t *testing.T) {
	p := New(nil)
	in, err := p.Interpret("")
	if err != nil {
		t.Errorf("expected no diagnostic, got %v", err)
	}
	if in != (types.Intent{}) {
		t.Errorf("expected no-op, got %+v", in)
	}
}

func TestInterpret_UnknownVerb(t *testing.T) {
	p := New(nil)
	in, err := p.Interpret("dance wildly")
	if !errors.Is(err, ErrUnrecognized) {
		t.Fatalf("expected ErrUnrecognized, got %v", err)
	}
	if !strings.Contains(err.Error(), "dance wildly") {
		t.Errorf("expected input in diagnostic, got %q", err.Error())
	}
	if in.Verb != types.VerbNone {
		t.Errorf("expected no-op, got %+v", in)
	}
}

func TestInterpret_AmbiguousRuleIsSkipped(t *testing.T) {
	var logs bytes.Buffer
	rules := []Rule{
		// Unanchored: "ring ring" matches twice.
		{regexp.MustCompile(`ring`), bare(types.VerbSearch)},
		{regexp.MustCompile(`^exit$`), bare(types.VerbExit)},
	}
	p := NewWithRules(rules, logging.NewWithWriter(&logs, slog.LevelDebug))

	in, err := p.Interpret("ring ring")
	if !errors.Is(err, ErrUnrecognized) {
		t.Fatalf("expected ErrUnrecognized, got %v", err)
	}
	if !strings.Contains(err.Error(), "matched 2 times") {
		t.Errorf("expected match-failure reason, got %q", err.Error())
	}
	if in != (types.Intent{}) {
		t.Errorf("expected no-op, got %+v", in)
	}
	if !strings.Contains(logs.String(), "ambiguous command rule skipped") {
		t.Errorf("expected a warning to be logged, got %q", logs.String())
	}

	// A single match of the same rule still wins.
	if got := p.Parse("ring"); got.Verb != types.VerbSearch {
		t.Errorf("expected search, got %+v", got)
	}
}

func TestInterpret_AmbiguousRuleFallsThroughToLaterRule(t *testing.T) {
	rules := []Rule{
		{regexp.MustCompile(`o`), bare(types.VerbSearch)},
		{regexp.MustCompile(`^go (\w+)$`), first(types.VerbGo)},
	}
	p := NewWithRules(rules, nil)

	got := p.Parse("go north")
	want := types.Intent{Verb: types.VerbGo, Object: "north"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestUse_CaptureCountDecides(t *testing.T) {
	one := regexp.MustCompile(`^use (\w+)$`)
	two := regexp.MustCompile(`^use (\w+) on (\w+)$`)

	if got := use(one, []string{"lever"}); got.Verb != types.VerbUse {
		t.Errorf("one capture: got %+v", got)
	}
	if got := use(two, []string{"key", "door"}); got.Verb != types.VerbUseWith || got.Target != "door" {
		t.Errorf("two captures: got %+v", got)
	}
}

// FuzzParse checks that parsing never panics and always yields a known verb.
func FuzzParse(f *testing.F) {
	for _, seed := range []string{"", "go north", "take all", "use key on door", "save x", "load", "\x00"} {
		f.Add(seed)
	}
	known := map[types.Verb]bool{
		types.VerbNone: true, types.VerbGo: true, types.VerbLook: true, types.VerbTake: true,
		types.VerbUse: true, types.VerbUseWith: true, types.VerbSearch: true,
		types.VerbSave: true, types.VerbLoad: true, types.VerbExit: true,
	}
	p := New(nil)
	f.Fuzz(func(t *testing.T, input string) {
		if got := p.Parse(input); !known[got.Verb] {
			t.Errorf("Parse(%q) produced unknown verb %q", input, got.Verb)
		}
	})
}
