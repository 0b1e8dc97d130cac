// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just an ordered table of anchored patterns.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nathoo/stageplay/logging"
	"github.com/nathoo/stageplay/types"
)

// ErrUnrecognized is returned by Interpret when no rule produced an intent.
var ErrUnrecognized = errors.New("unrecognised input")

// Rule pairs a pattern with the constructor that turns its captures into an
// intent. Captures holds every capture group of the single match, in order.
type Rule struct {
	Pattern *regexp.Regexp
	Build   func(re *regexp.Regexp, captures []string) types.Intent
}

// DefaultRules returns the command grammar. Order matters: the first rule
// whose pattern matches exactly once wins.
func DefaultRules() []Rule {
	return []Rule{
		{regexp.MustCompile(`^(?:go|enter) (\w+)$`), first(types.VerbGo)},
		{regexp.MustCompile(`^(?:look(?: at)?|examine) (\w+)$`), first(types.VerbLook)},
		{regexp.MustCompile(`^search$`), bare(types.VerbSearch)},
		{regexp.MustCompile(`^take (.+)$`), first(types.VerbTake)},
		{regexp.MustCompile(`^use (\w+)$`), use},
		{regexp.MustCompile(`^use (\w+) (?:with|on) (\w+)$`), use},
		{regexp.MustCompile(`^exit$`), bare(types.VerbExit)},
		{regexp.MustCompile(`^save(?: (\w+))?$`), first(types.VerbSave)},
		{regexp.MustCompile(`^load(?: (\w+))?$`), first(types.VerbLoad)},
	}
}

func bare(verb types.Verb) func(*regexp.Regexp, []string) types.Intent {
	return func(*regexp.Regexp, []string) types.Intent {
		return types.Intent{Verb: verb}
	}
}

// first builds an intent from the first capture; an unmatched optional
// group yields an empty object (save/load without a slot).
func first(verb types.Verb) func(*regexp.Regexp, []string) types.Intent {
	return func(_ *regexp.Regexp, captures []string) types.Intent {
		in := types.Intent{Verb: verb}
		if len(captures) > 0 {
			in.Object = strings.TrimSpace(captures[0])
		}
		return in
	}
}

// use picks UseWith when the matched pattern defines two capture groups.
func use(re *regexp.Regexp, captures []string) types.Intent {
	if re.NumSubexp() == 2 && len(captures) == 2 {
		return types.Intent{Verb: types.VerbUseWith, Object: captures[0], Target: captures[1]}
	}
	return types.Intent{Verb: types.VerbUse, Object: captures[0]}
}

// Parser evaluates a rule table against input lines.
type Parser struct {
	rules  []Rule
	logger *slog.Logger
}

// New creates a parser with the default grammar.
func New(logger *slog.Logger) *Parser {
	return NewWithRules(DefaultRules(), logger)
}

// NewWithRules creates a parser with a custom rule table.
func NewWithRules(rules []Rule, logger *slog.Logger) *Parser {
	return &Parser{rules: rules, logger: logging.OrNop(logger)}
}

// Parse converts a raw command string into an Intent. It is total: any
// input that no rule accepts becomes the no-op intent.
func (p *Parser) Parse(input string) types.Intent {
	in, _ := p.Interpret(input)
	return in
}

// Interpret converts a raw command string into an Intent. When no rule
// produces a result it returns the no-op intent and an error wrapping
// ErrUnrecognized. Blank input is a silent no-op.
func (p *Parser) Interpret(input string) (types.Intent, error) {
	line := strings.TrimSpace(input)
	if line == "" {
		return types.Intent{}, nil
	}

	var reason string
	for _, r := range p.rules {
		matches := r.Pattern.FindAllStringSubmatch(line, -1)
		switch len(matches) {
		case 0:
			continue
		case 1:
			return r.Build(r.Pattern, matches[0][1:]), nil
		default:
			reason = fmt.Sprintf("pattern %q matched %d times", r.Pattern.String(), len(matches))
			p.logger.Warn("ambiguous command rule skipped",
				"pattern", r.Pattern.String(), "matches", len(matches), "input", line)
		}
	}

	if reason != "" {
		return types.Intent{}, fmt.Errorf("%w: %s (%s)", ErrUnrecognized, line, reason)
	}
	return types.Intent{}, fmt.Errorf("%w: %s", ErrUnrecognized, line)
}
