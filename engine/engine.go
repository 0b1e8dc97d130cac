// Package engine provides the Step() orchestrator that wires together
// parsing, resolution, triggers, effects, and events into a single turn.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathoo/stageplay/engine/effects"
	"github.com/nathoo/stageplay/engine/events"
	"github.com/nathoo/stageplay/engine/parser"
	"github.com/nathoo/stageplay/engine/resolve"
	"github.com/nathoo/stageplay/engine/rules"
	"github.com/nathoo/stageplay/engine/save"
	"github.com/nathoo/stageplay/engine/text"
	"github.com/nathoo/stageplay/engine/world"
	"github.com/nathoo/stageplay/logging"
	"github.com/nathoo/stageplay/types"
)

// TakeAll is the take target that picks up everything in the stage.
const TakeAll = "all"

// Engine owns the live world and applies one command at a time.
type Engine struct {
	World  *types.World
	Parser *parser.Parser
	Store  save.Store
	Logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the slot store used by save and load.
func WithStore(s save.Store) Option {
	return func(e *Engine) { e.Store = s }
}

// WithLogger sets the engine's logger; the parser shares it.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithParser replaces the default command grammar.
func WithParser(p *parser.Parser) Option {
	return func(e *Engine) { e.Parser = p }
}

// New creates an engine around an already validated world.
func New(w *types.World, opts ...Option) *Engine {
	e := &Engine{World: w}
	for _, opt := range opts {
		opt(e)
	}
	e.Logger = logging.OrNop(e.Logger)
	if e.Parser == nil {
		e.Parser = parser.New(e.Logger)
	}
	world.Normalize(e.World)
	return e
}

// Header returns the banner printed once before the first prompt.
func (e *Engine) Header() []string {
	return []string{"---", e.World.Name, e.World.Description, "---"}
}

// Summary renders the current stage.
func (e *Engine) Summary() []string {
	return world.Summary(e.World)
}

// StateLines renders the runtime state for the /state meta-command.
func (e *Engine) StateLines() []string {
	w := e.World
	names := make([]string, 0, len(w.PlayerInventory))
	for _, id := range w.PlayerInventory {
		names = append(names, world.ItemName(w, id))
	}
	inv := "nothing"
	if len(names) > 0 {
		inv = strings.Join(names, ", ")
	}
	flags := "none"
	if f := world.SortedFlags(w); len(f) > 0 {
		flags = strings.Join(f, ", ")
	}
	return []string{
		"Stage: " + w.CurrentStage,
		"Inventory: " + inv,
		"Flags: " + flags,
		"Save slot: " + w.SaveName,
	}
}

// Step processes one line of player input and returns the result.
func (e *Engine) Step(ctx context.Context, input string) types.Result {
	intent, err := e.Parser.Interpret(input)
	if err != nil {
		e.Logger.Debug("input not understood", "error", err)
		return types.Result{Output: []string{"Unrecognised input: " + strings.TrimSpace(input)}}
	}
	return e.Apply(ctx, intent)
}

// Apply carries out an already parsed intent.
func (e *Engine) Apply(ctx context.Context, intent types.Intent) types.Result {
	result := types.Result{Intent: intent}
	if intent.Verb != types.VerbNone {
		e.Logger.Debug("applying intent",
			"verb", intent.Verb, "object", intent.Object, "target", intent.Target, "stage", e.World.CurrentStage)
	}

	var effs []types.Effect
	var out []string

	switch intent.Verb {
	case types.VerbNone:
		return result
	case types.VerbGo:
		effs, out = e.goPath(intent.Object)
	case types.VerbLook:
		out = e.look(intent.Object)
	case types.VerbSearch:
		out = e.search()
	case types.VerbTake:
		effs, out = e.take(intent.Object)
	case types.VerbUse, types.VerbUseWith:
		effs, out = e.use(intent)
	case types.VerbSave:
		result.Output = e.save(ctx, intent.Object)
		return result
	case types.VerbLoad:
		result.Output = e.load(ctx, intent.Object)
		return result
	case types.VerbExit:
		result.Quit = true
		return result
	}
	result.Output = append(result.Output, out...)

	// Apply effects, then dispatch the events they raised once.
	evts := effects.Apply(e.World, effs)
	result.Effects = append(result.Effects, effs...)
	result.Events = append(result.Events, evts...)

	if eventEffs := events.Dispatch(evts, e.World); len(eventEffs) > 0 {
		result.Effects = append(result.Effects, eventEffs...)
		result.Events = append(result.Events, effects.Apply(e.World, eventEffs)...)
	}

	return result
}

func (e *Engine) goPath(name string) ([]types.Effect, []string) {
	p, ok := world.CurrentStage(e.World).Paths[name]
	if !ok {
		return nil, []string{fmt.Sprintf("Didn't understand %q", name)}
	}
	dest, err := world.Traverse(e.World, p)
	if err != nil {
		return nil, []string{world.BlockedText(p, err)}
	}
	return []types.Effect{
		{Type: effects.MovePlayer, Params: map[string]any{"stage": dest}},
	}, nil
}

// look prefers a path of the current stage, then a carried item, then any
// discoverable catalog item.
func (e *Engine) look(name string) []string {
	if p, ok := world.CurrentStage(e.World).Paths[name]; ok {
		if p.DetailedDescription != "" {
			return []string{p.DetailedDescription}
		}
		return []string{p.Description}
	}

	for _, candidates := range [][]string{e.World.PlayerInventory, resolve.CatalogIDs(e.World)} {
		id, err := resolve.Item(e.World, name, candidates)
		var amb *resolve.AmbiguityError
		switch {
		case err == nil:
			return []string{e.World.Inventory[id].Description}
		case errors.As(err, &amb):
			return []string{e.which(amb)}
		}
	}
	return []string{fmt.Sprintf("You look around, but see no %q.", name)}
}

// search lists the stage's items the player does not carry yet.
func (e *Engine) search() []string {
	ids := e.unclaimed()
	if len(ids) == 0 {
		return []string{"You search the area, but find nothing."}
	}
	return []string{fmt.Sprintf("You found %s.", text.ItemList(e.names(ids)))}
}

func (e *Engine) take(name string) ([]types.Effect, []string) {
	if name == TakeAll {
		return e.takeAll()
	}

	st := world.CurrentStage(e.World)
	candidates := append(append([]string{}, st.Items...), e.World.PlayerInventory...)
	id, err := resolve.Item(e.World, name, candidates)
	if err != nil {
		var amb *resolve.AmbiguityError
		if errors.As(err, &amb) {
			return nil, []string{e.which(amb)}
		}
		return nil, []string{fmt.Sprintf("There is no %s here.", name)}
	}

	name = world.ItemName(e.World, id)
	if world.StageHasItem(st, id) && !world.HasItem(e.World, id) {
		return takeEffects(id), []string{fmt.Sprintf("You take the %s.", name)}
	}
	return nil, []string{fmt.Sprintf("You already took the %s.", name)}
}

func (e *Engine) takeAll() ([]types.Effect, []string) {
	ids := e.unclaimed()
	if len(ids) == 0 {
		return nil, []string{"There is nothing here to take."}
	}
	var effs []types.Effect
	for _, id := range ids {
		effs = append(effs, takeEffects(id)...)
	}
	return effs, []string{fmt.Sprintf("You take %s.", text.ItemList(e.names(ids)))}
}

func takeEffects(id string) []types.Effect {
	return []types.Effect{
		{Type: effects.GiveItem, Params: map[string]any{"item": id}},
		{Type: effects.RemoveStageItem, Params: map[string]any{"item": id}},
	}
}

func (e *Engine) use(intent types.Intent) ([]types.Effect, []string) {
	if intent.Verb == types.VerbUseWith {
		if _, err := resolve.Item(e.World, intent.Object, e.World.PlayerInventory); err != nil {
			return nil, []string{fmt.Sprintf("You don't have %s.", text.WithArticle(intent.Object))}
		}
	}

	tr, ok := rules.Find(e.World, rules.TriggerKey(intent))
	if !ok {
		return nil, []string{"You can't do that."}
	}

	msg := fmt.Sprintf("You use the %s.", intent.Object)
	if intent.Verb == types.VerbUseWith {
		msg = fmt.Sprintf("You use the %s on the %s.", intent.Object, intent.Target)
	}
	return rules.Effects(tr), []string{msg}
}

func (e *Engine) save(ctx context.Context, slot string) []string {
	if e.Store == nil {
		return []string{"Saving is not available."}
	}
	if slot != "" {
		e.World.SaveName = slot
	}
	slot = e.World.SaveName

	if err := e.Store.Save(ctx, slot, e.World); err != nil {
		e.Logger.Error("save failed", "slot", slot, "location", e.Store.Location(slot), "error", err)
		return []string{fmt.Sprintf("Could not save the game: %v", err)}
	}
	e.Logger.Info("game saved", "slot", slot, "location", e.Store.Location(slot))
	return []string{fmt.Sprintf("Game saved to %q.", slot)}
}

func (e *Engine) load(ctx context.Context, slot string) []string {
	if e.Store == nil {
		return []string{"Loading is not available."}
	}
	if slot != "" {
		e.World.SaveName = slot
	}
	slot = e.World.SaveName

	loaded, err := e.Store.Load(ctx, slot)
	switch {
	case errors.Is(err, save.ErrNoSaveLocation):
		return []string{`There are no saved games yet. Type "save" to create one.`}
	case errors.Is(err, save.ErrSlotNotFound):
		return []string{fmt.Sprintf("There is no saved game called %q. Type \"save %s\" to create it.", slot, slot)}
	case err != nil:
		e.Logger.Error("load failed", "slot", slot, "location", e.Store.Location(slot), "error", err)
		return []string{fmt.Sprintf("Could not load the game: %v", err)}
	}

	e.World = loaded
	e.Logger.Info("game loaded", "slot", slot, "stage", loaded.CurrentStage)
	return []string{fmt.Sprintf("Game loaded from %q.", slot)}
}

// unclaimed returns the current stage's discoverable items the player does
// not carry, in stage order.
func (e *Engine) unclaimed() []string {
	var ids []string
	seen := map[string]bool{}
	for _, id := range world.CurrentStage(e.World).Items {
		if seen[id] || world.HasItem(e.World, id) || world.IsHiddenItem(e.World, id) {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (e *Engine) names(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = world.ItemName(e.World, id)
	}
	return names
}

// which asks the player to pick between same-named items by display name.
func (e *Engine) which(amb *resolve.AmbiguityError) string {
	return fmt.Sprintf("Which %s? (%s)", amb.Name, strings.Join(e.names(amb.Candidates), ", "))
}
