// Package cli provides the line-oriented console front end: the game loop,
// output formatting, and meta-command dispatch.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/nathoo/stageplay/engine"
	"github.com/nathoo/stageplay/logging"
	"github.com/nathoo/stageplay/types"
)

// Prompt is printed before every read.
const Prompt = "\n> "

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Logger    *slog.Logger
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine on stdin and stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run prints the world header, then loops: stage summary → prompt → input
// → dispatch → output. It returns on exit, /quit, end of input, or when
// ctx is cancelled.
func (c *CLI) Run(ctx context.Context) {
	c.Logger = logging.OrNop(c.Logger)
	c.printHeader()

	scanner := bufio.NewScanner(c.In)
	describe := true
	for ctx.Err() == nil {
		if describe {
			for _, line := range c.Engine.Summary() {
				c.printLine(line)
			}
		}
		describe = true

		c.print(Prompt)
		if !scanner.Scan() {
			c.printLine("")
			return
		}
		input := strings.TrimSpace(scanner.Text())

		// Comment lines in script files are not turns.
		if strings.HasPrefix(input, "#") {
			describe = false
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			describe = false
			if c.handleMeta(ctx, input) {
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printSystem("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else if input != "" {
			c.lastCmd = input
		}

		result := c.Engine.Step(ctx, input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
		if result.Quit {
			c.printSystem("Goodbye.")
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(ctx context.Context, input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		for _, line := range HelpLines() {
			c.printLine(line)
		}

	case "/state":
		for _, line := range c.Engine.StateLines() {
			c.printSystem(line)
		}

	case "/saves":
		c.cmdSaves(ctx)

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSaves(ctx context.Context) {
	if c.Engine.Store == nil {
		c.printSystem("Saving is not available.")
		return
	}
	slots, err := c.Engine.Store.List(ctx)
	if err != nil {
		c.Logger.Error("list saves failed", "error", err)
		c.printSystem(fmt.Sprintf("Could not list saves: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saved games.")
		return
	}
	c.printSystem("Saved games: " + strings.Join(slots, ", "))
}

// HelpLines lists the game and meta commands.
func HelpLines() []string {
	return []string{
		"System:",
		"  /help         Show this help",
		"  /state        Show stage, inventory and flags",
		"  /saves        List saved games",
		"  /trace        Toggle effect and event trace output",
		"  /quit         Exit game",
		"",
		"Game commands:",
		"  go/enter <path>            Follow a path",
		"  look [at] <thing>          Look at a path or an item",
		"  examine <thing>            Same as look",
		"  search                     Search the area for items",
		"  take <item> / take all     Pick things up",
		"  use <thing>                Use something here",
		"  use <item> on <thing>      Use an item on something",
		"  save [slot] / load [slot]  Save or restore the game",
		"  again (g)                  Repeat your last command",
		"  exit                       Leave the game",
	}
}

// TraceLines renders the effects and events of a step.
func TraceLines(result types.Result) []string {
	var lines []string
	if len(result.Effects) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}

func (c *CLI) printHeader() {
	out := termenv.NewOutput(c.Out)
	header := c.Engine.Header()
	for i, line := range header {
		if i == 1 {
			line = out.String(line).Bold().String()
		}
		c.printLine(line)
	}
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range TraceLines(result) {
		c.printLine(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
