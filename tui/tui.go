// Package tui provides a Bubble Tea terminal UI over the same engine the
// console front end drives.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/stageplay/cli"
	"github.com/nathoo/stageplay/engine"
)

// rawLine stores an unstyled output line with its classification,
// so it can be re-wrapped and re-styled when the terminal is resized.
type rawLine struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the stageplay TUI.
type Model struct {
	ctx    context.Context
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// transcriptMsg carries a block of output into the Update loop.
type transcriptMsg struct {
	input string // echoed player input, empty for the opening block
	lines []rawLine
}

// New creates a TUI model wired to the given engine.
func New(ctx context.Context, eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		ctx:     ctx,
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctx context.Context, eng *engine.Engine) error {
	p := tea.NewProgram(New(ctx, eng), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init returns the command that produces the header and first summary.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.opening())
}

func (m Model) opening() tea.Cmd {
	return func() tea.Msg {
		var lines []rawLine
		for _, h := range m.engine.Header() {
			lines = append(lines, rawLine{text: h, kind: kindHeader})
		}
		return transcriptMsg{lines: append(lines, m.summary()...)}
	}
}

func (m Model) summary() []rawLine {
	var lines []rawLine
	for i, s := range m.engine.Summary() {
		kind := kindPath
		if i == 0 {
			kind = kindStage
		}
		lines = append(lines, rawLine{text: s, kind: kind})
	}
	return lines
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(m.height-2, 1) // status bar + input line
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "up":
			if prev, ok := m.history.Older(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			next, _ := m.history.Newer()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case transcriptMsg:
		m = m.appendOutput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit processes the line in the input box.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}
	m.history.Record(input)

	if strings.HasPrefix(input, "/") {
		lines, quit := m.handleMeta(input)
		m = m.appendOutput(transcriptMsg{input: input, lines: lines})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	echo := input
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(transcriptMsg{input: echo, lines: system("Nothing to repeat.")})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	before := m.engine.World
	stage := before.CurrentStage
	result := m.engine.Step(m.ctx, input)

	var lines []rawLine
	for _, out := range result.Output {
		lines = append(lines, rawLine{text: out, kind: classifyLine(out)})
	}
	if m.trace {
		for _, t := range cli.TraceLines(result) {
			lines = append(lines, rawLine{text: t, kind: kindTrace})
		}
	}
	if m.engine.World != before || m.engine.World.CurrentStage != stage {
		lines = append(lines, m.summary()...)
	}
	m = m.appendOutput(transcriptMsg{input: echo, lines: lines})

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// appendOutput adds a block to the transcript and refreshes the viewport.
func (m Model) appendOutput(msg transcriptMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, kind: kindInput})
	}
	m.rawLines = append(m.rawLines, msg.lines...)
	m.rawLines = append(m.rawLines, rawLine{}) // blank separator between turns
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current
// width and scrolls to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, render(wordWrap(rl.text, width), rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text at word boundaries to fit within width.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			lineLen = len(word)
		case lineLen+1+len(word) > width:
			b.WriteString("\n")
			lineLen = len(word)
		default:
			b.WriteString(" ")
			lineLen += 1 + len(word)
		}
		b.WriteString(word)
	}
	return b.String()
}

// View renders the full layout: transcript, status bar, input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]rawLine, bool) {
	switch cmd := strings.Fields(input)[0]; cmd {
	case "/quit", "/exit":
		return system("Goodbye."), true

	case "/help":
		lines := append(cli.HelpLines(), "", "PgUp/PgDn scroll, Up/Down recall commands, Esc quits")
		out := make([]rawLine, len(lines))
		for i, l := range lines {
			out[i] = rawLine{text: l, kind: kindHelp}
		}
		return out, false

	case "/state":
		return system(m.engine.StateLines()...), false

	case "/saves":
		return m.saves(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return system("Trace output enabled."), false
		}
		return system("Trace output disabled."), false

	default:
		return system(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)), false
	}
}

func (m *Model) saves() []rawLine {
	if m.engine.Store == nil {
		return system("Saving is not available.")
	}
	slots, err := m.engine.Store.List(m.ctx)
	if err != nil {
		return system(fmt.Sprintf("Could not list saves: %v", err))
	}
	if len(slots) == 0 {
		return system("No saved games.")
	}
	return system("Saved games: " + strings.Join(slots, ", "))
}

func system(texts ...string) []rawLine {
	lines := make([]rawLine, len(texts))
	for i, t := range texts {
		lines[i] = rawLine{text: "[" + t + "]", kind: kindSystem}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled; those
// keys recall input history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
