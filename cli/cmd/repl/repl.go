package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/log"
)

const (
	prompt       = "➜ "
	defaultWidth = 80
)

func helpMessage() string {
	return `
Each line is a template document. Its output is printed below it.
Persistent parameters set with @pparamSet survive across lines.

Commands:
  :help     Print this help
  :params   List request and persistent parameters
  :clear    Clear screen
  :quit     Exit REPL

Keys:
  Tab / Shift-Tab   Cycle through completions
  Up / Down         Navigate history
  Ctrl+C            Clear the line, or exit on an empty line
  Ctrl+D            Exit on an empty line
`
}

// Styles.
var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Options configures [Run].
type Options struct {
	Params     map[string]lang.Value // request parameters
	Persistent map[string]lang.Value // initial persistent parameters
	History    string                // history file; empty keeps history in memory
	Logger     log.Logger
}

// Run starts the REPL and blocks until the user exits. It returns the
// persistent parameters as they stand when the session ends.
func Run(ctx context.Context, opts Options) (map[string]lang.Value, error) {
	logger := opts.Logger

	logger.TraceContext(ctx, "repl start",
		slog.String("history", opts.History),
		slog.Int("params", len(opts.Params)),
	)

	history := NewHistory(opts.History)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	session := NewSession(opts.Params, opts.Persistent, logger)

	p := tea.NewProgram(newModel(ctx, session, history, logger), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return session.PersistentParameters(), err
	}

	return session.PersistentParameters(), nil
}

// model is the Bubble Tea model for the REPL. The session and history are
// shared by every copy of the model.
type model struct {
	ctx          context.Context
	input        textinput.Model
	session      *Session
	history      *History
	logger       log.Logger
	matches      fuzzy.Matches
	historyIdx   int
	wordStart    int
	wordEnd      int
	suggIdx      int
	preTabText   string
	preTabCursor int
	width        int
	tabActive    bool
	quitting     bool
}

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctx:        ctx,
		input:      ti,
		session:    session,
		history:    history,
		logger:     logger,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len())))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a template line, or :help"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx, "repl keypress", slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches()

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.recall(m.historyIdx - 1), nil

	case tea.KeyDown:
		return m.recall(m.historyIdx + 1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	var cmd tea.Cmd

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.tabActive = m.tabActive && msg.Type != tea.KeySpace
	} else {
		m.tabActive = false
	}

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the tab selection by step, completing the word at the cursor.
// A single candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case !m.tabActive:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}

	default:
		m.suggIdx = ((m.suggIdx+step)%n + n) % n
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the current word with s and moves the cursor after
// it.
func (m *model) replaceWord(s string) {
	in := m.input.Value()
	m.input.SetValue(in[:m.wordStart] + s + in[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

// refreshMatches recomputes completions unless a tab cycle is in progress.
func (m *model) refreshMatches() {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = computeMatches(
		m.input.Value(), m.input.Position(), m.session.Names())
	m.suggIdx = -1
}

// recall shows history entry i. Moving past the newest entry clears the
// line.
func (m model) recall(i int) model {
	n := m.history.Len()
	if i < 0 || n == 0 {
		return m
	}

	m.tabActive = false

	if i >= n {
		m.historyIdx = n
		m.input.SetValue("")
		m.refreshMatches()

		return m
	}

	line, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	m.historyIdx = i
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.refreshMatches()

	return m
}

func (m model) submit() (model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	if err := m.history.Add(line); err != nil {
		m.logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	m.refreshMatches()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(line))

	if cmd, ok := strings.CutPrefix(strings.TrimSpace(line), ":"); ok {
		return m.command(strings.TrimSpace(cmd), echo)
	}

	out, err := m.session.Eval(m.ctx, line)

	m.logger.DebugContext(m.ctx, "repl eval",
		slog.String("input", line),
		slog.Int("output", len(out)),
		slog.Bool("ok", err == nil),
	)

	cmds := []tea.Cmd{echo}

	if out != "" {
		cmds = append(cmds, tea.Println(resultStyle.Render(out)))
	}

	if err != nil {
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(cmds...)
}

func (m model) command(name string, echo tea.Cmd) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx, "repl command", slog.String("command", name))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "p", "params":
		return m, tea.Sequence(echo, tea.Println(m.paramsView()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(
			fmt.Sprintf("%v: %q (try :help)", ErrUnknownCommand, name))))
	}
}

// paramsView lists request parameters, then persistent parameters, each in
// name order.
func (m model) paramsView() string {
	var b strings.Builder

	section := func(title string, values map[string]lang.Value) {
		b.WriteString(hintStyle.Render(title))
		b.WriteString("\n")

		names := slices.Sorted(maps.Keys(values))

		if len(names) == 0 {
			b.WriteString(hintStyle.Render("  (none)"))
			b.WriteString("\n")
		}

		for _, k := range names {
			fmt.Fprintf(&b, "  %s = %s\n", k, values[k].String())
		}
	}

	section("request", m.session.Parameters())
	section("persistent", m.session.PersistentParameters())

	return strings.TrimRight(b.String(), "\n")
}
