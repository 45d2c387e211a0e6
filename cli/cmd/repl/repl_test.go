package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/smartscript/lang"
	"github.com/ardnew/smartscript/log"
)

func testModel(t *testing.T) model {
	t.Helper()

	session := NewSession(map[string]lang.Value{"user": lang.Text("gopher")}, nil, log.Logger{})

	return newModel(t.Context(), session, NewHistory(""), log.Logger{})
}

func typeText(m model, s string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return next.(model)
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})

	return next.(model), cmd
}

func TestModelSubmit(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), `{$= 5 "n" @pparamSet $}`)

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("Enter returned no command")
	}

	if got := m.input.Value(); got != "" {
		t.Errorf("input = %q, want cleared", got)
	}

	if m.history.Len() != 1 {
		t.Errorf("history.Len() = %d, want 1", m.history.Len())
	}

	if got := m.session.PersistentParameters()["n"]; got != lang.Integer(5) {
		t.Errorf("persistent n = %v, want 5", got)
	}
}

func TestModelSubmitBlank(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), "   ")

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("Enter on a blank line returned a command")
	}

	if m.history.Len() != 0 {
		t.Errorf("history.Len() = %d, want 0", m.history.Len())
	}
}

func TestModelQuit(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), ":quit")

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil || !m.quitting {
		t.Fatal(":quit did not quit")
	}

	if got := m.View(); got != "" {
		t.Errorf("View() after quit = %q, want empty", got)
	}
}

func TestModelCtrlC(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), "abc")

	m, _ = press(m, tea.KeyCtrlC)
	if m.quitting || m.input.Value() != "" {
		t.Fatalf("Ctrl+C on a line: quitting = %v, input = %q", m.quitting, m.input.Value())
	}

	m, _ = press(m, tea.KeyCtrlC)
	if !m.quitting {
		t.Error("Ctrl+C on an empty line did not quit")
	}
}

func TestModelTabCompletion(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), `{$= "x" @decf`)

	m, _ = press(m, tea.KeyTab)
	if got, want := m.input.Value(), `{$= "x" @decfmt`; got != want {
		t.Errorf("input = %q, want %q", got, want)
	}

	m = typeText(testModel(t), ":")
	if len(m.matches) != len(ctrlCommands) {
		t.Fatalf("matches = %d, want %d", len(m.matches), len(ctrlCommands))
	}

	m, _ = press(m, tea.KeyTab)
	first := m.input.Value()

	m, _ = press(m, tea.KeyTab)
	if m.input.Value() == first {
		t.Errorf("second Tab did not advance from %q", first)
	}

	m, _ = press(m, tea.KeyShiftTab)
	if m.input.Value() != first {
		t.Errorf("Shift+Tab = %q, want %q", m.input.Value(), first)
	}

	m, _ = press(m, tea.KeyEsc)
	if got := m.input.Value(); got != ":" {
		t.Errorf("Esc = %q, want original input restored", got)
	}
}

func TestModelHistory(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	for _, line := range []string{"one", "two"} {
		m = typeText(m, line)
		m, _ = press(m, tea.KeyEnter)
	}

	m, _ = press(m, tea.KeyUp)
	if got := m.input.Value(); got != "two" {
		t.Errorf("Up = %q, want two", got)
	}

	m, _ = press(m, tea.KeyUp)
	if got := m.input.Value(); got != "one" {
		t.Errorf("Up Up = %q, want one", got)
	}

	m, _ = press(m, tea.KeyUp)
	if got := m.input.Value(); got != "one" {
		t.Errorf("Up past oldest = %q, want one", got)
	}

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)

	if got := m.input.Value(); got != "" {
		t.Errorf("Down past newest = %q, want empty", got)
	}
}

func TestModelParamsView(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	if _, err := m.session.Eval(t.Context(), `{$= 1 "count" @pparamSet $}`); err != nil {
		t.Fatal(err)
	}

	view := m.paramsView()

	for _, want := range []string{"user = gopher", "count = 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("paramsView() = %q, want it to contain %q", view, want)
		}
	}
}
