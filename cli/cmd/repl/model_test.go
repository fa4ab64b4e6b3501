package repl

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/lox/lang"
)

func testModel(t *testing.T, opts ...Option) model {
	t.Helper()

	return newModel(context.Background(), makeConfig(opts...), NewHistory(""))
}

func typeLine(m model, line string) model {
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.refreshMatches(false)

	return m
}

func TestModel_ExecuteInput(t *testing.T) {
	m := testModel(t)

	m = typeLine(m, "var a = 40 + 2;")
	m, cmd := m.executeInput()

	if cmd == nil {
		t.Fatal("executeInput() returned no command")
	}

	if v, ok := m.session.lookup("a"); !ok || v != lang.Number(42) {
		t.Errorf("a = %v, %v", v, ok)
	}

	if m.input.Value() != "" || m.history.Len() != 1 || m.historyIdx != 1 {
		t.Errorf("input %q, history %d/%d after submit",
			m.input.Value(), m.historyIdx, m.history.Len())
	}

	if m.out.Len() != 0 {
		t.Errorf("captured output not flushed: %q", m.out.String())
	}
}

func TestModel_EmptyLineQuits(t *testing.T) {
	m := testModel(t)

	m, cmd := m.executeInput()
	if !m.quitting || cmd == nil {
		t.Errorf("quitting = %v after empty line", m.quitting)
	}

	m = testModel(t)
	m, _ = m.toggleMode()

	if m, _ = m.executeInput(); m.quitting {
		t.Error("empty command line quit the session")
	}
}

func TestModel_PrintResult(t *testing.T) {
	m := testModel(t)

	if cmd := m.printResult(nil); cmd != nil {
		t.Error("printResult() with nothing to show returned a command")
	}

	m.out.WriteString("3\n")

	if cmd := m.printResult(nil); cmd == nil {
		t.Error("printResult() dropped captured output")
	}

	if m.out.Len() != 0 {
		t.Error("captured output not reset")
	}
}

func TestModel_Completion(t *testing.T) {
	m := testModel(t, WithGlobals(map[string]lang.Value{
		"alpha":  lang.Number(1),
		"alpine": lang.Number(2),
	}))

	m = typeLine(m, "print alp")

	if len(m.matches) < 2 {
		t.Fatalf("matches = %v", m.matches)
	}

	first := m.matches[0].Str

	m, _ = m.cycle(1)
	if !m.tabActive || m.input.Value() != "print "+first {
		t.Fatalf("after Tab input = %q, tabActive %v", m.input.Value(), m.tabActive)
	}

	last := m.matches[len(m.matches)-1].Str

	m, _ = m.cycle(-1)
	if m.suggIdx != len(m.matches)-1 || m.input.Value() != "print "+last {
		t.Errorf("after Shift-Tab input = %q, selection %d", m.input.Value(), m.suggIdx)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.tabActive || m.input.Value() != "print alp" {
		t.Errorf("Esc did not restore input: %q", m.input.Value())
	}

	if m.mode != modeEval {
		t.Error("Esc during completion switched mode")
	}
}

func TestModel_CompletionSingle(t *testing.T) {
	m := testModel(t, WithGlobals(map[string]lang.Value{
		"zebra": lang.Number(1),
	}))

	m = typeLine(m, "zeb")

	if len(m.matches) != 1 {
		t.Fatalf("matches = %v", m.matches)
	}

	m, _ = m.cycle(1)
	if m.input.Value() != "zebra" || m.matches != nil || m.tabActive {
		t.Errorf("input = %q, matches %v", m.input.Value(), m.matches)
	}
}

func TestModel_CommandMode(t *testing.T) {
	m := testModel(t)

	m = typeLine(m, "var x")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("mode = %v, input %q", m.mode, m.input.Value())
	}

	m = typeLine(m, "hel")
	if len(m.matches) == 0 || m.matches[0].Str != "help" {
		t.Errorf("command matches = %v", m.matches)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeEval || m.input.Value() != "var x" {
		t.Errorf("mode = %v, input %q after return", m.mode, m.input.Value())
	}
}

func TestModel_Commands(t *testing.T) {
	tests := []struct {
		input    string
		quitting bool
	}{
		{"help", false},
		{"list", false},
		{"clear", false},
		{"bogus", false},
		{"quit", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := testModel(t)

			m, cmd := m.executeCommand(tt.input)
			if cmd == nil {
				t.Error("executeCommand() returned no command")
			}

			if m.quitting != tt.quitting {
				t.Errorf("quitting = %v, want %v", m.quitting, tt.quitting)
			}
		})
	}
}

func TestModel_ListGlobals(t *testing.T) {
	m := testModel(t, WithGlobals(map[string]lang.Value{
		"answer": lang.Number(42),
	}))

	if got := m.listGlobals(); got == "" {
		t.Error("listGlobals() is empty")
	}
}

func TestModel_HistoryStep(t *testing.T) {
	m := testModel(t)

	for _, e := range []HistoryEntry{
		{Line: "print 1;", Mode: modeEval},
		{Line: "help", Mode: modeCtrl},
		{Line: "print 2;", Mode: modeEval},
	} {
		if err := m.history.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	m, _ = m.historyStep(-1, false)
	if m.input.Value() != "print 2;" || m.mode != modeEval {
		t.Fatalf("Up: %q mode %v", m.input.Value(), m.mode)
	}

	m, _ = m.historyStep(-1, false)
	if m.input.Value() != "help" || m.mode != modeCtrl {
		t.Fatalf("Up: %q mode %v", m.input.Value(), m.mode)
	}

	m, _ = m.switchToMode(modeEval)
	m, _ = m.historyStep(-1, true)

	if m.input.Value() != "print 1;" || m.historyIdx != 0 {
		t.Fatalf("Shift-Up: %q at %d", m.input.Value(), m.historyIdx)
	}

	m, _ = m.historyStep(1, true)
	m, _ = m.historyStep(1, true)

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("Shift-Down past end: %q at %d", m.input.Value(), m.historyIdx)
	}
}

func TestModel_View(t *testing.T) {
	m := testModel(t)

	if m.View() == "" {
		t.Error("View() is empty")
	}

	m.quitting = true

	if m.View() != "" {
		t.Error("View() after quit is not empty")
	}
}
