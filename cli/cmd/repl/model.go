package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

// editDoneMsg is sent when the editor produced a program that compiled.
type editDoneMsg struct{ prog *lang.Program }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a
// compile error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process fails for any other reason.
type editErrorMsg struct{ err error }

const (
	evalPrompt = Prompt
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this message
  list     List global variables and functions
  edit     Compose a program in $EDITOR and run it
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type a statement to run it; globals persist between lines
  A bare expression is run as an expression statement (use print to see it)
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between source and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Enter on an empty line, Ctrl+C on an empty line, or Ctrl+D to exit
`
}

// inputMode selects whether a line is Lox source or a REPL command.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	out          *bytes.Buffer // captures print output of the current line
	source       string        // last program composed with edit
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

const defaultWidth = 80

func newModel(ctx context.Context, c config, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	out := new(bytes.Buffer)

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    newSession(out, c),
		out:        out,
		logger:     c.logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
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
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("statements", len(msg.prog.Statements)))

		return m, m.printResult(m.session.run(m.ctxFunc(), msg.prog))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
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

	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type a statement, or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case call.inCall && m.mode == modeEval:
		if sig, params := signatureOf(m.session.lookup(call.name)); sig != "" {
			b.WriteString(renderSignatureHint(call.name, params, call.argIndex))
		} else {
			b.WriteString(m.renderCandidateBar())
		}

	default:
		b.WriteString(m.renderCandidateBar())
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		m.tabActive = false
		m.refreshMatches(true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.historyStep(-1, false)

	case tea.KeyDown:
		return m.historyStep(1, false)

	case tea.KeyShiftUp:
		return m.historyStep(-1, true)

	case tea.KeyShiftDown:
		return m.historyStep(1, true)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		m.refreshMatches(true)

		return m, cmd
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping at either end. A single
// candidate is completed and confirmed at once.
func (m model) cycle(step int) (model, tea.Cmd) {
	n := len(m.matches)
	if n == 0 {
		return m, nil
	}

	if n == 1 {
		m.replaceCurrentWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceCurrentWord(m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the word under the cursor with replacement
// and moves the cursor to its end.
func (m *model) replaceCurrentWord(replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes the candidates for the word under the cursor.
// With autoConfirm, a word that already equals its only candidate is
// accepted and the bar is cleared.
func (m *model) refreshMatches(autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		if m.mode == modeEval {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil
	}

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command",
			slog.String("input", input))

		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input))

	return m, tea.Sequence(
		tea.Println(formatCommand(input)),
		m.printResult(m.session.eval(m.ctxFunc(), input)),
	)
}

// printResult prints the output captured while running a line followed by
// each error.
func (m model) printResult(errs []error) tea.Cmd {
	var lines []string

	if out := strings.TrimSuffix(m.out.String(), "\n"); m.out.Len() > 0 {
		lines = append(lines, resultStyle.Render(out))
	}

	m.out.Reset()

	for _, err := range errs {
		lines = append(lines, errorStyle.Render(err.Error()))
	}

	if len(lines) == 0 {
		return nil
	}

	return tea.Println(strings.Join(lines, "\n"))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	echo := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]))

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listGlobals()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"))
	}
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		ctxFunc: m.ctxFunc,
		source:  m.source,
		opts:    m.session.opts,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.prog == nil {
			return editCancelledMsg{}
		}

		return editDoneMsg{prog: cmd.prog}
	})
}

// listGlobals renders each global with a preview of its value.
func (m model) listGlobals() string {
	var b strings.Builder

	for _, name := range m.session.names() {
		v, _ := m.session.lookup(name)
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview(v)))
	}

	return b.String()
}

// historyStep moves through history by dir. Unless sameMode is set, the
// input mode follows the entry. Stepping past the newest entry clears the
// input.
func (m model) historyStep(dir int, sameMode bool) (model, tea.Cmd) {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m, _ = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches(false)

		return m, nil
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m, nil
}

func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to mode, saving the input of the mode left behind
// and restoring the input of the mode entered.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	m.refreshMatches(false)

	return m, nil
}
