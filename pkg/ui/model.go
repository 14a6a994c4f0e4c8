// Package ui is the interactive playground for the guarded containers: a
// command prompt wired to a live Session, with a scrolling transcript of
// results and rejections.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"safecoll/pkg/logging"
)

// Model represents the playground state
type Model struct {
	session    *Session
	prompt     textinput.Model
	transcript viewport.Model
	help       help.Model

	width    int
	height   int
	showHelp bool
	lines    []string
	history  []string
	histPos  int

	keys keyMap
}

// NewModel creates the playground around an existing session.
func NewModel(session *Session) Model {
	ti := textinput.New()
	ti.Placeholder = "try: dict insert answer 42   (or 'help')"
	ti.CharLimit = 256
	ti.Focus()
	ti.PromptStyle = lipgloss.NewStyle().Foreground(primaryColor)
	ti.TextStyle = lipgloss.NewStyle().Foreground(textPrimary)

	vp := viewport.New(80, 16)
	vp.Style = transcriptStyle

	return Model{
		session:    session,
		prompt:     ti,
		transcript: vp,
		help:       help.New(),
		keys:       keys,
		lines:      []string{helpTextStyle.Render("guarded container playground - 'help' lists commands")},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Execute):
			input := strings.TrimSpace(m.prompt.Value())
			if input != "" {
				m.runCommand(input)
				m.prompt.Reset()
			}

		case key.Matches(msg, m.keys.Clear):
			m.lines = nil
			m.refreshTranscript()

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp

		case msg.String() == "up":
			if len(m.history) > 0 && m.histPos > 0 {
				m.histPos--
				m.prompt.SetValue(m.history[m.histPos])
				m.prompt.CursorEnd()
			}

		case msg.String() == "down":
			if m.histPos < len(m.history)-1 {
				m.histPos++
				m.prompt.SetValue(m.history[m.histPos])
				m.prompt.CursorEnd()
			} else {
				m.histPos = len(m.history)
				m.prompt.Reset()
			}
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	cmds = append(cmds, cmd)

	m.transcript, cmd = m.transcript.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// runCommand evaluates input against the session and appends the outcome to
// the transcript.
func (m *Model) runCommand(input string) {
	m.history = append(m.history, input)
	m.histPos = len(m.history)

	m.lines = append(m.lines, inputEchoStyle.Render("> "+input))

	out, err := m.session.Eval(input)
	if err != nil {
		logging.GetLogger().Warn("command rejected", "input", input, "error", err)
		m.lines = append(m.lines, errorTextStyle.Render(err.Error()))
	} else if out != "" {
		logging.GetLogger().Debug("command ok", "input", input)
		m.lines = append(m.lines, outputStyle.Render(out))
	}

	m.refreshTranscript()
	m.transcript.GotoBottom()
}

func (m *Model) refreshTranscript() {
	m.transcript.SetContent(strings.Join(m.lines, "\n"))
}

func (m *Model) updateLayout() {
	m.prompt.Width = m.width - 8
	m.transcript.Width = m.width - 4
	m.transcript.Height = max(m.height-9, 4)
	m.help.Width = m.width
	m.refreshTranscript()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("safecoll playground"))
	b.WriteString("\n")
	b.WriteString(m.transcript.View())
	b.WriteString("\n")
	b.WriteString(promptStyle.Render(m.prompt.View()))
	b.WriteString("\n")

	status := fmt.Sprintf("dict=%d entries | list locked=%t | rlock holds=%d",
		m.session.dict.Len(), m.session.list.IsLocked(), m.session.rlist.HoldCount())
	b.WriteString(statusBarStyle.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return b.String()
}
