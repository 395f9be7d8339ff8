package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	chat "github.com/koscakluka/ema-chat/core"
)

// Options configures the chat interface.
type Options struct {
	NoColor bool
}

// Model renders the chat using Bubble Tea: a scrolling transcript above
// a single-line prompt.
type Model struct {
	viewport viewport.Model
	input    textinput.Model
	events   <-chan Event
	prompts  chan<- string

	transcript strings.Builder
	phase      chat.Phase
	busy       bool
	ready      bool
	width      int

	styles styles
}

// NewModel constructs a chat model over an event stream. Submitted
// prompts are written to prompts.
func NewModel(events <-chan Event, prompts chan<- string, opts Options) Model {
	input := textinput.New()
	input.Prompt = "You: "
	input.Placeholder = "message, or /help"
	input.Focus()

	return Model{
		viewport: viewport.New(0, 0),
		input:    input,
		events:   events,
		prompts:  prompts,
		styles:   newStyles(opts.NoColor),
	}
}

// Init starts cursor blinking and waits for the first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

// Update consumes key presses, window sizing, and turn events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.viewport.Width = typed.Width
		m.viewport.Height = max(typed.Height-2, 1)
		m.input.Width = max(typed.Width-len(m.input.Prompt)-1, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case EventMsg:
		m = applyEvent(m, typed.Event)
		m.refresh()
		return m, waitForEvent(m.events)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the transcript above the prompt line.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}
	prompt := m.input.View()
	if m.busy {
		prompt = m.styles.note.Render("(waiting for the assistant, ctrl+c to quit)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), prompt)
}

// submit hands the typed line to the chat loop. Turns are sequential:
// input stays disabled until the loop reports the turn ended.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if m.busy || line == "" {
		return m, nil
	}

	m.transcript.WriteString("\n" + m.styles.user.Render("You: "+line) + "\n")
	m.input.Reset()
	m.busy = true
	m.refresh()

	prompts := m.prompts
	return m, func() tea.Msg {
		prompts <- line
		return nil
	}
}

// refresh re-wraps the transcript into the viewport, pinned to the
// bottom.
func (m *Model) refresh() {
	if m.width <= 0 {
		return
	}
	m.viewport.SetContent(wordwrap.String(m.transcript.String(), m.width))
	m.viewport.GotoBottom()
}

// EventMsg wraps a turn event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// waitForEvent blocks until a turn event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

// applyEvent folds one turn event into the transcript.
func applyEvent(model Model, event Event) Model {
	switch event.Kind {
	case EventPhaseBegin:
		model.phase = event.Phase
		if label := model.styles.phaseLabel(event.Phase); label != "" {
			model.transcript.WriteString("\n" + label)
		}
	case EventAppend:
		model.transcript.WriteString(model.styles.phaseText(model.phase, event.Text))
	case EventPhaseEnd:
		if model.phase == chat.PhaseExecutingCode {
			model.transcript.WriteString("\n" + model.styles.execution.Render(">>> Done"))
		}
		model.phase = chat.PhaseNone
		model.transcript.WriteString("\n")
	case EventToolCall:
		model.transcript.WriteString("\n" + model.styles.tool.Render(fmt.Sprintf("[Tool Call: %s]", event.Text)) + "\n")
	case EventNote:
		model.transcript.WriteString("\n" + model.styles.note.Render(fmt.Sprintf("[%s]", event.Text)) + "\n")
	case EventUsage:
		model.transcript.WriteString("\n" + model.styles.note.Render(fmt.Sprintf("[tool_output_tokens: %d]", event.Tokens)) + "\n")
	case EventTurnEnded:
		model.busy = false
	}
	return model
}

// styles is the interface's color palette, matching the terminal
// renderer's phase colors.
type styles struct {
	user      lipgloss.Style
	reasoning lipgloss.Style
	code      lipgloss.Style
	execution lipgloss.Style
	tool      lipgloss.Style
	note      lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{user: plain, reasoning: plain, code: plain, execution: plain, tool: plain, note: plain}
	}
	return styles{
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		reasoning: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		code:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		execution: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		tool:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		note:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s styles) phaseLabel(phase chat.Phase) string {
	switch phase {
	case chat.PhaseReasoning:
		return s.reasoning.Render("[thinking] ")
	case chat.PhaseWritingCode:
		return s.code.Render("[code] ")
	case chat.PhaseExecutingCode:
		return s.execution.Render(">>> Executing code...")
	case chat.PhaseCallingTool:
		return s.tool.Render("[function call] ")
	case chat.PhaseAnswering:
		return "\n"
	}
	return ""
}

func (s styles) phaseText(phase chat.Phase, text string) string {
	switch phase {
	case chat.PhaseReasoning:
		return s.reasoning.Render(text)
	case chat.PhaseWritingCode:
		return s.code.Render(text)
	case chat.PhaseCallingTool:
		return s.tool.Render(text)
	}
	return text
}
