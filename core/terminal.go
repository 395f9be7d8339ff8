package chat

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	reasoningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	codeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	executionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	toolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TerminalRenderer renders turn output to a terminal, one color per
// phase, streaming text as it arrives.
type TerminalRenderer struct {
	out     io.Writer
	current Phase
}

// NewTerminalRenderer creates a renderer writing to out.
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

func (r *TerminalRenderer) BeginPhase(phase Phase) {
	switch phase {
	case PhaseReasoning:
		fmt.Fprint(r.out, "\n", reasoningStyle.Render("[thinking] "))
	case PhaseWritingCode:
		fmt.Fprint(r.out, "\n", codeStyle.Render("[code] "))
	case PhaseExecutingCode:
		fmt.Fprintln(r.out, "\n"+executionStyle.Render(">>> Executing code..."))
	case PhaseCallingTool:
		fmt.Fprint(r.out, "\n", toolStyle.Render("[function call] "))
	case PhaseAnswering:
		fmt.Fprint(r.out, "\n\n")
	}
	r.current = phase
}

func (r *TerminalRenderer) Append(text string) {
	switch r.current {
	case PhaseReasoning:
		fmt.Fprint(r.out, reasoningStyle.Render(text))
	case PhaseWritingCode:
		fmt.Fprint(r.out, codeStyle.Render(text))
	case PhaseCallingTool:
		fmt.Fprint(r.out, toolStyle.Render(text))
	default:
		fmt.Fprint(r.out, text)
	}
}

func (r *TerminalRenderer) EndPhase() {
	if r.current == PhaseExecutingCode {
		fmt.Fprintln(r.out, executionStyle.Render(">>> Done"))
	} else {
		fmt.Fprintln(r.out)
	}
	r.current = PhaseNone
}

func (r *TerminalRenderer) AnnounceTool(name string) {
	fmt.Fprintln(r.out, "\n"+toolStyle.Render(fmt.Sprintf("[Tool Call: %s]", name)))
}

func (r *TerminalRenderer) Note(text string) {
	fmt.Fprintln(r.out, noteStyle.Render(fmt.Sprintf("[%s]", text)))
}

func (r *TerminalRenderer) NoteUsage(toolOutputTokens int) {
	fmt.Fprintln(r.out, noteStyle.Render(fmt.Sprintf("[tool_output_tokens: %d]", toolOutputTokens)))
}
