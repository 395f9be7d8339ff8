package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// REPL is the interactive loop around a chat. It owns the session for
// its lifetime; no other goroutine mutates it.
type REPL struct {
	chat *Chat
	in   io.Reader
	out  io.Writer
}

// NewREPL creates a loop reading from in and writing loop-level output
// to out. Turn output goes through the chat's renderer.
func NewREPL(c *Chat, in io.Reader, out io.Writer) *REPL {
	return &REPL{chat: c, in: in, out: out}
}

// Run reads input lines until EOF, /quit, or context cancellation. An
// interrupt during an in-flight turn cancels that turn only: partial
// output stays visible and the session id is left as it was.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)

	for {
		fmt.Fprint(r.out, promptStyle.Render("You:"), " ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		command := ParseInput(scanner.Text())
		switch command.Action {
		case ActionNone:
			continue

		case ActionQuit:
			fmt.Fprintln(r.out, "Goodbye!")
			return nil

		case ActionClear:
			r.chat.Session().Clear()
			fmt.Fprintln(r.out, "Conversation cleared.")

		case ActionToggleTools:
			if r.chat.ToggleTools() {
				fmt.Fprintln(r.out, "Tools enabled.")
			} else {
				fmt.Fprintln(r.out, "Tools disabled.")
			}

		case ActionHistory:
			r.printHistory()

		case ActionHelp:
			fmt.Fprint(r.out, HelpText())

		case ActionPrompt:
			fmt.Fprint(r.out, assistantStyle.Render("Assistant:"))
			r.sendTurn(ctx, command.Prompt)
		}
	}
}

func (r *REPL) sendTurn(ctx context.Context, prompt string) {
	// Interrupts cancel the in-flight turn, not the loop.
	turnCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := r.chat.SendTurn(turnCtx, prompt); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(r.out, "\nTurn cancelled.")
			return
		}
		fmt.Fprintln(r.out, "\n"+errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printHistory() {
	transcript := r.chat.Session().Transcript()
	if len(transcript) == 0 {
		fmt.Fprintln(r.out, "No turns yet.")
		return
	}
	for _, entry := range transcript {
		// Tool follow-up turns carry no prompt of their own.
		if entry.Prompt != "" {
			fmt.Fprintf(r.out, "%s %s\n", promptStyle.Render("You:"), entry.Prompt)
		}
		answer := entry.Answer
		if answer == "" {
			answer = "(no answer text)"
		}
		fmt.Fprintf(r.out, "%s %s\n", assistantStyle.Render("Assistant:"), answer)
	}
}

// HelpText lists the slash commands.
func HelpText() string {
	var help strings.Builder
	help.WriteString("Commands:\n")
	help.WriteString("  /quit or /exit  - Exit the chat\n")
	help.WriteString("  /clear          - Clear conversation history\n")
	help.WriteString("  /tools          - Toggle tools on/off\n")
	help.WriteString("  /code <python>  - Execute Python directly\n")
	help.WriteString("  /history        - Show this session's turns\n")
	help.WriteString("  /help           - Show this help\n")
	return help.String()
}
