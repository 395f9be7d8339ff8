package chat

import (
	"fmt"
	"strings"
)

// CommandAction is what the REPL should do with one line of user input.
type CommandAction int

const (
	// ActionNone means there is nothing to do (blank input).
	ActionNone CommandAction = iota
	// ActionPrompt sends the command's prompt as a turn.
	ActionPrompt
	// ActionQuit exits the chat.
	ActionQuit
	// ActionClear resets the conversation session.
	ActionClear
	// ActionToggleTools flips tool exposure.
	ActionToggleTools
	// ActionHistory prints the session transcript.
	ActionHistory
	// ActionHelp prints the command list.
	ActionHelp
)

// Command is one parsed line of user input.
type Command struct {
	Action CommandAction
	Prompt string
}

// ParseInput turns a raw input line into a command. Slash commands are
// matched case-insensitively; anything else becomes a prompt.
func ParseInput(input string) Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{Action: ActionNone}
	}

	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q":
		return Command{Action: ActionQuit}
	case "/clear":
		return Command{Action: ActionClear}
	case "/tools":
		return Command{Action: ActionToggleTools}
	case "/history":
		return Command{Action: ActionHistory}
	case "/help":
		return Command{Action: ActionHelp}
	}

	if code, found := strings.CutPrefix(input, "/code "); found {
		return Command{
			Action: ActionPrompt,
			Prompt: fmt.Sprintf("Execute this Python code and show me the exact output:\n```python\n%s\n```", code),
		}
	}

	return Command{Action: ActionPrompt, Prompt: input}
}
