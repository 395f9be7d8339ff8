package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	chat "github.com/koscakluka/ema-chat/core"
)

// Controller runs the chat interface and implements chat.Renderer, so a
// chat configured with it streams its turn output into the program.
type Controller struct {
	events    chan Event
	prompts   chan string
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches the interface writing to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	prompts := make(chan string, 1)
	model := NewModel(events, prompts, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		prompts: prompts,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the interface to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the interface has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// Loop drives the chat from submitted prompts until the interface
// exits. It must run on its own goroutine; the chat renders back into
// the interface through this controller.
func (c *Controller) Loop(ctx context.Context, chatSession *chat.Chat) {
	defer c.Close()
	for {
		select {
		case <-c.done:
			return
		case input := <-c.prompts:
			if quit := c.handle(ctx, chatSession, input); quit {
				return
			}
		}
	}
}

func (c *Controller) handle(ctx context.Context, chatSession *chat.Chat, input string) bool {
	command := chat.ParseInput(input)
	switch command.Action {
	case chat.ActionQuit:
		return true

	case chat.ActionClear:
		chatSession.Session().Clear()
		c.Note("conversation cleared")

	case chat.ActionToggleTools:
		if chatSession.ToggleTools() {
			c.Note("tools enabled")
		} else {
			c.Note("tools disabled")
		}

	case chat.ActionHistory:
		transcript := chatSession.Session().Transcript()
		if len(transcript) == 0 {
			c.Note("no turns yet")
		}
		for _, entry := range transcript {
			answer := entry.Answer
			if answer == "" {
				answer = "(no answer text)"
			}
			if entry.Prompt != "" {
				c.Note("You: " + entry.Prompt)
			}
			c.Note("Assistant: " + answer)
		}

	case chat.ActionHelp:
		c.Note(strings.TrimRight(chat.HelpText(), "\n"))

	case chat.ActionPrompt:
		if err := chatSession.SendTurn(ctx, command.Prompt); err != nil {
			if errors.Is(err, context.Canceled) {
				c.Note("turn cancelled")
			} else {
				c.Note(fmt.Sprintf("error: %v", err))
			}
		}
	}

	c.send(Event{Kind: EventTurnEnded})
	return false
}

// BeginPhase forwards a phase opening to the interface.
func (c *Controller) BeginPhase(phase chat.Phase) {
	c.send(Event{Kind: EventPhaseBegin, Phase: phase})
}

// Append forwards streamed phase text to the interface.
func (c *Controller) Append(text string) {
	c.send(Event{Kind: EventAppend, Text: text})
}

// EndPhase forwards a phase closing to the interface.
func (c *Controller) EndPhase() {
	c.send(Event{Kind: EventPhaseEnd})
}

// AnnounceTool forwards a tool invocation to the interface.
func (c *Controller) AnnounceTool(name string) {
	c.send(Event{Kind: EventToolCall, Text: name})
}

// Note forwards an informational line to the interface.
func (c *Controller) Note(text string) {
	c.send(Event{Kind: EventNote, Text: text})
}

// NoteUsage forwards a tool output token count to the interface.
func (c *Controller) NoteUsage(toolOutputTokens int) {
	c.send(Event{Kind: EventUsage, Tokens: toolOutputTokens})
}

// send delivers an event unless the interface has already exited. Turn
// output must not be dropped, so this blocks until the program consumes
// the backlog.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}
