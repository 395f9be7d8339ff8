// Package ui provides a full-screen Bubble Tea chat interface. It
// implements the chat renderer contract by forwarding presentation
// actions over a channel into the running program.
package ui

import (
	chat "github.com/koscakluka/ema-chat/core"
)

// EventKind identifies the type of UI event.
type EventKind int

const (
	// EventPhaseBegin opens a presentation phase.
	EventPhaseBegin EventKind = iota
	// EventAppend adds streamed text to the open phase.
	EventAppend
	// EventPhaseEnd closes the open phase.
	EventPhaseEnd
	// EventToolCall announces a tool invocation.
	EventToolCall
	// EventNote delivers an informational line.
	EventNote
	// EventUsage delivers a tool output token count.
	EventUsage
	// EventTurnEnded re-enables input after a turn settles.
	EventTurnEnded
)

// Event carries one UI update.
type Event struct {
	Kind   EventKind
	Phase  chat.Phase
	Text   string
	Tokens int
}
