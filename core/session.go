package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/koscakluka/ema-chat/internal/utils"
)

// Session holds the conversation continuation state across turns. It has
// a single owner, the REPL loop, and exactly three mutation paths:
// SetResponseID after a completed turn, RecordTurn for the transcript,
// and Clear on explicit user request. A turn that produces no fresh id
// never clears a previously captured one.
type Session struct {
	mu         sync.Mutex
	responseID *string
	transcript []TranscriptEntry
}

// TranscriptEntry is one completed turn as remembered by the session.
type TranscriptEntry struct {
	ID         string
	Prompt     string
	Answer     string
	ResponseID string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// ResponseID returns the current continuation identifier, nil when the
// conversation has no server-side state to continue from.
func (s *Session) ResponseID() *string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.responseID == nil {
		return nil
	}
	return utils.Ptr(*s.responseID)
}

// SetResponseID captures a fresh continuation identifier. Empty ids are
// ignored so a failed turn cannot destroy a valid session.
func (s *Session) SetResponseID(id string) {
	if id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.responseID = &id
}

// Clear drops the continuation identifier and the transcript.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responseID = nil
	s.transcript = nil
}

// RecordTurn appends a completed turn to the transcript.
func (s *Session) RecordTurn(prompt, answer, responseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, TranscriptEntry{
		ID:         uuid.NewString(),
		Prompt:     prompt,
		Answer:     answer,
		ResponseID: responseID,
	})
}

// Transcript returns a copy of the recorded turns.
func (s *Session) Transcript() []TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	transcript := make([]TranscriptEntry, len(s.transcript))
	copy(transcript, s.transcript)
	return transcript
}
