package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/koscakluka/ema-chat/core/events"
)

func eventSequence(sequence ...events.Event) func(func(events.Event, error) bool) {
	return func(yield func(events.Event, error) bool) {
		for _, event := range sequence {
			if !yield(event, nil) {
				return
			}
		}
	}
}

func TestInterpretStreamWithoutIdentifierReturnsEmptyID(t *testing.T) {
	renderer := &recordingRenderer{}
	result, err := InterpretStream(context.Background(), eventSequence(
		events.NewAnswerDelta(0, "hello"),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResponseID != "" {
		t.Fatalf("expected empty response id, got %q", result.ResponseID)
	}
	if result.Answer != "hello" {
		t.Fatalf("expected partial answer to be preserved, got %q", result.Answer)
	}
}

func TestInterpretStreamCapturesFirstIdentifier(t *testing.T) {
	renderer := &recordingRenderer{}
	result, err := InterpretStream(context.Background(), eventSequence(
		events.NewResponseCreated(0, "resp_1"),
		events.NewResponseCreated(1, "resp_2"),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResponseID != "resp_1" {
		t.Fatalf("expected first identifier to win, got %q", result.ResponseID)
	}
}

func TestInterpretStreamOpensPhaseOncePerDeltaRun(t *testing.T) {
	renderer := &recordingRenderer{}
	_, err := InterpretStream(context.Background(), eventSequence(
		events.NewReasoningDelta(0, "a"),
		events.NewReasoningDelta(1, "b"),
		events.NewReasoningDelta(2, "c"),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := renderer.count("begin"); got != 1 {
		t.Fatalf("expected exactly 1 begin for 3 same-kind deltas, got %d", got)
	}
	if got := renderer.count("append"); got != 3 {
		t.Fatalf("expected 3 appends, got %d", got)
	}
	if got := renderer.phasesEntered()[0]; got != PhaseReasoning {
		t.Fatalf("expected reasoning phase, got %q", got)
	}
}

func TestInterpretStreamReopensPhaseAfterInterleaving(t *testing.T) {
	renderer := &recordingRenderer{}
	_, err := InterpretStream(context.Background(), eventSequence(
		events.NewReasoningDelta(0, "think"),
		events.NewAnswerDelta(1, "answer"),
		events.NewReasoningDelta(2, "more thinking"),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Phase{PhaseReasoning, PhaseAnswering, PhaseReasoning}
	got := renderer.phasesEntered()
	if len(got) != len(expected) {
		t.Fatalf("expected %d phases, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected phase %d to be %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestInterpretStreamClosesOpenPhaseAtTermination(t *testing.T) {
	renderer := &recordingRenderer{}
	_, err := InterpretStream(context.Background(), eventSequence(
		events.NewCodeDelta(0, "print(1)"),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := renderer.actions[len(renderer.actions)-1]
	if last.kind != "end" {
		t.Fatalf("expected trailing phase close, got %s", last)
	}
}

func TestInterpretStreamCodeExecutionLifecycle(t *testing.T) {
	renderer := &recordingRenderer{}
	_, err := InterpretStream(context.Background(), eventSequence(
		events.NewCodeDelta(0, "print(1)"),
		events.NewCodeExecutionStarted(1),
		events.NewCodeExecutionCompleted(2),
		events.NewAnswerDelta(3, "done"),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Phase{PhaseWritingCode, PhaseExecutingCode, PhaseAnswering}
	got := renderer.phasesEntered()
	if len(got) != len(expected) {
		t.Fatalf("expected phases %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected phase %d to be %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestInterpretStreamIgnoresUnknownEvents(t *testing.T) {
	renderer := &recordingRenderer{}
	_, err := InterpretStream(context.Background(), eventSequence(
		events.NewUnknown(0, "response.something_future.delta", []byte(`{}`)),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(renderer.actions) != 0 {
		t.Fatalf("expected zero actions for an unknown event, got %v", renderer.actions)
	}
}

func TestInterpretStreamToolAnnouncementKeepsPhase(t *testing.T) {
	renderer := &recordingRenderer{}
	result, err := InterpretStream(context.Background(), eventSequence(
		events.NewAnswerDelta(0, "before "),
		events.NewOutputItemAdded(1, "function_call", "get_weather", "call_1"),
		events.NewAnswerDelta(2, "after"),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := renderer.count("begin"); got != 1 {
		t.Fatalf("expected the announcement to not alter the phase, got %d begins", got)
	}
	if got := renderer.count("tool"); got != 1 {
		t.Fatalf("expected 1 tool announcement, got %d", got)
	}
	if len(result.ToolCalls) != 1 || result.ToolCalls[0].Name != "get_weather" {
		t.Fatalf("expected the tool call to be surfaced, got %v", result.ToolCalls)
	}
}

func TestInterpretStreamIgnoresNonFunctionItems(t *testing.T) {
	renderer := &recordingRenderer{}
	result, err := InterpretStream(context.Background(), eventSequence(
		events.NewOutputItemAdded(0, "message", "", ""),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(renderer.actions) != 0 {
		t.Fatalf("expected no actions for a message item snapshot, got %v", renderer.actions)
	}
	if len(result.ToolCalls) != 0 {
		t.Fatalf("expected no tool calls, got %v", result.ToolCalls)
	}
}

func TestInterpretStreamAssemblesFunctionArguments(t *testing.T) {
	renderer := &recordingRenderer{}
	result, err := InterpretStream(context.Background(), eventSequence(
		events.NewOutputItemAdded(0, "function_call", "get_weather", "call_1"),
		events.NewFunctionArgumentsDelta(1, `{"city":`),
		events.NewFunctionArgumentsDelta(2, `"Zagreb"}`),
	), renderer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(result.ToolCalls))
	}
	if got := result.ToolCalls[0].Arguments; got != `{"city":"Zagreb"}` {
		t.Fatalf("expected assembled arguments, got %q", got)
	}
}

func TestInterpretStreamPreservesPartialOutputOnError(t *testing.T) {
	streamErr := errors.New("mid-stream disconnect")
	sequence := func(yield func(events.Event, error) bool) {
		if !yield(events.NewAnswerDelta(0, "partial"), nil) {
			return
		}
		yield(nil, streamErr)
	}

	renderer := &recordingRenderer{}
	result, err := InterpretStream(context.Background(), sequence, renderer)
	if !errors.Is(err, streamErr) {
		t.Fatalf("expected the stream error to surface, got %v", err)
	}
	if result.Answer != "partial" {
		t.Fatalf("expected partial answer to be preserved, got %q", result.Answer)
	}
	if result.ResponseID != "" {
		t.Fatalf("expected no response id, got %q", result.ResponseID)
	}

	last := renderer.actions[len(renderer.actions)-1]
	if last.kind != "end" {
		t.Fatalf("expected the open phase to be closed on error, got %s", last)
	}
}
