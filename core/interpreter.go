package chat

import (
	"context"
	"strings"

	"github.com/koscakluka/ema-chat/core/events"
	"go.opentelemetry.io/otel/attribute"
)

// TurnResult is what one interpreted turn leaves behind.
type TurnResult struct {
	// ResponseID is the continuation identifier captured from the turn,
	// empty when the stream never carried one. An empty id must not
	// overwrite a previously captured session id.
	ResponseID string
	// Answer is the assembled final answer text.
	Answer string
	// ToolCalls are the function calls the model requested. Executing
	// them is the caller's responsibility.
	ToolCalls []ToolCallRequest
}

// ToolCallRequest is one function call surfaced during a turn.
type ToolCallRequest struct {
	CallID    string
	Name      string
	Arguments string
}

// InterpretStream consumes one turn's event sequence to completion,
// emitting renderer actions and capturing the continuation identifier.
//
// Partial output is always preserved: when the sequence fails mid-turn,
// everything rendered so far stays rendered, any open phase is closed,
// and the error is returned alongside the partial result.
func InterpretStream(ctx context.Context, seq func(func(events.Event, error) bool), renderer Renderer) (TurnResult, error) {
	ctx, span := tracer.Start(ctx, "interpret stream")
	defer span.End()

	result := TurnResult{}
	var answer strings.Builder
	current := PhaseNone

	ensure := func(phase Phase) {
		if current == phase {
			return
		}
		renderer.BeginPhase(phase)
		current = phase
	}

	var streamErr error
	for event, err := range seq {
		if err != nil {
			streamErr = err
			break
		}
		if ctx.Err() != nil {
			streamErr = ctx.Err()
			break
		}

		switch event := event.(type) {
		case events.ResponseCreated:
			if result.ResponseID == "" {
				result.ResponseID = event.ResponseID
			}

		case events.ReasoningDelta:
			ensure(PhaseReasoning)
			renderer.Append(event.Delta)

		case events.CodeDelta:
			ensure(PhaseWritingCode)
			renderer.Append(event.Delta)

		case events.CodeExecutionStarted:
			renderer.BeginPhase(PhaseExecutingCode)
			current = PhaseExecutingCode

		case events.CodeExecutionCompleted:
			renderer.EndPhase()
			current = PhaseNone

		case events.FunctionArgumentsDelta:
			ensure(PhaseCallingTool)
			renderer.Append(event.Delta)
			if len(result.ToolCalls) > 0 {
				result.ToolCalls[len(result.ToolCalls)-1].Arguments += event.Delta
			}

		case events.AnswerDelta:
			ensure(PhaseAnswering)
			renderer.Append(event.Delta)
			answer.WriteString(event.Delta)

		case events.OutputItemAdded:
			// Out-of-band announcement, independent of the delta-driven
			// phase.
			if event.IsFunctionCall() {
				renderer.AnnounceTool(event.Name)
				result.ToolCalls = append(result.ToolCalls, ToolCallRequest{
					CallID: event.CallID,
					Name:   event.Name,
				})
			}

		case events.Unknown:
			logger.Debug("ignoring unknown event kind", "type", event.Type)

		default:
			logger.Debug("ignoring unhandled event", "kind", string(event.Kind()))
		}
	}

	if current != PhaseNone {
		renderer.EndPhase()
	}

	result.Answer = answer.String()
	span.SetAttributes(
		attribute.String("response.id", result.ResponseID),
		attribute.Int("response.tool_calls", len(result.ToolCalls)),
	)
	if streamErr != nil {
		span.RecordError(streamErr)
	}
	return result, streamErr
}
