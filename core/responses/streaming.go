package responses

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/koscakluka/ema-chat/core/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	chunkPrefix = "data:"
	endMessage  = "[DONE]"

	maxFrameSize = 4 * 1024 * 1024
)

// PromptWithStream prepares a streaming request. The request is not sent
// until the returned stream's Events sequence is consumed.
func (c *Client) PromptWithStream(_ context.Context, prompt string, opts ...PromptOption) *Stream {
	options := PromptOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var tools []ToolDescriptor
	if options.Tools != nil {
		copier.Copy(&tools, options.Tools)
	}

	return &Stream{
		client:             c,
		prompt:             prompt,
		tools:              tools,
		previousResponseID: options.PreviousResponseID,
		toolOutputs:        options.ToolOutputs,
	}
}

// Stream is one turn's pending streaming request.
type Stream struct {
	client *Client

	prompt             string
	tools              []ToolDescriptor
	previousResponseID *string
	toolOutputs        []ToolCallOutput
}

// Events opens the connection and yields decoded events until the server
// sends the end-of-stream marker, the stream closes, or the consumer
// stops. The sequence is finite and not restartable; the connection is
// closed on every exit path.
func (s *Stream) Events(ctx context.Context) func(func(events.Event, error) bool) {
	requestToFirstEventTime := time.Time{}
	setRequestToFirstEventTime := func(span trace.Span) {
		if requestToFirstEventTime.IsZero() {
			return
		}
		span.SetAttributes(attribute.Float64("response.request_to_first_event_time", time.Since(requestToFirstEventTime).Seconds()))
		span.AddEvent("received first frame")
		requestToFirstEventTime = time.Time{}
	}

	return func(yield func(events.Event, error) bool) {
		ctx, span := tracer.Start(ctx, "stream response")
		defer span.End()
		span.SetAttributes(attribute.String("request.model", s.client.model))
		var toolTypes []string
		for _, tool := range s.tools {
			toolTypes = append(toolTypes, tool.Type())
		}
		span.SetAttributes(attribute.StringSlice("request.tools", toolTypes))

		reqBody := requestBody{
			Model:              s.client.model,
			Input:              toInput(s.prompt, s.toolOutputs),
			Stream:             true,
			Tools:              s.tools,
			PreviousResponseID: s.previousResponseID,
		}

		requestBodyBytes, err := json.Marshal(reqBody)
		if err != nil {
			err = fmt.Errorf("error marshalling JSON: %w", err)
			span.RecordError(err)
			yield(nil, err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, "POST", s.client.baseURL+responsesPath, bytes.NewBuffer(requestBodyBytes))
		if err != nil {
			err = fmt.Errorf("error creating HTTP request: %w", err)
			span.RecordError(err)
			yield(nil, err)
			return
		}

		req.Header.Set("Content-Type", "application/json")
		if s.client.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+s.client.apiKey)
		}

		requestToFirstEventTime = time.Now()
		span.AddEvent("request started")
		resp, err := s.client.httpClient.Do(req)
		if err != nil {
			err = fmt.Errorf("error sending request: %w", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			if errorBody, err := io.ReadAll(resp.Body); err == nil {
				span.SetAttributes(attribute.String("response.error", string(errorBody)))
			}
			err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			yield(nil, err)
			return
		}

		for event, err := range decodeFrames(resp.Body) {
			setRequestToFirstEventTime(span)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			if !yield(event, err) {
				return
			}
		}
	}
}

// decodeFrames turns raw transport lines into a finite sequence of typed
// events. Framing noise is discarded, a malformed data frame is skipped
// silently, and the end-of-stream marker terminates the sequence without
// an error.
func decodeFrames(body io.Reader) func(func(events.Event, error) bool) {
	return func(yield func(events.Event, error) bool) {
		scanner := bufio.NewScanner(body)
		// Snapshot frames can exceed bufio's default 64KB token limit.
		scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, chunkPrefix) {
				continue
			}

			data := strings.TrimSpace(strings.TrimPrefix(line, chunkPrefix))
			if len(data) == 0 {
				continue
			}

			if data == endMessage {
				return
			}

			event, ok := decodeFrame([]byte(data))
			if !ok {
				// One malformed frame must never abort an otherwise
				// successful turn.
				logger.Debug("skipping malformed frame", "frame", data)
				continue
			}

			if !yield(event, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("error reading streamed response: %w", err))
		}
	}
}

type streamFrame struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	Delta          string `json:"delta"`
	Response       *struct {
		ID string `json:"id"`
	} `json:"response"`
	Item *struct {
		Type   string `json:"type"`
		Name   string `json:"name"`
		CallID string `json:"call_id"`
	} `json:"item"`
}

// decodeFrame classifies one data frame into a typed event. It reports
// false for structurally malformed payloads.
func decodeFrame(data []byte) (events.Event, bool) {
	var frame streamFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, false
	}

	switch events.Kind(frame.Type) {
	case events.KindResponseCreated:
		responseID := ""
		if frame.Response != nil {
			responseID = frame.Response.ID
		}
		return events.NewResponseCreated(frame.SequenceNumber, responseID), true

	case events.KindReasoningDelta:
		return events.NewReasoningDelta(frame.SequenceNumber, frame.Delta), true

	case events.KindCodeDelta:
		return events.NewCodeDelta(frame.SequenceNumber, frame.Delta), true

	case events.KindCodeExecutionStarted:
		return events.NewCodeExecutionStarted(frame.SequenceNumber), true

	case events.KindCodeExecutionCompleted:
		return events.NewCodeExecutionCompleted(frame.SequenceNumber), true

	case events.KindFunctionArgumentsDelta:
		return events.NewFunctionArgumentsDelta(frame.SequenceNumber, frame.Delta), true

	case events.KindAnswerDelta:
		return events.NewAnswerDelta(frame.SequenceNumber, frame.Delta), true

	case events.KindOutputItemAdded:
		itemType, name, callID := "", "", ""
		if frame.Item != nil {
			itemType = frame.Item.Type
			name = frame.Item.Name
			callID = frame.Item.CallID
		}
		return events.NewOutputItemAdded(frame.SequenceNumber, itemType, name, callID), true

	default:
		return events.NewUnknown(frame.SequenceNumber, frame.Type, data), true
	}
}
