package chat

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/koscakluka/ema-chat/core/events"
	"github.com/koscakluka/ema-chat/core/responses"
)

func TestInterpretResponseMatchesStreamingPath(t *testing.T) {
	response := &responses.Response{
		ID: "resp_1",
		Output: []responses.Item{
			{Type: responses.ItemTypeReasoning, Content: []responses.ContentBlock{{Type: "reasoning_text", Text: "hello..."}}},
			{Type: responses.ItemTypeMessage, Content: []responses.ContentBlock{{Type: "output_text", Text: "world"}}},
		},
	}

	finishedRenderer := &recordingRenderer{}
	finishedResult := InterpretResponse(response, finishedRenderer)

	streamRenderer := &recordingRenderer{}
	streamResult, err := InterpretStream(context.Background(), eventSequence(
		events.NewResponseCreated(0, "resp_1"),
		events.NewReasoningDelta(1, "hello..."),
		events.NewAnswerDelta(2, "world"),
	), streamRenderer)
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}

	expectedPhases := []Phase{PhaseReasoning, PhaseAnswering}
	for _, renderer := range []*recordingRenderer{finishedRenderer, streamRenderer} {
		got := renderer.phasesEntered()
		if len(got) != len(expectedPhases) {
			t.Fatalf("expected phases %v, got %v", expectedPhases, got)
		}
		for i := range expectedPhases {
			if got[i] != expectedPhases[i] {
				t.Fatalf("expected phase %d to be %q, got %q", i, expectedPhases[i], got[i])
			}
		}
	}

	if finishedResult.Answer != "world" {
		t.Fatalf("expected finished answer %q, got %q", "world", finishedResult.Answer)
	}
	if streamResult.Answer != finishedResult.Answer {
		t.Fatalf("expected both paths to agree on the answer, got %q vs %q", streamResult.Answer, finishedResult.Answer)
	}
	if finishedResult.ResponseID != streamResult.ResponseID {
		t.Fatalf("expected both paths to agree on the id, got %q vs %q", finishedResult.ResponseID, streamResult.ResponseID)
	}
}

func TestReasoningPreviewTruncationBoundary(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "under the limit",
			text:     strings.Repeat("x", 199),
			expected: strings.Repeat("x", 199),
		},
		{
			name:     "exactly the limit",
			text:     strings.Repeat("x", 200),
			expected: strings.Repeat("x", 200),
		},
		{
			name:     "one past the limit",
			text:     strings.Repeat("x", 201),
			expected: strings.Repeat("x", 200) + "...",
		},
		{
			// 200 characters but 400 bytes; the limit counts characters.
			name:     "multi-byte at the limit",
			text:     strings.Repeat("ž", 200),
			expected: strings.Repeat("ž", 200),
		},
		{
			name:     "multi-byte past the limit",
			text:     strings.Repeat("ž", 201),
			expected: strings.Repeat("ž", 200) + "...",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			renderer := &recordingRenderer{}
			InterpretResponse(&responses.Response{
				Output: []responses.Item{
					{Type: responses.ItemTypeReasoning, Content: []responses.ContentBlock{{Type: "reasoning_text", Text: testCase.text}}},
				},
			}, renderer)

			if shown := renderer.appendedText(); shown != testCase.expected {
				t.Fatalf("expected %d bytes of preview, got %d", len(testCase.expected), len(shown))
			}
		})
	}
}

func TestReasoningPreviewNeverSplitsRunes(t *testing.T) {
	text := strings.Repeat("ž", 250)
	renderer := &recordingRenderer{}
	InterpretResponse(&responses.Response{
		Output: []responses.Item{
			{Type: responses.ItemTypeReasoning, Content: []responses.ContentBlock{{Type: "reasoning_text", Text: text}}},
		},
	}, renderer)

	if shown := renderer.appendedText(); !utf8.ValidString(shown) {
		t.Fatalf("expected the preview to remain valid UTF-8, got %q", shown)
	}
}

func TestInterpretResponseCodeItemSurfacesOutputs(t *testing.T) {
	renderer := &recordingRenderer{}
	InterpretResponse(&responses.Response{
		Output: []responses.Item{
			{
				Type:    responses.ItemTypeCodeInterpreterCall,
				Code:    "print(1)",
				Outputs: []json.RawMessage{json.RawMessage(`{"type":"logs","logs":"1"}`)},
			},
		},
	}, renderer)

	if got := renderer.phasesEntered(); len(got) != 1 || got[0] != PhaseWritingCode {
		t.Fatalf("expected a single code phase, got %v", got)
	}
	if renderer.appendedText() != "print(1)" {
		t.Fatalf("expected the code to be appended, got %q", renderer.appendedText())
	}
	if got := renderer.count("note"); got != 1 {
		t.Fatalf("expected 1 informational output note, got %d", got)
	}
}

func TestInterpretResponseFunctionCallAnnouncesWithoutExecuting(t *testing.T) {
	renderer := &recordingRenderer{}
	result := InterpretResponse(&responses.Response{
		Output: []responses.Item{
			{Type: responses.ItemTypeFunctionCall, CallID: "call_1", Name: "get_weather", Arguments: `{"city":"Zagreb"}`},
		},
	}, renderer)

	if got := renderer.count("tool"); got != 1 {
		t.Fatalf("expected 1 tool announcement, got %d", got)
	}
	if len(renderer.phasesEntered()) != 0 {
		t.Fatalf("expected no phase for a bare function call, got %v", renderer.phasesEntered())
	}
	if len(result.ToolCalls) != 1 || result.ToolCalls[0].Arguments != `{"city":"Zagreb"}` {
		t.Fatalf("expected the call to be surfaced for the caller, got %v", result.ToolCalls)
	}
}

func TestInterpretResponseUsageNote(t *testing.T) {
	testCases := []struct {
		name          string
		details       *responses.OutputTokensDetails
		expectedNotes int
	}{
		{name: "tool output tokens present", details: &responses.OutputTokensDetails{ToolOutputTokens: 7}, expectedNotes: 1},
		{name: "zero tool output tokens", details: &responses.OutputTokensDetails{}, expectedNotes: 0},
		{name: "no breakdown", details: nil, expectedNotes: 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			renderer := &recordingRenderer{}
			InterpretResponse(&responses.Response{
				Usage: responses.Usage{OutputTokensDetails: testCase.details},
			}, renderer)

			if got := renderer.count("usage"); got != testCase.expectedNotes {
				t.Fatalf("expected %d usage notes, got %d", testCase.expectedNotes, got)
			}
		})
	}
}

func TestInterpretResponseSkipsNonTextContent(t *testing.T) {
	renderer := &recordingRenderer{}
	result := InterpretResponse(&responses.Response{
		Output: []responses.Item{
			{Type: responses.ItemTypeMessage, Content: []responses.ContentBlock{
				{Type: "refusal", Text: "no"},
				{Type: "output_text", Text: "yes"},
			}},
		},
	}, renderer)

	if result.Answer != "yes" {
		t.Fatalf("expected only output_text blocks in the answer, got %q", result.Answer)
	}
}
