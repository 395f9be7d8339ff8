package chat

import (
	"fmt"

	"github.com/koscakluka/ema-chat/core/responses"
)

// reasoningPreviewLimit caps how much reasoning text the non-streaming
// path shows. The streaming path shows reasoning in full, the finished
// object only gets a preview.
const reasoningPreviewLimit = 200

// InterpretResponse walks a finished response object item by item and
// emits the same renderer action vocabulary as InterpretStream: for a
// given logical turn both paths enter the same phases and produce the
// same final answer text, modulo the reasoning preview truncation.
func InterpretResponse(response *responses.Response, renderer Renderer) TurnResult {
	result := TurnResult{ResponseID: response.ID}
	current := PhaseNone

	ensure := func(phase Phase) {
		if current == phase {
			return
		}
		renderer.BeginPhase(phase)
		current = phase
	}

	for _, item := range response.Output {
		switch item.Type {
		case responses.ItemTypeReasoning:
			if len(item.Content) == 0 {
				continue
			}
			ensure(PhaseReasoning)
			renderer.Append(reasoningPreview(item.Content[0].Text))

		case responses.ItemTypeCodeInterpreterCall:
			ensure(PhaseWritingCode)
			renderer.Append(item.Code)
			for _, output := range item.Outputs {
				renderer.Note(fmt.Sprintf("output: %s", output))
			}

		case responses.ItemTypeFunctionCall:
			renderer.AnnounceTool(item.Name)
			renderer.Note(fmt.Sprintf("arguments: %s", item.Arguments))
			result.ToolCalls = append(result.ToolCalls, ToolCallRequest{
				CallID:    item.CallID,
				Name:      item.Name,
				Arguments: item.Arguments,
			})

		case responses.ItemTypeMessage:
			for _, content := range item.Content {
				if content.Type != "output_text" {
					continue
				}
				ensure(PhaseAnswering)
				renderer.Append(content.Text)
				result.Answer += content.Text
			}
		}
	}

	if current != PhaseNone {
		renderer.EndPhase()
	}

	if tokens := response.Usage.ToolOutputTokens(); tokens > 0 {
		renderer.NoteUsage(tokens)
	}

	return result
}

// reasoningPreview truncates reasoning text at the preview limit,
// marking the cut with an ellipsis. The limit counts characters, not
// bytes, so multi-byte text is never split mid-rune. Text at exactly
// the limit passes through untouched.
func reasoningPreview(text string) string {
	runes := []rune(text)
	if len(runes) <= reasoningPreviewLimit {
		return text
	}
	return string(runes[:reasoningPreviewLimit]) + "..."
}
