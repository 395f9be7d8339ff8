package responses

import (
	"encoding/json"
	"fmt"
)

type requestBody struct {
	Model              string           `json:"model"`
	Input              any              `json:"input"`
	Stream             bool             `json:"stream"`
	Tools              []ToolDescriptor `json:"tools,omitempty"`
	PreviousResponseID *string          `json:"previous_response_id,omitempty"`
}

// ToolDescriptor is an opaque tagged tool object forwarded verbatim to
// the server, e.g. {"type": "code_interpreter", "container": {"type":
// "auto"}}. The client never interprets its internals.
type ToolDescriptor map[string]any

// CodeInterpreterTool describes the server-executed code interpreter.
func CodeInterpreterTool() ToolDescriptor {
	return ToolDescriptor{
		"type":      "code_interpreter",
		"container": map[string]any{"type": "auto"},
	}
}

// WebSearchTool describes the hosted web search preview tool.
func WebSearchTool() ToolDescriptor {
	return ToolDescriptor{"type": "web_search_preview"}
}

// FunctionToolDescriptor describes a caller-executed function tool. The
// parameters schema is passed through untouched.
func FunctionToolDescriptor(name, description string, parameters any) ToolDescriptor {
	return ToolDescriptor{
		"type":        "function",
		"name":        name,
		"description": description,
		"parameters":  parameters,
	}
}

// Type returns the descriptor's type tag, the only field the client ever
// reads back.
func (t ToolDescriptor) Type() string {
	tag, _ := t["type"].(string)
	return tag
}

type inputItem struct {
	Type messageType `json:"type"`

	Role    messageRole `json:"role,omitempty"`
	Content string      `json:"content,omitempty"`

	ToolCallID     string `json:"call_id,omitempty"`
	ToolCallOutput string `json:"output,omitempty"`
}

type messageRole string

const (
	messageRoleUser messageRole = "user"
)

type messageType string

const (
	messageTypeMessage            messageType = "message"
	messageTypeFunctionCallOutput messageType = "function_call_output"
)

// ToolCallOutput is a function-call result supplied by the caller for a
// follow-up turn.
type ToolCallOutput struct {
	CallID string
	Output string
}

func toInput(prompt string, toolOutputs []ToolCallOutput) any {
	if len(toolOutputs) == 0 {
		return prompt
	}

	items := []inputItem{}
	for _, output := range toolOutputs {
		items = append(items, inputItem{
			Type:           messageTypeFunctionCallOutput,
			ToolCallID:     output.CallID,
			ToolCallOutput: output.Output,
		})
	}
	if prompt != "" {
		items = append(items, inputItem{
			Type:    messageTypeMessage,
			Role:    messageRoleUser,
			Content: prompt,
		})
	}
	return items
}

// ItemType discriminates the heterogeneous output items of a finished
// response.
type ItemType string

const (
	ItemTypeReasoning           ItemType = "reasoning"
	ItemTypeCodeInterpreterCall ItemType = "code_interpreter_call"
	ItemTypeFunctionCall        ItemType = "function_call"
	ItemTypeMessage             ItemType = "message"
)

// Response is a finished response object as returned by the
// non-streaming path.
type Response struct {
	ID     string
	Output []Item
	Usage  Usage
}

// Item is one output item of a finished response. Fields are populated
// according to Type.
type Item struct {
	Type ItemType

	// Content holds the text blocks of reasoning and message items.
	Content []ContentBlock

	// Code and Outputs belong to code_interpreter_call items. Outputs
	// are kept raw, they are surfaced without re-parsing.
	Code    string
	Outputs []json.RawMessage

	// Name, CallID and Arguments belong to function_call items.
	Name      string
	CallID    string
	Arguments string
}

// ContentBlock is one content entry of a reasoning or message item.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage represents token usage details of a finished response.
type Usage struct {
	InputTokens         int                  `json:"input_tokens"`
	OutputTokens        int                  `json:"output_tokens"`
	OutputTokensDetails *OutputTokensDetails `json:"output_tokens_details"`
	TotalTokens         int                  `json:"total_tokens"`
}

// OutputTokensDetails is a detailed breakdown of the output tokens.
type OutputTokensDetails struct {
	ReasoningTokens  int `json:"reasoning_tokens"`
	ToolOutputTokens int `json:"tool_output_tokens"`
}

// ToolOutputTokens returns the tool output token count, zero when the
// breakdown is absent.
func (u Usage) ToolOutputTokens() int {
	if u.OutputTokensDetails == nil {
		return 0
	}
	return u.OutputTokensDetails.ToolOutputTokens
}

type responseBody struct {
	ID     string            `json:"id"`
	Output []json.RawMessage `json:"output"`
	Usage  Usage             `json:"usage"`
}

type responseBodyItemType struct {
	Type ItemType `json:"type"`
}

type responseBodyItemReasoning struct {
	Content []ContentBlock `json:"content"`
	Summary []ContentBlock `json:"summary"`
}

type responseBodyItemCodeInterpreterCall struct {
	Code    string            `json:"code"`
	Outputs []json.RawMessage `json:"outputs"`
}

type responseBodyItemFunctionCall struct {
	CallID    string `json:"call_id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type responseBodyItemMessage struct {
	Content []ContentBlock `json:"content"`
}

func parseResponse(data []byte) (*Response, error) {
	var body responseBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("error unmarshalling response body: %w", err)
	}

	response := Response{ID: body.ID, Usage: body.Usage}
	for _, output := range body.Output {
		var itemType responseBodyItemType
		if err := json.Unmarshal(output, &itemType); err != nil {
			return nil, fmt.Errorf("error unmarshalling output item type: %w", err)
		}

		switch itemType.Type {
		case ItemTypeReasoning:
			var item responseBodyItemReasoning
			if err := json.Unmarshal(output, &item); err != nil {
				return nil, fmt.Errorf("error unmarshalling reasoning item: %w", err)
			}
			content := item.Content
			if len(content) == 0 {
				content = item.Summary
			}
			response.Output = append(response.Output, Item{Type: ItemTypeReasoning, Content: content})

		case ItemTypeCodeInterpreterCall:
			var item responseBodyItemCodeInterpreterCall
			if err := json.Unmarshal(output, &item); err != nil {
				return nil, fmt.Errorf("error unmarshalling code interpreter item: %w", err)
			}
			response.Output = append(response.Output, Item{
				Type:    ItemTypeCodeInterpreterCall,
				Code:    item.Code,
				Outputs: item.Outputs,
			})

		case ItemTypeFunctionCall:
			var item responseBodyItemFunctionCall
			if err := json.Unmarshal(output, &item); err != nil {
				return nil, fmt.Errorf("error unmarshalling function call item: %w", err)
			}
			response.Output = append(response.Output, Item{
				Type:      ItemTypeFunctionCall,
				CallID:    item.CallID,
				Name:      item.Name,
				Arguments: item.Arguments,
			})

		case ItemTypeMessage:
			var item responseBodyItemMessage
			if err := json.Unmarshal(output, &item); err != nil {
				return nil, fmt.Errorf("error unmarshalling message item: %w", err)
			}
			response.Output = append(response.Output, Item{Type: ItemTypeMessage, Content: item.Content})

		default:
			// Future item types are skipped the same way unknown stream
			// events are.
			logger.Debug("skipping unknown output item type", "type", string(itemType.Type))
		}
	}

	return &response, nil
}
