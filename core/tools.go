package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/koscakluka/ema-chat/core/responses"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FunctionTool is a caller-executed tool: the server only decides to
// call it, execution happens here.
type FunctionTool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema

	execute func(arguments string) (string, error)
}

// NewFunctionTool creates a function tool whose parameter schema is
// reflected from the callback's parameter struct.
func NewFunctionTool[T any](name, description string, execute func(parameters T) (string, error)) FunctionTool {
	reflector := jsonschema.Reflector{DoNotReference: true}
	var parameters T
	schema := reflector.Reflect(parameters)

	return FunctionTool{
		Name:        name,
		Description: description,
		Parameters:  schema,
		execute: func(arguments string) (string, error) {
			var parameters T
			if err := json.Unmarshal([]byte(arguments), &parameters); err != nil {
				return "", fmt.Errorf("error unmarshalling tool arguments: %w", err)
			}
			return execute(parameters)
		},
	}
}

// Descriptor returns the wire descriptor announced to the server.
func (t FunctionTool) Descriptor() responses.ToolDescriptor {
	return responses.FunctionToolDescriptor(t.Name, t.Description, t.Parameters)
}

// Execute runs the tool against its raw argument string.
func (t FunctionTool) Execute(arguments string) (string, error) {
	if t.execute == nil {
		return "", fmt.Errorf("tool %q has no executor", t.Name)
	}
	return t.execute(arguments)
}

// executeToolCalls runs the registered function tools for the calls the
// model requested. It reports false when any call has no registered
// tool, in which case the caller must supply the result on the next
// turn.
func (c *Chat) executeToolCalls(ctx context.Context, calls []ToolCallRequest) ([]responses.ToolCallOutput, bool) {
	outputs := []responses.ToolCallOutput{}
	for _, call := range calls {
		tool, found := c.findFunctionTool(call.Name)
		if !found {
			return nil, false
		}

		_, span := tracer.Start(ctx, "execute tool")
		span.SetAttributes(attribute.String("tool.name", call.Name))
		response, err := tool.Execute(call.Arguments)
		if err != nil {
			err = fmt.Errorf("failed to execute tool %q: %w", call.Name, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			// The model gets the failure as the tool output so it can
			// recover in-conversation.
			response = fmt.Sprintf("error: %v", err)
		}
		span.End()

		outputs = append(outputs, responses.ToolCallOutput{CallID: call.CallID, Output: response})
	}
	return outputs, true
}

func (c *Chat) findFunctionTool(name string) (FunctionTool, bool) {
	for _, tool := range c.functionTools {
		if tool.Name == name {
			return tool, true
		}
	}
	return FunctionTool{}, false
}
