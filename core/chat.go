package chat

import (
	"context"
	"os"

	"github.com/koscakluka/ema-chat/core/responses"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Chat drives one conversation against a responses endpoint. Turns are
// strictly sequential: the REPL loop owns the chat and never issues two
// overlapping turns.
type Chat struct {
	client   *responses.Client
	session  *Session
	renderer Renderer

	streaming    bool
	toolsEnabled bool

	tools         []responses.ToolDescriptor
	functionTools []FunctionTool
}

// New creates a chat with streaming enabled and tools exposed, rendering
// to stdout unless overridden.
func New(client *responses.Client, opts ...Option) *Chat {
	c := &Chat{
		client:       client,
		session:      NewSession(),
		renderer:     NewTerminalRenderer(os.Stdout),
		streaming:    true,
		toolsEnabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the conversation session.
func (c *Chat) Session() *Session { return c.session }

// Streaming reports whether turns use the streaming path.
func (c *Chat) Streaming() bool { return c.streaming }

// ToolsEnabled reports whether tool descriptors are sent with turns.
func (c *Chat) ToolsEnabled() bool { return c.toolsEnabled }

// ToggleTools flips tool exposure and returns the new state.
func (c *Chat) ToggleTools() bool {
	c.toolsEnabled = !c.toolsEnabled
	return c.toolsEnabled
}

// ToolTypes returns the type tags of the configured tool descriptors.
func (c *Chat) ToolTypes() []string {
	types := []string{}
	for _, tool := range c.activeTools() {
		types = append(types, tool.Type())
	}
	return types
}

// SendTurn runs one conversational turn: it sends the prompt, renders
// the response as it is interpreted, commits the fresh continuation id,
// and executes registered function tools until the model settles on an
// answer. Unregistered tool calls are surfaced with a note instead.
func (c *Chat) SendTurn(ctx context.Context, prompt string) error {
	ctx, span := tracer.Start(ctx, "send turn")
	defer span.End()
	span.SetAttributes(attribute.Bool("turn.streaming", c.streaming))

	result, err := c.processTurn(ctx, prompt, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	c.commit(prompt, result)

	for len(result.ToolCalls) > 0 {
		outputs, executed := c.executeToolCalls(ctx, result.ToolCalls)
		if !executed {
			c.renderer.Note("execute this tool and provide the result on the next turn")
			return nil
		}

		// Follow-up turns carry no new user prompt; recording it again
		// would duplicate it in the transcript.
		result, err = c.processTurn(ctx, "", outputs)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		c.commit("", result)
	}

	return nil
}

// processTurn makes one request/response exchange. The session id is
// read exactly once, before the transport call.
func (c *Chat) processTurn(ctx context.Context, prompt string, toolOutputs []responses.ToolCallOutput) (TurnResult, error) {
	opts := []responses.PromptOption{}
	if tools := c.activeTools(); len(tools) > 0 {
		opts = append(opts, responses.WithTools(tools...))
	}
	if previousID := c.session.ResponseID(); previousID != nil {
		opts = append(opts, responses.WithPreviousResponseID(*previousID))
	}
	if len(toolOutputs) > 0 {
		opts = append(opts, responses.WithToolOutputs(toolOutputs...))
	}

	if c.streaming {
		stream := c.client.PromptWithStream(ctx, prompt, opts...)
		return InterpretStream(ctx, stream.Events(ctx), c.renderer)
	}

	response, err := c.client.Prompt(ctx, prompt, opts...)
	if err != nil {
		return TurnResult{}, err
	}
	return InterpretResponse(response, c.renderer), nil
}

// commit stores the turn's continuation id and transcript entry. A turn
// without a fresh id leaves the previous id untouched.
func (c *Chat) commit(prompt string, result TurnResult) {
	c.session.SetResponseID(result.ResponseID)
	c.session.RecordTurn(prompt, result.Answer, result.ResponseID)
}

func (c *Chat) activeTools() []responses.ToolDescriptor {
	if !c.toolsEnabled {
		return nil
	}

	tools := make([]responses.ToolDescriptor, 0, len(c.tools)+len(c.functionTools))
	tools = append(tools, c.tools...)
	for _, tool := range c.functionTools {
		tools = append(tools, tool.Descriptor())
	}
	return tools
}
