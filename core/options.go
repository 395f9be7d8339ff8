package chat

import "github.com/koscakluka/ema-chat/core/responses"

type Option func(*Chat)

// WithRenderer replaces the presentation sink.
func WithRenderer(renderer Renderer) Option {
	return func(c *Chat) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithSession replaces the conversation session, e.g. to resume one.
func WithSession(session *Session) Option {
	return func(c *Chat) {
		if session != nil {
			c.session = session
		}
	}
}

// WithStreaming selects between the streaming and non-streaming paths.
func WithStreaming(enabled bool) Option {
	return func(c *Chat) { c.streaming = enabled }
}

// WithTools adds server-side tool descriptors. Repeating this option
// sequentially adds more tools.
func WithTools(tools ...responses.ToolDescriptor) Option {
	return func(c *Chat) { c.tools = append(c.tools, tools...) }
}

// WithFunctionTools registers caller-executed function tools.
func WithFunctionTools(tools ...FunctionTool) Option {
	return func(c *Chat) { c.functionTools = append(c.functionTools, tools...) }
}
