package chat

// Phase is a labeled span of one presentation mode within a turn's
// output. Exactly one phase is current at any instant while a turn is
// being interpreted.
type Phase string

const (
	PhaseNone          Phase = ""
	PhaseReasoning     Phase = "reasoning"
	PhaseWritingCode   Phase = "writing_code"
	PhaseExecutingCode Phase = "executing_code"
	PhaseCallingTool   Phase = "calling_tool"
	PhaseAnswering     Phase = "answering"
)

// Renderer receives presentation actions as a turn is interpreted. The
// interpreter never performs direct output, so a headless renderer can
// capture the full action stream.
//
// Actions are emitted in order and never buffered beyond the current
// turn.
type Renderer interface {
	// BeginPhase opens a presentation phase. It is emitted exactly once
	// per contiguous span of same-phase deltas.
	BeginPhase(phase Phase)
	// Append adds text to the currently open phase.
	Append(text string)
	// EndPhase closes the currently open phase.
	EndPhase()
	// AnnounceTool reports a tool invocation out of band, independent of
	// the delta-driven phase.
	AnnounceTool(name string)
	// Note reports an informational line outside any phase.
	Note(text string)
	// NoteUsage reports tool output token usage for the finished turn.
	NoteUsage(toolOutputTokens int)
}
