package events

const (
	// KindReasoningDelta identifies incremental reasoning text.
	KindReasoningDelta Kind = "response.reasoning_text.delta"
	// KindAnswerDelta identifies incremental final answer text.
	KindAnswerDelta Kind = "response.output_text.delta"
)

// ReasoningDelta is an append-only reasoning text piece.
type ReasoningDelta struct {
	Base
	Delta string
}

// NewReasoningDelta creates a reasoning delta event.
func NewReasoningDelta(sequence int, delta string) ReasoningDelta {
	return ReasoningDelta{Base: NewBase(KindReasoningDelta, sequence), Delta: delta}
}

// AnswerDelta is an append-only final answer text piece.
type AnswerDelta struct {
	Base
	Delta string
}

// NewAnswerDelta creates an answer delta event.
func NewAnswerDelta(sequence int, delta string) AnswerDelta {
	return AnswerDelta{Base: NewBase(KindAnswerDelta, sequence), Delta: delta}
}
