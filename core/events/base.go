package events

type Kind string

type Event interface {
	Kind() Kind
	// Sequence is the server-assigned frame index. The stream is
	// monotonically indexed but may contain gaps where malformed frames
	// were dropped.
	Sequence() int
}

type Base struct {
	kind     Kind
	sequence int
}

func NewBase(kind Kind, sequence int) Base {
	return Base{kind: kind, sequence: sequence}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Sequence() int {
	return b.sequence
}
