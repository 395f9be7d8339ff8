package events

const (
	// KindUnknown identifies a frame with an unrecognized discriminator.
	KindUnknown Kind = "unknown"
)

// Unknown wraps a structurally valid frame whose `type` discriminator is
// not part of the known taxonomy. Consumers ignore it.
type Unknown struct {
	Base
	Type string
	Raw  []byte
}

// NewUnknown creates an unknown event preserving the raw frame.
func NewUnknown(sequence int, eventType string, raw []byte) Unknown {
	return Unknown{Base: NewBase(KindUnknown, sequence), Type: eventType, Raw: raw}
}
