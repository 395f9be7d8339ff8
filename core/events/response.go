package events

const (
	// KindResponseCreated identifies the response lifecycle start.
	KindResponseCreated Kind = "response.created"
)

// ResponseCreated carries the identifier of the freshly created response.
// The id is the continuation token for the next turn.
type ResponseCreated struct {
	Base
	ResponseID string
}

// NewResponseCreated creates a response created event.
func NewResponseCreated(sequence int, responseID string) ResponseCreated {
	return ResponseCreated{Base: NewBase(KindResponseCreated, sequence), ResponseID: responseID}
}
