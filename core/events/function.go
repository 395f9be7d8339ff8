package events

const (
	// KindFunctionArgumentsDelta identifies incremental function-call
	// argument text.
	KindFunctionArgumentsDelta Kind = "response.function_call_arguments.delta"
	// KindOutputItemAdded identifies a new output item snapshot.
	KindOutputItemAdded Kind = "response.output_item.added"
)

// FunctionArgumentsDelta is an append-only piece of the arguments the
// model is writing for a function call.
type FunctionArgumentsDelta struct {
	Base
	Delta string
}

// NewFunctionArgumentsDelta creates a function arguments delta event.
func NewFunctionArgumentsDelta(sequence int, delta string) FunctionArgumentsDelta {
	return FunctionArgumentsDelta{Base: NewBase(KindFunctionArgumentsDelta, sequence), Delta: delta}
}

// OutputItemAdded is a snapshot of a new item appended to the response
// output. For function_call items the tool name and call id are set.
type OutputItemAdded struct {
	Base
	ItemType string
	Name     string
	CallID   string
}

// NewOutputItemAdded creates an output item added event.
func NewOutputItemAdded(sequence int, itemType, name, callID string) OutputItemAdded {
	return OutputItemAdded{Base: NewBase(KindOutputItemAdded, sequence), ItemType: itemType, Name: name, CallID: callID}
}

// IsFunctionCall reports whether the added item is a function call.
func (e OutputItemAdded) IsFunctionCall() bool {
	return e.ItemType == "function_call"
}
