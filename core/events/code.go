package events

const (
	// KindCodeDelta identifies incremental generated code.
	KindCodeDelta Kind = "response.code_interpreter_call_code.delta"
	// KindCodeExecutionStarted identifies code execution start.
	KindCodeExecutionStarted Kind = "response.code_interpreter_call.interpreting"
	// KindCodeExecutionCompleted identifies code execution completion.
	KindCodeExecutionCompleted Kind = "response.code_interpreter_call.completed"
)

// CodeDelta is an append-only piece of code the model is writing for the
// code interpreter.
type CodeDelta struct {
	Base
	Delta string
}

// NewCodeDelta creates a code delta event.
func NewCodeDelta(sequence int, delta string) CodeDelta {
	return CodeDelta{Base: NewBase(KindCodeDelta, sequence), Delta: delta}
}

// CodeExecutionStarted marks the server starting to execute generated
// code. It has no text payload.
type CodeExecutionStarted struct {
	Base
}

// NewCodeExecutionStarted creates a code execution started event.
func NewCodeExecutionStarted(sequence int) CodeExecutionStarted {
	return CodeExecutionStarted{Base: NewBase(KindCodeExecutionStarted, sequence)}
}

// CodeExecutionCompleted marks the server finishing code execution.
type CodeExecutionCompleted struct {
	Base
}

// NewCodeExecutionCompleted creates a code execution completed event.
func NewCodeExecutionCompleted(sequence int) CodeExecutionCompleted {
	return CodeExecutionCompleted{Base: NewBase(KindCodeExecutionCompleted, sequence)}
}
