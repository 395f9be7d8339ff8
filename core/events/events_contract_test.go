package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "response created", event: NewResponseCreated(0, "resp_1"), expected: KindResponseCreated},
		{name: "reasoning delta", event: NewReasoningDelta(1, "thinking"), expected: KindReasoningDelta},
		{name: "answer delta", event: NewAnswerDelta(2, "answer"), expected: KindAnswerDelta},
		{name: "code delta", event: NewCodeDelta(3, "print(1)"), expected: KindCodeDelta},
		{name: "code execution started", event: NewCodeExecutionStarted(4), expected: KindCodeExecutionStarted},
		{name: "code execution completed", event: NewCodeExecutionCompleted(5), expected: KindCodeExecutionCompleted},
		{name: "function arguments delta", event: NewFunctionArgumentsDelta(6, "{\"city\":"), expected: KindFunctionArgumentsDelta},
		{name: "output item added", event: NewOutputItemAdded(7, "function_call", "get_weather", "call_1"), expected: KindOutputItemAdded},
		{name: "unknown", event: NewUnknown(8, "response.something_future.delta", []byte("{}")), expected: KindUnknown},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestKindsMatchWireDiscriminators(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected string
	}{
		{kind: KindResponseCreated, expected: "response.created"},
		{kind: KindReasoningDelta, expected: "response.reasoning_text.delta"},
		{kind: KindCodeDelta, expected: "response.code_interpreter_call_code.delta"},
		{kind: KindCodeExecutionStarted, expected: "response.code_interpreter_call.interpreting"},
		{kind: KindCodeExecutionCompleted, expected: "response.code_interpreter_call.completed"},
		{kind: KindFunctionArgumentsDelta, expected: "response.function_call_arguments.delta"},
		{kind: KindAnswerDelta, expected: "response.output_text.delta"},
		{kind: KindOutputItemAdded, expected: "response.output_item.added"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.expected, func(t *testing.T) {
			if string(testCase.kind) != testCase.expected {
				t.Fatalf("expected wire discriminator %q, got %q", testCase.expected, testCase.kind)
			}
		})
	}
}

func TestOutputItemAddedIsFunctionCall(t *testing.T) {
	if !NewOutputItemAdded(0, "function_call", "get_weather", "call_1").IsFunctionCall() {
		t.Fatal("expected function_call item to report IsFunctionCall")
	}
	if NewOutputItemAdded(0, "message", "", "").IsFunctionCall() {
		t.Fatal("expected message item to not report IsFunctionCall")
	}
}

func TestUnknownPreservesRawFrame(t *testing.T) {
	raw := []byte(`{"type":"response.something_future.delta","delta":"x"}`)
	event := NewUnknown(3, "response.something_future.delta", raw)

	if event.Type != "response.something_future.delta" {
		t.Fatalf("expected discriminator to be preserved, got %q", event.Type)
	}
	if string(event.Raw) != string(raw) {
		t.Fatalf("expected raw frame to be preserved, got %q", event.Raw)
	}
	if event.Sequence() != 3 {
		t.Fatalf("expected sequence 3, got %d", event.Sequence())
	}
}
