// Package events defines the typed stream-event contract for the
// responses API.
//
// Event kinds reuse the server's `type` discriminator strings so that
// classification of a decoded frame is a direct mapping:
//
//   - response.created: ResponseCreated, carries the response id used to
//     continue the conversation on a later turn.
//   - response.reasoning_text.delta: ReasoningDelta, incremental
//     reasoning text.
//   - response.code_interpreter_call_code.delta: CodeDelta, incremental
//     generated code.
//   - response.code_interpreter_call.interpreting: CodeExecutionStarted,
//     the server began executing generated code.
//   - response.code_interpreter_call.completed: CodeExecutionCompleted,
//     code execution finished.
//   - response.function_call_arguments.delta: FunctionArgumentsDelta,
//     incremental function-call argument text.
//   - response.output_text.delta: AnswerDelta, incremental final answer
//     text.
//   - response.output_item.added: OutputItemAdded, a new output item
//     snapshot; function_call items carry the tool name and call id.
//
// Any discriminator outside this set decodes as Unknown. Unknown events
// carry the raw frame and are ignored downstream, so future server event
// kinds degrade to a no-op instead of breaking the client.
//
// Semantics used across the package:
//
//   - Delta: append-only text piece emitted in stream order, belonging to
//     the currently open presentation phase.
//   - Snapshot: point-in-time payload (response id, output item) that is
//     not part of any delta stream.
package events
