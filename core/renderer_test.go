package chat

import "fmt"

// recordedAction is one renderer call captured for assertions.
type recordedAction struct {
	kind   string
	phase  Phase
	text   string
	tokens int
}

func (a recordedAction) String() string {
	switch a.kind {
	case "begin":
		return fmt.Sprintf("begin(%s)", a.phase)
	case "append":
		return fmt.Sprintf("append(%q)", a.text)
	case "end":
		return "end"
	case "tool":
		return fmt.Sprintf("tool(%s)", a.text)
	case "note":
		return fmt.Sprintf("note(%q)", a.text)
	case "usage":
		return fmt.Sprintf("usage(%d)", a.tokens)
	}
	return a.kind
}

// recordingRenderer is a headless presentation sink for tests.
type recordingRenderer struct {
	actions []recordedAction
}

func (r *recordingRenderer) BeginPhase(phase Phase) {
	r.actions = append(r.actions, recordedAction{kind: "begin", phase: phase})
}

func (r *recordingRenderer) Append(text string) {
	r.actions = append(r.actions, recordedAction{kind: "append", text: text})
}

func (r *recordingRenderer) EndPhase() {
	r.actions = append(r.actions, recordedAction{kind: "end"})
}

func (r *recordingRenderer) AnnounceTool(name string) {
	r.actions = append(r.actions, recordedAction{kind: "tool", text: name})
}

func (r *recordingRenderer) Note(text string) {
	r.actions = append(r.actions, recordedAction{kind: "note", text: text})
}

func (r *recordingRenderer) NoteUsage(toolOutputTokens int) {
	r.actions = append(r.actions, recordedAction{kind: "usage", tokens: toolOutputTokens})
}

// phasesEntered returns the phases opened, in order.
func (r *recordingRenderer) phasesEntered() []Phase {
	phases := []Phase{}
	for _, action := range r.actions {
		if action.kind == "begin" {
			phases = append(phases, action.phase)
		}
	}
	return phases
}

// appendedText joins all appended text pieces.
func (r *recordingRenderer) appendedText() string {
	text := ""
	for _, action := range r.actions {
		if action.kind == "append" {
			text += action.text
		}
	}
	return text
}

func (r *recordingRenderer) count(kind string) int {
	count := 0
	for _, action := range r.actions {
		if action.kind == kind {
			count++
		}
	}
	return count
}
